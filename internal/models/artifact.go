// Package models defines the core data structures of the artifact
// dependency graph: nodes, edges, mapping records, and the report types
// produced by the validator and the change-impact engine.
package models

// NodeKind classifies a design artifact. The set is closed: every node in a
// graph carries exactly one of these values.
type NodeKind string

const (
	// IP-XACT core artifacts.
	KindIPXACTComponent      NodeKind = "ipxact_component"
	KindIPXACTDesign         NodeKind = "ipxact_design"
	KindIPXACTDesignConfig   NodeKind = "ipxact_design_config"
	KindIPXACTAbstractionDef NodeKind = "ipxact_abstraction_def"
	KindIPXACTCatalog        NodeKind = "ipxact_catalog"
	KindIPXACTGeneratorChain NodeKind = "ipxact_generator_chain"

	// Constraint files.
	KindSDCConstraint NodeKind = "sdc_constraint"
	KindUPFPower      NodeKind = "upf_power"
	KindCDCConstraint NodeKind = "cdc_constraint"
	KindResetScheme   NodeKind = "reset_scheme"

	// RTL and source.
	KindRTLSource   NodeKind = "rtl_source"
	KindFPGASource  NodeKind = "fpga_source"
	KindRTLWrapper  NodeKind = "rtl_wrapper"
	KindRTLFilelist NodeKind = "rtl_filelist"

	// Register and memory.
	KindRegisterMap   NodeKind = "register_map"
	KindUVMRALModel   NodeKind = "uvm_ral_model"
	KindCHeader       NodeKind = "c_header"
	KindRegisterDoc   NodeKind = "register_doc"
	KindMemoryMap     NodeKind = "memory_map"
	KindLinkerScript  NodeKind = "linker_script"
	KindAddressDecode NodeKind = "address_decode"

	// Verification.
	KindBusVIPConfig    NodeKind = "bus_vip_config"
	KindProtocolChecker NodeKind = "protocol_checker"
	KindTestbenchTop    NodeKind = "testbench_top"

	// Physical design.
	KindPinMapping          NodeKind = "pin_mapping"
	KindFloorplanConstraint NodeKind = "floorplan_constraint"
	KindIOPadConfig         NodeKind = "io_pad_config"
	KindDEFLEFConstraint    NodeKind = "def_lef_constraint"

	// EDA tool scripts.
	KindEDAScript       NodeKind = "eda_script"
	KindVendorExtension NodeKind = "vendor_extension"

	// Configuration and documentation.
	KindConfigParam   NodeKind = "config_param"
	KindDocumentation NodeKind = "documentation"
)

// EdgeKind classifies the derivation/configuration relationship an edge
// expresses.
type EdgeKind string

const (
	EdgeGenerates    EdgeKind = "generates"
	EdgeConstrains   EdgeKind = "constrains"
	EdgeReferences   EdgeKind = "references"
	EdgeMapsTo       EdgeKind = "maps_to"
	EdgeDerivesFrom  EdgeKind = "derives_from"
	EdgeConfigures   EdgeKind = "configures"
	EdgeInstantiates EdgeKind = "instantiates"
	EdgeAbstracts    EdgeKind = "abstracts"
	EdgeValidates    EdgeKind = "validates"
)

// Domain tags a node with the flow stage it belongs to. Domains are used
// only for grouping and filtering, never by validation logic.
type Domain string

const (
	DomainFrontend        Domain = "frontend_design"
	DomainVerification    Domain = "verification"
	DomainDFT             Domain = "dft"
	DomainPhysicalDesign  Domain = "physical_design"
	DomainSignoff         Domain = "signoff"
	DomainFPGATranslation Domain = "fpga_translation"
	DomainFirmware        Domain = "firmware"
	DomainGlobal          Domain = "global"
)

// ArtifactNode is one file or artifact in the design flow.
//
// Elements is the authoritative inventory of what the node declares and
// therefore what downstream artifacts must cover: category name ("clocks",
// "ports", ...) to the declared element identifiers. An absent category or
// an empty list means nothing is declared and nothing is required.
type ArtifactNode struct {
	ID          string              `json:"id" yaml:"id"`
	Name        string              `json:"name" yaml:"name"`
	Kind        NodeKind            `json:"kind" yaml:"kind"`
	Domain      Domain              `json:"domain" yaml:"domain"`
	FilePath    string              `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	EDATool     string              `json:"eda_tool,omitempty" yaml:"eda_tool,omitempty"`
	Version     string              `json:"version,omitempty" yaml:"version,omitempty"`
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Metadata    map[string]any      `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Elements    map[string][]string `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// DependencyEdge is one directed derivation relationship between two nodes.
// Mappings carries the category-tagged detail records the validator checks.
type DependencyEdge struct {
	Source   string          `json:"source" yaml:"source"`
	Target   string          `json:"target" yaml:"target"`
	Kind     EdgeKind        `json:"kind" yaml:"kind"`
	Label    string          `json:"label,omitempty" yaml:"label,omitempty"`
	Domain   Domain          `json:"domain,omitempty" yaml:"domain,omitempty"`
	Metadata map[string]any  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Mappings []MappingRecord `json:"mappings,omitempty" yaml:"mappings,omitempty"`
}

// EdgeID returns the deterministic identity of an edge. The
// (source, kind, target) triple is unique within a graph.
func (e DependencyEdge) EdgeID() string {
	return EdgeID(e.Source, e.Kind, e.Target)
}

// EdgeID builds the canonical edge identity string.
func EdgeID(source string, kind EdgeKind, target string) string {
	return source + "--" + string(kind) + "-->" + target
}

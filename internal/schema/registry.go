// Package schema holds the static completeness tables: which mapping
// categories each (source kind, target kind) edge pair must carry, which
// downstream kinds each declared element category must reach, and which
// mapping field identifies a covered element. The tables are read-only
// data built at process start; the validator does all the checking.
package schema

import "github.com/siliconscope/core/internal/models"

// EdgeSchema describes one mapping category required (or conditionally
// expected) on edges between a given pair of node kinds.
type EdgeSchema struct {
	Category       string
	RequiredFields []string
	Description    string
	// Conditional categories are optional by default; their absence is a
	// warning rather than a failure.
	Conditional bool
}

// KindPair keys the edge schema table by source and target node kind.
type KindPair struct {
	Source models.NodeKind
	Target models.NodeKind
}

// EdgeSchemas lists, per (source kind, target kind), the mapping categories
// an edge must carry and the fields each record needs. Edge pairs without
// an entry are unverifiable, not invalid.
var EdgeSchemas = map[KindPair][]EdgeSchema{
	{models.KindIPXACTComponent, models.KindSDCConstraint}: {
		{
			Category:       models.CategoryClockDomain,
			RequiredFields: []string{"ipxact_clock_port", "sdc_clock_name", "period_ns", "uncertainty_setup", "uncertainty_hold"},
			Description:    "Each IP-XACT clock port must map to a create_clock command",
		},
		{
			Category:       models.CategoryIOTiming,
			RequiredFields: []string{"ipxact_port", "sdc_command", "clock_domain", "max_delay", "min_delay"},
			Description:    "Each I/O port must have input/output delay constraints",
		},
		{
			Category:       models.CategoryFalsePath,
			RequiredFields: []string{"ipxact_port_or_domain", "sdc_false_path_spec"},
			Description:    "Async signals (resets, async inputs) must have false paths",
		},
		{
			Category:       models.CategoryClockGroup,
			RequiredFields: []string{"group_name", "clock_list", "relationship"},
			Description:    "Multiple clocks must define clock groups (async/exclusive)",
			Conditional:    true,
		},
		{
			Category:       models.CategoryMulticyclePath,
			RequiredFields: []string{"from_signal", "to_signal", "multiplier", "clock_domain"},
			Description:    "Multicycle paths between slow/fast domains",
			Conditional:    true,
		},
	},
	{models.KindIPXACTComponent, models.KindUPFPower}: {
		{
			Category:       models.CategoryPowerDomain,
			RequiredFields: []string{"ipxact_component", "upf_power_domain", "supply_net_vdd", "supply_net_vss"},
			Description:    "Each component must map to a power domain",
		},
		{
			Category:       models.CategoryIsolationStrategy,
			RequiredFields: []string{"power_domain", "isolation_signal", "isolation_sense", "isolation_location"},
			Description:    "Isolation cells for domain boundaries",
			Conditional:    true,
		},
		{
			Category:       models.CategoryRetentionStrategy,
			RequiredFields: []string{"power_domain", "retention_signal", "retention_registers"},
			Description:    "Retention strategy for power-gated domains",
			Conditional:    true,
		},
		{
			Category:       models.CategoryLevelShifter,
			RequiredFields: []string{"from_domain", "to_domain", "shifter_type"},
			Description:    "Level shifters between voltage domains",
			Conditional:    true,
		},
	},
	{models.KindIPXACTComponent, models.KindRTLWrapper}: {
		{
			Category:       models.CategoryPortNaming,
			RequiredFields: []string{"ipxact_port", "rtl_port", "direction", "width"},
			Description:    "Every IP-XACT port must map to an RTL port",
		},
	},
	{models.KindIPXACTComponent, models.KindCDCConstraint}: {
		{
			Category:       models.CategoryCDCCrossing,
			RequiredFields: []string{"from_clock_domain", "to_clock_domain", "crossing_type", "sync_scheme"},
			Description:    "Each clock domain crossing must be documented",
		},
	},
	{models.KindIPXACTComponent, models.KindResetScheme}: {
		{
			Category:       models.CategoryResetDomain,
			RequiredFields: []string{"ipxact_reset_port", "reset_domain", "polarity", "sync_async"},
			Description:    "Each reset port maps to a reset domain",
		},
		{
			Category:       models.CategoryResetConstraint,
			RequiredFields: []string{"reset_domain", "associated_clock", "deassert_timing"},
			Description:    "Reset deassertion timing relative to clock",
		},
	},
	{models.KindIPXACTComponent, models.KindRegisterMap}: {
		{
			Category:       models.CategoryRegisterBlock,
			RequiredFields: []string{"register_name", "offset", "width", "access_type", "reset_value"},
			Description:    "Each register in the IP-XACT memory map must be mapped",
		},
		{
			Category:       models.CategoryAddressSpace,
			RequiredFields: []string{"address_space_name", "base_address", "range", "bus_interface"},
			Description:    "Address space mapping for each bus interface",
		},
	},
	{models.KindRegisterMap, models.KindUVMRALModel}: {
		{
			Category:       models.CategoryRegisterBlock,
			RequiredFields: []string{"register_name", "ral_class_name", "access_type", "field_list"},
			Description:    "Each register must produce a RAL register class",
		},
	},
	{models.KindRegisterMap, models.KindCHeader}: {
		{
			Category:       models.CategoryRegisterBlock,
			RequiredFields: []string{"register_name", "c_define_name", "offset_hex", "field_masks"},
			Description:    "Each register must produce C #defines",
		},
	},
	{models.KindIPXACTComponent, models.KindPinMapping}: {
		{
			Category:       models.CategoryPinAssignment,
			RequiredFields: []string{"ipxact_port", "physical_pin", "pad_type", "io_standard"},
			Description:    "Each top-level port must map to a physical pin",
		},
	},
	{models.KindIPXACTDesign, models.KindFloorplanConstraint}: {
		{
			Category:       models.CategoryHierarchyMapping,
			RequiredFields: []string{"instance_name", "component_ref", "placement_region", "area_estimate"},
			Description:    "Each instance must have placement constraints",
		},
	},
	{models.KindIPXACTComponent, models.KindRTLFilelist}: {
		{
			Category:       models.CategoryFilelistEntry,
			RequiredFields: []string{"file_path", "file_type", "compile_order"},
			Description:    "All source files listed with correct compile order",
		},
	},
	{models.KindIPXACTComponent, models.KindBusVIPConfig}: {
		{
			Category:       models.CategoryBusInterface,
			RequiredFields: []string{"bus_interface_name", "protocol", "vip_type", "config_params"},
			Description:    "Each bus interface must have VIP configuration",
		},
	},
	{models.KindFPGASource, models.KindIPXACTComponent}: {
		{
			Category:       models.CategoryPortNaming,
			RequiredFields: []string{"customer_port", "ipxact_port", "direction", "width", "rename_reason"},
			Description:    "Each customer FPGA port maps to a standardised IP-XACT port",
		},
		{
			Category:       models.CategoryClockDomain,
			RequiredFields: []string{"customer_clock", "ipxact_clock_domain", "frequency_mhz"},
			Description:    "Customer clock signals map to IP-XACT clock domains",
		},
		{
			Category:       models.CategoryResetDomain,
			RequiredFields: []string{"customer_reset", "ipxact_reset_domain", "polarity"},
			Description:    "Customer reset signals map to IP-XACT reset domains",
		},
	},
	{models.KindSDCConstraint, models.KindSDCConstraint}: {
		{
			Category:       models.CategoryClockDomain,
			RequiredFields: []string{"source_clock", "target_clock_reference", "false_path_defined"},
			Description:    "DFT/signoff SDC must reference the same clocks as the main SDC",
		},
	},
	{models.KindIPXACTComponent, models.KindMemoryMap}: {
		{
			Category:       models.CategoryMemoryMap,
			RequiredFields: []string{"memory_map_name", "address_block", "base_address", "range"},
			Description:    "Each IP-XACT memory map must produce decode logic",
		},
	},
	{models.KindMemoryMap, models.KindAddressDecode}: {
		{
			Category:       models.CategoryAddressSpace,
			RequiredFields: []string{"address_block", "decode_select_signal", "base_address", "range"},
			Description:    "Each address block needs decode logic",
		},
	},
	{models.KindMemoryMap, models.KindLinkerScript}: {
		{
			Category:       models.CategoryAddressSpace,
			RequiredFields: []string{"memory_region", "origin_address", "length", "access_permissions"},
			Description:    "Each memory region maps to a linker MEMORY section",
		},
	},
	{models.KindIPXACTAbstractionDef, models.KindBusVIPConfig}: {
		{
			Category:       models.CategoryBusInterface,
			RequiredFields: []string{"abstraction_name", "protocol_version", "port_map_list", "vip_parameter_overrides"},
			Description:    "Abstraction definition drives VIP parameterisation",
		},
	},
	{models.KindIPXACTAbstractionDef, models.KindProtocolChecker}: {
		{
			Category:       models.CategoryBusInterface,
			RequiredFields: []string{"abstraction_name", "checker_rules", "port_connections"},
			Description:    "Abstraction drives protocol checker configuration",
		},
	},
}

// ElementOutputs lists, per declared element category, the downstream node
// kinds a declaring node must have an edge to. Level 1 of the validator
// walks this table.
var ElementOutputs = map[string][]models.NodeKind{
	"clocks": {
		models.KindSDCConstraint,
		models.KindCDCConstraint, // only when >1 clock; Level 1 suppresses otherwise
	},
	"resets": {
		models.KindResetScheme,
		models.KindSDCConstraint,
	},
	"bus_interfaces": {
		models.KindBusVIPConfig,
		models.KindRTLWrapper,
	},
	"memory_maps": {
		models.KindRegisterMap,
		models.KindUVMRALModel,
		models.KindCHeader,
		models.KindRegisterDoc,
		models.KindAddressDecode,
	},
	"ports": {
		models.KindRTLWrapper,
		models.KindRTLFilelist,
		models.KindDocumentation,
	},
	"power_domains": {
		models.KindUPFPower,
	},
	"top_level_ports": {
		models.KindPinMapping,
	},
}

// CoverageCheck ties one element category to the mapping category that
// covers it, the record field naming the covered element, and the target
// kinds whose edges count. Level 3 of the validator walks these.
type CoverageCheck struct {
	ElementKey      string
	MappingCategory string
	IDField         string
	TargetKinds     []models.NodeKind
}

// CoverageChecks is the fixed Level-3 tuple table.
var CoverageChecks = []CoverageCheck{
	{
		ElementKey:      "ports",
		MappingCategory: models.CategoryPortNaming,
		IDField:         "ipxact_port",
		TargetKinds:     []models.NodeKind{models.KindRTLWrapper},
	},
	{
		ElementKey:      "clocks",
		MappingCategory: models.CategoryClockDomain,
		IDField:         "ipxact_clock_port",
		TargetKinds:     []models.NodeKind{models.KindSDCConstraint},
	},
	{
		ElementKey:      "resets",
		MappingCategory: models.CategoryResetDomain,
		IDField:         "ipxact_reset_port",
		TargetKinds:     []models.NodeKind{models.KindResetScheme},
	},
	{
		ElementKey:      "bus_interfaces",
		MappingCategory: models.CategoryBusInterface,
		IDField:         "bus_interface_name",
		TargetKinds:     []models.NodeKind{models.KindBusVIPConfig},
	},
	{
		ElementKey:      "memory_maps",
		MappingCategory: models.CategoryMemoryMap,
		IDField:         "memory_map_name",
		TargetKinds:     []models.NodeKind{models.KindMemoryMap, models.KindRegisterMap},
	},
	{
		ElementKey:      "power_domains",
		MappingCategory: models.CategoryPowerDomain,
		IDField:         "upf_power_domain",
		TargetKinds:     []models.NodeKind{models.KindUPFPower},
	},
	{
		ElementKey:      "registers",
		MappingCategory: models.CategoryRegisterBlock,
		IDField:         "register_name",
		TargetKinds:     []models.NodeKind{models.KindUVMRALModel, models.KindCHeader},
	},
}

// SchemasFor returns the edge schemas for a kind pair, or nil when the
// pair is unverifiable.
func SchemasFor(source, target models.NodeKind) []EdgeSchema {
	return EdgeSchemas[KindPair{Source: source, Target: target}]
}

// OutputsFor returns the downstream kinds expected for an element category.
func OutputsFor(elementKey string) []models.NodeKind {
	return ElementOutputs[elementKey]
}

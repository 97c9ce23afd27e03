package models

// Mapping categories attached to edge records. The set is closed; the
// schema registry decides which categories apply to which edge pairs.
const (
	CategoryPortNaming        = "port_naming"
	CategoryClockDomain       = "clock_domain"
	CategoryClockConstraint   = "clock_constraint"
	CategoryResetDomain       = "reset_domain"
	CategoryResetConstraint   = "reset_constraint"
	CategoryIOTiming          = "io_timing"
	CategoryFalsePath         = "false_path"
	CategoryMulticyclePath    = "multicycle_path"
	CategoryClockGroup        = "clock_group"
	CategoryPowerDomain       = "power_domain"
	CategoryIsolationStrategy = "isolation_strategy"
	CategoryRetentionStrategy = "retention_strategy"
	CategoryLevelShifter      = "level_shifter"
	CategoryBusInterface      = "bus_interface"
	CategoryMemoryMap         = "memory_map_mapping"
	CategoryRegisterBlock     = "register_block"
	CategoryAddressSpace      = "address_space"
	CategoryCDCCrossing       = "cdc_crossing"
	CategoryPinAssignment     = "pin_assignment"
	CategoryHierarchyMapping  = "hierarchy_mapping"
	CategoryFilelistEntry     = "filelist_entry"
)

// MappingRecord is one free-form, category-tagged fact on an edge. The
// field set differs per category, so records are generic key/value maps
// rather than per-category structs; the "category" key tags the record.
type MappingRecord map[string]any

// Category returns the record's category tag, or "" when untagged.
func (m MappingRecord) Category() string {
	if v, ok := m["category"].(string); ok {
		return v
	}
	return ""
}

// HasField reports whether the named field is present with a usable value.
// Missing keys, nils, and empty strings all count as absent.
func (m MappingRecord) HasField(name string) bool {
	v, ok := m[name]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return false
	}
	return true
}

// StringField returns the named field as a string, or "" when absent or
// not a string.
func (m MappingRecord) StringField(name string) string {
	if v, ok := m[name].(string); ok {
		return v
	}
	return ""
}

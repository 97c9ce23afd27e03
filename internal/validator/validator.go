// Package validator checks mapping completeness across the dependency
// graph at three independent levels:
//
// Level 1, structural: every declared element category must have edges to
// all of its expected downstream kinds.
//
// Level 2, field-level: every edge with a registered schema must carry the
// required mapping categories, and every record in a category must have
// all of that category's required fields.
//
// Level 3, element coverage: every individually declared element (each
// port, clock, reset, register block, ...) must appear in a mapping record
// on an edge to the right target kind. 9 declared ports need 9 port_naming
// records, not 8.
//
// Findings never surface as errors; an incomplete mapping is an expected
// outcome and lands in the report as data.
package validator

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/siliconscope/core/internal/graph"
	"github.com/siliconscope/core/internal/models"
	"github.com/siliconscope/core/internal/schema"
)

// Validate runs all three levels over one graph snapshot and accumulates
// the findings into a single report. None of the passes mutate the graph,
// and no pass depends on the order of the others. Given an unchanged
// graph, repeated runs produce identically ordered items.
func Validate(store *graph.Store) *models.ValidationReport {
	report := &models.ValidationReport{Timestamp: time.Now().UTC()}
	structural(store, report)
	fieldLevel(store, report)
	elementCoverage(store, report)
	return report
}

// inventoryKinds are the node kinds that carry an element inventory and
// are therefore subject to Level 1.
var inventoryKinds = map[models.NodeKind]bool{
	models.KindIPXACTComponent: true,
	models.KindIPXACTDesign:    true,
}

func structural(store *graph.Store, report *models.ValidationReport) {
	for _, node := range store.Nodes() {
		if !inventoryKinds[node.Kind] {
			continue
		}
		if len(node.Elements) == 0 {
			report.Items = append(report.Items, models.ValidationItem{
				Severity: models.SeverityWarning,
				Check:    models.CheckStructural,
				NodeID:   node.ID,
				Message: fmt.Sprintf("node %q declares no elements; structural completeness cannot be validated. "+
					"Populate the element inventory with clocks, resets, bus_interfaces, memory_maps, ports, power_domains.", node.Name),
			})
			continue
		}

		targetKinds := make(map[models.NodeKind]bool)
		for _, e := range store.EdgesFrom(node.ID) {
			if tgt, err := store.Node(e.Target); err == nil {
				targetKinds[tgt.Kind] = true
			}
		}

		for _, elementKey := range sortedKeys(node.Elements) {
			elements := node.Elements[elementKey]
			if len(elements) == 0 {
				continue
			}
			for _, expected := range schema.OutputsFor(elementKey) {
				// A CDC target only makes sense with at least two clock
				// domains to cross between.
				if expected == models.KindCDCConstraint && elementKey == "clocks" && len(elements) <= 1 {
					continue
				}
				if targetKinds[expected] {
					report.Items = append(report.Items, models.ValidationItem{
						Severity:        models.SeverityPass,
						Check:           models.CheckStructural,
						NodeID:          node.ID,
						MappingCategory: elementKey,
						Message:         fmt.Sprintf("edge exists: %s -> %s", node.Name, expected),
					})
				} else {
					report.Items = append(report.Items, models.ValidationItem{
						Severity:        models.SeverityFail,
						Check:           models.CheckStructural,
						NodeID:          node.ID,
						MappingCategory: elementKey,
						Message: fmt.Sprintf("missing edge: %q declares %s %v but has no edge to any %s node",
							node.Name, elementKey, elements, expected),
						Details: map[string]any{
							"element_key":          elementKey,
							"element_values":       elements,
							"expected_target_kind": string(expected),
						},
					})
				}
			}
		}
	}
}

func fieldLevel(store *graph.Store, report *models.ValidationReport) {
	for _, edge := range store.Edges() {
		src, err := store.Node(edge.Source)
		if err != nil {
			continue
		}
		tgt, err := store.Node(edge.Target)
		if err != nil {
			continue
		}

		schemas := schema.SchemasFor(src.Kind, tgt.Kind)
		if len(schemas) == 0 {
			report.Items = append(report.Items, models.ValidationItem{
				Severity: models.SeverityInfo,
				Check:    models.CheckFieldLevel,
				NodeID:   edge.Source,
				TargetID: edge.Target,
				Message:  fmt.Sprintf("no mapping schema defined for %s -> %s", src.Kind, tgt.Kind),
			})
			continue
		}

		for _, sch := range schemas {
			var matching []models.MappingRecord
			for _, rec := range edge.Mappings {
				if rec.Category() == sch.Category {
					matching = append(matching, rec)
				}
			}

			if len(matching) == 0 {
				if sch.Conditional {
					report.Items = append(report.Items, models.ValidationItem{
						Severity:        models.SeverityWarning,
						Check:           models.CheckFieldLevel,
						NodeID:          edge.Source,
						TargetID:        edge.Target,
						MappingCategory: sch.Category,
						Message: fmt.Sprintf("conditional mapping %q not present in %s -> %s; verify this is intentionally omitted (%s)",
							sch.Category, src.Name, tgt.Name, sch.Description),
					})
				} else {
					report.Items = append(report.Items, models.ValidationItem{
						Severity:        models.SeverityFail,
						Check:           models.CheckFieldLevel,
						NodeID:          edge.Source,
						TargetID:        edge.Target,
						MappingCategory: sch.Category,
						Message: fmt.Sprintf("missing mapping category %q in %s -> %s; required fields: %v (%s)",
							sch.Category, src.Name, tgt.Name, sch.RequiredFields, sch.Description),
						Details: map[string]any{"required_fields": sch.RequiredFields},
					})
				}
				continue
			}

			// Records are judged one by one; a malformed record does not
			// hide a complete one in the same category.
			for idx, rec := range matching {
				var missing []string
				for _, f := range sch.RequiredFields {
					if !rec.HasField(f) {
						missing = append(missing, f)
					}
				}
				if len(missing) > 0 {
					report.Items = append(report.Items, models.ValidationItem{
						Severity:        models.SeverityFail,
						Check:           models.CheckFieldLevel,
						NodeID:          edge.Source,
						TargetID:        edge.Target,
						MappingCategory: sch.Category,
						Message: fmt.Sprintf("incomplete mapping: %q record #%d in %s -> %s is missing fields %v",
							sch.Category, idx, src.Name, tgt.Name, missing),
						Details: map[string]any{
							"record_index":   idx,
							"missing_fields": missing,
						},
					})
				} else {
					report.Items = append(report.Items, models.ValidationItem{
						Severity:        models.SeverityPass,
						Check:           models.CheckFieldLevel,
						NodeID:          edge.Source,
						TargetID:        edge.Target,
						MappingCategory: sch.Category,
						Message:         fmt.Sprintf("mapping complete: %q record #%d in %s -> %s", sch.Category, idx, src.Name, tgt.Name),
					})
				}
			}
		}
	}
}

func elementCoverage(store *graph.Store, report *models.ValidationReport) {
	for _, node := range store.Nodes() {
		if len(node.Elements) == 0 {
			continue
		}
		outgoing := store.EdgesFrom(node.ID)

		for _, check := range schema.CoverageChecks {
			declared := node.Elements[check.ElementKey]
			if len(declared) == 0 {
				continue
			}

			var relevant []models.DependencyEdge
			for _, e := range outgoing {
				tgt, err := store.Node(e.Target)
				if err != nil {
					continue
				}
				for _, k := range check.TargetKinds {
					if tgt.Kind == k {
						relevant = append(relevant, e)
						break
					}
				}
			}
			if len(relevant) == 0 {
				// Level 1 already reported the missing edge.
				continue
			}

			covered := make(map[string]bool)
			for _, e := range relevant {
				for _, rec := range e.Mappings {
					if rec.Category() != check.MappingCategory {
						continue
					}
					if v := rec.StringField(check.IDField); v != "" {
						covered[v] = true
					}
				}
			}

			declaredSet := make(map[string]bool, len(declared))
			for _, el := range declared {
				declaredSet[el] = true
			}

			var missing, extra, coveredDeclared []string
			for el := range declaredSet {
				if covered[el] {
					coveredDeclared = append(coveredDeclared, el)
				} else {
					missing = append(missing, el)
				}
			}
			for el := range covered {
				if !declaredSet[el] {
					extra = append(extra, el)
				}
			}
			sort.Strings(missing)
			sort.Strings(extra)
			sort.Strings(coveredDeclared)

			if len(missing) == 0 {
				report.Items = append(report.Items, models.ValidationItem{
					Severity:        models.SeverityPass,
					Check:           models.CheckElementCoverage,
					NodeID:          node.ID,
					MappingCategory: check.MappingCategory,
					Message: fmt.Sprintf("full coverage: all %d %s in %q have %q mappings",
						len(declaredSet), check.ElementKey, node.Name, check.MappingCategory),
					Details: map[string]any{"covered": coveredDeclared},
				})
			} else {
				pct := round1(100.0 * float64(len(coveredDeclared)) / float64(len(declaredSet)))
				report.Items = append(report.Items, models.ValidationItem{
					Severity:        models.SeverityFail,
					Check:           models.CheckElementCoverage,
					NodeID:          node.ID,
					MappingCategory: check.MappingCategory,
					Message: fmt.Sprintf("incomplete coverage: %d/%d %s in %q have no %q mapping; missing: %v (%.1f%% covered)",
						len(missing), len(declaredSet), check.ElementKey, node.Name, check.MappingCategory, missing, pct),
					Details: map[string]any{
						"covered":      coveredDeclared,
						"missing":      missing,
						"coverage_pct": pct,
					},
				})
			}

			// Covered elements nobody declared usually mean the inventory
			// is stale; they warn but never change the coverage figure.
			if len(extra) > 0 {
				report.Items = append(report.Items, models.ValidationItem{
					Severity:        models.SeverityWarning,
					Check:           models.CheckElementCoverage,
					NodeID:          node.ID,
					MappingCategory: check.MappingCategory,
					Message: fmt.Sprintf("extra %s mappings not in declared elements of %q: %v; check whether the inventory needs updating",
						check.ElementKey, node.Name, extra),
					Details: map[string]any{"extra": extra},
				})
			}
		}
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package models

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Severity of a single validation finding. Findings are report data, never
// Go errors: an incomplete mapping is an expected outcome, not a fault.
type Severity string

const (
	SeverityPass    Severity = "PASS"
	SeverityWarning Severity = "WARNING"
	SeverityFail    Severity = "FAIL"
	SeverityInfo    Severity = "INFO"
)

// Check-level categories for findings that have no mapping category.
const (
	CheckStructural      = "structural"
	CheckFieldLevel      = "field_level"
	CheckElementCoverage = "element_coverage"
)

// ValidationItem is one finding from one check.
type ValidationItem struct {
	Severity        Severity       `json:"severity" yaml:"severity"`
	Check           string         `json:"check" yaml:"check"`
	NodeID          string         `json:"node_id" yaml:"node_id"`
	TargetID        string         `json:"target_id,omitempty" yaml:"target_id,omitempty"`
	MappingCategory string         `json:"mapping_category,omitempty" yaml:"mapping_category,omitempty"`
	Message         string         `json:"message" yaml:"message"`
	Details         map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// ValidationReport accumulates the findings of one validation pass. Items
// are append-only while the pass runs and the report is treated as
// immutable once produced.
type ValidationReport struct {
	Timestamp time.Time        `json:"timestamp" yaml:"timestamp"`
	Items     []ValidationItem `json:"items" yaml:"items"`
}

// Passes returns all PASS items.
func (r *ValidationReport) Passes() []ValidationItem { return r.bySeverity(SeverityPass) }

// Warnings returns all WARNING items.
func (r *ValidationReport) Warnings() []ValidationItem { return r.bySeverity(SeverityWarning) }

// Failures returns all FAIL items.
func (r *ValidationReport) Failures() []ValidationItem { return r.bySeverity(SeverityFail) }

func (r *ValidationReport) bySeverity(s Severity) []ValidationItem {
	var out []ValidationItem
	for _, it := range r.Items {
		if it.Severity == s {
			out = append(out, it)
		}
	}
	return out
}

// IsValid reports whether the pass produced zero failures.
func (r *ValidationReport) IsValid() bool { return len(r.Failures()) == 0 }

// CoveragePct is passes / (passes + failures) as a percentage rounded to
// one decimal. Warnings and info items are excluded from the denominator.
// An empty report is 100% covered.
func (r *ValidationReport) CoveragePct() float64 {
	passes := len(r.Passes())
	total := passes + len(r.Failures())
	if total == 0 {
		return 100.0
	}
	return round1(100.0 * float64(passes) / float64(total))
}

// CategoryCoverage is the pass/fail breakdown for one mapping category.
type CategoryCoverage struct {
	Pass        int     `json:"pass" yaml:"pass"`
	Fail        int     `json:"fail" yaml:"fail"`
	CoveragePct float64 `json:"coverage_pct" yaml:"coverage_pct"`
}

// FailureDetail is one failure in the summary's flat failure list.
type FailureDetail struct {
	Node     string `json:"node" yaml:"node"`
	Target   string `json:"target,omitempty" yaml:"target,omitempty"`
	Category string `json:"category" yaml:"category"`
	Message  string `json:"message" yaml:"message"`
}

// ReportSummary is the renderer-facing view of a validation report.
type ReportSummary struct {
	Timestamp          time.Time                   `json:"timestamp" yaml:"timestamp"`
	OverallValid       bool                        `json:"overall_valid" yaml:"overall_valid"`
	OverallCoveragePct float64                     `json:"overall_coverage_pct" yaml:"overall_coverage_pct"`
	TotalChecks        int                         `json:"total_checks" yaml:"total_checks"`
	Passes             int                         `json:"passes" yaml:"passes"`
	Warnings           int                         `json:"warnings" yaml:"warnings"`
	Failures           int                         `json:"failures" yaml:"failures"`
	CategoryCoverage   map[string]CategoryCoverage `json:"category_coverage" yaml:"category_coverage"`
	FailureDetails     []FailureDetail             `json:"failure_details" yaml:"failure_details"`
}

// Summary aggregates the report. Per-category coverage groups PASS/FAIL
// items by mapping category, falling back to the check name when an item
// has no mapping category.
func (r *ValidationReport) Summary() ReportSummary {
	cov := make(map[string]CategoryCoverage)
	for _, it := range r.Items {
		if it.Severity != SeverityPass && it.Severity != SeverityFail {
			continue
		}
		cat := it.MappingCategory
		if cat == "" {
			cat = it.Check
		}
		c := cov[cat]
		if it.Severity == SeverityPass {
			c.Pass++
		} else {
			c.Fail++
		}
		cov[cat] = c
	}
	for cat, c := range cov {
		total := c.Pass + c.Fail
		c.CoveragePct = 100.0
		if total > 0 {
			c.CoveragePct = round1(100.0 * float64(c.Pass) / float64(total))
		}
		cov[cat] = c
	}

	var failures []FailureDetail
	for _, f := range r.Failures() {
		cat := f.MappingCategory
		if cat == "" {
			cat = f.Check
		}
		failures = append(failures, FailureDetail{
			Node:     f.NodeID,
			Target:   f.TargetID,
			Category: cat,
			Message:  f.Message,
		})
	}

	return ReportSummary{
		Timestamp:          r.Timestamp,
		OverallValid:       r.IsValid(),
		OverallCoveragePct: r.CoveragePct(),
		TotalChecks:        len(r.Items),
		Passes:             len(r.Passes()),
		Warnings:           len(r.Warnings()),
		Failures:           len(r.Failures()),
		CategoryCoverage:   cov,
		FailureDetails:     failures,
	}
}

// SaveJSON writes the report summary as indented JSON.
func (r *ValidationReport) SaveJSON(path string) error {
	data, err := json.MarshalIndent(r.Summary(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report summary: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// SaveYAML writes the report summary as YAML.
func (r *ValidationReport) SaveYAML(path string) error {
	data, err := yaml.Marshal(r.Summary())
	if err != nil {
		return fmt.Errorf("failed to marshal report summary: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

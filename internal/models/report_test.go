package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *ValidationReport {
	return &ValidationReport{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Items: []ValidationItem{
			{Severity: SeverityPass, Check: CheckFieldLevel, NodeID: "comp", MappingCategory: CategoryClockDomain},
			{Severity: SeverityPass, Check: CheckFieldLevel, NodeID: "comp", MappingCategory: CategoryClockDomain},
			{Severity: SeverityFail, Check: CheckFieldLevel, NodeID: "comp", MappingCategory: CategoryClockDomain, Message: "incomplete"},
			{Severity: SeverityWarning, Check: CheckFieldLevel, NodeID: "comp", MappingCategory: CategoryClockGroup},
			{Severity: SeverityInfo, Check: CheckFieldLevel, NodeID: "doc"},
			{Severity: SeverityFail, Check: CheckStructural, NodeID: "comp", Message: "missing edge"},
		},
	}
}

func TestValidationReport(t *testing.T) {
	t.Run("severity buckets", func(t *testing.T) {
		r := sampleReport()
		assert.Len(t, r.Passes(), 2)
		assert.Len(t, r.Warnings(), 1)
		assert.Len(t, r.Failures(), 2)
	})

	t.Run("valid only without failures", func(t *testing.T) {
		r := sampleReport()
		assert.False(t, r.IsValid())

		clean := &ValidationReport{Items: []ValidationItem{
			{Severity: SeverityPass, Check: CheckFieldLevel},
			{Severity: SeverityWarning, Check: CheckFieldLevel},
		}}
		assert.True(t, clean.IsValid())
	})

	t.Run("coverage excludes warnings and info", func(t *testing.T) {
		r := sampleReport()
		// 2 passes, 2 failures.
		assert.Equal(t, 50.0, r.CoveragePct())
	})

	t.Run("coverage rounds to one decimal", func(t *testing.T) {
		r := &ValidationReport{Items: []ValidationItem{
			{Severity: SeverityPass},
			{Severity: SeverityFail},
			{Severity: SeverityFail},
		}}
		assert.Equal(t, 33.3, r.CoveragePct())
	})

	t.Run("empty report is fully covered", func(t *testing.T) {
		r := &ValidationReport{}
		assert.True(t, r.IsValid())
		assert.Equal(t, 100.0, r.CoveragePct())
	})
}

func TestReportSummary(t *testing.T) {
	t.Run("groups coverage by mapping category", func(t *testing.T) {
		summary := sampleReport().Summary()

		clock := summary.CategoryCoverage[CategoryClockDomain]
		assert.Equal(t, 2, clock.Pass)
		assert.Equal(t, 1, clock.Fail)
		assert.Equal(t, 66.7, clock.CoveragePct)
	})

	t.Run("falls back to check name without category", func(t *testing.T) {
		summary := sampleReport().Summary()

		structural := summary.CategoryCoverage[CheckStructural]
		assert.Equal(t, 1, structural.Fail)
	})

	t.Run("warnings never open a category", func(t *testing.T) {
		summary := sampleReport().Summary()
		assert.NotContains(t, summary.CategoryCoverage, CategoryClockGroup)
	})

	t.Run("carries totals and failure details", func(t *testing.T) {
		summary := sampleReport().Summary()

		assert.Equal(t, 6, summary.TotalChecks)
		assert.Equal(t, 2, summary.Passes)
		assert.Equal(t, 1, summary.Warnings)
		assert.Equal(t, 2, summary.Failures)
		assert.False(t, summary.OverallValid)

		require.Len(t, summary.FailureDetails, 2)
		assert.Equal(t, CategoryClockDomain, summary.FailureDetails[0].Category)
		assert.Equal(t, CheckStructural, summary.FailureDetails[1].Category)
	})
}

func TestReportSave(t *testing.T) {
	t.Run("json file decodes back to the summary", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		require.NoError(t, sampleReport().SaveJSON(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var summary ReportSummary
		require.NoError(t, json.Unmarshal(data, &summary))
		assert.Equal(t, 6, summary.TotalChecks)
	})

	t.Run("yaml file decodes back to the summary", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.yaml")
		require.NoError(t, sampleReport().SaveYAML(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var summary ReportSummary
		require.NoError(t, yaml.Unmarshal(data, &summary))
		assert.Equal(t, 2, summary.Failures)
	})
}

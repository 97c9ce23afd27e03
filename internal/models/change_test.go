package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleChangeReport() *ChangeReport {
	return &ChangeReport{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ChangedFiles: []ChangedFile{
			{NodeID: "sdc_main", Name: "sdc_main", FilePath: "/constraints/main.sdc",
				OldHash: "h1", NewHash: "h2", Status: StatusModified},
		},
		ImpactChains: []ImpactChain{
			{SourceID: "sdc_main", AffectedID: "netlist",
				Path: []string{"sdc_main", "netlist"}, EdgeKinds: []EdgeKind{EdgeConstrains}, Depth: 1},
			{SourceID: "sdc_main", AffectedID: "timing",
				Path: []string{"sdc_main", "netlist", "timing"}, EdgeKinds: []EdgeKind{EdgeConstrains, EdgeGenerates}, Depth: 2},
		},
		AffectedNodeIDs: []string{"timing", "netlist"},
	}
}

func TestChangeReportView(t *testing.T) {
	t.Run("derives totals and sorts affected nodes", func(t *testing.T) {
		view := sampleChangeReport().View()

		assert.Equal(t, 1, view.TotalChanged)
		assert.Equal(t, 2, view.TotalAffected)
		assert.Equal(t, []string{"netlist", "timing"}, view.AffectedNodes)
	})

	t.Run("does not reorder the source report", func(t *testing.T) {
		r := sampleChangeReport()
		r.View()
		assert.Equal(t, []string{"timing", "netlist"}, r.AffectedNodeIDs)
	})

	t.Run("empty report has zero totals", func(t *testing.T) {
		view := (&ChangeReport{}).View()
		assert.Zero(t, view.TotalChanged)
		assert.Zero(t, view.TotalAffected)
		assert.Empty(t, view.AffectedNodes)
	})
}

func TestChangeReportSave(t *testing.T) {
	t.Run("json file carries the derived view", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "changes.json")
		require.NoError(t, sampleChangeReport().SaveJSON(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var view ChangeReportView
		require.NoError(t, json.Unmarshal(data, &view))
		assert.Equal(t, 1, view.TotalChanged)
		assert.Equal(t, []string{"netlist", "timing"}, view.AffectedNodes)

		require.Len(t, view.ImpactChains, 2)
		assert.Equal(t, []string{"sdc_main", "netlist", "timing"}, view.ImpactChains[1].Path)
	})
}

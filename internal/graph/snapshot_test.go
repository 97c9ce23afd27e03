package graph

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siliconscope/core/internal/models"
)

func sampleStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	comp := node("comp", models.KindIPXACTComponent)
	comp.FilePath = "/designs/comp.xml"
	comp.Elements = map[string][]string{
		"clocks": {"i_clk", "i_clk_scan"},
		"ports":  {"i_data", "o_data"},
	}
	require.NoError(t, s.AddNode(comp))
	require.NoError(t, s.AddNode(node("sdc", models.KindSDCConstraint)))
	require.NoError(t, s.AddEdge(models.DependencyEdge{
		Source: "comp", Target: "sdc", Kind: models.EdgeGenerates,
		Label: "timing constraints",
		Mappings: []models.MappingRecord{
			{
				"category":          models.CategoryClockDomain,
				"ipxact_clock_port": "i_clk",
				"sdc_clock_name":    "clk_main",
				"period_ns":         "10.0",
				"uncertainty_setup": "0.2",
				"uncertainty_hold":  "0.1",
			},
		},
	}))
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Run("json round trip preserves nodes, edges, and mappings", func(t *testing.T) {
		s := sampleStore(t)
		path := filepath.Join(t.TempDir(), "graph.json")
		require.NoError(t, s.Save(path))

		loaded, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, s.NodeCount(), loaded.NodeCount())
		assert.Equal(t, s.EdgeCount(), loaded.EdgeCount())

		comp, err := loaded.Node("comp")
		require.NoError(t, err)
		assert.Equal(t, []string{"i_clk", "i_clk_scan"}, comp.Elements["clocks"])

		edge, err := loaded.Edge("comp", models.EdgeGenerates, "sdc")
		require.NoError(t, err)
		require.Len(t, edge.Mappings, 1)
		assert.Equal(t, models.CategoryClockDomain, edge.Mappings[0].Category())
		assert.Equal(t, "clk_main", edge.Mappings[0].StringField("sdc_clock_name"))
	})

	t.Run("yaml round trip by extension", func(t *testing.T) {
		s := sampleStore(t)
		path := filepath.Join(t.TempDir(), "graph.yaml")
		require.NoError(t, s.Save(path))

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, s.NodeCount(), loaded.NodeCount())

		edge, err := loaded.Edge("comp", models.EdgeGenerates, "sdc")
		require.NoError(t, err)
		assert.Equal(t, "timing constraints", edge.Label)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("empty data", func(t *testing.T) {
		_, err := ParseSnapshot(nil, false)
		assert.Error(t, err)
	})

	t.Run("snapshot with dangling edge fails to build", func(t *testing.T) {
		snap := Snapshot{
			Nodes: []models.ArtifactNode{node("a", models.KindIPXACTComponent)},
			Edges: []models.DependencyEdge{{Source: "a", Target: "ghost", Kind: models.EdgeGenerates}},
		}
		_, err := FromSnapshot(snap)
		assert.ErrorIs(t, err, ErrDanglingReference)
	})

	t.Run("snapshot with duplicate node fails to build", func(t *testing.T) {
		snap := Snapshot{
			Nodes: []models.ArtifactNode{
				node("a", models.KindIPXACTComponent),
				node("a", models.KindIPXACTComponent),
			},
		}
		_, err := FromSnapshot(snap)
		assert.ErrorIs(t, err, ErrDuplicateNode)
	})
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMappingRecord(t *testing.T) {
	t.Run("category reads the category key", func(t *testing.T) {
		rec := MappingRecord{"category": CategoryClockDomain}
		assert.Equal(t, CategoryClockDomain, rec.Category())
	})

	t.Run("missing category is empty", func(t *testing.T) {
		assert.Empty(t, MappingRecord{}.Category())
		assert.Empty(t, MappingRecord{"category": 42}.Category())
	})

	t.Run("has field treats nil and empty string as absent", func(t *testing.T) {
		rec := MappingRecord{
			"present": "value",
			"nil":     nil,
			"empty":   "",
			"zero":    0,
		}
		assert.True(t, rec.HasField("present"))
		assert.False(t, rec.HasField("nil"))
		assert.False(t, rec.HasField("empty"))
		assert.False(t, rec.HasField("missing"))
		// Non-string values count as present; only empty strings are holes.
		assert.True(t, rec.HasField("zero"))
	})

	t.Run("string field returns empty for non-strings", func(t *testing.T) {
		rec := MappingRecord{"name": "clk_main", "count": 3}
		assert.Equal(t, "clk_main", rec.StringField("name"))
		assert.Empty(t, rec.StringField("count"))
		assert.Empty(t, rec.StringField("missing"))
	})
}

func TestEdgeID(t *testing.T) {
	t.Run("builds the canonical triple id", func(t *testing.T) {
		assert.Equal(t, "comp--generates-->sdc", EdgeID("comp", EdgeGenerates, "sdc"))
	})

	t.Run("edge method matches the free function", func(t *testing.T) {
		e := DependencyEdge{Source: "comp", Target: "sdc", Kind: EdgeGenerates}
		assert.Equal(t, EdgeID("comp", EdgeGenerates, "sdc"), e.EdgeID())
	})

	t.Run("kind distinguishes parallel edges", func(t *testing.T) {
		a := DependencyEdge{Source: "x", Target: "y", Kind: EdgeGenerates}
		b := DependencyEdge{Source: "x", Target: "y", Kind: EdgeConstrains}
		assert.NotEqual(t, a.EdgeID(), b.EdgeID())
	})
}

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siliconscope/core/internal/models"
)

func buildChain(t *testing.T, ids ...string) *Store {
	t.Helper()
	s := NewStore()
	for _, id := range ids {
		require.NoError(t, s.AddNode(node(id, models.KindEDAScript)))
	}
	for i := 0; i+1 < len(ids); i++ {
		require.NoError(t, s.AddEdge(models.DependencyEdge{
			Source: ids[i], Target: ids[i+1], Kind: models.EdgeGenerates,
		}))
	}
	return s
}

func TestSuccessorsPredecessors(t *testing.T) {
	t.Run("sorted neighbor ids", func(t *testing.T) {
		s := NewStore()
		for _, id := range []string{"root", "z", "a", "m"} {
			require.NoError(t, s.AddNode(node(id, models.KindEDAScript)))
		}
		for _, tgt := range []string{"z", "a", "m"} {
			require.NoError(t, s.AddEdge(models.DependencyEdge{Source: "root", Target: tgt, Kind: models.EdgeGenerates}))
		}

		assert.Equal(t, []string{"a", "m", "z"}, s.Successors("root"))
		assert.Equal(t, []string{"root"}, s.Predecessors("a"))
		assert.Empty(t, s.Predecessors("root"))
	})

	t.Run("parallel edges yield one neighbor", func(t *testing.T) {
		s := buildChain(t, "a", "b")
		require.NoError(t, s.AddEdge(models.DependencyEdge{Source: "a", Target: "b", Kind: models.EdgeConstrains}))
		assert.Equal(t, []string{"b"}, s.Successors("a"))
	})
}

func TestCycleDetection(t *testing.T) {
	t.Run("acyclic chain", func(t *testing.T) {
		s := buildChain(t, "a", "b", "c")
		assert.False(t, s.HasCycle())
	})

	t.Run("self loop", func(t *testing.T) {
		s := buildChain(t, "a")
		require.NoError(t, s.AddEdge(models.DependencyEdge{Source: "a", Target: "a", Kind: models.EdgeReferences}))
		assert.True(t, s.HasCycle())
	})

	t.Run("three node cycle", func(t *testing.T) {
		s := buildChain(t, "a", "b", "c")
		require.NoError(t, s.AddEdge(models.DependencyEdge{Source: "c", Target: "a", Kind: models.EdgeReferences}))
		assert.True(t, s.HasCycle())
	})
}

func TestTopologicalOrder(t *testing.T) {
	t.Run("respects edge direction", func(t *testing.T) {
		s := buildChain(t, "c", "a", "b") // c -> a -> b
		order, err := s.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, order)
	})

	t.Run("ties broken by id", func(t *testing.T) {
		s := NewStore()
		for _, id := range []string{"z", "a", "m"} {
			require.NoError(t, s.AddNode(node(id, models.KindEDAScript)))
		}
		order, err := s.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "m", "z"}, order)
	})

	t.Run("cycle yields error", func(t *testing.T) {
		s := buildChain(t, "a", "b")
		require.NoError(t, s.AddEdge(models.DependencyEdge{Source: "b", Target: "a", Kind: models.EdgeReferences}))
		_, err := s.TopologicalOrder()
		assert.ErrorIs(t, err, ErrCycle)
	})
}

func TestShortestPath(t *testing.T) {
	t.Run("direct chain", func(t *testing.T) {
		s := buildChain(t, "a", "b", "c")
		path, err := s.ShortestPath("a", "c")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, path)
	})

	t.Run("picks shorter of two routes", func(t *testing.T) {
		s := buildChain(t, "a", "b", "c", "d")
		require.NoError(t, s.AddEdge(models.DependencyEdge{Source: "a", Target: "d", Kind: models.EdgeReferences}))
		path, err := s.ShortestPath("a", "d")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "d"}, path)
	})

	t.Run("unreachable target yields empty path, not error", func(t *testing.T) {
		s := buildChain(t, "a", "b")
		require.NoError(t, s.AddNode(node("island", models.KindEDAScript)))
		path, err := s.ShortestPath("a", "island")
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("edges are directed", func(t *testing.T) {
		s := buildChain(t, "a", "b")
		path, err := s.ShortestPath("b", "a")
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("source equals target", func(t *testing.T) {
		s := buildChain(t, "a")
		path, err := s.ShortestPath("a", "a")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, path)
	})

	t.Run("unknown endpoints are an error", func(t *testing.T) {
		s := buildChain(t, "a")
		_, err := s.ShortestPath("a", "ghost")
		assert.ErrorIs(t, err, ErrNodeNotFound)
		_, err = s.ShortestPath("ghost", "a")
		assert.ErrorIs(t, err, ErrNodeNotFound)
	})
}

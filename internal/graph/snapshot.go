package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/siliconscope/core/internal/models"
)

// Snapshot is the flat persisted form of a graph: the full node and edge
// sets, mapping records carried verbatim. The element inventory is part of
// the node records so a reloaded graph validates identically.
type Snapshot struct {
	Nodes []models.ArtifactNode   `json:"nodes" yaml:"nodes"`
	Edges []models.DependencyEdge `json:"edges" yaml:"edges"`
}

// Snapshot captures the current node/edge sets, sorted by id.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{Nodes: s.Nodes(), Edges: s.Edges()}
}

// Save writes the graph snapshot to path. The encoding follows the file
// extension: .yaml/.yml for YAML, anything else JSON.
func (s *Store) Save(path string) error {
	snap := s.Snapshot()
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(snap)
	} else {
		data, err = json.MarshalIndent(snap, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal graph snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a snapshot file and reconstructs a store from it. Structural
// problems in the snapshot (duplicate ids, dangling edges) surface as the
// same errors the CRUD operations raise.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph snapshot: %w", err)
	}
	snap, err := ParseSnapshot(data, isYAML(path))
	if err != nil {
		return nil, err
	}
	return FromSnapshot(snap)
}

// ParseSnapshot decodes snapshot bytes without building a store.
func ParseSnapshot(data []byte, asYAML bool) (Snapshot, error) {
	if len(data) == 0 {
		return Snapshot{}, fmt.Errorf("empty snapshot data")
	}
	var snap Snapshot
	if asYAML {
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &snap); err != nil {
			return Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
	}
	return snap, nil
}

// FromSnapshot builds a store from decoded snapshot data.
func FromSnapshot(snap Snapshot) (*Store, error) {
	store := NewStore()
	for _, node := range snap.Nodes {
		if err := store.AddNode(node); err != nil {
			return nil, err
		}
	}
	for _, edge := range snap.Edges {
		if err := store.AddEdge(edge); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func isYAML(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Package graph holds the dependency graph store: node/edge CRUD with
// structural integrity guarantees, adjacency-list traversal primitives,
// and flat snapshot persistence. The store never inspects mapping record
// content; that is the validator's job.
package graph

import (
	"fmt"
	"sort"

	"github.com/siliconscope/core/internal/models"
)

// Store is the in-process owner of all nodes and edges. It is not safe for
// concurrent mutation; callers follow a single-writer discipline.
type Store struct {
	nodes map[string]models.ArtifactNode
	edges map[string]models.DependencyEdge
	// Adjacency lists keyed by node id; each entry maps a neighbor id to
	// the ids of the parallel edges between the pair.
	out map[string]map[string][]string
	in  map[string]map[string][]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		nodes: make(map[string]models.ArtifactNode),
		edges: make(map[string]models.DependencyEdge),
		out:   make(map[string]map[string][]string),
		in:    make(map[string]map[string][]string),
	}
}

// AddNode adds a node. The id must be new.
func (s *Store) AddNode(node models.ArtifactNode) error {
	if node.ID == "" {
		return fmt.Errorf("%w: empty node id", ErrDanglingReference)
	}
	if _, exists := s.nodes[node.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, node.ID)
	}
	s.nodes[node.ID] = node
	s.out[node.ID] = make(map[string][]string)
	s.in[node.ID] = make(map[string][]string)
	return nil
}

// UpdateNode replaces the stored state of an existing node. The node's
// kind is part of its identity and may not change; the element inventory
// and metadata may.
func (s *Store) UpdateNode(node models.ArtifactNode) error {
	existing, ok := s.nodes[node.ID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, node.ID)
	}
	if node.Kind != existing.Kind {
		return fmt.Errorf("%w: cannot change kind of %q from %s to %s",
			ErrImmutableIdentity, node.ID, existing.Kind, node.Kind)
	}
	s.nodes[node.ID] = node
	return nil
}

// RemoveNode removes a node and cascades to every edge touching it, so no
// dangling edge ever persists.
func (s *Store) RemoveNode(id string) error {
	if _, ok := s.nodes[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	for _, edgeIDs := range s.out[id] {
		for _, eid := range edgeIDs {
			e := s.edges[eid]
			delete(s.edges, eid)
			s.in[e.Target][id] = removeString(s.in[e.Target][id], eid)
			if len(s.in[e.Target][id]) == 0 {
				delete(s.in[e.Target], id)
			}
		}
	}
	for _, edgeIDs := range s.in[id] {
		for _, eid := range edgeIDs {
			e := s.edges[eid]
			delete(s.edges, eid)
			s.out[e.Source][id] = removeString(s.out[e.Source][id], eid)
			if len(s.out[e.Source][id]) == 0 {
				delete(s.out[e.Source], id)
			}
		}
	}
	delete(s.out, id)
	delete(s.in, id)
	delete(s.nodes, id)
	return nil
}

// Node fetches a node by id.
func (s *Store) Node(id string) (models.ArtifactNode, error) {
	node, ok := s.nodes[id]
	if !ok {
		return models.ArtifactNode{}, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return node, nil
}

// HasNode reports whether the id is present.
func (s *Store) HasNode(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// Nodes returns all nodes sorted by id. Sorted iteration keeps validator
// and scan output deterministic across runs.
func (s *Store) Nodes() []models.ArtifactNode {
	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]models.ArtifactNode, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.nodes[id])
	}
	return out
}

// NodesByKind returns all nodes of one kind, sorted by id.
func (s *Store) NodesByKind(kind models.NodeKind) []models.ArtifactNode {
	var out []models.ArtifactNode
	for _, n := range s.Nodes() {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// NodesByDomain returns all nodes tagged with one domain, sorted by id.
func (s *Store) NodesByDomain(domain models.Domain) []models.ArtifactNode {
	var out []models.ArtifactNode
	for _, n := range s.Nodes() {
		if n.Domain == domain {
			out = append(out, n)
		}
	}
	return out
}

// AddEdge adds an edge. Both endpoints must already exist and the
// (source, kind, target) triple must be new. A failed add leaves the
// store untouched.
func (s *Store) AddEdge(edge models.DependencyEdge) error {
	if _, ok := s.nodes[edge.Source]; !ok {
		return fmt.Errorf("%w: source node %q", ErrDanglingReference, edge.Source)
	}
	if _, ok := s.nodes[edge.Target]; !ok {
		return fmt.Errorf("%w: target node %q", ErrDanglingReference, edge.Target)
	}
	eid := edge.EdgeID()
	if _, exists := s.edges[eid]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateEdge, eid)
	}
	s.edges[eid] = edge
	s.out[edge.Source][edge.Target] = append(s.out[edge.Source][edge.Target], eid)
	s.in[edge.Target][edge.Source] = append(s.in[edge.Target][edge.Source], eid)
	return nil
}

// RemoveEdge removes the edge identified by (source, kind, target).
func (s *Store) RemoveEdge(source string, kind models.EdgeKind, target string) error {
	eid := models.EdgeID(source, kind, target)
	if _, ok := s.edges[eid]; !ok {
		return fmt.Errorf("%w: %q", ErrEdgeNotFound, eid)
	}
	delete(s.edges, eid)
	s.out[source][target] = removeString(s.out[source][target], eid)
	if len(s.out[source][target]) == 0 {
		delete(s.out[source], target)
	}
	s.in[target][source] = removeString(s.in[target][source], eid)
	if len(s.in[target][source]) == 0 {
		delete(s.in[target], source)
	}
	return nil
}

// Edge fetches the edge identified by (source, kind, target).
func (s *Store) Edge(source string, kind models.EdgeKind, target string) (models.DependencyEdge, error) {
	eid := models.EdgeID(source, kind, target)
	edge, ok := s.edges[eid]
	if !ok {
		return models.DependencyEdge{}, fmt.Errorf("%w: %q", ErrEdgeNotFound, eid)
	}
	return edge, nil
}

// Edges returns all edges sorted by edge id.
func (s *Store) Edges() []models.DependencyEdge {
	ids := make([]string, 0, len(s.edges))
	for id := range s.edges {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]models.DependencyEdge, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.edges[id])
	}
	return out
}

// EdgesFrom returns the edges whose source is the given node, sorted by
// edge id.
func (s *Store) EdgesFrom(id string) []models.DependencyEdge {
	return s.incident(s.out[id])
}

// EdgesTo returns the edges whose target is the given node, sorted by
// edge id.
func (s *Store) EdgesTo(id string) []models.DependencyEdge {
	return s.incident(s.in[id])
}

func (s *Store) incident(neighbors map[string][]string) []models.DependencyEdge {
	var ids []string
	for _, edgeIDs := range neighbors {
		ids = append(ids, edgeIDs...)
	}
	sort.Strings(ids)
	out := make([]models.DependencyEdge, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.edges[id])
	}
	return out
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int { return len(s.edges) }

// Summary describes the graph's composition for reporting.
type Summary struct {
	TotalNodes int                     `json:"total_nodes" yaml:"total_nodes"`
	TotalEdges int                     `json:"total_edges" yaml:"total_edges"`
	HasCycles  bool                    `json:"has_cycles" yaml:"has_cycles"`
	NodeKinds  map[models.NodeKind]int `json:"node_kinds" yaml:"node_kinds"`
	Domains    map[models.Domain]int   `json:"domains" yaml:"domains"`
}

// Summary computes node/edge counts per kind and domain plus a cycle flag.
func (s *Store) Summary() Summary {
	sum := Summary{
		TotalNodes: len(s.nodes),
		TotalEdges: len(s.edges),
		HasCycles:  s.HasCycle(),
		NodeKinds:  make(map[models.NodeKind]int),
		Domains:    make(map[models.Domain]int),
	}
	for _, n := range s.nodes {
		sum.NodeKinds[n.Kind]++
		sum.Domains[n.Domain]++
	}
	return sum
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

package graph

import (
	"fmt"
	"sort"
)

// Successors returns the ids of nodes reachable from id across one
// outgoing edge, sorted and deduplicated.
func (s *Store) Successors(id string) []string {
	return neighborIDs(s.out[id])
}

// Predecessors returns the ids of nodes with an edge into id, sorted and
// deduplicated.
func (s *Store) Predecessors(id string) []string {
	return neighborIDs(s.in[id])
}

func neighborIDs(neighbors map[string][]string) []string {
	out := make([]string, 0, len(neighbors))
	for id := range neighbors {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// HasCycle reports whether the graph contains a directed cycle.
func (s *Store) HasCycle() bool {
	_, err := s.TopologicalOrder()
	return err != nil
}

// TopologicalOrder returns a topological order over all node ids, or
// ErrCycle when none exists. Ties are broken by id so the order is stable.
func (s *Store) TopologicalOrder() ([]string, error) {
	indegree := make(map[string]int, len(s.nodes))
	for id := range s.nodes {
		indegree[id] = 0
	}
	for _, e := range s.edges {
		indegree[e.Target]++
	}

	// Kahn's algorithm with a sorted frontier.
	var ready []string
	for id, d := range indegree {
		if d == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(s.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		next := neighborIDs(s.out[id])
		changed := false
		for _, succ := range next {
			indegree[succ] -= len(s.out[id][succ])
			if indegree[succ] == 0 {
				ready = append(ready, succ)
				changed = true
			}
		}
		if changed {
			sort.Strings(ready)
		}
	}

	if len(order) != len(s.nodes) {
		return nil, fmt.Errorf("%w: topological sort not possible", ErrCycle)
	}
	return order, nil
}

// ShortestPath returns the node ids along a shortest directed path from
// source to target, endpoints included. An unreachable target yields an
// empty path, not an error; unknown endpoints are an error.
func (s *Store) ShortestPath(source, target string) ([]string, error) {
	if _, ok := s.nodes[source]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, source)
	}
	if _, ok := s.nodes[target]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, target)
	}
	if source == target {
		return []string{source}, nil
	}

	parent := map[string]string{source: ""}
	queue := []string{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, succ := range neighborIDs(s.out[current]) {
			if _, seen := parent[succ]; seen {
				continue
			}
			parent[succ] = current
			if succ == target {
				return buildPath(parent, source, target), nil
			}
			queue = append(queue, succ)
		}
	}
	return []string{}, nil
}

func buildPath(parent map[string]string, source, target string) []string {
	var reversed []string
	for id := target; id != ""; id = parent[id] {
		reversed = append(reversed, id)
		if id == source {
			break
		}
	}
	path := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}

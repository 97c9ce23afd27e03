// Package impact detects file-level changes against a stored hash
// baseline and propagates them through the dependency graph as bounded
// breadth-first impact chains.
package impact

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/siliconscope/core/internal/graph"
	"github.com/siliconscope/core/internal/models"
)

// DefaultMaxDepth bounds impact propagation on malformed or very deep
// graphs. There is no wall-clock timeout; the depth bound alone
// guarantees termination.
const DefaultMaxDepth = 50

// Detector hashes artifact files, diffs them against a baseline, and
// walks the graph to find everything a change can reach. It reads the
// store and never mutates it.
type Detector struct {
	store    *graph.Store
	baseline map[string]string // node id -> hex sha256
}

// NewDetector returns a detector over the given store with an empty
// baseline.
func NewDetector(store *graph.Store) *Detector {
	return &Detector{store: store, baseline: make(map[string]string)}
}

// SetBaseline replaces the baseline in memory.
func (d *Detector) SetBaseline(baseline map[string]string) {
	d.baseline = make(map[string]string, len(baseline))
	for k, v := range baseline {
		d.baseline[k] = v
	}
}

// Baseline returns a copy of the current baseline.
func (d *Detector) Baseline() map[string]string {
	out := make(map[string]string, len(d.baseline))
	for k, v := range d.baseline {
		out[k] = v
	}
	return out
}

// BuildBaseline hashes every node with a file reference and stores the
// result as the new baseline. Nodes whose file is absent are left out of
// the baseline; genuine I/O failures abort the build.
func (d *Detector) BuildBaseline() (map[string]string, error) {
	baseline := make(map[string]string)
	for _, node := range d.store.Nodes() {
		if node.FilePath == "" {
			continue
		}
		sum, err := HashFile(node.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to hash %q: %w", node.FilePath, err)
		}
		if sum != "" {
			baseline[node.ID] = sum
		}
	}
	d.baseline = baseline
	return d.Baseline(), nil
}

// SaveBaseline writes the baseline as a flat JSON map of node id to hex
// digest.
func (d *Detector) SaveBaseline(path string) error {
	data, err := json.MarshalIndent(d.baseline, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadBaseline reads a baseline file written by SaveBaseline.
func (d *Detector) LoadBaseline(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read baseline: %w", err)
	}
	baseline := make(map[string]string)
	if err := json.Unmarshal(data, &baseline); err != nil {
		return fmt.Errorf("failed to unmarshal baseline: %w", err)
	}
	d.baseline = baseline
	return nil
}

// HashFile returns the hex sha256 of the file's contents. A file that
// simply does not exist yields ("", nil): absence is a normal detection
// status, not an I/O failure.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DetectChanges hashes every file-backed node and diffs against the
// baseline. Unchanged files produce no entry. A node whose file became
// unreadable is reported with status "missing" and the scan continues;
// non-absence I/O failures are additionally joined into the returned
// error so they cannot be mistaken for deletions.
func (d *Detector) DetectChanges() ([]models.ChangedFile, error) {
	var (
		changes []models.ChangedFile
		hashErr error
	)
	for _, node := range d.store.Nodes() {
		if node.FilePath == "" {
			continue
		}
		newHash, err := HashFile(node.FilePath)
		if err != nil {
			hashErr = errors.Join(hashErr, fmt.Errorf("failed to hash %q: %w", node.FilePath, err))
		}
		oldHash, inBaseline := d.baseline[node.ID]

		switch {
		case !inBaseline && newHash != "":
			changes = append(changes, models.ChangedFile{
				NodeID: node.ID, Name: node.Name, FilePath: node.FilePath,
				NewHash: newHash, Status: models.StatusAdded,
			})
		case inBaseline && newHash == "":
			changes = append(changes, models.ChangedFile{
				NodeID: node.ID, Name: node.Name, FilePath: node.FilePath,
				OldHash: oldHash, Status: models.StatusMissing,
			})
		case inBaseline && oldHash != newHash:
			changes = append(changes, models.ChangedFile{
				NodeID: node.ID, Name: node.Name, FilePath: node.FilePath,
				OldHash: oldHash, NewHash: newHash, Status: models.StatusModified,
			})
		}
	}
	return changes, hashErr
}

// PropagateImpact runs a breadth-first traversal from every changed node,
// forward along successors up to maxDepth hops, recording the full path
// and edge kinds to each newly reached node. With upstream enabled an
// independent backward traversal from the same seed appends its chains to
// the same list; the two directions share no visited state, so a node can
// appear once per direction per seed but never twice within one
// direction's traversal.
func (d *Detector) PropagateImpact(changedIDs []string, maxDepth int, upstream bool) []models.ImpactChain {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	var chains []models.ImpactChain
	for _, seed := range changedIDs {
		if !d.store.HasNode(seed) {
			continue
		}
		chains = append(chains, d.walk(seed, maxDepth, false)...)
		if upstream {
			chains = append(chains, d.walk(seed, maxDepth, true)...)
		}
	}
	return chains
}

type frontier struct {
	id    string
	path  []string
	kinds []models.EdgeKind
}

func (d *Detector) walk(seed string, maxDepth int, backward bool) []models.ImpactChain {
	visited := map[string]bool{seed: true}
	var chains []models.ImpactChain

	queue := d.expand(frontier{id: seed, path: []string{seed}}, backward)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur.id] {
			continue
		}
		depth := len(cur.path) - 1
		if depth > maxDepth {
			continue
		}
		visited[cur.id] = true
		chains = append(chains, models.ImpactChain{
			SourceID:   seed,
			AffectedID: cur.id,
			Path:       append([]string(nil), cur.path...),
			EdgeKinds:  append([]models.EdgeKind(nil), cur.kinds...),
			Depth:      depth,
		})
		for _, next := range d.expand(cur, backward) {
			if !visited[next.id] {
				queue = append(queue, next)
			}
		}
	}
	return chains
}

// expand yields the next frontier entries one hop from cur. For parallel
// edges between the same pair the lexicographically first edge id decides
// the recorded kind, keeping chains deterministic.
func (d *Detector) expand(cur frontier, backward bool) []frontier {
	neighbors := d.store.Successors(cur.id)
	if backward {
		neighbors = d.store.Predecessors(cur.id)
	}
	out := make([]frontier, 0, len(neighbors))
	for _, n := range neighbors {
		var hop models.DependencyEdge
		if backward {
			hop = firstEdgeBetween(d.store, n, cur.id)
		} else {
			hop = firstEdgeBetween(d.store, cur.id, n)
		}
		out = append(out, frontier{
			id:    n,
			path:  append(append([]string(nil), cur.path...), n),
			kinds: append(append([]models.EdgeKind(nil), cur.kinds...), hop.Kind),
		})
	}
	return out
}

func firstEdgeBetween(store *graph.Store, source, target string) models.DependencyEdge {
	for _, e := range store.EdgesFrom(source) {
		if e.Target == target {
			return e
		}
	}
	return models.DependencyEdge{}
}

// FullScan combines detection and propagation into one report. The
// affected set is the union of every chain's terminal node across all
// seeds and directions. The report is always complete; a non-nil error
// reports hashing I/O failures encountered along the way.
func (d *Detector) FullScan(maxDepth int, upstream bool) (*models.ChangeReport, error) {
	changes, hashErr := d.DetectChanges()

	changedIDs := make([]string, 0, len(changes))
	for _, c := range changes {
		changedIDs = append(changedIDs, c.NodeID)
	}
	chains := d.PropagateImpact(changedIDs, maxDepth, upstream)

	affectedSet := make(map[string]bool)
	for _, ch := range chains {
		affectedSet[ch.AffectedID] = true
	}
	affected := make([]string, 0, len(affectedSet))
	for id := range affectedSet {
		affected = append(affected, id)
	}
	sort.Strings(affected)

	report := &models.ChangeReport{
		Timestamp:       time.Now().UTC(),
		ChangedFiles:    changes,
		ImpactChains:    chains,
		AffectedNodeIDs: affected,
	}
	return report, hashErr
}

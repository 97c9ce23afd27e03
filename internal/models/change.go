package models

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// ChangeStatus of one tracked file relative to the baseline.
type ChangeStatus string

const (
	StatusAdded    ChangeStatus = "added"
	StatusModified ChangeStatus = "modified"
	StatusMissing  ChangeStatus = "missing"
)

// ChangedFile records one detected change against the hash baseline.
type ChangedFile struct {
	NodeID   string       `json:"node_id" yaml:"node_id"`
	Name     string       `json:"name" yaml:"name"`
	FilePath string       `json:"file_path" yaml:"file_path"`
	OldHash  string       `json:"old_hash,omitempty" yaml:"old_hash,omitempty"`
	NewHash  string       `json:"new_hash,omitempty" yaml:"new_hash,omitempty"`
	Status   ChangeStatus `json:"status" yaml:"status"`
}

// ImpactChain is one traversal path from a changed node to a reachable
// node. Path holds the ordered node ids from source to affected; EdgeKinds
// holds the edge kind crossed at each hop. Depth is the hop count.
type ImpactChain struct {
	SourceID   string     `json:"source" yaml:"source"`
	AffectedID string     `json:"affected" yaml:"affected"`
	Path       []string   `json:"path" yaml:"path"`
	EdgeKinds  []EdgeKind `json:"edge_kinds" yaml:"edge_kinds"`
	Depth      int        `json:"depth" yaml:"depth"`
}

// ChangeReport aggregates one full scan: every detected change, every
// impact chain, and the deduplicated set of affected node ids. Reports
// reference ids only and never hold live graph objects.
type ChangeReport struct {
	Timestamp       time.Time     `json:"timestamp" yaml:"timestamp"`
	ChangedFiles    []ChangedFile `json:"changed_files" yaml:"changed_files"`
	ImpactChains    []ImpactChain `json:"impact_chains" yaml:"impact_chains"`
	AffectedNodeIDs []string      `json:"affected_nodes" yaml:"affected_nodes"`
}

// ChangeReportView adds the derived totals renderers expect.
type ChangeReportView struct {
	Timestamp     time.Time     `json:"timestamp" yaml:"timestamp"`
	ChangedFiles  []ChangedFile `json:"changed_files" yaml:"changed_files"`
	ImpactChains  []ImpactChain `json:"impact_chains" yaml:"impact_chains"`
	TotalChanged  int           `json:"total_changed" yaml:"total_changed"`
	TotalAffected int           `json:"total_affected" yaml:"total_affected"`
	AffectedNodes []string      `json:"affected_nodes" yaml:"affected_nodes"`
}

func (r *ChangeReport) View() ChangeReportView {
	affected := append([]string(nil), r.AffectedNodeIDs...)
	sort.Strings(affected)
	return ChangeReportView{
		Timestamp:     r.Timestamp,
		ChangedFiles:  r.ChangedFiles,
		ImpactChains:  r.ImpactChains,
		TotalChanged:  len(r.ChangedFiles),
		TotalAffected: len(affected),
		AffectedNodes: affected,
	}
}

// SaveJSON writes the report as indented JSON with derived totals.
func (r *ChangeReport) SaveJSON(path string) error {
	data, err := json.MarshalIndent(r.View(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal change report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// SaveYAML writes the report as YAML with derived totals.
func (r *ChangeReport) SaveYAML(path string) error {
	data, err := yaml.Marshal(r.View())
	if err != nil {
		return fmt.Errorf("failed to marshal change report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

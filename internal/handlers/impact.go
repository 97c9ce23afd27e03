package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/siliconscope/core/internal/graph"
	"github.com/siliconscope/core/internal/impact"
)

// ImpactRequest is the body of a POST /impact call: the graph snapshot,
// the hash baseline to diff against, and the propagation options.
type ImpactRequest struct {
	Snapshot        graph.Snapshot    `json:"snapshot"`
	Baseline        map[string]string `json:"baseline"`
	MaxDepth        int               `json:"max_depth,omitempty"`
	IncludeUpstream bool              `json:"include_upstream,omitempty"`
}

// ImpactHandler runs a full change scan for the posted snapshot and
// baseline and returns the change report. File hashing happens on the
// server's filesystem, so node file paths must be reachable here.
func ImpactHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	defer r.Body.Close()

	var req ImpactRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	store, err := graph.FromSnapshot(req.Snapshot)
	if err != nil {
		http.Error(w, "Inconsistent snapshot: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	detector := impact.NewDetector(store)
	detector.SetBaseline(req.Baseline)

	report, scanErr := detector.FullScan(req.MaxDepth, req.IncludeUpstream)
	if scanErr != nil {
		// The report is still complete; a masked I/O failure must not
		// pass for a deleted file.
		http.Error(w, "Scan hit I/O errors: "+scanErr.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(report.View()); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

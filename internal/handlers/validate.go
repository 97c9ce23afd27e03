// Package handlers provides HTTP request handlers for the API endpoints.
// It accepts graph snapshots over POST and returns the validation and
// change-impact reports as JSON.
package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/siliconscope/core/internal/graph"
	"github.com/siliconscope/core/internal/validator"
)

// ValidateHandler runs the mapping completeness validator on a snapshot
// posted in the request body and returns the report summary.
func ValidateHandler(w http.ResponseWriter, r *http.Request) {
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

	snap, err := graph.ParseSnapshot(body, false)
	if err != nil {
		http.Error(w, "Invalid snapshot: "+err.Error(), http.StatusBadRequest)
		return
	}

	store, err := graph.FromSnapshot(snap)
	if err != nil {
		http.Error(w, "Inconsistent snapshot: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	report := validator.Validate(store)

	w.Header().Set("Content-Type", "application/json")

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(report.Summary()); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

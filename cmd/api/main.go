// Package main starts an HTTP server exposing the dependency graph core:
// health checks, mapping completeness validation, and change-impact scans.
// It uses the internal handlers package to process incoming requests and
// return JSON reports.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/siliconscope/core/cmd/api/middleware"
	"github.com/siliconscope/core/internal/handlers"
)

func main() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handlers.HealthHandler)
	mux.HandleFunc("/validate", handlers.ValidateHandler)
	mux.HandleFunc("/impact", handlers.ImpactHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on %s", port)
	log.Fatal(http.ListenAndServe(":"+port, middleware.Cors(mux)))
}

package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dossier-ai/dossier/internal/infrastructure"
)

// buildRouter composes the root mux: liveness and readiness probes, the
// Prometheus scrape endpoint, and the API handler under its base path.
func buildRouter(infra *infrastructure.Infrastructure, apiHandler http.Handler, basePath string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	mux.Handle("GET /metrics", infra.Metrics.Handler())

	prefix := strings.TrimSuffix(basePath, "/")
	mux.Handle(prefix+"/", apiHandler)

	return mux
}

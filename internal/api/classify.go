package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dossier-ai/dossier/internal/pipeline"
	"github.com/dossier-ai/dossier/internal/queue"
	"github.com/dossier-ai/dossier/pkg/handlers"
	"github.com/dossier-ai/dossier/pkg/routes"
)

// ClassifyRequest submits documents for classification. With no paths the
// service classifies every PDF in the configured input folder. Enqueue
// defers the work to queue workers instead of running it inline.
type ClassifyRequest struct {
	Paths   []string `json:"paths,omitempty"`
	Enqueue bool     `json:"enqueue,omitempty"`
}

// ClassifyResponse reports the outcome of an inline classification call.
type ClassifyResponse struct {
	Results []pipeline.Result `json:"results"`
}

// EnqueueResponse reports how many tasks were accepted onto the queue.
type EnqueueResponse struct {
	Queued int      `json:"queued"`
	Paths  []string `json:"paths"`
}

type classifyHandler struct {
	runtime *Runtime
}

func (h *classifyHandler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/classify",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "", Handler: h.classify},
		},
	}
}

func (h *classifyHandler) classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handlers.RespondError(w, h.runtime.Logger, http.StatusBadRequest, err)
			return
		}
	}

	paths := req.Paths
	if len(paths) == 0 {
		scanned, err := scanFolder(h.runtime.InputFolder)
		if err != nil {
			handlers.RespondError(w, h.runtime.Logger, http.StatusInternalServerError, err)
			return
		}
		paths = scanned
	}

	if len(paths) == 0 {
		handlers.RespondJSON(w, http.StatusOK, ClassifyResponse{Results: []pipeline.Result{}})
		return
	}

	if req.Enqueue {
		h.enqueue(w, r, paths)
		return
	}

	states := h.runtime.Pipeline.RunBatch(r.Context(), paths)

	results := make([]pipeline.Result, len(states))
	for i, st := range states {
		results[i] = st.Result()
		if _, err := h.runtime.Runs.Record(r.Context(), st); err != nil {
			h.runtime.Logger.Error("run record failed", "id", st.ID, "error", err)
		}
	}

	handlers.RespondJSON(w, http.StatusOK, ClassifyResponse{Results: results})
}

func (h *classifyHandler) enqueue(w http.ResponseWriter, r *http.Request, paths []string) {
	queued := make([]string, 0, len(paths))
	for _, path := range paths {
		if err := h.runtime.Queue.Publish(r.Context(), queue.Task{Path: path}); err != nil {
			handlers.RespondError(w, h.runtime.Logger, http.StatusBadGateway,
				fmt.Errorf("enqueue %s: %w", path, err))
			return
		}
		queued = append(queued, path)
	}

	handlers.RespondJSON(w, http.StatusAccepted, EnqueueResponse{
		Queued: len(queued),
		Paths:  queued,
	})
}

// scanFolder lists the PDFs directly inside the input folder. A missing
// folder yields an empty batch rather than an error.
func scanFolder(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan input folder: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(folder, entry.Name()))
		}
	}
	return paths, nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dossier-ai/dossier/internal/config"
	"github.com/dossier-ai/dossier/internal/infrastructure"
	"github.com/dossier-ai/dossier/internal/intake"
	"github.com/dossier-ai/dossier/internal/organize"
	"github.com/dossier-ai/dossier/internal/pipeline"
	"github.com/dossier-ai/dossier/internal/queue"
	"github.com/dossier-ai/dossier/internal/router"
	"github.com/dossier-ai/dossier/internal/runs"
	"github.com/dossier-ai/dossier/internal/textclass"
	"github.com/dossier-ai/dossier/internal/vision"
)

// Worker consumes classification tasks from the queue, runs the pipeline,
// and persists each run.
type Worker struct {
	infra    *infrastructure.Infrastructure
	pipeline *pipeline.Pipeline
	runs     runs.System
	probes   *http.Server
}

func NewWorker(cfg *config.Config, metricsAddr string) (*Worker, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	logger := infra.Logger.With("module", "worker")

	p := pipeline.New(pipeline.Runtime{
		Extractor: intake.New(intake.Options{
			PreviewLimit: cfg.Pipeline.PreviewLimit,
			MaxImages:    cfg.Pipeline.MaxImages,
		}, logger),
		Vision:     vision.New(vision.NewAgentBackend(cfg.Agents.Vision), logger),
		Text:       textclass.New(textclass.NewAgentBackend(cfg.Agents.Text), logger),
		Router:     router.New(router.NewAgentArbiter(cfg.Agents.Arbiter), logger),
		Organizer:  organize.New(cfg.Pipeline.OutputFolder, logger),
		Observer:   infra.Metrics,
		Logger:     logger,
		Mode:       cfg.Pipeline.Mode,
		BatchLimit: cfg.Pipeline.BatchLimit,
	})

	return &Worker{
		infra:    infra,
		pipeline: p,
		runs:     runs.New(infra.Database.Connection(), logger, cfg.API.Pagination),
		probes:   newProbeServer(infra, metricsAddr),
	}, nil
}

func (w *Worker) Start() error {
	w.infra.Logger.Info("starting worker")

	if err := w.infra.Start(); err != nil {
		return err
	}

	lc := w.infra.Lifecycle

	go func() {
		w.infra.Logger.Info("probe server listening", "addr", w.probes.Addr)
		if err := w.probes.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.infra.Logger.Error("probe server error", "error", err)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		w.probes.Shutdown(shutdownCtx)
	})

	go func() {
		lc.WaitForStartup()
		w.infra.Logger.Info("worker ready")

		if err := w.infra.Queue.Subscribe(lc.Context(), w.handle); err != nil {
			w.infra.Logger.Error("subscription ended", "error", err)
		}
	}()

	return nil
}

func (w *Worker) Shutdown(timeout time.Duration) error {
	w.infra.Logger.Info("initiating shutdown")
	return w.infra.Lifecycle.Shutdown(timeout)
}

// handle runs one queued task end to end. Run states are always terminal,
// so the only error surface left is persistence.
func (w *Worker) handle(ctx context.Context, task queue.Task) error {
	st := w.pipeline.Run(ctx, task.Path)

	if _, err := w.runs.Record(ctx, st); err != nil {
		return err
	}
	return nil
}

func newProbeServer(infra *infrastructure.Infrastructure, addr string) *http.Server {
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

	return &http.Server{Addr: addr, Handler: mux}
}

// Package infrastructure assembles the shared services the server and
// worker both depend on: lifecycle coordination, logging, the database
// pool, the task queue, and pipeline metrics.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dossier-ai/dossier/internal/config"
	"github.com/dossier-ai/dossier/internal/metrics"
	"github.com/dossier-ai/dossier/internal/queue"
	"github.com/dossier-ai/dossier/pkg/database"
	"github.com/dossier-ai/dossier/pkg/lifecycle"
)

// Infrastructure holds the core systems required by the domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Queue     *queue.Queue
	Metrics   *metrics.Recorder
}

// New initializes all infrastructure systems from the application
// configuration. Nothing connects until Start registers the lifecycle
// hooks and the coordinator runs them.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	q, err := queue.New(&cfg.Queue, logger)
	if err != nil {
		return nil, fmt.Errorf("queue init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Queue:     q,
		Metrics:   metrics.NewRecorder(),
	}, nil
}

// Start registers the infrastructure systems with the lifecycle
// coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}

	i.Lifecycle.OnShutdown(func() {
		<-i.Lifecycle.Context().Done()
		i.Logger.Info("closing queue connection")
		i.Queue.Close()
	})

	return nil
}

package api

import (
	"github.com/dossier-ai/dossier/internal/config"
	"github.com/dossier-ai/dossier/internal/infrastructure"
	"github.com/dossier-ai/dossier/internal/intake"
	"github.com/dossier-ai/dossier/internal/organize"
	"github.com/dossier-ai/dossier/internal/pipeline"
	"github.com/dossier-ai/dossier/internal/router"
	"github.com/dossier-ai/dossier/internal/runs"
	"github.com/dossier-ai/dossier/internal/textclass"
	"github.com/dossier-ai/dossier/internal/vision"
	"github.com/dossier-ai/dossier/pkg/pagination"
)

// Runtime extends Infrastructure with the classification pipeline and the
// run-history system.
type Runtime struct {
	*infrastructure.Infrastructure
	Pipeline    *pipeline.Pipeline
	Runs        runs.System
	Pagination  pagination.Config
	InputFolder string
}

// NewRuntime builds the pipeline stages from configuration and wires them
// into an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	logger := infra.Logger.With("module", "api")

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

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Queue:     infra.Queue,
			Metrics:   infra.Metrics,
		},
		Pipeline:    p,
		Runs:        runs.New(infra.Database.Connection(), logger, cfg.API.Pagination),
		Pagination:  cfg.API.Pagination,
		InputFolder: cfg.Pipeline.InputFolder,
	}
}

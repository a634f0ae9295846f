// Package api assembles the HTTP surface: classification submission, run
// history, and aggregate statistics under one base path.
package api

import (
	"net/http"
	"strings"

	"github.com/dossier-ai/dossier/internal/config"
	"github.com/dossier-ai/dossier/internal/infrastructure"
	"github.com/dossier-ai/dossier/pkg/middleware"
	"github.com/dossier-ai/dossier/pkg/routes"
)

// NewHandler builds the API handler mounted at cfg.API.BasePath with CORS
// and request logging applied.
func NewHandler(cfg *config.Config, infra *infrastructure.Infrastructure) (http.Handler, *Runtime) {
	runtime := NewRuntime(cfg, infra)

	classify := &classifyHandler{runtime: runtime}
	runsHandler := runtime.Runs.Handler()

	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: strings.TrimSuffix(cfg.API.BasePath, "/"),
		Children: []routes.Group{
			classify.Routes(),
			runsHandler.Routes(),
			runsHandler.StatisticsRoutes(),
		},
	})

	stack := middleware.New()
	stack.Use(middleware.CORS(&cfg.API.CORS))
	stack.Use(middleware.Logger(runtime.Logger))

	return stack.Apply(mux), runtime
}

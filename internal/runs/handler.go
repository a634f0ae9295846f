package runs

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dossier-ai/dossier/pkg/handlers"
	"github.com/dossier-ai/dossier/pkg/pagination"
	"github.com/dossier-ai/dossier/pkg/routes"
)

// Handler exposes run-history operations over HTTP.
type Handler struct {
	system     System
	logger     *slog.Logger
	pagination pagination.Config
}

// Routes returns the run-history route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/runs",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: h.list},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: h.find},
			{Method: http.MethodDelete, Pattern: "/{id}", Handler: h.delete},
		},
	}
}

// StatisticsRoutes returns the aggregate statistics route group.
func (h *Handler) StatisticsRoutes() routes.Group {
	return routes.Group{
		Prefix: "/statistics",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "/overview", Handler: h.overview},
			{Method: http.MethodGet, Pattern: "/domains", Handler: h.domains},
		},
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.system.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	run, err := h.system.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, run)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.system.Statistics(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}

func (h *Handler) domains(w http.ResponseWriter, r *http.Request) {
	stats, err := h.system.Statistics(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string][]DomainCount{"domains": stats.Domains})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.system.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package runs

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/dossier-ai/dossier/internal/pipeline"
	"github.com/dossier-ai/dossier/pkg/pagination"
	"github.com/dossier-ai/dossier/pkg/routes"
)

func TestFiltersFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("domain", "finance")
	values.Set("success", "true")
	values.Set("filename", "report")

	f := FiltersFromQuery(values)

	if f.Domain == nil || *f.Domain != "finance" {
		t.Fatalf("domain = %v, want finance", f.Domain)
	}
	if f.Success == nil || !*f.Success {
		t.Fatalf("success = %v, want true", f.Success)
	}
	if f.Filename == nil || *f.Filename != "report" {
		t.Fatalf("filename = %v, want report", f.Filename)
	}
	if f.Method != nil || f.Stage != nil {
		t.Fatal("unset parameters should remain nil")
	}
}

func TestFiltersFromQueryIgnoresInvalidSuccess(t *testing.T) {
	values := url.Values{}
	values.Set("success", "maybe")

	if f := FiltersFromQuery(values); f.Success != nil {
		t.Fatalf("success = %v, want nil for unparseable value", f.Success)
	}
}

func TestFiltersWhere(t *testing.T) {
	domain := "law"
	success := false

	f := Filters{Domain: &domain, Success: &success}
	clause, args := f.where(0)

	want := " WHERE domain = $1 AND success = $2"
	if clause != want {
		t.Fatalf("clause = %q, want %q", clause, want)
	}
	if !reflect.DeepEqual(args, []any{"law", false}) {
		t.Fatalf("args = %v", args)
	}
}

func TestFiltersWhereOffset(t *testing.T) {
	method := "arbitrated"

	f := Filters{Method: &method}
	clause, args := f.where(2)

	if clause != " WHERE method = $3" {
		t.Fatalf("clause = %q", clause)
	}
	if len(args) != 1 || args[0] != "arbitrated" {
		t.Fatalf("args = %v", args)
	}
}

func TestFiltersWhereEmpty(t *testing.T) {
	clause, args := Filters{}.where(0)
	if clause != "" || args != nil {
		t.Fatalf("empty filters rendered %q with args %v", clause, args)
	}
}

type stubSystem struct {
	runs  map[uuid.UUID]*Run
	stats *Statistics
}

func (s *stubSystem) Handler() *Handler { return nil }

func (s *stubSystem) Record(_ context.Context, _ *pipeline.State) (*Run, error) {
	return nil, ErrInvalidRun
}

func (s *stubSystem) List(_ context.Context, page pagination.PageRequest, _ Filters) (*pagination.PageResult[Run], error) {
	data := make([]Run, 0, len(s.runs))
	for _, r := range s.runs {
		data = append(data, *r)
	}
	result := pagination.NewPageResult(data, len(data), page.Page, page.PageSize)
	return &result, nil
}

func (s *stubSystem) Find(_ context.Context, id uuid.UUID) (*Run, error) {
	run, ok := s.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return run, nil
}

func (s *stubSystem) Statistics(_ context.Context) (*Statistics, error) {
	return s.stats, nil
}

func (s *stubSystem) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.runs[id]; !ok {
		return ErrNotFound
	}
	delete(s.runs, id)
	return nil
}

func newTestHandler(system System) http.Handler {
	h := &Handler{
		system:     system,
		logger:     slog.New(slog.DiscardHandler),
		pagination: pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	}

	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix:   "/api",
		Children: []routes.Group{h.Routes(), h.StatisticsRoutes()},
	})
	return mux
}

func TestHandlerList(t *testing.T) {
	id := uuid.New()
	system := &stubSystem{runs: map[uuid.UUID]*Run{
		id: {ID: id, Filename: "invoice.pdf", Domain: "finance", Success: true},
	}}

	rec := httptest.NewRecorder()
	newTestHandler(system).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result pagination.PageResult[Run]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Total != 1 || len(result.Data) != 1 {
		t.Fatalf("total = %d, data = %d", result.Total, len(result.Data))
	}
	if result.Data[0].Filename != "invoice.pdf" {
		t.Fatalf("filename = %q", result.Data[0].Filename)
	}
}

func TestHandlerFind(t *testing.T) {
	id := uuid.New()
	system := &stubSystem{runs: map[uuid.UUID]*Run{
		id: {ID: id, Filename: "thesis.pdf", Domain: "science"},
	}}
	handler := newTestHandler(system)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/"+id.String(), nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var run Run
	if err := json.NewDecoder(rec.Body).Decode(&run); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if run.ID != id || run.Domain != "science" {
		t.Fatalf("run = %+v", run)
	}
}

func TestHandlerFindUnknown(t *testing.T) {
	handler := newTestHandler(&stubSystem{runs: map[uuid.UUID]*Run{}})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/"+uuid.NewString(), nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandlerFindMalformedID(t *testing.T) {
	handler := newTestHandler(&stubSystem{runs: map[uuid.UUID]*Run{}})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/not-a-uuid", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerStatisticsOverview(t *testing.T) {
	system := &stubSystem{stats: &Statistics{
		TotalRuns: 3,
		Completed: 2,
		Failed:    1,
		Domains:   []DomainCount{{Domain: "finance", Count: 2}},
	}}

	rec := httptest.NewRecorder()
	newTestHandler(system).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/statistics/overview", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var stats Statistics
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.TotalRuns != 3 || len(stats.Domains) != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestHandlerStatisticsDomains(t *testing.T) {
	system := &stubSystem{stats: &Statistics{
		Domains: []DomainCount{
			{Domain: "finance", Count: 2},
			{Domain: "law", Count: 1},
		},
	}}

	rec := httptest.NewRecorder()
	newTestHandler(system).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/statistics/domains", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string][]DomainCount
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body["domains"]) != 2 || body["domains"][0].Domain != "finance" {
		t.Fatalf("domains = %v", body["domains"])
	}
}

func TestHandlerDelete(t *testing.T) {
	id := uuid.New()
	system := &stubSystem{runs: map[uuid.UUID]*Run{id: {ID: id}}}
	handler := newTestHandler(system)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/runs/"+id.String(), nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(system.runs) != 0 {
		t.Fatal("run was not deleted")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/runs/"+id.String(), nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrDuplicate, http.StatusConflict},
		{ErrInvalidRun, http.StatusBadRequest},
		{context.Canceled, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

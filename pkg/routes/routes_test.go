package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func handlerTag(tag string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tag))
	}
}

func TestRegisterNestedGroups(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, Group{
		Prefix: "/api",
		Routes: []Route{
			{Method: http.MethodGet, Pattern: "/status", Handler: handlerTag("status")},
		},
		Children: []Group{
			{
				Prefix: "/items",
				Routes: []Route{
					{Method: http.MethodGet, Pattern: "", Handler: handlerTag("list")},
					{Method: http.MethodGet, Pattern: "/{id}", Handler: handlerTag("find")},
				},
			},
		},
	})

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/status", "status"},
		{http.MethodGet, "/api/items", "list"},
		{http.MethodGet, "/api/items/42", "find"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

		if rec.Code != http.StatusOK {
			t.Errorf("%s %s: status %d", tt.method, tt.path, rec.Code)
			continue
		}
		if got := rec.Body.String(); got != tt.want {
			t.Errorf("%s %s: handler %q, want %q", tt.method, tt.path, got, tt.want)
		}
	}
}

func TestRegisterMethodMatching(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, Group{
		Prefix: "/api",
		Routes: []Route{
			{Method: http.MethodPost, Pattern: "/things", Handler: handlerTag("create")},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/things", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET on POST route: status %d, want 405", rec.Code)
	}
}

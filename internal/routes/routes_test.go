package routes

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestBuildServesRegisteredRoutes(t *testing.T) {
	sys := New(testLogger())
	sys.RegisterRoute(Route{Method: "GET", Pattern: "/healthz", Handler: respond("ok")})

	handler := sys.Build()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("GET /healthz = %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/healthz", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /healthz = %d, want 405", w.Code)
	}
}

func TestBuildPrefixesGroupRoutes(t *testing.T) {
	sys := New(testLogger())
	sys.RegisterGroup(Group{
		Prefix: "/api/listings",
		Routes: []Route{
			{Method: "GET", Pattern: "", Handler: respond("list")},
			{Method: "GET", Pattern: "/{id}", Handler: respond("find")},
		},
	})

	handler := sys.Build()

	tests := []struct {
		path string
		want string
	}{
		{"/api/listings", "list"},
		{"/api/listings/42", "find"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

		if w.Code != http.StatusOK || w.Body.String() != tt.want {
			t.Errorf("GET %s = %d %q, want %q", tt.path, w.Code, w.Body.String(), tt.want)
		}
	}
}

func TestBuildNestsChildGroups(t *testing.T) {
	sys := New(testLogger())
	sys.RegisterGroup(Group{
		Prefix: "/api",
		Children: []Group{
			{
				Prefix: "/generation",
				Routes: []Route{
					{Method: "GET", Pattern: "/agents", Handler: respond("agents")},
				},
			},
		},
	})

	handler := sys.Build()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/generation/agents", nil))

	if w.Code != http.StatusOK || w.Body.String() != "agents" {
		t.Errorf("GET /api/generation/agents = %d %q", w.Code, w.Body.String())
	}
}

func TestAccessors(t *testing.T) {
	sys := New(testLogger())
	sys.RegisterRoute(Route{Method: "GET", Pattern: "/healthz", Handler: respond("ok")})
	sys.RegisterGroup(Group{Prefix: "/api/listings"})

	if len(sys.Routes()) != 1 {
		t.Errorf("Routes() = %d entries", len(sys.Routes()))
	}
	if len(sys.Groups()) != 1 {
		t.Errorf("Groups() = %d entries", len(sys.Groups()))
	}
}

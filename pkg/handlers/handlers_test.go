package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/listing-lab/pkg/handlers"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	handlers.RespondJSON(rec, http.StatusCreated, map[string]string{"title": "Smartwatch"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if body["title"] != "Smartwatch" {
		t.Errorf("title = %q, want %q", body["title"], "Smartwatch")
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	handlers.RespondError(rec, testLogger(), http.StatusNotFound, errors.New("listing not found"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if body["error"] != "listing not found" {
		t.Errorf("error = %q, want %q", body["error"], "listing not found")
	}
}

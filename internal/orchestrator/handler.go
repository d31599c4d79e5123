package orchestrator

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/listing-lab/internal/agents"
	"github.com/JaimeStill/listing-lab/internal/routes"
	"github.com/JaimeStill/listing-lab/pkg/handlers"
)

// Handler provides HTTP handlers for listing generation operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a new generation HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

// buildRequest is the generation request body. Agents is optional; when
// present it restricts the build to that subset.
type buildRequest struct {
	Product agents.ProductInput `json:"product"`
	Agents  []agents.Name       `json:"agents,omitempty"`
}

// Routes returns the route group configuration for generation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api/generation",
		Tags:        []string{"Generation"},
		Description: "Agent-driven listing generation, rerun, and recommendations",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Build},
			{Method: "GET", Pattern: "/agents", Handler: h.Agents},
			{Method: "POST", Pattern: "/{id}/agents/{agent}", Handler: h.Rerun},
			{Method: "POST", Pattern: "/{id}/recommendations", Handler: h.Recommendations},
		},
	}
}

// Build handles POST /api/generation to run the agent pipeline against a
// product description and persist the merged listing.
func (h *Handler) Build(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.BuildListing(r.Context(), req.Product, req.Agents)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Agents handles GET /api/generation/agents to describe the registered agents
// in invocation order.
func (h *Handler) Agents(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Agents())
}

// Rerun handles POST /api/generation/{id}/agents/{agent} to re-execute one
// agent against a stored listing and re-merge its owned fields.
func (h *Handler) Rerun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.RerunAgent(r.Context(), id, agents.Name(r.PathValue("agent")))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Recommendations handles POST /api/generation/{id}/recommendations to apply
// the listing's stored review recommendations as field updates.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.ApplyRecommendations(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Package orchestrator coordinates listing generation: it dispatches the
// agent set concurrently, merges their results under single field ownership,
// scores aggregate confidence, and persists through the listing store. Agent
// failures degrade to fallback content; only store errors propagate.
package orchestrator

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/listing-lab/internal/agents"
	"github.com/JaimeStill/listing-lab/internal/config"
	"github.com/JaimeStill/listing-lab/internal/listings"
)

// System defines listing generation operations.
type System interface {
	BuildListing(ctx context.Context, input agents.ProductInput, subset []agents.Name) (*listings.Listing, error)
	RerunAgent(ctx context.Context, id uuid.UUID, name agents.Name) (*listings.Listing, error)
	ApplyRecommendations(ctx context.Context, id uuid.UUID) (*listings.Listing, error)
	Agents() []agents.Info
}

// New creates a System that dispatches through registry and persists to store.
// gen is used directly for recommendation rewrites; agent generation runs
// through the generators the agents were constructed with.
func New(registry *agents.Registry, store listings.System, gen agents.Generator, cfg *config.GenerationConfig, logger *slog.Logger) System {
	return &orchestrator{
		registry: registry,
		store:    store,
		gen:      gen,
		cfg:      cfg,
		logger:   logger.With("system", "orchestrator"),
	}
}

type orchestrator struct {
	registry *agents.Registry
	store    listings.System
	gen      agents.Generator
	cfg      *config.GenerationConfig
	logger   *slog.Logger
}

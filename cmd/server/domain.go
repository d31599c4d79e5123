package main

import (
	"github.com/JaimeStill/listing-lab/agents/listing"
	"github.com/JaimeStill/listing-lab/internal/agents"
	"github.com/JaimeStill/listing-lab/internal/config"
	"github.com/JaimeStill/listing-lab/internal/infrastructure"
	"github.com/JaimeStill/listing-lab/internal/listings"
	"github.com/JaimeStill/listing-lab/internal/orchestrator"
)

// Domain holds the listing store and the orchestrator built over it.
type Domain struct {
	Listings     listings.System
	Orchestrator orchestrator.System
}

// NewDomain registers the listing agents against the inference client and
// assembles the domain systems.
func NewDomain(cfg *config.Config, infra *infrastructure.Infrastructure) *Domain {
	gen := orchestrator.NewLoggingGenerator(
		infra.Inference,
		infra.Logger,
		cfg.Generation.MaxRawCaptureBytes(),
	)

	registry := agents.NewRegistry()
	listing.Register(registry, gen, listing.DefaultTables())

	store := listings.New(infra.Database.Connection(), infra.Logger, cfg.Pagination)

	return &Domain{
		Listings:     store,
		Orchestrator: orchestrator.New(registry, store, gen, &cfg.Generation, infra.Logger),
	}
}

package main

import (
	"net/http"

	"github.com/JaimeStill/listing-lab/internal/config"
	"github.com/JaimeStill/listing-lab/internal/infrastructure"
	"github.com/JaimeStill/listing-lab/internal/listings"
	"github.com/JaimeStill/listing-lab/internal/orchestrator"
	"github.com/JaimeStill/listing-lab/internal/routes"
	"github.com/JaimeStill/listing-lab/pkg/lifecycle"
)

// buildRoutes registers the domain route groups and health endpoints and
// builds the root handler.
func buildRoutes(cfg *config.Config, infra *infrastructure.Infrastructure, domain *Domain) http.Handler {
	routeSys := routes.New(infra.Logger)

	routeSys.RegisterGroup(listings.NewHandler(domain.Listings, infra.Logger, cfg.Pagination).Routes())
	routeSys.RegisterGroup(orchestrator.NewHandler(domain.Orchestrator, infra.Logger).Routes())

	routeSys.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
	})
	routeSys.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: handleReadyCheck(infra.Lifecycle),
	})

	return routeSys.Build()
}

// handleHealthCheck responds with OK status for health monitoring.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReadyCheck reports whether startup has completed.
func handleReadyCheck(lc *lifecycle.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !lc.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	}
}

package main

import (
	"github.com/JaimeStill/listing-lab/internal/config"
	"github.com/JaimeStill/listing-lab/internal/infrastructure"
	"github.com/JaimeStill/listing-lab/internal/middleware"
)

// buildMiddleware creates the middleware stack with request logging, trailing
// slash normalization, and CORS.
func buildMiddleware(infra *infrastructure.Infrastructure, cfg *config.Config) middleware.System {
	middlewareSys := middleware.New()
	middlewareSys.Use(middleware.Logger(infra.Logger))
	middlewareSys.Use(middleware.TrimSlash())
	middlewareSys.Use(middleware.CORS(&cfg.CORS))
	return middlewareSys
}

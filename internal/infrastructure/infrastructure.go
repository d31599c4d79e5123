// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies (lifecycle, logging, database, inference)
// that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/listing-lab/internal/config"
	"github.com/JaimeStill/listing-lab/internal/inference"
	"github.com/JaimeStill/listing-lab/migrations"
	"github.com/JaimeStill/listing-lab/pkg/database"
	"github.com/JaimeStill/listing-lab/pkg/lifecycle"
	"github.com/JaimeStill/listing-lab/pkg/logging"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, and model inference.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Inference *inference.Client

	migrate bool
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	client, err := inference.New(&cfg.Inference, logger)
	if err != nil {
		return nil, fmt.Errorf("inference init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Inference: client,
		migrate:   cfg.Database.Migrate,
	}, nil
}

// Start connects the database, applies pending schema migrations when
// configured, and registers teardown with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}

	if i.migrate {
		if err := database.Migrate(i.Database.Connection(), migrations.Files); err != nil {
			return fmt.Errorf("database migration failed: %w", err)
		}
		i.Logger.Info("database schema migrated")
	}

	return nil
}

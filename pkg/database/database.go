// Package database provides PostgreSQL connectivity with lifecycle-managed
// startup, shutdown, and schema migration.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/listing-lab/pkg/lifecycle"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// System exposes the database connection and binds its lifetime to the
// lifecycle coordinator.
type System interface {
	Connection() *sql.DB
	Start(lc *lifecycle.Coordinator) error
}

type system struct {
	db     *sql.DB
	cfg    *Config
	logger *slog.Logger
}

// New opens a connection pool from cfg. The pool is configured but not
// verified; Start pings the database and registers shutdown.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &system{
		db:     db,
		cfg:    cfg,
		logger: logger.With("system", "database"),
	}, nil
}

func (s *system) Connection() *sql.DB {
	return s.db
}

// Start verifies connectivity and registers pool shutdown with the
// lifecycle coordinator.
func (s *system) Start(lc *lifecycle.Coordinator) error {
	ctx, cancel := context.WithTimeout(lc.Context(), s.cfg.ConnTimeoutDuration())
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	s.logger.Info("database connected", "host", s.cfg.Host, "name", s.cfg.Name)

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		if err := s.db.Close(); err != nil {
			s.logger.Error("database close failed", "error", err)
			return
		}

		s.logger.Info("database closed")
	})

	return nil
}

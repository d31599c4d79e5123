// Package main provides the seed command for populating the database with
// demo or test data. Seeders self-register and can run individually or
// together, each within a single transaction.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

// Seeder populates one domain's seed data.
type Seeder interface {
	// Name returns the unique identifier for this seeder.
	Name() string

	// Description returns a human-readable description of what this seeder does.
	Description() string

	// Seed executes the seeding logic within the provided transaction.
	Seed(ctx context.Context, tx *sql.Tx) error
}

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the registry. Seeders self-register via
// init() functions.
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns all registered seeders in name order.
func listSeeders() []Seeder {
	names := make([]string, 0, len(seeders))
	for name := range seeders {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]Seeder, 0, len(names))
	for _, name := range names {
		result = append(result, seeders[name])
	}
	return result
}

// runSeeder executes a single seeder by name within a transaction.
func runSeeder(ctx context.Context, db *sql.DB, name string) error {
	seeder, ok := getSeeder(name)
	if !ok {
		return fmt.Errorf("seeder not found: %s", name)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := seeder.Seed(ctx, tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("seed %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// runAllSeeders executes every registered seeder in name order within one
// transaction. If any seeder fails, the entire transaction is rolled back.
func runAllSeeders(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, seeder := range listSeeders() {
		if err := seeder.Seed(ctx, tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed %s: %w", seeder.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Package main provides the seed command for populating the database with
// initial or demo data. It supports multiple seeders that can be run
// individually or together within a single transaction.
package main

import (
	"context"
	"database/sql"
	"fmt"
)

// Seeder defines the interface for database seeders.
// Each seeder is responsible for populating a specific domain's data.
type Seeder interface {
	// Name returns the unique identifier for this seeder.
	Name() string

	// Description returns a human-readable description of what this seeder does.
	Description() string

	// Seed executes the seeding logic within the provided transaction.
	// The transaction allows all-or-nothing semantics across multiple seeders.
	Seed(ctx context.Context, tx *sql.Tx) error
}

// seedOrder fixes execution order: products reference categories, so
// categories must land first.
var seedOrder = []string{"users", "categories", "products"}

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the global registry.
// Seeders self-register via init() functions.
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

// getSeeder retrieves a seeder by name from the registry.
func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// runSeeders executes the named seeders in seedOrder within a single
// transaction. If any seeder fails, the entire transaction is rolled back.
func runSeeders(ctx context.Context, db *sql.DB, names []string) error {
	want := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := getSeeder(name); !ok {
			return fmt.Errorf("seeder not found: %s", name)
		}
		want[name] = true
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, name := range seedOrder {
		if !want[name] {
			continue
		}
		if err := seeders[name].Seed(ctx, tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

package main

import (
	"context"
	"database/sql"
	"fmt"
)

func init() {
	registerSeeder(&CategorySeeder{})
}

// CategorySeeder seeds the storefront category list. Categories are
// saved by slug, so repeated runs refresh rather than duplicate them.
type CategorySeeder struct{}

func (s *CategorySeeder) Name() string {
	return "categories"
}

func (s *CategorySeeder) Description() string {
	return "Seeds the product categories"
}

type seedCategory struct {
	Name        string
	Slug        string
	Description string
	Position    int
}

var seedCategories = []seedCategory{
	{Name: "Audio", Slug: "audio", Description: "Headphones, monitors, and interfaces", Position: 1},
	{Name: "Books", Slug: "books", Description: "Print and electronic technical reference", Position: 2},
	{Name: "Software", Slug: "software", Description: "Licenses and downloadable tools", Position: 3},
	{Name: "Accessories", Slug: "accessories", Description: "Cables, stands, and spares", Position: 4},
}

func (s *CategorySeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	const stmt = `
		INSERT INTO categories (name, slug, description, position)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    position = EXCLUDED.position,
		    updated_at = now()`

	for _, c := range seedCategories {
		if _, err := tx.ExecContext(ctx, stmt, c.Name, c.Slug, c.Description, c.Position); err != nil {
			return fmt.Errorf("save category %s: %w", c.Slug, err)
		}
	}

	return nil
}

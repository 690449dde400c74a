package main

import (
	"context"
	"database/sql"
	"fmt"
)

func init() {
	registerSeeder(&ProductSeeder{})
}

// ProductSeeder seeds a demo catalog spanning both product kinds.
// Products are saved by SKU, so repeated runs refresh rather than
// duplicate them. Categories must exist first; run the category seeder
// in the same invocation or beforehand.
type ProductSeeder struct{}

func (s *ProductSeeder) Name() string {
	return "products"
}

func (s *ProductSeeder) Description() string {
	return "Seeds demo products across both kinds"
}

type seedProduct struct {
	Kind        string
	Name        string
	Slug        string
	SKU         string
	Description string
	Price       string
	Category    string
	Attributes  string
}

var seedProducts = []seedProduct{
	{
		Kind:        "physical",
		Name:        "Closed-Back Studio Headphones",
		Slug:        "closed-back-studio-headphones",
		SKU:         "AUD-1001",
		Description: "Isolating over-ear headphones tuned for tracking sessions.",
		Price:       "149.00",
		Category:    "audio",
		Attributes:  `{"weight_grams": 310, "width_mm": 190, "height_mm": 210, "depth_mm": 95}`,
	},
	{
		Kind:        "physical",
		Name:        "Monitor Isolation Stands",
		Slug:        "monitor-isolation-stands",
		SKU:         "AUD-1002",
		Description: "Height-adjustable steel stands for nearfield monitors, sold as a pair.",
		Price:       "89.00",
		Category:    "audio",
		Attributes:  `{"weight_grams": 4200, "width_mm": 280, "height_mm": 420, "depth_mm": 260}`,
	},
	{
		Kind:        "physical",
		Name:        "Braided XLR Cable 3m",
		Slug:        "braided-xlr-cable-3m",
		SKU:         "ACC-3001",
		Description: "Balanced microphone cable with gold-plated connectors.",
		Price:       "24.50",
		Category:    "accessories",
		Attributes:  `{"weight_grams": 180}`,
	},
	{
		Kind:        "digital",
		Name:        "Synth Patch Library Vol. 1",
		Slug:        "synth-patch-library-vol-1",
		SKU:         "DIG-2001",
		Description: "400 patches for subtractive and wavetable synths.",
		Price:       "39.00",
		Category:    "audio",
		Attributes:  `{"file_format": "zip", "download_size_bytes": 734003200}`,
	},
	{
		Kind:        "digital",
		Name:        "Relational Schema Design Handbook",
		Slug:        "relational-schema-design-handbook",
		SKU:         "DIG-2002",
		Description: "A working guide to normalization, indexing, and migrations.",
		Price:       "29.00",
		Category:    "books",
		Attributes:  `{"file_format": "pdf", "download_size_bytes": 18874368}`,
	},
	{
		Kind:        "digital",
		Name:        "Mastering Plugin Suite",
		Slug:        "mastering-plugin-suite",
		SKU:         "DIG-2003",
		Description: "EQ, compression, and limiting plugins with preset chains.",
		Price:       "199.00",
		Category:    "software",
		Attributes:  `{"file_format": "dmg", "download_size_bytes": 1572864000}`,
	},
}

func (s *ProductSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	categoryIDs, err := s.categoryIDs(ctx, tx)
	if err != nil {
		return err
	}

	const stmt = `
		INSERT INTO products (kind, name, slug, sku, description, price, currency, category_id, attributes)
		VALUES ($1, $2, $3, $4, $5, $6, 'USD', $7, $8)
		ON CONFLICT (sku) DO UPDATE
		SET kind = EXCLUDED.kind,
		    name = EXCLUDED.name,
		    slug = EXCLUDED.slug,
		    description = EXCLUDED.description,
		    price = EXCLUDED.price,
		    category_id = EXCLUDED.category_id,
		    attributes = EXCLUDED.attributes,
		    updated_at = now()`

	for _, p := range seedProducts {
		categoryID, ok := categoryIDs[p.Category]
		if !ok {
			return fmt.Errorf("save product %s: unknown category slug %q", p.SKU, p.Category)
		}

		_, err := tx.ExecContext(ctx, stmt,
			p.Kind, p.Name, p.Slug, p.SKU, p.Description, p.Price, categoryID, p.Attributes)
		if err != nil {
			return fmt.Errorf("save product %s: %w", p.SKU, err)
		}
	}

	return nil
}

func (s *ProductSeeder) categoryIDs(ctx context.Context, tx *sql.Tx) (map[string]string, error) {
	rows, err := tx.QueryContext(ctx, "SELECT slug, id FROM categories")
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]string)
	for rows.Next() {
		var slug, id string
		if err := rows.Scan(&slug, &id); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		ids[slug] = id
	}
	return ids, rows.Err()
}

package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/JaimeStill/catalog-admin/internal/events"
	"github.com/JaimeStill/catalog-admin/internal/products"
	"github.com/JaimeStill/catalog-admin/internal/validation"
	"github.com/JaimeStill/catalog-admin/pkg/repository"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type repo struct {
	db       *sql.DB
	products products.System
	events   events.Publisher
	logger   *slog.Logger
}

// New creates an importer over the product system. Upserts flow through
// the product system so cache invalidation and change events fire per
// row; a completed import additionally publishes product.imported.
func New(db *sql.DB, products products.System, events events.Publisher, logger *slog.Logger) System {
	return &repo{
		db:       db,
		products: products,
		events:   events,
		logger:   logger.With("system", "importer"),
	}
}

func (r *repo) Import(ctx context.Context, src io.Reader) (*Report, error) {
	var rows []*Row
	if err := gocsv.Unmarshal(src, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}

	categories, err := r.categoryIDsBySlug(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{Errors: []RowError{}}

	for i, row := range rows {
		line := i + 2 // line 1 is the header

		cmd, verr := row.command()

		if row.Category != "" {
			id, ok := categories[row.Category]
			if !ok {
				verr.Add("category", "unknown category slug")
			} else {
				cmd.CategoryID = &id
			}
		}

		if verr.HasErrors() {
			report.fail(line, verr)
			continue
		}

		product, created, err := r.products.UpsertBySKU(ctx, cmd)
		if err != nil {
			r.failRow(report, line, err)
			continue
		}

		if active, ok := row.active(); ok && product.Active != active {
			if _, err := r.products.SetActive(ctx, product.ID, active); err != nil {
				r.failRow(report, line, err)
				continue
			}
		}

		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}

	r.events.Publish(ctx, events.Event{
		Entity: "product",
		Action: events.ActionImported,
		Name:   fmt.Sprintf("%d created, %d updated, %d failed", report.Created, report.Updated, report.Failed),
	})

	r.logger.Info("import complete",
		"rows", len(rows),
		"created", report.Created,
		"updated", report.Updated,
		"failed", report.Failed,
	)
	return report, nil
}

func (r *repo) failRow(report *Report, line int, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		report.fail(line, verr)
		return
	}

	report.Failed++
	report.Errors = append(report.Errors, RowError{Line: line, Message: err.Error()})
}

type categoryRef struct {
	Slug string
	ID   uuid.UUID
}

func scanCategoryRef(s repository.Scanner) (categoryRef, error) {
	var ref categoryRef
	err := s.Scan(&ref.Slug, &ref.ID)
	return ref, err
}

func (r *repo) categoryIDsBySlug(ctx context.Context) (map[string]uuid.UUID, error) {
	q := `SELECT slug, id FROM public.categories`

	refs, err := repository.QueryMany(ctx, r.db, q, nil, scanCategoryRef)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	categories := make(map[string]uuid.UUID, len(refs))
	for _, ref := range refs {
		categories[ref.Slug] = ref.ID
	}
	return categories, nil
}

const exportQuery = `
	SELECT p.sku, p.kind, p.name, p.description, p.price, p.currency, p.active, c.slug, p.attributes
	FROM public.products p
	LEFT JOIN public.categories c ON c.id = p.category_id
	%s
	ORDER BY p.sku`

func (r *repo) Export(ctx context.Context, dst io.Writer, activeOnly bool) error {
	filter := ""
	if activeOnly {
		filter = "WHERE p.active"
	}

	rows, err := repository.QueryMany(ctx, r.db, fmt.Sprintf(exportQuery, filter), nil, scanExportRow)
	if err != nil {
		return fmt.Errorf("query export rows: %w", err)
	}
	if rows == nil {
		rows = []*Row{}
	}

	r.logger.Info("export", "rows", len(rows), "active_only", activeOnly)
	return gocsv.Marshal(&rows, dst)
}

func scanExportRow(s repository.Scanner) (*Row, error) {
	var (
		row        Row
		desc       sql.NullString
		price      decimal.Decimal
		active     bool
		category   sql.NullString
		attributes []byte
	)

	err := s.Scan(
		&row.SKU, &row.Kind, &row.Name, &desc, &price,
		&row.Currency, &active, &category, &attributes,
	)
	if err != nil {
		return nil, err
	}

	row.Description = desc.String
	row.Price = price.String()
	row.Active = strconv.FormatBool(active)
	row.Category = category.String
	row.Attributes = string(attributes)
	return &row, nil
}

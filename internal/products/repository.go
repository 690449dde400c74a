package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/catalog-admin/internal/cache"
	"github.com/JaimeStill/catalog-admin/internal/events"
	"github.com/JaimeStill/catalog-admin/internal/validation"
	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/JaimeStill/catalog-admin/pkg/query"
	"github.com/JaimeStill/catalog-admin/pkg/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type repo struct {
	db         *sql.DB
	datasheets DatasheetStore
	cache      cache.System
	events     events.Publisher
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a product repository. Mutations invalidate the storefront
// cache and publish change events; deletion removes the product's
// datasheets through the datasheets system.
func New(db *sql.DB, datasheets DatasheetStore, cache cache.System, events events.Publisher, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		datasheets: datasheets,
		cache:      cache,
		events:     events,
		logger:     logger.With("system", "products"),
		pagination: pagination,
	}
}

const productColumns = `id, kind, name, slug, sku, description, price, currency, active, category_id, attributes, created_at, updated_at`

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[ProductSummary], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(summaryProjection, defaultSort).
		Join(categoryJoin).
		WhereSearch(page.Search, "Name", "SKU", "Slug")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Limit, page.Offset)
	summaries, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanProductSummary)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	result := pagination.NewPageResult(summaries, total, page)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Product, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		BuildSingle("ID", id)

	product, err := repository.QueryOne(ctx, r.db, q, args, scanProduct)
	if err != nil {
		return nil, mapProductError(err)
	}
	return &product, nil
}

func (r *repo) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("Slug", slug).
		WhereEquals("Active", true)

	q, args := qb.Build()

	product, err := repository.QueryOne(ctx, r.db, q, args, scanProduct)
	if err != nil {
		return nil, mapProductError(err)
	}
	return &product, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateProductCommand) (*Product, error) {
	attrs, err := cmd.Validate()
	if err != nil {
		return nil, err
	}

	slug := cmd.Slug
	if slug == "" {
		slug = slugify(cmd.Name)
	}
	currency := cmd.Currency
	if currency == "" {
		currency = "USD"
	}

	q := fmt.Sprintf(`
		INSERT INTO products(kind, name, slug, sku, description, price, currency, category_id, attributes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, productColumns)

	product, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Product, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			cmd.Kind, cmd.Name, slug, cmd.SKU, cmd.Description,
			cmd.Price, currency, cmd.CategoryID, attrs,
		}, scanProduct)
	})

	if err != nil {
		return nil, mapProductError(err)
	}

	r.cache.InvalidateProducts(ctx, product.Slug)
	r.events.Publish(ctx, events.Event{
		Entity: "product",
		Action: events.ActionCreated,
		ID:     product.ID,
		Name:   product.Name,
	})

	r.logger.Info("product created", "id", product.ID, "sku", product.SKU, "kind", product.Kind)
	return &product, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateProductCommand) (*Product, error) {
	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	attrs, err := cmd.Validate(current.Kind)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		UPDATE products
		SET name = $2, slug = $3, sku = $4, description = $5, price = $6,
			currency = $7, category_id = $8, attributes = $9, active = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, productColumns)

	product, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Product, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			id, cmd.Name, cmd.Slug, cmd.SKU, cmd.Description,
			cmd.Price, cmd.Currency, cmd.CategoryID, attrs, cmd.Active,
		}, scanProduct)
	})

	if err != nil {
		return nil, mapProductError(err)
	}

	r.cache.InvalidateProducts(ctx, current.Slug, product.Slug)
	r.events.Publish(ctx, events.Event{
		Entity: "product",
		Action: events.ActionUpdated,
		ID:     product.ID,
		Name:   product.Name,
	})

	r.logger.Info("product updated", "id", product.ID, "sku", product.SKU)
	return &product, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	// The FK cascade would drop the datasheet rows but leave their
	// stored files behind; purge through the datasheets system first.
	if err := purgeDatasheets(ctx, r.datasheets, id); err != nil {
		return err
	}

	q := `DELETE FROM products WHERE id = $1`

	if err := repository.ExecExpectOne(ctx, r.db, q, id); err != nil {
		return mapProductError(err)
	}

	r.cache.InvalidateProducts(ctx, current.Slug)
	r.events.Publish(ctx, events.Event{
		Entity: "product",
		Action: events.ActionDeleted,
		ID:     id,
		Name:   current.Name,
	})

	r.logger.Info("product deleted", "id", id, "sku", current.SKU)
	return nil
}

// purgeDatasheets deletes every datasheet of a product so the stored
// files are removed with the metadata rows.
func purgeDatasheets(ctx context.Context, store DatasheetStore, productID uuid.UUID) error {
	sheets, err := store.ListForProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("list datasheets: %w", err)
	}

	for _, sheet := range sheets {
		if err := store.Delete(ctx, sheet.ID); err != nil {
			return fmt.Errorf("delete datasheet %s: %w", sheet.ID, err)
		}
	}
	return nil
}

func (r *repo) SetActive(ctx context.Context, id uuid.UUID, active bool) (*Product, error) {
	q := fmt.Sprintf(`
		UPDATE products
		SET active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, productColumns)

	product, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Product, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, active}, scanProduct)
	})

	if err != nil {
		return nil, mapProductError(err)
	}

	r.cache.InvalidateProducts(ctx, product.Slug)
	r.events.Publish(ctx, events.Event{
		Entity: "product",
		Action: events.ActionUpdated,
		ID:     product.ID,
		Name:   product.Name,
	})

	r.logger.Info("product active state changed", "id", product.ID, "active", product.Active)
	return &product, nil
}

func (r *repo) UpsertBySKU(ctx context.Context, cmd CreateProductCommand) (*Product, bool, error) {
	attrs, err := cmd.Validate()
	if err != nil {
		return nil, false, err
	}

	slug := cmd.Slug
	if slug == "" {
		slug = slugify(cmd.Name)
	}
	currency := cmd.Currency
	if currency == "" {
		currency = "USD"
	}

	type upserted struct {
		product Product
		oldSlug string
		created bool
	}

	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (upserted, error) {
		var existingID uuid.UUID
		var existingKind Kind
		var existingSlug string

		err := tx.QueryRowContext(ctx,
			`SELECT id, kind, slug FROM products WHERE sku = $1 FOR UPDATE`, cmd.SKU,
		).Scan(&existingID, &existingKind, &existingSlug)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			q := fmt.Sprintf(`
				INSERT INTO products(kind, name, slug, sku, description, price, currency, category_id, attributes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING %s`, productColumns)

			product, err := repository.QueryOne(ctx, tx, q, []any{
				cmd.Kind, cmd.Name, slug, cmd.SKU, cmd.Description,
				cmd.Price, currency, cmd.CategoryID, attrs,
			}, scanProduct)
			return upserted{product: product, created: true}, err

		case err != nil:
			return upserted{}, err
		}

		if existingKind != Kind(cmd.Kind) {
			verr := validation.NewError()
			verr.Add("kind", "cannot be changed")
			return upserted{}, verr
		}

		q := fmt.Sprintf(`
			UPDATE products
			SET name = $2, slug = $3, description = $4, price = $5,
				currency = $6, category_id = $7, attributes = $8, updated_at = NOW()
			WHERE id = $1
			RETURNING %s`, productColumns)

		product, err := repository.QueryOne(ctx, tx, q, []any{
			existingID, cmd.Name, slug, cmd.Description,
			cmd.Price, currency, cmd.CategoryID, attrs,
		}, scanProduct)
		return upserted{product: product, oldSlug: existingSlug}, err
	})

	if err != nil {
		return nil, false, mapProductError(err)
	}

	action := events.ActionUpdated
	slugs := []string{result.product.Slug}
	if result.created {
		action = events.ActionCreated
	} else if result.oldSlug != result.product.Slug {
		slugs = append(slugs, result.oldSlug)
	}

	r.cache.InvalidateProducts(ctx, slugs...)
	r.events.Publish(ctx, events.Event{
		Entity: "product",
		Action: action,
		ID:     result.product.ID,
		Name:   result.product.Name,
	})

	r.logger.Info("product upserted", "id", result.product.ID, "sku", result.product.SKU, "created", result.created)
	return &result.product, result.created, nil
}

// mapProductError adds foreign key awareness to the shared error mapping:
// a missing category surfaces as a client error, not a 500.
func mapProductError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrCategoryGone
	}
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

package categories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/catalog-admin/internal/cache"
	"github.com/JaimeStill/catalog-admin/internal/events"
	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/JaimeStill/catalog-admin/pkg/query"
	"github.com/JaimeStill/catalog-admin/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	cache      cache.System
	events     events.Publisher
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a category repository. Mutations clear the storefront cache
// and publish change events.
func New(db *sql.DB, cache cache.System, events events.Publisher, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		cache:      cache,
		events:     events,
		logger:     logger.With("system", "categories"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Category], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Slug")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	} else {
		qb.OrderByFields(defaultOrder)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Limit, page.Offset)
	cats, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	result := pagination.NewPageResult(cats, total, page)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Category, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		BuildSingle("ID", id)

	cat, err := repository.QueryOne(ctx, r.db, q, args, scanCategory)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &cat, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCategoryCommand) (*Category, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	slug := cmd.Slug
	if slug == "" {
		slug = slugify(cmd.Name)
	}

	q := `
		INSERT INTO categories(name, slug, description, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, slug, description, position, active, created_at, updated_at`

	cat, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Category, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Name, slug, cmd.Description, cmd.Position}, scanCategory)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.invalidate(ctx)
	r.events.Publish(ctx, events.Event{
		Entity: "category",
		Action: events.ActionCreated,
		ID:     cat.ID,
		Name:   cat.Name,
	})

	r.logger.Info("category created", "id", cat.ID, "slug", cat.Slug)
	return &cat, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCategoryCommand) (*Category, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, position = $5, active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, slug, description, position, active, created_at, updated_at`

	cat, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Category, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			id, cmd.Name, cmd.Slug, cmd.Description, cmd.Position, cmd.Active,
		}, scanCategory)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.invalidate(ctx)
	r.events.Publish(ctx, events.Event{
		Entity: "category",
		Action: events.ActionUpdated,
		ID:     cat.ID,
		Name:   cat.Name,
	})

	r.logger.Info("category updated", "id", cat.ID, "slug", cat.Slug)
	return &cat, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM categories WHERE id = $1`

	if err := repository.ExecExpectOne(ctx, r.db, q, id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.invalidate(ctx)
	r.events.Publish(ctx, events.Event{
		Entity: "category",
		Action: events.ActionDeleted,
		ID:     id,
	})

	r.logger.Info("category deleted", "id", id)
	return nil
}

// invalidate clears the whole storefront cache. Category names appear in
// cached product payloads, so targeted invalidation is not enough.
func (r *repo) invalidate(ctx context.Context) {
	r.cache.InvalidateAll(ctx)
}

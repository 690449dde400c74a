package datasheets

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/catalog-admin/internal/storage"
	"github.com/JaimeStill/catalog-admin/pkg/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type repo struct {
	db      *sql.DB
	storage storage.System
	logger  *slog.Logger
}

// New creates a datasheet repository over the database and blob storage.
func New(db *sql.DB, storage storage.System, logger *slog.Logger) System {
	return &repo{
		db:      db,
		storage: storage,
		logger:  logger.With("system", "datasheets"),
	}
}

func (r *repo) ListForProduct(ctx context.Context, productID uuid.UUID) ([]Datasheet, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM datasheets
		WHERE product_id = $1
		ORDER BY uploaded_at DESC`, datasheetColumns)

	sheets, err := repository.QueryMany(ctx, r.db, q, []any{productID}, scanDatasheet)
	if err != nil {
		return nil, fmt.Errorf("query datasheets: %w", err)
	}
	if sheets == nil {
		sheets = []Datasheet{}
	}
	return sheets, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Datasheet, error) {
	q := fmt.Sprintf(`SELECT %s FROM datasheets WHERE id = $1`, datasheetColumns)

	sheet, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanDatasheet)
	if err != nil {
		return nil, mapDatasheetError(err)
	}
	return &sheet, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateDatasheetCommand) (*Datasheet, error) {
	id := uuid.New()
	key := storageKey(id, cmd.Filename)

	if _, err := r.storage.Store(ctx, key, bytes.NewReader(cmd.Data)); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO datasheets(id, product_id, file_name, content_type, size_bytes, page_count, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, datasheetColumns)

	sheet, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Datasheet, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			id, cmd.ProductID, cmd.Filename, cmd.ContentType,
			cmd.SizeBytes, cmd.PageCount, key,
		}, scanDatasheet)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Error("cleanup failed after db error", "storage_path", key, "error", delErr)
		}
		return nil, mapDatasheetError(err)
	}

	r.logger.Info("datasheet created", "id", sheet.ID, "product_id", sheet.ProductID, "filename", sheet.Filename)
	return &sheet, nil
}

func (r *repo) Open(ctx context.Context, id uuid.UUID) (*Datasheet, io.ReadCloser, error) {
	sheet, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	content, err := r.storage.Retrieve(ctx, sheet.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("retrieve file: %w", err)
	}

	return sheet, content, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	sheet, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	q := `DELETE FROM datasheets WHERE id = $1`
	if err := repository.ExecExpectOne(ctx, r.db, q, id); err != nil {
		return mapDatasheetError(err)
	}

	if err := r.storage.Delete(ctx, sheet.StoragePath); err != nil {
		r.logger.Error("storage cleanup failed", "storage_path", sheet.StoragePath, "error", err)
	}

	r.logger.Info("datasheet deleted", "id", id, "product_id", sheet.ProductID)
	return nil
}

// mapDatasheetError adds foreign key awareness to the shared error
// mapping: an upload against a missing product is a client error.
func mapDatasheetError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrProductGone
	}
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

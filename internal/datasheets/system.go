package datasheets

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// System defines the interface for datasheet operations.
type System interface {
	// ListForProduct returns a product's datasheets, newest first.
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]Datasheet, error)

	// Find returns datasheet metadata by id.
	Find(ctx context.Context, id uuid.UUID) (*Datasheet, error)

	// Create stores the uploaded file and records its metadata. A missing
	// product reports ErrProductGone.
	Create(ctx context.Context, cmd CreateDatasheetCommand) (*Datasheet, error)

	// Open returns the stored content alongside its metadata. The caller
	// closes the reader.
	Open(ctx context.Context, id uuid.UUID) (*Datasheet, io.ReadCloser, error)

	// Delete removes the metadata row and the stored file.
	Delete(ctx context.Context, id uuid.UUID) error
}

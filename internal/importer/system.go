package importer

import (
	"context"
	"io"
)

// System defines the interface for catalog import/export operations.
type System interface {
	// Import reads CSV rows and upserts products by SKU. Rows fail
	// individually; a file that cannot be parsed fails as a whole with
	// ErrInvalidCSV.
	Import(ctx context.Context, src io.Reader) (*Report, error)

	// Export writes the catalog as CSV ordered by SKU, optionally
	// limited to active products.
	Export(ctx context.Context, dst io.Writer, activeOnly bool) error
}

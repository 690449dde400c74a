package products

import (
	"context"

	"github.com/JaimeStill/catalog-admin/internal/datasheets"
	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/google/uuid"
)

// DatasheetStore is the slice of the datasheets system product deletion
// depends on: enumerating a product's datasheets and deleting each one
// along with its stored file. datasheets.System satisfies it.
type DatasheetStore interface {
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]datasheets.Datasheet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// System defines the interface for product catalog operations.
type System interface {
	// List returns a paginated list of product summaries with optional
	// filtering by kind, category, and active state.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[ProductSummary], error)

	// Find returns a single product by id.
	Find(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySlug returns an active product by slug. Inactive products
	// report not found; this is the storefront lookup.
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// Create validates and creates a product of the command's kind.
	Create(ctx context.Context, cmd CreateProductCommand) (*Product, error)

	// Update validates and updates a product. The stored kind is
	// immutable.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateProductCommand) (*Product, error)

	// Delete removes a product and its datasheets.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetActive toggles storefront visibility.
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Product, error)

	// UpsertBySKU creates the product or, when the SKU exists, replaces
	// its catalog fields. Reports whether a new row was created.
	UpsertBySKU(ctx context.Context, cmd CreateProductCommand) (*Product, bool, error)
}

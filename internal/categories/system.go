package categories

import (
	"context"

	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the interface for category management operations.
type System interface {
	// List returns a paginated list of categories ordered by position.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Category], error)

	// Find returns a single category by id.
	Find(ctx context.Context, id uuid.UUID) (*Category, error)

	// Create creates a new category, deriving the slug from the name when
	// omitted.
	Create(ctx context.Context, cmd CreateCategoryCommand) (*Category, error)

	// Update updates a category.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCategoryCommand) (*Category, error)

	// Delete removes a category. Products referencing it keep existing
	// with no category.
	Delete(ctx context.Context, id uuid.UUID) error
}

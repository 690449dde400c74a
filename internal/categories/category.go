// Package categories manages the catalog's category tree: named groupings
// that products attach to and the storefront filters by.
package categories

import (
	"regexp"
	"strings"
	"time"

	"github.com/JaimeStill/catalog-admin/internal/validation"
	"github.com/google/uuid"
)

// Category represents a product grouping. Position orders categories in
// listings; inactive categories stay attached to products but drop out of
// storefront filters.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Position    int       `json:"position"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCategoryCommand contains the data needed to create a category.
// A blank slug is derived from the name.
type CreateCategoryCommand struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	Slug        string  `json:"slug,omitempty" validate:"omitempty,slug,max=140"`
	Description *string `json:"description,omitempty"`
	Position    int     `json:"position,omitempty" validate:"gte=0"`
}

// Validate checks the command against its field rules.
func (c CreateCategoryCommand) Validate() error {
	if verr := validation.Struct(c); verr != nil {
		return verr
	}
	return nil
}

// UpdateCategoryCommand contains the data needed to update a category.
type UpdateCategoryCommand struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	Slug        string  `json:"slug" validate:"required,slug,max=140"`
	Description *string `json:"description,omitempty"`
	Position    int     `json:"position,omitempty" validate:"gte=0"`
	Active      bool    `json:"active,omitempty"`
}

// Validate checks the command against its field rules.
func (c UpdateCategoryCommand) Validate() error {
	if verr := validation.Struct(c); verr != nil {
		return verr
	}
	return nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL slug from a display name.
func slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

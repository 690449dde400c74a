// Package products manages the product catalog: physical and digital
// products with kind-specific attribute sets, pricing, and category
// membership. Each kind carries its own serializer that validates and
// normalizes the attribute payload.
package products

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind discriminates the product taxonomy. It is fixed at creation; the
// attribute schema and the detail serializer follow from it.
type Kind string

const (
	KindPhysical Kind = "physical"
	KindDigital  Kind = "digital"
)

// Kinds returns every product kind in display order.
func Kinds() []Kind {
	return []Kind{KindPhysical, KindDigital}
}

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPhysical, KindDigital:
		return Kind(s), nil
	default:
		return "", ErrUnknownKind
	}
}

// Product is the full catalog record. Attributes hold the kind-specific
// fields as normalized JSON.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Kind        Kind            `json:"kind"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	SKU         string          `json:"sku"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Active      bool            `json:"active"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Attributes  json.RawMessage `json:"attributes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductSummary is the list projection: the columns the dashboard table
// and the storefront listing render, with the category resolved to its
// name.
type ProductSummary struct {
	ID           uuid.UUID       `json:"id"`
	Kind         Kind            `json:"kind"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	SKU          string          `json:"sku"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Active       bool            `json:"active"`
	CategoryName *string         `json:"category_name,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

package products

import (
	"encoding/json"
	"net/url"

	"github.com/JaimeStill/catalog-admin/pkg/query"
	"github.com/JaimeStill/catalog-admin/pkg/repository"
	"github.com/google/uuid"
)

var projection = query.
	NewProjectionMap("public", "products", "p").
	Project("id", "ID").
	Project("kind", "Kind").
	Project("name", "Name").
	Project("slug", "Slug").
	Project("sku", "SKU").
	Project("description", "Description").
	Project("price", "Price").
	Project("currency", "Currency").
	Project("active", "Active").
	Project("category_id", "CategoryID").
	Project("attributes", "Attributes").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var summaryProjection = query.
	NewProjectionMap("public", "products", "p").
	Project("id", "ID").
	Project("kind", "Kind").
	Project("name", "Name").
	Project("slug", "Slug").
	Project("sku", "SKU").
	Project("price", "Price").
	Project("currency", "Currency").
	Project("active", "Active").
	ProjectExpr("c.name", "CategoryName").
	Project("updated_at", "UpdatedAt")

const categoryJoin = "LEFT JOIN public.categories c ON c.id = p.category_id"

var defaultSort = query.SortField{Field: "Name"}

func scanProduct(s repository.Scanner) (Product, error) {
	var p Product
	var attrs []byte
	err := s.Scan(
		&p.ID, &p.Kind, &p.Name, &p.Slug, &p.SKU,
		&p.Description, &p.Price, &p.Currency, &p.Active,
		&p.CategoryID, &attrs, &p.CreatedAt, &p.UpdatedAt,
	)
	if len(attrs) > 0 {
		p.Attributes = json.RawMessage(attrs)
	}
	return p, err
}

func scanProductSummary(s repository.Scanner) (ProductSummary, error) {
	var p ProductSummary
	err := s.Scan(
		&p.ID, &p.Kind, &p.Name, &p.Slug, &p.SKU,
		&p.Price, &p.Currency, &p.Active,
		&p.CategoryName, &p.UpdatedAt,
	)
	return p, err
}

type Filters struct {
	Kind       *string
	CategoryID *uuid.UUID
	Active     *bool
}

func FiltersFromQuery(values url.Values) Filters {
	var kind *string
	if k := values.Get("kind"); k != "" {
		kind = &k
	}

	var categoryID *uuid.UUID
	if c := values.Get("category"); c != "" {
		if id, err := uuid.Parse(c); err == nil {
			categoryID = &id
		}
	}

	var active *bool
	switch values.Get("active") {
	case "true":
		t := true
		active = &t
	case "false":
		f := false
		active = &f
	}

	return Filters{
		Kind:       kind,
		CategoryID: categoryID,
		Active:     active,
	}
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	// category_id is not part of the summary projection; the qualified
	// column passes through the projection untouched.
	return b.
		WhereEquals("Kind", f.Kind).
		WhereEquals("p.category_id", f.CategoryID).
		WhereEquals("Active", f.Active)
}

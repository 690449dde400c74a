package categories

import (
	"net/url"

	"github.com/JaimeStill/catalog-admin/pkg/query"
	"github.com/JaimeStill/catalog-admin/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "categories", "c").
	Project("id", "ID").
	Project("name", "Name").
	Project("slug", "Slug").
	Project("description", "Description").
	Project("position", "Position").
	Project("active", "Active").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Position"}

// defaultOrder keeps listings stable when positions collide.
var defaultOrder = []query.SortField{
	{Field: "Position"},
	{Field: "Name"},
}

func scanCategory(s repository.Scanner) (Category, error) {
	var c Category
	err := s.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description,
		&c.Position, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

type Filters struct {
	Active *bool
}

func FiltersFromQuery(values url.Values) Filters {
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
		Active: active,
	}
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Active", f.Active)
}

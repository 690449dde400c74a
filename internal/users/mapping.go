package users

import (
	"net/url"

	"github.com/JaimeStill/catalog-admin/pkg/query"
	"github.com/JaimeStill/catalog-admin/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("username", "Username").
	Project("email", "Email").
	Project("role", "Role").
	Project("active", "Active").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Username"}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(
		&u.ID, &u.Username, &u.Email,
		&u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

type Filters struct {
	Role   *string
	Active *bool
}

func FiltersFromQuery(values url.Values) Filters {
	var role *string
	if r := values.Get("role"); r != "" {
		role = &r
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
		Role:   role,
		Active: active,
	}
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Role", f.Role).
		WhereEquals("Active", f.Active)
}

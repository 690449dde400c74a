package api

import (
	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/categories"
	"github.com/JaimeStill/catalog-admin/internal/datasheets"
	"github.com/JaimeStill/catalog-admin/internal/importer"
	"github.com/JaimeStill/catalog-admin/internal/products"
	"github.com/JaimeStill/catalog-admin/internal/users"
)

// Domain holds all domain systems that comprise the API. The dashboard
// module renders against the same systems, so the server builds one
// Domain and shares it.
type Domain struct {
	Users      users.System
	Categories categories.System
	Products   products.System
	Datasheets datasheets.System
	Importer   importer.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, tokens *auth.Tokens) *Domain {
	usersSys := users.New(
		runtime.Database.Connection(),
		tokens,
		runtime.Logger,
		runtime.Pagination,
	)

	categoriesSys := categories.New(
		runtime.Database.Connection(),
		runtime.Cache,
		runtime.Events,
		runtime.Logger,
		runtime.Pagination,
	)

	datasheetsSys := datasheets.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
	)

	productsSys := products.New(
		runtime.Database.Connection(),
		datasheetsSys,
		runtime.Cache,
		runtime.Events,
		runtime.Logger,
		runtime.Pagination,
	)

	importerSys := importer.New(
		runtime.Database.Connection(),
		productsSys,
		runtime.Events,
		runtime.Logger,
	)

	return &Domain{
		Users:      usersSys,
		Categories: categoriesSys,
		Products:   productsSys,
		Datasheets: datasheetsSys,
		Importer:   importerSys,
	}
}

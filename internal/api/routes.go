package api

import (
	"net/http"

	"github.com/JaimeStill/catalog-admin/internal/catalog"
	"github.com/JaimeStill/catalog-admin/internal/categories"
	"github.com/JaimeStill/catalog-admin/internal/config"
	"github.com/JaimeStill/catalog-admin/internal/datasheets"
	"github.com/JaimeStill/catalog-admin/internal/importer"
	"github.com/JaimeStill/catalog-admin/internal/products"
	"github.com/JaimeStill/catalog-admin/internal/users"
	"github.com/JaimeStill/catalog-admin/pkg/openapi"
	"github.com/JaimeStill/catalog-admin/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	basePath string,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	usersHandler := users.NewHandler(domain.Users, runtime.Logger, runtime.Pagination, &cfg.Auth)
	categoriesHandler := categories.NewHandler(domain.Categories, runtime.Logger, runtime.Pagination)
	productsHandler := products.NewHandler(domain.Products, runtime.Logger, runtime.Pagination)
	datasheetsHandler := datasheets.NewHandler(domain.Datasheets, runtime.Logger, cfg.Storage.MaxUploadSizeBytes())
	importerHandler := importer.NewHandler(domain.Importer, runtime.Logger, cfg.Storage.MaxUploadSizeBytes())
	catalogHandler := catalog.NewHandler(domain.Products, runtime.Cache, runtime.Logger, runtime.Pagination)

	routes.Register(
		mux,
		basePath,
		spec,
		usersHandler.AuthRoutes(),
		usersHandler.Routes(),
		categoriesHandler.Routes(),
		productsHandler.Routes(),
		datasheetsHandler.ProductRoutes(),
		datasheetsHandler.Routes(),
		importerHandler.Routes(),
		catalogHandler.Routes(),
	)
}

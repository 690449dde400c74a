// Package api assembles the REST module: every domain route group mounted
// under one base path, wrapped in the service middleware stack, with the
// generated OpenAPI document served alongside.
package api

import (
	"net/http"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/config"
	"github.com/JaimeStill/catalog-admin/internal/middleware"
	"github.com/JaimeStill/catalog-admin/pkg/module"
	"github.com/JaimeStill/catalog-admin/pkg/openapi"
)

// NewModule builds the API module for the given base path. The storefront
// routes, login, and the OpenAPI document are exempt from authentication;
// everything else requires a valid token or session cookie.
func NewModule(basePath string, cfg *config.Config, runtime *Runtime, domain *Domain) (*module.Module, error) {
	spec := openapi.NewSpec(cfg.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, basePath, runtime, domain, cfg)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	tokens := auth.NewTokens(cfg.Auth.TokenSecret, cfg.Auth.TokenTTLDuration())

	stack := middleware.New()
	stack.Use(middleware.TrimSlash())
	stack.Use(middleware.CORS(&cfg.CORS))
	stack.Use(middleware.Logger(runtime.Logger))
	stack.Use(middleware.Authenticate(
		tokens,
		cfg.Auth.CookieName,
		runtime.Logger,
		"/auth/login",
		"/catalog",
		"/openapi.json",
	))

	return module.New(basePath, stack.Apply(mux)), nil
}

package main

import (
	"net/http"

	"github.com/JaimeStill/catalog-admin/internal/api"
	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/config"
	"github.com/JaimeStill/catalog-admin/internal/dashboard"
	"github.com/JaimeStill/catalog-admin/internal/infrastructure"
	"github.com/JaimeStill/catalog-admin/internal/middleware"
	"github.com/JaimeStill/catalog-admin/pkg/module"
	"github.com/JaimeStill/catalog-admin/web/docs"
)

const (
	apiBasePath       = "/api"
	dashboardBasePath = "/dashboard"
	docsBasePath      = "/docs"
)

type Modules struct {
	API       *module.Module
	Dashboard *module.Module
	Docs      *module.Module
}

// NewModules assembles the service modules against one shared domain, so
// the dashboard renders the same systems the API mutates.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	runtime := api.NewRuntime(cfg, infra)
	tokens := auth.NewTokens(cfg.Auth.TokenSecret, cfg.Auth.TokenTTLDuration())
	domain := api.NewDomain(runtime, tokens)

	apiModule, err := api.NewModule(apiBasePath, cfg, runtime, domain)
	if err != nil {
		return nil, err
	}

	dashboardModule, err := dashboard.NewModule(
		dashboardBasePath,
		&cfg.Auth,
		cfg.Pagination,
		infra.Logger,
		dashboard.Domain{
			Users:      domain.Users,
			Products:   domain.Products,
			Categories: domain.Categories,
			Datasheets: domain.Datasheets,
		},
	)
	if err != nil {
		return nil, err
	}
	dashboardModule.Use(middleware.Logger(infra.Logger.With("module", "dashboard")))

	docsModule := docs.NewModule(docsBasePath)

	return &Modules{
		API:       apiModule,
		Dashboard: dashboardModule,
		Docs:      docsModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Dashboard)
	router.Mount(m.Docs)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, dashboardBasePath, http.StatusSeeOther)
	})

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	return router
}

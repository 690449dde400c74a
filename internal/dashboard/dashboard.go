// Package dashboard serves the admin dashboard: server-rendered list,
// add, and change views for every registered entity, generated from a
// route table the same way for each. Views negotiate their
// representation, so the same routes answer browsers with HTML and API
// clients with the JSON the REST handlers would return.
package dashboard

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/categories"
	"github.com/JaimeStill/catalog-admin/internal/config"
	"github.com/JaimeStill/catalog-admin/internal/datasheets"
	"github.com/JaimeStill/catalog-admin/internal/products"
	"github.com/JaimeStill/catalog-admin/internal/users"
	"github.com/JaimeStill/catalog-admin/pkg/handlers"
	"github.com/JaimeStill/catalog-admin/pkg/module"
	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/JaimeStill/catalog-admin/pkg/web"
)

// Domain carries the systems the dashboard renders.
type Domain struct {
	Users      users.System
	Products   products.System
	Categories categories.System
	Datasheets datasheets.System
}

// Module is the dashboard's handler state: the entity registry, the
// template renderer, and the session machinery.
type Module struct {
	rend       *Renderer
	registry   *Registry
	users      users.System
	tokens     *auth.Tokens
	cookieName string
	ttl        time.Duration
	logger     *slog.Logger
}

// NewModule builds the dashboard module for the given base path,
// registering the product and category entities.
func NewModule(basePath string, authCfg *config.AuthConfig, pageCfg pagination.Config, logger *slog.Logger, domain Domain) (*module.Module, error) {
	rend, err := NewRenderer(basePath, logger)
	if err != nil {
		return nil, err
	}

	registry := NewRegistry()
	registry.Register(NewProductsEntity(rend, domain.Products, domain.Categories, domain.Datasheets, pageCfg, logger))
	registry.Register(NewCategoriesEntity(rend, domain.Categories, pageCfg, logger))

	m := &Module{
		rend:       rend,
		registry:   registry,
		users:      domain.Users,
		tokens:     auth.NewTokens(authCfg.TokenSecret, authCfg.TokenTTLDuration()),
		cookieName: authCfg.CookieName,
		ttl:        authCfg.TokenTTLDuration(),
		logger:     logger.With("module", "dashboard"),
	}

	return module.New(basePath, m.router()), nil
}

func (m *Module) router() http.Handler {
	r := web.NewRouter()

	r.HandleFunc("GET /login", m.LoginForm)
	r.HandleFunc("POST /login", m.Login)
	r.HandleFunc("POST /logout", m.Logout)
	r.HandleFunc("GET /{$}", m.protect("", m.Root))

	for _, fr := range web.PublicFileRoutes(assetFS, "assets", "favicon.svg") {
		r.HandleFunc(fr.Method+" "+fr.Pattern, fr.Handler)
	}

	for _, er := range m.registry.Routes() {
		r.HandleFunc(er.Method+" "+er.Pattern, m.protect(er.Codename, er.Handler))
	}

	r.SetFallback(m.notFound)
	return r
}

// Root renders the dashboard landing page: one card per registered
// entity the principal may view, with its record count and, when
// permitted, an add link.
func (m *Module) Root(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFrom(r.Context())

	cards := make([]entityCard, 0, len(m.registry.Entities()))
	for _, e := range m.registry.Entities() {
		singular, plural := e.Names()
		if !principal.Can(auth.Codename(auth.ActionView, singular)) {
			continue
		}

		count, err := e.Count(r.Context())
		if err != nil {
			m.rend.Fail(w, r, http.StatusInternalServerError, err)
			return
		}

		prefix := m.rend.BasePath() + e.Prefix()
		card := entityCard{
			Label: displayTitle(plural),
			URL:   prefix,
			Count: count,
		}
		if principal.Can(auth.Codename(auth.ActionAdd, singular)) {
			card.CanAdd = true
			card.AddURL = prefix + "/add"
		}
		cards = append(cards, card)
	}

	if Negotiate(r) {
		handlers.RespondJSON(w, http.StatusOK, cards)
		return
	}

	page := pageFrom(r)
	page.Breadcrumbs = []Crumb{{Label: "Dashboard"}}
	m.rend.HTML(w, http.StatusOK, "root.html", "Dashboard", rootPage{
		Page:  page,
		Cards: cards,
	})
}

func (m *Module) notFound(w http.ResponseWriter, r *http.Request) {
	m.rend.Fail(w, r, http.StatusNotFound, errors.New("page not found"))
}

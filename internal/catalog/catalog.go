// Package catalog exposes the public storefront read API: active
// products only, no authentication, backed by the storefront cache.
package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/catalog-admin/internal/cache"
	"github.com/JaimeStill/catalog-admin/internal/products"
	"github.com/JaimeStill/catalog-admin/pkg/handlers"
	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/JaimeStill/catalog-admin/pkg/routes"
)

type Handler struct {
	products   products.System
	cache      cache.System
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(products products.System, cache cache.System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		products:   products,
		cache:      cache,
		logger:     logger,
		pagination: pagination,
	}
}

// Routes returns the storefront route group. These routes carry no
// permission wrappers and are exempt from authentication.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/catalog",
		Tags:        []string{"Storefront"},
		Description: "Public storefront read API",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/products", Handler: h.ListProducts, OpenAPI: Spec.ListProducts},
			{Method: "GET", Pattern: "/products/{slug}", Handler: h.FindProduct, OpenAPI: Spec.FindProduct},
		},
	}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	page.Normalize(h.pagination)

	// Only first pages are cached; offset walks would grow the key set
	// without bound.
	key := cache.ListKey(r.URL.Query())
	cacheable := page.Offset == 0

	if cacheable {
		if payload, ok := h.cache.GetList(r.Context(), key); ok {
			respondPayload(w, payload)
			return
		}
	}

	filters := products.FiltersFromQuery(r.URL.Query())
	active := true
	filters.Active = &active

	result, err := h.products.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	if cacheable {
		h.cache.SetList(r.Context(), key, payload)
	}
	respondPayload(w, payload)
}

func (h *Handler) FindProduct(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	if payload, ok := h.cache.GetProduct(r.Context(), slug); ok {
		respondPayload(w, payload)
		return
	}

	product, err := h.products.FindBySlug(r.Context(), slug)
	if err != nil {
		handlers.RespondError(w, h.logger, products.MapHTTPStatus(err), err)
		return
	}

	payload, err := json.Marshal(product)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	h.cache.SetProduct(r.Context(), slug, payload)
	respondPayload(w, payload)
}

func respondPayload(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

package products

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/middleware"
	"github.com/JaimeStill/catalog-admin/internal/validation"
	"github.com/JaimeStill/catalog-admin/pkg/handlers"
	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/JaimeStill/catalog-admin/pkg/routes"
	"github.com/google/uuid"
)

const entity = "product"

type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger,
		pagination: pagination,
	}
}

// Routes returns the product management route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/products",
		Tags:        []string{"Products"},
		Description: "Product catalog management",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.perm(auth.ActionView, h.List), OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.perm(auth.ActionView, h.Find), OpenAPI: Spec.Find},
			{Method: "POST", Pattern: "", Handler: h.perm(auth.ActionAdd, h.Create), OpenAPI: Spec.Create},
			{Method: "PUT", Pattern: "/{id}", Handler: h.perm(auth.ActionChange, h.Update), OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.perm(auth.ActionDelete, h.Delete), OpenAPI: Spec.Delete},
			{Method: "POST", Pattern: "/{id}/activate", Handler: h.perm(auth.ActionChange, h.Activate), OpenAPI: Spec.Activate},
			{Method: "POST", Pattern: "/{id}/deactivate", Handler: h.perm(auth.ActionChange, h.Deactivate), OpenAPI: Spec.Deactivate},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) perm(action string, next http.HandlerFunc) http.HandlerFunc {
	return middleware.RequirePermission(auth.Codename(action, entity), h.logger)(next)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[CreateProductCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		h.respondFailure(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd, err := handlers.DecodeJSON[UpdateProductCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		h.respondFailure(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.SetActive(r.Context(), id, active)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// respondFailure renders validation failures as their field map so API
// clients see the same errors the dashboard forms display.
func (h *Handler) respondFailure(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		handlers.RespondJSON(w, http.StatusBadRequest, verr)
		return
	}
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}

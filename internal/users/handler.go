package users

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/config"
	"github.com/JaimeStill/catalog-admin/internal/middleware"
	"github.com/JaimeStill/catalog-admin/internal/validation"
	"github.com/JaimeStill/catalog-admin/pkg/handlers"
	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/JaimeStill/catalog-admin/pkg/routes"
	"github.com/google/uuid"
)

const entity = "user"

type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	auth       *config.AuthConfig
}

func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config, auth *config.AuthConfig) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger,
		pagination: pagination,
		auth:       auth,
	}
}

// Routes returns the account management route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/users",
		Tags:        []string{"Users"},
		Description: "Service account management",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.perm(auth.ActionView, h.List), OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.perm(auth.ActionView, h.Find), OpenAPI: Spec.Find},
			{Method: "POST", Pattern: "", Handler: h.perm(auth.ActionAdd, h.Create), OpenAPI: Spec.Create},
			{Method: "PUT", Pattern: "/{id}", Handler: h.perm(auth.ActionChange, h.Update), OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.perm(auth.ActionDelete, h.Delete), OpenAPI: Spec.Delete},
		},
		Schemas: Spec.Schemas(),
	}
}

// AuthRoutes returns the login and session route group. Login is exempt
// from authentication; Me requires a principal.
func (h *Handler) AuthRoutes() routes.Group {
	return routes.Group{
		Prefix:      "/auth",
		Tags:        []string{"Auth"},
		Description: "Authentication and session state",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/login", Handler: h.Login, OpenAPI: Spec.Login},
			{Method: "GET", Pattern: "/me", Handler: h.Me, OpenAPI: Spec.Me},
		},
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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[LoginCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Login(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.setSessionCookie(w, result.Token)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrAuthRequired)
		return
	}

	result, err := h.sys.Find(r.Context(), principal.UserID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[CreateUserCommand](r)
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

	cmd, err := handlers.DecodeJSON[UpdateUserCommand](r)
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

// setSessionCookie mirrors the issued token into the dashboard session
// cookie so a login through the API also signs in the dashboard.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.auth.TokenTTLDuration()),
	})
}

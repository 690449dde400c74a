package dashboard

import (
	"embed"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/catalog-admin/pkg/handlers"
	"github.com/JaimeStill/catalog-admin/pkg/web"
)

//go:embed templates/layouts/*.html
var layoutFS embed.FS

//go:embed templates/views/*.html
var viewFS embed.FS

//go:embed assets/*
var assetFS embed.FS

const layoutTemplate = "dashboard.html"

var views = []web.ViewDef{
	{Template: "root.html", Title: "Dashboard"},
	{Template: "list.html"},
	{Template: "form.html"},
	{Template: "login.html", Title: "Sign in"},
	{Template: "error.html"},
}

// Negotiate reports whether the request asked for JSON: an explicit
// format=json query parameter, or an Accept header naming
// application/json without text/html.
func Negotiate(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}

	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") &&
		!strings.Contains(accept, "text/html")
}

// Renderer renders dashboard views against the embedded template set.
// Entity adapters share one renderer so every view carries the same
// layout and base path.
type Renderer struct {
	templates *web.TemplateSet
	logger    *slog.Logger
}

// NewRenderer parses the embedded dashboard templates for the given
// base path.
func NewRenderer(basePath string, logger *slog.Logger) (*Renderer, error) {
	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"templates/layouts/*.html",
		"templates/views",
		basePath,
		views,
	)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		templates: ts,
		logger:    logger,
	}, nil
}

// BasePath returns the module base path views prepend to their links.
func (rend *Renderer) BasePath() string {
	return rend.templates.BasePath()
}

// HTML renders a view with the given status code.
func (rend *Renderer) HTML(w http.ResponseWriter, status int, view, title string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	err := rend.templates.Render(w, layoutTemplate, view, web.ViewData{
		Title:    title,
		BasePath: rend.templates.BasePath(),
		Data:     data,
	})
	if err != nil {
		rend.logger.Error("view render failed", "view", view, "error", err)
	}
}

// Fail responds with a negotiated error: the JSON error object for
// API-style requests, the styled error view otherwise.
func (rend *Renderer) Fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if Negotiate(r) {
		handlers.RespondError(w, rend.logger, status, err)
		return
	}

	heading := http.StatusText(status)
	rend.HTML(w, status, "error.html", heading, errorPage{
		Page:    pageFrom(r),
		Heading: heading,
		Message: err.Error(),
	})
}

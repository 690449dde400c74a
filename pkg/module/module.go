// Package module provides mountable HTTP modules that own a single URL
// prefix. A module wraps a handler with its own middleware chain and serves
// requests with the prefix stripped, so handlers register routes relative to
// the module root.
package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Module binds a handler to a single-level URL prefix.
type Module struct {
	prefix     string
	handler    http.Handler
	middleware []Middleware
}

// New creates a Module for the given prefix. The prefix must be non-empty,
// start with a slash, and contain a single path level; anything else is a
// programming error and panics at startup.
func New(prefix string, handler http.Handler) *Module {
	if prefix == "" {
		panic("module: prefix must not be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		panic(fmt.Sprintf("module: prefix %q must start with /", prefix))
	}
	if strings.Count(prefix, "/") > 1 || len(prefix) == 1 {
		panic(fmt.Sprintf("module: prefix %q must be a single path level", prefix))
	}

	return &Module{
		prefix:  prefix,
		handler: handler,
	}
}

// Prefix returns the module's URL prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware to the module. The first registered middleware is
// the outermost wrapper. The parameter is the bare func type so middleware
// defined as named types elsewhere registers without conversion.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware = append(m.middleware, mw)
}

// Handler returns the module handler with all middleware applied.
func (m *Module) Handler() http.Handler {
	h := m.handler
	for i := len(m.middleware) - 1; i >= 0; i-- {
		h = m.middleware[i](h)
	}
	return h
}

// Serve dispatches the request to the module handler with the module prefix
// stripped from the URL path. The module root serves as "/".
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	req := new(http.Request)
	*req = *r
	url := *r.URL
	url.Path = path
	req.URL = &url

	m.Handler().ServeHTTP(w, req)
}

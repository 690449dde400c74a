package module

import (
	"net/http"
	"strings"
)

// Router dispatches requests by their first path segment to mounted modules,
// falling back to natively registered routes. Unmatched paths return 404.
type Router struct {
	mux     *http.ServeMux
	modules map[string]*Module
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		mux:     http.NewServeMux(),
		modules: make(map[string]*Module),
	}
}

// HandleNative registers a handler on the router's own mux, outside any
// module. Used for root-level routes like health checks.
func (rt *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	rt.mux.HandleFunc(pattern, handler)
}

// Mount registers a module under its prefix.
func (rt *Router) Mount(m *Module) {
	rt.modules[m.Prefix()] = m
}

// ServeHTTP normalizes trailing slashes, then routes to the module owning
// the first path segment or to the native mux.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")

		req := new(http.Request)
		*req = *r
		url := *r.URL
		url.Path = path
		req.URL = &url
		r = req
	}

	if m, ok := rt.modules[firstSegment(path)]; ok {
		m.Serve(w, r)
		return
	}

	rt.mux.ServeHTTP(w, r)
}

// firstSegment returns the leading path level: "/api/users" yields "/api".
func firstSegment(path string) string {
	if len(path) < 2 {
		return path
	}
	if idx := strings.Index(path[1:], "/"); idx >= 0 {
		return path[:idx+1]
	}
	return path
}

package web

import (
	"embed"
	"mime"
	"net/http"
	"path"

	"github.com/JaimeStill/catalog-admin/pkg/routes"
)

// PublicFile returns a handler serving a single embedded file from the root
// of the module, such as a favicon or web manifest.
func PublicFile(public embed.FS, dir, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := public.ReadFile(path.Join(dir, name))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.Write(data)
	}
}

// PublicFileRoutes builds GET routes for the named embedded files, each
// served at the module root.
func PublicFileRoutes(public embed.FS, dir string, names ...string) []routes.Route {
	rts := make([]routes.Route, 0, len(names))
	for _, name := range names {
		rts = append(rts, routes.Route{
			Method:  http.MethodGet,
			Pattern: "/" + name,
			Handler: PublicFile(public, dir, name),
		})
	}
	return rts
}

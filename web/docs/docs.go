// Package docs provides the interactive API documentation module using
// Scalar UI. The page is embedded at compile time and loads the published
// OpenAPI document from the API module.
package docs

import (
	_ "embed"
	"net/http"

	"github.com/JaimeStill/catalog-admin/pkg/module"
)

//go:embed index.html
var indexHTML []byte

// NewModule builds the documentation module for the given base path.
func NewModule(basePath string) *module.Module {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(indexHTML)
	})

	return module.New(basePath, mux)
}

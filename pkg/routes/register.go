package routes

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/catalog-admin/pkg/openapi"
)

// Register mounts every group's routes on the mux and merges their
// operations into the spec. Handlers are registered without the base path
// because modules strip their prefix before dispatch; the spec uses the base
// path so documented URLs match what clients call.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
		group.AddToSpec(basePath, spec)
	}
}

func registerGroup(mux *http.ServeMux, prefix string, group Group) {
	base := prefix + group.Prefix

	for _, route := range group.Routes {
		pattern := fmt.Sprintf("%s %s%s", route.Method, base, route.Pattern)
		mux.HandleFunc(pattern, route.Handler)
	}

	for _, child := range group.Children {
		registerGroup(mux, base, child)
	}
}

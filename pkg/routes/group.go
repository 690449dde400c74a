// Package routes defines route groups that bind HTTP handlers to URL
// patterns and OpenAPI operations, and registers them on a ServeMux.
package routes

import (
	"net/http"

	"github.com/JaimeStill/catalog-admin/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler and its OpenAPI
// operation. Routes with a nil OpenAPI operation are served but excluded
// from the generated specification.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization and
// contribute their schemas to the specification components.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// AddToSpec merges the group's operations and schemas into the spec. Routes
// without explicit tags inherit the group's tags. Child groups nest under
// the parent prefix.
func (g Group) AddToSpec(basePath string, spec *openapi.Spec) {
	prefix := basePath + g.Prefix

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}
		if len(route.OpenAPI.Tags) == 0 {
			route.OpenAPI.Tags = g.Tags
		}
		spec.AddOperation(prefix+route.Pattern, route.Method, route.OpenAPI)
	}

	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, child := range g.Children {
		child.AddToSpec(prefix, spec)
	}
}

package dashboard

import (
	"context"
	"net/http"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/pkg/routes"
)

// Column describes one list-view column. Link columns wrap their value
// in a link to the record's change form.
type Column struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Link  bool   `json:"link,omitempty"`
}

// Entity adapts a domain module to the dashboard: the metadata the views
// render from plus the handlers behind the generated routes. The
// singular name doubles as the permission codename noun.
type Entity interface {
	// Prefix is the URL segment the entity mounts under, e.g. "/products".
	Prefix() string

	// Names returns the singular and plural display names.
	Names() (singular, plural string)

	// Columns lists the list-view columns in display order.
	Columns() []Column

	// Count reports the total number of records, for the root page cards.
	Count(ctx context.Context) (int, error)

	List(w http.ResponseWriter, r *http.Request)
	New(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Change(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)

	// Extra contributes entity-specific routes beyond the generated
	// table, with the permission codename each requires.
	Extra() []EntityRoute
}

// EntityRoute pairs a route with the permission codename it requires.
// An empty codename requires authentication only.
type EntityRoute struct {
	routes.Route
	Codename string
}

// Registry holds the dashboard's entities in registration order and
// generates their route table.
type Registry struct {
	entities []Entity
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an entity to the dashboard.
func (reg *Registry) Register(e Entity) {
	reg.entities = append(reg.entities, e)
}

// Entities returns the registered entities in registration order.
func (reg *Registry) Entities() []Entity {
	return reg.entities
}

// Routes generates the route table for every registered entity:
//
//	GET  /{prefix}             list
//	GET  /{prefix}/add         blank form
//	POST /{prefix}/add         create
//	GET  /{prefix}/{id}/change bound form
//	POST /{prefix}/{id}/change update
//
// plus each entity's extra routes. Reading a record requires the view
// codename; add and change posts require their own actions.
func (reg *Registry) Routes() []EntityRoute {
	var table []EntityRoute

	for _, e := range reg.entities {
		prefix := e.Prefix()
		singular, _ := e.Names()

		table = append(table,
			entityRoute("GET", prefix, e.List, auth.ActionView, singular),
			entityRoute("GET", prefix+"/add", e.New, auth.ActionAdd, singular),
			entityRoute("POST", prefix+"/add", e.Create, auth.ActionAdd, singular),
			entityRoute("GET", prefix+"/{id}/change", e.Change, auth.ActionView, singular),
			entityRoute("POST", prefix+"/{id}/change", e.Update, auth.ActionChange, singular),
		)
		table = append(table, e.Extra()...)
	}

	return table
}

func entityRoute(method, pattern string, handler http.HandlerFunc, action, entity string) EntityRoute {
	return EntityRoute{
		Route: routes.Route{
			Method:  method,
			Pattern: pattern,
			Handler: handler,
		},
		Codename: auth.Codename(action, entity),
	}
}

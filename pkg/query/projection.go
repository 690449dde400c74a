// Package query provides SQL projection maps and a select query builder
// with automatic parameter numbering. Projection maps translate view-level
// field names into qualified column references so repositories can accept
// client-facing sort and filter fields without exposing schema details.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view-level field names to SQL column expressions for a
// single table. Columns are tracked in registration order so SELECT lists
// stay aligned with scan functions.
type ProjectionMap struct {
	schema string
	table  string
	alias  string
	order  []string
	fields map[string]string
}

// NewProjectionMap creates a ProjectionMap for the given table and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project registers a column under a view name, qualified with the table
// alias. Returns the map for chaining.
func (pm *ProjectionMap) Project(column, view string) *ProjectionMap {
	return pm.ProjectExpr(fmt.Sprintf("%s.%s", pm.alias, column), view)
}

// ProjectExpr registers a raw SQL expression under a view name. The
// expression is used verbatim, which allows joined columns and computed
// values to participate in selection, filtering, and sorting.
func (pm *ProjectionMap) ProjectExpr(expr, view string) *ProjectionMap {
	if _, exists := pm.fields[view]; !exists {
		pm.order = append(pm.order, view)
	}
	pm.fields[view] = expr
	return pm
}

// Table returns the qualified table reference with alias.
func (pm *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", pm.schema, pm.table, pm.alias)
}

// Column resolves a view name to its column expression. Unknown names pass
// through unchanged.
func (pm *ProjectionMap) Column(view string) string {
	if col, ok := pm.fields[view]; ok {
		return col
	}
	return view
}

// Has reports whether a view name is registered in the projection.
func (pm *ProjectionMap) Has(view string) bool {
	_, ok := pm.fields[view]
	return ok
}

// Columns returns the comma-separated SELECT list in registration order.
func (pm *ProjectionMap) Columns() string {
	cols := make([]string, len(pm.order))
	for i, view := range pm.order {
		cols[i] = pm.fields[view]
	}
	return strings.Join(cols, ", ")
}

// Views returns the registered view names in registration order.
func (pm *ProjectionMap) Views() []string {
	views := make([]string, len(pm.order))
	copy(views, pm.order)
	return views
}

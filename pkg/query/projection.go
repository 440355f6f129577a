// Package query builds parameterized PostgreSQL queries over a projected table.
package query

import "strings"

// ProjectionMap maps view field names to alias-qualified columns of a single table.
type ProjectionMap struct {
	source  string
	alias   string
	columns map[string]string
	order   []string
}

// NewProjectionMap creates a ProjectionMap reading from schema.table under alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		source:  schema + "." + table + " " + alias,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project maps a table column to a view field name. Columns are selected
// in the order they are projected.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns[viewName] = qualified
	p.order = append(p.order, qualified)
	return p
}

// From returns the FROM clause source, e.g. "public.samples s".
func (p *ProjectionMap) From() string {
	return p.source
}

// Columns returns the projected columns as a select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.order, ", ")
}

// Lookup returns the qualified column for a view field and whether it is projected.
func (p *ProjectionMap) Lookup(viewName string) (string, bool) {
	col, ok := p.columns[viewName]
	return col, ok
}

// Column returns the qualified column for a view field, or viewName when it is not projected.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return col
	}
	return viewName
}

// Package query constructs SQL queries using a fluent API with automatic
// parameter numbering and view-name to column projection.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view-level field names to aliased table columns.
// Field order is preserved so Columns() matches scanner ordering.
type ProjectionMap struct {
	schema string
	table  string
	alias  string
	fields []string
	cols   map[string]string
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		cols:   make(map[string]string),
	}
}

// Project registers a column under a view-level field name and returns the map
// for chaining.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	if _, exists := p.cols[field]; !exists {
		p.fields = append(p.fields, field)
	}
	p.cols[field] = column
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the aliased table reference, e.g. "public.listings l".
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column returns the aliased column for a view-level field name, e.g. "l.title".
func (p *ProjectionMap) Column(field string) string {
	col, ok := p.cols[field]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s.%s", p.alias, col)
}

// Columns returns the comma-separated aliased column list in projection order.
func (p *ProjectionMap) Columns() string {
	cols := make([]string, len(p.fields))
	for i, field := range p.fields {
		cols[i] = p.Column(field)
	}
	return strings.Join(cols, ", ")
}

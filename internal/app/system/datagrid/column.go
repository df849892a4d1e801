// Package datagrid renders one page of records as a table or as a list of
// cards, with optional row selection and a pager.
//
// The grid is a pure state container: it performs no I/O, never fails, and
// reports state changes through events on its Target (page-change,
// selection-change, card-select). The page-level owner supplies the current
// page of records, the pagination numbers, and the selection, and persists
// whatever comes back in those events.
package datagrid

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
)

// Record is one row of grid data. Records are read-only to the grid.
type Record interface {
	// RecordID is the stable identity used for selection membership.
	RecordID() string
	// FieldValue returns the value stored under name.
	FieldValue(name string) (any, bool)
}

// MapRecord is a Record backed by a map; "id" holds the identity.
type MapRecord map[string]any

// RecordID implements Record.
func (m MapRecord) RecordID() string {
	v, ok := m["id"]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// FieldValue implements Record.
func (m MapRecord) FieldValue(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// Column describes one column of the grid.
//
// Render and Cell name entries in the grid's Renderers table rather than
// holding functions, so descriptors can be built once and shared.
type Column struct {
	Header string
	Field  string
	Render string
	Cell   string
	Style  map[string]string
}

// RenderFunc turns a record into display markup. The output is sanitized.
type RenderFunc func(Record) string

// CellFunc renders a fully custom inline component. The output is trusted.
type CellFunc func(Record) template.HTML

// Renderers is the handler table that Column.Render and Column.Cell refer to.
type Renderers struct {
	Values map[string]RenderFunc
	Cells  map[string]CellFunc
}

// StyleAttr renders Style as a CSS declaration list with keys sorted.
func (c Column) StyleAttr() template.CSS {
	if len(c.Style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(c.Style))
	for k := range c.Style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(c.Style[k])
	}
	return template.CSS(b.String())
}

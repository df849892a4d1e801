package datagrid

import (
	"fmt"
	"html/template"

	"github.com/dalemusser/employeehub/internal/app/system/events"
	"github.com/dalemusser/employeehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/employeehub/internal/app/system/paging"
)

// Layout selects how records are drawn.
type Layout string

const (
	LayoutTable Layout = "table"
	LayoutList  Layout = "list"
)

// ParseLayout maps a query value to a Layout, defaulting to the table.
func ParseLayout(s string) Layout {
	if s == string(LayoutList) {
		return LayoutList
	}
	return LayoutTable
}

// SelectionChange is the detail of a selection-change event.
type SelectionChange struct {
	Items []Record
}

// CardSelect is the detail of a card-select event.
type CardSelect struct {
	Item     Record
	Selected bool
}

// Grid holds the render state of one page of records.
//
// Data is already the current page; the grid never slices it. Selection is
// three-valued: disabled (no checkboxes), or enabled with a possibly empty
// set of items. Use EnableSelection / DisableSelection to switch.
type Grid struct {
	Columns     []Column
	Data        []Record
	PageSize    int
	CurrentPage int
	TotalItems  int
	Loading     bool
	MaxHeight   string
	Layout      Layout
	Renderers   Renderers

	Events *events.Target

	selectable bool
	selected   []Record
}

// New returns a grid on page 1 with selection disabled.
func New(columns []Column, data []Record, pageSize, totalItems int) *Grid {
	return &Grid{
		Columns:     columns,
		Data:        data,
		PageSize:    pageSize,
		CurrentPage: 1,
		TotalItems:  totalItems,
		Layout:      LayoutTable,
		Events:      events.NewTarget(),
	}
}

// EnableSelection turns selection on with a copy of items (nil means none selected).
func (g *Grid) EnableSelection(items []Record) {
	g.selectable = true
	g.selected = append(make([]Record, 0, len(items)), items...)
}

// DisableSelection turns selection off.
func (g *Grid) DisableSelection() {
	g.selectable = false
	g.selected = nil
}

// HasSelection reports whether selection is enabled.
func (g *Grid) HasSelection() bool { return g.selectable }

// SelectedItems returns a copy of the selection and whether selection is enabled.
func (g *Grid) SelectedItems() ([]Record, bool) {
	if !g.selectable {
		return nil, false
	}
	return append(make([]Record, 0, len(g.selected)), g.selected...), true
}

// TotalPages is ceil(TotalItems / PageSize).
func (g *Grid) TotalPages() int {
	return paging.TotalPages(g.TotalItems, g.PageSize)
}

// OnPageChange moves to page n when 1 ≤ n ≤ TotalPages and emits page-change.
// Out-of-range requests are ignored. Reports whether the page changed hands.
func (g *Grid) OnPageChange(n int) bool {
	if n < 1 || n > g.TotalPages() {
		return false
	}
	g.CurrentPage = n
	g.Events.Dispatch(events.Event{
		Name:     events.PageChange,
		Detail:   paging.PageChange{Page: n},
		Bubbles:  true,
		Composed: true,
	})
	return true
}

// OnSelectAll selects every record on the page, or clears the selection.
func (g *Grid) OnSelectAll(checked bool) {
	if !g.selectable {
		return
	}
	if checked {
		g.selected = append(make([]Record, 0, len(g.Data)), g.Data...)
	} else {
		g.selected = []Record{}
	}
	g.emitSelection()
}

// OnRowSelect adds or removes one record from the selection by id.
func (g *Grid) OnRowSelect(rec Record, checked bool) {
	if !g.selectable || rec == nil {
		return
	}
	id := rec.RecordID()
	next := make([]Record, 0, len(g.selected)+1)
	if checked {
		next = append(next, g.selected...)
		if !g.IsSelected(rec) {
			next = append(next, rec)
		}
	} else {
		for _, s := range g.selected {
			if s.RecordID() != id {
				next = append(next, s)
			}
		}
	}
	g.selected = next
	g.emitSelection()
}

// OnCardSelect is OnRowSelect for the list layout; it also emits card-select.
func (g *Grid) OnCardSelect(rec Record, checked bool) {
	if !g.selectable || rec == nil {
		return
	}
	g.Events.Dispatch(events.Event{
		Name:     events.CardSelect,
		Detail:   CardSelect{Item: rec, Selected: checked},
		Bubbles:  true,
		Composed: true,
	})
	g.OnRowSelect(rec, checked)
}

func (g *Grid) emitSelection() {
	items, _ := g.SelectedItems()
	g.Events.Dispatch(events.Event{
		Name:     events.SelectionChange,
		Detail:   SelectionChange{Items: items},
		Bubbles:  true,
		Composed: true,
	})
}

// IsSelected reports whether a record with rec's id is selected.
func (g *Grid) IsSelected(rec Record) bool {
	if !g.selectable || rec == nil {
		return false
	}
	id := rec.RecordID()
	for _, s := range g.selected {
		if s.RecordID() == id {
			return true
		}
	}
	return false
}

// IsAllSelected reports whether the page is non-empty and every record on it is selected.
func (g *Grid) IsAllSelected() bool {
	if !g.selectable || len(g.Data) == 0 {
		return false
	}
	for _, rec := range g.Data {
		if !g.IsSelected(rec) {
			return false
		}
	}
	return true
}

// Pager returns the pagination control for the grid. Page requests from the
// pager are validated by OnPageChange before anything leaves the grid.
func (g *Grid) Pager() *paging.Pager {
	p := paging.NewPager(g.CurrentPage, g.TotalPages())
	p.Events.AddListener(events.PageChange, func(e *events.Event) {
		e.StopPropagation()
		if pc, ok := e.Detail.(paging.PageChange); ok {
			g.OnPageChange(pc.Page)
		}
	})
	return p
}

// RenderCell renders col for rec: Cell first, then Render, then the raw field.
// Unknown handler names and empty descriptors produce an empty cell.
func (g *Grid) RenderCell(rec Record, col Column) template.HTML {
	if col.Cell != "" {
		if fn := g.Renderers.Cells[col.Cell]; fn != nil {
			return fn(rec)
		}
		return ""
	}
	if col.Render != "" {
		if fn := g.Renderers.Values[col.Render]; fn != nil {
			return htmlsanitize.SanitizeToHTML(fn(rec))
		}
		return ""
	}
	return fieldHTML(rec, col.Field)
}

// renderBody renders the non-component content of col, used for card bodies.
func (g *Grid) renderBody(rec Record, col Column) template.HTML {
	if col.Render != "" {
		if fn := g.Renderers.Values[col.Render]; fn != nil {
			return htmlsanitize.SanitizeToHTML(fn(rec))
		}
		return ""
	}
	return fieldHTML(rec, col.Field)
}

func fieldHTML(rec Record, field string) template.HTML {
	if field == "" {
		return ""
	}
	v, ok := rec.FieldValue(field)
	if !ok || v == nil {
		return ""
	}
	return template.HTML(template.HTMLEscapeString(fmt.Sprint(v)))
}

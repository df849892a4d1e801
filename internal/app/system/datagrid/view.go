package datagrid

import (
	"html/template"

	"github.com/dalemusser/employeehub/internal/app/system/paging"
)

// HeaderView is one column header.
type HeaderView struct {
	Label string
	Style template.CSS
}

// CellView is one rendered cell; Header is repeated for card labels.
type CellView struct {
	Header string
	HTML   template.HTML
	Style  template.CSS
}

// RowView is one table row or list card.
type RowView struct {
	ID       string
	Selected bool
	Cells    []CellView
	// Footer holds the Cell components of a card (list layout only).
	Footer []CellView
}

// View is the template model for a grid.
type View struct {
	Layout       Layout
	IsList       bool
	Headers      []HeaderView
	Rows         []RowView
	HasSelection bool
	AllSelected  bool
	Empty        bool
	Loading      bool
	ColSpan      int
	MaxHeight    template.CSS
	CurrentPage  int
	Range        paging.Range

	// Pager is nil when there are no items.
	Pager *paging.View
}

// View builds the template model for the current state.
func (g *Grid) View() View {
	v := View{
		Layout:       g.Layout,
		IsList:       g.Layout == LayoutList,
		HasSelection: g.selectable,
		AllSelected:  g.IsAllSelected(),
		Loading:      g.Loading,
		Empty:        len(g.Data) == 0,
		ColSpan:      len(g.Columns),
		CurrentPage:  g.CurrentPage,
		Range:        paging.ComputeRange(g.CurrentPage, g.PageSize, len(g.Data), g.TotalItems),
	}
	if g.selectable {
		v.ColSpan++
	}
	if g.MaxHeight != "" {
		v.MaxHeight = template.CSS("max-height: " + g.MaxHeight)
	}

	for _, c := range g.Columns {
		v.Headers = append(v.Headers, HeaderView{Label: c.Header, Style: c.StyleAttr()})
	}

	for _, rec := range g.Data {
		if rec == nil {
			continue
		}
		row := RowView{ID: rec.RecordID(), Selected: g.IsSelected(rec)}
		for _, c := range g.Columns {
			if v.IsList {
				if c.Cell != "" {
					row.Footer = append(row.Footer, CellView{Header: c.Header, HTML: g.RenderCell(rec, c), Style: c.StyleAttr()})
					if c.Render == "" {
						continue
					}
				}
				row.Cells = append(row.Cells, CellView{Header: c.Header, HTML: g.renderBody(rec, c), Style: c.StyleAttr()})
				continue
			}
			row.Cells = append(row.Cells, CellView{Header: c.Header, HTML: g.RenderCell(rec, c), Style: c.StyleAttr()})
		}
		v.Rows = append(v.Rows, row)
	}

	if g.TotalItems > 0 {
		pv := g.Pager().View()
		v.Pager = &pv
	}
	return v
}

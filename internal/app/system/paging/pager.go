package paging

import (
	"github.com/dalemusser/employeehub/internal/app/system/events"
)

// windowThreshold is the largest page count rendered without ellipses.
const windowThreshold = 7

// Token is one entry of the pager: either a page number or an ellipsis.
type Token struct {
	Page     int
	Ellipsis bool
}

// PageTokens returns the pager entries for currentPage out of totalPages.
//
// Page 1 is always present. Up to seven pages are listed in full; beyond
// that the window current-1..current+1 is shown with an ellipsis on either
// side when pages are hidden there. The last page closes the list whenever
// there is more than one page.
func PageTokens(currentPage, totalPages int) []Token {
	out := []Token{{Page: 1}}

	if totalPages <= windowThreshold {
		for i := 2; i < totalPages; i++ {
			out = append(out, Token{Page: i})
		}
	} else {
		if currentPage > 3 {
			out = append(out, Token{Ellipsis: true})
		}
		lo := max(2, currentPage-1)
		hi := min(currentPage+1, totalPages-1)
		for i := lo; i <= hi; i++ {
			out = append(out, Token{Page: i})
		}
		if currentPage < totalPages-2 {
			out = append(out, Token{Ellipsis: true})
		}
	}

	if totalPages > 1 {
		out = append(out, Token{Page: totalPages})
	}
	return out
}

// PageChange is the detail of a page-change event.
type PageChange struct {
	Page int
}

// Pager is the page-navigation control. It never clamps: requests are passed
// to listeners as-is and range checking is the owner's job.
type Pager struct {
	CurrentPage int
	TotalPages  int

	Events *events.Target
}

// NewPager returns a Pager with its own event target.
func NewPager(currentPage, totalPages int) *Pager {
	return &Pager{CurrentPage: currentPage, TotalPages: totalPages, Events: events.NewTarget()}
}

// RequestPage emits a page-change request for page n.
func (p *Pager) RequestPage(n int) {
	p.Events.Dispatch(events.Event{
		Name:    events.PageChange,
		Detail:  PageChange{Page: n},
		Bubbles: true,
	})
}

// Prev requests the previous page.
func (p *Pager) Prev() { p.RequestPage(p.CurrentPage - 1) }

// Next requests the next page.
func (p *Pager) Next() { p.RequestPage(p.CurrentPage + 1) }

// ButtonView is one rendered pager entry.
type ButtonView struct {
	Page     int
	Ellipsis bool
	Active   bool
	Disabled bool
}

// View is the template model of the pager.
type View struct {
	Buttons      []ButtonView
	CurrentPage  int
	TotalPages   int
	PrevPage     int
	NextPage     int
	PrevDisabled bool
	NextDisabled bool
}

// View builds the template model.
func (p *Pager) View() View {
	toks := PageTokens(p.CurrentPage, p.TotalPages)
	btns := make([]ButtonView, 0, len(toks))
	for _, t := range toks {
		if t.Ellipsis {
			btns = append(btns, ButtonView{Ellipsis: true})
			continue
		}
		active := t.Page == p.CurrentPage
		btns = append(btns, ButtonView{Page: t.Page, Active: active, Disabled: active})
	}
	return View{
		Buttons:      btns,
		CurrentPage:  p.CurrentPage,
		TotalPages:   p.TotalPages,
		PrevPage:     p.CurrentPage - 1,
		NextPage:     p.CurrentPage + 1,
		PrevDisabled: p.CurrentPage == 1,
		NextDisabled: p.CurrentPage == p.TotalPages,
	}
}

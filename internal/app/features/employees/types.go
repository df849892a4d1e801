package employees

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dalemusser/employeehub/internal/app/system/datagrid"
	"github.com/dalemusser/employeehub/internal/app/system/formbuilder"
	"github.com/dalemusser/employeehub/internal/app/system/navigation"
	"github.com/dalemusser/employeehub/internal/app/system/paging"
	"github.com/dalemusser/employeehub/internal/app/system/viewdata"
	"github.com/dalemusser/employeehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// listQuery is the list page state carried in the URL and in every form
// posted from the list.
type listQuery struct {
	Page       int
	View       string
	Search     string
	Department string
	Position   string
}

// parseListQuery reads the list state from the query string, falling back
// to posted form values. Unknown filter codes are dropped.
func parseListQuery(r *http.Request) listQuery {
	return listQueryFrom(func(name string) string {
		if v := query.Get(r, name); v != "" {
			return v
		}
		return strings.TrimSpace(r.PostFormValue(name))
	})
}

// listQueryFromURL reads the list state of a list URL such as a return URL.
func listQueryFromURL(raw string) listQuery {
	u, err := url.Parse(raw)
	if err != nil {
		return listQuery{Page: 1}
	}
	vals := u.Query()
	return listQueryFrom(func(name string) string { return strings.TrimSpace(vals.Get(name)) })
}

func listQueryFrom(get func(string) string) listQuery {
	q := listQuery{
		View:       string(datagrid.ParseLayout(get("view"))),
		Search:     get("q"),
		Department: get("department"),
		Position:   get("position"),
	}
	if q.View == string(datagrid.LayoutTable) {
		q.View = ""
	}
	if models.EnumLabelKey(models.Departments, q.Department) == "" {
		q.Department = ""
	}
	if models.EnumLabelKey(models.Positions, q.Position) == "" {
		q.Position = ""
	}
	if n, err := strconv.Atoi(get("page")); err == nil && n > 1 {
		q.Page = n
	} else {
		q.Page = 1
	}
	return q
}

// URL returns the list URL for q.
func (q listQuery) URL() string {
	return navigation.ListURL(q.Page, q.View, q.Search, q.Department, q.Position)
}

// WithPage returns q on page n.
func (q listQuery) WithPage(n int) listQuery {
	q.Page = n
	return q
}

// WithView returns q switched to layout v.
func (q listQuery) WithView(v datagrid.Layout) listQuery {
	q.View = string(v)
	if v == datagrid.LayoutTable {
		q.View = ""
	}
	return q
}

// tableURL is the list URL switched to the table layout. The view parameter
// stays explicit so it overrides a remembered list layout.
func (q listQuery) tableURL() string {
	return navigation.ListURL(q.Page, string(datagrid.LayoutTable), q.Search, q.Department, q.Position)
}

// pageBase is the list URL with an open page parameter for the pager.
func (q listQuery) pageBase() string {
	u := q.WithPage(1).URL()
	if strings.Contains(u, "?") {
		return u + "&page="
	}
	return u + "?page="
}

// filterOption is one <option> of a list filter.
type filterOption struct {
	Value    string
	Label    string
	Selected bool
}

// pagerVM is the model of the shared pager template.
type pagerVM struct {
	Pager    *paging.View
	PageBase string
}

// listData is the view model for the list page and its grid partial.
type listData struct {
	viewdata.BaseVM

	Query        listQuery
	IsList       bool
	TableViewURL string
	ListViewURL  string
	Departments  []filterOption
	Positions    []filterOption

	Grid        datagrid.View
	Pager       pagerVM
	ShowingText string

	SelectedCount       int
	DeleteSelectedLabel string

	LoadError string
}

// formField is one rendered input plus its inline validation endpoint.
type formField struct {
	formbuilder.FieldView
	ValidateURL string
}

// formData is the view model for the add and edit pages.
type formData struct {
	viewdata.BaseVM

	Heading     string
	Action      string
	EmployeeID  string
	Rows        [][]formField
	Disabled    bool
	SubmitLabel string
	CancelLabel string
	ReturnURL   string
}

func newFormFields(v formbuilder.View, validateURL string) [][]formField {
	rows := make([][]formField, 0, len(v.Rows))
	for _, row := range v.Rows {
		out := make([]formField, 0, len(row))
		for _, fv := range row {
			out = append(out, formField{FieldView: fv, ValidateURL: validateURL + "?field=" + fv.Name})
		}
		rows = append(rows, out)
	}
	return rows
}

// idsOf returns the record ids of items.
func idsOf(items []datagrid.Record) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.RecordID())
	}
	return ids
}

// parseIDs converts selection ids to employee ids, skipping bad values.
func parseIDs(ids []string) []int64 {
	out := make([]int64, 0, len(ids))
	for _, s := range ids {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

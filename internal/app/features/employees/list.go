// internal/app/features/employees/list.go
package employees

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/dalemusser/employeehub/internal/app/system/actions"
	"github.com/dalemusser/employeehub/internal/app/system/datagrid"
	"github.com/dalemusser/employeehub/internal/app/system/events"
	"github.com/dalemusser/employeehub/internal/app/system/i18n"
	"github.com/dalemusser/employeehub/internal/app/system/paging"
	"github.com/dalemusser/employeehub/internal/app/system/timeouts"
	"github.com/dalemusser/employeehub/internal/app/system/uistate"
	"github.com/dalemusser/employeehub/internal/app/system/viewdata"
	"github.com/dalemusser/employeehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// columns is the employee table layout.
func columns(tr i18n.Translator) []datagrid.Column {
	col := func(field string) datagrid.Column {
		return datagrid.Column{Header: tr.T("employees.columns."+field, nil), Field: field}
	}
	dept := col("department")
	dept.Render = "department"
	pos := col("position")
	pos.Render = "position"
	return []datagrid.Column{
		col("firstName"),
		col("lastName"),
		col("dateOfEmployment"),
		col("dateOfBirth"),
		col("phone"),
		col("email"),
		dept,
		pos,
		{
			Header: tr.T("employees.columns.actions", nil),
			Cell:   "actions",
			Style:  map[string]string{"width": "100px", "text-align": "center"},
		},
	}
}

// rowButtons posts row clicks to HandleAction and swaps the grid.
var rowButtons = actions.Options{PostURL: "/actions", Target: "#" + gridTarget}

// rowActions builds the edit/delete buttons of one employee.
func rowActions(tr i18n.Translator, e models.Employee, back string) *actions.Buttons {
	b := actions.New(e, e.RecordID(), rowButtons,
		actions.Action{Type: "edit", Icon: "edit", Label: tr.T("common.edit", nil)},
		actions.Action{Type: "delete", Icon: "delete", Label: tr.T("common.delete", nil)},
	)
	b.ReturnURL = back
	return b
}

// renderers is the handler table the columns refer to.
func renderers(tr i18n.Translator, back string, log *zap.Logger) datagrid.Renderers {
	enum := func(opts []models.EnumOption, field string) datagrid.RenderFunc {
		return func(rec datagrid.Record) string {
			v, _ := rec.FieldValue(field)
			code, _ := v.(string)
			if key := models.EnumLabelKey(opts, code); key != "" {
				return tr.T(key, nil)
			}
			return code
		}
	}
	return datagrid.Renderers{
		Values: map[string]datagrid.RenderFunc{
			"department": enum(models.Departments, "department"),
			"position":   enum(models.Positions, "position"),
		},
		Cells: map[string]datagrid.CellFunc{
			"actions": func(rec datagrid.Record) template.HTML {
				e, ok := rec.(models.Employee)
				if !ok {
					return ""
				}
				html, err := rowActions(tr, e, back).Render()
				if err != nil {
					log.Error("render row actions failed", zap.String("employee_id", e.RecordID()), zap.Error(err))
				}
				return html
			},
		},
	}
}

func filterOptions(tr i18n.Translator, opts []models.EnumOption, allKey, current string) []filterOption {
	out := []filterOption{{Value: "", Label: tr.T(allKey, nil), Selected: current == ""}}
	for _, o := range opts {
		out = append(out, filterOption{Value: o.Code, Label: tr.T(o.LabelKey, nil), Selected: o.Code == current})
	}
	return out
}

// fetch loads the page of q. A page past the end falls back to the last page.
func (h *Handler) fetch(ctx context.Context, q listQuery, force bool) (employeestore.Page, listQuery, error) {
	sq := employeestore.Query{
		Page:         q.Page,
		PageSize:     h.PageSize,
		Department:   q.Department,
		Position:     q.Position,
		SearchTerm:   q.Search,
		ForceRefresh: force,
	}
	page, err := h.Store.GetEmployees(ctx, sq)
	if err != nil {
		return page, q, err
	}
	if len(page.Data) == 0 && q.Page > 1 && page.Metadata.TotalPages > 0 {
		q.Page = page.Metadata.TotalPages
		sq.Page = q.Page
		sq.ForceRefresh = false
		page, err = h.Store.GetEmployees(ctx, sq)
	}
	return page, q, err
}

// buildGrid turns a fetched page into a grid with selection enabled and
// wires its events to the page container.
func buildGrid(tr i18n.Translator, page employeestore.Page, q listQuery, st *uistate.State, container *events.Target, log *zap.Logger) *datagrid.Grid {
	recs := make([]datagrid.Record, 0, len(page.Data))
	byID := make(map[string]datagrid.Record, len(page.Data))
	for _, e := range page.Data {
		recs = append(recs, e)
		byID[e.RecordID()] = e
	}

	g := datagrid.New(columns(tr), recs, page.Metadata.PageSize, page.Metadata.TotalItems)
	g.CurrentPage = page.Metadata.CurrentPage
	g.Layout = datagrid.ParseLayout(q.View)
	g.Renderers = renderers(tr, q.URL(), log)

	selected := make([]datagrid.Record, 0, len(st.Selected))
	for _, id := range st.Selected {
		if rec, ok := byID[id]; ok {
			selected = append(selected, rec)
		} else {
			selected = append(selected, datagrid.MapRecord{"id": id})
		}
	}
	g.EnableSelection(selected)
	g.Events.AttachTo(container)
	return g
}

// listView assembles the page model.
func (h *Handler) listView(r *http.Request, q listQuery, g *datagrid.Grid, loadErr string) listData {
	base := viewdata.NewBaseVM(r, "employees.title", "/")
	tr := base.T()
	st := uistate.From(r)

	gv := g.View()
	data := listData{
		BaseVM:              base,
		Query:               q,
		IsList:              gv.IsList,
		TableViewURL:        q.WithPage(1).tableURL(),
		ListViewURL:         q.WithView(datagrid.LayoutList).WithPage(1).URL(),
		Departments:         filterOptions(tr, models.Departments, "employees.filters.allDepartments", q.Department),
		Positions:           filterOptions(tr, models.Positions, "employees.filters.allPositions", q.Position),
		Grid:                gv,
		Pager:               pagerVM{Pager: gv.Pager, PageBase: q.pageBase()},
		SelectedCount:       len(st.Selected),
		DeleteSelectedLabel: tr.T("employees.deleteSelected", nil),
		LoadError:           loadErr,
	}
	if gv.Range.Total > 0 {
		data.ShowingText = tr.T("common.showing", i18n.Params{
			"start": gv.Range.Start,
			"end":   gv.Range.End,
			"total": gv.Range.Total,
		})
	}
	return data
}

// renderList writes either the full page or, for an HTMX grid refresh,
// only the grid.
func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, data listData) {
	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == gridTarget {
		templates.RenderSnippet(w, "employees_grid", data)
		return
	}
	templates.Render(w, r, "employees_list", data)
}

// ServeList handles GET / (search, filters, view toggle, paging, selection).
// It supports HTMX partial refresh of the grid when HX-Target="employees-grid".
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)
	st := uistate.From(r)
	tr := viewdata.Translator(r)
	container := h.container()

	// Without an explicit view the last chosen layout is kept.
	if !r.URL.Query().Has("view") && r.PostFormValue("view") == "" && st.View != "" {
		q = q.WithView(datagrid.ParseLayout(st.View))
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list employees")
	defer cancel()

	page, q, err := h.fetch(ctx, q, r.URL.Query().Has("refresh"))
	if gone(r) {
		return
	}
	loadErr := ""
	loading := false
	if err != nil {
		page = employeestore.Page{Data: []models.Employee{}, Metadata: employeestore.Metadata{CurrentPage: 1, PageSize: h.PageSize}}
		if errors.Is(err, context.DeadlineExceeded) {
			// The service is slower than the list timeout; show the
			// loading placeholder and let the grid poll again.
			h.Log.Info("employee list still loading", zap.Duration("timeout", timeouts.Medium()))
			loading = true
		} else {
			h.raise(container, "list employees", err)
			loadErr = tr.T("employees.loadError", nil)
		}
	}

	if st.Selected == nil {
		st.Selected = []string{}
	}
	if st.View != q.View {
		st.View = q.View
		if err := h.UI.Save(w, r, st); err != nil {
			h.Log.Warn("save list state failed", zap.Error(err))
		}
	}

	g := buildGrid(tr, page, q, st, container, h.Log)
	g.Loading = loading
	h.renderList(w, r, h.listView(r, q, g, loadErr))
}

// ServeAPI handles GET /api/employees and returns {data, metadata} as JSON.
func (h *Handler) ServeAPI(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list employees api")
	defer cancel()

	sq := employeestore.Query{
		Page:         q.Page,
		PageSize:     paging.ParsePageSize(r, h.PageSize),
		Department:   q.Department,
		Position:     q.Position,
		SearchTerm:   q.Search,
		ForceRefresh: r.URL.Query().Has("refresh"),
	}
	page, err := h.Store.GetEmployees(ctx, sq)
	if gone(r) {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		h.Log.Error("api list employees failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": viewdata.Translator(r).T("employees.loadError", nil)})
		return
	}
	_ = json.NewEncoder(w).Encode(page)
}

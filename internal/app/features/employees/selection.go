package employees

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/employeehub/internal/app/system/confirm"
	"github.com/dalemusser/employeehub/internal/app/system/datagrid"
	"github.com/dalemusser/employeehub/internal/app/system/events"
	"github.com/dalemusser/employeehub/internal/app/system/i18n"
	"github.com/dalemusser/employeehub/internal/app/system/timeouts"
	"github.com/dalemusser/employeehub/internal/app/system/uistate"
	"github.com/dalemusser/employeehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// HandleSelection handles POST /selection.
//
// Form fields: all=1 with checked toggles the whole page; otherwise id with
// checked toggles one row (or card, when layout=list). The resulting
// selection is stored in the UI-state cookie.
func (h *Handler) HandleSelection(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)
	st := uistate.From(r)
	tr := viewdata.Translator(r)
	container := h.container()

	checked, _ := strconv.ParseBool(r.PostFormValue("checked"))
	if r.PostFormValue("checked") == "on" {
		checked = true
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "selection page")
	defer cancel()

	page, q, err := h.fetch(ctx, q, false)
	if gone(r) {
		return
	}
	if err != nil {
		h.raise(container, "load selection page", err)
		redirect(w, r, q.URL())
		return
	}

	container.AddListener(events.SelectionChange, func(e *events.Event) {
		sc, ok := e.Detail.(datagrid.SelectionChange)
		if !ok {
			return
		}
		st.Selected = idsOf(sc.Items)
		if err := h.UI.Save(w, r, st); err != nil {
			h.Log.Warn("save selection failed", zap.Error(err))
		}
	})

	if st.Selected == nil {
		st.Selected = []string{}
	}
	g := buildGrid(tr, page, q, st, container, h.Log)

	if r.PostFormValue("all") != "" {
		g.OnSelectAll(checked)
	} else if id := strings.TrimSpace(r.PostFormValue("id")); id != "" {
		var rec datagrid.Record = datagrid.MapRecord{"id": id}
		for _, e := range page.Data {
			if e.RecordID() == id {
				rec = e
				break
			}
		}
		if datagrid.ParseLayout(r.PostFormValue("layout")) == datagrid.LayoutList {
			g.OnCardSelect(rec, checked)
		} else {
			g.OnRowSelect(rec, checked)
		}
	}

	if r.Header.Get("HX-Request") != "" {
		templates.RenderSnippet(w, "employees_grid", h.listView(r, q, g, ""))
		return
	}
	redirect(w, r, q.URL())
}

// HandleDeleteSelected handles POST /selection/delete by asking for
// confirmation of a bulk delete.
func (h *Handler) HandleDeleteSelected(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)
	st := uistate.From(r)
	tr := viewdata.Translator(r)

	ids := parseIDs(st.Selected)
	if len(ids) == 0 {
		redirect(w, r, q.URL())
		return
	}

	h.dialog(r).Show(confirm.Request{
		Title:        tr.T("employees.deleteTitle", nil),
		Message:      tr.T("employees.deleteSelectedConfirmation", i18n.Params{"count": len(ids)}),
		ConfirmLabel: tr.T("common.confirm", nil),
		CancelLabel:  tr.T("common.cancel", nil),
		Action:       ActionDeleteSelected,
		Payload:      map[string]string{"ids": joinIDs(ids)},
		ReturnURL:    q.URL(),
	})
	redirect(w, r, q.URL())
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

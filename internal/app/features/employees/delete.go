package employees

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dalemusser/employeehub/internal/app/system/confirm"
	"github.com/dalemusser/employeehub/internal/app/system/i18n"
	"github.com/dalemusser/employeehub/internal/app/system/timeouts"
	"github.com/dalemusser/employeehub/internal/app/system/uistate"
	"github.com/dalemusser/employeehub/internal/app/system/viewdata"
	"go.uber.org/zap"
)

func returnOf(req confirm.Request) string {
	if req.ReturnURL == "" {
		return "/"
	}
	return req.ReturnURL
}

// onDeleteAnswered runs when the single-row delete dialog is answered.
func (h *Handler) onDeleteAnswered(w http.ResponseWriter, r *http.Request, req confirm.Request, accepted bool) {
	back := returnOf(req)
	if !accepted {
		redirect(w, r, back)
		return
	}
	tr := viewdata.Translator(r)
	container := h.container()
	idStr := req.Payload["id"]

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete employee")
	defer cancel()

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err == nil {
		_, err = h.Store.DeleteEmployee(ctx, id)
	}
	if gone(r) {
		return
	}
	if err != nil {
		h.raise(container, "delete employee", err, idStr)
		h.alert(r, tr.T("common.error", nil), tr.T("employees.deleteError", nil), tr.T("common.ok", nil), back)
		redirect(w, r, back)
		return
	}

	h.Log.Info("employee deleted", zap.Int64("employee_id", id))
	h.unselect(w, r, idStr)
	back = h.settle(ctx, back)
	h.alert(r, tr.T("common.success", nil), tr.T("employees.deleteSuccess", nil), tr.T("common.ok", nil), back)
	redirect(w, r, back)
}

// onDeleteSelectedAnswered runs when the bulk delete dialog is answered.
func (h *Handler) onDeleteSelectedAnswered(w http.ResponseWriter, r *http.Request, req confirm.Request, accepted bool) {
	back := returnOf(req)
	if !accepted {
		redirect(w, r, back)
		return
	}
	tr := viewdata.Translator(r)
	container := h.container()
	raw := strings.Split(req.Payload["ids"], ",")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete employees")
	defer cancel()

	n, err := h.Store.DeleteEmployees(ctx, parseIDs(raw))
	if gone(r) {
		return
	}
	if err != nil {
		h.raise(container, "delete employees", err, raw...)
		h.alert(r, tr.T("common.error", nil), tr.T("employees.deleteError", nil), tr.T("common.ok", nil), back)
		redirect(w, r, back)
		return
	}

	h.Log.Info("employees deleted", zap.Int("count", n), zap.Strings("employee_ids", raw))
	h.unselect(w, r, raw...)
	back = h.settle(ctx, back)
	h.alert(r, tr.T("common.success", nil),
		tr.T("employees.deleteSelectedSuccess", i18n.Params{"count": n}),
		tr.T("common.ok", nil), back)
	redirect(w, r, back)
}

// unselect drops deleted ids from the stored selection.
func (h *Handler) unselect(w http.ResponseWriter, r *http.Request, ids ...string) {
	st := uistate.From(r)
	if st.Selected == nil {
		return
	}
	st.Selected = slices.DeleteFunc(slices.Clone(st.Selected), func(id string) bool {
		return slices.Contains(ids, id)
	})
	if err := h.UI.Save(w, r, st); err != nil {
		h.Log.Warn("save selection failed", zap.Error(err))
	}
}

// settle returns the list URL to show after a delete: the same page, or the
// one before it when the delete emptied a page past the first.
func (h *Handler) settle(ctx context.Context, back string) string {
	q := listQueryFromURL(back)
	if q.Page <= 1 {
		return back
	}
	page, _, err := h.fetch(ctx, q.WithPage(q.Page), false)
	if err != nil {
		return back
	}
	if page.Metadata.CurrentPage < q.Page || len(page.Data) == 0 {
		return q.WithPage(q.Page - 1).URL()
	}
	return back
}

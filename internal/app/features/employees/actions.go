package employees

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/dalemusser/employeehub/internal/app/system/actions"
	"github.com/dalemusser/employeehub/internal/app/system/confirm"
	"github.com/dalemusser/employeehub/internal/app/system/events"
	"github.com/dalemusser/employeehub/internal/app/system/navigation"
	"github.com/dalemusser/employeehub/internal/app/system/timeouts"
	"github.com/dalemusser/employeehub/internal/app/system/viewdata"
	"github.com/dalemusser/employeehub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleAction handles POST /actions, posted by a row's action buttons.
//
// The row's buttons are rebuilt around the stored employee and clicked;
// the page container answers the resulting action event.
func (h *Handler) HandleAction(w http.ResponseWriter, r *http.Request) {
	back := navigation.SafeBackURL(r, navigation.EmployeesBackURL)
	typ := strings.TrimSpace(r.PostFormValue("type"))
	tr := viewdata.Translator(r)

	id, err := strconv.ParseInt(strings.TrimSpace(r.PostFormValue("id")), 10, 64)
	if err != nil {
		h.Log.Debug("action with bad id", zap.String("id", r.PostFormValue("id")))
		redirect(w, r, back)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load employee for action")
	defer cancel()

	e, err := h.Store.GetEmployee(ctx, id)
	if gone(r) {
		return
	}
	container := h.container()
	if err != nil {
		h.raise(container, "load employee", err, strconv.FormatInt(id, 10))
		if errors.Is(err, employeestore.ErrNotFound) {
			h.alert(r, tr.T("common.error", nil), tr.T(missingKey(typ), nil), tr.T("common.ok", nil), back)
		}
		redirect(w, r, back)
		return
	}

	next := back
	container.AddListener(events.Action, func(ev *events.Event) {
		click, ok := ev.Detail.(actions.Click)
		if !ok {
			return
		}
		emp, ok := click.Item.(models.Employee)
		if !ok {
			return
		}
		switch click.Type {
		case "edit":
			next = "/edit-employee/" + emp.RecordID() + "?return=" + url.QueryEscape(back)
		case "delete":
			h.dialog(r).Show(confirm.Request{
				Title:        tr.T("employees.deleteTitle", nil),
				Message:      tr.T("employees.deleteConfirmation", nil),
				ConfirmLabel: tr.T("common.confirm", nil),
				CancelLabel:  tr.T("common.cancel", nil),
				Action:       ActionDelete,
				Payload:      map[string]string{"id": emp.RecordID()},
				ReturnURL:    back,
			})
		}
	})

	buttons := rowActions(tr, e, back)
	buttons.Events.AttachTo(container)
	if !buttons.Click(typ) {
		h.Log.Debug("unknown row action", zap.String("type", typ), zap.Int64("employee_id", id))
	}
	redirect(w, r, next)
}

// missingKey is the alert shown when the clicked row's employee is gone.
func missingKey(typ string) string {
	if typ == "edit" {
		return "editEmployee.notFound"
	}
	return "employees.deleteError"
}

// Package employees serves the employee list and the add/edit forms.
package employees

import (
	"net/http"

	uierrors "github.com/dalemusser/employeehub/internal/app/features/errors"
	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/dalemusser/employeehub/internal/app/system/confirm"
	"github.com/dalemusser/employeehub/internal/app/system/events"
	"github.com/dalemusser/employeehub/internal/app/system/uistate"
	"go.uber.org/zap"
)

// Names of the confirmation actions this feature answers.
const (
	ActionDelete         = "employees.delete"
	ActionDeleteSelected = "employees.deleteSelected"
	ActionAdd            = "employees.add"
	ActionEdit           = "employees.edit"
	ActionReshow         = "employees.reshow"
)

// gridTarget is the element id swapped by HTMX partial refreshes.
const gridTarget = "employees-grid"

// Handler holds dependencies for the employee pages.
type Handler struct {
	Store    *employeestore.Store
	UI       *uistate.Manager
	Registry *confirm.Registry
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
	PageSize int

	// Events is the root every page container attaches to. Error events
	// that reach it are logged.
	Events *events.Target
}

// NewHandler constructs an employees Handler.
func NewHandler(store *employeestore.Store, ui *uistate.Manager, registry *confirm.Registry, errLog *uierrors.ErrorLogger, logger *zap.Logger, pageSize int) *Handler {
	if pageSize <= 0 {
		pageSize = employeestore.DefaultPageSize
	}
	h := &Handler{
		Store:    store,
		UI:       ui,
		Registry: registry,
		ErrLog:   errLog,
		Log:      logger,
		PageSize: pageSize,
		Events:   events.NewTarget(),
	}
	h.Events.AddListener(events.Error, func(e *events.Event) {
		if pe, ok := e.Detail.(pageError); ok {
			h.Log.Error(pe.Op+" failed", zap.Error(pe.Err), zap.Strings("employee_ids", pe.IDs))
		}
	})
	return h
}

// RegisterActions wires the confirmation outcomes this feature handles.
func (h *Handler) RegisterActions(a *confirm.Actions) {
	a.Handle(ActionDelete, h.onDeleteAnswered)
	a.Handle(ActionDeleteSelected, h.onDeleteSelectedAnswered)
	a.Handle(ActionAdd, h.onAddAnswered)
	a.Handle(ActionEdit, h.onEditAnswered)
	a.Handle(ActionReshow, h.onReshow)
}

// pageError is the detail of an error event raised by a page container.
type pageError struct {
	Op  string
	IDs []string
	Err error
}

// container returns a fresh page container attached to the handler root.
func (h *Handler) container() *events.Target {
	page := events.NewTarget()
	page.AttachTo(h.Events)
	return page
}

func (h *Handler) raise(page *events.Target, op string, err error, ids ...string) {
	page.Dispatch(events.Event{
		Name:     events.Error,
		Detail:   pageError{Op: op, IDs: ids, Err: err},
		Bubbles:  true,
		Composed: true,
	})
}

func (h *Handler) dialog(r *http.Request) *confirm.Coordinator {
	return h.Registry.For(uistate.From(r).SessionID)
}

// alert shows a one-button dialog that returns to back when acknowledged.
func (h *Handler) alert(r *http.Request, title, msg, ok, back string) {
	h.dialog(r).Show(confirm.Request{
		Title:        title,
		Message:      msg,
		ConfirmLabel: ok,
		Kind:         confirm.KindAlert,
		ReturnURL:    back,
	})
}

// redirect sends the browser to the given URL, using HX-Redirect for HTMX requests.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// gone reports whether the client stopped waiting, in which case nothing
// more should be written.
func gone(r *http.Request) bool {
	return r.Context().Err() != nil
}

package employees

import (
	"errors"
	"maps"
	"net/http"
	"strconv"
	"strings"
	"time"

	uierrors "github.com/dalemusser/employeehub/internal/app/features/errors"
	employeestore "github.com/dalemusser/employeehub/internal/app/store/employees"
	"github.com/dalemusser/employeehub/internal/app/system/confirm"
	"github.com/dalemusser/employeehub/internal/app/system/events"
	"github.com/dalemusser/employeehub/internal/app/system/formbuilder"
	"github.com/dalemusser/employeehub/internal/app/system/i18n"
	"github.com/dalemusser/employeehub/internal/app/system/inputval"
	"github.com/dalemusser/employeehub/internal/app/system/navigation"
	"github.com/dalemusser/employeehub/internal/app/system/timeouts"
	"github.com/dalemusser/employeehub/internal/app/system/viewdata"
	"github.com/dalemusser/employeehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/validate"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Payload keys carried next to the form values in a save confirmation.
const (
	payloadID     = "_id"
	payloadReturn = "_return"
)

func enumOptions(tr i18n.Translator, opts []models.EnumOption) []formbuilder.Option {
	out := make([]formbuilder.Option, 0, len(opts))
	for _, o := range opts {
		out = append(out, formbuilder.Option{Value: o.Code, Label: tr.T(o.LabelKey, nil)})
	}
	return out
}

// fields is the employee form layout, two inputs per row.
func fields(tr i18n.Translator, today string) []formbuilder.Field {
	label := func(name string) string { return tr.T("forms.employeeForm."+name+".label", nil) }
	placeholder := func(name string) string { return tr.T("forms.employeeForm."+name+".placeholder", nil) }
	return []formbuilder.Field{
		{Name: "firstName", Label: label("firstName"), Type: formbuilder.TypeText, Placeholder: placeholder("firstName")},
		{Name: "lastName", Label: label("lastName"), Type: formbuilder.TypeText, Placeholder: placeholder("lastName")},
		{Name: "dateOfBirth", Label: label("dateOfBirth"), Type: formbuilder.TypeDate, MaxDate: today},
		{Name: "dateOfEmployment", Label: label("dateOfEmployment"), Type: formbuilder.TypeDate, MaxDate: today},
		{Name: "phone", Label: label("phone"), Type: formbuilder.TypeTel, Placeholder: placeholder("phone")},
		{Name: "email", Label: label("email"), Type: formbuilder.TypeEmail, Placeholder: placeholder("email")},
		{Name: "department", Label: label("department"), Type: formbuilder.TypeSelect, Options: enumOptions(tr, models.Departments)},
		{Name: "position", Label: label("position"), Type: formbuilder.TypeSelect, Options: enumOptions(tr, models.Positions)},
	}
}

// schema validates the form through the validate tags of models.Employee
// and translates each failure by field and rule.
func schema(tr i18n.Translator) formbuilder.TagSchema {
	return formbuilder.TagSchema{
		Validator: inputval.Validator(),
		Decode:    func(data map[string]string) any { return models.EmployeeFromForm(data) },
		Message:   func(e *validate.Error) string { return validationMessage(tr, e) },
	}
}

// validationMessage maps a failure to validation.<field>.<required|min|max|invalid>.
func validationMessage(tr i18n.Translator, e *validate.Error) string {
	switch e.Rule {
	case "required":
		return tr.T("validation."+e.Field+".required", nil)
	case "min", "max":
		return tr.T("validation."+e.Field+"."+e.Rule, i18n.Params{e.Rule: e.Param})
	}
	return tr.T("validation."+e.Field+".invalid", nil)
}

func newForm(tr i18n.Translator) *formbuilder.Form {
	return formbuilder.New(fields(tr, time.Now().Format(inputval.DateLayout)), schema(tr))
}

// postedValues collects the form fields from the request body.
func postedValues(r *http.Request, f *formbuilder.Form) map[string]string {
	out := make(map[string]string, len(f.Fields))
	for _, fd := range f.Fields {
		out[fd.Name] = strings.TrimSpace(r.PostFormValue(fd.Name))
	}
	return out
}

// formOnly strips payload bookkeeping keys from confirmation data.
func formOnly(payload map[string]string) map[string]string {
	out := maps.Clone(payload)
	delete(out, payloadID)
	delete(out, payloadReturn)
	return out
}

// formMode holds what differs between the add and edit pages.
type formMode struct {
	titleKey   string
	msgPrefix  string
	action     string
	confirmFor string
}

var (
	addMode  = formMode{titleKey: "addEmployee.title", msgPrefix: "addEmployee", action: "/add-employee", confirmFor: ActionAdd}
	editMode = formMode{titleKey: "editEmployee.title", msgPrefix: "editEmployee", confirmFor: ActionEdit}
)

func (m formMode) forID(id string) formMode {
	if id != "" {
		m.action = "/edit-employee/" + id
	}
	return m
}

// renderForm writes the add or edit page for f.
func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, m formMode, id string, f *formbuilder.Form, back string) {
	base := viewdata.NewBaseVM(r, m.titleKey, "/")
	tr := base.T()
	if back == "" {
		back = "/"
	}
	base.BackURL = back
	v := f.View()
	templates.Render(w, r, "employees_form", formData{
		BaseVM:      base,
		Heading:     tr.T(m.titleKey, nil),
		Action:      m.action,
		EmployeeID:  id,
		Rows:        newFormFields(v, m.action+"/validate"),
		Disabled:    v.Disabled,
		SubmitLabel: tr.T("common.submit", nil),
		CancelLabel: tr.T("common.cancel", nil),
		ReturnURL:   back,
	})
}

// submit validates f and, when valid, opens the save confirmation. It
// reports whether the confirmation was shown.
func (h *Handler) submit(r *http.Request, m formMode, id string, f *formbuilder.Form, back string) bool {
	tr := viewdata.Translator(r)
	container := h.container()
	f.Events.AttachTo(container)

	shown := false
	container.AddListener(events.FormSubmit, func(e *events.Event) {
		sub, ok := e.Detail.(formbuilder.Submission)
		if !ok {
			return
		}
		payload := maps.Clone(sub.FormData)
		payload[payloadReturn] = back
		if id != "" {
			payload[payloadID] = id
		}
		h.dialog(r).Show(confirm.Request{
			Title:        tr.T(m.titleKey, nil),
			Message:      tr.T(m.msgPrefix+".saveConfirmation", nil),
			ConfirmLabel: tr.T("common.confirm", nil),
			CancelLabel:  tr.T("common.cancel", nil),
			Action:       m.confirmFor,
			Payload:      payload,
			ReturnURL:    m.action,
		})
		f.Disabled = true
		shown = true
	})
	f.Submit()
	return shown
}

// ServeAdd handles GET /add-employee.
func (h *Handler) ServeAdd(w http.ResponseWriter, r *http.Request) {
	f := newForm(viewdata.Translator(r))
	h.renderForm(w, r, addMode, "", f, navigation.SafeBackURL(r, navigation.EmployeesBackURL))
}

// HandleAdd handles POST /add-employee.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	f := newForm(viewdata.Translator(r))
	f.Seed(postedValues(r, f))
	back := navigation.SafeBackURL(r, navigation.EmployeesBackURL)
	h.submit(r, addMode, "", f, back)
	h.renderForm(w, r, addMode, "", f, back)
}

// loadForEdit resolves the {id} URL parameter. It writes the not-found or
// error page itself and returns ok=false when the employee cannot be shown.
func (h *Handler) loadForEdit(w http.ResponseWriter, r *http.Request) (models.Employee, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		uierrors.RenderNotFound(w, r)
		return models.Employee{}, false
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load employee")
	defer cancel()

	e, err := h.Store.GetEmployee(ctx, id)
	if gone(r) {
		return models.Employee{}, false
	}
	switch {
	case errors.Is(err, employeestore.ErrNotFound):
		uierrors.RenderNotFound(w, r)
		return models.Employee{}, false
	case err != nil:
		tr := viewdata.Translator(r)
		h.ErrLog.LogServerError(w, r, "load employee failed", err, tr.T("employees.loadError", nil), "/")
		return models.Employee{}, false
	}
	return e, true
}

// ServeEdit handles GET /edit-employee/{id}.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	e, ok := h.loadForEdit(w, r)
	if !ok {
		return
	}
	f := newForm(viewdata.Translator(r))
	f.Seed(e.FormValues())
	h.renderForm(w, r, editMode.forID(e.RecordID()), e.RecordID(), f, navigation.SafeBackURL(r, navigation.EmployeesBackURL))
}

// HandleEdit handles POST /edit-employee/{id}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	e, ok := h.loadForEdit(w, r)
	if !ok {
		return
	}
	f := newForm(viewdata.Translator(r))
	f.Seed(postedValues(r, f))
	back := navigation.SafeBackURL(r, navigation.EmployeesBackURL)
	m := editMode.forID(e.RecordID())
	h.submit(r, m, e.RecordID(), f, back)
	h.renderForm(w, r, m, e.RecordID(), f, back)
}

// HandleValidate handles POST {form}/validate?field=name and returns the
// re-rendered field with its validation message.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	f := newForm(viewdata.Translator(r))
	name := query.Get(r, "field")
	fd, ok := f.Lookup(name)
	if !ok {
		http.Error(w, "unknown field", http.StatusBadRequest)
		return
	}
	values := postedValues(r, f)
	f.Seed(values)
	f.Input(name, values[name])

	validateURL := strings.TrimSuffix(r.URL.Path, "/")
	templates.RenderSnippet(w, "employees_form_field", formField{
		FieldView:   f.FieldView(fd),
		ValidateURL: validateURL + "?field=" + fd.Name,
	})
}

func (h *Handler) onAddAnswered(w http.ResponseWriter, r *http.Request, req confirm.Request, accepted bool) {
	h.onSaveAnswered(w, r, req, accepted, addMode)
}

func (h *Handler) onEditAnswered(w http.ResponseWriter, r *http.Request, req confirm.Request, accepted bool) {
	h.onSaveAnswered(w, r, req, accepted, editMode.forID(req.Payload[payloadID]))
}

// onSaveAnswered stores an accepted add or edit. A cancelled or failed save
// shows the form again with the entered data.
func (h *Handler) onSaveAnswered(w http.ResponseWriter, r *http.Request, req confirm.Request, accepted bool, m formMode) {
	tr := viewdata.Translator(r)
	idStr := req.Payload[payloadID]
	back := req.Payload[payloadReturn]
	data := formOnly(req.Payload)

	reshow := func() {
		f := newForm(tr)
		f.Seed(data)
		h.renderForm(w, r, m, idStr, f, back)
	}
	if !accepted {
		reshow()
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "save employee")
	defer cancel()

	e := models.EmployeeFromForm(data)
	var err error
	if m.confirmFor == ActionAdd {
		e, err = h.Store.AddEmployee(ctx, e)
	} else {
		var id int64
		if id, err = strconv.ParseInt(idStr, 10, 64); err == nil {
			e, err = h.Store.UpdateEmployee(ctx, id, e)
		}
	}
	if gone(r) {
		return
	}
	if err != nil {
		h.raise(h.container(), "save employee", err, idStr)
		h.dialog(r).Show(confirm.Request{
			Title:        tr.T("common.error", nil),
			Message:      tr.T(m.msgPrefix+".saveError", nil),
			ConfirmLabel: tr.T("common.ok", nil),
			Kind:         confirm.KindAlert,
			Action:       ActionReshow,
			Payload:      req.Payload,
		})
		reshow()
		return
	}

	h.Log.Info("employee saved", zap.Int64("employee_id", e.ID), zap.String("action", m.confirmFor))
	to := "/"
	if m.confirmFor == ActionEdit && back != "" {
		to = back
	}
	h.alert(r, tr.T("common.success", nil), tr.T(m.msgPrefix+".success", nil), tr.T("common.ok", nil), to)
	redirect(w, r, to)
}

// onReshow runs when the save error alert is acknowledged and puts the
// entered data back on screen.
func (h *Handler) onReshow(w http.ResponseWriter, r *http.Request, req confirm.Request, _ bool) {
	m := addMode
	if id := req.Payload[payloadID]; id != "" {
		m = editMode.forID(id)
	}
	f := newForm(viewdata.Translator(r))
	f.Seed(formOnly(req.Payload))
	h.renderForm(w, r, m, req.Payload[payloadID], f, req.Payload[payloadReturn])
}

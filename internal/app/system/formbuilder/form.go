// Package formbuilder turns a list of field descriptors plus a validation
// schema into a form with per-field validation state.
//
// A Form is rebuilt for every request: the handler seeds it from the
// submitted or stored values, applies the user's input, and renders the
// result. Validation state therefore lives only as long as the request.
package formbuilder

import (
	"maps"

	"github.com/dalemusser/employeehub/internal/app/system/events"
)

// FieldType is the input control type.
type FieldType string

const (
	TypeText   FieldType = "text"
	TypeEmail  FieldType = "email"
	TypeTel    FieldType = "tel"
	TypeDate   FieldType = "date"
	TypeSelect FieldType = "select"
)

// Option is one choice of a select field.
type Option struct {
	Value string
	Label string
}

// Field describes one input.
type Field struct {
	Name        string
	Label       string
	Type        FieldType
	Placeholder string
	Options     []Option
	FullWidth   bool
	MinDate     string
	MaxDate     string
}

// FieldError is one validation failure. Path[0] is the field name.
type FieldError struct {
	Path    []string
	Message string
}

// Schema validates form data.
type Schema interface {
	// ValidateField checks a single field; ok is false with a message on failure.
	ValidateField(name string, data map[string]string) (msg string, ok bool)
	// Validate checks the whole object and returns every failure.
	Validate(data map[string]string) []FieldError
}

// FieldState is the validation state of one field.
type FieldState int

const (
	Untouched FieldState = iota
	Validating
	Valid
	Invalid
)

func (s FieldState) String() string {
	switch s {
	case Validating:
		return "validating"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	}
	return "untouched"
}

// Change is the detail of a form-change event.
type Change struct {
	FormData map[string]string
	Errors   map[string]string
	IsValid  bool
}

// Submission is the detail of a form-submit event.
type Submission struct {
	FormData map[string]string
}

// Form holds the data, errors and field states of one form.
type Form struct {
	Fields   []Field
	Schema   Schema
	FormData map[string]string
	Errors   map[string]string
	// Disabled turns off the submit controls while an operation is in flight.
	Disabled bool

	Events *events.Target

	states  map[string]FieldState
	seeded  bool
	initial map[string]string
}

// New returns a form with every field set to the empty string.
func New(fields []Field, schema Schema) *Form {
	f := &Form{
		Fields:   fields,
		Schema:   schema,
		FormData: make(map[string]string, len(fields)),
		Errors:   map[string]string{},
		Events:   events.NewTarget(),
		states:   make(map[string]FieldState, len(fields)),
	}
	for _, fd := range fields {
		f.FormData[fd.Name] = ""
	}
	return f
}

// Seed replaces FormData with a copy of initial. The first call always seeds;
// later calls re-seed only when initial differs from the last seed.
// A nil initial is ignored.
func (f *Form) Seed(initial map[string]string) {
	if initial == nil {
		return
	}
	if f.seeded && maps.Equal(f.initial, initial) {
		return
	}
	f.seeded = true
	f.initial = maps.Clone(initial)
	f.FormData = maps.Clone(initial)
	for _, fd := range f.Fields {
		if _, ok := f.FormData[fd.Name]; !ok {
			f.FormData[fd.Name] = ""
		}
	}
}

// Input merges one value, validates only that field and emits form-change.
func (f *Form) Input(name, value string) {
	f.FormData = maps.Clone(f.FormData)
	f.FormData[name] = value
	f.validateField(name)

	f.Events.Dispatch(events.Event{
		Name: events.FormChange,
		Detail: Change{
			FormData: maps.Clone(f.FormData),
			Errors:   maps.Clone(f.Errors),
			IsValid:  len(f.Errors) == 0,
		},
		Bubbles:  true,
		Composed: true,
	})
}

func (f *Form) validateField(name string) {
	if f.Schema == nil {
		return
	}
	f.states[name] = Validating
	errs := maps.Clone(f.Errors)
	if msg, ok := f.Schema.ValidateField(name, f.FormData); ok {
		delete(errs, name)
		f.states[name] = Valid
	} else {
		errs[name] = msg
		f.states[name] = Invalid
	}
	f.Errors = errs
}

// Submit validates all of FormData. On success it emits form-submit and
// returns true. On failure Errors is replaced by one message per field
// (the first reported) and nothing is emitted.
func (f *Form) Submit() bool {
	if f.Schema == nil {
		return false
	}
	problems := f.Schema.Validate(f.FormData)
	if len(problems) == 0 {
		f.Errors = map[string]string{}
		for _, fd := range f.Fields {
			f.states[fd.Name] = Valid
		}
		f.Events.Dispatch(events.Event{
			Name:     events.FormSubmit,
			Detail:   Submission{FormData: maps.Clone(f.FormData)},
			Bubbles:  true,
			Composed: true,
		})
		return true
	}

	errs := make(map[string]string, len(problems))
	for _, p := range problems {
		if len(p.Path) == 0 {
			continue
		}
		if _, seen := errs[p.Path[0]]; !seen {
			errs[p.Path[0]] = p.Message
		}
	}
	f.Errors = errs
	for _, fd := range f.Fields {
		if _, bad := errs[fd.Name]; bad {
			f.states[fd.Name] = Invalid
		} else {
			f.states[fd.Name] = Valid
		}
	}
	return false
}

// State returns the validation state of a field.
func (f *Form) State(name string) FieldState {
	return f.states[name]
}

// IsValid reports whether no field currently has an error.
func (f *Form) IsValid() bool { return len(f.Errors) == 0 }

// Rows groups fields two per row. A full-width field gets a row of its own
// and closes any half-filled row before it.
func (f *Form) Rows() [][]Field {
	var rows [][]Field
	var cur []Field
	for _, fd := range f.Fields {
		if fd.FullWidth {
			if len(cur) > 0 {
				rows = append(rows, cur)
				cur = nil
			}
			rows = append(rows, []Field{fd})
			continue
		}
		cur = append(cur, fd)
		if len(cur) == 2 {
			rows = append(rows, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		rows = append(rows, cur)
	}
	return rows
}

package formbuilder

// OptionView is one <option>.
type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

// FieldView is the template model of one input.
type FieldView struct {
	Field
	Value    string
	Error    string
	State    string
	IsSelect bool
	Choices  []OptionView
}

// View is the template model of the form.
type View struct {
	Rows     [][]FieldView
	Errors   map[string]string
	Disabled bool
	IsValid  bool
}

// FieldView builds the model for a single field, used when re-rendering
// one field after inline validation.
func (f *Form) FieldView(fd Field) FieldView {
	v := FieldView{
		Field:    fd,
		Value:    f.FormData[fd.Name],
		Error:    f.Errors[fd.Name],
		State:    f.State(fd.Name).String(),
		IsSelect: fd.Type == TypeSelect,
	}
	for _, o := range fd.Options {
		v.Choices = append(v.Choices, OptionView{Value: o.Value, Label: o.Label, Selected: o.Value == v.Value})
	}
	return v
}

// Lookup returns the descriptor of a field by name.
func (f *Form) Lookup(name string) (Field, bool) {
	for _, fd := range f.Fields {
		if fd.Name == name {
			return fd, true
		}
	}
	return Field{}, false
}

// View builds the template model.
func (f *Form) View() View {
	v := View{Errors: f.Errors, Disabled: f.Disabled, IsValid: f.IsValid()}
	for _, row := range f.Rows() {
		out := make([]FieldView, 0, len(row))
		for _, fd := range row {
			out = append(out, f.FieldView(fd))
		}
		v.Rows = append(v.Rows, out)
	}
	return v
}

package formbuilder

import (
	"github.com/dalemusser/employeehub/internal/app/system/inputval"
	"github.com/dalemusser/waffle/pantry/validate"
)

// TagSchema is a Schema over a struct carrying validate tags. Decode builds
// the struct from form data; its json names must match the field names,
// because the validator reports failures under them.
type TagSchema struct {
	Validator *validate.Validator
	Decode    func(data map[string]string) any
	// Message renders a failure. Nil keeps the validator's own message.
	Message func(e *validate.Error) string
}

func (s TagSchema) check(data map[string]string) validate.Errors {
	v := s.Validator
	if v == nil {
		v = inputval.Validator()
	}
	return inputval.Check(v, s.Decode(data))
}

func (s TagSchema) message(e *validate.Error) string {
	if s.Message == nil {
		return e.Message
	}
	return s.Message(e)
}

// ValidateField implements Schema. The whole struct is checked and only the
// first failure of name is kept.
func (s TagSchema) ValidateField(name string, data map[string]string) (string, bool) {
	first := s.check(data).FieldErrors(name).First()
	if first == nil {
		return "", true
	}
	return s.message(first), false
}

// Validate implements Schema, reporting failures in struct field order.
func (s TagSchema) Validate(data map[string]string) []FieldError {
	errs := s.check(data)
	out := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		fe := FieldError{Message: s.message(e)}
		if e.Field != "" {
			fe.Path = []string{e.Field}
		}
		out = append(out, fe)
	}
	return out
}

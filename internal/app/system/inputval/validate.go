package inputval

import (
	"errors"

	"github.com/dalemusser/waffle/pantry/validate"
)

// messages are the English failure texts reported outside the form pages
// (CSV import, employeectl). {field} is the json field name.
var messages = map[string]string{
	"required": "{field} is required",
	"min":      "{field} must be at least {param} characters",
	"max":      "{field} must be at most {param} characters",
	"date":     "invalid {field}",
	"phone":    "invalid {field}",
	"email":    "invalid {field}",
	"oneof":    "unknown {field}",
}

var validator = newValidator()

func newValidator() *validate.Validator {
	m := validate.NewMessageProvider()
	m.RegisterLocale("en", messages)
	v := validate.New(validate.WithMessages(m))

	// Override waffle's built-in email and date rules with this package's checks.
	v.RegisterRuleFunc("phone", optional(IsValidPhone), "phone")
	v.RegisterRuleFunc("email", optional(IsValidEmail), "email")
	v.RegisterRuleFunc("date", optional(IsValidDate), "date")
	return v
}

// optional leaves empty values to the required rule.
func optional(fn func(string) bool) func(any) bool {
	return func(v any) bool {
		s, _ := v.(string)
		return s == "" || fn(s)
	}
}

// Validator returns the shared validator with the phone, email and date
// rules registered.
func Validator() *validate.Validator { return validator }

// Validate checks s against its validate tags and returns the failures in
// field order, or nil when s is valid.
//
//	if errs := inputval.Validate(e); errs.HasErrors() {
//	    return errs.First().Message
//	}
func Validate(s any) validate.Errors {
	return Check(validator, s)
}

// Check runs v over s. Errors that are not field failures (s is not a
// struct) come back as a single failure without a field.
func Check(v *validate.Validator, s any) validate.Errors {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var errs validate.Errors
	if !errors.As(err, &errs) {
		return validate.Errors{{Message: err.Error()}}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

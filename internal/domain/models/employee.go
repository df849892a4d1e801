// internal/domain/models/employee.go
package models

import "strconv"

// Employee is one record of the persisted employee collection.
//
// The JSON layout is the storage format: the whole collection is kept as a
// single JSON array under one storage key, so field names must stay stable.
// Dates are ISO calendar dates (YYYY-MM-DD) kept as strings.
//
// The validate tags are checked by inputval.Validate; the json names are
// the field names reported in failures. Department and Position hold enum
// codes, and their oneof lists must follow Departments and Positions.
type Employee struct {
	ID               int64  `json:"id" bson:"id"`
	FirstName        string `json:"firstName" bson:"firstName" validate:"min=2,max=50"`
	LastName         string `json:"lastName" bson:"lastName" validate:"min=2,max=50"`
	DateOfBirth      string `json:"dateOfBirth" bson:"dateOfBirth" validate:"required,date"`
	DateOfEmployment string `json:"dateOfEmployment" bson:"dateOfEmployment" validate:"required,date"`
	Phone            string `json:"phone" bson:"phone" validate:"required,phone"`
	Email            string `json:"email" bson:"email" validate:"required,email"`
	Department       string `json:"department" bson:"department" validate:"required,oneof=1 2"`
	Position         string `json:"position" bson:"position" validate:"required,oneof=1 2 3"`
}

// RecordID returns the stable identity used for selection membership.
func (e Employee) RecordID() string {
	return strconv.FormatInt(e.ID, 10)
}

// FieldValue returns the value of a field by its storage name.
func (e Employee) FieldValue(name string) (any, bool) {
	switch name {
	case "id":
		return e.ID, true
	case "firstName":
		return e.FirstName, true
	case "lastName":
		return e.LastName, true
	case "dateOfBirth":
		return e.DateOfBirth, true
	case "dateOfEmployment":
		return e.DateOfEmployment, true
	case "phone":
		return e.Phone, true
	case "email":
		return e.Email, true
	case "department":
		return e.Department, true
	case "position":
		return e.Position, true
	}
	return nil, false
}

// FormValues flattens the editable fields into form data keyed by field name.
func (e Employee) FormValues() map[string]string {
	return map[string]string{
		"firstName":        e.FirstName,
		"lastName":         e.LastName,
		"dateOfBirth":      e.DateOfBirth,
		"dateOfEmployment": e.DateOfEmployment,
		"phone":            e.Phone,
		"email":            e.Email,
		"department":       e.Department,
		"position":         e.Position,
	}
}

// EmployeeFromForm builds an Employee (without ID) from form data.
func EmployeeFromForm(data map[string]string) Employee {
	return Employee{
		FirstName:        data["firstName"],
		LastName:         data["lastName"],
		DateOfBirth:      data["dateOfBirth"],
		DateOfEmployment: data["dateOfEmployment"],
		Phone:            data["phone"],
		Email:            data["email"],
		Department:       data["department"],
		Position:         data["position"],
	}
}

// EnumOption is one value of an enum-coded field. LabelKey is a translation key.
type EnumOption struct {
	Code     string
	LabelKey string
}

// Departments lists the department codes in display order.
var Departments = []EnumOption{
	{Code: "1", LabelKey: "forms.departments.analytics"},
	{Code: "2", LabelKey: "forms.departments.tech"},
}

// Positions lists the position codes in display order.
var Positions = []EnumOption{
	{Code: "1", LabelKey: "forms.positions.junior"},
	{Code: "2", LabelKey: "forms.positions.medior"},
	{Code: "3", LabelKey: "forms.positions.senior"},
}

// EnumLabelKey returns the translation key for code, or "" if unknown.
func EnumLabelKey(opts []EnumOption, code string) string {
	for _, o := range opts {
		if o.Code == code {
			return o.LabelKey
		}
	}
	return ""
}

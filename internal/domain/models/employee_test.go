package models

import (
	"reflect"
	"strings"
	"testing"
)

func oneofCodes(t *testing.T, field string) []string {
	t.Helper()
	f, ok := reflect.TypeOf(Employee{}).FieldByName(field)
	if !ok {
		t.Fatalf("no field %s", field)
	}
	for _, rule := range strings.Split(f.Tag.Get("validate"), ",") {
		if list, ok := strings.CutPrefix(rule, "oneof="); ok {
			return strings.Fields(list)
		}
	}
	t.Fatalf("%s has no oneof rule", field)
	return nil
}

func TestEnumTagsMatchOptions(t *testing.T) {
	tests := []struct {
		field string
		opts  []EnumOption
	}{
		{"Department", Departments},
		{"Position", Positions},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			var codes []string
			for _, o := range tt.opts {
				codes = append(codes, o.Code)
			}
			if got := oneofCodes(t, tt.field); !reflect.DeepEqual(got, codes) {
				t.Errorf("oneof codes = %v, want %v", got, codes)
			}
		})
	}
}

func TestEmployeeFromForm(t *testing.T) {
	e := Employee{
		FirstName: "Ada", LastName: "Lovelace",
		DateOfBirth: "1990-12-10", DateOfEmployment: "2020-01-02",
		Phone: "+90 555 000 11 22", Email: "ada@example.com",
		Department: "2", Position: "3",
	}
	if got := EmployeeFromForm(e.FormValues()); got != e {
		t.Errorf("EmployeeFromForm(FormValues()) = %+v, want %+v", got, e)
	}
}

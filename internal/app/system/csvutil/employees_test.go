package csvutil

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dalemusser/employeehub/internal/domain/models"
)

var sample = models.Employee{
	ID: 7, FirstName: "John", LastName: "Doe",
	DateOfBirth: "1999-01-15", DateOfEmployment: "2023-01-15",
	Phone: "+90 555 555 55 55", Email: "john@example.com",
	Department: "1", Position: "2",
}

func TestWriteThenParse(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEmployees(&buf, []models.Employee{sample}); err != nil {
		t.Fatalf("WriteEmployees() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "id,firstName,lastName,") {
		t.Errorf("missing header: %q", buf.String())
	}

	res, err := ParseEmployees(&buf)
	if err != nil {
		t.Fatalf("ParseEmployees() error = %v", err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Rows) != 1 || res.Rows[0] != sample {
		t.Errorf("Rows = %+v, want %+v", res.Rows, sample)
	}
}

func TestParseEmployees_BOMAndBlankLines(t *testing.T) {
	in := "\ufeffid,firstName,lastName,dateOfBirth,dateOfEmployment,phone,email,department,position\n" +
		"\n" +
		",Jane,Smith,1990-05-01,2020-02-02,+90 555 555 55 56,jane@example.com,2,3\n"

	res, err := ParseEmployees(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseEmployees() error = %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("got %d rows, want 1 (errors %v)", len(res.Rows), res.Errors)
	}
	if res.Rows[0].ID != 0 || res.Rows[0].FirstName != "Jane" {
		t.Errorf("Row = %+v", res.Rows[0])
	}
}

func TestParseEmployees_InvalidRows(t *testing.T) {
	in := "1,J,Doe,1999-01-15,2023-01-15,+90 555 555 55 55,john@example.com,1,1\n" +
		"x,John,Doe,1999-01-15,2023-01-15,+90 555 555 55 55,john@example.com,1,1\n" +
		"3,John,Doe,1999-01-15,2023-01-15,+90 555 555 55 55,not-an-email,1,1\n" +
		"4,John,Doe,1999-01-15,2023-01-15,+90 555 555 55 55,john@example.com,9,1\n" +
		"5,John,Doe\n" +
		"6,John,Doe,1999-01-15,2023-01-15,+90 555 555 55 55,john@example.com,1,3\n"

	res, err := ParseEmployees(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseEmployees() error = %v", err)
	}
	if len(res.Rows) != 1 || res.Rows[0].ID != 6 {
		t.Errorf("Rows = %+v, want only id 6", res.Rows)
	}
	wantLines := []int{1, 2, 3, 4, 5}
	if len(res.Errors) != len(wantLines) {
		t.Fatalf("Errors = %v, want %d", res.Errors, len(wantLines))
	}
	for i, line := range wantLines {
		if res.Errors[i].Line != line {
			t.Errorf("Errors[%d].Line = %d, want %d", i, res.Errors[i].Line, line)
		}
	}
	if res.Err() == nil || !strings.Contains(res.Err().Error(), "line 3: invalid email") {
		t.Errorf("Err() = %v", res.Err())
	}
}

func TestParseEmployees_TooManyRows(t *testing.T) {
	var b strings.Builder
	for i := 0; i <= MaxRows; i++ {
		b.WriteString(",John,Doe,1999-01-15,2023-01-15,+90 555 555 55 55,john@example.com,1,1\n")
	}
	_, err := ParseEmployees(strings.NewReader(b.String()))
	if !errors.Is(err, ErrTooManyRows) {
		t.Errorf("err = %v, want ErrTooManyRows", err)
	}
}

func TestValidate(t *testing.T) {
	if got := Validate(sample); got != "" {
		t.Errorf("Validate(sample) = %q, want empty", got)
	}
	bad := sample
	bad.Position = "7"
	if got := Validate(bad); !strings.Contains(got, "position") {
		t.Errorf("Validate(bad) = %q", got)
	}
}

// internal/app/system/csvutil/employees.go
package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dalemusser/employeehub/internal/app/system/inputval"
	"github.com/dalemusser/employeehub/internal/domain/models"
)

// Header is the column order written by WriteEmployees and expected by
// ParseEmployees. The id column may be left blank on import.
var Header = []string{
	"id", "firstName", "lastName", "dateOfBirth", "dateOfEmployment",
	"phone", "email", "department", "position",
}

// ErrTooManyRows is returned when a file has more than MaxRows data rows.
var ErrTooManyRows = fmt.Errorf("csv has more than %d rows", MaxRows)

// RowError describes one rejected line.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ParseResult holds the rows that parsed and the lines that did not.
type ParseResult struct {
	Rows   []models.Employee
	Errors []RowError
}

// HasErrors reports whether any line was rejected.
func (p ParseResult) HasErrors() bool { return len(p.Errors) > 0 }

// Err joins the row errors, or returns nil.
func (p ParseResult) Err() error {
	if !p.HasErrors() {
		return nil
	}
	errs := make([]error, len(p.Errors))
	for i, e := range p.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// WriteEmployees writes items as CSV with a header row.
func WriteEmployees(w io.Writer, items []models.Employee) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range items {
		rec := []string{
			strconv.FormatInt(e.ID, 10),
			e.FirstName, e.LastName, e.DateOfBirth, e.DateOfEmployment,
			e.Phone, e.Email, e.Department, e.Position,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseEmployees reads employees from r. A header row (first cell "id")
// is skipped, a UTF-8 BOM is stripped, and blank lines are ignored.
// Every row is validated the way the employee form validates it; invalid
// rows are reported in Errors and left out of Rows. Rows without an id
// get ID 0, for the caller to assign.
func ParseEmployees(r io.Reader) (ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var res ParseResult
	line := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return res, fmt.Errorf("read csv: %w", err)
		}
		if line == 1 && len(rec) > 0 {
			rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
			if strings.EqualFold(strings.TrimSpace(rec[0]), "id") {
				continue
			}
		}
		if blank(rec) {
			continue
		}
		if len(res.Rows)+len(res.Errors) >= MaxRows {
			return res, ErrTooManyRows
		}

		e, reason := parseRow(rec)
		if reason != "" {
			res.Errors = append(res.Errors, RowError{Line: line, Reason: reason})
			continue
		}
		res.Rows = append(res.Rows, e)
	}
	return res, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseRow(rec []string) (models.Employee, string) {
	if len(rec) != len(Header) {
		return models.Employee{}, fmt.Sprintf("expected %d columns, got %d", len(Header), len(rec))
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}

	var id int64
	if rec[0] != "" {
		n, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil || n <= 0 {
			return models.Employee{}, "invalid id " + strconv.Quote(rec[0])
		}
		id = n
	}
	e := models.Employee{
		ID:               id,
		FirstName:        rec[1],
		LastName:         rec[2],
		DateOfBirth:      rec[3],
		DateOfEmployment: rec[4],
		Phone:            rec[5],
		Email:            rec[6],
		Department:       rec[7],
		Position:         rec[8],
	}
	return e, Validate(e)
}

// Validate returns the first problem with e, or "" when it is acceptable.
// The rules are the validate tags of models.Employee, shared with the form.
func Validate(e models.Employee) string {
	if errs := inputval.Validate(e); errs.HasErrors() {
		return errs.First().Message
	}
	return ""
}

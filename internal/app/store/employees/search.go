package employeestore

import (
	"github.com/dalemusser/employeehub/internal/app/system/search"
	"github.com/dalemusser/employeehub/internal/domain/models"
)

// Matches reports whether e matches a free-text search term on its first
// name, last name, email or phone.
func Matches(e models.Employee, term string) bool {
	return search.Match(term, e.FirstName, e.LastName, e.Email, e.Phone)
}

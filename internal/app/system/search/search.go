// internal/app/system/search/search.go
package search

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Normalize folds a search term for comparison (case- and diacritic-insensitive)
// and collapses inner whitespace.
func Normalize(term string) string {
	return strings.Join(strings.Fields(text.Fold(term)), " ")
}

// Match reports whether term matches a record described by fields.
//
// A record matches when the whole term is contained in any single field or
// in the space-joined concatenation of all fields, or when every whitespace
// separated token of the term is contained in at least one field. An empty
// term matches everything.
//
//	search.Match("john doe", e.FirstName, e.LastName, e.Email, e.Phone)
func Match(term string, fields ...string) bool {
	t := Normalize(term)
	if t == "" {
		return true
	}

	folded := make([]string, 0, len(fields))
	for _, f := range fields {
		folded = append(folded, Normalize(f))
	}
	if containsAny(folded, t) || strings.Contains(strings.Join(folded, " "), t) {
		return true
	}

	for _, tok := range strings.Fields(t) {
		if !containsAny(folded, tok) {
			return false
		}
	}
	return true
}

func containsAny(fields []string, s string) bool {
	for _, f := range fields {
		if strings.Contains(f, s) {
			return true
		}
	}
	return false
}

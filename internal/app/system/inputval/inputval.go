// internal/app/system/inputval/inputval.go
package inputval

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// IsValidEmail reports whether s is a bare address (no display name) with a
// well-formed local part and a dotted domain ending in a top-level domain of
// at least two letters.
func IsValidEmail(s string) bool {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	if !validDotAtom(s[:at]) || !validDotAtom(domain) {
		return false
	}
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && tldPattern.MatchString(domain[dot+1:])
}

var tldPattern = regexp.MustCompile(`^[A-Za-z]{2,}$`)

func validDotAtom(s string) bool {
	return s != "" &&
		!strings.HasPrefix(s, ".") &&
		!strings.HasSuffix(s, ".") &&
		!strings.Contains(s, "..")
}

var phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)

// IsValidPhone accepts an optional leading '+' followed by at least ten
// digits, spaces or dashes.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// DateLayout is the calendar date format used by date inputs.
const DateLayout = "2006-01-02"

// IsValidDate reports whether s is a YYYY-MM-DD calendar date.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

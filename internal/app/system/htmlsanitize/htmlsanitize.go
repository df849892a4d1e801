// Package htmlsanitize cleans HTML fragments produced by column renderers
// before they are placed in a grid cell.
//
// Renderers may return light inline markup (emphasis, badges, links).
// Everything else, including scripts, event handler attributes, block
// layout and embedded frames, is stripped.
package htmlsanitize

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func cellPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("b", "strong", "i", "em", "u", "s", "mark", "small", "sub", "sup", "br", "code")
		p.AllowAttrs("class").OnElements("span", "strong", "em", "mark", "small", "code")
		p.AllowElements("span")
		p.AllowAttrs("title").OnElements("abbr", "span")
		p.AllowElements("abbr")
		p.AllowAttrs("datetime").OnElements("time")
		p.AllowElements("time")
		p.AllowAttrs("href").OnElements("a")
		p.AllowURLSchemes("http", "https", "mailto", "tel")
		p.AllowRelativeURLs(true)
		p.RequireNoFollowOnLinks(true)
		policy = p
	})
	return policy
}

// Sanitize returns s with every element and attribute outside the cell
// policy removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return cellPolicy().Sanitize(s)
}

// SanitizeToHTML sanitizes s and marks the result safe for templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s contains no markup at all.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}

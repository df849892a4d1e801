// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix. If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are path prefixes to reject so a redirect never lands
	// back on a form or an action endpoint.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string

	// PreserveQueryParams are copied from the request onto the fallback URL.
	PreserveQueryParams []string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", rejects
// anything that is not a local path, applies the prefix and exclusion rules,
// and otherwise builds the fallback.
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}

	if ret != "" && allowed(ret, opts) {
		return ret
	}

	fallback := opts.Fallback
	if fallback == "" {
		fallback = "/"
	}
	keep := url.Values{}
	for _, name := range opts.PreserveQueryParams {
		v := query.Get(r, name)
		if v == "" {
			v = strings.TrimSpace(r.FormValue(name))
		}
		if v != "" {
			keep.Set(name, v)
		}
	}
	if len(keep) == 0 {
		return fallback
	}
	sep := "?"
	if strings.Contains(fallback, "?") {
		sep = "&"
	}
	return fallback + sep + keep.Encode()
}

func allowed(ret string, opts BackURLOptions) bool {
	if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
		return false
	}
	path := ret
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, excluded := range opts.ExcludedSubpaths {
		if strings.HasPrefix(path, excluded) {
			return false
		}
	}
	return true
}

// ListURL builds the employee list URL for the given page and filters.
// Empty values and page 1 are omitted.
func ListURL(page int, view, search, department, position string) string {
	v := url.Values{}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("view", view)
	set("q", search)
	set("department", department)
	set("position", position)
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

// EmployeesBackURL is used by every page that returns to the employee list.
var EmployeesBackURL = BackURLOptions{
	AllowedPrefix:       "/",
	ExcludedSubpaths:    []string{"/add-employee", "/edit-employee", "/actions", "/confirm", "/selection", "/language"},
	Fallback:            "/",
	PreserveQueryParams: []string{"page", "view", "q", "department", "position"},
}

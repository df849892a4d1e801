package navigation

import (
	"net/http/httptest"
	"testing"
)

func TestSafeBackURL(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"list page kept", "/x?return=%2F%3Fpage%3D2", "/?page=2"},
		{"form page rejected", "/x?return=%2Fedit-employee%2F5", "/"},
		{"action endpoint rejected", "/x?return=%2Factions", "/"},
		{"missing return uses fallback", "/x", "/"},
		{"fallback keeps filters", "/x?department=2&q=ann", "/?department=2&q=ann"},
		{"rejected return keeps filters", "/x?return=%2Fconfirm&page=3", "/?page=3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			if got := SafeBackURL(r, EmployeesBackURL); got != tt.want {
				t.Errorf("SafeBackURL(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestListURL(t *testing.T) {
	tests := []struct {
		page                    int
		view, q, dept, position string
		want                    string
	}{
		{1, "", "", "", "", "/"},
		{0, "", "", "", "", "/"},
		{2, "", "", "", "", "/?page=2"},
		{3, "list", "john", "1", "2", "/?department=1&page=3&position=2&q=john&view=list"},
	}
	for _, tt := range tests {
		if got := ListURL(tt.page, tt.view, tt.q, tt.dept, tt.position); got != tt.want {
			t.Errorf("ListURL(%d, %q, %q, %q, %q) = %q, want %q", tt.page, tt.view, tt.q, tt.dept, tt.position, got, tt.want)
		}
	}
}

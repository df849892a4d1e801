package search

import "testing"

func TestMatch(t *testing.T) {
	fields := []string{"Ayşe", "Kaya", "ayse.kaya@example.com", "+90 533 444 55 66"}

	tests := []struct {
		name string
		term string
		want bool
	}{
		{"empty term", "", true},
		{"blank term", "   ", true},
		{"first name", "ayse", true},
		{"case insensitive", "KAYA", true},
		{"diacritics folded", "Ayşe", true},
		{"full name", "ayse kaya", true},
		{"reversed tokens", "kaya ayse", true},
		{"extra spaces", "  ayse    kaya ", true},
		{"email fragment", "@example.com", true},
		{"phone fragment", "444 55", true},
		{"one token missing", "ayse smith", false},
		{"no match", "zeynep", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.term, fields...); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  John   DOE "); got != "john doe" {
		t.Errorf("Normalize = %q, want %q", got, "john doe")
	}
}

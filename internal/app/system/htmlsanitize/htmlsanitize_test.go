package htmlsanitize_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/dalemusser/employeehub/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if result := htmlsanitize.Sanitize(""); result != "" {
		t.Errorf("expected empty string, got %q", result)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	result := htmlsanitize.Sanitize("Analytics")
	if result != "Analytics" {
		t.Errorf("expected plain text unchanged, got %q", result)
	}
}

func TestSanitize_InlineFormatting(t *testing.T) {
	input := "<strong>Senior</strong> <em>since 2023</em>"
	if result := htmlsanitize.Sanitize(input); result != input {
		t.Errorf("expected inline formatting preserved, got %q", result)
	}
}

func TestSanitize_BadgeClass(t *testing.T) {
	input := `<span class="badge">Tech</span>`
	if result := htmlsanitize.Sanitize(input); result != input {
		t.Errorf("expected badge span preserved, got %q", result)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	input := "<strong>Hi</strong><script>alert('xss')</script>"
	if result := htmlsanitize.Sanitize(input); result != "<strong>Hi</strong>" {
		t.Errorf("expected script removed, got %q", result)
	}
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	input := `<span onclick="alert('xss')">Click</span>`
	result := htmlsanitize.Sanitize(input)
	if strings.Contains(result, "onclick") {
		t.Errorf("expected onclick attribute to be removed, got %q", result)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	input := `<a href="javascript:alert('xss')">Click</a>`
	result := htmlsanitize.Sanitize(input)
	if strings.Contains(result, "javascript:") {
		t.Errorf("expected javascript: href to be removed, got %q", result)
	}
}

func TestSanitize_AllowsMailtoLinks(t *testing.T) {
	input := `<a href="mailto:john@example.com">john@example.com</a>`
	result := htmlsanitize.Sanitize(input)
	if !strings.Contains(result, "mailto:john@example.com") {
		t.Errorf("expected mailto link preserved, got %q", result)
	}
	if !strings.Contains(result, "nofollow") {
		t.Errorf("expected rel=nofollow on links, got %q", result)
	}
}

func TestSanitize_RemovesBlockLayout(t *testing.T) {
	input := `<div><table><tr><td>x</td></tr></table></div>`
	result := htmlsanitize.Sanitize(input)
	if strings.Contains(result, "<table") || strings.Contains(result, "<div") {
		t.Errorf("expected block elements removed, got %q", result)
	}
	if !strings.Contains(result, "x") {
		t.Errorf("expected text content kept, got %q", result)
	}
}

func TestSanitize_RemovesIframe(t *testing.T) {
	input := `<em>Content</em><iframe src="https://evil.com"></iframe>`
	result := htmlsanitize.Sanitize(input)
	if strings.Contains(result, "iframe") {
		t.Error("expected iframe to be removed")
	}
}

func TestSanitizeToHTML_ReturnsTemplateHTML(t *testing.T) {
	result := htmlsanitize.SanitizeToHTML("<b>Hello</b>")
	if result != template.HTML("<b>Hello</b>") {
		t.Errorf("got %v", result)
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"John Doe", true},
		{"<b>John</b>", false},
		{"a < b", false},
	}
	for _, tt := range tests {
		if got := htmlsanitize.IsPlainText(tt.in); got != tt.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := string(RenderMarkdown("**bold** <script>alert(1)</script>"))
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("expected bold markup, got %q", out)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("script tag must be stripped, got %q", out)
	}
}

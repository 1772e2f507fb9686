package render

import (
	"strings"
	"testing"
)

func TestPlainMarkdownPassthrough(t *testing.T) {
	r := New("plain", 80)
	doc := "# Heading\n\nBody.\n"
	if got := r.Markdown(doc); got != doc {
		t.Errorf("plain mode should pass markdown through, got %q", got)
	}
	if !r.Plain() {
		t.Error("expected plain renderer")
	}
}

func TestStyledMarkdown(t *testing.T) {
	r := New("dark", 80)
	out := r.Markdown("# Heading\n\nBody.\n")
	if !strings.Contains(out, "Heading") {
		t.Errorf("rendered output lost content: %q", out)
	}
}

func TestKVAlignment(t *testing.T) {
	r := New("plain", 80)
	out := r.KV([][2]string{{"n", "15"}, {"factors", "3 x 5"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	// Keys pad to equal width so values line up.
	if strings.Index(lines[0], "15") != strings.Index(lines[1], "3 x 5") {
		t.Errorf("values misaligned:\n%s", out)
	}
}

func TestNarrowWidthFallback(t *testing.T) {
	r := New("plain", 10)
	if r == nil {
		t.Fatal("renderer should tolerate absurd widths")
	}
}

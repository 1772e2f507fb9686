package lesson

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadEmbedded(t *testing.T) {
	cat, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cat.Len() != 7 {
		t.Fatalf("expected 7 lessons, got %d", cat.Len())
	}

	// TOC order follows the notebook sequence.
	wantOrder := []string{"qubits", "gates", "teleportation", "deutsch", "bernstein-vazirani", "grover", "shor"}
	for i, l := range cat.List() {
		if l.Slug != wantOrder[i] {
			t.Errorf("lesson %d: slug %q, want %q", i, l.Slug, wantOrder[i])
		}
		if l.Title == "" || l.Summary == "" || l.Body == "" {
			t.Errorf("lesson %q has empty metadata or body", l.Slug)
		}
	}
}

func TestGet(t *testing.T) {
	cat, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	l, ok := cat.Get("shor")
	if !ok {
		t.Fatal("lesson shor not found")
	}
	if !strings.Contains(l.Body, "order") {
		t.Error("shor lesson should discuss order finding")
	}
	if _, ok := cat.Get("SHOR"); !ok {
		t.Error("lookup should be case-insensitive")
	}
	if _, ok := cat.Get("calculus"); ok {
		t.Error("unexpected lesson match")
	}
}

func TestTOC(t *testing.T) {
	cat, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	toc := cat.TOC()
	if !strings.Contains(toc, "`qubits`") || !strings.Contains(toc, "`shor`") {
		t.Errorf("TOC missing lesson slugs:\n%s", toc)
	}
}

func TestParse(t *testing.T) {
	doc := "---\nslug: demo\ntitle: Demo\norder: 9\n---\n\n# Heading\n\nBody text.\n"
	l, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	if l.Slug != "demo" || l.Order != 9 {
		t.Errorf("unexpected meta: %+v", l.Meta)
	}
	if !strings.HasPrefix(l.Body, "\n# Heading") && !strings.HasPrefix(l.Body, "# Heading") {
		t.Errorf("unexpected body: %q", l.Body)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"no front matter": "# Just markdown\n",
		"unterminated":    "---\nslug: x\ntitle: X\n",
		"missing slug":    "---\ntitle: X\n---\nbody\n",
		"broken yaml":     "---\n: : :\n---\nbody\n",
	}
	for name, doc := range cases {
		if _, err := Parse(doc); err == nil {
			t.Errorf("%s: expected parse error", name)
		}
	}
}

func TestLoadRejectsDuplicateSlugs(t *testing.T) {
	fsys := fstest.MapFS{
		"content/a.md": {Data: []byte("---\nslug: dup\ntitle: A\n---\nbody\n")},
		"content/b.md": {Data: []byte("---\nslug: dup\ntitle: B\n---\nbody\n")},
	}
	if _, err := loadFS(fsys, "content"); err == nil {
		t.Fatal("expected duplicate slug error")
	}
}

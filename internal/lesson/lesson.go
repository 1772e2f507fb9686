// Package lesson holds the teaching content: markdown documents with YAML
// front matter, compiled into the binary and served to the CLI in table of
// contents order.
package lesson

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.md
var contentFS embed.FS

// Meta is the YAML front matter of a lesson document.
type Meta struct {
	Slug    string   `yaml:"slug"`
	Title   string   `yaml:"title"`
	Order   int      `yaml:"order"`
	Topics  []string `yaml:"topics"`
	Summary string   `yaml:"summary"`
}

// Lesson is one teaching document.
type Lesson struct {
	Meta
	Body string // markdown, front matter stripped
}

// Catalog is the loaded set of lessons in TOC order.
type Catalog struct {
	lessons []Lesson
	bySlug  map[string]int
}

// Load parses every embedded lesson. It fails on malformed front matter or
// duplicate slugs; the content ships inside the binary, so an error here is
// a build defect, not user input.
func Load() (*Catalog, error) {
	return loadFS(contentFS, "content")
}

func loadFS(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("lesson: reading content dir: %w", err)
	}
	cat := &Catalog{bySlug: make(map[string]int)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		raw, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("lesson: reading %s: %w", entry.Name(), err)
		}
		l, err := Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("lesson: parsing %s: %w", entry.Name(), err)
		}
		if _, dup := cat.bySlug[l.Slug]; dup {
			return nil, fmt.Errorf("lesson: duplicate slug %q in %s", l.Slug, entry.Name())
		}
		cat.lessons = append(cat.lessons, l)
	}
	sort.SliceStable(cat.lessons, func(i, j int) bool {
		if cat.lessons[i].Order != cat.lessons[j].Order {
			return cat.lessons[i].Order < cat.lessons[j].Order
		}
		return cat.lessons[i].Slug < cat.lessons[j].Slug
	})
	for i, l := range cat.lessons {
		cat.bySlug[l.Slug] = i
	}
	return cat, nil
}

// Parse splits a document into front matter and body. The front matter is
// delimited by "---" lines at the top of the file.
func Parse(doc string) (Lesson, error) {
	const delim = "---"
	trimmed := strings.TrimLeft(doc, "\n")
	if !strings.HasPrefix(trimmed, delim+"\n") {
		return Lesson{}, fmt.Errorf("missing front matter")
	}
	rest := trimmed[len(delim)+1:]
	end := strings.Index(rest, "\n"+delim)
	if end < 0 {
		return Lesson{}, fmt.Errorf("unterminated front matter")
	}
	var meta Meta
	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return Lesson{}, fmt.Errorf("front matter: %w", err)
	}
	if meta.Slug == "" || meta.Title == "" {
		return Lesson{}, fmt.Errorf("front matter requires slug and title")
	}
	body := rest[end+len(delim)+1:]
	body = strings.TrimPrefix(body, "\n")
	return Lesson{Meta: meta, Body: body}, nil
}

// List returns all lessons in TOC order.
func (c *Catalog) List() []Lesson {
	out := make([]Lesson, len(c.lessons))
	copy(out, c.lessons)
	return out
}

// Len reports the number of lessons.
func (c *Catalog) Len() int { return len(c.lessons) }

// Get looks a lesson up by slug, case-insensitively.
func (c *Catalog) Get(slug string) (Lesson, bool) {
	if i, ok := c.bySlug[slug]; ok {
		return c.lessons[i], true
	}
	for s, i := range c.bySlug {
		if strings.EqualFold(s, slug) {
			return c.lessons[i], true
		}
	}
	return Lesson{}, false
}

// TOC renders the catalog as a markdown table of contents, mirroring the
// repository README.
func (c *Catalog) TOC() string {
	var b strings.Builder
	b.WriteString("# Lessons\n\n")
	for i, l := range c.lessons {
		fmt.Fprintf(&b, "%d. **%s** (`%s`) — %s\n", i+1, l.Title, l.Slug, l.Summary)
	}
	return b.String()
}

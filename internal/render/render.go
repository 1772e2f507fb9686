// Package render draws lessons and results in the terminal: glamour for
// markdown, lipgloss for the surrounding chrome. Plain mode strips every
// escape sequence for pipes and dumb terminals.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles is the lipgloss styling used by the CLI output.
type Styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Good    lipgloss.Style
	Bad     lipgloss.Style
	Muted   lipgloss.Style
}

var (
	accent  = lipgloss.Color("#8BC34A")
	primary = lipgloss.Color("#2196F3")
	errRed  = lipgloss.Color("#e53935")
	grey    = lipgloss.Color("#808080")
)

// DefaultStyles returns the color styles.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(primary),
		Section: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Key:     lipgloss.NewStyle().Foreground(grey),
		Value:   lipgloss.NewStyle().Bold(true),
		Good:    lipgloss.NewStyle().Foreground(accent),
		Bad:     lipgloss.NewStyle().Foreground(errRed),
		Muted:   lipgloss.NewStyle().Foreground(grey),
	}
}

// PlainStyles returns pass-through styles that emit no escape codes.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Title: s, Section: s, Key: s, Value: s, Good: s, Bad: s, Muted: s}
}

// Renderer turns markdown into terminal output.
type Renderer struct {
	tr     *glamour.TermRenderer
	Styles Styles
	plain  bool
}

// New builds a renderer for the given color mode ("auto", "dark", "light",
// "plain") and wrap width. Glamour construction failures fall back to plain
// output rather than erroring: content must always be readable.
func New(colorMode string, width int) *Renderer {
	if width < 40 {
		width = 80
	}
	if colorMode == "auto" && !isatty.IsTerminal(os.Stdout.Fd()) {
		colorMode = "plain"
	}
	if colorMode == "plain" {
		return &Renderer{Styles: PlainStyles(), plain: true}
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch colorMode {
	case "dark":
		opts = append(opts, glamour.WithStandardStyle("dark"))
	case "light":
		opts = append(opts, glamour.WithStandardStyle("light"))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return &Renderer{Styles: PlainStyles(), plain: true}
	}
	return &Renderer{tr: tr, Styles: DefaultStyles()}
}

// Markdown renders a markdown document. In plain mode (or if glamour fails)
// the source text is returned untouched; markdown reads fine raw.
func (r *Renderer) Markdown(doc string) string {
	if r.plain || r.tr == nil {
		return doc
	}
	out, err := r.tr.Render(doc)
	if err != nil {
		return doc
	}
	return out
}

// Plain reports whether styling is disabled.
func (r *Renderer) Plain() bool { return r.plain }

// KV formats an aligned key/value block, the CLI's standard result shape.
func (r *Renderer) KV(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	var b strings.Builder
	for _, p := range pairs {
		key := fmt.Sprintf("%-*s", width, p[0])
		fmt.Fprintf(&b, "  %s  %s\n", r.Styles.Key.Render(key), r.Styles.Value.Render(p[1]))
	}
	return b.String()
}

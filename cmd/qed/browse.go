// Interactive lesson browser: a bubbletea list/viewport pair with
// glamour-rendered lesson bodies.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"qed/internal/backend"
	"qed/internal/lesson"
	"qed/internal/progress"
	"qed/internal/render"
	"qed/internal/shor"
)

// factorDemoN is the number the in-browser factor demo works on: a
// semiprime small enough that the brute-force order search is instant.
const factorDemoN = 10013

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the lessons interactively",
	RunE:  runBrowse,
}

// browseView determines which component is focused.
type browseView int

const (
	tocView browseView = iota
	lessonView
)

// lessonItem adapts a lesson to the bubbles list.
type lessonItem struct {
	lesson lesson.Lesson
	read   bool
}

func (i lessonItem) Title() string {
	if i.read {
		return i.lesson.Title + " *"
	}
	return i.lesson.Title
}
func (i lessonItem) Description() string { return i.lesson.Summary }
func (i lessonItem) FilterValue() string { return i.lesson.Title + " " + i.lesson.Slug }

type browseModel struct {
	view         browseView
	list         list.Model
	viewport     viewport.Model
	spin         spinner.Model
	renderer     *render.Renderer
	store        *progress.Store // nil when the progress db is unavailable
	current      string
	factoring    bool
	factorStatus string
	width        int
	height       int
	ready        bool
}

type browseKeyMap struct {
	Open   key.Binding
	Back   key.Binding
	Factor key.Binding
	Quit   key.Binding
}

var browseKeys = browseKeyMap{
	Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Factor: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "factor demo")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// factorDoneMsg carries the result of the background factor demo.
type factorDoneMsg struct {
	res     shor.Result
	err     error
	elapsed time.Duration
}

func newBrowseModel(cat *lesson.Catalog, store *progress.Store, r *render.Renderer) browseModel {
	var read map[string]progress.LessonRead
	if store != nil {
		read, _ = store.LessonReads()
	}

	items := make([]list.Item, 0, cat.Len())
	for _, l := range cat.List() {
		_, ok := read[l.Slug]
		items = append(items, lessonItem{lesson: l, read: ok})
	}

	delegate := list.NewDefaultDelegate()
	lst := list.New(items, delegate, 0, 0)
	lst.Title = "qed — lessons"
	lst.SetShowStatusBar(false)
	lst.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{browseKeys.Factor}
	}

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	return browseModel{view: tocView, list: lst, spin: spin, renderer: r, store: store}
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
		return m, nil

	case tea.KeyMsg:
		// Don't steal keys while the list filter input is active.
		if m.view == tocView && m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, browseKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, browseKeys.Back):
			if m.view == lessonView {
				m.view = tocView
				return m, nil
			}
		case key.Matches(msg, browseKeys.Open):
			if m.view == tocView {
				return m.openSelected()
			}
		case key.Matches(msg, browseKeys.Factor):
			if m.view == tocView && !m.factoring {
				return m.startFactorDemo()
			}
		}

	case spinner.TickMsg:
		if m.factoring {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case factorDoneMsg:
		m.factoring = false
		if msg.err != nil {
			m.factorStatus = fmt.Sprintf("factor demo failed: %v", msg.err)
			return m, nil
		}
		m.factorStatus = fmt.Sprintf("%s (base %d, order %d, %s)",
			msg.res.String(), msg.res.Base, msg.res.Order,
			msg.elapsed.Round(time.Millisecond))
		if m.store != nil {
			_, _ = m.store.RecordFactorRun(msg.res, msg.elapsed)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.view == tocView {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m browseModel) openSelected() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(lessonItem)
	if !ok {
		return m, nil
	}
	m.current = item.lesson.Slug
	m.viewport.SetContent(m.renderer.Markdown(item.lesson.Body))
	m.viewport.GotoTop()
	m.view = lessonView

	if m.store != nil {
		_ = m.store.MarkLessonRead(item.lesson.Slug)
		// Refresh the read marker on the list entry.
		for i, li := range m.list.Items() {
			if it, ok := li.(lessonItem); ok && it.lesson.Slug == item.lesson.Slug {
				it.read = true
				m.list.SetItem(i, it)
			}
		}
	}
	return m, nil
}

// startFactorDemo kicks off the spinner and a background Factor run.
func (m browseModel) startFactorDemo() (tea.Model, tea.Cmd) {
	m.factoring = true
	m.factorStatus = ""
	run := func() tea.Msg {
		start := time.Now()
		res, err := shor.Factor(context.Background(), factorDemoN, shor.Options{
			Orders: backend.Classical{},
		})
		return factorDoneMsg{res: res, err: err, elapsed: time.Since(start)}
	}
	return m, tea.Batch(m.spin.Tick, run)
}

var browseStatusStyle = lipgloss.NewStyle().Faint(true)

// statusLine is the one-line footer under the table of contents.
func (m browseModel) statusLine() string {
	switch {
	case m.factoring:
		return browseStatusStyle.Render(fmt.Sprintf(" %sfactoring %d...", m.spin.View(), factorDemoN))
	case m.factorStatus != "":
		return browseStatusStyle.Render(" " + m.factorStatus)
	}
	return ""
}

func (m browseModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.view == tocView {
		if status := m.statusLine(); status != "" {
			return m.list.View() + "\n" + status
		}
		return m.list.View()
	}
	status := browseStatusStyle.Render(fmt.Sprintf(" %s — esc: back, q: quit", m.current))
	return m.viewport.View() + "\n" + status
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cat, err := lesson.Load()
	if err != nil {
		return err
	}

	store := openProgress()
	if store != nil {
		defer store.Close()
	}

	model := newBrowseModel(cat, store, newRenderer())
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/goleak"

	"qed/internal/lesson"
	"qed/internal/progress"
	"qed/internal/render"
	"qed/internal/shor"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

func newTestModel(t *testing.T) browseModel {
	t.Helper()
	cat, err := lesson.Load()
	if err != nil {
		t.Fatal(err)
	}
	store, err := progress.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return newBrowseModel(cat, store, render.New("plain", 80))
}

func TestBrowseModelListsLessons(t *testing.T) {
	m := newTestModel(t)
	if got := len(m.list.Items()); got != 7 {
		t.Fatalf("expected 7 list items, got %d", got)
	}
	first, ok := m.list.Items()[0].(lessonItem)
	if !ok {
		t.Fatal("list items should be lessonItems")
	}
	if first.lesson.Slug != "qubits" {
		t.Errorf("first lesson = %q, want qubits", first.lesson.Slug)
	}
}

func TestBrowseOpenAndBack(t *testing.T) {
	m := newTestModel(t)

	// Size message readies the viewport.
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(browseModel)
	if !m.ready {
		t.Fatal("model should be ready after size message")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(browseModel)
	if m.view != lessonView {
		t.Fatalf("enter should open the lesson view, got view %d", m.view)
	}
	if m.current != "qubits" {
		t.Errorf("current lesson = %q, want qubits", m.current)
	}

	// The opened lesson now carries the read marker.
	item := m.list.Items()[0].(lessonItem)
	if !item.read {
		t.Error("opened lesson should be marked read")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(browseModel)
	if m.view != tocView {
		t.Fatal("esc should return to the table of contents")
	}
}

func TestBrowseQuit(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(browseModel)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Fatalf("expected tea.Quit, got %T", msg)
	}
}

func TestBrowseFactorDemo(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(browseModel)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = updated.(browseModel)
	if !m.factoring {
		t.Fatal("f should start the factor demo")
	}
	if cmd == nil {
		t.Fatal("starting the demo should schedule the spinner and the run")
	}
	if !strings.Contains(m.View(), "factoring") {
		t.Errorf("view should show the in-progress status, got %q", m.View())
	}

	res := shor.Result{N: factorDemoN, Factors: [2]int64{17, 589}, Base: 3, Order: 4}
	updated, _ = m.Update(factorDoneMsg{res: res, elapsed: 3 * time.Millisecond})
	m = updated.(browseModel)
	if m.factoring {
		t.Fatal("demo should be finished after the done message")
	}
	if !strings.Contains(m.factorStatus, "10013") {
		t.Errorf("status = %q, want the factored number in it", m.factorStatus)
	}
	if !strings.Contains(m.View(), m.factorStatus) {
		t.Error("view should show the finished status")
	}
}

func TestBrowseFactorDemoError(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(browseModel)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = updated.(browseModel)

	updated, _ = m.Update(factorDoneMsg{err: errors.New("boom")})
	m = updated.(browseModel)
	if m.factoring {
		t.Fatal("demo should be finished after an error")
	}
	if !strings.Contains(m.factorStatus, "boom") {
		t.Errorf("status = %q, want the error in it", m.factorStatus)
	}
}

func TestLessonItemStrings(t *testing.T) {
	cat, err := lesson.Load()
	if err != nil {
		t.Fatal(err)
	}
	l, _ := cat.Get("grover")
	item := lessonItem{lesson: l}
	if item.Title() != l.Title {
		t.Errorf("unread title = %q", item.Title())
	}
	item.read = true
	if item.Title() == l.Title {
		t.Error("read marker missing from title")
	}
	if item.FilterValue() == "" {
		t.Error("filter value should not be empty")
	}
}

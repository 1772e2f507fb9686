// Lesson listing and display commands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qed/internal/lesson"
	"qed/internal/progress"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List and read the lessons",
	Long: `List the lessons or render one in the terminal.

Subcommands:
  list          - table of contents (default)
  show <slug>   - render a lesson`,
	RunE: runLessonsList,
}

var lessonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the table of contents",
	RunE:  runLessonsList,
}

var lessonsShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Render a lesson",
	Args:  cobra.ExactArgs(1),
	RunE:  runLessonsShow,
}

func init() {
	lessonsCmd.AddCommand(lessonsListCmd)
	lessonsCmd.AddCommand(lessonsShowCmd)
}

func runLessonsList(cmd *cobra.Command, args []string) error {
	cat, err := lesson.Load()
	if err != nil {
		return err
	}
	r := newRenderer()

	// Reading marks from the progress store, best effort: a broken store
	// must not block the content.
	var read map[string]progress.LessonRead
	if store := openProgress(); store != nil {
		read, _ = store.LessonReads()
		store.Close()
	}

	fmt.Println(r.Styles.Title.Render("Lessons"))
	for i, l := range cat.List() {
		mark := " "
		if _, ok := read[l.Slug]; ok {
			mark = r.Styles.Good.Render("*")
		}
		fmt.Printf(" %s %d. %s %s\n    %s\n", mark, i+1,
			r.Styles.Section.Render(l.Title),
			r.Styles.Muted.Render("("+l.Slug+")"),
			r.Styles.Muted.Render(l.Summary))
	}
	fmt.Println()
	fmt.Println(r.Styles.Muted.Render("  * = already read    qed lessons show <slug>"))
	return nil
}

func runLessonsShow(cmd *cobra.Command, args []string) error {
	cat, err := lesson.Load()
	if err != nil {
		return err
	}
	l, ok := cat.Get(args[0])
	if !ok {
		return fmt.Errorf("no lesson %q; run `qed lessons` for the table of contents", args[0])
	}

	fmt.Print(newRenderer().Markdown(l.Body))

	if store := openProgress(); store != nil {
		defer store.Close()
		if err := store.MarkLessonRead(l.Slug); err != nil {
			logger.Warn("marking lesson read", zap.String("slug", l.Slug), zap.Error(err))
		}
	}
	return nil
}

// Study progress commands.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"qed/internal/lesson"
	"qed/internal/progress"
)

var progressReset bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show reading progress and recent factoring runs",
	RunE:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&progressReset, "reset", false, "clear all recorded progress")
}

func runProgress(cmd *cobra.Command, args []string) error {
	store, err := progress.Open(workspace)
	if err != nil {
		return err
	}
	defer store.Close()

	if progressReset {
		if err := store.Reset(); err != nil {
			return err
		}
		fmt.Println("Progress cleared.")
		return nil
	}

	cat, err := lesson.Load()
	if err != nil {
		return err
	}
	reads, err := store.LessonReads()
	if err != nil {
		return err
	}

	r := newRenderer()
	fmt.Println(r.Styles.Title.Render(fmt.Sprintf("Lessons read: %d/%d", len(reads), cat.Len())))
	for _, l := range cat.List() {
		if rec, ok := reads[l.Slug]; ok {
			fmt.Printf("  %s %-22s read %d time(s), last %s\n",
				r.Styles.Good.Render("*"), l.Slug, rec.Count, rec.LastRead.Local().Format("2006-01-02 15:04"))
		} else {
			fmt.Printf("    %-22s %s\n", l.Slug, r.Styles.Muted.Render("unread"))
		}
	}

	runs, err := store.RecentRuns(5)
	if err != nil {
		return err
	}
	if len(runs) > 0 {
		fmt.Println()
		fmt.Println(r.Styles.Title.Render("Recent factoring runs"))
		for _, run := range runs {
			detail := "classical shortcut"
			if run.Base != 0 {
				detail = fmt.Sprintf("base %d, order %d, %d attempt(s)", run.Base, run.Order, run.Attempts)
			}
			fmt.Printf("  %d = %d x %d  (%s, %s)\n",
				run.N, run.Factors[0], run.Factors[1], detail,
				run.Duration.Round(time.Microsecond))
		}
	}
	return nil
}

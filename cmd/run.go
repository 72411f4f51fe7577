package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/cosmath/internal/app"
	"github.com/abhisek/cosmath/internal/screens/game"
)

// runApp opens the stores, builds dependencies, and launches the TUI. A
// non-empty lessonID opens that lesson straight away.
func runApp(cmd *cobra.Command, lessonID string) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := cmd.Context()
	typed, _ := cmd.Flags().GetBool("type-answers")
	if lessonID != "" {
		if _, err := d.service.Catalog().Get(lessonID); err != nil {
			return fmt.Errorf("lesson %q: %w", lessonID, err)
		}
		l, err := d.service.Learner(ctx, d.learnerID, d.learnerID)
		if err != nil {
			return fmt.Errorf("load learner: %w", err)
		}
		if !d.service.Catalog().IsPlayable(lessonID, l.Completed()) {
			fmt.Fprintf(os.Stderr, "Lesson %s is still locked. Finish its prerequisites first.\n", lessonID)
			lessonID = ""
		}
	}

	return app.Run(app.Options{
		Game: game.Deps{
			Service:      d.service,
			LearnerID:    d.learnerID,
			Tutor:        d.openTutor(ctx),
			TypedAnswers: typed,
		},
		DisplayName:  d.learnerID,
		History:      d.history,
		ResumeLesson: lessonID,
	})
}

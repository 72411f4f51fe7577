package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [lessonID]",
	Short: "Start a lesson, or resume the one you left",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runApp(cmd, args[0])
		}

		lessonID, err := activeLesson(cmd)
		if err != nil {
			return err
		}
		if lessonID != "" {
			fmt.Printf("Resuming %s...\n", lessonID)
		}
		return runApp(cmd, lessonID)
	},
}

// activeLesson returns the lesson the learner left unfinished, if any.
func activeLesson(cmd *cobra.Command) (string, error) {
	d, err := openDeps(cmd)
	if err != nil {
		return "", err
	}
	defer d.Close()

	e, ok, err := d.activity.Active(cmd.Context(), d.learnerID)
	if err != nil {
		d.logger.Warn("read active lesson", "err", err)
		return "", nil
	}
	if !ok {
		return "", nil
	}
	return e.LessonID, nil
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List lessons with their lock state and best score",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		l, err := d.service.Learner(cmd.Context(), d.learnerID, d.learnerID)
		if err != nil {
			return fmt.Errorf("load learner: %w", err)
		}
		catalog := d.service.Catalog()
		completed := l.Completed()

		fmt.Printf("%-8s  %-32s  %-12s  %-10s  %5s  %4s\n",
			"ID", "Lesson", "Difficulty", "State", "Best", "XP")
		fmt.Println(strings.Repeat("─", 82))
		for _, topic := range catalog.Topics() {
			fmt.Printf("%s %s\n", topic.Icon(), topic.DisplayName())
			for _, lesson := range catalog.ByTopic(topic) {
				state := catalog.State(lesson.ID, completed)
				best := "-"
				if rec, ok := l.CompletedLessons[lesson.ID]; ok {
					best = fmt.Sprintf("%d", rec.BestScore)
				}
				fmt.Printf("%-8s  %-32s  %-12s  %-10s  %5s  %4d\n",
					lesson.ID, truncate(lesson.Title, 32), lesson.Difficulty, state.Label(), best, lesson.XPReward)
			}
		}
		return nil
	},
}

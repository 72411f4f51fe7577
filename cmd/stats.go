package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cosmath/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show level, XP, streak and per-topic progress",
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
		s := progress.Summarize(l, d.service.Catalog(), d.service.Achievements())

		fmt.Printf("Learner:       %s\n", l.DisplayName)
		fmt.Printf("Level:         %d (%d XP, %d to next level)\n", s.Level, s.XP, s.XPToNextLevel)
		fmt.Printf("Streak:        %d day(s), best %d\n", s.Streak, s.HighestStreak)
		fmt.Printf("Lessons:       %d/%d (%d%%)\n", s.LessonsCompleted, s.LessonsTotal, s.OverallPercent)
		fmt.Printf("Problems:      %d solved\n", s.ProblemsSolved)
		fmt.Printf("Time:          %s\n", formatDuration(s.TimeSpentSeconds))
		fmt.Printf("Achievements:  %d/%d\n", s.AchievementsUnlocked, s.AchievementsTotal)

		fmt.Println()
		fmt.Printf("%-20s  %9s  %9s  %6s\n", "Topic", "Lessons", "Avg", "XP")
		fmt.Println(strings.Repeat("─", 52))
		for _, t := range s.Topics {
			avg := "-"
			if t.Completed > 0 {
				avg = fmt.Sprintf("%.0f", t.AverageScore)
			}
			fmt.Printf("%-20s  %9s  %9s  %6d\n",
				t.Topic.Icon()+" "+t.Topic.DisplayName(),
				fmt.Sprintf("%d/%d", t.Completed, t.Total), avg, t.XP)
		}
		return nil
	},
}

func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm %02ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%dh %02dm", seconds/3600, seconds%3600/60)
}

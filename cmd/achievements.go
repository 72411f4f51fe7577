package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List unlocked and locked achievements",
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

		var unlocked, locked []string
		for _, def := range d.service.Achievements().All() {
			if u, ok := l.Achievements[def.ID]; ok && u.Unlocked {
				unlocked = append(unlocked, fmt.Sprintf("  %s %-24s  +%d XP  %s",
					def.Icon, def.Name, def.XPReward, u.UnlockedAt.Local().Format("2006-01-02")))
				continue
			}
			locked = append(locked, fmt.Sprintf("  🔒 %-24s  %s", def.Name, def.Description))
		}

		fmt.Printf("Unlocked (%d)\n", len(unlocked))
		for _, line := range unlocked {
			fmt.Println(line)
		}
		fmt.Printf("\nLocked (%d)\n", len(locked))
		for _, line := range locked {
			fmt.Println(line)
		}
		return nil
	},
}

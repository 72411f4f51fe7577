package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/cosmath/internal/config"
	"github.com/abhisek/cosmath/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "cosmath",
	Short: "Space-themed math lessons in your terminal",
	Long: "Cosmath is a terminal math game: work through algebra, geometry and calculus\n" +
		"lessons, earn XP, keep your streak alive and unlock achievements.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides COSMATH_DB env var)")
	flags.String("config", config.DefaultPath(), "Path to the YAML config file")
	flags.String("learner", "", "Learner profile to use (defaults to your login name)")
	flags.String("curriculum", "", "Load lessons from a JSON file instead of the built-in set")
	flags.Bool("type-answers", false, "Type answers instead of picking from choices")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file or COSMATH_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}

// resolveLearner returns --learner, then $USER, then a fixed local profile.
func resolveLearner(cmd *cobra.Command) string {
	if id, _ := cmd.Flags().GetString("learner"); id != "" {
		return id
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "cadet"
}

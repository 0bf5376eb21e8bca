package cmd

import (
	"github.com/lingvo-app/lingvo/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lingvo",
	Short: "Spaced-repetition vocabulary trainer",
	Long:  "Lingvo — terminal vocabulary trainer that moves words through six mastery levels with spaced repetition.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGVO_DB env var)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LINGVO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

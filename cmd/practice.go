package cmd

import (
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice [list]",
	Short: "Start a practice session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return runPractice(cmd, name)
	},
}

func init() {
	practiceCmd.Flags().Bool("usage-examples", true, "Practice usage-example levels (target LEVEL_5 instead of LEVEL_3)")
	practiceCmd.Flags().Int("focus-size", 0, "Max words in the active focus pool (default 30)")
}

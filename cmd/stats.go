package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lingvo-app/lingvo/internal/level"
	"github.com/lingvo-app/lingvo/internal/quiz"
)

var statsCmd = &cobra.Command{
	Use:   "stats [list]",
	Short: "Show learning statistics for a word list",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		info, err := resolveList(ctx, st.ListRepo(), name)
		if err != nil {
			return err
		}
		catalog, err := st.ListRepo().Load(ctx, info.ID)
		if err != nil {
			return err
		}
		stored, err := st.ProgressRepo().LoadForList(ctx, info.ID)
		if err != nil {
			return err
		}

		session := quiz.NewManager(catalog.Words, stored, quiz.DefaultOptions(), nil)
		stats := session.Statistics()

		fmt.Printf("%s — %d words, %d%% complete\n\n", catalog.Name, stats.TotalWords, stats.CompletionPercentage)
		labels := map[level.Level]string{
			level.Level0: "not seen yet",
			level.Level1: "learning",
			level.Level2: "reverse practice",
			level.Level3: "usage practice",
			level.Level4: "reverse usage",
			level.Level5: "mastered",
		}
		for _, lvl := range level.All {
			fmt.Printf("  %-8s %4d  %s\n", lvl, stats.LevelCounts[lvl], labels[lvl])
		}
		return nil
	},
}

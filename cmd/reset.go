package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <list>",
	Short: "Reset learning progress for a word list",
	Args:  cobra.ExactArgs(1),
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

		id, err := st.ListRepo().FindByName(ctx, args[0])
		if err != nil {
			return err
		}

		if drop, _ := cmd.Flags().GetBool("delete"); drop {
			if err := st.ListRepo().Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted %q and its progress\n", args[0])
			return nil
		}

		if err := st.ProgressRepo().Reset(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Progress for %q reset; the words are kept\n", args[0])
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("delete", false, "Delete the word list itself, not just its progress")
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Show imported word lists",
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

		infos, err := st.ListRepo().Lists(ctx)
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("No word lists yet. Run `lingvo import` to add one.")
			return nil
		}
		for _, info := range infos {
			fmt.Printf("%-24s %4d words  imported %s\n",
				info.Name, info.WordCount, info.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

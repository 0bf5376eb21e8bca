package cmd

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/lingvo-app/lingvo/internal/app"
	"github.com/lingvo-app/lingvo/internal/quiz"
	"github.com/lingvo-app/lingvo/internal/store"
)

// openStore resolves the database path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// resolveList maps a list name to its id. With an empty name it falls
// back to the most recently imported list; with no lists at all it
// points the user at the import command.
func resolveList(ctx context.Context, repo store.ListRepo, name string) (store.ListInfo, error) {
	if name != "" {
		id, err := repo.FindByName(ctx, name)
		if err != nil {
			return store.ListInfo{}, err
		}
		return store.ListInfo{ID: id, Name: name}, nil
	}

	infos, err := repo.Lists(ctx)
	if err != nil {
		return store.ListInfo{}, err
	}
	if len(infos) == 0 {
		return store.ListInfo{}, fmt.Errorf("no word lists yet; run `lingvo import` first")
	}
	return infos[0], nil
}

// runPractice opens the store, loads the list and its progress, and
// launches the TUI.
func runPractice(cmd *cobra.Command, listName string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	lists := st.ListRepo()
	progress := st.ProgressRepo()

	info, err := resolveList(ctx, lists, listName)
	if err != nil {
		return err
	}
	catalog, err := lists.Load(ctx, info.ID)
	if err != nil {
		return fmt.Errorf("load list: %w", err)
	}
	stored, err := progress.LoadForList(ctx, info.ID)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	// A list that has never been practiced starts in a random order, so
	// two learners of the same list do not meet the words identically.
	if len(stored) == 0 {
		rand.Shuffle(len(catalog.Words), func(i, j int) {
			catalog.Words[i], catalog.Words[j] = catalog.Words[j], catalog.Words[i]
		})
	}

	opts := quiz.DefaultOptions()
	if cmd.Flags().Lookup("usage-examples") != nil {
		opts.EnableUsageExamples, _ = cmd.Flags().GetBool("usage-examples")
	}
	if cmd.Flags().Lookup("focus-size") != nil {
		if n, _ := cmd.Flags().GetInt("focus-size"); n > 0 {
			opts.MaxFocusWords = n
		}
	}

	session := quiz.NewManager(catalog.Words, stored, opts, nil)

	save := func(snap quiz.Snapshot) error {
		return progress.SaveBatch(ctx, info.ID, snap.Progress)
	}
	return app.Run(session, catalog.Name, save)
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lingvo-app/lingvo/internal/vocab"
)

// listRepo implements ListRepo on the words and word_lists tables.
type listRepo struct {
	db *sqlx.DB
}

type wordRow struct {
	ID                 string `db:"id"`
	ListID             string `db:"list_id"`
	Position           int    `db:"position"`
	SourceText         string `db:"source_text"`
	SourceLanguage     string `db:"source_language"`
	SourceUsageExample string `db:"source_usage_example"`
	TargetText         string `db:"target_text"`
	TargetLanguage     string `db:"target_language"`
	TargetUsageExample string `db:"target_usage_example"`
}

func (r *listRepo) Import(ctx context.Context, catalog vocab.Catalog) (string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	// Re-importing a name replaces the previous list; cascades clear its
	// words and progress.
	if _, err := tx.ExecContext(ctx, `DELETE FROM word_lists WHERE name = ?`, catalog.Name); err != nil {
		return "", fmt.Errorf("replace list %q: %w", catalog.Name, err)
	}

	listID := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO word_lists (id, name) VALUES (?, ?)`, listID, catalog.Name); err != nil {
		return "", fmt.Errorf("insert list %q: %w", catalog.Name, err)
	}

	const insertWord = `INSERT INTO words
		(id, list_id, position, source_text, source_language, source_usage_example,
		 target_text, target_language, target_usage_example)
		VALUES (:id, :list_id, :position, :source_text, :source_language, :source_usage_example,
		 :target_text, :target_language, :target_usage_example)`
	for i, w := range catalog.Words {
		row := wordRow{
			ID:                 w.ID,
			ListID:             listID,
			Position:           i,
			SourceText:         w.SourceText,
			SourceLanguage:     w.SourceLanguage,
			SourceUsageExample: w.SourceUsageExample,
			TargetText:         w.TargetText,
			TargetLanguage:     w.TargetLanguage,
			TargetUsageExample: w.TargetUsageExample,
		}
		if _, err := tx.NamedExecContext(ctx, insertWord, row); err != nil {
			return "", fmt.Errorf("insert word %q: %w", w.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit import: %w", err)
	}
	return listID, nil
}

func (r *listRepo) Lists(ctx context.Context) ([]ListInfo, error) {
	var infos []ListInfo
	err := r.db.SelectContext(ctx, &infos, `
		SELECT l.id, l.name, l.created_at, COUNT(w.id) AS word_count
		FROM word_lists l
		LEFT JOIN words w ON w.list_id = l.id
		GROUP BY l.id
		ORDER BY l.created_at DESC, l.name`)
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}
	return infos, nil
}

func (r *listRepo) Load(ctx context.Context, id string) (vocab.Catalog, error) {
	var name string
	err := r.db.GetContext(ctx, &name, `SELECT name FROM word_lists WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return vocab.Catalog{}, fmt.Errorf("load list %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return vocab.Catalog{}, fmt.Errorf("load list %q: %w", id, err)
	}

	var rows []wordRow
	err = r.db.SelectContext(ctx, &rows,
		`SELECT * FROM words WHERE list_id = ? ORDER BY position`, id)
	if err != nil {
		return vocab.Catalog{}, fmt.Errorf("load words for %q: %w", id, err)
	}

	catalog := vocab.Catalog{Name: name, Words: make([]vocab.Item, len(rows))}
	for i, row := range rows {
		catalog.Words[i] = vocab.Item{
			ID:                 row.ID,
			SourceText:         row.SourceText,
			SourceLanguage:     row.SourceLanguage,
			SourceUsageExample: row.SourceUsageExample,
			TargetText:         row.TargetText,
			TargetLanguage:     row.TargetLanguage,
			TargetUsageExample: row.TargetUsageExample,
		}
	}
	return catalog, nil
}

func (r *listRepo) FindByName(ctx context.Context, name string) (string, error) {
	var id string
	err := r.db.GetContext(ctx, &id, `SELECT id FROM word_lists WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("list %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("find list %q: %w", name, err)
	}
	return id, nil
}

func (r *listRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM word_lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete list %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete list %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete list %q: %w", id, ErrNotFound)
	}
	return nil
}

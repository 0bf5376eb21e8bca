package store

import (
	"context"
	"errors"
	"time"

	"github.com/lingvo-app/lingvo/internal/vocab"
)

// ErrNotFound reports a word list that doesn't exist.
var ErrNotFound = errors.New("word list not found")

// ListInfo summarizes a stored word list.
type ListInfo struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	WordCount int       `db:"word_count"`
	CreatedAt time.Time `db:"created_at"`
}

// ListRepo manages imported word lists and their items.
type ListRepo interface {
	// Import stores a catalog as a new word list and returns its id.
	// Importing a name that already exists replaces the old list and
	// its progress.
	Import(ctx context.Context, catalog vocab.Catalog) (string, error)

	// Lists returns summaries of all stored lists, newest first.
	Lists(ctx context.Context) ([]ListInfo, error)

	// Load returns a list's catalog in import order.
	Load(ctx context.Context, id string) (vocab.Catalog, error)

	// FindByName resolves a list name to its id.
	FindByName(ctx context.Context, name string) (string, error)

	// Delete removes a list, its words and their progress.
	Delete(ctx context.Context, id string) error
}

// ProgressRepo manages per-word learning progress.
type ProgressRepo interface {
	// LoadForList returns the stored progress for every word in a list.
	// Words never practiced have no entry.
	LoadForList(ctx context.Context, listID string) ([]vocab.Progress, error)

	// SaveBatch upserts progress records for a list in one transaction.
	SaveBatch(ctx context.Context, listID string, records []vocab.Progress) error

	// Reset deletes all progress for a list.
	Reset(ctx context.Context, listID string) error
}

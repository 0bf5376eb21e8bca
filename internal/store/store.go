package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db *sqlx.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sqlx.DB for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListRepo returns a word-list repository backed by this store.
func (s *Store) ListRepo() ListRepo {
	return &listRepo{db: s.db}
}

// ProgressRepo returns a progress repository backed by this store.
func (s *Store) ProgressRepo() ProgressRepo {
	return &progressRepo{db: s.db}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrate creates the schema if it doesn't exist.
func migrate(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS word_lists (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS words (
			id                   TEXT PRIMARY KEY,
			list_id              TEXT NOT NULL REFERENCES word_lists(id) ON DELETE CASCADE,
			position             INTEGER NOT NULL,
			source_text          TEXT NOT NULL,
			source_language      TEXT NOT NULL,
			source_usage_example TEXT NOT NULL DEFAULT '',
			target_text          TEXT NOT NULL,
			target_language      TEXT NOT NULL,
			target_usage_example TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS words_list_idx ON words(list_id, position)`,
		`CREATE TABLE IF NOT EXISTS progress (
			word_id             TEXT PRIMARY KEY REFERENCES words(id) ON DELETE CASCADE,
			list_id             TEXT NOT NULL REFERENCES word_lists(id) ON DELETE CASCADE,
			level               INTEGER NOT NULL DEFAULT 0,
			queue_position      INTEGER NOT NULL DEFAULT 0,
			consecutive_correct INTEGER NOT NULL DEFAULT 0,
			recent_history      TEXT NOT NULL DEFAULT '[]',
			last_asked_at       TIMESTAMP,
			correct_count       INTEGER NOT NULL DEFAULT 0,
			incorrect_count     INTEGER NOT NULL DEFAULT 0,
			updated_at          TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS progress_list_idx ON progress(list_id)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LINGVO_DB environment variable
// 2. $XDG_DATA_HOME/lingvo/lingvo.db
// 3. ~/.local/share/lingvo/lingvo.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LINGVO_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lingvo", "lingvo.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lingvo-app/lingvo/internal/level"
	"github.com/lingvo-app/lingvo/internal/vocab"
)

// progressRepo implements ProgressRepo on the progress table.
type progressRepo struct {
	db *sqlx.DB
}

type progressRow struct {
	WordID             string     `db:"word_id"`
	ListID             string     `db:"list_id"`
	Level              int        `db:"level"`
	QueuePosition      int        `db:"queue_position"`
	ConsecutiveCorrect int        `db:"consecutive_correct"`
	RecentHistory      string     `db:"recent_history"`
	LastAskedAt        *time.Time `db:"last_asked_at"`
	CorrectCount       int        `db:"correct_count"`
	IncorrectCount     int        `db:"incorrect_count"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

func (r *progressRepo) LoadForList(ctx context.Context, listID string) ([]vocab.Progress, error) {
	var rows []progressRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM progress WHERE list_id = ?`, listID)
	if err != nil {
		return nil, fmt.Errorf("load progress for %q: %w", listID, err)
	}

	records := make([]vocab.Progress, 0, len(rows))
	for _, row := range rows {
		p, err := rowToProgress(row)
		if err != nil {
			return nil, fmt.Errorf("decode progress for %q: %w", row.WordID, err)
		}
		records = append(records, p)
	}
	return records, nil
}

func (r *progressRepo) SaveBatch(ctx context.Context, listID string, records []vocab.Progress) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO progress
		(word_id, list_id, level, queue_position, consecutive_correct,
		 recent_history, last_asked_at, correct_count, incorrect_count, updated_at)
		VALUES (:word_id, :list_id, :level, :queue_position, :consecutive_correct,
		 :recent_history, :last_asked_at, :correct_count, :incorrect_count, :updated_at)
		ON CONFLICT(word_id) DO UPDATE SET
		 level = excluded.level,
		 queue_position = excluded.queue_position,
		 consecutive_correct = excluded.consecutive_correct,
		 recent_history = excluded.recent_history,
		 last_asked_at = excluded.last_asked_at,
		 correct_count = excluded.correct_count,
		 incorrect_count = excluded.incorrect_count,
		 updated_at = excluded.updated_at`

	now := time.Now().UTC()
	for _, p := range records {
		row, err := progressToRow(p, listID, now)
		if err != nil {
			return fmt.Errorf("encode progress for %q: %w", p.ItemID, err)
		}
		if _, err := tx.NamedExecContext(ctx, upsert, row); err != nil {
			return fmt.Errorf("save progress for %q: %w", p.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (r *progressRepo) Reset(ctx context.Context, listID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM progress WHERE list_id = ?`, listID); err != nil {
		return fmt.Errorf("reset progress for %q: %w", listID, err)
	}
	return nil
}

func progressToRow(p vocab.Progress, listID string, now time.Time) (progressRow, error) {
	history := p.RecentHistory
	if history == nil {
		history = []bool{}
	}
	b, err := json.Marshal(history)
	if err != nil {
		return progressRow{}, err
	}
	return progressRow{
		WordID:             p.ItemID,
		ListID:             listID,
		Level:              int(p.Level),
		QueuePosition:      p.QueuePosition,
		ConsecutiveCorrect: p.ConsecutiveCorrect,
		RecentHistory:      string(b),
		LastAskedAt:        p.LastAskedAt,
		CorrectCount:       p.CorrectCount,
		IncorrectCount:     p.IncorrectCount,
		UpdatedAt:          now,
	}, nil
}

func rowToProgress(row progressRow) (vocab.Progress, error) {
	var history []bool
	if err := json.Unmarshal([]byte(row.RecentHistory), &history); err != nil {
		return vocab.Progress{}, err
	}
	if history == nil {
		history = []bool{}
	}
	return vocab.Progress{
		ItemID:             row.WordID,
		Level:              level.Level(row.Level),
		QueuePosition:      row.QueuePosition,
		ConsecutiveCorrect: row.ConsecutiveCorrect,
		RecentHistory:      history,
		LastAskedAt:        row.LastAskedAt,
		CorrectCount:       row.CorrectCount,
		IncorrectCount:     row.IncorrectCount,
	}, nil
}

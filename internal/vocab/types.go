package vocab

import (
	"time"

	"github.com/lingvo-app/lingvo/internal/level"
)

// Item is an immutable vocabulary pair. Usage examples are optional and
// only consumed by the usage-question levels.
type Item struct {
	ID                 string `json:"id"`
	SourceText         string `json:"sourceText"`
	SourceLanguage     string `json:"sourceLanguage"`
	SourceUsageExample string `json:"sourceUsageExample,omitempty"`
	TargetText         string `json:"targetText"`
	TargetLanguage     string `json:"targetLanguage"`
	TargetUsageExample string `json:"targetUsageExample,omitempty"`
}

// Progress is the per-item learning record. It is replaced wholesale on
// every write; nothing mutates a stored Progress in place.
type Progress struct {
	ItemID             string
	Level              level.Level
	QueuePosition      int
	ConsecutiveCorrect int
	// RecentHistory holds the latest answer outcomes, oldest first,
	// bounded by the configured history window.
	RecentHistory  []bool
	LastAskedAt    *time.Time
	CorrectCount   int
	IncorrectCount int
}

// Clone returns a deep copy, so callers can hand out Progress values
// without sharing the history slice.
func (p Progress) Clone() Progress {
	c := p
	if p.RecentHistory != nil {
		c.RecentHistory = append([]bool(nil), p.RecentHistory...)
	}
	if p.LastAskedAt != nil {
		t := *p.LastAskedAt
		c.LastAskedAt = &t
	}
	return c
}

// NewProgress returns the synthesized record for an item never practiced:
// unseen, queued at its catalog position.
func NewProgress(itemID string, catalogIndex int) Progress {
	return Progress{
		ItemID:        itemID,
		Level:         level.Level0,
		QueuePosition: catalogIndex,
		RecentHistory: []bool{},
	}
}

// Package state owns the session's item catalog and per-item progress
// records, and derives aggregate statistics from them.
package state

import (
	"math"

	"github.com/lingvo-app/lingvo/internal/level"
	"github.com/lingvo-app/lingvo/internal/vocab"
)

// Statistics summarizes session progress. Complete means every item has
// reached the configured target level; an empty catalog is never complete.
type Statistics struct {
	TotalWords           int
	LevelCounts          map[level.Level]int
	CompletionPercentage int
	IsComplete           bool
}

// Manager keeps items and progress by id. Progress entries are replaced
// wholesale on update so cached aggregates stay consistent.
type Manager struct {
	items    map[string]vocab.Item
	progress map[string]vocab.Progress
	order    []string

	// One memoized Statistics per target selector, dropped on any write.
	statsCache map[bool]*Statistics
}

// NewManager builds the state from the catalog and its progress records.
func NewManager(items []vocab.Item, progress []vocab.Progress) *Manager {
	m := &Manager{
		items:      make(map[string]vocab.Item, len(items)),
		progress:   make(map[string]vocab.Progress, len(progress)),
		order:      make([]string, 0, len(items)),
		statsCache: make(map[bool]*Statistics),
	}
	for _, item := range items {
		m.items[item.ID] = item
		m.order = append(m.order, item.ID)
	}
	for _, p := range progress {
		m.progress[p.ItemID] = p
	}
	return m
}

// Item returns the catalog item for id.
func (m *Manager) Item(id string) (vocab.Item, bool) {
	item, ok := m.items[id]
	return item, ok
}

// Progress returns a copy of the progress record for id; mutating the
// returned value (including its history) cannot corrupt internal state.
func (m *Manager) Progress(id string) (vocab.Progress, bool) {
	p, ok := m.progress[id]
	if !ok {
		return vocab.Progress{}, false
	}
	return p.Clone(), true
}

// AllItems returns the catalog in its original order.
func (m *Manager) AllItems() []vocab.Item {
	out := make([]vocab.Item, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out
}

// AllProgress returns copies of every progress record, in catalog order.
func (m *Manager) AllProgress() []vocab.Progress {
	out := make([]vocab.Progress, 0, len(m.order))
	for _, id := range m.order {
		if p, ok := m.progress[id]; ok {
			out = append(out, p.Clone())
		}
	}
	return out
}

// UpdateProgress replaces the stored record for id with updated, and
// invalidates the statistics memo. Unknown ids are ignored; the
// orchestrator only writes ids it has read.
func (m *Manager) UpdateProgress(updated vocab.Progress) {
	if _, ok := m.progress[updated.ItemID]; !ok {
		return
	}
	m.progress[updated.ItemID] = updated.Clone()
	m.statsCache = make(map[bool]*Statistics)
}

// TargetLevel is the completion target: Level5 when usage-example mastery
// is required, Level3 otherwise.
func TargetLevel(withUsageExamples bool) level.Level {
	if withUsageExamples {
		return level.Level5
	}
	return level.Level3
}

// Statistics computes (or returns the memoized) aggregate statistics for
// the given completion target selector.
func (m *Manager) Statistics(withUsageExamples bool) Statistics {
	if cached, ok := m.statsCache[withUsageExamples]; ok {
		return cloneStats(*cached)
	}

	counts := make(map[level.Level]int, len(level.All))
	for _, l := range level.All {
		counts[l] = 0
	}

	target := TargetLevel(withUsageExamples)
	total, completed := 0, 0
	for _, p := range m.progress {
		counts[p.Level]++
		total++
		if p.Level == target {
			completed++
		}
	}

	stats := Statistics{
		TotalWords:  total,
		LevelCounts: counts,
		IsComplete:  total > 0 && completed == total,
	}
	if total > 0 {
		stats.CompletionPercentage = int(math.Round(float64(completed) / float64(total) * 100))
	}

	memo := cloneStats(stats)
	m.statsCache[withUsageExamples] = &memo
	return stats
}

// IsComplete reports whether every item has reached the target level.
func (m *Manager) IsComplete(withUsageExamples bool) bool {
	return m.Statistics(withUsageExamples).IsComplete
}

func cloneStats(s Statistics) Statistics {
	counts := make(map[level.Level]int, len(s.LevelCounts))
	for l, n := range s.LevelCounts {
		counts[l] = n
	}
	s.LevelCounts = counts
	return s
}

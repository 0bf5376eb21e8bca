package quiz

import (
	"github.com/lingvo-app/lingvo/internal/level"
	"github.com/lingvo-app/lingvo/internal/queue"
	"github.com/lingvo-app/lingvo/internal/vocab"
)

// Engine derives question parameters from levels and decides availability,
// candidate selection and mastery progression over the queues.
type Engine struct {
	queues *queue.Manager
}

// NewEngine wraps a queue manager.
func NewEngine(queues *queue.Manager) *Engine {
	return &Engine{queues: queues}
}

// feederLevels maps each practice level to the queues that can feed it,
// in pick precedence order. Level1 drains its own queue before pulling
// unseen words; Level3 and Level4 share the learned-word review pool.
var feederLevels = map[level.Level][]level.Level{
	level.Level1: {level.Level1, level.Level0},
	level.Level2: {level.Level2},
	level.Level3: {level.Level3, level.Level4, level.Level5},
	level.Level4: {level.Level3, level.Level4, level.Level5},
}

// HasWordsForLevel reports whether a practice level has any work.
func (e *Engine) HasWordsForLevel(lvl level.Level) bool {
	for _, feeder := range feederLevels[lvl] {
		if e.queues.Len(feeder) > 0 {
			return true
		}
	}
	return false
}

// PickCandidate selects an item id for a practice level, draining feeder
// queues in precedence order. ok is false when no queue has work.
func (e *Engine) PickCandidate(lvl level.Level) (string, bool) {
	for _, feeder := range feederLevels[lvl] {
		if e.queues.Len(feeder) == 0 {
			continue
		}
		if id, ok := e.queues.Pick(feeder, queue.DefaultWindowSize); ok {
			return id, true
		}
	}
	return "", false
}

// LowestAvailableLevel scans the practice levels in order and returns the
// first with available work, defaulting to Level1 when nothing is left.
func (e *Engine) LowestAvailableLevel() level.Level {
	for _, lvl := range level.Practice {
		if e.HasWordsForLevel(lvl) {
			return lvl
		}
	}
	return level.Level1
}

// CheckProgression decides whether a progress record earns a promotion or
// demotion. The promotion check runs first; the two cannot trigger
// together given the streak reset on any miss, but the precedence is kept
// for safety. ok is false when the level stays put.
func (e *Engine) CheckProgression(p vocab.Progress, correctToLevelUp, mistakesToLevelDown, minHistory int) (level.Level, bool) {
	if p.ConsecutiveCorrect >= correctToLevelUp {
		return p.Level.Next()
	}

	mistakes := 0
	for _, outcome := range p.RecentHistory {
		if !outcome {
			mistakes++
		}
	}
	if mistakes >= mistakesToLevelDown && len(p.RecentHistory) >= minHistory {
		return p.Level.Previous()
	}

	return p.Level, false
}

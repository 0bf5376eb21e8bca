// Package quiz drives the practice session: it picks questions off the
// leveled queues, judges answers, and moves items through the mastery
// levels. One Manager owns one session; it is not safe for concurrent
// use and is meant to be owned by a single caller.
package quiz

import (
	"fmt"
	"time"

	"github.com/lingvo-app/lingvo/internal/level"
	"github.com/lingvo-app/lingvo/internal/match"
	"github.com/lingvo-app/lingvo/internal/queue"
	"github.com/lingvo-app/lingvo/internal/state"
	"github.com/lingvo-app/lingvo/internal/vocab"
)

// Manager orchestrates queues, level rules, state and answer matching.
type Manager struct {
	queues *queue.Manager
	engine *Engine
	state  *state.Manager
	opts   Options

	currentLevel level.Level
	askedAt      *time.Time

	now func() time.Time
}

// NewManager builds a session from a catalog and previously persisted
// progress. Items without a stored entry start unseen at their catalog
// index. Pass a nil rng for the default time-seeded source.
func NewManager(items []vocab.Item, stored []vocab.Progress, opts Options, rng queue.Rand) *Manager {
	opts = opts.withDefaults()

	storedByID := make(map[string]vocab.Progress, len(stored))
	for _, p := range stored {
		storedByID[p.ItemID] = p
	}
	progress := make([]vocab.Progress, len(items))
	for i, item := range items {
		if p, ok := storedByID[item.ID]; ok {
			progress[i] = p
		} else {
			progress[i] = vocab.NewProgress(item.ID, i)
		}
	}

	m := &Manager{
		queues:       queue.NewManager(items, progress, rng),
		state:        state.NewManager(items, progress),
		opts:         opts,
		currentLevel: level.Level1,
		now:          time.Now,
	}
	m.engine = NewEngine(m.queues)
	m.replenishFocusPool("")
	return m
}

// replenishFocusPool tops the Level1 queue up from Level0 and moves the
// promoted items' progress records along with them, so an id's stored
// level always names the queue it sits in.
func (m *Manager) replenishFocusPool(excludeID string) {
	promoted := m.queues.ReplenishFocusPool(m.opts.MaxFocusWords, excludeID)
	if len(promoted) == 0 {
		return
	}
	base := m.queues.Len(level.Level1) - len(promoted)
	for i, id := range promoted {
		p, ok := m.state.Progress(id)
		if !ok {
			continue
		}
		p.Level = level.Level1
		p.QueuePosition = base + i
		m.state.UpdateProgress(p)
	}
}

// NextQuestion returns the next prompt for the current level, switching
// to the lowest available practice level when the current one is empty.
// A nil Question inside the result means no work is available at all.
func (m *Manager) NextQuestion() QuestionResult {
	if !m.engine.HasWordsForLevel(m.currentLevel) {
		newLevel := m.engine.LowestAvailableLevel()
		adjusted := newLevel != m.currentLevel
		m.currentLevel = newLevel

		if !m.engine.HasWordsForLevel(m.currentLevel) {
			return QuestionResult{}
		}
		if adjusted {
			return QuestionResult{Question: m.generateQuestion(), LevelAdjusted: true, NewLevel: newLevel}
		}
	}
	return QuestionResult{Question: m.generateQuestion()}
}

func (m *Manager) generateQuestion() *Question {
	id, ok := m.engine.PickCandidate(m.currentLevel)
	if !ok {
		return nil
	}
	item, okItem := m.state.Item(id)
	progress, okProgress := m.state.Progress(id)
	if !okItem || !okProgress {
		return nil
	}

	asked := m.now()
	progress.LastAskedAt = &asked
	m.state.UpdateProgress(progress)
	m.askedAt = &asked

	direction := level.DirectionFor(m.currentLevel)
	questionType := level.QuestionTypeFor(m.currentLevel)

	q := &Question{
		ItemID:         item.ID,
		Level:          m.currentLevel,
		Direction:      direction,
		SourceLanguage: item.SourceLanguage,
		TargetLanguage: item.TargetLanguage,
		QuestionType:   questionType,
	}
	if direction == level.DirectionNormal {
		q.QuestionText = item.SourceText
	} else {
		q.QuestionText = item.TargetText
	}
	if questionType == level.TypeUsage {
		if direction == level.DirectionNormal {
			q.UsageExample = item.SourceUsageExample
		} else {
			q.UsageExample = item.TargetUsageExample
		}
	}
	return q
}

// SubmitAnswer judges userAnswer for the item, updates its history,
// streak and queue position, applies any level transition, and tops up
// the focus pool.
func (m *Manager) SubmitAnswer(itemID, userAnswer string) (*SubmissionResult, error) {
	item, okItem := m.state.Item(itemID)
	progress, okProgress := m.state.Progress(itemID)
	if !okItem || !okProgress {
		return nil, fmt.Errorf("submit answer for %q: %w", itemID, ErrNotFound)
	}

	direction := level.DirectionFor(m.currentLevel)
	expected := item.TargetText
	if direction == level.DirectionReverse {
		expected = item.SourceText
	}
	correct := match.Check(userAnswer, expected)

	var responseTime time.Duration
	hasResponseTime := false
	if m.askedAt != nil {
		responseTime = m.now().Sub(*m.askedAt)
		hasResponseTime = true
		m.askedAt = nil
	}

	oldLevel := progress.Level

	history := appendBounded(progress.RecentHistory, correct, m.opts.HistorySizeForDegradation)
	streak := 0
	if correct {
		streak = progress.ConsecutiveCorrect + 1
	}

	position := m.queues.UpdatePosition(itemID, oldLevel, correct, streak, FocusLoopSize, m.opts.QueuePositionIncrement)

	progress.RecentHistory = history
	progress.ConsecutiveCorrect = streak
	progress.QueuePosition = position
	if correct {
		progress.CorrectCount++
	} else {
		progress.IncorrectCount++
	}
	m.state.UpdateProgress(progress)

	if newLevel, changed := m.engine.CheckProgression(progress, m.opts.CorrectAnswersToLevelUp, m.opts.MistakesToLevelDown, minHistoryForDegradation); changed {
		newPosition := m.queues.MoveToLevel(itemID, oldLevel, newLevel)
		demoted := newLevel < oldLevel

		progress.Level = newLevel
		progress.QueuePosition = newPosition
		progress.ConsecutiveCorrect = 0
		if demoted {
			// A demoted item starts its recovery with a clean slate;
			// promotion keeps the history since the item stays in good
			// standing.
			progress.RecentHistory = []bool{}
		}
		m.state.UpdateProgress(progress)
	}

	final, _ := m.state.Progress(itemID)
	excludeID := ""
	if final.Level == level.Level0 {
		excludeID = itemID
	}
	m.replenishFocusPool(excludeID)

	result := &SubmissionResult{
		IsCorrect:           correct,
		CorrectAnswerText:   expected,
		SubmittedAnswerText: userAnswer,
		Item:                item,
		ResponseTime:        responseTime,
		HasResponseTime:     hasResponseTime,
	}
	if final.Level != oldLevel {
		result.LevelChange = &LevelChange{From: oldLevel, To: final.Level}
	}
	return result, nil
}

// RevealAnswer returns the expected answer without judging it and
// cancels the pending response timer.
func (m *Manager) RevealAnswer(itemID string) (*RevealResult, error) {
	item, ok := m.state.Item(itemID)
	if !ok {
		return nil, fmt.Errorf("reveal answer for %q: %w", itemID, ErrNotFound)
	}

	expected := item.TargetText
	if level.DirectionFor(m.currentLevel) == level.DirectionReverse {
		expected = item.SourceText
	}
	m.askedAt = nil

	return &RevealResult{CorrectAnswerText: expected, Item: item}, nil
}

// SetLevel switches the session to the requested practice level, or to
// the lowest available one when the request has no work.
func (m *Manager) SetLevel(lvl level.Level) (SetLevelResult, error) {
	if !lvl.IsPractice() {
		return SetLevelResult{}, fmt.Errorf("level %s is not a practice level", lvl)
	}

	if m.engine.HasWordsForLevel(lvl) {
		m.currentLevel = lvl
		return SetLevelResult{Requested: lvl, Actual: lvl, Switched: true}, nil
	}

	lowest := m.engine.LowestAvailableLevel()
	m.currentLevel = lowest
	return SetLevelResult{
		Requested: lvl,
		Actual:    lowest,
		Message:   fmt.Sprintf("%s has no available words. Switched to %s.", lvl, lowest),
	}, nil
}

// CurrentLevel returns the session's visible practice level.
func (m *Manager) CurrentLevel() level.Level {
	return m.currentLevel
}

// Item returns the catalog item for id.
func (m *Manager) Item(id string) (vocab.Item, bool) {
	return m.state.Item(id)
}

// ItemForDisplay renders both sides of a pair for user-facing feedback,
// collapsing the reference-answer grammar to its display form.
func (m *Manager) ItemForDisplay(id string) (source, target string, ok bool) {
	item, ok := m.state.Item(id)
	if !ok {
		return "", "", false
	}
	return match.FormatForDisplay(item.SourceText), match.FormatForDisplay(item.TargetText), true
}

// Statistics returns the aggregate progress for the configured target.
func (m *Manager) Statistics() state.Statistics {
	return m.state.Statistics(m.opts.EnableUsageExamples)
}

// IsComplete reports whether every item reached the completion target.
func (m *Manager) IsComplete() bool {
	return m.state.IsComplete(m.opts.EnableUsageExamples)
}

// Options returns the session's effective options.
func (m *Manager) Options() Options {
	return m.opts
}

// State exports the full session state for persistence and display.
func (m *Manager) State() Snapshot {
	return Snapshot{
		Items:        m.state.AllItems(),
		Progress:     m.state.AllProgress(),
		CurrentLevel: m.currentLevel,
		Queues:       m.queues.Snapshot(),
	}
}

// appendBounded appends outcome, evicting the oldest entries beyond the
// window capacity.
func appendBounded(history []bool, outcome bool, capacity int) []bool {
	history = append(append([]bool(nil), history...), outcome)
	if len(history) > capacity {
		history = history[len(history)-capacity:]
	}
	return history
}

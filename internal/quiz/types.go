package quiz

import (
	"errors"
	"time"

	"github.com/lingvo-app/lingvo/internal/level"
	"github.com/lingvo-app/lingvo/internal/vocab"
)

// ErrNotFound reports an id with no matching item or progress. Question
// ids come from generated questions, so hitting this is caller misuse.
var ErrNotFound = errors.New("not found")

// Question describes the next prompt to put in front of the user.
type Question struct {
	ItemID         string
	QuestionText   string
	Level          level.Level
	Direction      level.Direction
	SourceLanguage string
	TargetLanguage string
	QuestionType   level.QuestionType
	// UsageExample is set for usage questions when the item carries one.
	UsageExample string
}

// QuestionResult is the outcome of asking for the next question.
// A nil Question means nothing is available right now: every item is
// fully mastered or the pools are empty. That is a normal state, not an
// error.
type QuestionResult struct {
	Question *Question
	// LevelAdjusted is set when the session had to switch levels to find
	// work; NewLevel is where it landed.
	LevelAdjusted bool
	NewLevel      level.Level
}

// LevelChange records an item's promotion or demotion.
type LevelChange struct {
	From level.Level
	To   level.Level
}

// SubmissionResult is the verdict on one answer.
type SubmissionResult struct {
	IsCorrect           bool
	CorrectAnswerText   string
	SubmittedAnswerText string
	Item                vocab.Item
	LevelChange         *LevelChange
	ResponseTime        time.Duration
	HasResponseTime     bool
}

// RevealResult returns the expected answer without judging.
type RevealResult struct {
	CorrectAnswerText string
	Item              vocab.Item
}

// SetLevelResult reports where a level request actually landed.
type SetLevelResult struct {
	Requested level.Level
	Actual    level.Level
	// Switched is false when the requested level had no work and the
	// session substituted the lowest available one; Message then carries
	// a human-readable reason.
	Switched bool
	Message  string
}

// Snapshot is the full session state handed to persistence and display.
type Snapshot struct {
	Items        []vocab.Item
	Progress     []vocab.Progress
	CurrentLevel level.Level
	Queues       map[level.Level][]string
}

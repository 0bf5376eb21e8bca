package level

import "fmt"

// Level is one of six mastery ranks a vocabulary item occupies.
// The zero value is Level0 (unseen); Level5 means fully mastered in both
// directions including usage-example questions.
type Level int

const (
	Level0 Level = iota
	Level1
	Level2
	Level3
	Level4
	Level5
)

// All lists every level in ascending mastery order.
var All = []Level{Level0, Level1, Level2, Level3, Level4, Level5}

// Practice lists the levels a caller may request explicitly. Level0 and
// Level5 are scheduler-internal states (unseen / fully mastered).
var Practice = []Level{Level1, Level2, Level3, Level4}

// String returns the wire form, e.g. "LEVEL_3".
func (l Level) String() string {
	return fmt.Sprintf("LEVEL_%d", int(l))
}

// Valid reports whether l is within the six-rank order.
func (l Level) Valid() bool {
	return l >= Level0 && l <= Level5
}

// IsPractice reports whether l can be requested as a practice level.
func (l Level) IsPractice() bool {
	return l >= Level1 && l <= Level4
}

// Next returns the level above l. ok is false at the ceiling.
func (l Level) Next() (next Level, ok bool) {
	if l >= Level5 {
		return l, false
	}
	return l + 1, true
}

// Previous returns the level below l. ok is false at the floor.
func (l Level) Previous() (prev Level, ok bool) {
	if l <= Level0 {
		return l, false
	}
	return l - 1, true
}

// Parse converts the wire form ("LEVEL_0".."LEVEL_5") back to a Level.
func Parse(s string) (Level, error) {
	for _, l := range All {
		if l.String() == s {
			return l, nil
		}
	}
	return Level0, fmt.Errorf("unknown level %q", s)
}

// Direction says which side of a pair is the prompt.
type Direction string

const (
	// DirectionNormal prompts with the source text and expects the target.
	DirectionNormal Direction = "normal"
	// DirectionReverse prompts with the target text and expects the source.
	DirectionReverse Direction = "reverse"
)

// QuestionType distinguishes bare-translation prompts from usage-example
// prompts asked at the advanced levels.
type QuestionType string

const (
	TypeTranslation QuestionType = "translation"
	TypeUsage       QuestionType = "usage"
)

// DirectionFor returns the question direction for a practice level.
// Levels 1 and 3 ask source to target; levels 2 and 4 ask the reverse,
// which encodes the bidirectional mastery requirement.
func DirectionFor(l Level) Direction {
	if l == Level1 || l == Level3 {
		return DirectionNormal
	}
	return DirectionReverse
}

// QuestionTypeFor returns the question type for a practice level.
func QuestionTypeFor(l Level) QuestionType {
	if l == Level3 || l == Level4 {
		return TypeUsage
	}
	return TypeTranslation
}

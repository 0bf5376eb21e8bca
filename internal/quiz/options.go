package quiz

// Scheduling tunables. The focus-pool size derives from the loop size,
// the position increment factor and the promotion threshold unless
// overridden.
const (
	// FocusLoopSize is the near-term queue position a missed item snaps to.
	FocusLoopSize = 5
	// positionFactor scales the spacing between repeats of a correct item.
	positionFactor = 2
	// defaultLevelUp is how many consecutive correct answers promote an item.
	defaultLevelUp = 3
	// defaultMistakes is how many misses within the history window demote.
	defaultMistakes = 3
	// defaultHistorySize bounds the recent-outcome window.
	defaultHistorySize = 10
	// minHistoryForDegradation prevents demotion off a nearly empty window.
	minHistoryForDegradation = 3
)

// Options configures a session. The zero value is not usable; start from
// DefaultOptions and override fields as needed.
type Options struct {
	// MaxFocusWords bounds how many items are actively learning at once.
	MaxFocusWords int
	// CorrectAnswersToLevelUp promotes an item after this many consecutive
	// correct answers.
	CorrectAnswersToLevelUp int
	// MistakesToLevelDown demotes an item once this many misses appear in
	// the recent history window.
	MistakesToLevelDown int
	// HistorySizeForDegradation is the recent-history window capacity.
	HistorySizeForDegradation int
	// QueuePositionIncrement scales how far back each consecutive correct
	// answer pushes an item.
	QueuePositionIncrement int
	// EnableUsageExamples selects Level5 (usage mastery) as the completion
	// target; when false the target is Level3.
	EnableUsageExamples bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	increment := positionFactor * FocusLoopSize
	return Options{
		MaxFocusWords:             increment * defaultLevelUp,
		CorrectAnswersToLevelUp:   defaultLevelUp,
		MistakesToLevelDown:       defaultMistakes,
		HistorySizeForDegradation: defaultHistorySize,
		QueuePositionIncrement:    increment,
		EnableUsageExamples:       true,
	}
}

// withDefaults fills unset fields so partial option structs are usable.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxFocusWords <= 0 {
		o.MaxFocusWords = d.MaxFocusWords
	}
	if o.CorrectAnswersToLevelUp <= 0 {
		o.CorrectAnswersToLevelUp = d.CorrectAnswersToLevelUp
	}
	if o.MistakesToLevelDown <= 0 {
		o.MistakesToLevelDown = d.MistakesToLevelDown
	}
	if o.HistorySizeForDegradation <= 0 {
		o.HistorySizeForDegradation = d.HistorySizeForDegradation
	}
	if o.QueuePositionIncrement <= 0 {
		o.QueuePositionIncrement = d.QueuePositionIncrement
	}
	return o
}

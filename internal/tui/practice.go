package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/lingvo-app/lingvo/internal/level"
	"github.com/lingvo-app/lingvo/internal/quiz"
)

// SaveFunc persists the session state after each answer and on quit.
type SaveFunc func(quiz.Snapshot) error

// phase tracks what the practice screen is showing.
type phase int

const (
	phaseAsking phase = iota
	phaseFeedback
	phaseReveal
	phaseComplete
)

// PracticeModel is the root Bubble Tea model for a practice session.
// The quiz manager is synchronous, so answers are judged inline in
// Update rather than through command round trips.
type PracticeModel struct {
	session  *quiz.Manager
	save     SaveFunc
	listName string

	input  TextInput
	width  int
	height int

	phase    phase
	question *quiz.Question
	feedback *quiz.SubmissionResult
	reveal   *quiz.RevealResult
	notice   string
	saveErr  error
}

// NewPracticeModel builds the practice screen for a session.
func NewPracticeModel(session *quiz.Manager, listName string, save SaveFunc) PracticeModel {
	m := PracticeModel{
		session:  session,
		save:     save,
		listName: listName,
		input:    NewTextInput("Type your answer...", 120),
	}
	m.advance()
	return m
}

func (m PracticeModel) Init() tea.Cmd {
	return m.input.Init()
}

func (m PracticeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseAsking {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m PracticeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.persist()
		return m, tea.Quit
	}

	switch m.phase {
	case phaseComplete:
		if key == "q" || key == "enter" || key == "esc" {
			return m, tea.Quit
		}
		return m, nil

	case phaseFeedback, phaseReveal:
		if lvl, ok := levelKey(key); ok {
			m.switchLevel(lvl)
		}
		m.advance()
		return m, m.input.Init()

	case phaseAsking:
		switch key {
		case "enter":
			return m.submit()
		case "ctrl+r":
			return m.doReveal()
		case "esc":
			m.persist()
			return m, tea.Quit
		}
		// Digits switch levels while the answer field is still empty;
		// once the user types, they are part of the answer.
		if m.input.Value() == "" {
			if lvl, ok := levelKey(key); ok {
				m.switchLevel(lvl)
				m.advance()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m PracticeModel) submit() (tea.Model, tea.Cmd) {
	if m.question == nil || m.input.Value() == "" {
		return m, nil
	}
	m.notice = ""
	result, err := m.session.SubmitAnswer(m.question.ItemID, m.input.Value())
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.feedback = result
	m.phase = phaseFeedback
	m.persist()
	return m, nil
}

func (m PracticeModel) doReveal() (tea.Model, tea.Cmd) {
	if m.question == nil {
		return m, nil
	}
	m.notice = ""
	result, err := m.session.RevealAnswer(m.question.ItemID)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.reveal = result
	m.phase = phaseReveal
	return m, nil
}

func (m *PracticeModel) switchLevel(lvl level.Level) {
	result, err := m.session.SetLevel(lvl)
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.notice = result.Message
}

// advance pulls the next question and resets the per-question state.
func (m *PracticeModel) advance() {
	m.feedback = nil
	m.reveal = nil
	m.input = NewTextInput("Type your answer...", 120)

	if m.session.IsComplete() {
		m.phase = phaseComplete
		m.question = nil
		return
	}

	res := m.session.NextQuestion()
	if res.Question == nil {
		m.phase = phaseComplete
		m.question = nil
		return
	}
	if res.LevelAdjusted {
		m.notice = "Switched to " + res.NewLevel.String() + "."
	}
	m.question = res.Question
	m.phase = phaseAsking
}

// persist saves the session, remembering a failure for the footer.
func (m *PracticeModel) persist() {
	if m.save == nil {
		return
	}
	m.saveErr = m.save(m.session.State())
}

// levelKey maps the digit keys to practice levels.
func levelKey(key string) (level.Level, bool) {
	switch key {
	case "1":
		return level.Level1, true
	case "2":
		return level.Level2, true
	case "3":
		return level.Level3, true
	case "4":
		return level.Level4, true
	}
	return 0, false
}

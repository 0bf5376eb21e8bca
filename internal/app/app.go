// Package app wires a quiz session into the terminal UI.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/lingvo-app/lingvo/internal/quiz"
	"github.com/lingvo-app/lingvo/internal/tui"
)

// Run starts the Bubble Tea program for a practice session. save is
// called with the full session snapshot after every answer and on quit.
func Run(session *quiz.Manager, listName string, save tui.SaveFunc) error {
	p := tea.NewProgram(tui.NewPracticeModel(session, listName, save))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run practice session: %w", err)
	}
	return nil
}

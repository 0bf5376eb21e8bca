package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lingvo-app/lingvo/internal/level"
	"github.com/lingvo-app/lingvo/internal/match"
)

func (m PracticeModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	var content string
	switch m.phase {
	case phaseComplete:
		content = m.renderComplete()
	case phaseFeedback:
		content = m.renderFeedback()
	case phaseReveal:
		content = m.renderReveal()
	default:
		content = m.renderQuestion()
	}

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}
	body := lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, content)

	v.SetContent(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))
	return v
}

func (m PracticeModel) renderHeader() string {
	stats := m.session.Statistics()
	left := lipgloss.NewStyle().Foreground(Secondary).Bold(true).
		Render(m.listName)
	right := lipgloss.NewStyle().Foreground(TextDim).
		Render(fmt.Sprintf("%s  %d words  %d%%",
			m.session.CurrentLevel(), stats.TotalWords, stats.CompletionPercentage))

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		pad = 1
	}
	return Header.Width(m.width).Render(left + strings.Repeat(" ", pad) + right)
}

func (m PracticeModel) renderFooter() string {
	var hints []string
	switch m.phase {
	case phaseAsking:
		hints = []string{"Enter Submit", "Ctrl+R Reveal", "1-4 Level", "Esc Quit"}
	case phaseFeedback, phaseReveal:
		hints = []string{"Any key Continue", "1-4 Level", "Ctrl+C Quit"}
	default:
		hints = []string{"Q Quit"}
	}
	line := Hint.Render(strings.Join(hints, "  ·  "))
	if m.saveErr != nil {
		line += "  " + Incorrect.Render("save failed: "+m.saveErr.Error())
	}
	return Footer.Width(m.width).Render(line)
}

func (m PracticeModel) renderQuestion() string {
	if m.question == nil {
		return Hint.Render("Nothing to practice.")
	}
	q := m.question

	from, to := q.SourceLanguage, q.TargetLanguage
	if q.Direction == level.DirectionReverse {
		from, to = to, from
	}

	var b strings.Builder
	b.WriteString(Hint.Render(fmt.Sprintf("%s → %s", from, to)))
	b.WriteString("\n\n")
	b.WriteString(Title.Render(match.FormatForDisplay(q.QuestionText)))
	if q.QuestionType == level.TypeUsage && q.UsageExample != "" {
		b.WriteString("\n\n")
		b.WriteString(Body.Foreground(TextDim).Render(q.UsageExample))
	}
	b.WriteString("\n\n")
	b.WriteString("Answer: " + m.input.View())
	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(Hint.Render(m.notice))
	}

	return Card.Render(b.String())
}

func (m PracticeModel) renderFeedback() string {
	f := m.feedback

	var b strings.Builder
	if f.IsCorrect {
		b.WriteString(Correct.Render("Correct!"))
	} else {
		b.WriteString(Incorrect.Render("Not quite"))
		b.WriteString("\n\n")
		b.WriteString(Body.Render("Correct answer: " + match.FormatForDisplay(f.CorrectAnswerText)))
	}

	if f.HasResponseTime {
		b.WriteString("\n")
		b.WriteString(Hint.Render(fmt.Sprintf("%.1fs", f.ResponseTime.Seconds())))
	}

	if f.LevelChange != nil {
		b.WriteString("\n\n")
		word := match.FormatForDisplay(f.Item.SourceText)
		if f.LevelChange.To > f.LevelChange.From {
			b.WriteString(lipgloss.NewStyle().Foreground(Accent).Bold(true).
				Render(fmt.Sprintf("%q moved up to %s", word, f.LevelChange.To)))
		} else {
			b.WriteString(Hint.Render(fmt.Sprintf("%q dropped to %s", word, f.LevelChange.To)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(Hint.Render("Press any key to continue..."))
	return Card.Render(b.String())
}

func (m PracticeModel) renderReveal() string {
	var b strings.Builder
	b.WriteString(Body.Render("Answer: " + match.FormatForDisplay(m.reveal.CorrectAnswerText)))
	b.WriteString("\n\n")
	b.WriteString(Hint.Render("Press any key to continue..."))
	return Card.Render(b.String())
}

func (m PracticeModel) renderComplete() string {
	stats := m.session.Statistics()

	var b strings.Builder
	if stats.TotalWords == 0 {
		b.WriteString(Title.Render("Nothing to practice"))
		b.WriteString("\n\n")
		b.WriteString(Body.Render("This list has no words. Import some with `lingvo import`."))
	} else {
		b.WriteString(Title.Render("All done!"))
		b.WriteString("\n\n")
		b.WriteString(Body.Render(fmt.Sprintf("Every one of the %d words reached its target level.", stats.TotalWords)))
	}
	b.WriteString("\n\n")
	b.WriteString(Hint.Render("Press Q to quit."))
	return Card.Render(b.String())
}

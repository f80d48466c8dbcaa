package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqtrainer/internal/router"
	"github.com/abhisek/mcqtrainer/internal/screen"
	"github.com/abhisek/mcqtrainer/internal/session"
	"github.com/abhisek/mcqtrainer/internal/ui/components"
	"github.com/abhisek/mcqtrainer/internal/ui/layout"
	"github.com/abhisek/mcqtrainer/internal/ui/theme"
)

// SummaryScreen displays the result of a finished quiz.
type SummaryScreen struct {
	quiz    string
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen for the quiz named quiz.
func New(quiz string, summary session.Summary) *SummaryScreen {
	return &SummaryScreen{quiz: quiz, summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	headline := "Quiz complete!"
	switch {
	case sum.Total == 0:
		headline = "No questions matched"
	case sum.Answered < sum.Total:
		headline = "Quiz ended early"
	}
	b.WriteString(layout.Center(theme.Title.Render(headline), width))
	b.WriteString("\n")
	b.WriteString(layout.Center(theme.Subtitle.Render(s.quiz), width))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(layout.Center(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)), width))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Score: %d / %d        Answered: %d        Accuracy: %.0f%%",
		sum.Correct, sum.Total, sum.Answered, sum.Accuracy*100)
	b.WriteString(layout.Center(lipgloss.NewStyle().Foreground(theme.Text).Render(statsLine), width))
	b.WriteString("\n\n")

	if sum.Total > 0 {
		bar := components.NewProgressBar("", sum.Accuracy, true, min(width-8, 60))
		b.WriteString(layout.Center(bar.View(), width))
		b.WriteString("\n\n")
	}

	if sum.WriteErrors > 0 {
		warn := fmt.Sprintf("⚠ %d answer(s) could not be saved; statistics may be behind", sum.WriteErrors)
		b.WriteString(layout.Center(theme.Warn.Render(warn), width))
		b.WriteString("\n")
	}

	return b.String()
}

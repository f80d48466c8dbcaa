package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqtrainer/internal/question"
	"github.com/abhisek/mcqtrainer/internal/session"
	"github.com/abhisek/mcqtrainer/internal/ui/components"
	"github.com/abhisek/mcqtrainer/internal/ui/layout"
	"github.com/abhisek/mcqtrainer/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, height, s.errMsg)
	case s.session.Phase() == session.PhaseLoading, s.closing:
		return s.renderLoading(width, height)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderLoading(width, height int) string {
	text := "Loading questions..."
	if s.closing {
		text = "Saving answers..."
	}
	content := s.spinner.View() + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(text)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderError(width, height int, msg string) string {
	content := theme.Incorrect.Render("Could not start quiz") + "\n\n" +
		theme.Hint.Render(layout.Wrap(msg, min(width-4, 70)))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *QuizScreen) renderQuestion(width int) string {
	cardWidth := min(width-4, 90)
	var b strings.Builder

	bar := components.NewProgressBar(
		fmt.Sprintf("Score %d", s.session.Score()),
		components.Ratio(s.session.Index(), s.session.Total()),
		true, cardWidth)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	q := s.current
	meta := fmt.Sprintf("%s › %s", q.Category, q.SubCategory)
	if q.Number != "" {
		meta += "  #" + q.Number
	}
	b.WriteString(theme.Subtitle.Render(meta))
	b.WriteString("\n")
	if q.HasImage() {
		b.WriteString(theme.Hint.Render("Image: " + q.ImageName))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.choice.View(cardWidth))

	if s.feedback != nil {
		b.WriteString("\n")
		b.WriteString(renderFeedback(*s.feedback))
	}
	if s.warnMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Warn.Render("⚠ " + s.warnMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func renderFeedback(out session.Outcome) string {
	var verdict string
	if out.Correct {
		verdict = theme.Correct.Render("✓ Correct")
	} else {
		want := strings.ToUpper(out.Question.CorrectAnswer)
		if o, ok := question.ParseOption(want); ok {
			want = fmt.Sprintf("%s) %s", o, out.Question.OptionText(o))
		}
		verdict = theme.Incorrect.Render("✗ Wrong, answer: " + want)
	}
	return verdict + "\n" + theme.Hint.Render(StatsLine(out.Updated))
}

// StatsLine formats the per-question counters shown after an answer.
func StatsLine(q question.Question) string {
	return fmt.Sprintf("Ans: %d, Ok: %.0f%%, Streak: %d",
		q.TimesAnswered, q.CorrectnessRatio()*100, q.TimesCorrectRecent)
}

package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqtrainer/internal/question"
	"github.com/abhisek/mcqtrainer/internal/ui/theme"
)

// MultiChoice is an A-D answer selector for one question.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int // -1 when the stored answer is not A-D
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a selector for q.
func NewMultiChoice(q question.Question) MultiChoice {
	options := make([]string, len(question.Options))
	correct := -1
	for i, o := range question.Options {
		options[i] = q.OptionText(o)
		if q.IsCorrect(string(o)) {
			correct = i
		}
	}
	return MultiChoice{
		Question:     q.Text,
		Options:      options,
		CorrectIndex: correct,
		ChosenIndex:  -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Letters a-d and digits
// 1-4 pick an option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	case "a", "b", "c", "d", "A", "B", "C", "D":
		m.pick(int(strings.ToLower(key)[0] - 'a'))
	case "1", "2", "3", "4":
		m.pick(int(key[0] - '1'))
	}

	return m, nil
}

func (m *MultiChoice) pick(i int) {
	if i < 0 || i >= len(m.Options) {
		return
	}
	m.Selected = i
	m.Submitted = true
	m.ChosenIndex = i
}

// Chosen returns the submitted option letter.
func (m MultiChoice) Chosen() (question.Option, bool) {
	if !m.Submitted || m.ChosenIndex < 0 || m.ChosenIndex >= len(question.Options) {
		return "", false
	}
	return question.Options[m.ChosenIndex], true
}

// View renders the multiple-choice component wrapped to width.
func (m MultiChoice) View(width int) string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		label := string(question.Options[i])
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)
		style := lipgloss.NewStyle().Width(width)

		if m.Submitted {
			switch i {
			case m.CorrectIndex:
				style = style.Foreground(theme.Success).Bold(true)
			case m.ChosenIndex:
				style = style.Foreground(theme.Error).Bold(true)
			default:
				style = style.Foreground(theme.TextDim)
			}
		} else if i == m.Selected {
			style = style.Foreground(theme.Primary).Bold(true)
		} else {
			style = style.Foreground(theme.Text)
		}
		s += style.Render(line) + "\n"
	}

	return s
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}

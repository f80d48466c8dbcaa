// Package home implements the start screen.
package home

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqtrainer/internal/config"
	"github.com/abhisek/mcqtrainer/internal/question"
	"github.com/abhisek/mcqtrainer/internal/report"
	"github.com/abhisek/mcqtrainer/internal/router"
	"github.com/abhisek/mcqtrainer/internal/screen"
	"github.com/abhisek/mcqtrainer/internal/screens/quiz"
	"github.com/abhisek/mcqtrainer/internal/screens/statistics"
	"github.com/abhisek/mcqtrainer/internal/selection"
	"github.com/abhisek/mcqtrainer/internal/ui/components"
	"github.com/abhisek/mcqtrainer/internal/ui/layout"
	"github.com/abhisek/mcqtrainer/internal/ui/theme"
)

// Options wires the home screen to the rest of the application.
type Options struct {
	Bank statistics.Source
	Quiz quiz.Deps

	// Threshold is the initial weak-question threshold.
	Threshold int

	// ConfigPath receives threshold changes. Empty disables saving.
	ConfigPath string
}

type bankMsg struct {
	Summary report.Summary
	Weak    int
	Err     error
}

type savedMsg struct {
	Threshold int
	Err       error
}

const (
	itemStart = iota
	itemWeak
	itemUnanswered
	itemStatistics
	itemThreshold
	itemQuit
)

// HomeScreen is the main menu.
type HomeScreen struct {
	opts      Options
	threshold int
	menu      components.Menu
	input     components.NumberInput
	editing   bool

	summary report.Summary
	weak    int
	status  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ router.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if opts.Threshold < 1 {
		opts.Threshold = selection.DefaultThreshold
	}
	h := &HomeScreen{
		opts:      opts,
		threshold: opts.Threshold,
		input:     components.NewNumberInput("Weak below", opts.Threshold, 3),
	}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	quizItem := func(label string, mode selection.Mode) components.MenuItem {
		return components.MenuItem{Label: label, Action: func() tea.Cmd {
			req := selection.Request{Scope: selection.ScopeOverall, Mode: mode, Threshold: h.threshold}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quiz.New(label, req, h.opts.Quiz)}
			}
		}}
	}

	return []components.MenuItem{
		itemStart:      quizItem("Start quiz", selection.ModeAll),
		itemWeak:       quizItem("Weak questions", selection.ModeWeakRecentStreak),
		itemUnanswered: quizItem("Unanswered questions", selection.ModeUnanswered),
		itemStatistics: {Label: "Statistics", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: statistics.New(h.opts.Bank, h.opts.Quiz, h.threshold)}
			}
		}},
		itemThreshold: {Label: "Weak threshold", Action: func() tea.Cmd {
			h.editing = true
			h.input.Model.SetValue(strconv.Itoa(h.threshold))
			return h.input.Focus()
		}},
		itemQuit: {Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Refresh reloads the bank totals when returning from a quiz.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	bank, threshold := h.opts.Bank, h.threshold
	if bank == nil {
		return nil
	}
	return func() tea.Msg {
		qs, err := bank.All(context.Background())
		if err != nil {
			return bankMsg{Err: err}
		}
		return bankMsg{Summary: report.Aggregate(qs).Summary, Weak: countWeak(qs, threshold)}
	}
}

func countWeak(qs []question.Question, threshold int) int {
	n := 0
	for _, q := range qs {
		if q.TimesCorrectRecent < threshold {
			n++
		}
	}
	return n
}

func (h *HomeScreen) save(n int) tea.Cmd {
	path := h.opts.ConfigPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		err := config.Update(path, func(c *config.Config) { c.WeakThreshold = n })
		return savedMsg{Threshold: n, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "T", Description: "Threshold"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bankMsg:
		if msg.Err != nil {
			h.status = "Could not read the question bank: " + msg.Err.Error()
			return h, nil
		}
		h.summary, h.weak = msg.Summary, msg.Weak
		return h, nil

	case savedMsg:
		if msg.Err != nil {
			h.status = "Threshold not saved: " + msg.Err.Error()
		}
		return h, nil

	case tea.KeyMsg:
		if h.editing {
			return h.handleEditKey(msg)
		}
		if msg.String() == "t" {
			h.menu.Selected = itemThreshold
			return h, h.menu.Items[itemThreshold].Action()
		}
	}

	if h.editing {
		var cmd tea.Cmd
		h.input, cmd = h.input.Update(msg)
		return h, cmd
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) handleEditKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		h.editing = false
		h.input.Blur()
		return h, nil
	case "enter":
		n, ok := h.input.Value()
		if !ok {
			return h, nil
		}
		h.editing = false
		h.input.Blur()
		h.threshold = n
		h.status = fmt.Sprintf("Questions with a streak below %d count as weak", n)
		return h, tea.Batch(h.save(n), h.load())
	}

	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	compact := height+8 < 32 || width < 80
	cw := contentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if h.summary.TotalQuestions == 0 {
		sections = append(sections, renderEmptyBank(cw))
	} else {
		sections = append(sections, renderStatsBar(h.summary, h.weak, h.threshold, cw))
	}

	labels := make([]string, len(h.menu.Items))
	disabled := make(map[int]bool)
	for i, item := range h.menu.Items {
		labels[i] = item.Label
		disabled[i] = item.Disabled
	}
	labels[itemThreshold] = fmt.Sprintf("Weak threshold: %d", h.threshold)
	if compact {
		sections = append(sections, renderMenuCompact(labels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderMenu(labels, h.menu.Selected, cw, disabled))
	}

	if h.editing {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.input.View()))
	}
	if h.status != "" {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(theme.Hint.Render(h.status)))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

// Package statistics shows the category report and launches scoped quizzes
// and resets from it.
package statistics

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mcqtrainer/internal/question"
	"github.com/abhisek/mcqtrainer/internal/report"
	"github.com/abhisek/mcqtrainer/internal/router"
	"github.com/abhisek/mcqtrainer/internal/screen"
	"github.com/abhisek/mcqtrainer/internal/screens/quiz"
	"github.com/abhisek/mcqtrainer/internal/selection"
	"github.com/abhisek/mcqtrainer/internal/ui/layout"
)

// Source supplies the full question bank for aggregation.
type Source interface {
	All(ctx context.Context) ([]question.Question, error)
}

type reportMsg struct {
	Report report.Report
	Err    error
}

type resetMsg struct {
	Category    string
	SubCategory string
	Count       int
	Err         error
}

// StatisticsScreen lists the report rows.
type StatisticsScreen struct {
	source    Source
	quizDeps  quiz.Deps
	threshold int

	items   []report.Item
	cursor  int
	loaded  bool
	confirm bool
	status  string
	errMsg  string
}

var _ screen.Screen = (*StatisticsScreen)(nil)
var _ screen.KeyHintProvider = (*StatisticsScreen)(nil)
var _ router.Refresher = (*StatisticsScreen)(nil)

// New creates the screen. threshold is used for weak-question quizzes.
func New(source Source, quizDeps quiz.Deps, threshold int) *StatisticsScreen {
	return &StatisticsScreen{
		source:    source,
		quizDeps:  quizDeps,
		threshold: threshold,
	}
}

func (s *StatisticsScreen) Init() tea.Cmd {
	return s.load()
}

// Refresh reloads the report after a quiz or reset.
func (s *StatisticsScreen) Refresh() tea.Cmd {
	return s.load()
}

func (s *StatisticsScreen) Title() string {
	return "Statistics"
}

func (s *StatisticsScreen) KeyHints() []layout.KeyHint {
	if s.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset"},
			{Key: "N", Description: "Cancel"},
		}
	}
	item, ok := s.selected()
	if !ok {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if item.Kind == report.ItemSummary {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "A", Description: "All"},
			{Key: "U", Description: "Unanswered"},
			{Key: "W", Description: "Weak"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "A", Description: "All"},
		{Key: "U", Description: "Unanswered"},
		{Key: "W", Description: "Weak"},
		{Key: "I", Description: "Incorrect"},
		{Key: "R", Description: "Reset"},
	}
}

func (s *StatisticsScreen) load() tea.Cmd {
	src := s.source
	return func() tea.Msg {
		qs, err := src.All(context.Background())
		if err != nil {
			return reportMsg{Err: err}
		}
		return reportMsg{Report: report.Aggregate(qs)}
	}
}

func (s *StatisticsScreen) selected() (report.Item, bool) {
	if !s.loaded || s.cursor < 0 || s.cursor >= len(s.items) {
		return report.Item{}, false
	}
	return s.items[s.cursor], true
}

func (s *StatisticsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.items = msg.Report.Items()
		s.loaded = true
		if s.cursor >= len(s.items) || !s.items[s.cursor].Selectable() {
			s.cursor = 0
		}
		return s, nil

	case resetMsg:
		if msg.Err != nil {
			s.status = "Reset failed: " + msg.Err.Error()
			return s, nil
		}
		s.status = fmt.Sprintf("Reset %d question(s) in %s › %s", msg.Count, msg.Category, msg.SubCategory)
		return s, s.load()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *StatisticsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirm {
		s.confirm = false
		if key == "y" || key == "Y" {
			item, _ := s.selected()
			return s, s.reset(item)
		}
		s.status = "Reset cancelled"
		return s, nil
	}

	switch key {
	case "up", "k":
		s.move(-1)
		return s, nil
	case "down", "j":
		s.move(1)
		return s, nil
	}

	item, ok := s.selected()
	if !ok {
		return s, nil
	}

	var mode selection.Mode
	switch key {
	case "a":
		mode = selection.ModeAll
	case "u":
		mode = selection.ModeUnanswered
	case "w":
		mode = selection.ModeWeakRecentStreak
	case "i":
		mode = selection.ModeIncorrect
	case "r":
		mode = selection.ModeResetStats
	default:
		return s, nil
	}

	req := s.request(item, mode)
	if err := req.Validate(); err != nil {
		if errors.Is(err, selection.ErrInvalidScope) {
			s.status = fmt.Sprintf("%q is not available on this row", mode)
		} else {
			s.status = err.Error()
		}
		return s, nil
	}

	if mode == selection.ModeResetStats {
		s.confirm = true
		s.status = ""
		return s, nil
	}

	s.status = ""
	title := quizTitle(item, mode)
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: quiz.New(title, req, s.quizDeps)}
	}
}

// move steps the cursor over category header rows.
func (s *StatisticsScreen) move(delta int) {
	for i := s.cursor + delta; i >= 0 && i < len(s.items); i += delta {
		if s.items[i].Selectable() {
			s.cursor = i
			return
		}
	}
}

func (s *StatisticsScreen) request(item report.Item, mode selection.Mode) selection.Request {
	req := selection.Request{Mode: mode, Threshold: s.threshold}
	if item.Kind == report.ItemSubCategory {
		req.Scope = selection.ScopeSubCategory
		req.Category, req.SubCategory = item.Category, item.SubCategory
	}
	return req
}

func (s *StatisticsScreen) reset(item report.Item) tea.Cmd {
	loader := s.quizDeps.Loader
	req := s.request(item, selection.ModeResetStats)
	return func() tea.Msg {
		out, err := loader.Dispatch(context.Background(), req)
		return resetMsg{Category: req.Category, SubCategory: req.SubCategory, Count: out.Reset, Err: err}
	}
}

func quizTitle(item report.Item, mode selection.Mode) string {
	var name string
	switch mode {
	case selection.ModeUnanswered:
		name = "Unanswered"
	case selection.ModeWeakRecentStreak:
		name = "Weak"
	case selection.ModeIncorrect:
		name = "Incorrect"
	default:
		name = "All"
	}
	if item.Kind == report.ItemSubCategory {
		return name + ": " + item.SubCategory
	}
	return name + " questions"
}

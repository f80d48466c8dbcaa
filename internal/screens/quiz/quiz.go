// Package quiz implements the screen that runs a quiz session.
package quiz

import (
	"context"
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqtrainer/internal/question"
	"github.com/abhisek/mcqtrainer/internal/router"
	"github.com/abhisek/mcqtrainer/internal/screen"
	"github.com/abhisek/mcqtrainer/internal/screens/summary"
	"github.com/abhisek/mcqtrainer/internal/selection"
	"github.com/abhisek/mcqtrainer/internal/session"
	"github.com/abhisek/mcqtrainer/internal/ui/components"
	"github.com/abhisek/mcqtrainer/internal/ui/layout"
	"github.com/abhisek/mcqtrainer/internal/ui/theme"
)

// Deps holds what a quiz needs to load and record answers.
type Deps struct {
	Loader    session.Loader
	Recorder  session.Recorder
	WriteMode session.WriteMode
	Logger    *slog.Logger
}

// QuizScreen runs one session.Session.
type QuizScreen struct {
	title   string
	req     selection.Request
	deps    Deps
	session *session.Session

	spinner    spinner.Model
	choice     components.MultiChoice
	current    question.Question
	feedback   *session.Outcome
	submitting bool
	closing    bool

	errMsg  string
	warnMsg string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a quiz for req. The session is created here and started by
// Init.
func New(title string, req selection.Request, deps Deps) *QuizScreen {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return &QuizScreen{
		title:   title,
		req:     req,
		deps:    deps,
		session: session.New(deps.Recorder, session.Config{WriteMode: deps.WriteMode}, deps.Logger),
		spinner: sp,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.start())
}

func (s *QuizScreen) Title() string {
	if s.session.Phase() != session.PhaseInProgress {
		return s.title
	}
	n := s.session.Index() + 1
	if s.feedback != nil {
		n--
	}
	return fmt.Sprintf("%s  %d/%d", s.title, n, s.session.Total())
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.feedback != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "End quiz"},
		}
	case s.session.Phase() == session.PhaseInProgress:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "End quiz"},
		}
	}
	return nil
}

// Close ends the session. Queued writes are flushed before it returns.
func (s *QuizScreen) Close() error {
	return s.session.Close()
}

func (s *QuizScreen) start() tea.Cmd {
	sess, loader, req := s.session, s.deps.Loader, s.req
	return func() tea.Msg {
		return startedMsg{Err: sess.Start(context.Background(), loader, req)}
	}
}

func (s *QuizScreen) submit(chosen question.Option) tea.Cmd {
	sess := s.session
	return func() tea.Msg {
		out, err := sess.Submit(context.Background(), string(chosen))
		return answeredMsg{Outcome: out, Err: err}
	}
}

func (s *QuizScreen) finish() tea.Cmd {
	s.closing = true
	sess := s.session
	return func() tea.Msg {
		err := sess.Close()
		return closedMsg{Summary: sess.Summary(), Err: err}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, s.advance()

	case answeredMsg:
		return s.handleAnswered(msg)

	case closedMsg:
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(s.title, msg.Summary)}
		}

	case spinner.TickMsg:
		if s.session.Phase() != session.PhaseLoading || s.errMsg != "" {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// advance shows the current question or ends the quiz.
func (s *QuizScreen) advance() tea.Cmd {
	s.feedback = nil
	q, ok := s.session.Current()
	if !ok {
		return s.finish()
	}
	s.current = q
	s.choice = components.NewMultiChoice(q)
	return nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" || s.submitting || s.closing || s.session.Phase() == session.PhaseLoading {
		return s, nil
	}

	if s.feedback != nil {
		switch msg.String() {
		case "enter", "space", "n":
			return s, s.advance()
		}
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if chosen, ok := s.choice.Chosen(); ok {
		s.submitting = true
		return s, s.submit(chosen)
	}
	return s, nil
}

func (s *QuizScreen) handleAnswered(msg answeredMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.Err != nil {
		// Nothing advanced; let the user answer again.
		s.warnMsg = "Answer not saved: " + msg.Err.Error()
		s.choice = components.NewMultiChoice(s.current)
		return s, nil
	}
	if msg.Outcome.Ignored {
		return s, s.advance()
	}

	out := msg.Outcome
	s.feedback = &out
	if n := len(s.session.Failures()); n > 0 {
		s.warnMsg = fmt.Sprintf("%d answer(s) could not be saved", n)
	} else {
		s.warnMsg = ""
	}
	return s, nil
}

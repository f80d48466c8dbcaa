// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqtrainer/internal/question"
	"github.com/abhisek/mcqtrainer/internal/router"
	"github.com/abhisek/mcqtrainer/internal/screen"
	"github.com/abhisek/mcqtrainer/internal/screens/home"
	"github.com/abhisek/mcqtrainer/internal/screens/quiz"
	"github.com/abhisek/mcqtrainer/internal/selection"
	"github.com/abhisek/mcqtrainer/internal/session"
	"github.com/abhisek/mcqtrainer/internal/ui/layout"
)

// Bank is the read side of the question store used by the UI.
type Bank interface {
	All(ctx context.Context) ([]question.Question, error)
	Count(ctx context.Context) (int, error)
}

// Options holds the dependencies injected into the TUI.
type Options struct {
	Bank      Bank
	Loader    session.Loader
	Recorder  session.Recorder
	WriteMode session.WriteMode
	Threshold int

	// ConfigPath receives the weak threshold when it is edited.
	ConfigPath string
	Logger     *slog.Logger

	// Quiz, when set, starts this quiz on top of the home screen.
	Quiz      *selection.Request
	QuizTitle string
}

type countMsg struct {
	N   int
	Err error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	bank   Bank
	count  int
	start  tea.Cmd
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	deps := quiz.Deps{
		Loader:    opts.Loader,
		Recorder:  opts.Recorder,
		WriteMode: opts.WriteMode,
		Logger:    opts.Logger,
	}
	homeScreen := home.New(home.Options{
		Bank:       opts.Bank,
		Quiz:       deps,
		Threshold:  opts.Threshold,
		ConfigPath: opts.ConfigPath,
	})

	m := AppModel{
		router: router.New(homeScreen, router.WithLogger(opts.Logger)),
		bank:   opts.Bank,
		count:  -1,
	}
	if opts.Quiz != nil {
		title := opts.QuizTitle
		if title == "" {
			title = "Quiz"
		}
		q := quiz.New(title, *opts.Quiz, deps)
		m.start = func() tea.Msg { return router.PushScreenMsg{Screen: q} }
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.countQuestions(), m.start)
}

func (m AppModel) countQuestions() tea.Cmd {
	bank := m.bank
	if bank == nil {
		return nil
	}
	return func() tea.Msg {
		n, err := bank.Count(context.Background())
		return countMsg{N: n, Err: err}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case countMsg:
		if msg.Err == nil {
			m.count = msg.N
		}
		return m, nil

	case router.PopScreenMsg, router.PopToRootMsg, router.ReplaceScreenMsg:
		return m, tea.Batch(m.router.Update(msg), m.countQuestions())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, the active screen and the footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := ""
	if m.count >= 0 {
		status = fmt.Sprintf("%d questions  ", m.count)
	}
	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}
	if len(footerHints) == 0 {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and releases every screen on exit.
func Run(opts Options) error {
	m := newAppModel(opts)
	p := tea.NewProgram(m)
	_, err := p.Run()
	m.router.CloseAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

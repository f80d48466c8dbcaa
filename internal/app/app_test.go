package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mcqtrainer/internal/question"
	"github.com/abhisek/mcqtrainer/internal/router"
	"github.com/abhisek/mcqtrainer/internal/screen"
	"github.com/abhisek/mcqtrainer/internal/screens/quiz"
	"github.com/abhisek/mcqtrainer/internal/selection"
)

type fakeBank []question.Question

func (f fakeBank) All(context.Context) ([]question.Question, error) { return f, nil }
func (f fakeBank) Count(context.Context) (int, error)               { return len(f), nil }

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                              { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubScreen) View(int, int) string                       { return "stub" }
func (stubScreen) Title() string                              { return "Stub" }

func TestAppModel_HeaderShowsCount(t *testing.T) {
	m := newAppModel(Options{Bank: fakeBank{{}, {}}})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated, _ = updated.Update(m.countQuestions()())

	am := updated.(AppModel)
	assert.Equal(t, 2, am.count)
	assert.Contains(t, am.render(), "2 questions")
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	assert.Contains(t, updated.(AppModel).render(), "Terminal too small")
}

func TestAppModel_QuizOption(t *testing.T) {
	req := selection.Request{Mode: selection.ModeWeakRecentStreak}
	m := newAppModel(Options{Quiz: &req, QuizTitle: "Weak"})
	require.NotNil(t, m.start)

	push, ok := m.start().(router.PushScreenMsg)
	require.True(t, ok)
	q, ok := push.Screen.(*quiz.QuizScreen)
	require.True(t, ok)
	t.Cleanup(func() { _ = q.Close() })
	assert.Equal(t, "Weak", q.Title())
}

func TestAppModel_EscPopsOnlyAboveRoot(t *testing.T) {
	m := newAppModel(Options{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		assert.NotEqual(t, router.PopScreenMsg{}, cmd())
	}

	m.router.Push(stubScreen{})
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

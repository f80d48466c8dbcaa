package quiz

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mcqtrainer/internal/answer"
	"github.com/abhisek/mcqtrainer/internal/question"
	"github.com/abhisek/mcqtrainer/internal/router"
	"github.com/abhisek/mcqtrainer/internal/screens/summary"
	"github.com/abhisek/mcqtrainer/internal/selection"
	"github.com/abhisek/mcqtrainer/internal/session"
)

type fakeLoader struct {
	questions []question.Question
	err       error
}

func (f fakeLoader) Dispatch(_ context.Context, _ selection.Request) (selection.Outcome, error) {
	return selection.Outcome{Questions: f.questions}, f.err
}

type fakeRecorder struct {
	mu    sync.Mutex
	bank  map[int]question.Question
	err   error
	calls int
}

func (f *fakeRecorder) Record(_ context.Context, id int, chosen string, correct bool) (question.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return question.Question{}, f.err
	}
	q := answer.Apply(f.bank[id], chosen, correct)
	f.bank[id] = q
	return q, nil
}

func capital() question.Question {
	return question.Question{
		ID: 1, Category: "Geo", SubCategory: "Europe", Number: "7",
		Text:    "Capital of France?",
		OptionA: "Berlin", OptionB: "Paris", OptionC: "Rome", OptionD: "Madrid",
		CorrectAnswer: "B",
	}
}

func newQuiz(t *testing.T, loader fakeLoader, rec *fakeRecorder, mode session.WriteMode) *QuizScreen {
	t.Helper()
	s := New("All questions", selection.Request{}, Deps{Loader: loader, Recorder: rec, WriteMode: mode})
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func press(s *QuizScreen, r rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	return cmd
}

func TestQuiz_AnswerAndFinish(t *testing.T) {
	q := capital()
	rec := &fakeRecorder{bank: map[int]question.Question{1: q}}
	s := newQuiz(t, fakeLoader{questions: []question.Question{q}}, rec, session.WriteOptimistic)

	_, cmd := s.Update(s.start()())
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(100, 30), "Capital of France?")
	assert.Equal(t, "All questions  1/1", s.Title())

	cmd = press(s, 'b')
	require.NotNil(t, cmd)
	_, cmd = s.Update(cmd())
	assert.Nil(t, cmd)

	view := s.View(100, 30)
	assert.Contains(t, view, "Correct")
	assert.Contains(t, view, "Ans: 1, Ok: 100%, Streak: 1")

	// Keys other than continue are ignored while feedback is shown.
	assert.Nil(t, press(s, 'a'))

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	closed, ok := cmd().(closedMsg)
	require.True(t, ok)
	assert.Equal(t, 1, closed.Summary.Correct)
	assert.Equal(t, 1, rec.calls)

	_, cmd = s.Update(closed)
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &summary.SummaryScreen{}, replace.Screen)
}

func TestQuiz_WrongAnswerFeedback(t *testing.T) {
	q := capital()
	rec := &fakeRecorder{bank: map[int]question.Question{1: q}}
	s := newQuiz(t, fakeLoader{questions: []question.Question{q}}, rec, session.WriteOptimistic)
	s.Update(s.start()())

	cmd := press(s, 'c')
	require.NotNil(t, cmd)
	s.Update(cmd())

	view := s.View(100, 30)
	assert.Contains(t, view, "Wrong, answer: B) Paris")
	assert.Contains(t, view, "Ans: 1, Ok: 0%, Streak: 0")
}

func TestQuiz_ConfirmFailureKeepsQuestion(t *testing.T) {
	q := capital()
	rec := &fakeRecorder{bank: map[int]question.Question{1: q}, err: errors.New("disk full")}
	s := newQuiz(t, fakeLoader{questions: []question.Question{q}}, rec, session.WriteConfirm)
	s.Update(s.start()())

	cmd := press(s, 'b')
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.Nil(t, s.feedback)
	assert.Equal(t, 0, s.session.Index())
	assert.Contains(t, s.View(100, 30), "Answer not saved")

	// The same question can be answered again once the store recovers.
	rec.err = nil
	cmd = press(s, 'b')
	require.NotNil(t, cmd)
	s.Update(cmd())
	require.NotNil(t, s.feedback)
	assert.True(t, s.feedback.Correct)
	assert.Equal(t, 1, s.feedback.Updated.TimesAnswered)
}

func TestQuiz_EmptySelectionGoesToSummary(t *testing.T) {
	s := newQuiz(t, fakeLoader{}, &fakeRecorder{}, session.WriteOptimistic)

	_, cmd := s.Update(s.start()())
	require.NotNil(t, cmd)
	closed, ok := cmd().(closedMsg)
	require.True(t, ok)
	assert.Zero(t, closed.Summary.Total)
}

func TestQuiz_LoadError(t *testing.T) {
	s := newQuiz(t, fakeLoader{err: errors.New("boom")}, &fakeRecorder{}, session.WriteOptimistic)

	s.Update(s.start()())
	assert.Contains(t, s.View(100, 30), "Could not start quiz")
	assert.Nil(t, press(s, 'a'))
	assert.Len(t, s.KeyHints(), 1)
}

func TestStatsLine(t *testing.T) {
	q := question.Question{TimesAnswered: 4, TimesCorrect: 3, TimesCorrectRecent: 2}
	assert.Equal(t, "Ans: 4, Ok: 75%, Streak: 2", StatsLine(q))
}

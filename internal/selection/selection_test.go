package selection

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mcqtrainer/internal/question"
	"github.com/abhisek/mcqtrainer/internal/store"
)

type bank struct {
	store *store.Store
	sel   *Selector
}

func q(cat, sub, num string, answered, correct, streak int) question.Question {
	return question.Question{
		Category: cat, SubCategory: sub, Number: num,
		Text: "Q" + num, OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d",
		CorrectAnswer:      "A",
		TimesAnswered:      answered,
		TimesCorrect:       correct,
		TimesChosenA:       correct,
		TimesCorrectRecent: streak,
	}
}

func newBank(t *testing.T) bank {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "selection.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.InsertBatch(context.Background(), []question.Question{
		q("Math", "Algebra", "1", 0, 0, 0),
		q("Math", "Algebra", "2", 4, 4, 4),
		q("Math", "Algebra", "3", 3, 1, 1),
		q("Math", "Geometry", "4", 0, 0, 0),
		q("Math", "Geometry", "5", 5, 5, 3),
		q("History", "Rome", "6", 2, 1, 0),
		q("History", "Rome", "7", 0, 0, 0),
	})
	require.NoError(t, err)
	return bank{store: s, sel: New(s)}
}

func numbers(qs []question.Question) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.Number)
	}
	sort.Strings(out)
	return out
}

func TestQuestions(t *testing.T) {
	b := newBank(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"1", "2", "3", "4", "5", "6", "7"}},
		{"category", Filter{Category: "Math"}, []string{"1", "2", "3", "4", "5"}},
		{"pair", Filter{Category: "Math", SubCategory: "Algebra"}, []string{"1", "2", "3"}},
		{"weak overall", Filter{OnlyWeak: true, RecentStreakThreshold: 3}, []string{"1", "3", "4", "6", "7"}},
		{"weak default threshold", Filter{OnlyWeak: true}, []string{"1", "3", "4", "6", "7"}},
		{"weak category", Filter{Category: "Math", OnlyWeak: true, RecentStreakThreshold: 4}, []string{"1", "3", "4", "5"}},
		{"weak pair", Filter{Category: "Math", SubCategory: "Algebra", OnlyWeak: true, RecentStreakThreshold: 1}, []string{"1"}},
		{"unknown category", Filter{Category: "Nope"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.sel.Questions(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, numbers(got))
		})
	}
}

func TestQuestions_PairKeepsStoreOrder(t *testing.T) {
	b := newBank(t)
	got, err := b.sel.Questions(context.Background(), Filter{Category: "Math", SubCategory: "Algebra"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Less(t, got[0].ID, got[1].ID)
	assert.Less(t, got[1].ID, got[2].ID)
}

func TestQuestions_WeakFilterHolds(t *testing.T) {
	b := newBank(t)
	for _, threshold := range []int{1, 2, 3, 4, 5, 10} {
		got, err := b.sel.Questions(context.Background(), Filter{OnlyWeak: true, RecentStreakThreshold: threshold})
		require.NoError(t, err)
		for _, q := range got {
			assert.Less(t, q.TimesCorrectRecent, threshold)
		}
	}
}

func TestQuestions_SubCategoryWithoutCategory(t *testing.T) {
	b := newBank(t)
	_, err := b.sel.Questions(context.Background(), Filter{SubCategory: "Algebra"})
	assert.True(t, errors.Is(err, ErrInvalidScope))
}

func TestQuestions_OnlyUnfilteredSelectionIsCapped(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "large.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	const total = DefaultLimit + 200
	seed := make([]question.Question, 0, total)
	for i := 0; i < total; i++ {
		seed = append(seed, q("Math", "Algebra", strconv.Itoa(i+1), 0, 0, 0))
	}
	ctx := context.Background()
	_, err = s.InsertBatch(ctx, seed)
	require.NoError(t, err)
	sel := New(s)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, DefaultLimit},
		{"weak overall", Filter{OnlyWeak: true, RecentStreakThreshold: 3}, total},
		{"weak default threshold", Filter{OnlyWeak: true}, total},
		{"category", Filter{Category: "Math"}, total},
		{"weak category", Filter{Category: "Math", OnlyWeak: true}, total},
		{"pair", Filter{Category: "Math", SubCategory: "Algebra"}, total},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sel.Questions(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}

	t.Run("unanswered overall", func(t *testing.T) {
		got, err := sel.Unanswered(ctx, "", "")
		require.NoError(t, err)
		assert.Len(t, got, total)
	})
	t.Run("unanswered pair", func(t *testing.T) {
		got, err := sel.Unanswered(ctx, "Math", "Algebra")
		require.NoError(t, err)
		assert.Len(t, got, total)
	})
}

func TestWithDefaultThreshold(t *testing.T) {
	b := newBank(t)
	sel := New(b.store, WithDefaultThreshold(1))
	assert.Equal(t, 1, sel.Threshold())

	got, err := sel.Questions(context.Background(), Filter{OnlyWeak: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "4", "6", "7"}, numbers(got))

	assert.Equal(t, DefaultThreshold, New(b.store, WithDefaultThreshold(0)).Threshold())
}

func TestUnanswered(t *testing.T) {
	b := newBank(t)
	ctx := context.Background()

	got, err := b.sel.Unanswered(ctx, "Math", "Geometry")
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, numbers(got))

	got, err = b.sel.Unanswered(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "4", "7"}, numbers(got))

	_, err = b.sel.Unanswered(ctx, "Math", "")
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestIncorrectlyAnswered(t *testing.T) {
	b := newBank(t)
	ctx := context.Background()

	got, err := b.sel.IncorrectlyAnswered(ctx, "Math", "Algebra")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, numbers(got))

	got, err = b.sel.IncorrectlyAnswered(ctx, "Math", "Geometry")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = b.sel.IncorrectlyAnswered(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestDispatch(t *testing.T) {
	b := newBank(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{"overall all", Request{Scope: ScopeOverall, Mode: ModeAll}, []string{"1", "2", "3", "4", "5", "6", "7"}},
		{"overall unanswered", Request{Scope: ScopeOverall, Mode: ModeUnanswered}, []string{"1", "4", "7"}},
		{"overall weak", Request{Scope: ScopeOverall, Mode: ModeWeakRecentStreak, Threshold: 1}, []string{"1", "4", "6", "7"}},
		{"category all", Request{Scope: ScopeCategory, Mode: ModeAll, Category: "History"}, []string{"6", "7"}},
		{"pair unanswered", Request{Scope: ScopeSubCategory, Mode: ModeUnanswered, Category: "History", SubCategory: "Rome"}, []string{"7"}},
		{"pair incorrect", Request{Scope: ScopeSubCategory, Mode: ModeIncorrect, Category: "History", SubCategory: "Rome"}, []string{"6"}},
		{"pair weak", Request{Scope: ScopeSubCategory, Mode: ModeWeakRecentStreak, Category: "Math", SubCategory: "Geometry"}, []string{"4"}},
		{"overall ignores names", Request{Scope: ScopeOverall, Mode: ModeAll, Category: "Math"}, []string{"1", "2", "3", "4", "5", "6", "7"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := b.sel.Dispatch(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, numbers(out.Questions))
			assert.Zero(t, out.Reset)
		})
	}
}

func TestDispatch_Reset(t *testing.T) {
	b := newBank(t)
	ctx := context.Background()

	out, err := b.sel.Dispatch(ctx, Request{Scope: ScopeSubCategory, Mode: ModeResetStats, Category: "Math", SubCategory: "Algebra"})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Reset)
	assert.Empty(t, out.Questions)

	got, err := b.sel.Unanswered(ctx, "Math", "Algebra")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	// Other sub-categories are untouched.
	got, err = b.sel.Unanswered(ctx, "Math", "Geometry")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDispatch_InvalidScope(t *testing.T) {
	b := newBank(t)
	bad := []Request{
		{Scope: ScopeOverall, Mode: ModeIncorrect},
		{Scope: ScopeOverall, Mode: ModeResetStats},
		{Scope: ScopeCategory, Mode: ModeResetStats, Category: "Math"},
		{Scope: ScopeCategory, Mode: ModeUnanswered, Category: "Math"},
		{Scope: ScopeCategory, Mode: ModeAll},
		{Scope: ScopeSubCategory, Mode: ModeAll, Category: "Math"},
		{Scope: ScopeSubCategory, Mode: Mode(42), Category: "Math", SubCategory: "Algebra"},
		{Scope: Scope(9), Mode: ModeAll},
	}
	for _, req := range bad {
		_, err := b.sel.Dispatch(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidScope, "%s/%s", req.Scope, req.Mode)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("weak")
	require.NoError(t, err)
	assert.Equal(t, ModeWeakRecentStreak, m)

	_, err = ParseMode("sometimes")
	assert.ErrorIs(t, err, ErrInvalidScope)
}

// Package selection decides which questions make up a quiz.
package selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/mcqtrainer/internal/question"
	"github.com/abhisek/mcqtrainer/internal/store"
)

// DefaultThreshold is the recent-streak threshold below which a question
// counts as weak.
const DefaultThreshold = 3

// DefaultLimit caps random-order queries.
const DefaultLimit = store.DefaultLimit

// ErrInvalidScope is returned for filters and requests whose scope or
// mode combination is not supported.
var ErrInvalidScope = errors.New("invalid selection scope")

// Repository is the read side of the question store used by the selector.
type Repository interface {
	Find(ctx context.Context, q store.Query) ([]question.Question, error)
	ResetStats(ctx context.Context, category, subCategory string) (int, error)
}

// Filter narrows a quiz to a scope and optionally to weak questions.
type Filter struct {
	Category              string
	SubCategory           string
	OnlyWeak              bool
	RecentStreakThreshold int
}

// Selector builds question lists from the store.
type Selector struct {
	repo      Repository
	threshold int
}

// Option configures a Selector.
type Option func(*Selector)

// WithDefaultThreshold overrides the weak threshold used when a filter or
// request leaves it unset.
func WithDefaultThreshold(n int) Option {
	return func(s *Selector) {
		if n > 0 {
			s.threshold = n
		}
	}
}

// New creates a Selector over repo.
func New(repo Repository, opts ...Option) *Selector {
	s := &Selector{repo: repo, threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Threshold returns the default weak threshold.
func (s *Selector) Threshold() int {
	return s.threshold
}

func (s *Selector) effectiveThreshold(n int) int {
	if n > 0 {
		return n
	}
	return s.threshold
}

// Questions returns the questions matching f. Unscoped and category-scoped
// filters are sampled in random order; a category / sub-category pair is
// returned in store order unless weak filtering is on. Only the unfiltered,
// unscoped selection is capped at DefaultLimit.
func (s *Selector) Questions(ctx context.Context, f Filter) ([]question.Question, error) {
	if f.SubCategory != "" && f.Category == "" {
		return nil, fmt.Errorf("select questions: sub-category %q without category: %w", f.SubCategory, ErrInvalidScope)
	}

	q := store.Query{Category: f.Category, SubCategory: f.SubCategory}
	switch {
	case f.OnlyWeak:
		q.WeakBelow = s.effectiveThreshold(f.RecentStreakThreshold)
		q.Random = true
	case f.SubCategory == "":
		q.Random = true
		if f.Category == "" {
			q.Limit = DefaultLimit
		}
	}

	qs, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}
	return qs, nil
}

// Unanswered returns questions never answered, within the exact pair or
// store-wide when both category and sub-category are empty.
func (s *Selector) Unanswered(ctx context.Context, category, subCategory string) ([]question.Question, error) {
	if (category == "") != (subCategory == "") {
		return nil, fmt.Errorf("select unanswered: %w", ErrInvalidScope)
	}
	qs, err := s.repo.Find(ctx, store.Query{
		Category:    category,
		SubCategory: subCategory,
		Unanswered:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("select unanswered: %w", err)
	}
	return qs, nil
}

// IncorrectlyAnswered returns questions in the pair answered wrong at
// least once.
func (s *Selector) IncorrectlyAnswered(ctx context.Context, category, subCategory string) ([]question.Question, error) {
	if category == "" || subCategory == "" {
		return nil, fmt.Errorf("select incorrect: %w", ErrInvalidScope)
	}
	qs, err := s.repo.Find(ctx, store.Query{
		Category:    category,
		SubCategory: subCategory,
		Incorrect:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("select incorrect: %w", err)
	}
	return qs, nil
}

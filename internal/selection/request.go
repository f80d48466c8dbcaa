package selection

import (
	"context"
	"fmt"

	"github.com/abhisek/mcqtrainer/internal/question"
)

// Scope is the level of the question bank a request targets.
type Scope int

const (
	ScopeOverall Scope = iota
	ScopeCategory
	ScopeSubCategory
)

var scopeNames = map[Scope]string{
	ScopeOverall:     "overall",
	ScopeCategory:    "category",
	ScopeSubCategory: "sub-category",
}

func (s Scope) String() string {
	if n, ok := scopeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// Mode is what a request does within its scope.
type Mode int

const (
	ModeAll Mode = iota
	ModeUnanswered
	ModeWeakRecentStreak
	ModeIncorrect
	ModeResetStats
)

var modeNames = map[Mode]string{
	ModeAll:              "all",
	ModeUnanswered:       "unanswered",
	ModeWeakRecentStreak: "weak",
	ModeIncorrect:        "incorrect",
	ModeResetStats:       "reset",
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q: %w", name, ErrInvalidScope)
}

// Request is a single selection or reset action.
type Request struct {
	Scope       Scope
	Mode        Mode
	Category    string
	SubCategory string
	Threshold   int
}

// Outcome is the result of Dispatch. Quiz modes fill Questions; the reset
// mode fills Reset with the number of questions zeroed.
type Outcome struct {
	Questions []question.Question
	Reset     int
}

// Validate checks that the mode is offered at the request's scope and that
// the scope's names are present.
func (r Request) Validate() error {
	switch r.Scope {
	case ScopeOverall:
		if r.Mode != ModeAll && r.Mode != ModeUnanswered && r.Mode != ModeWeakRecentStreak {
			return fmt.Errorf("%s at %s scope: %w", r.Mode, r.Scope, ErrInvalidScope)
		}
	case ScopeCategory:
		if r.Category == "" {
			return fmt.Errorf("%s scope without category: %w", r.Scope, ErrInvalidScope)
		}
		if r.Mode != ModeAll && r.Mode != ModeWeakRecentStreak {
			return fmt.Errorf("%s at %s scope: %w", r.Mode, r.Scope, ErrInvalidScope)
		}
	case ScopeSubCategory:
		if r.Category == "" || r.SubCategory == "" {
			return fmt.Errorf("%s scope without category pair: %w", r.Scope, ErrInvalidScope)
		}
		if _, ok := modeNames[r.Mode]; !ok {
			return fmt.Errorf("%s: %w", r.Mode, ErrInvalidScope)
		}
	default:
		return fmt.Errorf("%s: %w", r.Scope, ErrInvalidScope)
	}
	return nil
}

// filter returns the names relevant to the scope, dropping any extras.
func (r Request) filter() Filter {
	f := Filter{RecentStreakThreshold: r.Threshold}
	switch r.Scope {
	case ScopeCategory:
		f.Category = r.Category
	case ScopeSubCategory:
		f.Category, f.SubCategory = r.Category, r.SubCategory
	}
	return f
}

// Dispatch runs req.
func (s *Selector) Dispatch(ctx context.Context, req Request) (Outcome, error) {
	if err := req.Validate(); err != nil {
		return Outcome{}, err
	}
	f := req.filter()

	var (
		qs  []question.Question
		err error
	)
	switch req.Mode {
	case ModeAll:
		qs, err = s.Questions(ctx, f)
	case ModeWeakRecentStreak:
		f.OnlyWeak = true
		qs, err = s.Questions(ctx, f)
	case ModeUnanswered:
		qs, err = s.Unanswered(ctx, f.Category, f.SubCategory)
	case ModeIncorrect:
		qs, err = s.IncorrectlyAnswered(ctx, f.Category, f.SubCategory)
	case ModeResetStats:
		n, rerr := s.repo.ResetStats(ctx, f.Category, f.SubCategory)
		if rerr != nil {
			return Outcome{}, fmt.Errorf("dispatch %s: %w", req.Mode, rerr)
		}
		return Outcome{Reset: n}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("dispatch %s: %w", req.Mode, err)
	}
	return Outcome{Questions: qs}, nil
}

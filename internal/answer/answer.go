// Package answer applies the statistics update rule after a question is
// answered and persists the result.
package answer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/mcqtrainer/internal/question"
)

// ErrWriteFailed wraps any failure to persist an answer.
var ErrWriteFailed = errors.New("answer write failed")

// Apply returns q with its counters updated for one answer. chosen is
// matched case-insensitively against A-D; any other value leaves the
// per-option counters untouched.
func Apply(q question.Question, chosen string, correct bool) question.Question {
	q.TimesAnswered++
	if correct {
		q.TimesCorrect++
		q.TimesCorrectRecent++
	} else {
		q.TimesCorrectRecent = 0
	}

	if o, ok := question.ParseOption(chosen); ok {
		switch o {
		case question.OptionA:
			q.TimesChosenA++
		case question.OptionB:
			q.TimesChosenB++
		case question.OptionC:
			q.TimesChosenC++
		case question.OptionD:
			q.TimesChosenD++
		}
	}
	return q
}

// Mutator reads, transforms and writes back a single question atomically.
type Mutator interface {
	Mutate(ctx context.Context, id int, fn func(question.Question) question.Question) (question.Question, error)
}

// Recorder persists answers through a Mutator.
type Recorder struct {
	store  Mutator
	logger *slog.Logger
}

// NewRecorder creates a Recorder. A nil logger discards output.
func NewRecorder(store Mutator, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recorder{store: store, logger: logger}
}

// Record applies one answer to the live row of question id.
func (r *Recorder) Record(ctx context.Context, id int, chosen string, correct bool) (question.Question, error) {
	q, err := r.store.Mutate(ctx, id, func(cur question.Question) question.Question {
		return Apply(cur, chosen, correct)
	})
	if err != nil {
		r.logger.Error("record answer", "question_id", id, "chosen", chosen, "error", err)
		return question.Question{}, fmt.Errorf("%w: question %d: %w", ErrWriteFailed, id, err)
	}
	r.logger.Debug("answer recorded",
		"question_id", id,
		"correct", correct,
		"times_answered", q.TimesAnswered,
		"streak", q.TimesCorrectRecent,
	)
	return q, nil
}

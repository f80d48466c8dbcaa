package question

import (
	"errors"
	"fmt"
	"strings"
)

// Option is one of the four answer choices of a question.
type Option string

const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

// Options lists the answer choices in display order.
var Options = []Option{OptionA, OptionB, OptionC, OptionD}

// ParseOption normalizes s to an Option. The second return value is false
// when s is not one of A, B, C or D.
func ParseOption(s string) (Option, bool) {
	switch o := Option(strings.ToUpper(strings.TrimSpace(s))); o {
	case OptionA, OptionB, OptionC, OptionD:
		return o, true
	}
	return "", false
}

// Question is a single multiple-choice question together with its answer
// statistics.
type Question struct {
	// ID is assigned by the store; 0 means the question is not persisted yet.
	ID int

	Category    string
	SubCategory string
	Number      string // free-form label, not unique

	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string
	ImageName     string // empty when the question has no image

	TimesAnswered      int
	TimesCorrect       int
	TimesChosenA       int
	TimesChosenB       int
	TimesChosenC       int
	TimesChosenD       int
	TimesCorrectRecent int // consecutive correct answers since the last miss
}

// CorrectnessRatio returns TimesCorrect / TimesAnswered, or 0 for a question
// that was never answered.
func (q Question) CorrectnessRatio() float64 {
	if q.TimesAnswered == 0 {
		return 0
	}
	return float64(q.TimesCorrect) / float64(q.TimesAnswered)
}

// IsCorrect reports whether chosen matches the correct answer, ignoring case.
func (q Question) IsCorrect(chosen string) bool {
	return strings.EqualFold(strings.TrimSpace(chosen), strings.TrimSpace(q.CorrectAnswer))
}

// OptionText returns the text of option o.
func (q Question) OptionText(o Option) string {
	switch o {
	case OptionA:
		return q.OptionA
	case OptionB:
		return q.OptionB
	case OptionC:
		return q.OptionC
	case OptionD:
		return q.OptionD
	}
	return ""
}

// TimesChosen returns how often option o was picked.
func (q Question) TimesChosen(o Option) int {
	switch o {
	case OptionA:
		return q.TimesChosenA
	case OptionB:
		return q.TimesChosenB
	case OptionC:
		return q.TimesChosenC
	case OptionD:
		return q.TimesChosenD
	}
	return 0
}

// HasImage reports whether the question references an image.
func (q Question) HasImage() bool {
	return strings.TrimSpace(q.ImageName) != ""
}

// ResetStats zeroes every counter.
func (q *Question) ResetStats() {
	q.TimesAnswered = 0
	q.TimesCorrect = 0
	q.TimesChosenA = 0
	q.TimesChosenB = 0
	q.TimesChosenC = 0
	q.TimesChosenD = 0
	q.TimesCorrectRecent = 0
}

// Repair brings the counters back within the invariants Validate checks:
// negatives become zero, and correct answers, the recent streak and option
// picks are clamped to the answer count. Picks are trimmed from D towards A.
// It reports whether anything changed.
func (q *Question) Repair() bool {
	before := *q
	for _, c := range []*int{
		&q.TimesAnswered, &q.TimesCorrect, &q.TimesCorrectRecent,
		&q.TimesChosenA, &q.TimesChosenB, &q.TimesChosenC, &q.TimesChosenD,
	} {
		*c = max(*c, 0)
	}
	q.TimesCorrect = min(q.TimesCorrect, q.TimesAnswered)
	q.TimesCorrectRecent = min(q.TimesCorrectRecent, q.TimesAnswered)

	excess := q.TimesChosenA + q.TimesChosenB + q.TimesChosenC + q.TimesChosenD - q.TimesAnswered
	for _, c := range []*int{&q.TimesChosenD, &q.TimesChosenC, &q.TimesChosenB, &q.TimesChosenA} {
		if excess <= 0 {
			break
		}
		cut := min(*c, excess)
		*c -= cut
		excess -= cut
	}
	return *q != before
}

// Validate checks the counter invariants.
func (q Question) Validate() error {
	var errs []error
	counters := []struct {
		name  string
		value int
	}{
		{"times answered", q.TimesAnswered},
		{"times correct", q.TimesCorrect},
		{"times chosen A", q.TimesChosenA},
		{"times chosen B", q.TimesChosenB},
		{"times chosen C", q.TimesChosenC},
		{"times chosen D", q.TimesChosenD},
		{"recent streak", q.TimesCorrectRecent},
	}
	for _, c := range counters {
		if c.value < 0 {
			errs = append(errs, fmt.Errorf("%s is negative (%d)", c.name, c.value))
		}
	}
	if q.TimesCorrect > q.TimesAnswered {
		errs = append(errs, fmt.Errorf("times correct (%d) exceeds times answered (%d)", q.TimesCorrect, q.TimesAnswered))
	}
	if chosen := q.TimesChosenA + q.TimesChosenB + q.TimesChosenC + q.TimesChosenD; chosen > q.TimesAnswered {
		errs = append(errs, fmt.Errorf("option picks (%d) exceed times answered (%d)", chosen, q.TimesAnswered))
	}
	if q.TimesCorrectRecent > q.TimesAnswered {
		errs = append(errs, fmt.Errorf("recent streak (%d) exceeds times answered (%d)", q.TimesCorrectRecent, q.TimesAnswered))
	}
	return errors.Join(errs...)
}

package csvbank

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/mcqtrainer/internal/question"
)

// ErrFatal marks stream-level failures that abort an import.
var ErrFatal = errors.New("unreadable question bank")

// RowError describes a skipped or repaired row. Line is the 1-based line on which the
// record starts.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// header maps column names to their positions.
type header map[string]int

func readHeader(r *csv.Reader) (header, int, error) {
	names, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("%w: missing header row", ErrFatal)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read header: %w", ErrFatal, err)
	}

	h := make(header, len(names))
	for i, n := range names {
		if i == 0 {
			n = strings.TrimPrefix(n, "\ufeff")
		}
		if !utf8.ValidString(n) {
			return nil, 0, fmt.Errorf("%w: header column %d is not valid UTF-8", ErrFatal, i+1)
		}
		h[strings.TrimSpace(n)] = i
	}
	if _, ok := h[ColText]; !ok {
		return nil, 0, fmt.Errorf("%w: header has no %q column", ErrFatal, ColText)
	}
	return h, len(names), nil
}

func (h header) text(rec []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// count returns the counter in col, or 0 when missing or unparseable.
func (h header) count(rec []string, col string) int {
	n, err := strconv.Atoi(strings.TrimSpace(h.text(rec, col)))
	if err != nil {
		return 0
	}
	return n
}

func (h header) question(rec []string, withStats bool) question.Question {
	q := question.Question{
		Category:      h.text(rec, ColCategory),
		SubCategory:   h.text(rec, ColSubCategory),
		Number:        h.text(rec, ColNumber),
		Text:          h.text(rec, ColText),
		OptionA:       h.text(rec, ColOptionA),
		OptionB:       h.text(rec, ColOptionB),
		OptionC:       h.text(rec, ColOptionC),
		OptionD:       h.text(rec, ColOptionD),
		CorrectAnswer: h.text(rec, ColCorrectAnswer),
		ImageName:     strings.TrimSpace(h.text(rec, ColImage)),
	}
	if !withStats {
		return q
	}
	q.TimesAnswered = h.count(rec, ColTimesAnswered)
	q.TimesCorrect = h.count(rec, ColTimesCorrect)
	q.TimesChosenA = h.count(rec, ColTimesChosenA)
	q.TimesChosenB = h.count(rec, ColTimesChosenB)
	q.TimesChosenC = h.count(rec, ColTimesChosenC)
	q.TimesChosenD = h.count(rec, ColTimesChosenD)
	q.TimesCorrectRecent = h.count(rec, ColTimesCorrectRecent)
	return q
}

// Decode parses a bank from r. Columns are located by header name, so
// their order is free and counter columns may be absent. Rows that cannot
// be parsed or have the wrong number of fields are skipped and reported.
// Inconsistent counters are repaired and the row is kept.
func Decode(r io.Reader) ([]question.Question, []RowError, error) {
	return decode(r, true, nil)
}

// decode is Decode with an optional callback told about each row whose
// counters had to be repaired.
func decode(r io.Reader, withStats bool, repaired func(RowError)) ([]question.Question, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	h, width, err := readHeader(cr)
	if err != nil {
		return nil, nil, err
	}

	var (
		rows    []question.Question
		skipped []RowError
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				skipped = append(skipped, RowError{Line: pe.StartLine, Err: pe.Err})
				continue
			}
			return rows, skipped, fmt.Errorf("%w: %w", ErrFatal, err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) != width {
			skipped = append(skipped, RowError{
				Line: line,
				Err:  fmt.Errorf("has %d fields, header has %d", len(rec), width),
			})
			continue
		}

		q := h.question(rec, withStats)
		if err := q.Validate(); err != nil {
			q.Repair()
			if repaired != nil {
				repaired(RowError{Line: line, Err: err})
			}
		}
		rows = append(rows, q)
	}
	return rows, skipped, nil
}

// Package csvbank reads and writes the question bank CSV format.
package csvbank

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/mcqtrainer/internal/question"
)

// Column names of the bank format, in export order.
const (
	ColCategory           = "Kategorie"
	ColSubCategory        = "Unter-Kategorie"
	ColNumber             = "Frage #"
	ColText               = "Frage"
	ColOptionA            = "Antwort A"
	ColOptionB            = "Antwort B"
	ColOptionC            = "Antwort C"
	ColOptionD            = "Antwort D"
	ColCorrectAnswer      = "Richtige Antwort"
	ColImage              = "Abbildung"
	ColTimesAnswered      = "TimesAnswered"
	ColTimesCorrect       = "TimesCorrect"
	ColTimesChosenA       = "TimesChosenA"
	ColTimesChosenB       = "TimesChosenB"
	ColTimesChosenC       = "TimesChosenC"
	ColTimesChosenD       = "TimesChosenD"
	ColTimesCorrectRecent = "timesCorrectRecent"
)

// Header is the exported header row.
var Header = []string{
	ColCategory, ColSubCategory, ColNumber, ColText,
	ColOptionA, ColOptionB, ColOptionC, ColOptionD,
	ColCorrectAnswer, ColImage,
	ColTimesAnswered, ColTimesCorrect,
	ColTimesChosenA, ColTimesChosenB, ColTimesChosenC, ColTimesChosenD,
	ColTimesCorrectRecent,
}

// Export writes questions in bank format. Text fields are always quoted
// and counters are written as bare integers.
func Export(w io.Writer, questions []question.Question) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(Header, ","))
	bw.WriteByte('\n')

	for _, q := range questions {
		texts := []string{
			q.Category, q.SubCategory, q.Number, q.Text,
			q.OptionA, q.OptionB, q.OptionC, q.OptionD,
			q.CorrectAnswer, q.ImageName,
		}
		for _, t := range texts {
			bw.WriteString(quote(t))
			bw.WriteByte(',')
		}
		counters := []int{
			q.TimesAnswered, q.TimesCorrect,
			q.TimesChosenA, q.TimesChosenB, q.TimesChosenC, q.TimesChosenD,
			q.TimesCorrectRecent,
		}
		for i, c := range counters {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(strconv.Itoa(c))
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

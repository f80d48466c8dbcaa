// Package report rolls per-question counters up into a category /
// sub-category statistics report.
package report

import (
	"sort"

	"github.com/abhisek/mcqtrainer/internal/question"
)

// Summary holds store-wide totals.
type Summary struct {
	TotalQuestions       int     `json:"total_questions"`
	DistinctAnswered     int     `json:"distinct_answered"`
	TotalAttempts        int     `json:"total_attempts"`
	TotalCorrectAttempts int     `json:"total_correct_attempts"`
	AverageCorrectness   float64 `json:"average_correctness"`
}

// SubCategoryStats holds the totals of one category / sub-category pair.
type SubCategoryStats struct {
	Category            string  `json:"category"`
	Name                string  `json:"name"`
	TotalQuestions      int     `json:"total_questions"`
	DistinctAnswered    int     `json:"distinct_answered"`
	TotalAttempts       int     `json:"total_attempts"`
	TotalCorrect        int     `json:"total_correct"`
	AverageCorrectness  float64 `json:"average_correctness"`
	AverageRecentStreak float64 `json:"average_recent_streak"`
}

// CategoryGroup is a category with its sub-categories in name order.
type CategoryGroup struct {
	Name          string             `json:"name"`
	SubCategories []SubCategoryStats `json:"sub_categories"`
}

// Report is the full statistics rollup.
type Report struct {
	Summary    Summary         `json:"summary"`
	Categories []CategoryGroup `json:"categories"`
}

type accumulator struct {
	stats       SubCategoryStats
	streakSum   int
	streakCount int
}

func (a *accumulator) add(q question.Question) {
	a.stats.TotalQuestions++
	if q.TimesAnswered > 0 {
		a.stats.DistinctAnswered++
	}
	a.stats.TotalAttempts += q.TimesAnswered
	a.stats.TotalCorrect += q.TimesCorrect
	if q.TimesCorrectRecent > 0 {
		a.streakSum += q.TimesCorrectRecent
		a.streakCount++
	}
}

func (a *accumulator) finish() SubCategoryStats {
	s := a.stats
	s.AverageCorrectness = ratio(s.TotalCorrect, s.TotalAttempts)
	s.AverageRecentStreak = ratio(a.streakSum, a.streakCount)
	return s
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Aggregate builds a Report from a snapshot of questions. The input is not
// modified and the result depends only on its contents.
func Aggregate(questions []question.Question) Report {
	var r Report
	groups := map[string]map[string]*accumulator{}

	for _, q := range questions {
		r.Summary.TotalQuestions++
		if q.TimesAnswered > 0 {
			r.Summary.DistinctAnswered++
		}
		r.Summary.TotalAttempts += q.TimesAnswered
		r.Summary.TotalCorrectAttempts += q.TimesCorrect

		subs, ok := groups[q.Category]
		if !ok {
			subs = map[string]*accumulator{}
			groups[q.Category] = subs
		}
		acc, ok := subs[q.SubCategory]
		if !ok {
			acc = &accumulator{stats: SubCategoryStats{Category: q.Category, Name: q.SubCategory}}
			subs[q.SubCategory] = acc
		}
		acc.add(q)
	}
	r.Summary.AverageCorrectness = ratio(r.Summary.TotalCorrectAttempts, r.Summary.TotalAttempts)

	for _, cat := range sortedKeys(groups) {
		subs := groups[cat]
		g := CategoryGroup{Name: cat}
		for _, name := range sortedKeys(subs) {
			g.SubCategories = append(g.SubCategories, subs[name].finish())
		}
		r.Categories = append(r.Categories, g)
	}
	return r
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package statistics

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqtrainer/internal/report"
	"github.com/abhisek/mcqtrainer/internal/ui/components"
	"github.com/abhisek/mcqtrainer/internal/ui/theme"
)

func (s *StatisticsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render("Could not load statistics: "+s.errMsg))
	}
	if !s.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading..."))
	}

	lines := make([]string, 0, len(s.items))
	for i, item := range s.items {
		lines = append(lines, s.renderItem(item, i == s.cursor, width))
	}

	// Keep the cursor visible.
	footer := 2
	visible := max(height-footer, 1)
	start := 0
	if s.cursor >= visible {
		start = s.cursor - visible + 1
	}
	end := min(start+visible, len(lines))

	var b strings.Builder
	b.WriteString(strings.Join(lines[start:end], "\n"))
	b.WriteString("\n\n")
	switch {
	case s.confirm:
		item, _ := s.selected()
		b.WriteString(theme.Warn.Render(fmt.Sprintf(
			"  Reset all statistics of %s › %s? (y/n)", item.Category, item.SubCategory)))
	case s.status != "":
		b.WriteString(theme.Hint.Render("  " + s.status))
	}
	return b.String()
}

func (s *StatisticsScreen) renderItem(item report.Item, selected bool, width int) string {
	prefix := "    "
	if selected {
		prefix = "  ▸ "
	}
	barWidth := min(24, max(width/4, 8))

	switch item.Kind {
	case report.ItemSummary:
		sum := item.Summary
		line := fmt.Sprintf("%sOverall  %d questions, %d answered, %d attempts, %d correct",
			prefix, sum.TotalQuestions, sum.DistinctAnswered, sum.TotalAttempts, sum.TotalCorrectAttempts)
		bar := components.NewProgressBar("", sum.AverageCorrectness, true, barWidth).View()
		return style(selected).Render(line) + "  " + bar

	case report.ItemCategory:
		return theme.Heading.Render("  " + item.Category)

	default:
		st := item.Stats
		line := fmt.Sprintf("%s%-24s %3d/%-3d answered  %4d att  streak %.1f",
			prefix, truncate(st.Name, 24), st.DistinctAnswered, st.TotalQuestions,
			st.TotalAttempts, st.AverageRecentStreak)
		bar := components.NewProgressBar("", st.AverageCorrectness, true, barWidth).View()
		return style(selected).Render(line) + "  " + bar
	}
}

func style(selected bool) lipgloss.Style {
	if selected {
		return theme.Selected
	}
	return theme.Unselected
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqtrainer/internal/report"
	"github.com/abhisek/mcqtrainer/internal/ui/theme"
)

const titleFull = `┏┳┓┏━╸┏━┓   ╺┳╸┏━┓┏━┓╻┏┓╻┏━╸┏━┓
┃┃┃┃  ┃┓┃    ┃ ┣┳┛┣━┫┃┃┗┫┣╸ ┣┳┛
╹ ╹┗━╸┗┻┛    ╹ ╹┗╸╹ ╹╹╹ ╹┗━╸╹┗╸`

const titleCompact = "M C Q · T R A I N E R"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) + inner padding (4)
	return max(20, min(frameWidth-6, 60))
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders the bank totals in a bordered box matching content width.
func renderStatsBar(sum report.Summary, weak, threshold, cw int) string {
	countStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	okStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	weakStyle := lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)

	stats := fmt.Sprintf("%s  %s  %s",
		countStyle.Render(fmt.Sprintf("%d questions", sum.TotalQuestions)),
		okStyle.Render(fmt.Sprintf("%.0f%% correct", sum.AverageCorrectness*100)),
		weakStyle.Render(fmt.Sprintf("%d weak (<%d)", weak, threshold)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(labels []string, selected int, cw int, disabled map[int]bool) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		BorderForeground(theme.Primary)
	normalBtn := base.Foreground(theme.Text).BorderForeground(theme.Border)
	disabledBtn := base.Foreground(theme.TextDim).BorderForeground(theme.Border)

	buttons := make([]string, 0, len(labels))
	for i, label := range labels {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for short terminals.
func renderMenuCompact(labels []string, selected int, cw int, disabled map[int]bool) string {
	lines := make([]string, 0, len(labels))
	for i, label := range labels {
		switch {
		case disabled[i]:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+label))
		case i == selected:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ "+label+" "))
		default:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderEmptyBank(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ The question bank is empty (see mcqtrainer import --help)")
}

// renderFrame wraps content in a double-border frame, centering it
// vertically and horizontally within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

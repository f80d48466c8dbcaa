package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mcqtrainer/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-category answer statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		qs, err := e.store.All(cmd.Context())
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}
		r := report.Aggregate(qs)

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		}
		printReport(cmd.OutOrStdout(), r)
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print the report as JSON")
}

func printReport(w io.Writer, r report.Report) {
	bold := lipgloss.NewStyle().Bold(true)
	sum := r.Summary

	fmt.Fprintln(w, bold.Render("Overall"))
	fmt.Fprintf(w, "  %d questions, %d answered, %d attempts, %d correct (%.0f%%)\n\n",
		sum.TotalQuestions, sum.DistinctAnswered, sum.TotalAttempts,
		sum.TotalCorrectAttempts, sum.AverageCorrectness*100)

	if len(r.Categories) == 0 {
		fmt.Fprintln(w, "No questions. Use 'mcqtrainer import <file.csv>' to load a bank.")
		return
	}

	// Header.
	fmt.Fprintf(w, "%-30s  %9s  %8s  %8s  %7s  %6s\n",
		"Sub-category", "Answered", "Attempts", "Correct", "Ratio", "Streak")
	fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, g := range r.Categories {
		fmt.Fprintln(w, bold.Render(g.Name))
		for _, s := range g.SubCategories {
			name := s.Name
			if len(name) > 28 {
				name = name[:25] + "..."
			}
			fmt.Fprintf(w, "  %-28s  %4d/%-4d  %8d  %8d  %6.0f%%  %6.1f\n",
				name, s.DistinctAnswered, s.TotalQuestions, s.TotalAttempts,
				s.TotalCorrect, s.AverageCorrectness*100, s.AverageRecentStreak)
		}
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcqtrainer/internal/selection"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Start a quiz straight away",
	Long: `Start a quiz without going through the home screen.

Without --category the whole bank is used. --mode picks the questions:
all, unanswered, weak or incorrect. --weak is shorthand for --mode weak.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := quizRequest(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, &req, quizTitle(req))
	},
}

func init() {
	addQuizFlags(quizCmd)
}

func addQuizFlags(c *cobra.Command) {
	c.Flags().String("category", "", "Limit the quiz to this category")
	c.Flags().String("sub", "", "Limit the quiz to this sub-category (needs --category)")
	c.Flags().String("mode", "all", "Question selection: all, unanswered, weak or incorrect")
	c.Flags().Bool("weak", false, "Only questions whose recent streak is below the threshold")
	c.Flags().Int("threshold", 0, "Weak threshold (default from config)")
}

// quizRequest builds and validates the selection request from flags.
func quizRequest(cmd *cobra.Command) (selection.Request, error) {
	category, _ := cmd.Flags().GetString("category")
	sub, _ := cmd.Flags().GetString("sub")
	modeName, _ := cmd.Flags().GetString("mode")
	weak, _ := cmd.Flags().GetBool("weak")
	threshold, _ := cmd.Flags().GetInt("threshold")

	mode, err := selection.ParseMode(modeName)
	if err != nil {
		return selection.Request{}, err
	}
	if weak {
		mode = selection.ModeWeakRecentStreak
	}
	if mode == selection.ModeResetStats {
		return selection.Request{}, fmt.Errorf("use the reset command to clear statistics")
	}
	if threshold < 0 {
		return selection.Request{}, fmt.Errorf("--threshold must be positive")
	}

	req := selection.Request{Mode: mode, Category: category, SubCategory: sub, Threshold: threshold}
	switch {
	case sub != "":
		req.Scope = selection.ScopeSubCategory
	case category != "":
		req.Scope = selection.ScopeCategory
	default:
		req.Scope = selection.ScopeOverall
	}
	if err := req.Validate(); err != nil {
		return selection.Request{}, fmt.Errorf("invalid quiz options: %w", err)
	}
	return req, nil
}

func quizTitle(req selection.Request) string {
	var name string
	switch req.Scope {
	case selection.ScopeSubCategory:
		name = req.SubCategory
	case selection.ScopeCategory:
		name = req.Category
	default:
		name = "All categories"
	}
	if req.Mode == selection.ModeAll {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, req.Mode)
}

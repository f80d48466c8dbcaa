package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcqtrainer/internal/selection"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Zero the statistics of one sub-category",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		sub, _ := cmd.Flags().GetString("sub")

		req := selection.Request{
			Scope:       selection.ScopeSubCategory,
			Mode:        selection.ModeResetStats,
			Category:    category,
			SubCategory: sub,
		}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("reset needs --category and --sub: %w", err)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		out, err := selection.New(e.store).Dispatch(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset statistics of %d questions in %s / %s\n", out.Reset, category, sub)
		return nil
	},
}

func init() {
	resetCmd.Flags().String("category", "", "Category name (required)")
	resetCmd.Flags().String("sub", "", "Sub-category name (required)")
	_ = resetCmd.MarkFlagRequired("category")
	_ = resetCmd.MarkFlagRequired("sub")
}

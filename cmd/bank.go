package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcqtrainer/internal/csvbank"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Replace the question bank with the contents of a CSV file",
	Long: `Replace the question bank with the contents of a CSV file.

Every existing question is deleted first. Counter columns present in the
file are kept, so an exported bank can be restored with its statistics.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		res, err := csvbank.NewImporter(e.store, e.logger).Import(cmd.Context(), f)
		for _, rowErr := range res.Skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped %v\n", rowErr)
		}
		for _, rowErr := range res.Repaired {
			fmt.Fprintf(cmd.ErrOrStderr(), "repaired counters %v\n", rowErr)
		}
		if err != nil {
			if errors.Is(err, csvbank.ErrFatal) {
				return fmt.Errorf("import %s (bank is now empty): %w", args[0], err)
			}
			return fmt.Errorf("import %s: %w", args[0], err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions (%d rows skipped)\n", res.Imported, len(res.Skipped))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file.csv>",
	Short: "Write the question bank and its statistics to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		qs, err := e.store.All(cmd.Context())
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create %s: %w", args[0], err)
		}
		if err := csvbank.Export(f, qs); err != nil {
			f.Close()
			return fmt.Errorf("export: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", args[0], err)
		}

		e.logger.Info("bank exported", "path", args[0], "questions", len(qs))
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d questions to %s\n", len(qs), args[0])
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every question",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to delete the question bank without --yes")
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		if err := e.store.DeleteAll(cmd.Context()); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
		e.logger.Info("bank cleared")
		fmt.Fprintln(cmd.OutOrStdout(), "Question bank cleared.")
		return nil
	},
}

func init() {
	clearCmd.Flags().Bool("yes", false, "Confirm deletion")
}

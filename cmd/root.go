package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mcqtrainer",
	Short: "Multiple-choice question trainer",
	Long: "mcqtrainer quizzes you on a bank of A-D questions, tracks per-question statistics " +
		"and drills the ones you keep getting wrong.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MCQ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/mcqtrainer/config.yaml)")
	rootCmd.PersistentFlags().String("log-file", "", "Write JSON logs to this file (overrides MCQ_LOG_FILE)")
	rootCmd.PersistentFlags().String("seed", "", "CSV file imported on first run when the bank is empty (overrides MCQ_SEED_CSV)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(versionCmd)
}

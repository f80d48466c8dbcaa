package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcqtrainer/internal/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Copy the database to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		if force {
			if err := os.Remove(args[0]); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove old backup: %w", err)
			}
		}
		if err := e.store.Backup(cmd.Context(), args[0]); err != nil {
			if errors.Is(err, store.ErrBackupExists) {
				return fmt.Errorf("%s exists (use --force to overwrite): %w", args[0], err)
			}
			return fmt.Errorf("backup: %w", err)
		}

		e.logger.Info("database backed up", "path", args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", args[0])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace the database with a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dst, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}

		n, err := store.Restore(args[0], dst)
		if err != nil {
			return fmt.Errorf("restore: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d questions from %s\n", n, args[0])
		return nil
	},
}

func init() {
	backupCmd.Flags().Bool("force", false, "Overwrite an existing backup file")
}

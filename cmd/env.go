package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcqtrainer/internal/config"
	"github.com/abhisek/mcqtrainer/internal/csvbank"
	"github.com/abhisek/mcqtrainer/internal/store"
)

// env is the state shared by every command: settings, logger and store.
type env struct {
	cfg        config.Config
	configPath string
	logger     *slog.Logger
	store      *store.Store
	logCloser  io.Closer
}

// loadConfig resolves the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, "", err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, path, fmt.Errorf("load config: %w", err)
	}

	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if v, _ := cmd.Flags().GetString("seed"); v != "" {
		cfg.SeedCSV = v
	}
	return cfg, path, nil
}

// resolveDBPath returns the database path using --db / config (highest
// priority), then MCQ_DB, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openEnv loads settings, starts logging and opens the store. The caller
// must call close.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closer, err := cfg.NewLogger()
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", "path", dbPath, "command", cmd.Name())

	return &env{
		cfg:        cfg,
		configPath: path,
		logger:     logger,
		store:      st,
		logCloser:  closer,
	}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close store", "error", err)
	}
	e.logCloser.Close()
}

// seed imports the configured CSV when the bank is empty.
func (e *env) seed(cmd *cobra.Command) error {
	if e.cfg.SeedCSV == "" {
		return nil
	}
	f, err := os.Open(e.cfg.SeedCSV)
	if errors.Is(err, os.ErrNotExist) {
		e.logger.Warn("seed file missing", "path", e.cfg.SeedCSV)
		return nil
	}
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	res, seeded, err := csvbank.NewImporter(e.store, e.logger).SeedIfEmpty(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("seed question bank: %w", err)
	}
	if seeded {
		fmt.Fprintf(cmd.ErrOrStderr(), "Imported %d questions from %s\n", res.Imported, e.cfg.SeedCSV)
	}
	return nil
}

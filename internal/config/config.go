// Package config loads settings from defaults, an optional YAML file, a
// .env file and the process environment, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application settings.
type Config struct {
	// DBPath is the SQLite file. Empty means the default data location.
	DBPath string `yaml:"db,omitempty"`

	// WeakThreshold is the recent-streak value below which a question is
	// weak. Default: 3.
	WeakThreshold int `yaml:"weak_threshold"`

	// WriteMode is "optimistic" or "confirm".
	WriteMode string `yaml:"write_mode"`

	// LogFile receives JSON logs. Empty disables logging.
	LogFile string `yaml:"log_file,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// SeedCSV is imported on first run when the bank is empty.
	SeedCSV string `yaml:"seed_csv,omitempty"`
}

// Default returns a Config with defaults applied.
func Default() Config {
	return Config{
		WeakThreshold: 3,
		WriteMode:     "optimistic",
		LogLevel:      "info",
	}
}

// DefaultPath resolves the config file location:
// $XDG_CONFIG_HOME/mcqtrainer/config.yaml, or ~/.config/mcqtrainer/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mcqtrainer", "config.yaml"), nil
}

// Load builds a Config. A missing file at path is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}

	// Load .env file if it exists
	_ = godotenv.Load()
	if err := cfg.mergeEnv(); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if v := os.Getenv("MCQ_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("MCQ_WEAK_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MCQ_WEAK_THRESHOLD=%q is not an integer", v)
		}
		c.WeakThreshold = n
	}
	if v := os.Getenv("MCQ_WRITE_MODE"); v != "" {
		c.WriteMode = v
	}
	if v := os.Getenv("MCQ_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("MCQ_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MCQ_SEED_CSV"); v != "" {
		c.SeedCSV = v
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.WeakThreshold < 1 {
		return fmt.Errorf("weak threshold must be at least 1, got %d", c.WeakThreshold)
	}
	switch strings.ToLower(c.WriteMode) {
	case "optimistic", "confirm":
	default:
		return fmt.Errorf("unknown write mode: %q", c.WriteMode)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Save writes c to path as YAML, creating the parent directory.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Update applies fn to the settings stored at path and writes them back.
// Environment overrides are not merged, so they never leak into the file.
func Update(path string, fn func(*Config)) error {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return err
	}
	fn(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	return Save(path, cfg)
}

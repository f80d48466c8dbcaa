package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MCQ_DB", "MCQ_WEAK_THRESHOLD", "MCQ_WRITE_MODE", "MCQ_LOG_FILE", "MCQ_LOG_LEVEL", "MCQ_SEED_CSV"} {
		t.Setenv(k, "")
	}
	// Keep godotenv from picking up a stray .env.
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weak_threshold: 5\nwrite_mode: confirm\ndb: /tmp/file.db\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.WeakThreshold)
	assert.Equal(t, "confirm", cfg.WriteMode)
	assert.Equal(t, "/tmp/file.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)

	t.Setenv("MCQ_WEAK_THRESHOLD", "2")
	t.Setenv("MCQ_DB", "/tmp/env.db")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.WeakThreshold)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.Equal(t, "confirm", cfg.WriteMode)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("MCQ_SEED_CSV")
	require.NoError(t, os.WriteFile(".env", []byte("MCQ_SEED_CSV=bundled.csv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("MCQ_SEED_CSV") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "bundled.csv", cfg.SeedCSV)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"threshold not int": {"MCQ_WEAK_THRESHOLD": "many"},
		"threshold zero":    {"MCQ_WEAK_THRESHOLD": "0"},
		"write mode":        {"MCQ_WRITE_MODE": "sometimes"},
		"log level":         {"MCQ_LOG_LEVEL": "loud"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weak_threshold: [oops\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.WeakThreshold = 7
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, got.WeakThreshold)
}

func TestUpdateKeepsEnvOutOfFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(path, Config{WeakThreshold: 4, WriteMode: "confirm", LogLevel: "debug"}))
	t.Setenv("MCQ_WRITE_MODE", "optimistic")

	require.NoError(t, Update(path, func(c *Config) { c.WeakThreshold = 9 }))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "weak_threshold: 9")
	assert.Contains(t, string(data), "write_mode: confirm")

	err = Update(path, func(c *Config) { c.WeakThreshold = 0 })
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "mcqtrainer", "config.yaml"), p)
}

func TestNewLogger(t *testing.T) {
	logger, closer, err := Default().NewLogger()
	require.NoError(t, err)
	logger.Info("dropped")
	require.NoError(t, closer.Close())

	cfg := Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "mcq.log")
	logger, closer, err = cfg.NewLogger()
	require.NoError(t, err)
	logger.Info("hello", "k", 1)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

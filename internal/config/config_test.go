package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Telegram.Token)
	assert.Equal(t, 10, cfg.Telegram.PollTimeoutSec)
	assert.Equal(t, "https://api.openweathermap.org", cfg.Weather.BaseURL)
	assert.Equal(t, 10000, cfg.Weather.TimeoutMs)
	assert.Equal(t, 60, cfg.Scheduler.TickSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Database.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SOMNUS_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("SOMNUS_WEATHER_API_KEY", "owm-key")
	t.Setenv("SOMNUS_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, "owm-key", cfg.Weather.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := []byte("telegram:\n  token: from-file\ndatabase:\n  path: /tmp/test.db\nscheduler:\n  tick_seconds: 30\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Telegram.Token)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, 30, cfg.Scheduler.TickSeconds)
	// Untouched keys keep their defaults.
	assert.Equal(t, 10, cfg.Telegram.PollTimeoutSec)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100, cfg.HistorySize)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9090\"\nlog_level: debug\nhistory_size: 5\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5, cfg.HistorySize)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9090\"\n"), 0o600))

	t.Setenv("SECR_LISTEN_ADDR", ":7070")
	t.Setenv("SECR_LOG_LEVEL", "warn")
	t.Setenv("SECR_HISTORY_SIZE", "25")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 25, cfg.HistorySize)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad history size", func(t *testing.T) {
		t.Setenv("SECR_HISTORY_SIZE", "zero")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("negative history size", func(t *testing.T) {
		t.Setenv("SECR_HISTORY_SIZE", "-1")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestNewLogger_LevelFallback(t *testing.T) {
	logger := NewLogger("definitely-not-a-level")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger = NewLogger("debug")
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

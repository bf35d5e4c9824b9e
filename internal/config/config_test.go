package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-scrim-metrics/internal/metrics"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"SCRIM_DB", "SCRIM_TRACKED_PLAYERS", "SCRIM_VERSION", "SCRIM_RECENT_WINDOW",
		"SCRIM_FALLBACK_TEAM_TAKEDOWNS", "SCRIM_FALLBACK_EARLY_TAKEDOWNS",
		"SCRIM_S3_BUCKET", "SCRIM_S3_PREFIX", "SCRIM_S3_REGION", "SCRIM_S3_ENDPOINT", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg := Load()
	assert.Equal(t, DefaultDBPath(), cfg.DBPath)
	assert.Empty(t, cfg.TrackedPlayers)
	assert.Equal(t, 5, cfg.RecentWindow)
	assert.Equal(t, metrics.DefaultFallbacks(), cfg.Fallbacks)
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, "auto", cfg.S3.Region)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SCRIM_DB", "/tmp/x.db")
	t.Setenv("SCRIM_TRACKED_PLAYERS", " alice, bob ,,carol")
	t.Setenv("SCRIM_RECENT_WINDOW", "10")
	t.Setenv("SCRIM_FALLBACK_TEAM_TAKEDOWNS", "40")
	t.Setenv("SCRIM_FALLBACK_EARLY_TAKEDOWNS", "0")
	t.Setenv("SCRIM_S3_BUCKET", "scrims")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, []string{"alice", "bob", "carol"}, cfg.TrackedPlayers)
	assert.Equal(t, 10, cfg.RecentWindow)
	assert.Equal(t, 40, cfg.Fallbacks.TeamTakedowns)
	assert.Equal(t, metrics.DefaultTeamEarlyTakedowns, cfg.Fallbacks.TeamEarlyTakedowns, "non-positive fallback uses default")
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("SCRIM_RECENT_WINDOW", "lots")
	t.Setenv("LOG_LEVEL", "chatty")
	cfg := Load()
	assert.Equal(t, 5, cfg.RecentWindow)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SCRIM_VERSION=15.12\n"), 0o644))

	saved := envFiles
	envFiles = []string{filepath.Join(dir, "missing.env"), path}
	t.Cleanup(func() { envFiles = saved })

	t.Setenv("SCRIM_VERSION", "")
	os.Unsetenv("SCRIM_VERSION")

	assert.Equal(t, path, LoadDotEnv())
	assert.Equal(t, "15.12", Load().Version)
	os.Unsetenv("SCRIM_VERSION")
}

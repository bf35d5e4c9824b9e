// Package config loads scrimmetrics settings from the environment, after an
// optional .env file.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pable/go-scrim-metrics/internal/metrics"
)

// Config holds all application configuration.
type Config struct {
	DBPath         string
	TrackedPlayers []string
	Version        string // default version bucket; empty means latest
	RecentWindow   int
	Fallbacks      metrics.Fallbacks
	S3             S3Config
	LogLevel       slog.Level
}

// S3Config holds the remote match store settings. An empty Bucket disables it.
type S3Config struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string // custom endpoint for R2/MinIO; empty uses AWS

	// Static keys; when empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string
}

// Enabled reports whether a remote bucket is configured.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

// envFiles are tried in order; the first one found is loaded.
var envFiles = []string{".env", filepath.Join(userHome(), ".scrimmetrics", ".env")}

// LoadDotEnv loads the first .env file found. Existing environment variables
// are never overridden. It returns the loaded path, or "" when none was found.
func LoadDotEnv() string {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		DBPath:         getEnv("SCRIM_DB", DefaultDBPath()),
		TrackedPlayers: getEnvList("SCRIM_TRACKED_PLAYERS"),
		Version:        getEnv("SCRIM_VERSION", ""),
		RecentWindow:   getEnvInt("SCRIM_RECENT_WINDOW", 5),
		Fallbacks: metrics.NewCalculator(metrics.Fallbacks{
			TeamTakedowns:      getEnvInt("SCRIM_FALLBACK_TEAM_TAKEDOWNS", metrics.DefaultTeamTakedowns),
			TeamEarlyTakedowns: getEnvInt("SCRIM_FALLBACK_EARLY_TAKEDOWNS", metrics.DefaultTeamEarlyTakedowns),
		}).Fallbacks,
		S3: S3Config{
			Bucket:   getEnv("SCRIM_S3_BUCKET", ""),
			Prefix:   getEnv("SCRIM_S3_PREFIX", "matches/"),
			Region:   getEnv("SCRIM_S3_REGION", "auto"),
			Endpoint: getEnv("SCRIM_S3_ENDPOINT", ""),

			AccessKeyID:     getEnv("SCRIM_S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("SCRIM_S3_SECRET_ACCESS_KEY", ""),
		},
		LogLevel: getEnvLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

// Calculator returns a metric calculator using the configured fallbacks.
func (c *Config) Calculator() metrics.Calculator {
	return metrics.NewCalculator(c.Fallbacks)
}

// DefaultDBPath is ~/.scrimmetrics/matches.db.
func DefaultDBPath() string {
	return filepath.Join(userHome(), ".scrimmetrics", "matches.db")
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping blanks.
func getEnvList(key string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// getEnvLevel accepts debug, info, warn or error.
func getEnvLevel(key string, defaultValue slog.Level) slog.Level {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(value)); err != nil {
		return defaultValue
	}
	return lvl
}

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/config"
)

var (
	dbPath  string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "scrimmetrics",
	Short: "LoL scrim match-history metrics tool",
	Long:  "Import League of Legends scrim match JSON and compute player, position and team performance metrics.",

	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (default $SCRIM_DB or ~/.scrimmetrics/matches.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(positionCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(objectivesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// setup loads .env and the environment, then installs the default logger.
func setup(cmd *cobra.Command, args []string) error {
	envFile := config.LoadDotEnv()
	cfg = config.Load()
	if dbPath == "" {
		dbPath = cfg.DBPath
	}

	level := cfg.LogLevel
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	if envFile != "" {
		slog.Debug("loaded env file", "path", envFile)
	}
	slog.Debug("config", "db", dbPath, "tracked", len(cfg.TrackedPlayers), "s3", cfg.S3.Enabled())
	return nil
}

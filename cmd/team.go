package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/aggregator"
	"github.com/pable/go-scrim-metrics/internal/report"
)

var (
	teamVersion string
	teamPlayers []string
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Blue/red side results of the tracked roster per version bucket",
	Long: `Summarize games where a tracked player took part, per side and version bucket.
The roster comes from --players or SCRIM_TRACKED_PLAYERS (comma separated).`,
	Args: cobra.NoArgs,
	RunE: runTeam,
}

func init() {
	teamCmd.Flags().StringVar(&teamVersion, "version", "", "only show this version bucket")
	teamCmd.Flags().StringSliceVar(&teamPlayers, "players", nil, "tracked players (default: $SCRIM_TRACKED_PLAYERS)")
}

func trackedPlayers() []string {
	if len(teamPlayers) > 0 {
		return teamPlayers
	}
	return cfg.TrackedPlayers
}

func runTeam(cmd *cobra.Command, args []string) error {
	tracked := trackedPlayers()
	if len(tracked) == 0 {
		return fmt.Errorf("no tracked players: set SCRIM_TRACKED_PLAYERS or pass --players")
	}

	ds, err := loadDataset()
	if err != nil {
		return err
	}
	if len(ds.matches) == 0 {
		noMatches()
		return nil
	}

	stats := aggregator.TeamStatsByVersion(ds.matches, tracked)
	buckets, _ := aggregator.VersionBuckets(ds.matches)
	if teamVersion != "" {
		buckets = []string{ds.resolveBucket(teamVersion)}
	}
	if len(stats) == 0 {
		fmt.Fprintf(os.Stdout, "No games found for %s.\n", strings.Join(tracked, ", "))
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Team: %s ===\n\n", strings.Join(tracked, ", "))
	report.PrintTeamStats(os.Stdout, stats, buckets)
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/aggregator"
	"github.com/pable/go-scrim-metrics/internal/model"
	"github.com/pable/go-scrim-metrics/internal/report"
)

var (
	playerVersion string
	playerWindow  int
)

// playerCmd is the cobra command for cross-match analysis of one or more players.
var playerCmd = &cobra.Command{
	Use:   "player <name> [<name>...]",
	Short: "Cross-match analysis for one or more players",
	Long: `Average a player's derived metrics over one version bucket, rank them against
everyone else at the player's primary position, and show recent form, champion
trends, side preference and vision style.

--version accepts a bucket ("15.12"), a full version, or "all".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlayer,
}

func init() {
	playerCmd.Flags().StringVar(&playerVersion, "version", "", "version bucket (default: $SCRIM_VERSION or newest)")
	playerCmd.Flags().IntVar(&playerWindow, "window", 0, "recent-form window in games (default: $SCRIM_RECENT_WINDOW)")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset()
	if err != nil {
		return err
	}
	if len(ds.matches) == 0 {
		noMatches()
		return nil
	}
	bucket := ds.resolveBucket(playerVersion)
	window := playerWindow
	if window <= 0 {
		window = cfg.RecentWindow
	}

	raw := make(map[string]model.RawAverages)
	for _, name := range args {
		a, err := analyzePlayer(ds, name, bucket, window)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}
		raw[name] = a.Raw
		printAnalysis(a)
	}

	if len(raw) > 1 {
		fmt.Fprintf(os.Stdout, "\n--- Raw averages ---\n\n")
		report.PrintRawAverages(os.Stdout, raw)
	}
	return nil
}

func printAnalysis(a *playerAnalysis) {
	fmt.Fprintf(os.Stdout, "\n=== %s  |  %s  |  primary position %s ===\n\n", a.Player, bucketLabel(a.Bucket), a.Position)
	report.PrintPlayerMetrics(os.Stdout, a.Player, a.Metrics)
	if a.Comparison != nil {
		report.PrintComparison(os.Stdout, *a.Comparison)
	}
	if a.Form != nil {
		fmt.Fprintln(os.Stdout)
		report.PrintForm(os.Stdout, *a.Form)
	}
	fmt.Fprintln(os.Stdout)
	report.PrintChampions(os.Stdout, a.Champions)
	fmt.Fprintln(os.Stdout)
	report.PrintSideAndVision(os.Stdout, a.Side, a.Vision, a.Objectives)
	report.PrintSuggestions(os.Stdout, a.Suggestions)
}

// knownPlayers lists every player in bucket, sorted.
func knownPlayers(ds *dataset, bucket string) []string {
	scope := ds.matches
	if bucket != "" {
		scope = aggregator.FilterByVersionBucket(ds.matches, bucket)
	}
	return aggregator.PlayerIDs(aggregator.GroupByPlayer(scope))
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/aggregator"
	"github.com/pable/go-scrim-metrics/internal/chart"
)

var (
	chartPlayer  string
	chartVersion string
	chartDir     string
	chartPNG     bool
	chartTeam    bool
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render HTML dashboards and PNG trend plots",
	Long: `Render a player's dashboard (per-game KDA, position comparison, champion win
rates) as an HTML page. --png additionally saves a static KDA trend plot.
--team renders the tracked roster's side and objective dashboard instead.`,
	Args: cobra.NoArgs,
	RunE: runChart,
}

func init() {
	chartCmd.Flags().StringVar(&chartPlayer, "player", "", "player name")
	chartCmd.Flags().StringVar(&chartVersion, "version", "", "version bucket (default: $SCRIM_VERSION or newest)")
	chartCmd.Flags().StringVar(&chartDir, "dir", ".", "output directory")
	chartCmd.Flags().BoolVar(&chartPNG, "png", false, "also save a PNG KDA trend")
	chartCmd.Flags().BoolVar(&chartTeam, "team", false, "render the team dashboard")
}

func runChart(cmd *cobra.Command, args []string) error {
	if chartPlayer == "" && !chartTeam {
		return fmt.Errorf("pass --player <name> or --team")
	}
	if err := os.MkdirAll(chartDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	ds, err := loadDataset()
	if err != nil {
		return err
	}
	if len(ds.matches) == 0 {
		noMatches()
		return nil
	}

	if chartTeam {
		return renderTeamChart(ds)
	}

	bucket := ds.resolveBucket(chartVersion)
	a, err := analyzePlayer(ds, chartPlayer, bucket, cfg.RecentWindow)
	if err != nil {
		return err
	}

	htmlPath := filepath.Join(chartDir, chart.FileName(chartPlayer, "dashboard", "html"))
	f, err := os.Create(htmlPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", htmlPath, err)
	}
	defer f.Close()
	if err := chart.PlayerDashboard(f, chartPlayer, a.games, a.Comparison, a.Champions); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %s\n", htmlPath)

	if chartPNG {
		pngPath := filepath.Join(chartDir, chart.FileName(chartPlayer, "kda", "png"))
		if err := chart.KDATrendPNG(pngPath, chartPlayer, a.games); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %s\n", pngPath)
	}
	return nil
}

func renderTeamChart(ds *dataset) error {
	tracked := trackedPlayers()
	if len(tracked) == 0 {
		return fmt.Errorf("no tracked players: set SCRIM_TRACKED_PLAYERS")
	}
	stats := aggregator.TeamStatsByVersion(ds.matches, tracked)
	buckets, _ := aggregator.VersionBuckets(ds.matches)
	shares, _ := aggregator.ObjectivePriority(ds.matches, ds.resolveBucket(chartVersion))

	path := filepath.Join(chartDir, chart.FileName("team", "dashboard", "html"))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := chart.TeamDashboard(f, stats, buckets, shares); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %s\n", path)
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/chart"
)

var (
	exportPlayers []string
	exportVersion string
	exportWindow  int
	exportOut     string
)

// exportFile is the JSON document written by export.
type exportFile struct {
	GeneratedAt string            `json:"generatedAt"`
	Players     []*playerAnalysis `json:"players"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export player analyses as JSON",
	Long: `Compute the same analysis as 'player' for one or more players and write it as
JSON. With --out pointing at a directory, one file per player is written and
named after the player; otherwise --out is the output file ("-" for stdout).

Example:
  scrimmetrics export --player Faker --player Keria --out ./reports`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringSliceVar(&exportPlayers, "player", nil, "player name (repeatable, default: tracked players)")
	exportCmd.Flags().StringVar(&exportVersion, "version", "", "version bucket (default: $SCRIM_VERSION or newest)")
	exportCmd.Flags().IntVar(&exportWindow, "window", 0, "recent-form window in games (default: $SCRIM_RECENT_WINDOW)")
	exportCmd.Flags().StringVar(&exportOut, "out", "-", "output file or directory")
}

func runExport(cmd *cobra.Command, args []string) error {
	players := exportPlayers
	if len(players) == 0 {
		players = cfg.TrackedPlayers
	}
	if len(players) == 0 {
		return fmt.Errorf("no players: pass --player or set SCRIM_TRACKED_PLAYERS")
	}

	ds, err := loadDataset()
	if err != nil {
		return err
	}
	bucket := ds.resolveBucket(exportVersion)
	window := exportWindow
	if window <= 0 {
		window = cfg.RecentWindow
	}

	var analyses []*playerAnalysis
	for _, name := range players {
		a, err := analyzePlayer(ds, name, bucket, window)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}
		analyses = append(analyses, a)
	}
	if len(analyses) == 0 {
		return fmt.Errorf("nothing to export for %s", bucketLabel(bucket))
	}
	generated := time.Now().UTC().Format(time.RFC3339)

	if info, err := os.Stat(exportOut); err == nil && info.IsDir() {
		for _, a := range analyses {
			path := filepath.Join(exportOut, chart.FileName(a.Player, "metrics", "json"))
			if err := writeJSON(path, exportFile{GeneratedAt: generated, Players: []*playerAnalysis{a}}); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Wrote %s\n", path)
		}
		return nil
	}
	return writeJSON(exportOut, exportFile{GeneratedAt: generated, Players: analyses})
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

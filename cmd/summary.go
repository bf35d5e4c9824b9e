package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/storage"
)

var summaryTop int

// summaryCmd is the cobra command for displaying a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate statistics about all matches stored in the database:
match count, import date range, version buckets, most active players, and the
tracked roster's record when SCRIM_TRACKED_PLAYERS is set.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().IntVar(&summaryTop, "top", 10, "number of most active players to show")
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ov, err := db.Overview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.Matches == 0 {
		noMatches()
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Matches stored  : %d\n", ov.Matches)
	fmt.Fprintf(os.Stdout, "  Imported        : %s → %s\n", ov.FirstImported, ov.LastImported)
	fmt.Fprintf(os.Stdout, "  Version buckets : %d\n", ov.Buckets)
	if ov.Unbucketed > 0 {
		fmt.Fprintf(os.Stdout, "  Unversioned     : %d\n", ov.Unbucketed)
	}
	fmt.Fprintf(os.Stdout, "  Players seen    : %d\n", ov.Players)
	fmt.Fprintf(os.Stdout, "  Participant rows: %d\n", ov.Participants)

	players, err := db.PlayerGameCounts(nil)
	if err != nil {
		return fmt.Errorf("get player counts: %w", err)
	}
	if len(players) > summaryTop {
		players = players[:summaryTop]
	}
	fmt.Fprintf(os.Stdout, "\n--- Most Active Players ---\n\n")
	printGameCounts(players)

	if len(cfg.TrackedPlayers) > 0 {
		tracked, err := db.PlayerGameCounts(cfg.TrackedPlayers)
		if err != nil {
			return fmt.Errorf("get tracked counts: %w", err)
		}
		fmt.Fprintf(os.Stdout, "\n--- Tracked Roster ---\n\n")
		printGameCounts(tracked)
	}
	return nil
}

func printGameCounts(counts []storage.PlayerGameCount) {
	pt := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	pt.Header("PLAYER", "GAMES", "WINS", "WIN%")
	for _, c := range counts {
		pct := 0.0
		if c.Games > 0 {
			pct = 100.0 * float64(c.Wins) / float64(c.Games)
		}
		pt.Append(
			c.Player,
			fmt.Sprintf("%d", c.Games),
			fmt.Sprintf("%d", c.Wins),
			fmt.Sprintf("%.0f%%", pct),
		)
	}
	pt.Render()
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/report"
	"github.com/pable/go-scrim-metrics/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the match database",
	Long: `Run an arbitrary SQL query against the match database and print results as a table.

Schema overview:
  matches(id, hash, game_version, version_bucket, imported_at, document)
  participants(match_id, slot, player, side, position, champion, win, kills,
    deaths, assists, damage_dealt, damage_taken, gold_earned, creep_score,
    vision_score, wards_placed, wards_killed, early_takedowns, time_played)

side is '100' (blue) or '200' (red). document holds the original match JSON;
use json_extract(document, '$.gameVersion') for fields not projected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	report.PrintRows(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}


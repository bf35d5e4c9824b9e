package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/report"
	"github.com/pable/go-scrim-metrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		noMatches()
		return nil
	}
	report.PrintMatchList(os.Stdout, matches)
	fmt.Fprintf(os.Stdout, "\n(%d matches)\n", len(matches))
	return nil
}

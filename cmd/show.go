package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/normalize"
	"github.com/pable/go-scrim-metrics/internal/report"
	"github.com/pable/go-scrim-metrics/internal/storage"
)

var showPlayer string

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a stored match by ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showPlayer, "player", "", "highlight this player")
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	sm, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if sm == nil {
		fmt.Fprintf(os.Stderr, "No match found with ID prefix %q\n", prefix)
		return nil
	}

	m, err := normalize.DecodeMatch(sm.ID, sm.Body)
	if err != nil {
		return fmt.Errorf("decode match: %w", err)
	}
	report.PrintMatchHeader(os.Stdout, m)
	report.PrintMatch(os.Stdout, m, cfg.Calculator(), showPlayer)
	fmt.Fprintf(os.Stdout, "\nImported: %s  |  ID: %s\n", sm.ImportedAt, sm.ID)
	return nil
}

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/ingest"
	"github.com/pable/go-scrim-metrics/internal/model"
	"github.com/pable/go-scrim-metrics/internal/normalize"
	"github.com/pable/go-scrim-metrics/internal/report"
	"github.com/pable/go-scrim-metrics/internal/storage"
)

var (
	importShow  bool
	importFocus string
)

var importCmd = &cobra.Command{
	Use:   "import <match.json>...",
	Short: "Import match JSON files into the local store",
	Long: `Import one or more match JSON files. A file may hold a single match object
or an array of them. Matches whose content was already imported are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importShow, "show", false, "print each newly imported match")
	importCmd.Flags().StringVar(&importFocus, "player", "", "highlight this player when printing")
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	calc := cfg.Calculator()
	var total, inserted int
	for _, path := range args {
		matches, err := ingest.ParseFile(path)
		if err != nil {
			return err
		}
		total += len(matches)

		for _, sm := range matches {
			exists, err := db.MatchExists(sm.Hash)
			if err != nil {
				return fmt.Errorf("check match: %w", err)
			}
			if exists {
				fmt.Fprintf(os.Stdout, "%s: match %s already stored, skipping.\n", path, sm.Hash[:12])
				continue
			}
			n, err := db.AppendMatches([]model.StoredMatch{sm})
			if err != nil {
				return fmt.Errorf("append matches: %w", err)
			}
			inserted += n
			slog.Debug("imported match", "file", path, "id", sm.ID, "version", sm.GameVersion)

			if importShow {
				m, err := normalize.DecodeMatch(sm.ID, sm.Body)
				if err != nil {
					return fmt.Errorf("decode match: %w", err)
				}
				report.PrintMatchHeader(os.Stdout, m)
				report.PrintMatch(os.Stdout, m, calc, importFocus)
			}
		}
	}

	fmt.Fprintf(os.Stdout, "Imported %d of %d match(es) into %s\n", inserted, total, dbPath)
	return nil
}

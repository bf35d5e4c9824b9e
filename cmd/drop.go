package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/storage"
)

var (
	dropForce bool
	dropAll   bool
)

// dropCmd deletes one match, or the whole database with --all.
var dropCmd = &cobra.Command{
	Use:   "drop <id-prefix> | --all",
	Short: "Delete a stored match or the whole database",
	Long: `Delete a single stored match by ID prefix, or with --all permanently delete
the SQLite database. Both require --force.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if dropAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
	dropCmd.Flags().BoolVar(&dropAll, "all", false, "delete the entire database file")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if dropAll {
		return dropDatabase()
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	sm, err := db.GetMatchByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if sm == nil {
		fmt.Fprintf(os.Stderr, "No match found with ID prefix %q\n", args[0])
		return nil
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will delete match %s (version %s, imported %s).\n", sm.ID, sm.GameVersion, sm.ImportedAt)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if _, err := db.DeleteMatch(sm.ID); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted match %s\n", sm.ID)
	return nil
}

func dropDatabase() error {
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}

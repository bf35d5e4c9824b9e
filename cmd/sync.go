package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/remote"
	"github.com/pable/go-scrim-metrics/internal/storage"
)

var syncTimeout time.Duration

// syncCmd copies match documents between the local database and the remote
// S3/R2 bucket configured through SCRIM_S3_*.
var syncCmd = &cobra.Command{
	Use:   "sync pull|push",
	Short: "Sync matches with the remote S3/R2 bucket",
	Long: `pull downloads every remote match that is not stored locally.
push uploads every local match whose ID is not in the bucket yet.

The bucket is configured with SCRIM_S3_BUCKET, SCRIM_S3_PREFIX, SCRIM_S3_REGION,
SCRIM_S3_ENDPOINT (for R2 or MinIO), SCRIM_S3_ACCESS_KEY_ID and
SCRIM_S3_SECRET_ACCESS_KEY.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"pull", "push"},
	RunE:      runSync,
}

func init() {
	syncCmd.Flags().DurationVar(&syncTimeout, "timeout", 5*time.Minute, "overall timeout")
}

func runSync(cmd *cobra.Command, args []string) error {
	if !cfg.S3.Enabled() {
		return fmt.Errorf("remote store not configured: set SCRIM_S3_BUCKET")
	}
	dir := args[0]
	if dir != "pull" && dir != "push" {
		return fmt.Errorf("unknown direction %q (want pull or push)", dir)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), syncTimeout)
	defer cancel()

	store, err := remote.Open(ctx, cfg.S3)
	if err != nil {
		return fmt.Errorf("open remote: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if dir == "pull" {
		matches, err := store.FetchAllMatches(ctx)
		if err != nil {
			return fmt.Errorf("fetch remote matches: %w", err)
		}
		n, err := db.AppendMatches(matches)
		if err != nil {
			return fmt.Errorf("append matches: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Pulled %d new match(es) of %d remote.\n", n, len(matches))
		return nil
	}

	matches, err := db.FetchAllMatches()
	if err != nil {
		return fmt.Errorf("fetch local matches: %w", err)
	}
	n, err := store.AppendMatches(ctx, matches)
	if err != nil {
		return fmt.Errorf("push matches: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Pushed %d new match(es) of %d local.\n", n, len(matches))
	return nil
}

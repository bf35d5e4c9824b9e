package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pable/go-scrim-metrics/internal/aggregator"
	"github.com/pable/go-scrim-metrics/internal/model"
	"github.com/pable/go-scrim-metrics/internal/normalize"
	"github.com/pable/go-scrim-metrics/internal/storage"
)

// dataset is every stored match decoded once, plus the context index the
// metric calculators look games up in.
type dataset struct {
	matches []model.MatchRecord
	index   *normalize.MatchIndex
}

// loadDataset reads and decodes all stored matches. Documents that fail to
// decode are logged and skipped.
func loadDataset() (*dataset, error) {
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()
	return datasetFrom(db)
}

func datasetFrom(db *storage.DB) (*dataset, error) {
	stored, err := db.FetchAllMatches()
	if err != nil {
		return nil, fmt.Errorf("fetch matches: %w", err)
	}
	matches, errs := normalize.DecodeStored(stored)
	for _, e := range errs {
		slog.Warn("skipping undecodable match", "err", e)
	}
	slog.Debug("loaded matches", "count", len(matches), "skipped", len(errs))
	return &dataset{matches: matches, index: normalize.NewMatchIndex(matches)}, nil
}

// resolveBucket picks the version bucket a view should use: the flag value,
// then SCRIM_VERSION, then the newest bucket present. "all" disables filtering.
func (d *dataset) resolveBucket(flag string) string {
	v := flag
	if v == "" {
		v = cfg.Version
	}
	if v == "all" {
		return ""
	}
	if v != "" {
		if b, ok := normalize.VersionBucket(v); ok {
			return b
		}
		return v
	}
	buckets, _ := aggregator.VersionBuckets(d.matches)
	if len(buckets) > 0 {
		return buckets[0]
	}
	return ""
}

func bucketLabel(b string) string {
	if b == "" {
		return "all versions"
	}
	return "version " + b
}

func noMatches() {
	fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'scrimmetrics import <match.json>' to add one.")
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/aggregator"
	"github.com/pable/go-scrim-metrics/internal/report"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List game-version buckets present in stored matches",
	Args:  cobra.NoArgs,
	RunE:  runVersions,
}

func runVersions(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset()
	if err != nil {
		return err
	}
	if len(ds.matches) == 0 {
		noMatches()
		return nil
	}

	buckets, unbucketed := aggregator.VersionBuckets(ds.matches)
	counts := make(map[string]int, len(buckets))
	for _, b := range buckets {
		counts[b] = len(aggregator.FilterByVersionBucket(ds.matches, b))
	}
	report.PrintVersions(os.Stdout, buckets, counts, unbucketed)
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/aggregator"
	"github.com/pable/go-scrim-metrics/internal/report"
)

var objectivesVersion string

var objectivesCmd = &cobra.Command{
	Use:   "objectives",
	Short: "How often taking each objective coincided with winning",
	Args:  cobra.NoArgs,
	RunE:  runObjectives,
}

func init() {
	objectivesCmd.Flags().StringVar(&objectivesVersion, "version", "", "version bucket (default: $SCRIM_VERSION or newest; \"all\" for every match)")
}

func runObjectives(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset()
	if err != nil {
		return err
	}
	if len(ds.matches) == 0 {
		noMatches()
		return nil
	}
	bucket := ds.resolveBucket(objectivesVersion)

	stats := aggregator.ObjectiveStats(ds.matches, bucket)
	shares, total := aggregator.ObjectivePriority(ds.matches, bucket)

	fmt.Fprintf(os.Stdout, "\n=== Objectives  |  %s ===\n\n", bucketLabel(bucket))
	report.PrintObjectives(os.Stdout, stats, shares, total)
	return nil
}

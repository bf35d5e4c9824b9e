package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/aggregator"
	"github.com/pable/go-scrim-metrics/internal/model"
	"github.com/pable/go-scrim-metrics/internal/normalize"
	"github.com/pable/go-scrim-metrics/internal/report"
)

var positionVersion string

var positionCmd = &cobra.Command{
	Use:   "position <TOP|JUNGLE|MIDDLE|BOTTOM|SUPPORT>",
	Short: "Rank every player who played a position",
	Args:  cobra.ExactArgs(1),
	RunE:  runPosition,
}

func init() {
	positionCmd.Flags().StringVar(&positionVersion, "version", "", "version bucket (default: $SCRIM_VERSION or newest)")
}

func runPosition(cmd *cobra.Command, args []string) error {
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	ds, err := loadDataset()
	if err != nil {
		return err
	}
	if len(ds.matches) == 0 {
		noMatches()
		return nil
	}
	return printPosition(ds, pos, ds.resolveBucket(positionVersion))
}

// parsePosition accepts any casing and the UTILITY alias.
func parsePosition(s string) (model.Position, error) {
	pos := normalize.NormalizePosition(strings.ToUpper(s))
	if pos == model.PositionUnknown {
		return pos, fmt.Errorf("unknown position %q", s)
	}
	return pos, nil
}

// printPosition ranks every player seen at pos in bucket by KDA.
func printPosition(ds *dataset, pos model.Position, bucket string) error {
	scope := ds.matches
	if bucket != "" {
		scope = aggregator.FilterByVersionBucket(ds.matches, bucket)
	}
	participants := aggregator.Participants(scope)
	atPos := aggregator.GroupByPosition(participants)[pos]
	byPlayer := make(map[string][]model.ParticipantRecord)
	for _, p := range atPos {
		if p.Player != "" {
			byPlayer[p.Player] = append(byPlayer[p.Player], p)
		}
	}
	players := aggregator.PlayerIDs(byPlayer)
	if len(players) == 0 {
		fmt.Fprintf(os.Stdout, "No %s games in %s.\n", pos, bucketLabel(bucket))
		return nil
	}

	calc := cfg.Calculator()
	type entry struct {
		name string
		res  model.ComparisonResult
	}
	var entries []entry
	for _, name := range players {
		res, err := aggregator.ComparePosition(name, pos, participants, ds.index, calc)
		if err != nil {
			// A lone player has nobody to be ranked against.
			avg, aerr := aggregator.AverageMetrics(byPlayer[name], ds.index, calc)
			if aerr != nil {
				return fmt.Errorf("average %s: %w", name, aerr)
			}
			res = model.ComparisonResult{Position: pos, Player: avg}
		}
		entries = append(entries, entry{name, res})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].res.Player.KDA > entries[j].res.Player.KDA })

	names := make([]string, len(entries))
	results := make([]model.ComparisonResult, len(entries))
	for i, e := range entries {
		names[i], results[i] = e.name, e.res
	}
	fmt.Fprintf(os.Stdout, "\n=== %s  |  %s  |  %d players ===\n\n", pos, bucketLabel(bucket), len(players))
	report.PrintPositionBoard(os.Stdout, names, results)
	return nil
}

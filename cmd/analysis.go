package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pable/go-scrim-metrics/internal/aggregator"
	"github.com/pable/go-scrim-metrics/internal/model"
)

// playerAnalysis is everything the player, export and chart commands report
// for one player in one version bucket.
type playerAnalysis struct {
	Player      string                      `json:"player"`
	Bucket      string                      `json:"versionBucket,omitempty"`
	Position    model.Position              `json:"primaryPosition"`
	Metrics     model.AveragedMetrics       `json:"metrics"`
	Raw         model.RawAverages           `json:"rawAverages"`
	Comparison  *model.ComparisonResult     `json:"comparison,omitempty"`
	Form        *model.FormComparison       `json:"form,omitempty"`
	Champions   []model.ChampionPerformance `json:"champions"`
	Side        model.SidePreference        `json:"side"`
	Vision      model.VisionStyle           `json:"vision"`
	Objectives  model.ObjectiveEfficiency   `json:"objectives"`
	Suggestions []model.Suggestion          `json:"suggestions,omitempty"`

	games []model.DerivedMetrics
}

// errNoGames is returned when the player has no rows in the selected bucket.
var errNoGames = errors.New("no games found")

func analyzePlayer(ds *dataset, player, bucket string, window int) (*playerAnalysis, error) {
	rows := aggregator.ParticipantsFor(ds.matches, bucket, player)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s in %s: %w", player, bucketLabel(bucket), errNoGames)
	}
	calc := cfg.Calculator()

	a := &playerAnalysis{
		Player:     player,
		Bucket:     bucket,
		Position:   aggregator.PrimaryPosition(rows),
		games:      aggregator.Derive(rows, ds.index, calc),
		Champions:  aggregator.ChampionTrend(rows),
		Side:       aggregator.SidePreference(rows),
		Objectives: aggregator.ObjectiveEfficiency(rows),
	}

	var err error
	if a.Metrics, err = aggregator.AverageDerived(a.games); err != nil {
		return nil, fmt.Errorf("average metrics: %w", err)
	}
	if a.Raw, err = aggregator.RawAverages(rows); err != nil {
		return nil, fmt.Errorf("raw averages: %w", err)
	}
	if a.Vision, err = aggregator.VisionStyle(rows); err != nil {
		return nil, fmt.Errorf("vision style: %w", err)
	}
	if fc, err := aggregator.FormVsOverall(a.games, window); err == nil {
		a.Form = &fc
	}

	scope := ds.matches
	if bucket != "" {
		scope = aggregator.FilterByVersionBucket(ds.matches, bucket)
	}
	cmp, err := aggregator.ComparePosition(player, a.Position, aggregator.Participants(scope), ds.index, calc)
	switch {
	case err == nil:
		a.Comparison = &cmp
		a.Suggestions = aggregator.SuggestImprovements(cmp.Player, cmp.Cohort)
	case errors.Is(err, aggregator.ErrEmptyCohort):
		slog.Debug("no cohort to compare against", "player", player, "position", a.Position)
	default:
		return nil, fmt.Errorf("compare position: %w", err)
	}
	return a, nil
}

package aggregator

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pable/go-scrim-metrics/internal/metrics"
	"github.com/pable/go-scrim-metrics/internal/model"
)

// CohortValue is one game's value of a metric for one cohort member.
type CohortValue struct {
	Player string
	Value  float64
}

// PercentileRank places value among the cohort. Each cohort player is first
// reduced to their mean value; value is then inserted and the list sorted
// descending. Ties share the best rank. Total counts the distinct cohort
// players plus the target.
func PercentileRank(value float64, cohort []CohortValue) (model.Rank, error) {
	if len(cohort) == 0 {
		return model.Rank{}, ErrEmptyCohort
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, cv := range cohort {
		sums[cv.Player] += cv.Value
		counts[cv.Player]++
	}

	rank := 1
	for player, sum := range sums {
		if sum/float64(counts[player]) > value {
			rank++
		}
	}
	total := len(sums) + 1
	return model.Rank{
		Rank:       rank,
		Total:      total,
		Percentile: int(math.Round(float64(rank) / float64(total) * 100)),
	}, nil
}

var baseRankMetrics = []model.Metric{
	model.MetricKDA,
	model.MetricKillParticipation,
	model.MetricEarlyKillParticipation,
	model.MetricDamageEfficiency,
	model.MetricCSPerMinute,
	model.MetricVisionContribution,
}

// RankedMetrics lists the metrics ranked for a position.
func RankedMetrics(pos model.Position) []model.Metric {
	out := append([]model.Metric(nil), baseRankMetrics...)
	switch pos {
	case model.PositionTop, model.PositionMiddle, model.PositionBottom:
		out = append(out, model.MetricGoldEfficiency)
	case model.PositionJungle:
		out = append(out, model.MetricJungleCSPerMinute, model.MetricCounterJungleRate, model.MetricOwnJungleControl)
	case model.PositionSupport:
		out = append(out, model.MetricWardsPlaced, model.MetricWardsKilled)
	}
	return out
}

// ComparePosition compares player's games at pos against every other player's
// games at the same position. participants is usually one version bucket.
func ComparePosition(player string, pos model.Position, participants []model.ParticipantRecord, idx metrics.Contexter, calc metrics.Calculator) (model.ComparisonResult, error) {
	var mine, others []model.ParticipantRecord
	for _, p := range participants {
		if p.Position != pos {
			continue
		}
		if p.Player == player {
			mine = append(mine, p)
		} else {
			others = append(others, p)
		}
	}

	playerGames := Derive(mine, idx, calc)
	playerAvg, err := AverageDerived(playerGames)
	if err != nil {
		return model.ComparisonResult{}, fmt.Errorf("player %q at %s: %w", player, pos, err)
	}
	cohortGames := Derive(others, idx, calc)
	cohortAvg, err := AverageDerived(cohortGames)
	if err != nil {
		return model.ComparisonResult{}, fmt.Errorf("cohort at %s: %w", pos, err)
	}

	res := model.ComparisonResult{
		Position: pos,
		Player:   playerAvg,
		Cohort:   cohortAvg,
		Rankings: make(map[model.Metric]model.Rank),
	}
	players := make(map[string]bool)
	for _, p := range others {
		players[p.Player] = true
	}
	res.ComparedPlayers = len(players)

	for _, m := range RankedMetrics(pos) {
		value, ok := playerAvg.Value(m)
		if !ok {
			continue
		}
		var cohort []CohortValue
		for i, g := range cohortGames {
			if v, ok := g.Value(m); ok {
				cohort = append(cohort, CohortValue{Player: others[i].Player, Value: v})
			}
		}
		r, err := PercentileRank(value, cohort)
		if err != nil {
			continue
		}
		res.Rankings[m] = r
	}
	return res, nil
}

// FormVsOverall compares the last window games with the whole list. Games are
// taken in input order. Improvement is a percentage of the overall value, 0
// when the overall value is 0.
func FormVsOverall(games []model.DerivedMetrics, window int) (model.FormComparison, error) {
	if len(games) == 0 {
		return model.FormComparison{}, ErrEmptyCohort
	}
	if window <= 0 || window > len(games) {
		window = len(games)
	}
	recent := games[len(games)-window:]

	fc := model.FormComparison{
		Recent:      snapshot(recent),
		Overall:     snapshot(games),
		RecentGames: window,
		TotalGames:  len(games),
	}
	fc.Improvement = model.FormSnapshot{
		KDA:              improvement(fc.Recent.KDA, fc.Overall.KDA),
		DamageEfficiency: improvement(fc.Recent.DamageEfficiency, fc.Overall.DamageEfficiency),
		GoldEfficiency:   improvement(fc.Recent.GoldEfficiency, fc.Overall.GoldEfficiency),
		CSPerMinute:      improvement(fc.Recent.CSPerMinute, fc.Overall.CSPerMinute),
	}
	return fc, nil
}

func snapshot(games []model.DerivedMetrics) model.FormSnapshot {
	var s model.FormSnapshot
	for _, g := range games {
		s.KDA += g.KDA
		s.DamageEfficiency += g.DamageEfficiency
		s.GoldEfficiency += g.GoldEfficiency
		s.CSPerMinute += g.CSPerMinute
	}
	n := float64(len(games))
	s.KDA /= n
	s.DamageEfficiency /= n
	s.GoldEfficiency /= n
	s.CSPerMinute /= n
	return s
}

func improvement(recent, overall float64) float64 {
	if overall == 0 {
		return 0
	}
	return (recent - overall) / overall * 100
}

// ChampionTrend summarizes each champion a player has played, most played
// first. Champions with more than one game get a trend comparing the later half
// of their games with the earlier half (split at floor(n/2)).
func ChampionTrend(participants []model.ParticipantRecord) []model.ChampionPerformance {
	type game struct {
		kda float64
		win bool
	}
	byChamp := make(map[string][]game)
	var order []string
	for _, p := range participants {
		if p.Champion == "" || p.Champion == "Unknown" {
			continue
		}
		if _, ok := byChamp[p.Champion]; !ok {
			order = append(order, p.Champion)
		}
		byChamp[p.Champion] = append(byChamp[p.Champion], game{
			kda: metrics.KDA(p.Kills, p.Deaths, p.Assists),
			win: p.Win,
		})
	}

	winRate := func(gs []game) float64 {
		w := 0
		for _, g := range gs {
			if g.win {
				w++
			}
		}
		return float64(w) / float64(len(gs)) * 100
	}
	meanKDA := func(gs []game) float64 {
		xs := make([]float64, len(gs))
		for i, g := range gs {
			xs[i] = g.kda
		}
		return stat.Mean(xs, nil)
	}

	out := make([]model.ChampionPerformance, 0, len(order))
	for _, champ := range order {
		gs := byChamp[champ]
		cp := model.ChampionPerformance{
			Champion: champ,
			Games:    len(gs),
			WinRate:  winRate(gs),
			AvgKDA:   meanKDA(gs),
			KDAs:     make([]float64, len(gs)),
		}
		for i, g := range gs {
			cp.KDAs[i] = g.kda
			if g.win {
				cp.Wins++
			}
		}
		if len(gs) > 1 {
			half := len(gs) / 2
			early, late := gs[:half], gs[half:]
			cp.Trend = &model.ChampionTrendDelta{
				KDADelta:     meanKDA(late) - meanKDA(early),
				WinRateDelta: winRate(late) - winRate(early),
			}
		}
		out = append(out, cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Games > out[j].Games })
	return out
}

// SidePreference compares win rates on blue and red. Preferred is SideUnknown
// when the rates are equal.
func SidePreference(participants []model.ParticipantRecord) model.SidePreference {
	var sp model.SidePreference
	for _, p := range participants {
		var rec *model.SideRecord
		switch p.Side {
		case model.SideBlue:
			rec = &sp.Blue
		case model.SideRed:
			rec = &sp.Red
		default:
			continue
		}
		rec.Games++
		if p.Win {
			rec.Wins++
		}
	}
	for _, rec := range []*model.SideRecord{&sp.Blue, &sp.Red} {
		if rec.Games > 0 {
			rec.WinRate = float64(rec.Wins) / float64(rec.Games) * 100
		}
	}
	switch {
	case sp.Blue.WinRate > sp.Red.WinRate:
		sp.Preferred = model.SideBlue
	case sp.Red.WinRate > sp.Blue.WinRate:
		sp.Preferred = model.SideRed
	}
	sp.Difference = math.Abs(sp.Blue.WinRate - sp.Red.WinRate)
	return sp
}

// Vision style thresholds on the placed/killed ratio.
const (
	defensiveVisionRatio  = 2.0
	aggressiveVisionRatio = 0.5
)

// VisionStyle classifies a player's warding. A player who never cleared a
// ward is measured against a single clear.
func VisionStyle(participants []model.ParticipantRecord) (model.VisionStyle, error) {
	if len(participants) == 0 {
		return model.VisionStyle{}, ErrEmptyCohort
	}
	var placed, killed float64
	for _, p := range participants {
		placed += float64(p.WardsPlaced)
		killed += float64(p.WardsKilled)
	}
	n := float64(len(participants))
	vs := model.VisionStyle{
		AvgWardsPlaced: placed / n,
		AvgWardsKilled: killed / n,
		Style:          model.VisionBalanced,
	}
	denom := vs.AvgWardsKilled
	if denom == 0 {
		denom = 1
	}
	vs.Ratio = vs.AvgWardsPlaced / denom
	switch {
	case vs.Ratio > defensiveVisionRatio:
		vs.Style = model.VisionDefensive
	case vs.Ratio < aggressiveVisionRatio:
		vs.Style = model.VisionAggressive
	}
	return vs, nil
}

// Jungle thresholds below which a jungler gets a suggestion.
const (
	minCounterJungleRate = 10.0
	minJungleCSPerMinute = 4.0
)

// SuggestImprovements lists the areas where player falls below the cohort.
func SuggestImprovements(player, cohort model.AveragedMetrics) []model.Suggestion {
	var out []model.Suggestion
	if player.KDA < cohort.KDA {
		out = append(out, model.Suggestion{
			Category: "survival",
			Issue:    fmt.Sprintf("KDA %.2f is below the position average %.2f", player.KDA, cohort.KDA),
			Advice:   "die less and join more fights",
		})
	}
	if player.DamageEfficiency < cohort.DamageEfficiency {
		out = append(out, model.Suggestion{
			Category: "damage",
			Issue:    fmt.Sprintf("damage efficiency %.2f is below the position average %.2f", player.DamageEfficiency, cohort.DamageEfficiency),
			Advice:   "deal more damage while taking less",
		})
	}
	if player.GoldEfficiency < cohort.GoldEfficiency {
		out = append(out, model.Suggestion{
			Category: "gold",
			Issue:    fmt.Sprintf("gold efficiency %.2f is below the position average %.2f", player.GoldEfficiency, cohort.GoldEfficiency),
			Advice:   "review item builds and convert gold into damage",
		})
	}
	if player.CSPerMinute < cohort.CSPerMinute {
		out = append(out, model.Suggestion{
			Category: "farming",
			Issue:    fmt.Sprintf("CS/min %.2f is below the position average %.2f", player.CSPerMinute, cohort.CSPerMinute),
			Advice:   "improve wave clear and farm between fights",
		})
	}
	if j := player.Jungle; j != nil {
		if j.CounterJungleRate < minCounterJungleRate {
			out = append(out, model.Suggestion{
				Category: "jungle control",
				Issue:    fmt.Sprintf("counter-jungle rate %.1f%% is low", j.CounterJungleRate),
				Advice:   "track the enemy jungler and take their camps when safe",
			})
		}
		if j.CSPerMinute < minJungleCSPerMinute {
			out = append(out, model.Suggestion{
				Category: "jungle farming",
				Issue:    fmt.Sprintf("jungle CS/min %.2f is low", j.CSPerMinute),
				Advice:   "tighten clear paths",
			})
		}
	}
	return out
}

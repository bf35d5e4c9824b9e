package aggregator

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-scrim-metrics/internal/metrics"
	"github.com/pable/go-scrim-metrics/internal/model"
	"github.com/pable/go-scrim-metrics/internal/normalize"
)

// row builds a participant with the fields most tests care about.
func row(match, player string, side model.Side, pos model.Position, k, d, a int, win bool) model.ParticipantRecord {
	return model.ParticipantRecord{
		MatchID: match, Player: player, Side: side, Position: pos,
		Kills: k, Deaths: d, Assists: a, Win: win, TimePlayed: 1800,
	}
}

// match stamps participants with the match ID, version and bucket.
func match(id, version string, ps ...model.ParticipantRecord) model.MatchRecord {
	bucket, _ := normalize.VersionBucket(version)
	for i := range ps {
		ps[i].MatchID = id
		ps[i].Version = version
		ps[i].Bucket = bucket
	}
	return model.MatchRecord{ID: id, Version: version, Participants: ps}
}

func calc() metrics.Calculator { return metrics.NewCalculator(metrics.Fallbacks{}) }

// ---- Grouping ----

func TestGroupByPlayer(t *testing.T) {
	matches := []model.MatchRecord{
		match("m1", "15.12.1", row("", "alice", model.SideBlue, model.PositionMiddle, 1, 1, 1, true),
			row("", "", model.SideRed, model.PositionTop, 0, 0, 0, false)),
		match("m2", "15.13.1", row("", "alice", model.SideRed, model.PositionMiddle, 2, 2, 2, false),
			row("", "bob", model.SideBlue, model.PositionTop, 0, 0, 0, true)),
	}
	groups := GroupByPlayer(matches)

	assert.Equal(t, []string{"alice", "bob"}, PlayerIDs(groups))
	require.Len(t, groups["alice"], 2)
	assert.Equal(t, "15.12", groups["alice"][0].Bucket)
	assert.Equal(t, "15.13", groups["alice"][1].Bucket)
}

func TestFilterByVersionBucket(t *testing.T) {
	matches := []model.MatchRecord{
		match("a", "15.12.100.200"),
		match("b", "15.1.2"),
		match("c", "15"),
		match("d", "15.12"),
	}
	got := FilterByVersionBucket(matches, "15.12")
	ids := []string{}
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"a", "d"}, ids)
	assert.Empty(t, FilterByVersionBucket(matches, "15.1.2"))
}

func TestGroupByPosition(t *testing.T) {
	ps := []model.ParticipantRecord{
		{Position: model.PositionTop},
		{Position: model.PositionUnknown},
		{},
	}
	groups := GroupByPosition(ps)
	assert.Len(t, groups[model.PositionTop], 1)
	assert.Len(t, groups[model.PositionUnknown], 2)
}

func TestVersionBuckets(t *testing.T) {
	matches := []model.MatchRecord{
		match("a", "15.9.1"),
		match("b", "15.12.1"),
		match("c", "14.24.3"),
		match("d", "15.12.7"),
		match("e", "garbage"),
		match("f", ""),
	}
	buckets, unbucketed := VersionBuckets(matches)
	assert.Equal(t, []string{"15.12", "15.9", "14.24"}, buckets)
	assert.Equal(t, 2, unbucketed)
}

func TestParticipantsFor(t *testing.T) {
	matches := []model.MatchRecord{
		match("m1", "15.12.1", row("", "alice", model.SideBlue, model.PositionMiddle, 1, 1, 1, true)),
		match("m2", "15.13.1", row("", "alice", model.SideBlue, model.PositionMiddle, 1, 1, 1, true)),
		match("m3", "x", row("", "alice", model.SideBlue, model.PositionMiddle, 1, 1, 1, true)),
	}
	assert.Len(t, ParticipantsFor(matches, "15.12", "alice"), 1)
	assert.Len(t, ParticipantsFor(matches, "", "alice"), 3)
	assert.Empty(t, ParticipantsFor(matches, "15.12", "nobody"))
}

func TestPrimaryPosition(t *testing.T) {
	rows := []model.ParticipantRecord{
		{Position: model.PositionSupport}, {Position: model.PositionTop},
		{Position: model.PositionSupport}, {Position: model.PositionTop},
	}
	assert.Equal(t, model.PositionTop, PrimaryPosition(rows))
	assert.Equal(t, model.PositionUnknown, PrimaryPosition([]model.ParticipantRecord{{Position: model.PositionUnknown}}))
}

// ---- Averaging ----

func TestAverageMetrics_EndToEnd(t *testing.T) {
	matches := []model.MatchRecord{
		match("m1", "15.12.1",
			row("", "alice", model.SideBlue, model.PositionMiddle, 10, 2, 5, true),
			row("", "bob", model.SideBlue, model.PositionTop, 5, 3, 10, true),
			row("", "eve", model.SideRed, model.PositionMiddle, 2, 6, 1, false)),
		match("m2", "15.12.4",
			row("", "alice", model.SideRed, model.PositionMiddle, 3, 2, 3, false),
			row("", "eve", model.SideBlue, model.PositionMiddle, 4, 1, 2, true),
			row("", "mallory", model.SideRed, model.PositionJungle, 0, 2, 6, false)),
		match("m3", "15.13.1",
			row("", "alice", model.SideBlue, model.PositionMiddle, 0, 10, 0, false)),
	}
	idx := normalize.NewMatchIndex(matches)
	alice := ParticipantsFor(matches, "15.12", "alice")

	avg, err := AverageMetrics(alice, idx, calc())
	require.NoError(t, err)
	assert.Equal(t, 2, avg.Games)
	assert.InDelta(t, 5.25, avg.KDA, 1e-9) // (7.5 + 3.0) / 2
	// KP: 15/30 in m1, 6/12 in m2.
	assert.InDelta(t, 50, avg.KillParticipation, 1e-9)
	assert.Zero(t, avg.EstimatedGames)
	assert.Nil(t, avg.Jungle)
	assert.Nil(t, avg.Support)
}

func TestAverageMetrics_Empty(t *testing.T) {
	_, err := AverageMetrics(nil, nil, calc())
	assert.ErrorIs(t, err, ErrEmptyCohort)
	_, err = RawAverages(nil)
	assert.ErrorIs(t, err, ErrEmptyCohort)
}

func TestAverageMetrics_RoleExtrasOnlyOverRoleRows(t *testing.T) {
	ps := []model.ParticipantRecord{
		{Position: model.PositionJungle, JungleCS: 100, EnemyJungleCS: 20, TimePlayed: 1500},
		{Position: model.PositionJungle, JungleCS: 0, TimePlayed: 1500},
		{Position: model.PositionTop},
	}
	avg, err := AverageMetrics(ps, nil, calc())
	require.NoError(t, err)
	require.NotNil(t, avg.Jungle)
	assert.Equal(t, 2, avg.Jungle.Games)
	assert.InDelta(t, 2, avg.Jungle.CSPerMinute, 1e-9)
	assert.InDelta(t, 10, avg.Jungle.CounterJungleRate, 1e-9)
	assert.Equal(t, 1, avg.Jungle.Invasions)
	assert.Equal(t, 3, avg.EstimatedGames)
}

func TestRawAverages(t *testing.T) {
	ps := []model.ParticipantRecord{
		{Kills: 2, Deaths: 4, GoldEarned: 10000, WardsPlaced: 10},
		{Kills: 4, Deaths: 0, GoldEarned: 12000, WardsPlaced: 20},
	}
	r, err := RawAverages(ps)
	require.NoError(t, err)
	want := model.RawAverages{Games: 2, Kills: 3, Deaths: 2, GoldEarned: 11000, WardsPlaced: 15}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("RawAverages mismatch (-want +got):\n%s", diff)
	}
}

// ---- Ranking ----

func TestPercentileRank(t *testing.T) {
	cohort := []CohortValue{
		{"bob", 4}, {"bob", 6}, // mean 5
		{"eve", 3},
		{"mallory", 8},
	}
	r, err := PercentileRank(6, cohort)
	require.NoError(t, err)
	assert.Equal(t, model.Rank{Rank: 2, Total: 4, Percentile: 50}, r)
	assert.Equal(t, "Top 50%", r.Label())

	r, err = PercentileRank(100, cohort)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Rank)
	assert.Equal(t, 25, r.Percentile)

	// Ties share the best rank.
	r, err = PercentileRank(5, cohort)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Rank)

	_, err = PercentileRank(1, nil)
	assert.ErrorIs(t, err, ErrEmptyCohort)
}

func TestPercentileRank_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.Intn(12)
		var cohort []CohortValue
		maxMean := -1.0
		for i := 0; i < n; i++ {
			v := rng.Float64() * 10
			cohort = append(cohort, CohortValue{Player: string(rune('a' + i)), Value: v})
			if v > maxMean {
				maxMean = v
			}
		}
		value := rng.Float64() * 10

		r, err := PercentileRank(value, cohort)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, r.Rank, 1)
		assert.LessOrEqual(t, r.Rank, n+1)
		assert.Equal(t, n+1, r.Total)

		again, _ := PercentileRank(value, cohort)
		assert.Equal(t, r, again)

		best, _ := PercentileRank(maxMean+1, cohort)
		assert.Equal(t, 1, best.Rank)
	}
}

func TestComparePosition(t *testing.T) {
	matches := []model.MatchRecord{
		match("m1", "15.12.1",
			row("", "alice", model.SideBlue, model.PositionMiddle, 10, 2, 5, true),
			row("", "eve", model.SideRed, model.PositionMiddle, 2, 6, 1, false)),
		match("m2", "15.12.2",
			row("", "alice", model.SideBlue, model.PositionMiddle, 4, 4, 4, true),
			row("", "mallory", model.SideRed, model.PositionMiddle, 1, 1, 1, false)),
	}
	idx := normalize.NewMatchIndex(matches)
	all := Participants(matches)

	res, err := ComparePosition("alice", model.PositionMiddle, all, idx, calc())
	require.NoError(t, err)
	assert.Equal(t, 2, res.ComparedPlayers)
	assert.Equal(t, 2, res.Player.Games)
	assert.Equal(t, 2, res.Cohort.Games)
	kda := res.Rankings[model.MetricKDA]
	assert.Equal(t, model.Rank{Rank: 1, Total: 3, Percentile: 33}, kda)
	assert.Contains(t, res.Rankings, model.MetricGoldEfficiency)
	assert.NotContains(t, res.Rankings, model.MetricWardsPlaced)

	_, err = ComparePosition("alice", model.PositionSupport, all, idx, calc())
	assert.ErrorIs(t, err, ErrEmptyCohort)

	solo := []model.ParticipantRecord{row("m1", "alice", model.SideBlue, model.PositionTop, 1, 1, 1, true)}
	_, err = ComparePosition("alice", model.PositionTop, solo, nil, calc())
	assert.ErrorIs(t, err, ErrEmptyCohort)
}

func TestRankedMetrics(t *testing.T) {
	assert.Contains(t, RankedMetrics(model.PositionJungle), model.MetricCounterJungleRate)
	assert.NotContains(t, RankedMetrics(model.PositionJungle), model.MetricGoldEfficiency)
	assert.Contains(t, RankedMetrics(model.PositionSupport), model.MetricWardsKilled)
	assert.Contains(t, RankedMetrics(model.PositionBottom), model.MetricGoldEfficiency)
}

// ---- Form, champions, sides ----

func TestFormVsOverall(t *testing.T) {
	games := []model.DerivedMetrics{{KDA: 1}, {KDA: 2}, {KDA: 3}, {KDA: 6}}
	fc, err := FormVsOverall(games, 2)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, fc.Recent.KDA, 1e-9)
	assert.InDelta(t, 3, fc.Overall.KDA, 1e-9)
	assert.InDelta(t, 50, fc.Improvement.KDA, 1e-9)
	assert.Zero(t, fc.Improvement.CSPerMinute, "overall 0 gives 0 improvement")
	assert.Equal(t, 2, fc.RecentGames)

	fc, err = FormVsOverall(games, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, fc.RecentGames)
	assert.Zero(t, fc.Improvement.KDA)

	_, err = FormVsOverall(nil, 5)
	assert.ErrorIs(t, err, ErrEmptyCohort)
}

func TestChampionTrend(t *testing.T) {
	ps := []model.ParticipantRecord{
		{Champion: "Ahri", Kills: 1, Deaths: 1, Win: false},
		{Champion: "Unknown", Kills: 9},
		{Champion: "Ahri", Kills: 3, Deaths: 1, Win: true},
		{Champion: "Zed", Kills: 2, Deaths: 1, Win: true},
		{Champion: "Ahri", Kills: 5, Deaths: 1, Win: true},
	}
	got := ChampionTrend(ps)
	require.Len(t, got, 2)

	ahri := got[0]
	assert.Equal(t, "Ahri", ahri.Champion)
	assert.Equal(t, 3, ahri.Games)
	assert.Equal(t, 2, ahri.Wins)
	assert.InDelta(t, 3, ahri.AvgKDA, 1e-9)
	require.NotNil(t, ahri.Trend)
	// early = [1], late = [3, 5]
	assert.InDelta(t, 3, ahri.Trend.KDADelta, 1e-9)
	assert.InDelta(t, 100, ahri.Trend.WinRateDelta, 1e-9)

	assert.Equal(t, "Zed", got[1].Champion)
	assert.Nil(t, got[1].Trend)
}

func TestSidePreference(t *testing.T) {
	ps := []model.ParticipantRecord{
		{Side: model.SideBlue, Win: true},
		{Side: model.SideBlue, Win: true},
		{Side: model.SideBlue, Win: false},
		{Side: model.SideRed, Win: false},
	}
	sp := SidePreference(ps)
	assert.InDelta(t, 66.7, sp.Blue.WinRate, 0.05)
	assert.Zero(t, sp.Red.WinRate)
	assert.Equal(t, model.SideBlue, sp.Preferred)
	assert.InDelta(t, 66.7, sp.Difference, 0.05)

	tie := SidePreference([]model.ParticipantRecord{{Side: model.SideBlue, Win: true}, {Side: model.SideRed, Win: true}})
	assert.Equal(t, model.SideUnknown, tie.Preferred)
	assert.Zero(t, tie.Difference)
}

func TestVisionStyle(t *testing.T) {
	vs, err := VisionStyle([]model.ParticipantRecord{{WardsPlaced: 30, WardsKilled: 5}})
	require.NoError(t, err)
	assert.Equal(t, model.VisionDefensive, vs.Style)
	assert.InDelta(t, 6, vs.Ratio, 1e-9)

	vs, _ = VisionStyle([]model.ParticipantRecord{{WardsPlaced: 2, WardsKilled: 10}})
	assert.Equal(t, model.VisionAggressive, vs.Style)

	vs, _ = VisionStyle([]model.ParticipantRecord{{WardsPlaced: 2, WardsKilled: 0}})
	assert.InDelta(t, 2, vs.Ratio, 1e-9)
	assert.Equal(t, model.VisionBalanced, vs.Style)

	_, err = VisionStyle(nil)
	assert.ErrorIs(t, err, ErrEmptyCohort)
}

func TestSuggestImprovements(t *testing.T) {
	player := model.AveragedMetrics{KDA: 2, DamageEfficiency: 2, GoldEfficiency: 1, CSPerMinute: 5,
		Jungle: &model.JungleAverages{CounterJungleRate: 5, CSPerMinute: 4.5}}
	cohort := model.AveragedMetrics{KDA: 3, DamageEfficiency: 1, GoldEfficiency: 1, CSPerMinute: 6}

	var cats []string
	for _, s := range SuggestImprovements(player, cohort) {
		cats = append(cats, s.Category)
	}
	assert.Equal(t, []string{"survival", "farming", "jungle control"}, cats)
	assert.Empty(t, SuggestImprovements(cohort, cohort))
}

// ---- Objectives ----

func objRow(side model.Side, win bool, dragons, barons int) model.ParticipantRecord {
	return model.ParticipantRecord{Side: side, Win: win, DragonKills: dragons, BaronKills: barons}
}

func TestObjectiveStats(t *testing.T) {
	matches := []model.MatchRecord{
		// Blue takes more dragons and wins.
		match("m1", "15.12.1", objRow(model.SideBlue, true, 2, 0), objRow(model.SideBlue, true, 1, 0),
			objRow(model.SideRed, false, 1, 0)),
		// Tie on dragons: counted as a game, never a win.
		match("m2", "15.12.1", objRow(model.SideBlue, false, 1, 0), objRow(model.SideRed, true, 1, 1)),
		// Missing red side: skipped.
		match("m3", "15.12.1", objRow(model.SideBlue, true, 5, 5)),
		// Other bucket.
		match("m4", "15.13.1", objRow(model.SideBlue, true, 5, 0), objRow(model.SideRed, false, 0, 0)),
	}
	stats := ObjectiveStats(matches, "15.12")

	assert.Equal(t, model.ObjectiveRecord{Games: 2, Wins: 1, WinRate: 50}, stats[model.ObjectiveDragon])
	assert.Equal(t, model.ObjectiveRecord{Games: 1, Wins: 1, WinRate: 100}, stats[model.ObjectiveBaron])
	assert.Equal(t, model.ObjectiveRecord{}, stats[model.ObjectiveHerald])
	assert.Len(t, stats, 4)
}

func TestObjectivePriority(t *testing.T) {
	matches := []model.MatchRecord{
		match("m1", "15.12.1", objRow(model.SideBlue, true, 3, 1), objRow(model.SideRed, false, 0, 0)),
	}
	shares, total := ObjectivePriority(matches, "15.12")
	assert.Equal(t, 4, total)
	require.Len(t, shares, 4)
	assert.Equal(t, model.ObjectiveDragon, shares[0].Objective)
	assert.InDelta(t, 75, shares[0].Share, 1e-9)
	assert.Equal(t, model.ObjectiveBaron, shares[1].Objective)

	_, total = ObjectivePriority(matches, "99.1")
	assert.Zero(t, total)
}

func TestObjectiveEfficiency(t *testing.T) {
	eff := ObjectiveEfficiency([]model.ParticipantRecord{
		objRow(model.SideBlue, true, 2, 1),
		objRow(model.SideBlue, false, 1, 0),
	})
	assert.InDelta(t, 2, eff.AvgObjectivesPerGame, 1e-9)
	assert.InDelta(t, 50, eff.WinRate, 1e-9)
	assert.Equal(t, model.ObjectiveEfficiency{}, ObjectiveEfficiency(nil))
}

// ---- Team ----

func TestTeamStatsByVersion(t *testing.T) {
	blueWin := match("m1", "15.12.1",
		model.ParticipantRecord{Player: "stranger", Side: model.SideRed, DragonKills: 4},
		model.ParticipantRecord{Player: "alice", Side: model.SideBlue, Win: true, DragonKills: 2, TurretsKilled: 3},
		model.ParticipantRecord{Player: "bob", Side: model.SideBlue, Win: true, BaronKills: 1, TurretsKilled: 2},
	)
	redLoss := match("m2", "15.12.3",
		model.ParticipantRecord{Player: "bob", Side: model.SideRed, TurretsLost: 5},
	)
	noRoster := match("m3", "15.12.3", model.ParticipantRecord{Player: "x", Side: model.SideBlue, Win: true})
	badVersion := match("m4", "15", model.ParticipantRecord{Player: "alice", Side: model.SideBlue, Win: true})

	stats := TeamStatsByVersion([]model.MatchRecord{blueWin, redLoss, noRoster, badVersion}, []string{"alice", "bob"})
	require.Len(t, stats, 1)
	s := stats["15.12"]

	assert.Equal(t, model.TeamTotals{Games: 1, Wins: 1, BaronKills: 1, DragonKills: 2, TurretsKilled: 5, WinRate: 100}, s.Blue)
	assert.Equal(t, model.TeamTotals{Games: 1, TurretsLost: 5}, s.Red)
	assert.Equal(t, "100.00%", s.Blue.WinRateLabel())
	assert.Equal(t, "0.00%", s.Red.WinRateLabel())
	assert.Equal(t, "0%", model.TeamTotals{}.WinRateLabel())

	for _, vs := range stats {
		assert.LessOrEqual(t, vs.Blue.Wins, vs.Blue.Games)
		assert.LessOrEqual(t, vs.Red.Wins, vs.Red.Games)
	}
}

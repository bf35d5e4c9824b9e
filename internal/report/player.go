package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/pable/go-scrim-metrics/internal/model"
)

// PrintPlayerMetrics prints a player's averaged derived metrics.
func PrintPlayerMetrics(w io.Writer, player string, avg model.AveragedMetrics) {
	table := newTable(w)
	table.Header("PLAYER", "GAMES", "KDA", "KP%", "EARLY_KP%", "DMG_EFF", "GOLD_EFF", "CS/M", "VIS%", "SAMPLE")
	table.Append(
		player,
		strconv.Itoa(avg.Games),
		fmt.Sprintf("%.2f", avg.KDA),
		estimated(avg.KillParticipation, avg.EstimatedGames),
		estimated(avg.EarlyKillParticipation, avg.EstimatedGames),
		damageEff(avg.DamageEfficiency),
		fmt.Sprintf("%.2f", avg.GoldEfficiency),
		fmt.Sprintf("%.1f", avg.CSPerMinute),
		fmt.Sprintf("%.0f", avg.VisionContribution),
		sampleFlag(avg.Games),
	)
	table.Render()
	if avg.EstimatedGames > 0 {
		fmt.Fprintf(w, "* %d game(s) used fallback team totals for kill participation.\n", avg.EstimatedGames)
	}

	if j := avg.Jungle; j != nil {
		jt := newTable(w)
		jt.Header("JUNGLE GAMES", "JG CS/M", "COUNTER_JG%", "OWN_JG%", "INVADES")
		jt.Append(strconv.Itoa(j.Games), fmt.Sprintf("%.1f", j.CSPerMinute),
			fmt.Sprintf("%.1f", j.CounterJungleRate), fmt.Sprintf("%.1f", j.OwnJungleControl),
			strconv.Itoa(j.Invasions))
		jt.Render()
	}
	if s := avg.Support; s != nil {
		st := newTable(w)
		st.Header("SUPPORT GAMES", "WARDS_PLACED", "WARDS_KILLED")
		st.Append(strconv.Itoa(s.Games), fmt.Sprintf("%.1f", s.WardsPlaced), fmt.Sprintf("%.1f", s.WardsKilled))
		st.Render()
	}
}

func estimated(v float64, n int) string {
	if n > 0 {
		return fmt.Sprintf("%.1f*", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// PrintRawAverages prints per-player averages of the raw box-score fields.
func PrintRawAverages(w io.Writer, rows map[string]model.RawAverages) {
	names := make([]string, 0, len(rows))
	for n := range rows {
		names = append(names, n)
	}
	sort.Strings(names)

	table := newTable(w)
	table.Header("PLAYER", "GAMES", "K", "D", "A", "CS", "GOLD", "DMG", "TAKEN", "VISION", "CTRL_WARDS", "WARDS_K", "WARDS_P", "EARLY_TD")
	for _, n := range names {
		r := rows[n]
		table.Append(
			n,
			strconv.Itoa(r.Games),
			fmt.Sprintf("%.1f", r.Kills),
			fmt.Sprintf("%.1f", r.Deaths),
			fmt.Sprintf("%.1f", r.Assists),
			fmt.Sprintf("%.0f", r.CreepScore),
			fmt.Sprintf("%.0f", r.GoldEarned),
			fmt.Sprintf("%.0f", r.DamageDealt),
			fmt.Sprintf("%.0f", r.DamageTaken),
			fmt.Sprintf("%.1f", r.VisionScore),
			fmt.Sprintf("%.1f", r.ControlWardsBought),
			fmt.Sprintf("%.1f", r.WardsKilled),
			fmt.Sprintf("%.1f", r.WardsPlaced),
			fmt.Sprintf("%.1f", r.EarlyTakedowns),
		)
	}
	table.Render()
}

// PrintComparison prints a player's averages next to the cohort's with ranks.
func PrintComparison(w io.Writer, res model.ComparisonResult) {
	fmt.Fprintf(w, "\nPosition: %s  |  Compared players: %d  |  Cohort games: %d\n\n",
		res.Position, res.ComparedPlayers, res.Cohort.Games)

	ms := make([]model.Metric, 0, len(res.Rankings))
	for m := range res.Rankings {
		ms = append(ms, m)
	}
	sort.Slice(ms, func(i, j int) bool { return ms[i] < ms[j] })

	table := newTable(w)
	table.Header("METRIC", "PLAYER", "COHORT", "RANK", "STANDING")
	for _, m := range ms {
		pv, _ := res.Player.Value(m)
		cv, _ := res.Cohort.Value(m)
		r := res.Rankings[m]
		table.Append(string(m), fmt.Sprintf("%.2f", pv), fmt.Sprintf("%.2f", cv),
			fmt.Sprintf("%d/%d", r.Rank, r.Total), r.Label())
	}
	table.Render()
}

// PrintForm prints recent form against the overall average.
func PrintForm(w io.Writer, fc model.FormComparison) {
	table := newTable(w)
	table.Header("METRIC", fmt.Sprintf("LAST %d", fc.RecentGames), fmt.Sprintf("ALL %d", fc.TotalGames), "CHANGE")
	rows := []struct {
		name                 string
		recent, overall, imp float64
	}{
		{"KDA", fc.Recent.KDA, fc.Overall.KDA, fc.Improvement.KDA},
		{"DMG_EFF", fc.Recent.DamageEfficiency, fc.Overall.DamageEfficiency, fc.Improvement.DamageEfficiency},
		{"GOLD_EFF", fc.Recent.GoldEfficiency, fc.Overall.GoldEfficiency, fc.Improvement.GoldEfficiency},
		{"CS/M", fc.Recent.CSPerMinute, fc.Overall.CSPerMinute, fc.Improvement.CSPerMinute},
	}
	for _, r := range rows {
		table.Append(r.name, fmt.Sprintf("%.2f", r.recent), fmt.Sprintf("%.2f", r.overall), signed(r.imp, "%"))
	}
	table.Render()
}

// PrintChampions prints per-champion results with a trend where available.
func PrintChampions(w io.Writer, champs []model.ChampionPerformance) {
	table := newTable(w)
	table.Header("CHAMPION", "GAMES", "WIN%", "AVG_KDA", "KDA_TREND", "WIN_TREND")
	for _, c := range champs {
		kdaTrend, winTrend := "—", "—"
		if c.Trend != nil {
			kdaTrend = fmt.Sprintf("%+.2f", c.Trend.KDADelta)
			winTrend = signed(c.Trend.WinRateDelta, "pp")
		}
		table.Append(c.Champion, strconv.Itoa(c.Games), winRateCell(c.Wins, c.Games, c.WinRate),
			fmt.Sprintf("%.2f", c.AvgKDA), kdaTrend, winTrend)
	}
	table.Render()
}

// PrintSideAndVision prints side preference and warding style together.
func PrintSideAndVision(w io.Writer, sp model.SidePreference, vs model.VisionStyle, eff model.ObjectiveEfficiency) {
	preferred := "none"
	if sp.Preferred != model.SideUnknown {
		preferred = sp.Preferred.String()
	}
	table := newTable(w)
	table.Header("BLUE", "RED", "PREFERRED", "GAP", "VISION", "PLACED/KILLED", "OBJ/GAME")
	table.Append(
		winRateCell(sp.Blue.Wins, sp.Blue.Games, sp.Blue.WinRate),
		winRateCell(sp.Red.Wins, sp.Red.Games, sp.Red.WinRate),
		preferred,
		fmt.Sprintf("%.1fpp", sp.Difference),
		string(vs.Style),
		fmt.Sprintf("%.1f/%.1f", vs.AvgWardsPlaced, vs.AvgWardsKilled),
		fmt.Sprintf("%.1f", eff.AvgObjectivesPerGame),
	)
	table.Render()
}

// PrintSuggestions prints improvement hints, or nothing when there are none.
func PrintSuggestions(w io.Writer, suggestions []model.Suggestion) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintln(w, "\nSuggestions:")
	for _, s := range suggestions {
		fmt.Fprintf(w, "  [%s] %s: %s\n", s.Category, s.Issue, s.Advice)
	}
}

// PrintPositionBoard prints one row per player at a position, each ranked
// against the rest of the position.
func PrintPositionBoard(w io.Writer, players []string, results []model.ComparisonResult) {
	table := newTable(w)
	table.Header("PLAYER", "GAMES", "KDA", "KP%", "DMG_EFF", "CS/M", "VIS%", "KDA RANK", "KP RANK", "SAMPLE")
	for i, res := range results {
		p := res.Player
		table.Append(
			players[i],
			strconv.Itoa(p.Games),
			fmt.Sprintf("%.2f", p.KDA),
			estimated(p.KillParticipation, p.EstimatedGames),
			damageEff(p.DamageEfficiency),
			fmt.Sprintf("%.1f", p.CSPerMinute),
			fmt.Sprintf("%.0f", p.VisionContribution),
			rankCell(res.Rankings, model.MetricKDA),
			rankCell(res.Rankings, model.MetricKillParticipation),
			sampleFlag(p.Games),
		)
	}
	table.Render()
}

func rankCell(ranks map[model.Metric]model.Rank, m model.Metric) string {
	r, ok := ranks[m]
	if !ok {
		return "—"
	}
	return fmt.Sprintf("%d/%d", r.Rank, r.Total)
}

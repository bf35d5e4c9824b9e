package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-scrim-metrics/internal/metrics"
	"github.com/pable/go-scrim-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintMatchList prints one row per stored match.
func PrintMatchList(w io.Writer, matches []model.MatchSummary) {
	table := newTable(w)
	table.Header("ID", "VERSION", "BUCKET", "PLAYERS", "IMPORTED")
	for _, m := range matches {
		bucket := m.Bucket
		if bucket == "" {
			bucket = "—"
		}
		table.Append(shortID(m.ID), m.GameVersion, bucket, strconv.Itoa(m.Participants), m.ImportedAt)
	}
	table.Render()
}

// PrintMatchHeader prints a one-line summary header for a match.
func PrintMatchHeader(w io.Writer, m model.MatchRecord) {
	var blueWon bool
	for _, p := range m.Participants {
		if p.Side == model.SideBlue && p.Win {
			blueWon = true
		}
	}
	winner := model.SideRed
	if blueWon {
		winner = model.SideBlue
	}
	fmt.Fprintf(w, "\nMatch: %s  |  Version: %s  |  Winner: %s  |  Players: %d\n\n",
		shortID(m.ID), m.Version, winner, len(m.Participants))
}

// PrintMatch prints every participant's box score and derived metrics. Rows
// whose player is focus are marked with ">".
func PrintMatch(w io.Writer, m model.MatchRecord, calc metrics.Calculator, focus string) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "SIDE", "POS", "CHAMPION", "K", "D", "A", "KDA", "KP%", "DMG_EFF", "GOLD_EFF", "CS/M", "VIS%")
	for _, p := range m.Participants {
		marker := " "
		if focus != "" && p.Player == focus {
			marker = ">"
		}
		dm := calc.Advanced(p, nil, m.Participants)
		table.Append(
			marker,
			p.Player,
			p.Side.String(),
			string(p.Position),
			p.Champion,
			strconv.Itoa(p.Kills),
			strconv.Itoa(p.Deaths),
			strconv.Itoa(p.Assists),
			fmt.Sprintf("%.2f", dm.KDA),
			fmt.Sprintf("%.1f", dm.KillParticipation),
			damageEff(dm.DamageEfficiency),
			fmt.Sprintf("%.2f", dm.GoldEfficiency),
			fmt.Sprintf("%.1f", dm.CSPerMinute),
			fmt.Sprintf("%.0f", dm.VisionContribution),
		)
	}
	table.Render()
}

// PrintVersions prints the known version buckets, newest first.
func PrintVersions(w io.Writer, buckets []string, counts map[string]int, unbucketed int) {
	table := newTable(w)
	table.Header("BUCKET", "MATCHES")
	for _, b := range buckets {
		table.Append(b, strconv.Itoa(counts[b]))
	}
	table.Render()
	if unbucketed > 0 {
		fmt.Fprintf(w, "%d match(es) have no parseable version and are excluded from versioned views.\n", unbucketed)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func damageEff(v float64) string {
	if v == metrics.DamageEfficiencySentinel {
		return "∞"
	}
	return fmt.Sprintf("%.2f", v)
}

func sampleFlag(n int) string {
	switch {
	case n >= 10:
		return "OK"
	case n >= 5:
		return "LOW"
	default:
		return "VERY_LOW"
	}
}

// wilsonCI computes the 95% Wilson score confidence interval for a proportion.
// Returns (lo, hi) as fractions in [0, 1].
func wilsonCI(hits, n int) (lo, hi float64) {
	if n == 0 {
		return 0, 1
	}
	z := 1.96
	p := float64(hits) / float64(n)
	nf := float64(n)
	denom := 1 + z*z/nf
	center := (p + z*z/(2*nf)) / denom
	half := z * math.Sqrt(p*(1-p)/nf+z*z/(4*nf*nf)) / denom
	return math.Max(0, center-half), math.Min(1, center+half)
}

func winRateCell(wins, games int, rate float64) string {
	if games == 0 {
		return "—"
	}
	lo, hi := wilsonCI(wins, games)
	return fmt.Sprintf("%.1f%% [%.0f–%.0f]", rate, lo*100, hi*100)
}

func signed(v float64, unit string) string {
	return fmt.Sprintf("%+.1f%s", v, unit)
}

// PrintRows prints a raw query result with its column names as the header.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
}

package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/pable/go-scrim-metrics/internal/model"
)

// PrintTeamStats prints blue and red totals per version bucket, newest first.
func PrintTeamStats(w io.Writer, stats map[string]model.VersionTeamStats, buckets []string) {
	table := newTable(w)
	table.Header("BUCKET", "SIDE", "GAMES", "WINS", "WIN%", "BARON", "DRAGON", "HERALD", "GRUBS", "TURRETS", "LOST")
	for _, b := range buckets {
		vs, ok := stats[b]
		if !ok {
			continue
		}
		for _, side := range []struct {
			name string
			t    model.TeamTotals
		}{{"BLUE", vs.Blue}, {"RED", vs.Red}} {
			t := side.t
			table.Append(b, side.name, strconv.Itoa(t.Games), strconv.Itoa(t.Wins), t.WinRateLabel(),
				strconv.Itoa(t.BaronKills), strconv.Itoa(t.DragonKills), strconv.Itoa(t.HeraldKills),
				strconv.Itoa(t.VoidgrubKills), strconv.Itoa(t.TurretsKilled), strconv.Itoa(t.TurretsLost))
		}
	}
	table.Render()
}

// PrintObjectives prints objective win correlation and priority for a bucket.
func PrintObjectives(w io.Writer, stats map[model.Objective]model.ObjectiveRecord, shares []model.ObjectiveShare, total int) {
	table := newTable(w)
	table.Header("OBJECTIVE", "GAMES", "WON_BY_TAKER", "WIN%")
	for _, o := range model.Objectives {
		r := stats[o]
		table.Append(string(o), strconv.Itoa(r.Games), strconv.Itoa(r.Wins), winRateCell(r.Wins, r.Games, r.WinRate))
	}
	table.Render()

	sorted := append([]model.ObjectiveShare(nil), shares...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
	pt := newTable(w)
	pt.Header("PRIORITY", "OBJECTIVE", "COUNT", "SHARE")
	for i, s := range sorted {
		pt.Append(strconv.Itoa(i+1), string(s.Objective), strconv.Itoa(s.Count), fmt.Sprintf("%.1f%%", s.Share))
	}
	pt.Render()
	fmt.Fprintf(w, "Total objectives: %d\n", total)
}

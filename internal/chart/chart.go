// Package chart renders player and team results as HTML dashboards (go-echarts)
// and static PNG plots (gonum/plot).
package chart

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/gosimple/slug"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pable/go-scrim-metrics/internal/metrics"
	"github.com/pable/go-scrim-metrics/internal/model"
)

const width, height = "100%", "480px"

// FileName builds an output file name such as "hide-on-bush-dashboard.html".
func FileName(subject, kind, ext string) string {
	s := slug.Make(subject)
	if s == "" {
		s = "unknown"
	}
	return fmt.Sprintf("%s-%s.%s", s, kind, ext)
}

func initOpts(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: width, Height: height}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	}
}

// PlayerDashboard writes an HTML page with the player's per-game KDA, a
// player-vs-cohort comparison (when cmp is non-nil) and champion win rates.
func PlayerDashboard(w io.Writer, player string, games []model.DerivedMetrics, cmp *model.ComparisonResult, champs []model.ChampionPerformance) error {
	page := components.NewPage()

	x := make([]string, len(games))
	kda := make([]opts.LineData, len(games))
	for i, g := range games {
		x[i] = strconv.Itoa(i + 1)
		kda[i] = opts.LineData{Value: g.KDA}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(initOpts("KDA per game", fmt.Sprintf("%s, %d games", player, len(games)))...)
	line.SetXAxis(x).AddSeries("kda", kda)
	page.AddCharts(line)

	if cmp != nil {
		page.AddCharts(comparisonBar(player, *cmp))
	}

	if len(champs) > 0 {
		names := make([]string, len(champs))
		rates := make([]opts.BarData, len(champs))
		for i, c := range champs {
			names[i] = c.Champion
			rates[i] = opts.BarData{Value: c.WinRate}
		}
		bar := charts.NewBar()
		bar.SetGlobalOptions(initOpts("Champion win rate", "percent")...)
		bar.SetXAxis(names).AddSeries("win%", rates,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
		page.AddCharts(bar)
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render player dashboard: %w", err)
	}
	return nil
}

func comparisonBar(player string, cmp model.ComparisonResult) *charts.Bar {
	var names []string
	var mine, cohort []opts.BarData
	for _, m := range metricsFor(cmp) {
		pv, _ := cmp.Player.Value(m)
		cv, _ := cmp.Cohort.Value(m)
		// The no-damage-taken sentinel would flatten every other bar.
		if m == model.MetricDamageEfficiency && (pv == metrics.DamageEfficiencySentinel || cv == metrics.DamageEfficiencySentinel) {
			continue
		}
		names = append(names, string(m))
		mine = append(mine, opts.BarData{Value: pv})
		cohort = append(cohort, opts.BarData{Value: cv})
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(initOpts(fmt.Sprintf("%s vs %s cohort", player, cmp.Position),
		fmt.Sprintf("%d compared players", cmp.ComparedPlayers))...)
	bar.SetXAxis(names).
		AddSeries(player, mine).
		AddSeries("cohort", cohort)
	return bar
}

// metricsFor returns the ranked metrics in a stable order.
func metricsFor(cmp model.ComparisonResult) []model.Metric {
	order := []model.Metric{
		model.MetricKDA, model.MetricKillParticipation, model.MetricEarlyKillParticipation,
		model.MetricDamageEfficiency, model.MetricGoldEfficiency, model.MetricCSPerMinute,
		model.MetricVisionContribution, model.MetricJungleCSPerMinute, model.MetricCounterJungleRate,
		model.MetricOwnJungleControl, model.MetricWardsPlaced, model.MetricWardsKilled,
	}
	var out []model.Metric
	for _, m := range order {
		if _, ok := cmp.Rankings[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

// TeamDashboard writes an HTML page with side win rates per version bucket and
// the objective priority split.
func TeamDashboard(w io.Writer, stats map[string]model.VersionTeamStats, buckets []string, shares []model.ObjectiveShare) error {
	page := components.NewPage()

	var x []string
	var blue, red []opts.BarData
	for _, b := range buckets {
		vs, ok := stats[b]
		if !ok {
			continue
		}
		x = append(x, b)
		blue = append(blue, opts.BarData{Value: vs.Blue.WinRate})
		red = append(red, opts.BarData{Value: vs.Red.WinRate})
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(initOpts("Win rate by side", "per version bucket")...)
	bar.SetXAxis(x).
		AddSeries("blue", blue, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#3b82f6"})).
		AddSeries("red", red, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ef4444"}))
	page.AddCharts(bar)

	if len(shares) > 0 {
		data := make([]opts.PieData, len(shares))
		for i, s := range shares {
			data[i] = opts.PieData{Name: string(s.Objective), Value: s.Count}
		}
		pie := charts.NewPie()
		pie.SetGlobalOptions(initOpts("Objective priority", "share of objectives taken")...)
		pie.AddSeries("objectives", data,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
		)
		page.AddCharts(pie)
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render team dashboard: %w", err)
	}
	return nil
}

// KDATrendPNG saves a PNG with per-game KDA and its running mean.
func KDATrendPNG(path, player string, games []model.DerivedMetrics) error {
	if len(games) == 0 {
		return fmt.Errorf("no games to plot for %s", player)
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - KDA per game", player)
	p.X.Label.Text = "Game"
	p.Y.Label.Text = "KDA"

	pts := make(plotter.XYs, len(games))
	running := make(plotter.XYs, len(games))
	vals := make([]float64, 0, len(games))
	for i, g := range games {
		vals = append(vals, g.KDA)
		pts[i] = plotter.XY{X: float64(i + 1), Y: g.KDA}
		running[i] = plotter.XY{X: float64(i + 1), Y: stat.Mean(vals, nil)}
	}

	kdaLine, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("kda line: %w", err)
	}
	kdaLine.Width = vg.Points(1)
	meanLine, err := plotter.NewLine(running)
	if err != nil {
		return fmt.Errorf("mean line: %w", err)
	}
	meanLine.Width = vg.Points(2)
	meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(kdaLine, meanLine)
	p.Legend.Add("kda", kdaLine)
	p.Legend.Add("running mean", meanLine)
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

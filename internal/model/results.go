package model

import "fmt"

// Metric names a rankable DerivedMetrics field.
type Metric string

const (
	MetricKDA                    Metric = "kda"
	MetricKillParticipation      Metric = "killParticipation"
	MetricEarlyKillParticipation Metric = "earlyKillParticipation"
	MetricDamageEfficiency       Metric = "damageEfficiency"
	MetricGoldEfficiency         Metric = "goldEfficiency"
	MetricCSPerMinute            Metric = "csPerMinute"
	MetricVisionContribution     Metric = "visionContribution"
	MetricJungleCSPerMinute      Metric = "jungleCsPerMinute"
	MetricCounterJungleRate      Metric = "counterJungleRate"
	MetricOwnJungleControl       Metric = "ownJungleControl"
	MetricWardsPlaced            Metric = "wardsPlaced"
	MetricWardsKilled            Metric = "wardsKilled"
)

// Value extracts a metric from a single game's DerivedMetrics. ok is false when
// the metric is role-specific and absent.
func (d DerivedMetrics) Value(m Metric) (float64, bool) {
	switch m {
	case MetricKDA:
		return d.KDA, true
	case MetricKillParticipation:
		return d.KillParticipation, true
	case MetricEarlyKillParticipation:
		return d.EarlyKillParticipation, true
	case MetricDamageEfficiency:
		return d.DamageEfficiency, true
	case MetricGoldEfficiency:
		return d.GoldEfficiency, true
	case MetricCSPerMinute:
		return d.CSPerMinute, true
	case MetricVisionContribution:
		return d.VisionContribution, true
	case MetricJungleCSPerMinute, MetricCounterJungleRate, MetricOwnJungleControl:
		if d.Jungle == nil {
			return 0, false
		}
		switch m {
		case MetricJungleCSPerMinute:
			return d.Jungle.CSPerMinute, true
		case MetricCounterJungleRate:
			return d.Jungle.CounterJungleRate, true
		default:
			return d.Jungle.OwnJungleControl, true
		}
	case MetricWardsPlaced:
		if d.Support == nil {
			return 0, false
		}
		return float64(d.Support.WardsPlaced), true
	case MetricWardsKilled:
		if d.Support == nil {
			return 0, false
		}
		return float64(d.Support.WardsKilled), true
	}
	return 0, false
}

// Value extracts a metric from averaged metrics.
func (a AveragedMetrics) Value(m Metric) (float64, bool) {
	switch m {
	case MetricKDA:
		return a.KDA, true
	case MetricKillParticipation:
		return a.KillParticipation, true
	case MetricEarlyKillParticipation:
		return a.EarlyKillParticipation, true
	case MetricDamageEfficiency:
		return a.DamageEfficiency, true
	case MetricGoldEfficiency:
		return a.GoldEfficiency, true
	case MetricCSPerMinute:
		return a.CSPerMinute, true
	case MetricVisionContribution:
		return a.VisionContribution, true
	case MetricJungleCSPerMinute:
		if a.Jungle == nil {
			return 0, false
		}
		return a.Jungle.CSPerMinute, true
	case MetricCounterJungleRate:
		if a.Jungle == nil {
			return 0, false
		}
		return a.Jungle.CounterJungleRate, true
	case MetricOwnJungleControl:
		if a.Jungle == nil {
			return 0, false
		}
		return a.Jungle.OwnJungleControl, true
	case MetricWardsPlaced:
		if a.Support == nil {
			return 0, false
		}
		return a.Support.WardsPlaced, true
	case MetricWardsKilled:
		if a.Support == nil {
			return 0, false
		}
		return a.Support.WardsKilled, true
	}
	return 0, false
}

// Rank is a player's standing for one metric inside a position cohort.
// Rank 1 is the highest value; Percentile is round(Rank/Total*100), so a lower
// percentile is better.
type Rank struct {
	Rank       int `json:"rank"`
	Total      int `json:"total"`
	Percentile int `json:"percentile"`
}

// Label renders the rank as "Top N%".
func (r Rank) Label() string {
	return fmt.Sprintf("Top %d%%", r.Percentile)
}

// ComparisonResult pairs a player's averages with their position cohort.
type ComparisonResult struct {
	Position        Position        `json:"position"`
	Player          AveragedMetrics `json:"player"`
	Cohort          AveragedMetrics `json:"cohort"`
	ComparedPlayers int             `json:"comparedPlayers"`
	Rankings        map[Metric]Rank `json:"rankings"`
}

// FormSnapshot holds the metrics tracked by the recent-form comparison.
type FormSnapshot struct {
	KDA              float64 `json:"kda"`
	DamageEfficiency float64 `json:"damageEfficiency"`
	GoldEfficiency   float64 `json:"goldEfficiency"`
	CSPerMinute      float64 `json:"csPerMinute"`
}

// FormComparison compares the last N games with the whole set.
type FormComparison struct {
	Recent      FormSnapshot `json:"recent"`
	Overall     FormSnapshot `json:"overall"`
	Improvement FormSnapshot `json:"improvementPct"`
	RecentGames int          `json:"recentGames"`
	TotalGames  int          `json:"totalGames"`
}

// ChampionTrendDelta compares the later half of a champion's games with the earlier half.
type ChampionTrendDelta struct {
	KDADelta     float64 `json:"kdaDelta"`
	WinRateDelta float64 `json:"winRateDelta"` // percentage points
}

// ChampionPerformance summarizes one champion for one player.
type ChampionPerformance struct {
	Champion string              `json:"champion"`
	Games    int                 `json:"games"`
	Wins     int                 `json:"wins"`
	WinRate  float64             `json:"winRate"`
	AvgKDA   float64             `json:"avgKda"`
	KDAs     []float64           `json:"kdas"`
	Trend    *ChampionTrendDelta `json:"trend,omitempty"`
}

// SideRecord is a win/loss record on one side.
type SideRecord struct {
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"winRate"`
}

// SidePreference compares a player's results on each side.
type SidePreference struct {
	Blue       SideRecord `json:"blue"`
	Red        SideRecord `json:"red"`
	Preferred  Side       `json:"preferredSide"` // SideUnknown on a tie
	Difference float64    `json:"difference"`    // absolute percentage-point gap
}

// ObjectiveRecord is how often controlling an objective coincided with a win.
type ObjectiveRecord struct {
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"winRate"`
}

// ObjectiveShare is one objective's share of all objectives taken.
type ObjectiveShare struct {
	Objective Objective `json:"objective"`
	Count     int       `json:"count"`
	Share     float64   `json:"share"`
}

// ObjectiveEfficiency relates objectives taken to results for a player.
type ObjectiveEfficiency struct {
	AvgObjectivesPerGame float64 `json:"avgObjectivesPerGame"`
	WinRate              float64 `json:"winRate"`
}

// VisionStyleKind classifies ward placement vs ward clearing.
type VisionStyleKind string

const (
	VisionBalanced   VisionStyleKind = "balanced"
	VisionDefensive  VisionStyleKind = "defensive"
	VisionAggressive VisionStyleKind = "aggressive"
)

// VisionStyle is a player's warding profile.
type VisionStyle struct {
	Style          VisionStyleKind `json:"style"`
	AvgWardsPlaced float64         `json:"avgWardsPlaced"`
	AvgWardsKilled float64         `json:"avgWardsKilled"`
	Ratio          float64         `json:"ratio"`
}

// Suggestion is one improvement hint from comparing against a cohort.
type Suggestion struct {
	Category string `json:"category"`
	Issue    string `json:"issue"`
	Advice   string `json:"advice"`
}

// TeamTotals accumulates one side's results for a version bucket.
type TeamTotals struct {
	Games         int     `json:"games"`
	Wins          int     `json:"wins"`
	BaronKills    int     `json:"baronKills"`
	DragonKills   int     `json:"dragonKills"`
	HeraldKills   int     `json:"heraldKills"`
	VoidgrubKills int     `json:"voidgrubKills"`
	TurretsKilled int     `json:"turretsKilled"`
	TurretsLost   int     `json:"turretsLost"`
	WinRate       float64 `json:"winRate"`
}

// WinRateLabel formats the win rate, or "0%" when no games were played.
func (t TeamTotals) WinRateLabel() string {
	if t.Games == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", t.WinRate)
}

// VersionTeamStats holds both sides' totals for one version bucket.
type VersionTeamStats struct {
	Blue TeamTotals `json:"blue"`
	Red  TeamTotals `json:"red"`
}

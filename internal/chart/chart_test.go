package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-scrim-metrics/internal/metrics"
	"github.com/pable/go-scrim-metrics/internal/model"
)

func games(kdas ...float64) []model.DerivedMetrics {
	out := make([]model.DerivedMetrics, len(kdas))
	for i, k := range kdas {
		out[i] = model.DerivedMetrics{KDA: k}
	}
	return out
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "hide-on-bush-dashboard.html", FileName("Hide on Bush", "dashboard", "html"))
	assert.Equal(t, "unknown-team.html", FileName("", "team", "html"))
}

func TestPlayerDashboard(t *testing.T) {
	cmp := &model.ComparisonResult{
		Position:        model.PositionMiddle,
		Player:          model.AveragedMetrics{KDA: 4, DamageEfficiency: metrics.DamageEfficiencySentinel},
		Cohort:          model.AveragedMetrics{KDA: 3, DamageEfficiency: 1.2},
		ComparedPlayers: 4,
		Rankings: map[model.Metric]model.Rank{
			model.MetricKDA:              {Rank: 1, Total: 5, Percentile: 20},
			model.MetricDamageEfficiency: {Rank: 1, Total: 5, Percentile: 20},
		},
	}
	assert.Equal(t, []model.Metric{model.MetricKDA, model.MetricDamageEfficiency}, metricsFor(*cmp))

	var buf bytes.Buffer
	err := PlayerDashboard(&buf, "alice", games(2, 3.5, 6), cmp, []model.ChampionPerformance{
		{Champion: "Ahri", Games: 2, Wins: 1, WinRate: 50},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "KDA per game")
	assert.Contains(t, out, "alice vs MIDDLE cohort")
	assert.Contains(t, out, "Ahri")
}

func TestTeamDashboardSkipsMissingBuckets(t *testing.T) {
	var buf bytes.Buffer
	err := TeamDashboard(&buf, map[string]model.VersionTeamStats{
		"15.12": {Blue: model.TeamTotals{Games: 2, Wins: 1, WinRate: 50}},
	}, []string{"15.13", "15.12"}, []model.ObjectiveShare{{Objective: model.ObjectiveDragon, Count: 3, Share: 100}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "15.12")
	assert.NotContains(t, buf.String(), "15.13")
}

func TestKDATrendPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName("alice", "kda", "png"))
	require.NoError(t, KDATrendPNG(path, "alice", games(1, 2, 3)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	assert.Error(t, KDATrendPNG(path, "alice", nil))
}

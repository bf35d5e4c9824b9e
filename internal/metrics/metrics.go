// Package metrics computes derived per-game ratios from a single participant
// and, when available, the participants of its match. Every function is pure.
package metrics

import "github.com/pable/go-scrim-metrics/internal/model"

// DamageEfficiencySentinel is returned by DamageEfficiency when a player dealt
// damage but took none.
const DamageEfficiencySentinel = 999.0

// Default fallback denominators used when a participant's match cannot be found.
const (
	DefaultTeamTakedowns      = 36 // ~18 kills + 18 assists
	DefaultTeamEarlyTakedowns = 8
)

// KDA is (kills+assists)/deaths, or kills+assists when deaths is 0.
func KDA(kills, deaths, assists int) float64 {
	if deaths == 0 {
		return float64(kills + assists)
	}
	return float64(kills+assists) / float64(deaths)
}

// KillParticipation is the percentage of the team's takedowns the player was part of.
func KillParticipation(kills, assists, teamTakedowns int) float64 {
	if teamTakedowns == 0 {
		return 0
	}
	return float64(kills+assists) / float64(teamTakedowns) * 100
}

// EarlyKillParticipation is the percentage of the team's pre-15:00 takedowns the
// player was credited with.
func EarlyKillParticipation(earlyTakedowns, teamEarlyTakedowns int) float64 {
	if teamEarlyTakedowns == 0 {
		return 0
	}
	return float64(earlyTakedowns) / float64(teamEarlyTakedowns) * 100
}

// DamageEfficiency is damage dealt per damage taken.
func DamageEfficiency(dealt, taken float64) float64 {
	if taken == 0 {
		if dealt > 0 {
			return DamageEfficiencySentinel
		}
		return 0
	}
	return dealt / taken
}

// GoldEfficiency is damage dealt per gold earned.
func GoldEfficiency(dealt, gold float64) float64 {
	if gold == 0 {
		return 0
	}
	return dealt / gold
}

// CSPerMinute normalizes creep score by played time.
func CSPerMinute(cs, playedSeconds int) float64 {
	if playedSeconds == 0 {
		return 0
	}
	return float64(cs) / (float64(playedSeconds) / 60)
}

// VisionContribution is (wardsPlaced+wardsKilled) as a percentage of vision score.
func VisionContribution(wardsPlaced, wardsKilled int, visionScore float64) float64 {
	if visionScore == 0 {
		return 0
	}
	return float64(wardsPlaced+wardsKilled) / visionScore * 100
}

// Jungle computes the jungle specialization for one game.
func Jungle(p model.ParticipantRecord) model.JungleMetrics {
	jm := model.JungleMetrics{
		CSPerMinute: CSPerMinute(p.JungleCS, p.TimePlayed),
		Invasion:    model.InvasionNone,
	}
	if p.JungleCS > 0 {
		jm.CounterJungleRate = float64(p.EnemyJungleCS) / float64(p.JungleCS) * 100
		jm.OwnJungleControl = float64(p.OwnJungleCS) / float64(p.JungleCS) * 100
	}
	if p.EnemyJungleCS > 0 {
		jm.Invasion = model.InvasionSuccess
	}
	return jm
}

// Support computes the support specialization for one game. Ward counts are raw.
func Support(p model.ParticipantRecord) model.SupportMetrics {
	return model.SupportMetrics{
		WardsPlaced: p.WardsPlaced,
		WardsKilled: p.WardsKilled,
	}
}

// SideTakedowns sums kills+assists over the participants on side. The sum
// includes the target player.
func SideTakedowns(ctx []model.ParticipantRecord, side model.Side) int {
	total := 0
	for _, p := range ctx {
		if p.Side == side {
			total += p.Takedowns()
		}
	}
	return total
}

// SideEarlyTakedowns sums pre-15:00 takedowns over the participants on side.
func SideEarlyTakedowns(ctx []model.ParticipantRecord, side model.Side) int {
	total := 0
	for _, p := range ctx {
		if p.Side == side {
			total += p.EarlyTakedowns
		}
	}
	return total
}

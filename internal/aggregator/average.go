package aggregator

import (
	"gonum.org/v1/gonum/stat"

	"github.com/pable/go-scrim-metrics/internal/metrics"
	"github.com/pable/go-scrim-metrics/internal/model"
)

// Derive computes DerivedMetrics for every participant, resolving each one's
// match context through idx.
func Derive(participants []model.ParticipantRecord, idx metrics.Contexter, calc metrics.Calculator) []model.DerivedMetrics {
	out := make([]model.DerivedMetrics, len(participants))
	for i, p := range participants {
		out[i] = calc.ForParticipant(p, idx)
	}
	return out
}

// AverageMetrics derives metrics for each participant and returns the
// arithmetic mean of every field.
func AverageMetrics(participants []model.ParticipantRecord, idx metrics.Contexter, calc metrics.Calculator) (model.AveragedMetrics, error) {
	return AverageDerived(Derive(participants, idx, calc))
}

// AverageDerived averages already derived per-game metrics. Jungle and support
// extras are averaged only over the games that carry them.
func AverageDerived(games []model.DerivedMetrics) (model.AveragedMetrics, error) {
	if len(games) == 0 {
		return model.AveragedMetrics{}, ErrEmptyCohort
	}

	n := len(games)
	kda := make([]float64, n)
	kp := make([]float64, n)
	ekp := make([]float64, n)
	dmg := make([]float64, n)
	gold := make([]float64, n)
	cs := make([]float64, n)
	vis := make([]float64, n)

	var (
		jCS, jCounter, jOwn []float64
		invasions           int
		sPlaced, sKilled    []float64
		estimated           int
	)

	for i, g := range games {
		kda[i] = g.KDA
		kp[i] = g.KillParticipation
		ekp[i] = g.EarlyKillParticipation
		dmg[i] = g.DamageEfficiency
		gold[i] = g.GoldEfficiency
		cs[i] = g.CSPerMinute
		vis[i] = g.VisionContribution
		if g.KillParticipationEstimated || g.EarlyKillParticipationEstimated {
			estimated++
		}
		if g.Jungle != nil {
			jCS = append(jCS, g.Jungle.CSPerMinute)
			jCounter = append(jCounter, g.Jungle.CounterJungleRate)
			jOwn = append(jOwn, g.Jungle.OwnJungleControl)
			if g.Jungle.Invasion == model.InvasionSuccess {
				invasions++
			}
		}
		if g.Support != nil {
			sPlaced = append(sPlaced, float64(g.Support.WardsPlaced))
			sKilled = append(sKilled, float64(g.Support.WardsKilled))
		}
	}

	avg := model.AveragedMetrics{
		Games:                  n,
		KDA:                    stat.Mean(kda, nil),
		KillParticipation:      stat.Mean(kp, nil),
		EarlyKillParticipation: stat.Mean(ekp, nil),
		DamageEfficiency:       stat.Mean(dmg, nil),
		GoldEfficiency:         stat.Mean(gold, nil),
		CSPerMinute:            stat.Mean(cs, nil),
		VisionContribution:     stat.Mean(vis, nil),
		EstimatedGames:         estimated,
	}
	if len(jCS) > 0 {
		avg.Jungle = &model.JungleAverages{
			Games:             len(jCS),
			CSPerMinute:       stat.Mean(jCS, nil),
			CounterJungleRate: stat.Mean(jCounter, nil),
			OwnJungleControl:  stat.Mean(jOwn, nil),
			Invasions:         invasions,
		}
	}
	if len(sPlaced) > 0 {
		avg.Support = &model.SupportAverages{
			Games:       len(sPlaced),
			WardsPlaced: stat.Mean(sPlaced, nil),
			WardsKilled: stat.Mean(sKilled, nil),
		}
	}
	return avg, nil
}

// RawAverages returns per-game means of the raw box-score fields.
func RawAverages(participants []model.ParticipantRecord) (model.RawAverages, error) {
	if len(participants) == 0 {
		return model.RawAverages{}, ErrEmptyCohort
	}
	var r model.RawAverages
	for _, p := range participants {
		r.Kills += float64(p.Kills)
		r.Deaths += float64(p.Deaths)
		r.Assists += float64(p.Assists)
		r.CreepScore += float64(p.CreepScore)
		r.GoldEarned += p.GoldEarned
		r.DamageDealt += p.DamageDealt
		r.DamageTaken += p.DamageTaken
		r.VisionScore += p.VisionScore
		r.ControlWardsBought += float64(p.ControlWardsBought)
		r.WardsKilled += float64(p.WardsKilled)
		r.WardsPlaced += float64(p.WardsPlaced)
		r.EarlyTakedowns += float64(p.EarlyTakedowns)
	}
	n := float64(len(participants))
	r.Games = len(participants)
	r.Kills /= n
	r.Deaths /= n
	r.Assists /= n
	r.CreepScore /= n
	r.GoldEarned /= n
	r.DamageDealt /= n
	r.DamageTaken /= n
	r.VisionScore /= n
	r.ControlWardsBought /= n
	r.WardsKilled /= n
	r.WardsPlaced /= n
	r.EarlyTakedowns /= n
	return r, nil
}

package metrics

import "github.com/pable/go-scrim-metrics/internal/model"

// Fallbacks are the denominators used when a participant's match context is
// unavailable. Values computed with them are flagged as estimated.
type Fallbacks struct {
	TeamTakedowns      int
	TeamEarlyTakedowns int
}

// DefaultFallbacks returns the stock fallback denominators.
func DefaultFallbacks() Fallbacks {
	return Fallbacks{
		TeamTakedowns:      DefaultTeamTakedowns,
		TeamEarlyTakedowns: DefaultTeamEarlyTakedowns,
	}
}

// TeamTakedowns is an explicit team-level denominator supplied by the caller.
// It takes priority over the match context when Total is positive.
type TeamTakedowns struct {
	Total int
}

// Calculator computes DerivedMetrics with a fixed set of fallbacks.
type Calculator struct {
	Fallbacks Fallbacks
}

// NewCalculator returns a Calculator using fb. Zero fields fall back to the defaults.
func NewCalculator(fb Fallbacks) Calculator {
	def := DefaultFallbacks()
	if fb.TeamTakedowns <= 0 {
		fb.TeamTakedowns = def.TeamTakedowns
	}
	if fb.TeamEarlyTakedowns <= 0 {
		fb.TeamEarlyTakedowns = def.TeamEarlyTakedowns
	}
	return Calculator{Fallbacks: fb}
}

// Advanced computes every derived metric for p. The kill-participation
// denominator is chosen in priority order: team (if non-nil and positive), then
// the match context ctx (if non-nil), then the configured fallback.
func (c Calculator) Advanced(p model.ParticipantRecord, team *TeamTakedowns, ctx []model.ParticipantRecord) model.DerivedMetrics {
	dm := model.DerivedMetrics{
		Position:           p.Position,
		Champion:           p.Champion,
		KDA:                KDA(p.Kills, p.Deaths, p.Assists),
		DamageEfficiency:   DamageEfficiency(p.DamageDealt, p.DamageTaken),
		GoldEfficiency:     GoldEfficiency(p.DamageDealt, p.GoldEarned),
		CSPerMinute:        CSPerMinute(p.CreepScore, p.TimePlayed),
		VisionContribution: VisionContribution(p.WardsPlaced, p.WardsKilled, p.VisionScore),
	}

	switch {
	case team != nil && team.Total > 0:
		dm.KillParticipation = KillParticipation(p.Kills, p.Assists, team.Total)
	case ctx != nil:
		dm.KillParticipation = KillParticipation(p.Kills, p.Assists, SideTakedowns(ctx, p.Side))
	default:
		dm.KillParticipation = KillParticipation(p.Kills, p.Assists, c.Fallbacks.TeamTakedowns)
		dm.KillParticipationEstimated = true
	}

	if ctx != nil {
		dm.EarlyKillParticipation = EarlyKillParticipation(p.EarlyTakedowns, SideEarlyTakedowns(ctx, p.Side))
	} else {
		dm.EarlyKillParticipation = EarlyKillParticipation(p.EarlyTakedowns, c.Fallbacks.TeamEarlyTakedowns)
		dm.EarlyKillParticipationEstimated = true
	}

	switch p.Position {
	case model.PositionJungle:
		jm := Jungle(p)
		dm.Jungle = &jm
	case model.PositionSupport:
		sm := Support(p)
		dm.Support = &sm
	}
	return dm
}

// Contexter resolves a participant's match context.
type Contexter interface {
	Context(p model.ParticipantRecord) ([]model.ParticipantRecord, bool)
}

// ForParticipant looks up p's match context through idx (which may be nil) and
// computes its metrics.
func (c Calculator) ForParticipant(p model.ParticipantRecord, idx Contexter) model.DerivedMetrics {
	var ctx []model.ParticipantRecord
	if idx != nil {
		if found, ok := idx.Context(p); ok {
			ctx = found
		}
	}
	return c.Advanced(p, nil, ctx)
}

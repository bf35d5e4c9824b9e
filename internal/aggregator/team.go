package aggregator

import (
	"github.com/pable/go-scrim-metrics/internal/model"
	"github.com/pable/go-scrim-metrics/internal/normalize"
)

// TeamStatsByVersion accumulates the tracked team's results per version bucket
// and side. The team's side in a match is the side of the first tracked player
// found in it; matches with no tracked player, no bucket or no known side are
// skipped. Objective and turret counters are summed over every participant on
// that side.
func TeamStatsByVersion(matches []model.MatchRecord, tracked []string) map[string]model.VersionTeamStats {
	roster := make(map[string]bool, len(tracked))
	for _, name := range tracked {
		roster[name] = true
	}

	out := make(map[string]model.VersionTeamStats)
	for _, m := range matches {
		bucket, ok := normalize.VersionBucket(m.Version)
		if !ok {
			continue
		}
		var member *model.ParticipantRecord
		for i := range m.Participants {
			if roster[m.Participants[i].Player] {
				member = &m.Participants[i]
				break
			}
		}
		if member == nil {
			continue
		}

		vs := out[bucket]
		var t *model.TeamTotals
		switch member.Side {
		case model.SideBlue:
			t = &vs.Blue
		case model.SideRed:
			t = &vs.Red
		default:
			continue
		}

		t.Games++
		if member.Win {
			t.Wins++
		}
		for _, p := range m.Participants {
			if p.Side != member.Side {
				continue
			}
			t.BaronKills += p.BaronKills
			t.DragonKills += p.DragonKills
			t.HeraldKills += p.HeraldKills
			t.VoidgrubKills += p.VoidgrubKills
			t.TurretsKilled += p.TurretsKilled
			t.TurretsLost += p.TurretsLost
		}
		out[bucket] = vs
	}

	for bucket, vs := range out {
		for _, t := range []*model.TeamTotals{&vs.Blue, &vs.Red} {
			if t.Games > 0 {
				t.WinRate = float64(t.Wins) / float64(t.Games) * 100
			}
		}
		out[bucket] = vs
	}
	return out
}

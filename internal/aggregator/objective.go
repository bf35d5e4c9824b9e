package aggregator

import (
	"sort"

	"github.com/pable/go-scrim-metrics/internal/model"
)

// sideObjectives sums one objective counter over the participants of each side.
func sideObjectives(m model.MatchRecord, o model.Objective) (blue, red int) {
	for _, p := range m.Participants {
		switch p.Side {
		case model.SideBlue:
			blue += p.ObjectiveCount(o)
		case model.SideRed:
			red += p.ObjectiveCount(o)
		}
	}
	return blue, red
}

func hasBothSides(m model.MatchRecord) (blueWon, ok bool) {
	var blue, red bool
	for _, p := range m.Participants {
		switch p.Side {
		case model.SideBlue:
			blue = true
			if p.Win {
				blueWon = true
			}
		case model.SideRed:
			red = true
		}
	}
	return blueWon, blue && red
}

// ObjectiveStats reports, per objective, the games in bucket where either side
// took it and how many of those were won by the side that took strictly more.
// An empty bucket covers every match.
// Games missing either side are skipped. Equal counts are never credited.
func ObjectiveStats(matches []model.MatchRecord, bucket string) map[model.Objective]model.ObjectiveRecord {
	stats := make(map[model.Objective]model.ObjectiveRecord, len(model.Objectives))
	for _, o := range model.Objectives {
		stats[o] = model.ObjectiveRecord{}
	}

	for _, m := range inBucket(matches, bucket) {
		blueWon, ok := hasBothSides(m)
		if !ok {
			continue
		}
		for _, o := range model.Objectives {
			blue, red := sideObjectives(m, o)
			if blue == 0 && red == 0 {
				continue
			}
			rec := stats[o]
			rec.Games++
			if (blue > red && blueWon) || (red > blue && !blueWon) {
				rec.Wins++
			}
			stats[o] = rec
		}
	}

	for o, rec := range stats {
		if rec.Games > 0 {
			rec.WinRate = float64(rec.Wins) / float64(rec.Games) * 100
			stats[o] = rec
		}
	}
	return stats
}

// ObjectivePriority returns each objective's share of every objective taken in
// bucket, highest count first, and the overall total.
func ObjectivePriority(matches []model.MatchRecord, bucket string) ([]model.ObjectiveShare, int) {
	counts := make(map[model.Objective]int)
	total := 0
	for _, m := range inBucket(matches, bucket) {
		for _, p := range m.Participants {
			for _, o := range model.Objectives {
				c := p.ObjectiveCount(o)
				counts[o] += c
				total += c
			}
		}
	}

	out := make([]model.ObjectiveShare, 0, len(model.Objectives))
	for _, o := range model.Objectives {
		s := model.ObjectiveShare{Objective: o, Count: counts[o]}
		if total > 0 {
			s.Share = float64(s.Count) / float64(total) * 100
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, total
}

// ObjectiveEfficiency relates the objectives a player took to their win rate.
func ObjectiveEfficiency(participants []model.ParticipantRecord) model.ObjectiveEfficiency {
	if len(participants) == 0 {
		return model.ObjectiveEfficiency{}
	}
	objectives, wins := 0, 0
	for _, p := range participants {
		for _, o := range model.Objectives {
			objectives += p.ObjectiveCount(o)
		}
		if p.Win {
			wins++
		}
	}
	n := float64(len(participants))
	return model.ObjectiveEfficiency{
		AvgObjectivesPerGame: float64(objectives) / n,
		WinRate:              float64(wins) / n * 100,
	}
}

// Package aggregator turns normalized participant records into per-player,
// per-position and per-team summaries. Every function is pure: results are
// recomputed from the inputs on each call.
package aggregator

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/pable/go-scrim-metrics/internal/model"
	"github.com/pable/go-scrim-metrics/internal/normalize"
)

// ErrEmptyCohort is returned when an average or ranking is requested over zero rows.
var ErrEmptyCohort = errors.New("empty cohort")

// GroupByPlayer partitions every participant of matches by player identity.
// Participants with no resolvable identity are dropped. Per-player order
// follows match order.
func GroupByPlayer(matches []model.MatchRecord) map[string][]model.ParticipantRecord {
	groups := make(map[string][]model.ParticipantRecord)
	for _, m := range matches {
		for _, p := range m.Participants {
			if p.Player == "" {
				continue
			}
			groups[p.Player] = append(groups[p.Player], p)
		}
	}
	return groups
}

// PlayerIDs returns the keys of groups sorted alphabetically.
func PlayerIDs(groups map[string][]model.ParticipantRecord) []string {
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FilterByVersionBucket keeps matches whose version bucket equals bucket
// exactly. Matches with an unparseable version never match.
func FilterByVersionBucket(matches []model.MatchRecord, bucket string) []model.MatchRecord {
	var out []model.MatchRecord
	for _, m := range matches {
		b, ok := normalize.VersionBucket(m.Version)
		if ok && b == bucket {
			out = append(out, m)
		}
	}
	return out
}

// GroupByPosition partitions participants by normalized position. UNKNOWN is
// kept as its own group.
func GroupByPosition(participants []model.ParticipantRecord) map[model.Position][]model.ParticipantRecord {
	groups := make(map[model.Position][]model.ParticipantRecord)
	for _, p := range participants {
		pos := p.Position
		if pos == "" {
			pos = model.PositionUnknown
		}
		groups[pos] = append(groups[pos], p)
	}
	return groups
}

// VersionBuckets returns the distinct version buckets of matches, newest first,
// and the number of matches whose version has no bucket.
func VersionBuckets(matches []model.MatchRecord) (buckets []string, unbucketed int) {
	seen := make(map[string]bool)
	for _, m := range matches {
		b, ok := normalize.VersionBucket(m.Version)
		if !ok {
			unbucketed++
			continue
		}
		if !seen[b] {
			seen[b] = true
			buckets = append(buckets, b)
		}
	}
	sort.Slice(buckets, func(i, j int) bool {
		return compareBuckets(buckets[i], buckets[j]) > 0
	})
	return buckets, unbucketed
}

// compareBuckets orders "15.12" after "15.9". Non-numeric segments compare as strings.
func compareBuckets(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		ai, aerr := strconv.Atoi(as[i])
		bi, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			if ai != bi {
				if ai < bi {
					return -1
				}
				return 1
			}
			continue
		}
		if c := strings.Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return len(as) - len(bs)
}

// inBucket is FilterByVersionBucket except that an empty bucket keeps every
// match, including unbucketed ones.
func inBucket(matches []model.MatchRecord, bucket string) []model.MatchRecord {
	if bucket == "" {
		return matches
	}
	return FilterByVersionBucket(matches, bucket)
}

// ParticipantsFor returns player's rows across matches in bucket. An empty
// bucket selects every match, including unbucketed ones.
func ParticipantsFor(matches []model.MatchRecord, bucket, player string) []model.ParticipantRecord {
	return GroupByPlayer(inBucket(matches, bucket))[player]
}

// Participants flattens every participant of matches in match order.
func Participants(matches []model.MatchRecord) []model.ParticipantRecord {
	var out []model.ParticipantRecord
	for _, m := range matches {
		out = append(out, m.Participants...)
	}
	return out
}

// PrimaryPosition returns the position player appears in most often. Ties go
// to the earlier role in draft order; UNKNOWN is chosen only when nothing else
// was played.
func PrimaryPosition(rows []model.ParticipantRecord) model.Position {
	counts := make(map[model.Position]int)
	for _, p := range rows {
		counts[p.Position]++
	}
	best, bestN := model.PositionUnknown, 0
	for _, pos := range model.Positions {
		if counts[pos] > bestN {
			best, bestN = pos, counts[pos]
		}
	}
	return best
}

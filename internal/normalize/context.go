package normalize

import "github.com/pable/go-scrim-metrics/internal/model"

// contextKey is the composite identity used when a participant carries no match ID.
type contextKey struct {
	player     string
	side       model.Side
	timePlayed int
}

// MatchIndex resolves a participant back to all participants of its match.
// Build it once per loaded match set; it is read-only afterwards.
type MatchIndex struct {
	byID  map[string][]model.ParticipantRecord
	byKey map[contextKey][]model.ParticipantRecord
}

// NewMatchIndex indexes matches by synthetic ID and by the (player, side,
// timePlayed) triple. When two matches share a triple the first one wins.
func NewMatchIndex(matches []model.MatchRecord) *MatchIndex {
	idx := &MatchIndex{
		byID:  make(map[string][]model.ParticipantRecord, len(matches)),
		byKey: make(map[contextKey][]model.ParticipantRecord),
	}
	for _, m := range matches {
		if m.ID != "" {
			if _, exists := idx.byID[m.ID]; !exists {
				idx.byID[m.ID] = m.Participants
			}
		}
		for _, p := range m.Participants {
			k := keyOf(p)
			if _, exists := idx.byKey[k]; !exists {
				idx.byKey[k] = m.Participants
			}
		}
	}
	return idx
}

func keyOf(p model.ParticipantRecord) contextKey {
	return contextKey{player: p.Player, side: p.Side, timePlayed: p.TimePlayed}
}

// Context returns the full participant list of p's match. ok is false when the
// match cannot be found; callers fall back to default denominators.
func (idx *MatchIndex) Context(p model.ParticipantRecord) ([]model.ParticipantRecord, bool) {
	if idx == nil {
		return nil, false
	}
	if p.MatchID != "" {
		if ctx, ok := idx.byID[p.MatchID]; ok {
			return ctx, true
		}
	}
	ctx, ok := idx.byKey[keyOf(p)]
	return ctx, ok
}

// ReassembleMatchContext scans matches for the one containing a participant with
// the same (player, side, timePlayed) triple as p and returns its participants.
// The first match found wins; two games with an identical triple are
// indistinguishable here. Prefer MatchIndex, which uses the synthetic match ID
// when present.
func ReassembleMatchContext(p model.ParticipantRecord, matches []model.MatchRecord) ([]model.ParticipantRecord, bool) {
	want := keyOf(p)
	for _, m := range matches {
		for _, other := range m.Participants {
			if keyOf(other) == want {
				return m.Participants, true
			}
		}
	}
	return nil, false
}

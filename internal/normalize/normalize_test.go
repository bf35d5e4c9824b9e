package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-scrim-metrics/internal/model"
)

func TestResolveField(t *testing.T) {
	rec := Record{"A": 1.0, "b": 2.0, "nullA": nil, "c": "x"}

	assert.Equal(t, 1.0, ResolveField(rec, "A", "b"))
	assert.Equal(t, 2.0, ResolveField(rec, "missing", "b"))
	assert.Equal(t, "x", ResolveField(rec, "nullA", "c"), "null primary falls through")
	assert.Nil(t, ResolveField(rec, "missing", "gone"))
	assert.Nil(t, ResolveField(nil, "A", "b"))
}

func TestTypedAccessorsDefault(t *testing.T) {
	rec := Record{"str": "12.5", "num": 7.0, "obj": map[string]any{}, "bad": "abc"}

	assert.Equal(t, 12.5, rec.Float("str", ""))
	assert.Equal(t, 7, rec.Int("num", ""))
	assert.Equal(t, 0.0, rec.Float("bad", ""))
	assert.Equal(t, 0.0, rec.Float("obj", ""))
	assert.Equal(t, 0, rec.Int("missing", ""))
	assert.Equal(t, "", rec.String("missing", ""))
	assert.Equal(t, "7", rec.String("num", ""))
	assert.False(t, rec.Bool("missing", ""))
	assert.Nil(t, rec.Records("num", ""))
}

func TestBool(t *testing.T) {
	cases := map[string]struct {
		v    any
		want bool
	}{
		"Win":   {"Win", true},
		"Fail":  {"Fail", false},
		"true":  {true, true},
		"false": {false, false},
		"one":   {1.0, true},
		"zero":  {0.0, false},
		"text1": {"1", true},
	}
	for name, c := range cases {
		rec := Record{"WIN": c.v}
		assert.Equal(t, c.want, rec.Bool("WIN", "win"), name)
	}
}

func TestParticipantCasingVariants(t *testing.T) {
	screaming := Record{
		"RIOT_ID_GAME_NAME": "Alice", "TEAM": "100", "INDIVIDUAL_POSITION": "UTILITY",
		"SKIN": "Thresh", "WIN": "Win", "CHAMPIONS_KILLED": "3", "NUM_DEATHS": "1",
		"ASSISTS": "12", "TIME_PLAYED": "1800", "WARD_PLACED": "40",
	}
	camel := Record{
		"riotIdGameName": "Alice", "team": "100", "individualPosition": "UTILITY",
		"skin": "Thresh", "win": "Win", "championsKilled": 3.0, "numDeaths": 1.0,
		"assists": 12.0, "timePlayed": 1800.0, "wardPlaced": 40.0,
	}

	a, b := Participant(screaming), Participant(camel)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("casing variants differ (-screaming +camel):\n%s", diff)
	}
	assert.Equal(t, model.PositionSupport, a.Position)
	assert.Equal(t, model.SideBlue, a.Side)
	assert.True(t, a.Win)
	assert.Equal(t, 40, a.WardsPlaced)
}

func TestPlayerIdentityFallback(t *testing.T) {
	assert.Equal(t, "Alice", PlayerIdentity(Record{"RIOT_ID_GAME_NAME": "Alice", "SUMMONER_ID": "s1"}))
	assert.Equal(t, "s1", PlayerIdentity(Record{"SUMMONER_ID": "s1"}))
	assert.Equal(t, "s2", PlayerIdentity(Record{"summonerId": "s2"}))
	assert.Equal(t, "", PlayerIdentity(Record{}))
}

func TestChampionFallback(t *testing.T) {
	p := Participant(Record{"championName": "Ahri"})
	assert.Equal(t, "Ahri", p.Champion)
}

func TestNormalizePosition(t *testing.T) {
	cases := map[string]model.Position{
		"TOP":     model.PositionTop,
		"JUNGLE":  model.PositionJungle,
		"MIDDLE":  model.PositionMiddle,
		"BOTTOM":  model.PositionBottom,
		"SUPPORT": model.PositionSupport,
		"UTILITY": model.PositionSupport,
		"":        model.PositionUnknown,
		"Invalid": model.PositionUnknown,
		"top":     model.PositionUnknown,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizePosition(raw), raw)
	}
}

func TestVersionBucket(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"15.12.100.200", "15.12", true},
		{"15.12.xyz", "15.12", true},
		{"15.12", "15.12", true},
		{"15", "", false},
		{"", "", false},
		{"15.", "", false},
		{".12", "", false},
	}
	for _, c := range cases {
		got, ok := VersionBucket(c.in)
		assert.Equal(t, c.wantOK, ok, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestDecodeMatch(t *testing.T) {
	body := []byte(`{
		"gameVersion": "15.12.100.200",
		"participants": [
			{"RIOT_ID_GAME_NAME": "Alice", "TEAM": "100", "TEAM_POSITION": "MIDDLE"},
			{"riotIdGameName": "Bob", "team": "200", "individualPosition": "TOP"},
			"not an object"
		]
	}`)
	m, err := DecodeMatch("id-1", body)
	require.NoError(t, err)

	assert.Equal(t, "id-1", m.ID)
	assert.Equal(t, "15.12.100.200", m.Version)
	require.Len(t, m.Participants, 2)
	for _, p := range m.Participants {
		assert.Equal(t, "id-1", p.MatchID)
		assert.Equal(t, "15.12", p.Bucket)
	}
	assert.Equal(t, model.PositionMiddle, m.Participants[0].Position)
	assert.Equal(t, "Bob", m.Participants[1].Player)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.Error(t, err)
	_, err = Decode([]byte(`null`))
	assert.ErrorIs(t, err, errNotObject)

	stored := []model.StoredMatch{
		{ID: "good", Body: []byte(`{"participants": []}`)},
		{ID: "bad", Body: []byte(`[`)},
	}
	ms, errs := DecodeStored(stored)
	assert.Len(t, ms, 1)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "bad")
}

func TestMatchIndex(t *testing.T) {
	p := func(match, player string, side model.Side, secs int) model.ParticipantRecord {
		return model.ParticipantRecord{MatchID: match, Player: player, Side: side, TimePlayed: secs}
	}
	m1 := model.MatchRecord{ID: "m1", Participants: []model.ParticipantRecord{
		p("m1", "alice", model.SideBlue, 1800), p("m1", "eve", model.SideRed, 1800),
	}}
	// m2 shares alice's (player, side, timePlayed) triple with m1.
	m2 := model.MatchRecord{ID: "m2", Participants: []model.ParticipantRecord{
		p("m2", "alice", model.SideBlue, 1800), p("m2", "mallory", model.SideRed, 1800),
	}}
	matches := []model.MatchRecord{m1, m2}
	idx := NewMatchIndex(matches)

	t.Run("by id", func(t *testing.T) {
		ctx, ok := idx.Context(m2.Participants[0])
		require.True(t, ok)
		assert.Equal(t, "mallory", ctx[1].Player)
	})

	t.Run("triple first wins", func(t *testing.T) {
		orphan := p("", "alice", model.SideBlue, 1800)
		ctx, ok := idx.Context(orphan)
		require.True(t, ok)
		assert.Equal(t, "eve", ctx[1].Player)

		ctx, ok = ReassembleMatchContext(orphan, matches)
		require.True(t, ok)
		assert.Equal(t, "eve", ctx[1].Player)
	})

	t.Run("unknown id falls back to triple", func(t *testing.T) {
		ctx, ok := idx.Context(p("gone", "mallory", model.SideRed, 1800))
		require.True(t, ok)
		assert.Equal(t, "m2", ctx[0].MatchID)
	})

	t.Run("missing", func(t *testing.T) {
		_, ok := idx.Context(p("", "alice", model.SideRed, 1800))
		assert.False(t, ok)
		_, ok = ReassembleMatchContext(p("", "nobody", model.SideBlue, 1), matches)
		assert.False(t, ok)
		var nilIdx *MatchIndex
		_, ok = nilIdx.Context(m1.Participants[0])
		assert.False(t, ok)
	})
}

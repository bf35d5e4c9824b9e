package normalize

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/pable/go-scrim-metrics/internal/model"
)

// Field name pairs: replay-export spelling first, match-API spelling second.
const (
	keyGameVersion  = "gameVersion"
	keyGameVersion2 = "GAME_VERSION"
	keyParticipants = "participants"
)

type fieldPair struct{ primary, fallback string }

var (
	fRiotID         = fieldPair{"RIOT_ID_GAME_NAME", "riotIdGameName"}
	fSummonerID     = fieldPair{"SUMMONER_ID", "summonerId"}
	fTeam           = fieldPair{"TEAM", "team"}
	fIndividualPos  = fieldPair{"INDIVIDUAL_POSITION", "individualPosition"}
	fTeamPos        = fieldPair{"TEAM_POSITION", "teamPosition"}
	fSkin           = fieldPair{"SKIN", "skin"}
	fChampionName   = fieldPair{"CHAMPION_NAME", "championName"}
	fWin            = fieldPair{"WIN", "win"}
	fKills          = fieldPair{"CHAMPIONS_KILLED", "championsKilled"}
	fDeaths         = fieldPair{"NUM_DEATHS", "numDeaths"}
	fAssists        = fieldPair{"ASSISTS", "assists"}
	fDamageDealt    = fieldPair{"TOTAL_DAMAGE_DEALT_TO_CHAMPIONS", "totalDamageDealtToChampions"}
	fDamageTaken    = fieldPair{"TOTAL_DAMAGE_TAKEN", "totalDamageTaken"}
	fGold           = fieldPair{"GOLD_EARNED", "goldEarned"}
	fCreepScore     = fieldPair{"Missions_CreepScore", "missionsCreepscore"}
	fVisionScore    = fieldPair{"VISION_SCORE", "visionScore"}
	fWardsPlaced    = fieldPair{"WARD_PLACED", "wardPlaced"}
	fWardsKilled    = fieldPair{"WARD_KILLED", "wardKilled"}
	fControlWards   = fieldPair{"VISION_WARDS_BOUGHT_IN_GAME", "visionWardsBoughtInGame"}
	fEarlyTakedowns = fieldPair{"Missions_TakedownsBefore15Min", "missionsTakedownsbefore15min"}
	fTimePlayed     = fieldPair{"TIME_PLAYED", "timePlayed"}
	fBaron          = fieldPair{"BARON_KILLS", "baronKills"}
	fDragon         = fieldPair{"DRAGON_KILLS", "dragonKills"}
	fHerald         = fieldPair{"RIFT_HERALD_KILLS", "riftHeraldKills"}
	fVoidgrub       = fieldPair{"Missions_VoidMitesSummoned", "missionsVoidmitessummoned"}
	fTurretsKilled  = fieldPair{"TURRETS_KILLED", "turretsKilled"}
	fTurretsLost    = fieldPair{"FRIENDLY_TURRET_LOST", "friendlyTurretLost"}
	fJungleCS       = fieldPair{"NEUTRAL_MINIONS_KILLED", "neutralMinionsKilled"}
	fOwnJungleCS    = fieldPair{"NEUTRAL_MINIONS_KILLED_YOUR_JUNGLE", "neutralMinionsKilledYourJungle"}
	fEnemyJungleCS  = fieldPair{"NEUTRAL_MINIONS_KILLED_ENEMY_JUNGLE", "neutralMinionsKilledEnemyJungle"}
)

func (r Record) str(f fieldPair) string { return r.String(f.primary, f.fallback) }
func (r Record) num(f fieldPair) int { return r.Int(f.primary, f.fallback) }
func (r Record) fl(f fieldPair) float64 { return r.Float(f.primary, f.fallback) }

// PlayerIdentity resolves a participant's display identity: the Riot ID game
// name, falling back to the summoner ID.
func PlayerIdentity(rec Record) string {
	if id := rec.str(fRiotID); id != "" {
		return id
	}
	return rec.str(fSummonerID)
}

// RawPosition returns the unnormalized position string of a participant.
func RawPosition(rec Record) string {
	if p := rec.str(fIndividualPos); p != "" {
		return p
	}
	return rec.str(fTeamPos)
}

// GameVersion returns a match document's dotted version string.
func GameVersion(rec Record) string {
	return rec.String(keyGameVersion, keyGameVersion2)
}

// ParticipantsOf returns a match document's participant objects.
func ParticipantsOf(rec Record) []Record {
	return rec.Records(keyParticipants, "PARTICIPANTS")
}

// Participant converts one participant object into a typed record. The match
// fields (MatchID, Version, Bucket) are left for the caller.
func Participant(rec Record) model.ParticipantRecord {
	champion := rec.str(fSkin)
	if champion == "" {
		champion = rec.str(fChampionName)
	}
	return model.ParticipantRecord{
		Player:   PlayerIdentity(rec),
		Side:     model.Side(rec.str(fTeam)),
		Position: NormalizePosition(RawPosition(rec)),
		Champion: champion,
		Win:      rec.Bool(fWin.primary, fWin.fallback),

		Kills:              rec.num(fKills),
		Deaths:             rec.num(fDeaths),
		Assists:            rec.num(fAssists),
		DamageDealt:        rec.fl(fDamageDealt),
		DamageTaken:        rec.fl(fDamageTaken),
		GoldEarned:         rec.fl(fGold),
		CreepScore:         rec.num(fCreepScore),
		VisionScore:        rec.fl(fVisionScore),
		WardsPlaced:        rec.num(fWardsPlaced),
		WardsKilled:        rec.num(fWardsKilled),
		ControlWardsBought: rec.num(fControlWards),
		EarlyTakedowns:     rec.num(fEarlyTakedowns),
		TimePlayed:         rec.num(fTimePlayed),

		BaronKills:    rec.num(fBaron),
		DragonKills:   rec.num(fDragon),
		HeraldKills:   rec.num(fHerald),
		VoidgrubKills: rec.num(fVoidgrub),
		TurretsKilled: rec.num(fTurretsKilled),
		TurretsLost:   rec.num(fTurretsLost),

		JungleCS:      rec.num(fJungleCS),
		OwnJungleCS:   rec.num(fOwnJungleCS),
		EnemyJungleCS: rec.num(fEnemyJungleCS),
	}
}

// Match converts a decoded match document into a MatchRecord, stamping every
// participant with the match ID, version and version bucket.
func Match(id string, rec Record) model.MatchRecord {
	version := GameVersion(rec)
	bucket, _ := VersionBucket(version)
	raw := ParticipantsOf(rec)
	m := model.MatchRecord{
		ID:           id,
		Version:      version,
		Participants: make([]model.ParticipantRecord, 0, len(raw)),
	}
	for _, pr := range raw {
		p := Participant(pr)
		p.MatchID = id
		p.Version = version
		p.Bucket = bucket
		m.Participants = append(m.Participants, p)
	}
	return m
}

var errNotObject = errors.New("decode match document: not a JSON object")

// Decode parses a JSON match document body.
func Decode(body []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("decode match document: %w", err)
	}
	if rec == nil {
		return nil, errNotObject
	}
	return rec, nil
}

// DecodeMatch parses a stored document body into a MatchRecord.
func DecodeMatch(id string, body []byte) (model.MatchRecord, error) {
	rec, err := Decode(body)
	if err != nil {
		return model.MatchRecord{}, err
	}
	return Match(id, rec), nil
}

// DecodeStored converts stored documents into match records, preserving order.
// Documents that fail to decode are returned as errors alongside the good ones.
func DecodeStored(stored []model.StoredMatch) ([]model.MatchRecord, []error) {
	out := make([]model.MatchRecord, 0, len(stored))
	var errs []error
	for _, s := range stored {
		m, err := DecodeMatch(s.ID, s.Body)
		if err != nil {
			errs = append(errs, fmt.Errorf("match %s: %w", s.ID, err))
			continue
		}
		out = append(out, m)
	}
	return out, errs
}

// NormalizePosition maps the legacy UTILITY alias to SUPPORT. Known positions
// pass through; anything else becomes UNKNOWN.
func NormalizePosition(raw string) model.Position {
	if raw == "UTILITY" {
		return model.PositionSupport
	}
	for _, p := range model.Positions {
		if string(p) == raw {
			return p
		}
	}
	return model.PositionUnknown
}

// VersionBucket returns the first two dot-separated segments of a version
// string ("15.12.100.200" -> "15.12"). ok is false when there are fewer than two
// non-empty segments.
func VersionBucket(version string) (bucket string, ok bool) {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	return parts[0] + "." + parts[1], true
}

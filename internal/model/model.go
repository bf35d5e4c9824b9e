package model

// Side identifies which of the two teams a participant played on.
type Side string

const (
	SideUnknown Side = ""
	SideBlue    Side = "100"
	SideRed     Side = "200"
)

func (s Side) String() string {
	switch s {
	case SideBlue:
		return "BLUE"
	case SideRed:
		return "RED"
	default:
		return "?"
	}
}

// Position is a normalized lane/role.
type Position string

const (
	PositionTop     Position = "TOP"
	PositionJungle  Position = "JUNGLE"
	PositionMiddle  Position = "MIDDLE"
	PositionBottom  Position = "BOTTOM"
	PositionSupport Position = "SUPPORT"
	PositionUnknown Position = "UNKNOWN"
)

// Positions lists the known roles in draft order.
var Positions = []Position{PositionTop, PositionJungle, PositionMiddle, PositionBottom, PositionSupport}

// Objective is a neutral objective tracked per team.
type Objective string

const (
	ObjectiveBaron    Objective = "baron"
	ObjectiveDragon   Objective = "dragon"
	ObjectiveHerald   Objective = "herald"
	ObjectiveVoidgrub Objective = "voidgrub"
)

// Objectives lists every tracked objective in display order.
var Objectives = []Objective{ObjectiveBaron, ObjectiveDragon, ObjectiveHerald, ObjectiveVoidgrub}

// ---- Stored documents ----

// StoredMatch is a raw uploaded match document as persisted by a store.
type StoredMatch struct {
	ID          string // synthetic UUID assigned at ingestion
	Hash        string // sha256 of the document body, for duplicate detection
	GameVersion string
	ImportedAt  string // RFC3339
	Body        []byte // original JSON document
}

// MatchSummary is a listing row for a stored match.
type MatchSummary struct {
	ID           string
	GameVersion  string
	Bucket       string
	ImportedAt   string
	Participants int
}

// ---- Normalized records ----

// MatchRecord is one played game with its participants in upload order.
type MatchRecord struct {
	ID           string
	Version      string
	Participants []ParticipantRecord
}

// ParticipantRecord is one player's performance in one match, with field-name
// variants already merged.
type ParticipantRecord struct {
	MatchID string
	Version string
	Bucket  string // "" when Version has fewer than two segments

	Player   string
	Side     Side
	Position Position
	Champion string
	Win      bool

	Kills, Deaths, Assists int
	DamageDealt            float64 // to champions
	DamageTaken            float64
	GoldEarned             float64
	CreepScore             int
	VisionScore            float64
	WardsPlaced            int
	WardsKilled            int
	ControlWardsBought     int
	EarlyTakedowns         int // kills+assists before 15:00
	TimePlayed             int // seconds

	BaronKills    int
	DragonKills   int
	HeraldKills   int
	VoidgrubKills int
	TurretsKilled int
	TurretsLost   int

	JungleCS      int // total neutral minions
	OwnJungleCS   int
	EnemyJungleCS int
}

// ObjectiveCount returns the participant's counter for one objective.
func (p ParticipantRecord) ObjectiveCount(o Objective) int {
	switch o {
	case ObjectiveBaron:
		return p.BaronKills
	case ObjectiveDragon:
		return p.DragonKills
	case ObjectiveHerald:
		return p.HeraldKills
	case ObjectiveVoidgrub:
		return p.VoidgrubKills
	}
	return 0
}

// Takedowns is kills plus assists.
func (p ParticipantRecord) Takedowns() int {
	return p.Kills + p.Assists
}

// ---- Derived metrics ----

// InvasionResult reports whether a jungler took camps on the enemy side.
type InvasionResult string

const (
	InvasionNone    InvasionResult = "none"
	InvasionSuccess InvasionResult = "success"
)

// JungleMetrics are the jungle-only derived fields.
type JungleMetrics struct {
	CSPerMinute       float64        `json:"jungleCsPerMinute"`
	CounterJungleRate float64        `json:"counterJungleRate"`
	OwnJungleControl  float64        `json:"ownJungleControl"`
	Invasion          InvasionResult `json:"jungleInvasion"`
}

// SupportMetrics are the support-only derived fields.
type SupportMetrics struct {
	WardsPlaced int `json:"wardsPlaced"`
	WardsKilled int `json:"wardsKilled"`
}

// DerivedMetrics is computed from one participant and its match context.
// All ratios are unrounded; formatting belongs to the presentation layer.
type DerivedMetrics struct {
	Position Position `json:"position"`
	Champion string   `json:"champion"`

	KDA                    float64 `json:"kda"`
	KillParticipation      float64 `json:"killParticipation"`
	EarlyKillParticipation float64 `json:"earlyKillParticipation"`
	DamageEfficiency       float64 `json:"damageEfficiency"`
	GoldEfficiency         float64 `json:"goldEfficiency"`
	CSPerMinute            float64 `json:"csPerMinute"`
	VisionContribution     float64 `json:"visionContribution"`

	// Set when the denominator came from the configured fallback rather than
	// real team totals.
	KillParticipationEstimated      bool `json:"killParticipationEstimated"`
	EarlyKillParticipationEstimated bool `json:"earlyKillParticipationEstimated"`

	Jungle  *JungleMetrics  `json:"jungle,omitempty"`
	Support *SupportMetrics `json:"support,omitempty"`
}

// JungleAverages are jungle extras averaged over jungle rows only.
type JungleAverages struct {
	Games             int     `json:"games"`
	CSPerMinute       float64 `json:"jungleCsPerMinute"`
	CounterJungleRate float64 `json:"counterJungleRate"`
	OwnJungleControl  float64 `json:"ownJungleControl"`
	Invasions         int     `json:"invasions"`
}

// SupportAverages are support extras averaged over support rows only.
type SupportAverages struct {
	Games       int     `json:"games"`
	WardsPlaced float64 `json:"wardsPlaced"`
	WardsKilled float64 `json:"wardsKilled"`
}

// AveragedMetrics is the arithmetic mean of DerivedMetrics over a set of games.
type AveragedMetrics struct {
	Games int `json:"games"`

	KDA                    float64 `json:"kda"`
	KillParticipation      float64 `json:"killParticipation"`
	EarlyKillParticipation float64 `json:"earlyKillParticipation"`
	DamageEfficiency       float64 `json:"damageEfficiency"`
	GoldEfficiency         float64 `json:"goldEfficiency"`
	CSPerMinute            float64 `json:"csPerMinute"`
	VisionContribution     float64 `json:"visionContribution"`

	// Number of games whose participation metrics used a fallback denominator.
	EstimatedGames int `json:"estimatedGames"`

	Jungle  *JungleAverages  `json:"jungle,omitempty"`
	Support *SupportAverages `json:"support,omitempty"`
}

// RawAverages are per-game means of the raw box-score fields.
type RawAverages struct {
	Games              int     `json:"games"`
	Kills              float64 `json:"kills"`
	Deaths             float64 `json:"deaths"`
	Assists            float64 `json:"assists"`
	CreepScore         float64 `json:"creepScore"`
	GoldEarned         float64 `json:"goldEarned"`
	DamageDealt        float64 `json:"damageDealt"`
	DamageTaken        float64 `json:"damageTaken"`
	VisionScore        float64 `json:"visionScore"`
	ControlWardsBought float64 `json:"controlWardsBought"`
	WardsKilled        float64 `json:"wardsKilled"`
	WardsPlaced        float64 `json:"wardsPlaced"`
	EarlyTakedowns     float64 `json:"earlyTakedowns"`
}

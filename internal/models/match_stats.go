package models

// GamePhase is one of the early/mid/late segments of a match.
type GamePhase string

const (
	PhaseEarly GamePhase = "early"
	PhaseMid   GamePhase = "mid"
	PhaseLate  GamePhase = "late"
)

// Phases lists all phases in chronological order.
var Phases = []GamePhase{PhaseEarly, PhaseMid, PhaseLate}

// Valid reports whether p is a known game phase.
func (p GamePhase) Valid() bool {
	return p == PhaseEarly || p == PhaseMid || p == PhaseLate
}

// MatchStatRow is one player's stats for one phase of one match.
// Rows are immutable once loaded; ingestion appends, never mutates.
// Counts are stored as float64 since every downstream consumer
// aggregates them into means.
type MatchStatRow struct {
	MatchID      string    `json:"match_id"`
	PlayerID     string    `json:"player_id"`
	Map          string    `json:"map,omitempty"`
	GamePhase    GamePhase `json:"game_phase"`
	Kills        float64   `json:"kills"`
	Deaths       float64   `json:"deaths"`
	Assists      float64   `json:"assists"`
	DamageDealt  float64   `json:"damage_dealt"`
	KAST         float64   `json:"kast"`
	RoundsPlayed float64   `json:"rounds_played"`
	RoundsWon    float64   `json:"rounds_won"`

	// LoL extension columns; nil when the dataset does not carry them.
	GoldDiffAtPhase *float64 `json:"gold_diff_at_phase,omitempty"`
	ObjectiveScore  *float64 `json:"objective_score,omitempty"`
}

// PlayerRef identifies a player for listing endpoints.
type PlayerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MatchRef identifies a match for listing endpoints.
type MatchRef struct {
	ID string `json:"id"`
}

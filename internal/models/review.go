package models

// AgendaItem is one titled entry in a match review agenda.
type AgendaItem struct {
	Title   string `json:"title"`
	Data    string `json:"data"`
	Insight string `json:"insight"`
}

// PhaseSummary is the team-level aggregate for one phase of a match.
// Winrate is nil when no rounds were recorded for the phase.
type PhaseSummary struct {
	Phase        GamePhase `json:"game_phase"`
	DamageDealt  float64   `json:"damage_dealt"`
	KAST         float64   `json:"kast"`
	Deaths       float64   `json:"deaths"`
	RoundsWon    float64   `json:"rounds_won"`
	RoundsPlayed float64   `json:"rounds_played"`
	Winrate      *float64  `json:"winrate"`
}

// PlayerSummary is the per-player aggregate for one match.
type PlayerSummary struct {
	PlayerID string  `json:"player_id"`
	Deaths   float64 `json:"deaths"`
	KAST     float64 `json:"kast"`
	Damage   float64 `json:"damage"`
}

// ReviewSupporting carries the raw aggregate tables behind the agenda
// so charts and agenda text stay consistent.
type ReviewSupporting struct {
	PhaseSummary  []PhaseSummary  `json:"phase_summary"`
	PlayerSummary []PlayerSummary `json:"player_summary"`
}

// MacroReview is the review agenda for one concluded match.
type MacroReview struct {
	MatchID    string           `json:"match_id"`
	Game       string           `json:"game"`
	Agenda     []AgendaItem     `json:"agenda"`
	Supporting ReviewSupporting `json:"supporting"`
}

package models

// Metric names tracked by the deviation engine. These double as the
// JSON field names in MetricAggregate so agenda text and supporting
// tables stay consistent.
const (
	MetricKills        = "kills"
	MetricDeaths       = "deaths"
	MetricAssists      = "assists"
	MetricDamageDealt  = "damage_dealt"
	MetricKAST         = "kast"
	MetricRoundsWon    = "rounds_won"
	MetricRoundsPlayed = "rounds_played"
)

// MetricAggregate holds the mean of each tracked metric across a set
// of rows. A zero value stands in for an empty set (empty baseline).
type MetricAggregate struct {
	Kills        float64 `json:"kills"`
	Deaths       float64 `json:"deaths"`
	Assists      float64 `json:"assists"`
	DamageDealt  float64 `json:"damage_dealt"`
	KAST         float64 `json:"kast"`
	RoundsWon    float64 `json:"rounds_won"`
	RoundsPlayed float64 `json:"rounds_played"`
}

// Metric returns the aggregate value for a metric name. Unknown names
// return 0.
func (m MetricAggregate) Metric(name string) float64 {
	switch name {
	case MetricKills:
		return m.Kills
	case MetricDeaths:
		return m.Deaths
	case MetricAssists:
		return m.Assists
	case MetricDamageDealt:
		return m.DamageDealt
	case MetricKAST:
		return m.KAST
	case MetricRoundsWon:
		return m.RoundsWon
	case MetricRoundsPlayed:
		return m.RoundsPlayed
	}
	return 0
}

// BaselineVsRecent splits a player's history into an older baseline
// set and the most recent N matches, with aggregates for both sides.
// BaselineMatches and RecentMatches are disjoint and ordered oldest
// to newest; together they cover every match the player appears in.
type BaselineVsRecent struct {
	PlayerID        string                        `json:"player_id"`
	Baseline        MetricAggregate               `json:"baseline"`
	Recent          MetricAggregate               `json:"recent"`
	BaselineByPhase map[GamePhase]MetricAggregate `json:"baseline_by_phase"`
	RecentByPhase   map[GamePhase]MetricAggregate `json:"recent_by_phase"`
	BaselineMatches []string                      `json:"baseline_matches"`
	RecentMatches   []string                      `json:"recent_matches"`
}

// Direction labels a deviation. Deaths have inverted polarity: a rise
// in deaths is a "drop" in performance.
type Direction string

const (
	DirectionDrop Direction = "drop"
	DirectionRise Direction = "rise"
)

// TrendLabel classifies a chronological series.
type TrendLabel string

const (
	TrendDeclining TrendLabel = "declining"
	TrendImproving TrendLabel = "improving"
	TrendStable    TrendLabel = "stable"
	// TrendUnknown means the series was too short to classify.
	TrendUnknown TrendLabel = ""
)

// Deviation is a significant baseline-vs-recent change for one metric.
type Deviation struct {
	Metric    string    `json:"metric"`
	Baseline  float64   `json:"baseline"`
	Recent    float64   `json:"recent"`
	PctChange float64   `json:"pct_change"`
	Direction Direction `json:"direction"`
}

// PhaseDeviation is a negative-outcome deviation scoped to one phase.
type PhaseDeviation struct {
	Phase     GamePhase `json:"phase"`
	Metric    string    `json:"metric"`
	Baseline  float64   `json:"baseline"`
	Recent    float64   `json:"recent"`
	PctChange float64   `json:"pct_change"`
	Direction Direction `json:"direction"`
}

// PhaseStat is a per-phase aggregate for one player: metric means plus
// summed round counts.
type PhaseStat struct {
	Phase        GamePhase `json:"game_phase"`
	Kills        float64   `json:"kills"`
	Deaths       float64   `json:"deaths"`
	Assists      float64   `json:"assists"`
	DamageDealt  float64   `json:"damage_dealt"`
	KAST         float64   `json:"kast"`
	RoundsPlayed float64   `json:"rounds_played"`
	RoundsWon    float64   `json:"rounds_won"`
}

// RollingPoint is one match's per-metric mean plus the expanding
// (cumulative) average up to and including that match.
type RollingPoint struct {
	MatchID            string  `json:"match_id"`
	Kills              float64 `json:"kills"`
	Deaths             float64 `json:"deaths"`
	Assists            float64 `json:"assists"`
	DamageDealt        float64 `json:"damage_dealt"`
	KAST               float64 `json:"kast"`
	KillsRolling       float64 `json:"kills_rolling"`
	DeathsRolling      float64 `json:"deaths_rolling"`
	AssistsRolling     float64 `json:"assists_rolling"`
	DamageDealtRolling float64 `json:"damage_dealt_rolling"`
	KASTRolling        float64 `json:"kast_rolling"`
}

// PhasePoint is a chart-friendly baseline-vs-recent pair for one phase.
// Values are nil when the phase is absent from that side of the split.
type PhasePoint struct {
	Phase        GamePhase `json:"phase"`
	BaselineDMG  *float64  `json:"baseline_damage"`
	RecentDMG    *float64  `json:"recent_damage"`
	BaselineKAST *float64  `json:"baseline_kast"`
	RecentKAST   *float64  `json:"recent_kast"`
}

// PlayerAnalysis is the full analysis response for one player.
// Trends maps metric name to the direction of the per-match series.
type PlayerAnalysis struct {
	PlayerID         string                `json:"player_id"`
	Game             string                `json:"game"`
	BaselineVsRecent *BaselineVsRecent     `json:"baseline_vs_recent"`
	PhaseStats       []PhaseStat           `json:"phase_stats"`
	PhaseSeries      []PhasePoint          `json:"phase_series"`
	Rolling          []RollingPoint        `json:"rolling"`
	Trends           map[string]TrendLabel `json:"trends"`
	Deviations       []Deviation           `json:"deviations"`
	PhaseDeviations  []PhaseDeviation      `json:"phase_deviations"`
}

// Recommendation pairs a quantitative fact with prose coaching advice.
type Recommendation struct {
	Data    string `json:"data"`
	Insight string `json:"insight"`
}

// RecommendationsResponse wraps a player's coaching recommendations.
type RecommendationsResponse struct {
	PlayerID        string           `json:"player_id"`
	Game            string           `json:"game"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Package chat routes free-text coaching questions to the analytics
// engine. Classification is keyword-based and deterministic; no
// external model is involved, so answers only ever cite project data.
package chat

import (
	"regexp"
	"strings"

	"github.com/assistantcoach/coach-api/internal/models"
)

// Intent is the question category the chat layer can answer.
type Intent string

const (
	IntentPhaseBestPlayer Intent = "phase_best_player" // Who performed best in early/mid/late?
	IntentPhaseComparison Intent = "phase_comparison"  // Compare performance across phases
	IntentMapInsight      Intent = "map_insight"       // Which map favors aggressive play?
	IntentMatchInsights   Intent = "match_insights"    // Show insights for match m1
	IntentPhaseIssues     Intent = "phase_issues"      // What went wrong in late game?
	IntentPlayerSummary   Intent = "player_summary"    // Summary for a specific player
	IntentUnknown         Intent = "unknown"
)

// Params carries values extracted from the question.
type Params struct {
	Phase   models.GamePhase
	MatchID string
}

var matchIDPattern = regexp.MustCompile(`\bm([1-9]\d*)\b`)

// normalize lowercases and collapses whitespace for matching.
func normalize(question string) string {
	return strings.Join(strings.Fields(strings.ToLower(question)), " ")
}

func containsAny(text string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// extractPhase pulls early/mid/late out of the question if present.
func extractPhase(question string) models.GamePhase {
	text := normalize(question)
	switch {
	case strings.Contains(text, "early"):
		return models.PhaseEarly
	case strings.Contains(text, "mid"):
		return models.PhaseMid
	case strings.Contains(text, "late"):
		return models.PhaseLate
	}
	return ""
}

// extractMatchID pulls a match id like m1, m2 out of the question.
func extractMatchID(question string) string {
	return matchIDPattern.FindString(normalize(question))
}

// Classify maps a question to an intent plus extracted params. Rules
// are ordered most-specific first; the first hit wins.
func Classify(question string) (Intent, Params) {
	if strings.TrimSpace(question) == "" {
		return IntentUnknown, Params{}
	}
	q := normalize(question)

	// Match-specific: "insights for match m1", "show review for m2"
	if containsAny(q, "insight", "review", "agenda") && (strings.Contains(q, "match") || matchIDPattern.MatchString(q)) {
		return IntentMatchInsights, Params{MatchID: extractMatchID(question)}
	}

	// Phase-specific "what went wrong" / "issues in late game"
	if containsAny(q, "went wrong", "issue", "problem", "weak", "struggle") ||
		(strings.Contains(q, "wrong") && strings.Contains(q, "late")) {
		phase := extractPhase(question)
		if phase == "" {
			phase = models.PhaseLate
		}
		return IntentPhaseIssues, Params{Phase: phase}
	}

	// Who performed best in early/mid/late?
	if containsAny(q, "who performed", "best in", "top performer", "who did best", "best player", "performed best") {
		phase := extractPhase(question)
		if phase == "" {
			phase = models.PhaseEarly
		}
		return IntentPhaseBestPlayer, Params{Phase: phase}
	}

	// Compare performance across early, mid, late
	if containsAny(q, "compare", "comparison", "across early", "early mid late", "phase performance", "performance by phase") {
		return IntentPhaseComparison, Params{}
	}

	// Map favors aggressive / which map
	if containsAny(q, "which map", "map favor", "aggressive", "map performance", "best map", "worst map") {
		return IntentMapInsight, Params{}
	}

	// Player summary / insights for player X
	if containsAny(q, "player", "summary for") {
		return IntentPlayerSummary, Params{}
	}

	return IntentUnknown, Params{}
}

package chat

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/assistantcoach/coach-api/internal/logic"
	"github.com/assistantcoach/coach-api/internal/models"
)

// HandleQuery classifies the question, runs the right analytics over
// the snapshot, and returns a structured answer with the metrics used
// and a confidence score.
func HandleQuery(question, game string, rows []models.MatchStatRow) *models.ChatResponse {
	intent, params := Classify(question)

	if len(rows) == 0 {
		return &models.ChatResponse{
			Answer:      "I don't have any match data loaded yet. Load data and try again.",
			MetricsUsed: []string{},
			Confidence:  0,
		}
	}

	var answer string
	var metricsUsed []string
	var confidence float64

	switch intent {
	case IntentPhaseBestPlayer:
		answer, metricsUsed, confidence = answerPhaseBestPlayer(rows, params.Phase)
	case IntentPhaseComparison:
		answer, metricsUsed, confidence = answerPhaseComparison(rows)
	case IntentMapInsight:
		answer, metricsUsed, confidence = answerMapInsight(rows)
	case IntentMatchInsights:
		matchID := params.MatchID
		if matchID == "" {
			matchID = "m1"
		}
		answer, metricsUsed, confidence = answerMatchInsights(rows, matchID, game)
	case IntentPhaseIssues:
		answer, metricsUsed, confidence = answerPhaseIssues(rows, params.Phase)
	case IntentPlayerSummary:
		answer, metricsUsed, confidence = answerPlayerSummary(rows)
	default:
		answer, metricsUsed, confidence = answerUnknown()
	}

	return &models.ChatResponse{
		Answer:      answer,
		MetricsUsed: metricsUsed,
		Confidence:  math.Round(confidence*100) / 100,
	}
}

// playerAgg is a per-player aggregate used by the answer builders.
type playerAgg struct {
	playerID string
	damage   float64
	kast     float64
	kills    float64
	deaths   float64
}

// aggregatePlayers computes per-player metric means over rows, sorted
// by player id so tie-breaks stay deterministic.
func aggregatePlayers(rows []models.MatchStatRow) []playerAgg {
	type sums struct {
		damage, kast, kills, deaths float64
		n                           float64
	}
	byPlayer := make(map[string]*sums)
	for _, r := range rows {
		s := byPlayer[r.PlayerID]
		if s == nil {
			s = &sums{}
			byPlayer[r.PlayerID] = s
		}
		s.damage += r.DamageDealt
		s.kast += r.KAST
		s.kills += r.Kills
		s.deaths += r.Deaths
		s.n++
	}
	ids := make([]string, 0, len(byPlayer))
	for id := range byPlayer {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]playerAgg, 0, len(ids))
	for _, id := range ids {
		s := byPlayer[id]
		out = append(out, playerAgg{
			playerID: id,
			damage:   s.damage / s.n,
			kast:     s.kast / s.n,
			kills:    s.kills / s.n,
			deaths:   s.deaths / s.n,
		})
	}
	return out
}

func phaseRows(rows []models.MatchStatRow, phase models.GamePhase) []models.MatchStatRow {
	var out []models.MatchStatRow
	for _, r := range rows {
		if r.GamePhase == phase {
			out = append(out, r)
		}
	}
	return out
}

func answerPhaseBestPlayer(rows []models.MatchStatRow, phase models.GamePhase) (string, []string, float64) {
	metricsUsed := []string{models.MetricDamageDealt, models.MetricKAST, "game_phase"}
	subset := phaseRows(rows, phase)
	if len(subset) == 0 {
		return fmt.Sprintf("I don't have enough data for the %s phase yet. Try asking about early, mid, or late game with our current matches.", phase),
			metricsUsed, 0.3
	}
	agg := aggregatePlayers(subset)
	sort.SliceStable(agg, func(i, j int) bool { return agg[i].damage > agg[j].damage })

	top := agg[0]
	others := make([]string, 0, len(agg)-1)
	for _, a := range agg[1:] {
		others = append(others, a.playerID)
	}
	answer := fmt.Sprintf("In the **%s** phase, **%s** performed best: highest average damage (%d) and KAST at %d%%. Other players in order of damage: %s.",
		phase, top.playerID, int(top.damage), int(math.Round(top.kast*100)), strings.Join(others, ", "))
	return answer, metricsUsed, 0.9
}

func answerPhaseComparison(rows []models.MatchStatRow) (string, []string, float64) {
	metricsUsed := []string{models.MetricDamageDealt, models.MetricKAST, "game_phase"}
	var lines []string
	for _, phase := range models.Phases {
		subset := phaseRows(rows, phase)
		if len(subset) == 0 {
			continue
		}
		var damage, kast float64
		for _, r := range subset {
			damage += r.DamageDealt
			kast += r.KAST
		}
		n := float64(len(subset))
		lines = append(lines, fmt.Sprintf("**%s**: avg damage %d, KAST %d%%",
			phase, int(math.Round(damage/n)), int(math.Round(kast/n*100))))
	}
	if len(lines) == 0 {
		return "I don't have enough phase data to compare. Here's what I can tell you: we track early, mid, and late game — ask for a specific phase or player.",
			metricsUsed, 0.4
	}
	answer := "Performance across phases: " + strings.Join(lines, "; ") + ". Use Phase Breakdown in the dashboard for per-player comparison."
	return answer, metricsUsed, 0.85
}

func answerMapInsight(rows []models.MatchStatRow) (string, []string, float64) {
	metricsUsed := []string{models.MetricDamageDealt, models.MetricKills, "map"}
	type mapAgg struct {
		name          string
		damage, kills float64
	}
	type sums struct {
		damage, kills, n float64
	}
	byMap := make(map[string]*sums)
	for _, r := range rows {
		if r.Map == "" {
			continue
		}
		s := byMap[r.Map]
		if s == nil {
			s = &sums{}
			byMap[r.Map] = s
		}
		s.damage += r.DamageDealt
		s.kills += r.Kills
		s.n++
	}
	if len(byMap) == 0 {
		return "I don't have map-level data in this dataset. I can still help with phase or match-level insights.", metricsUsed, 0.3
	}
	maps := make([]mapAgg, 0, len(byMap))
	for name, s := range byMap {
		maps = append(maps, mapAgg{name: name, damage: s.damage / s.n, kills: s.kills / s.n})
	}
	sort.Slice(maps, func(i, j int) bool {
		if maps[i].damage != maps[j].damage {
			return maps[i].damage > maps[j].damage
		}
		return maps[i].name < maps[j].name
	})

	top := maps[0]
	listing := make([]string, 0, len(maps))
	for _, m := range maps {
		listing = append(listing, fmt.Sprintf("%s (%d dmg)", m.name, int(math.Round(m.damage))))
	}
	answer := fmt.Sprintf("**%s** has the highest average damage (%d) and kills (%.1f) in our data — it favors more aggressive play. Maps by damage: %s.",
		top.name, int(math.Round(top.damage)), top.kills, strings.Join(listing, ", "))
	return answer, metricsUsed, 0.85
}

func answerMatchInsights(rows []models.MatchStatRow, matchID, game string) (string, []string, float64) {
	metricsUsed := []string{"game_phase", models.MetricKAST, models.MetricDamageDealt, models.MetricRoundsWon, "map"}
	found := false
	for _, r := range rows {
		if r.MatchID == matchID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Sprintf("I don't have data for match **%s**. Available matches: %s.", matchID, strings.Join(matchIDs(rows), ", ")),
			metricsUsed, 0.3
	}
	review := logic.GenerateMacroReview(rows, matchID, game)
	if len(review.Agenda) == 0 {
		return fmt.Sprintf("Match **%s** has no agenda items yet. I can still show phase and player stats — ask for a specific phase or player.", matchID),
			metricsUsed, 0.5
	}
	agenda := review.Agenda
	if len(agenda) > 5 {
		agenda = agenda[:5]
	}
	lines := make([]string, 0, len(agenda))
	for _, a := range agenda {
		lines = append(lines, fmt.Sprintf("• **%s**: %s %s", a.Title, a.Data, a.Insight))
	}
	answer := fmt.Sprintf("Insights for match **%s**:\n\n%s", matchID, strings.Join(lines, "\n\n"))
	return answer, metricsUsed, 0.9
}

// matchIDs returns the sorted distinct match ids in rows.
func matchIDs(rows []models.MatchStatRow) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range rows {
		if !seen[r.MatchID] {
			seen[r.MatchID] = true
			ids = append(ids, r.MatchID)
		}
	}
	sort.Strings(ids)
	return ids
}

func answerPhaseIssues(rows []models.MatchStatRow, phase models.GamePhase) (string, []string, float64) {
	metricsUsed := []string{models.MetricKAST, models.MetricDamageDealt, models.MetricDeaths, "game_phase"}
	subset := phaseRows(rows, phase)
	if len(subset) == 0 {
		return fmt.Sprintf("I don't have enough data for the **%s** phase. Try 'insights for match m1' or 'who performed best in early'.", phase),
			metricsUsed, 0.3
	}
	agg := aggregatePlayers(subset)
	worstKAST := agg[0]
	worstDamage := agg[0]
	for _, a := range agg[1:] {
		if a.kast < worstKAST.kast {
			worstKAST = a
		}
		if a.damage < worstDamage.damage {
			worstDamage = a
		}
	}
	answer := fmt.Sprintf("In the **%s** phase, **%s** had the lowest KAST (%.0f%%) and **%s** had the lowest average damage (%d). Focus review on %s-phase rotations and trade timing for those players.",
		phase, worstKAST.playerID, worstKAST.kast*100, worstDamage.playerID, int(worstDamage.damage), phase)
	return answer, metricsUsed, 0.85
}

func answerPlayerSummary(rows []models.MatchStatRow) (string, []string, float64) {
	metricsUsed := []string{"player_id"}
	var names []string
	seen := make(map[string]bool)
	for _, r := range rows {
		if !seen[r.PlayerID] {
			seen[r.PlayerID] = true
			names = append(names, r.PlayerID)
		}
	}
	sort.Strings(names)
	if len(names) > 8 {
		names = names[:8]
	}
	answer := fmt.Sprintf("I have data for: %s. Ask for a specific player (e.g. 'insights for %s') or phase (e.g. 'who performed best in early game?') and I'll use our analytics to answer.",
		strings.Join(names, ", "), names[0])
	return answer, metricsUsed, 0.7
}

func answerUnknown() (string, []string, float64) {
	answer := "I don't have enough data for that yet, but here's what I can tell you. " +
		"I can answer: **Who performed best in early/mid/late game?** • **Compare performance across early, mid, late** • " +
		"**Which map favors aggressive play?** • **Show insights for match m1** • **What went wrong in late game?** " +
		"Try one of those or ask about a specific player or phase."
	return answer, []string{}, 0.4
}

package logic

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/assistantcoach/coach-api/internal/models"
)

func fmtPct(x float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(x*100)))
}

// GenerateMacroReview produces a game review agenda for one concluded
// match: weakest team phase (by round winrate, falling back to KAST),
// weakest map when map data exists, and the player most likely dying
// untraded, plus a LoL objective item when gold data is present. A
// match with zero rows yields an empty agenda, never an error.
func GenerateMacroReview(rows []models.MatchStatRow, matchID, game string) *models.MacroReview {
	game = strings.ToLower(game)
	var mdf []models.MatchStatRow
	for _, r := range rows {
		if r.MatchID == matchID {
			mdf = append(mdf, r)
		}
	}
	review := &models.MacroReview{
		MatchID: matchID,
		Game:    game,
		Agenda:  []models.AgendaItem{},
	}
	if len(mdf) == 0 {
		review.Supporting = models.ReviewSupporting{
			PhaseSummary:  []models.PhaseSummary{},
			PlayerSummary: []models.PlayerSummary{},
		}
		return review
	}

	phaseSummary := summarizePhases(mdf)
	review.Agenda = append(review.Agenda, phaseFocusItem(phaseSummary))

	if item, ok := mapNoteItem(mdf); ok {
		review.Agenda = append(review.Agenda, item)
	}

	playerSummary := summarizePlayers(mdf)
	review.Agenda = append(review.Agenda, tradeItem(playerSummary))

	if game == "lol" {
		if item, ok := objectiveSetupItem(mdf); ok {
			review.Agenda = append(review.Agenda, item)
		}
	}

	review.Supporting = models.ReviewSupporting{
		PhaseSummary:  phaseSummary,
		PlayerSummary: playerSummary,
	}
	return review
}

// summarizePhases aggregates team-level stats per phase: metric means,
// summed rounds, and the derived round winrate (nil when no rounds).
func summarizePhases(rows []models.MatchStatRow) []models.PhaseSummary {
	byPhase := make(map[models.GamePhase][]models.MatchStatRow)
	for _, r := range rows {
		byPhase[r.GamePhase] = append(byPhase[r.GamePhase], r)
	}
	var out []models.PhaseSummary
	for _, phase := range models.Phases {
		phaseRows, ok := byPhase[phase]
		if !ok {
			continue
		}
		agg := aggregate(phaseRows)
		var roundsWon, roundsPlayed float64
		for _, r := range phaseRows {
			roundsWon += r.RoundsWon
			roundsPlayed += r.RoundsPlayed
		}
		s := models.PhaseSummary{
			Phase:        phase,
			DamageDealt:  agg.DamageDealt,
			KAST:         agg.KAST,
			Deaths:       agg.Deaths,
			RoundsWon:    roundsWon,
			RoundsPlayed: roundsPlayed,
		}
		if roundsPlayed > 0 {
			wr := roundsWon / roundsPlayed
			s.Winrate = &wr
		}
		out = append(out, s)
	}
	return out
}

// phaseFocusItem picks the weakest phase by winrate when any phase has
// one, otherwise by mean KAST. Ties keep the earlier phase.
func phaseFocusItem(summary []models.PhaseSummary) models.AgendaItem {
	var weakest *models.PhaseSummary
	for i := range summary {
		s := &summary[i]
		if s.Winrate == nil {
			continue
		}
		if weakest == nil || *s.Winrate < *weakest.Winrate {
			weakest = s
		}
	}
	if weakest != nil {
		return models.AgendaItem{
			Title: "Phase focus",
			Data:  fmt.Sprintf("Team winrate is lowest in %s phase (%s).", weakest.Phase, fmtPct(*weakest.Winrate)),
			Insight: fmt.Sprintf("Rewatch key %s-phase decisions (rotations, setup timing). Tighten your default plan to avoid giving away momentum in that window.",
				weakest.Phase),
		}
	}
	for i := range summary {
		s := &summary[i]
		if weakest == nil || s.KAST < weakest.KAST {
			weakest = s
		}
	}
	return models.AgendaItem{
		Title: "Phase focus",
		Data:  fmt.Sprintf("Team KAST is lowest in %s phase (%s).", weakest.Phase, fmtPct(weakest.KAST)),
		Insight: fmt.Sprintf("Your %s-phase is where trades/assists/survivability break down. Emphasize pairing and trade protocols during this window.",
			weakest.Phase),
	}
}

// mapNoteItem aggregates round winrate per map and flags the worst one.
// It reports nothing when no row carries a map or no map has a defined
// winrate. Maps are visited alphabetically so ties are deterministic.
func mapNoteItem(rows []models.MatchStatRow) (models.AgendaItem, bool) {
	type mapAgg struct {
		roundsWon    float64
		roundsPlayed float64
	}
	byMap := make(map[string]*mapAgg)
	for _, r := range rows {
		if r.Map == "" {
			continue
		}
		a := byMap[r.Map]
		if a == nil {
			a = &mapAgg{}
			byMap[r.Map] = a
		}
		a.roundsWon += r.RoundsWon
		a.roundsPlayed += r.RoundsPlayed
	}
	if len(byMap) == 0 {
		return models.AgendaItem{}, false
	}
	names := make([]string, 0, len(byMap))
	for name := range byMap {
		names = append(names, name)
	}
	sort.Strings(names)

	worstMap := ""
	worstWR := 0.0
	for _, name := range names {
		a := byMap[name]
		if a.roundsPlayed == 0 {
			continue
		}
		wr := a.roundsWon / a.roundsPlayed
		if worstMap == "" || wr < worstWR {
			worstMap = name
			worstWR = wr
		}
	}
	if worstMap == "" {
		return models.AgendaItem{}, false
	}
	return models.AgendaItem{
		Title:   "Map note",
		Data:    fmt.Sprintf("On %s, round winrate was %s in this match.", worstMap, fmtPct(worstWR)),
		Insight: "Build a short map-specific checklist: pistol plan, early defaults, and mid-round pivot triggers. Make sure everyone knows the first two contingency calls.",
	}, true
}

// summarizePlayers aggregates mean deaths/kast/damage per player,
// sorted by player id.
func summarizePlayers(rows []models.MatchStatRow) []models.PlayerSummary {
	byPlayer := make(map[string][]models.MatchStatRow)
	for _, r := range rows {
		byPlayer[r.PlayerID] = append(byPlayer[r.PlayerID], r)
	}
	ids := make([]string, 0, len(byPlayer))
	for id := range byPlayer {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]models.PlayerSummary, 0, len(ids))
	for _, id := range ids {
		agg := aggregate(byPlayer[id])
		out = append(out, models.PlayerSummary{
			PlayerID: id,
			Deaths:   agg.Deaths,
			KAST:     agg.KAST,
			Damage:   agg.DamageDealt,
		})
	}
	return out
}

// tradeItem flags the player with the lowest mean KAST as the likely
// isolated-deaths review point.
func tradeItem(summary []models.PlayerSummary) models.AgendaItem {
	worst := summary[0]
	for _, s := range summary[1:] {
		if s.KAST < worst.KAST {
			worst = s
		}
	}
	return models.AgendaItem{
		Title: "Isolated deaths / trades",
		Data: fmt.Sprintf("%s had the lowest KAST in the match (%s) with %.1f deaths per phase.",
			worst.PlayerID, fmtPct(worst.KAST), worst.Deaths),
		Insight: fmt.Sprintf("Review %s's deaths: were they traded? If not, adjust spacing and assign a consistent trade partner in the phase where it happens most.",
			worst.PlayerID),
	}
}

// objectiveSetupItem emits a LoL objective item when the mid phase has
// gold-differential data and the team is behind on average.
func objectiveSetupItem(rows []models.MatchStatRow) (models.AgendaItem, bool) {
	var goldSum, goldN, objSum, objN float64
	for _, r := range rows {
		if r.GamePhase != models.PhaseMid {
			continue
		}
		if r.GoldDiffAtPhase != nil {
			goldSum += *r.GoldDiffAtPhase
			goldN++
		}
		if r.ObjectiveScore != nil {
			objSum += *r.ObjectiveScore
			objN++
		}
	}
	if goldN == 0 {
		return models.AgendaItem{}, false
	}
	goldMid := goldSum / goldN
	if goldMid >= 0 {
		return models.AgendaItem{}, false
	}
	var objMid float64
	if objN > 0 {
		objMid = objSum / objN
	}
	return models.AgendaItem{
		Title: "Objective setup (LoL)",
		Data: fmt.Sprintf("Mid-game gold diff averages %.0f (behind), with objective score %.1f.",
			goldMid, objMid),
		Insight: "Your mid-game setups are costing you. Sync base timers ~45s before objectives, invest deeper vision, and avoid overcommitting to low-probability contests.",
	}, true
}

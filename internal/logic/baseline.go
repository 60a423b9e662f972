package logic

import (
	"sort"

	"github.com/assistantcoach/coach-api/internal/models"
)

// DefaultRecentWindow is the number of most recent matches forming the
// "recent" side of the split.
const DefaultRecentWindow = 2

// matchOrder pins the chronological order of the known demo match ids.
// Rows do not carry timestamps, so ordering falls back to this table;
// an unrecognized id sorts to index 0 (earliest). This is an explicit,
// documented fallback policy, not an implicit default.
var matchOrder = map[string]int{
	"m1": 0,
	"m2": 1,
	"m3": 2,
	"m4": 3,
	"m5": 4,
}

func matchIndex(matchID string) int {
	if i, ok := matchOrder[matchID]; ok {
		return i
	}
	return 0
}

// distinctMatches returns the distinct match ids in rows, ordered by
// the match-order table. Ties (unknown ids) keep row order.
func distinctMatches(rows []models.MatchStatRow) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range rows {
		if !seen[r.MatchID] {
			seen[r.MatchID] = true
			ids = append(ids, r.MatchID)
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return matchIndex(ids[i]) < matchIndex(ids[j])
	})
	return ids
}

func playerRows(rows []models.MatchStatRow, playerID string) []models.MatchStatRow {
	var out []models.MatchStatRow
	for _, r := range rows {
		if r.PlayerID == playerID {
			out = append(out, r)
		}
	}
	return out
}

// aggregate computes the mean of each tracked metric across rows.
// An empty set yields the zero aggregate.
func aggregate(rows []models.MatchStatRow) models.MetricAggregate {
	var agg models.MetricAggregate
	if len(rows) == 0 {
		return agg
	}
	for _, r := range rows {
		agg.Kills += r.Kills
		agg.Deaths += r.Deaths
		agg.Assists += r.Assists
		agg.DamageDealt += r.DamageDealt
		agg.KAST += r.KAST
		agg.RoundsWon += r.RoundsWon
		agg.RoundsPlayed += r.RoundsPlayed
	}
	n := float64(len(rows))
	agg.Kills /= n
	agg.Deaths /= n
	agg.Assists /= n
	agg.DamageDealt /= n
	agg.KAST /= n
	agg.RoundsWon /= n
	agg.RoundsPlayed /= n
	return agg
}

// aggregateByPhase groups rows by phase and computes per-phase means,
// rounded to 4 decimal places. Phases with no rows are absent.
func aggregateByPhase(rows []models.MatchStatRow) map[models.GamePhase]models.MetricAggregate {
	byPhase := make(map[models.GamePhase][]models.MatchStatRow)
	for _, r := range rows {
		byPhase[r.GamePhase] = append(byPhase[r.GamePhase], r)
	}
	out := make(map[models.GamePhase]models.MetricAggregate, len(byPhase))
	for phase, phaseRows := range byPhase {
		agg := aggregate(phaseRows)
		out[phase] = models.MetricAggregate{
			Kills:        round4(agg.Kills),
			Deaths:       round4(agg.Deaths),
			Assists:      round4(agg.Assists),
			DamageDealt:  round4(agg.DamageDealt),
			KAST:         round4(agg.KAST),
			RoundsWon:    round4(agg.RoundsWon),
			RoundsPlayed: round4(agg.RoundsPlayed),
		}
	}
	return out
}

// BaselineVsRecent partitions a player's match history into an older
// baseline set and the most recent recentN matches, with aggregate and
// per-phase-aggregate metrics for each side. Aggregation is the mean
// over all rows in the set, so multi-phase matches are implicitly
// phase-weighted by row count.
//
// When the player has recentN or fewer distinct matches, everything is
// "recent" and the baseline stays empty; the zero baseline then trips
// the percent-change guard downstream, so no spurious deviations come
// out of an empty comparison set.
//
// Returns nil when the player has no rows at all.
func BaselineVsRecent(rows []models.MatchStatRow, playerID string, recentN int) *models.BaselineVsRecent {
	if recentN <= 0 {
		recentN = DefaultRecentWindow
	}
	player := playerRows(rows, playerID)
	if len(player) == 0 {
		return nil
	}

	matchIDs := distinctMatches(player)
	var baselineIDs, recentIDs []string
	if len(matchIDs) <= recentN {
		recentIDs = matchIDs
	} else {
		baselineIDs = matchIDs[:len(matchIDs)-recentN]
		recentIDs = matchIDs[len(matchIDs)-recentN:]
	}

	inBaseline := make(map[string]bool, len(baselineIDs))
	for _, id := range baselineIDs {
		inBaseline[id] = true
	}
	var baselineRows, recentRows []models.MatchStatRow
	for _, r := range player {
		if inBaseline[r.MatchID] {
			baselineRows = append(baselineRows, r)
		} else {
			recentRows = append(recentRows, r)
		}
	}

	baselineAgg := aggregate(baselineRows)
	recentAgg := aggregate(recentRows)
	if len(recentRows) == 0 {
		recentAgg = baselineAgg
	}

	return &models.BaselineVsRecent{
		PlayerID:        playerID,
		Baseline:        baselineAgg,
		Recent:          recentAgg,
		BaselineByPhase: aggregateByPhase(baselineRows),
		RecentByPhase:   aggregateByPhase(recentRows),
		BaselineMatches: append([]string{}, baselineIDs...),
		RecentMatches:   append([]string{}, recentIDs...),
	}
}

// PhaseStats aggregates a player's per-phase stats: metric means plus
// summed round counts, in chronological phase order.
func PhaseStats(rows []models.MatchStatRow, playerID string) []models.PhaseStat {
	player := playerRows(rows, playerID)
	if len(player) == 0 {
		return nil
	}
	byPhase := make(map[models.GamePhase][]models.MatchStatRow)
	for _, r := range player {
		byPhase[r.GamePhase] = append(byPhase[r.GamePhase], r)
	}
	var out []models.PhaseStat
	for _, phase := range models.Phases {
		phaseRows, ok := byPhase[phase]
		if !ok {
			continue
		}
		agg := aggregate(phaseRows)
		var roundsPlayed, roundsWon float64
		for _, r := range phaseRows {
			roundsPlayed += r.RoundsPlayed
			roundsWon += r.RoundsWon
		}
		out = append(out, models.PhaseStat{
			Phase:        phase,
			Kills:        agg.Kills,
			Deaths:       agg.Deaths,
			Assists:      agg.Assists,
			DamageDealt:  agg.DamageDealt,
			KAST:         agg.KAST,
			RoundsPlayed: roundsPlayed,
			RoundsWon:    roundsWon,
		})
	}
	return out
}

// RollingAverages computes per-match metric means for a player in
// chronological order, plus the expanding average through each match.
func RollingAverages(rows []models.MatchStatRow, playerID string) []models.RollingPoint {
	player := playerRows(rows, playerID)
	if len(player) == 0 {
		return nil
	}
	matchIDs := distinctMatches(player)
	byMatch := make(map[string][]models.MatchStatRow)
	for _, r := range player {
		byMatch[r.MatchID] = append(byMatch[r.MatchID], r)
	}

	out := make([]models.RollingPoint, 0, len(matchIDs))
	var cum models.MetricAggregate
	for i, id := range matchIDs {
		agg := aggregate(byMatch[id])
		cum.Kills += agg.Kills
		cum.Deaths += agg.Deaths
		cum.Assists += agg.Assists
		cum.DamageDealt += agg.DamageDealt
		cum.KAST += agg.KAST
		n := float64(i + 1)
		out = append(out, models.RollingPoint{
			MatchID:            id,
			Kills:              agg.Kills,
			Deaths:             agg.Deaths,
			Assists:            agg.Assists,
			DamageDealt:        agg.DamageDealt,
			KAST:               agg.KAST,
			KillsRolling:       cum.Kills / n,
			DeathsRolling:      cum.Deaths / n,
			AssistsRolling:     cum.Assists / n,
			DamageDealtRolling: cum.DamageDealt / n,
			KASTRolling:        cum.KAST / n,
		})
	}
	return out
}

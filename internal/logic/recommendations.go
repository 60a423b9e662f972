package logic

import (
	"fmt"
	"math"

	"github.com/assistantcoach/coach-api/internal/models"
)

// metricLabels maps metric names to the phrasing used in coaching text.
var metricLabels = map[string]string{
	models.MetricKills:       "kills per phase",
	models.MetricDeaths:      "deaths per phase",
	models.MetricAssists:     "assists per phase",
	models.MetricDamageDealt: "damage dealt",
	models.MetricKAST:        "KAST (kill/assist/survive/trade)",
	models.MetricRoundsWon:   "rounds won",
}

func metricLabel(metric string) string {
	if label, ok := metricLabels[metric]; ok {
		return label
	}
	return metric
}

// pctString renders a signed ratio as a whole percent of absolute
// value; the surrounding phrasing conveys the sign.
func pctString(pct float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(math.Abs(pct*100))))
}

// GenerateRecommendations turns overall and phase deviations into
// coaching recommendations. Overall items come first, then phase items;
// when neither list produced anything, exactly one fallback item is
// emitted. A death decrease (classified as a performance rise) does not
// currently produce a positive item; only non-death rises are praised.
func GenerateRecommendations(playerID string, c *models.BaselineVsRecent, deviations []models.Deviation, phaseDevs []models.PhaseDeviation) []models.Recommendation {
	recs := []models.Recommendation{}

	for _, d := range deviations {
		label := metricLabel(d.Metric)
		pctStr := pctString(d.PctChange)
		if d.Direction == models.DirectionDrop {
			if d.Metric == models.MetricDeaths {
				recs = append(recs, models.Recommendation{
					Data: fmt.Sprintf("%s's deaths increased by %s in recent matches vs baseline (%.1f → %.1f).",
						playerID, pctStr, d.Baseline, d.Recent),
					Insight: fmt.Sprintf("Focus on positioning and life preservation. When %s dies more often, the team loses round control. Review death timings and avoid unnecessary peeks or solo holds.",
						playerID),
				})
			} else {
				recs = append(recs, models.Recommendation{
					Data: fmt.Sprintf("%s's %s dropped by %s in recent matches (baseline %.2f → recent %.2f).",
						playerID, label, pctStr, d.Baseline, d.Recent),
					Insight: fmt.Sprintf("Recent form in %s is below %s's usual level. Recommend VOD review of recent games and role-specific drills to restore consistency.",
						label, playerID),
				})
			}
		} else if d.Metric != models.MetricDeaths {
			recs = append(recs, models.Recommendation{
				Data: fmt.Sprintf("%s's %s is up %s vs baseline (%.2f → %.2f).",
					playerID, label, pctStr, d.Baseline, d.Recent),
				Insight: fmt.Sprintf("Positive trend in %s. Reinforce what's working and keep this in the game plan.", label),
			})
		}
	}

	for _, d := range phaseDevs {
		pctStr := pctString(d.PctChange)
		switch {
		case d.Direction == models.DirectionDrop && d.Metric == models.MetricDamageDealt:
			recs = append(recs, models.Recommendation{
				Data: fmt.Sprintf("%s's %s-game damage dropped by %s compared to baseline (%.0f → %.0f).",
					playerID, d.Phase, pctStr, d.Baseline, d.Recent),
				Insight: fmt.Sprintf("%s's %s-game impact has slipped. Consider comp adjustments or mid-game role assignments (e.g. resource priority, site takes) to get them more involved in key fights.",
					playerID, d.Phase),
			})
		case d.Direction == models.DirectionDrop && d.Metric == models.MetricKAST:
			recs = append(recs, models.Recommendation{
				Data: fmt.Sprintf("%s's %s-game KAST is down %s vs baseline.", playerID, d.Phase, pctStr),
				Insight: fmt.Sprintf("In %s game, %s is less often getting a kill, assist, or trade. Review %s-game positioning and comms so they're in positions to contribute or trade.",
					d.Phase, playerID, d.Phase),
			})
		case d.Direction == models.DirectionRise && d.Metric == models.MetricDeaths:
			recs = append(recs, models.Recommendation{
				Data: fmt.Sprintf("%s's %s-game deaths are up %s vs baseline.", playerID, d.Phase, pctStr),
				Insight: fmt.Sprintf("Deaths in %s game are hurting rounds. Tighten up %s-game discipline: avoid isolated deaths and prioritize staying alive for key objectives.",
					d.Phase, d.Phase),
			})
		}
	}

	if len(recs) == 0 {
		recs = append(recs, models.Recommendation{
			Data:    fmt.Sprintf("%s's recent metrics are in line with baseline.", playerID),
			Insight: "No major drop-offs detected. Keep current practice and focus on opponent-specific prep.",
		})
	}

	return recs
}

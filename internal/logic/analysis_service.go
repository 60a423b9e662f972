package logic

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/assistantcoach/coach-api/internal/models"
)

type analysisService struct {
	data    Dataset
	recentN int
}

// NewAnalysisService builds the analysis service over a dataset.
// recentN is the recent-window size; values below 1 fall back to the
// default window.
func NewAnalysisService(data Dataset, recentN int) AnalysisService {
	if recentN < 1 {
		recentN = DefaultRecentWindow
	}
	return &analysisService{data: data, recentN: recentN}
}

func hasPlayer(rows []models.MatchStatRow, playerID string) bool {
	for _, r := range rows {
		if r.PlayerID == playerID {
			return true
		}
	}
	return false
}

// PlayerAnalysis assembles the comparison, deviations, phase stats and
// rolling averages for one player. The independent aggregations run
// concurrently over the same immutable snapshot.
func (s *analysisService) PlayerAnalysis(ctx context.Context, game, playerID string) (*models.PlayerAnalysis, error) {
	rows, err := s.data.Rows(game)
	if err != nil {
		return nil, err
	}
	if !hasPlayer(rows, playerID) {
		return nil, ErrPlayerNotFound
	}

	analysis := &models.PlayerAnalysis{
		PlayerID: playerID,
		Game:     game,
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		comparison := BaselineVsRecent(rows, playerID, s.recentN)
		analysis.BaselineVsRecent = comparison
		analysis.Deviations = DetectDeviations(comparison)
		analysis.PhaseDeviations = PhaseDeviations(comparison)
		return nil
	})
	g.Go(func() error {
		analysis.PhaseStats = PhaseStats(rows, playerID)
		return nil
	})
	g.Go(func() error {
		analysis.Rolling = RollingAverages(rows, playerID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	analysis.PhaseSeries = phaseSeries(analysis.BaselineVsRecent)
	analysis.Trends = metricTrends(analysis.Rolling)
	return analysis, nil
}

// metricTrends classifies the per-match series of each core metric.
func metricTrends(rolling []models.RollingPoint) map[string]models.TrendLabel {
	series := map[string][]float64{
		models.MetricKills:       {},
		models.MetricDeaths:      {},
		models.MetricDamageDealt: {},
		models.MetricKAST:        {},
	}
	for _, p := range rolling {
		series[models.MetricKills] = append(series[models.MetricKills], p.Kills)
		series[models.MetricDeaths] = append(series[models.MetricDeaths], p.Deaths)
		series[models.MetricDamageDealt] = append(series[models.MetricDamageDealt], p.DamageDealt)
		series[models.MetricKAST] = append(series[models.MetricKAST], p.KAST)
	}
	out := make(map[string]models.TrendLabel, len(series))
	for metric, values := range series {
		out[metric] = DetectTrend(values)
	}
	return out
}

// PlayerRecommendations runs the full pipeline from split to prose.
func (s *analysisService) PlayerRecommendations(ctx context.Context, game, playerID string) (*models.RecommendationsResponse, error) {
	rows, err := s.data.Rows(game)
	if err != nil {
		return nil, err
	}
	if !hasPlayer(rows, playerID) {
		return nil, ErrPlayerNotFound
	}

	comparison := BaselineVsRecent(rows, playerID, s.recentN)
	deviations := DetectDeviations(comparison)
	phaseDevs := PhaseDeviations(comparison)

	return &models.RecommendationsResponse{
		PlayerID:        playerID,
		Game:            game,
		Recommendations: GenerateRecommendations(playerID, comparison, deviations, phaseDevs),
	}, nil
}

// phaseSeries flattens the per-phase comparison into chart points for
// every phase, with nils where a side lacks data.
func phaseSeries(c *models.BaselineVsRecent) []models.PhasePoint {
	out := make([]models.PhasePoint, 0, len(models.Phases))
	for _, phase := range models.Phases {
		p := models.PhasePoint{Phase: phase}
		if c != nil {
			if agg, ok := c.BaselineByPhase[phase]; ok {
				dmg, kast := agg.DamageDealt, agg.KAST
				p.BaselineDMG, p.BaselineKAST = &dmg, &kast
			}
			if agg, ok := c.RecentByPhase[phase]; ok {
				dmg, kast := agg.DamageDealt, agg.KAST
				p.RecentDMG, p.RecentKAST = &dmg, &kast
			}
		}
		out = append(out, p)
	}
	return out
}

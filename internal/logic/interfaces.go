package logic

import (
	"context"
	"errors"

	"github.com/assistantcoach/coach-api/internal/models"
)

// Boundary errors mapped to 404 by the HTTP layer.
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrMatchNotFound  = errors.New("match not found")
)

// Dataset provides an immutable snapshot of rows for a game. The slice
// must never be mutated by callers.
type Dataset interface {
	Rows(game string) ([]models.MatchStatRow, error)
}

// AnalysisService computes baseline-vs-recent analysis and coaching
// recommendations for a player.
type AnalysisService interface {
	PlayerAnalysis(ctx context.Context, game, playerID string) (*models.PlayerAnalysis, error)
	PlayerRecommendations(ctx context.Context, game, playerID string) (*models.RecommendationsResponse, error)
}

// ReviewService generates the per-match review agenda.
type ReviewService interface {
	MatchReview(ctx context.Context, game, matchID string) (*models.MacroReview, error)
}

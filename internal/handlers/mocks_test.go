package handlers

import (
	"context"

	"github.com/assistantcoach/coach-api/internal/models"
)

// MockAnalysisService
type MockAnalysisService struct {
	PlayerAnalysisFunc        func(ctx context.Context, game, playerID string) (*models.PlayerAnalysis, error)
	PlayerRecommendationsFunc func(ctx context.Context, game, playerID string) (*models.RecommendationsResponse, error)
}

func (m *MockAnalysisService) PlayerAnalysis(ctx context.Context, game, playerID string) (*models.PlayerAnalysis, error) {
	if m.PlayerAnalysisFunc != nil {
		return m.PlayerAnalysisFunc(ctx, game, playerID)
	}
	return &models.PlayerAnalysis{PlayerID: playerID, Game: game}, nil
}

func (m *MockAnalysisService) PlayerRecommendations(ctx context.Context, game, playerID string) (*models.RecommendationsResponse, error) {
	if m.PlayerRecommendationsFunc != nil {
		return m.PlayerRecommendationsFunc(ctx, game, playerID)
	}
	return &models.RecommendationsResponse{PlayerID: playerID, Game: game}, nil
}

// MockReviewService
type MockReviewService struct {
	MatchReviewFunc func(ctx context.Context, game, matchID string) (*models.MacroReview, error)
}

func (m *MockReviewService) MatchReview(ctx context.Context, game, matchID string) (*models.MacroReview, error) {
	if m.MatchReviewFunc != nil {
		return m.MatchReviewFunc(ctx, game, matchID)
	}
	return &models.MacroReview{MatchID: matchID, Game: game}, nil
}

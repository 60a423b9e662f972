package logic

import (
	"context"

	"github.com/assistantcoach/coach-api/internal/models"
)

type reviewService struct {
	data Dataset
}

// NewReviewService builds the match review service over a dataset.
func NewReviewService(data Dataset) ReviewService {
	return &reviewService{data: data}
}

func (s *reviewService) MatchReview(ctx context.Context, game, matchID string) (*models.MacroReview, error) {
	rows, err := s.data.Rows(game)
	if err != nil {
		return nil, err
	}
	found := false
	for _, r := range rows {
		if r.MatchID == matchID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrMatchNotFound
	}
	return GenerateMacroReview(rows, matchID, game), nil
}

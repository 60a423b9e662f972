package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/assistantcoach/coach-api/internal/logic"
)

// GetMatchReview returns the macro review agenda for a match
func (h *Handler) GetMatchReview(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")
	game := h.gameParam(r)

	review, err := h.review.MatchReview(r.Context(), game, matchID)
	if err != nil {
		if errors.Is(err, logic.ErrMatchNotFound) {
			h.errorResponse(w, http.StatusNotFound, "Match not found")
			return
		}
		h.logger.Errorw("Failed to build match review", "match", matchID, "game", game, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}
	h.jsonResponse(w, http.StatusOK, review)
}

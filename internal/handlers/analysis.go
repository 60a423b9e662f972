package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/assistantcoach/coach-api/internal/logic"
)

// GetPlayerAnalysis returns the baseline-vs-recent comparison, detected
// deviations and chart series for a player
func (h *Handler) GetPlayerAnalysis(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerId")
	game := h.gameParam(r)

	analysis, err := h.analysis.PlayerAnalysis(r.Context(), game, playerID)
	if err != nil {
		if errors.Is(err, logic.ErrPlayerNotFound) {
			h.errorResponse(w, http.StatusNotFound, "Player not found")
			return
		}
		h.logger.Errorw("Failed to analyze player", "player", playerID, "game", game, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}
	h.jsonResponse(w, http.StatusOK, analysis)
}

// GetPlayerRecommendations returns coaching recommendations for a player
func (h *Handler) GetPlayerRecommendations(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerId")
	game := h.gameParam(r)

	recs, err := h.analysis.PlayerRecommendations(r.Context(), game, playerID)
	if err != nil {
		if errors.Is(err, logic.ErrPlayerNotFound) {
			h.errorResponse(w, http.StatusNotFound, "Player not found")
			return
		}
		h.logger.Errorw("Failed to build recommendations", "player", playerID, "game", game, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}
	h.jsonResponse(w, http.StatusOK, recs)
}

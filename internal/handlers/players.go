package handlers

import (
	"net/http"

	"github.com/assistantcoach/coach-api/internal/dataset"
)

// ListPlayers returns the distinct players in the active dataset
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	game := h.gameParam(r)
	rows, err := h.store.Rows(game)
	if err != nil {
		h.logger.Errorw("Failed to load dataset", "game", game, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Dataset unavailable")
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"game":    game,
		"players": dataset.Players(rows),
	})
}

// ListMatches returns the distinct matches in the active dataset
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	game := h.gameParam(r)
	rows, err := h.store.Rows(game)
	if err != nil {
		h.logger.Errorw("Failed to load dataset", "game", game, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Dataset unavailable")
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"game":    game,
		"matches": dataset.Matches(rows),
	})
}

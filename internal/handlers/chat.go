package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/assistantcoach/coach-api/internal/chat"
	"github.com/assistantcoach/coach-api/internal/models"
)

// ChatQuery handles POST /api/v1/chat/query
func (h *Handler) ChatQuery(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		h.jsonResponse(w, http.StatusOK, &models.ChatResponse{
			Answer:      "Ask me about player performance, phases (early/mid/late), maps, or a specific match (e.g. 'insights for match m1').",
			MetricsUsed: []string{},
			Confidence:  0,
		})
		return
	}

	game := h.gameParam(r)
	rows, err := h.store.Rows(game)
	if err != nil {
		h.logger.Errorw("Failed to load dataset for chat", "game", game, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Dataset unavailable")
		return
	}

	resp := chat.HandleQuery(req.Question, game, rows)
	chatQueries.Inc()
	h.jsonResponse(w, http.StatusOK, resp)
}

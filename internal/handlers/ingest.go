package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/assistantcoach/coach-api/internal/grid"
	"github.com/assistantcoach/coach-api/internal/models"
)

// IngestGridMatch handles POST /api/v1/ingest/grid_match. It pulls a
// finished match from the GRID API, converts it to per-phase rows and
// appends them to the in-memory dataset.
func (h *Handler) IngestGridMatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.GridIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if h.grid == nil || !h.grid.Configured() {
		h.errorResponse(w, http.StatusServiceUnavailable, "GRID ingestion is not configured")
		return
	}

	game := h.gameParam(r)
	jobID := uuid.NewString()
	h.logger.Infow("GRID ingestion started", "jobId", jobID, "game", game, "matchId", req.MatchID)

	payload, err := h.grid.FetchMatch(r.Context(), game, req.MatchID)
	if err != nil {
		if errors.Is(err, grid.ErrNotConfigured) {
			h.errorResponse(w, http.StatusServiceUnavailable, "GRID ingestion is not configured")
			return
		}
		h.logger.Errorw("GRID fetch failed", "jobId", jobID, "matchId", req.MatchID, "error", err)
		h.errorResponse(w, http.StatusBadGateway, "Failed to fetch match from GRID")
		return
	}

	rows := grid.ToRows(payload, game, req.MatchID)
	if len(rows) == 0 {
		h.errorResponse(w, http.StatusBadGateway, "GRID match contained no usable player segments")
		return
	}
	if err := h.store.Append(game, rows); err != nil {
		h.logger.Errorw("Failed to append ingested rows", "jobId", jobID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}
	matchesIngested.Inc()

	seen := make(map[string]bool)
	var players []string
	for _, row := range rows {
		if !seen[row.PlayerID] {
			seen[row.PlayerID] = true
			players = append(players, row.PlayerID)
		}
	}

	h.logger.Infow("GRID ingestion complete", "jobId", jobID, "matchId", req.MatchID, "rowsAdded", len(rows))
	h.jsonResponse(w, http.StatusOK, &models.GridIngestResponse{
		Game:      game,
		MatchID:   req.MatchID,
		RowsAdded: len(rows),
		Players:   players,
	})
}

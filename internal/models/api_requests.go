package models

// ChatRequest is the body of POST /api/v1/chat/query.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the chat layer's structured answer.
type ChatResponse struct {
	Answer      string   `json:"answer"`
	MetricsUsed []string `json:"metrics_used"`
	Confidence  float64  `json:"confidence"`
}

// GridIngestRequest is the body of POST /api/v1/ingest/grid_match.
type GridIngestRequest struct {
	MatchID string `json:"match_id" validate:"required"`
}

// GridIngestResponse reports the outcome of a GRID match ingestion.
type GridIngestResponse struct {
	Game      string   `json:"game"`
	MatchID   string   `json:"match_id"`
	RowsAdded int      `json:"rows_added"`
	Players   []string `json:"players"`
}

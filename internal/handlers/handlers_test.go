package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/assistantcoach/coach-api/internal/dataset"
	"github.com/assistantcoach/coach-api/internal/logic"
	"github.com/assistantcoach/coach-api/internal/models"
)

func testRows() []models.MatchStatRow {
	return []models.MatchStatRow{
		{PlayerID: "oxy", MatchID: "m1", Map: "Ascent", GamePhase: models.PhaseEarly,
			Kills: 5, Deaths: 2, DamageDealt: 800, KAST: 0.8, RoundsPlayed: 8, RoundsWon: 5},
		{PlayerID: "leaf", MatchID: "m1", Map: "Ascent", GamePhase: models.PhaseLate,
			Kills: 4, Deaths: 3, DamageDealt: 640, KAST: 0.72, RoundsPlayed: 7, RoundsWon: 3},
	}
}

func testHandler(t *testing.T, cfg Config) *Handler {
	t.Helper()
	if cfg.Store == nil {
		cfg.Store = dataset.NewStore(func(game string) ([]models.MatchStatRow, error) {
			return testRows(), nil
		}, zap.NewNop())
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Analysis == nil {
		cfg.Analysis = &MockAnalysisService{}
	}
	if cfg.Review == nil {
		cfg.Review = &MockReviewService{}
	}
	return New(cfg)
}

func doRequest(h *Handler, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.Routes(nil).ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := testHandler(t, Config{})
	rec := doRequest(h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestReady(t *testing.T) {
	h := testHandler(t, Config{})
	rec := doRequest(h, http.MethodGet, "/ready", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestListPlayers(t *testing.T) {
	h := testHandler(t, Config{})
	rec := doRequest(h, http.MethodGet, "/api/v1/players", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Game    string             `json:"game"`
		Players []models.PlayerRef `json:"players"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Game != "valorant" {
		t.Errorf("game = %q, want default valorant", body.Game)
	}
	if len(body.Players) != 2 || body.Players[0].ID != "leaf" {
		t.Errorf("players = %v, want sorted [leaf oxy]", body.Players)
	}
}

func TestListMatches(t *testing.T) {
	h := testHandler(t, Config{})
	rec := doRequest(h, http.MethodGet, "/api/v1/matches?game=LOL", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Game    string            `json:"game"`
		Matches []models.MatchRef `json:"matches"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Game != "lol" {
		t.Errorf("game = %q, want lowercased lol", body.Game)
	}
}

func TestGetPlayerAnalysis(t *testing.T) {
	var gotGame, gotPlayer string
	analysis := &MockAnalysisService{
		PlayerAnalysisFunc: func(ctx context.Context, game, playerID string) (*models.PlayerAnalysis, error) {
			gotGame, gotPlayer = game, playerID
			return &models.PlayerAnalysis{PlayerID: playerID, Game: game}, nil
		},
	}
	h := testHandler(t, Config{Analysis: analysis})

	rec := doRequest(h, http.MethodGet, "/api/v1/analysis/oxy?game=valorant", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotGame != "valorant" || gotPlayer != "oxy" {
		t.Errorf("service called with %s/%s, want valorant/oxy", gotGame, gotPlayer)
	}
}

func TestGetPlayerAnalysisNotFound(t *testing.T) {
	analysis := &MockAnalysisService{
		PlayerAnalysisFunc: func(ctx context.Context, game, playerID string) (*models.PlayerAnalysis, error) {
			return nil, logic.ErrPlayerNotFound
		},
	}
	h := testHandler(t, Config{Analysis: analysis})

	rec := doRequest(h, http.MethodGet, "/api/v1/analysis/nobody", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetPlayerRecommendations(t *testing.T) {
	h := testHandler(t, Config{})
	rec := doRequest(h, http.MethodGet, "/api/v1/recommendations/oxy", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body models.RecommendationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.PlayerID != "oxy" {
		t.Errorf("playerId = %q, want oxy", body.PlayerID)
	}
}

func TestGetMatchReviewNotFound(t *testing.T) {
	review := &MockReviewService{
		MatchReviewFunc: func(ctx context.Context, game, matchID string) (*models.MacroReview, error) {
			return nil, logic.ErrMatchNotFound
		},
	}
	h := testHandler(t, Config{Review: review})

	rec := doRequest(h, http.MethodGet, "/api/v1/review/m99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestChatQuery(t *testing.T) {
	h := testHandler(t, Config{})
	rec := doRequest(h, http.MethodPost, "/api/v1/chat/query", `{"question":"who performed best in early game?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body models.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", body.Confidence)
	}
	if !strings.Contains(body.Answer, "oxy") {
		t.Errorf("answer = %q, want oxy named", body.Answer)
	}
}

func TestChatQueryEmptyQuestion(t *testing.T) {
	h := testHandler(t, Config{})
	rec := doRequest(h, http.MethodPost, "/api/v1/chat/query", `{"question":"  "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body models.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Confidence != 0 {
		t.Errorf("confidence = %v, want 0 for the usage prompt", body.Confidence)
	}
}

func TestChatQueryInvalidJSON(t *testing.T) {
	h := testHandler(t, Config{})
	rec := doRequest(h, http.MethodPost, "/api/v1/chat/query", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/assistantcoach/coach-api/internal/grid"
	"github.com/assistantcoach/coach-api/internal/models"
)

func TestIngestGridMatch(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/valorant/matches/gm1" {
			t.Errorf("path = %q, want /valorant/matches/gm1", r.URL.Path)
		}
		w.Write([]byte(`{
			"map": "Ascent",
			"players": [
				{"id": "oxy", "segments": [
					{"phase": "early", "kills": 3, "deaths": 1, "damage": 450, "kast": 0.8, "rounds_played": 6, "rounds_won": 4},
					{"phase": "late", "kills": 2, "deaths": 2, "damage": 300, "kast": 0.7, "rounds_played": 5, "rounds_won": 2}
				]},
				{"id": "leaf", "segments": [{"phase": "mid", "kills": 1, "damage": 150, "kast": 0.6}]}
			]
		}`))
	}))
	defer upstream.Close()

	h := testHandler(t, Config{Grid: grid.NewClient(upstream.URL, "key123", time.Second)})

	rec := doRequest(h, http.MethodPost, "/api/v1/ingest/grid_match", `{"match_id":"gm1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body models.GridIngestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.RowsAdded != 3 {
		t.Errorf("rowsAdded = %d, want 3", body.RowsAdded)
	}
	if len(body.Players) != 2 {
		t.Errorf("players = %v, want [oxy leaf]", body.Players)
	}

	// The ingested rows must be visible to subsequent reads.
	rows, err := h.store.Rows("valorant")
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if len(rows) != len(testRows())+3 {
		t.Errorf("store has %d rows, want %d", len(rows), len(testRows())+3)
	}
}

func TestIngestGridMatchUnconfigured(t *testing.T) {
	h := testHandler(t, Config{Grid: grid.NewClient("https://example.invalid", "", time.Second)})
	rec := doRequest(h, http.MethodPost, "/api/v1/ingest/grid_match", `{"match_id":"gm1"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestIngestGridMatchValidation(t *testing.T) {
	h := testHandler(t, Config{Grid: grid.NewClient("https://example.invalid", "key", time.Second)})

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "MissingMatchID", body: `{}`, want: http.StatusBadRequest},
		{name: "InvalidJSON", body: `{`, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(h, http.MethodPost, "/api/v1/ingest/grid_match", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestIngestGridMatchUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	h := testHandler(t, Config{Grid: grid.NewClient(upstream.URL, "key123", time.Second)})
	rec := doRequest(h, http.MethodPost, "/api/v1/ingest/grid_match", `{"match_id":"gone"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestIngestGridMatchEmptyPayload(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"map":"Ascent","players":[]}`))
	}))
	defer upstream.Close()

	h := testHandler(t, Config{Grid: grid.NewClient(upstream.URL, "key123", time.Second)})
	rec := doRequest(h, http.MethodPost, "/api/v1/ingest/grid_match", `{"match_id":"gm1"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 for empty payload", rec.Code)
	}
}

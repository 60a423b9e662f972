package logic

import (
	"strings"
	"testing"

	"github.com/assistantcoach/coach-api/internal/models"
)

func TestGenerateRecommendationsFallback(t *testing.T) {
	recs := GenerateRecommendations("oxy", &models.BaselineVsRecent{}, nil, nil)
	if len(recs) != 1 {
		t.Fatalf("GenerateRecommendations() returned %d items, want 1 fallback", len(recs))
	}
	if recs[0].Insight != "No major drop-offs detected. Keep current practice and focus on opponent-specific prep." {
		t.Errorf("fallback insight = %q", recs[0].Insight)
	}
	if !strings.Contains(recs[0].Data, "oxy") {
		t.Errorf("fallback data should name the player, got %q", recs[0].Data)
	}
}

func TestGenerateRecommendationsDeathsAlarm(t *testing.T) {
	devs := []models.Deviation{
		{Metric: models.MetricDeaths, Baseline: 10, Recent: 12, PctChange: 0.2, Direction: models.DirectionDrop},
	}
	recs := GenerateRecommendations("oxy", nil, devs, nil)
	if len(recs) != 1 {
		t.Fatalf("GenerateRecommendations() returned %d items, want 1", len(recs))
	}
	if want := "oxy's deaths increased by 20% in recent matches vs baseline (10.0 → 12.0)."; recs[0].Data != want {
		t.Errorf("Data = %q, want %q", recs[0].Data, want)
	}
	if !strings.Contains(recs[0].Insight, "positioning and life preservation") {
		t.Errorf("Insight = %q, want positioning advice", recs[0].Insight)
	}
}

func TestGenerateRecommendationsDropAndRise(t *testing.T) {
	devs := []models.Deviation{
		{Metric: models.MetricDamageDealt, Baseline: 800, Recent: 600, PctChange: -0.25, Direction: models.DirectionDrop},
		{Metric: models.MetricKills, Baseline: 4, Recent: 5, PctChange: 0.25, Direction: models.DirectionRise},
	}
	recs := GenerateRecommendations("leaf", nil, devs, nil)
	if len(recs) != 2 {
		t.Fatalf("GenerateRecommendations() returned %d items, want 2", len(recs))
	}
	if want := "leaf's damage dealt dropped by 25% in recent matches (baseline 800.00 → recent 600.00)."; recs[0].Data != want {
		t.Errorf("drop Data = %q, want %q", recs[0].Data, want)
	}
	if want := "leaf's kills per phase is up 25% vs baseline (4.00 → 5.00)."; recs[1].Data != want {
		t.Errorf("rise Data = %q, want %q", recs[1].Data, want)
	}
}

func TestGenerateRecommendationsDeathDecreaseNotPraised(t *testing.T) {
	devs := []models.Deviation{
		{Metric: models.MetricDeaths, Baseline: 10, Recent: 8, PctChange: -0.2, Direction: models.DirectionRise},
	}
	recs := GenerateRecommendations("oxy", nil, devs, nil)
	if len(recs) != 1 {
		t.Fatalf("GenerateRecommendations() returned %d items, want fallback only", len(recs))
	}
	if !strings.Contains(recs[0].Insight, "No major drop-offs") {
		t.Errorf("want fallback, got %q", recs[0].Insight)
	}
}

func TestGenerateRecommendationsPhaseItems(t *testing.T) {
	phaseDevs := []models.PhaseDeviation{
		{Phase: models.PhaseLate, Metric: models.MetricDamageDealt, Baseline: 200, Recent: 120, PctChange: -0.4, Direction: models.DirectionDrop},
		{Phase: models.PhaseLate, Metric: models.MetricKAST, Baseline: 0.8, Recent: 0.6, PctChange: -0.25, Direction: models.DirectionDrop},
		{Phase: models.PhaseMid, Metric: models.MetricDeaths, Baseline: 2, Recent: 3, PctChange: 0.5, Direction: models.DirectionRise},
	}
	recs := GenerateRecommendations("oxy", nil, nil, phaseDevs)
	if len(recs) != 3 {
		t.Fatalf("GenerateRecommendations() returned %d items, want 3", len(recs))
	}
	if want := "oxy's late-game damage dropped by 40% compared to baseline (200 → 120)."; recs[0].Data != want {
		t.Errorf("damage item Data = %q, want %q", recs[0].Data, want)
	}
	if want := "oxy's late-game KAST is down 25% vs baseline."; recs[1].Data != want {
		t.Errorf("kast item Data = %q, want %q", recs[1].Data, want)
	}
	if want := "oxy's mid-game deaths are up 50% vs baseline."; recs[2].Data != want {
		t.Errorf("deaths item Data = %q, want %q", recs[2].Data, want)
	}
}

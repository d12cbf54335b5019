package services

import (
	"testing"
	"time"

	"github.com/tempio/commander-tracker/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestDashboardParamsNormalizedAlpha(t *testing.T) {
	tests := []struct {
		name         string
		alpha        *float64
		defaultAlpha float64
		want         float64
	}{
		{"absent falls back to default", nil, 0.5, 0.5},
		{"explicit zero disables weighting", floatPtr(0), 0.5, 0},
		{"explicit value is kept", floatPtr(1.5), 0.5, 1.5},
		{"negative clamps to zero", floatPtr(-2), 0.5, 0},
		{"oversized clamps to five", floatPtr(9), 0.5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DashboardParams{Alpha: tt.alpha}.normalized(tt.defaultAlpha)
			if got := p.alphaValue(); got != tt.want {
				t.Errorf("alpha = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDashboardParamsNormalizedDefaults(t *testing.T) {
	p := DashboardParams{}.normalized(0.5)

	if p.TopPlayers != defaultTopN || p.TopPairs != defaultTopN || p.TopCommanders != defaultTopN {
		t.Errorf("top-N defaults not applied: %+v", p)
	}
	if p.MinPlayerGames != defaultMinGames || p.MinPairGames != defaultMinGames || p.MinCommanderGames != defaultMinGames {
		t.Errorf("min-games defaults not applied: %+v", p)
	}
}

func TestMonthlyActivity(t *testing.T) {
	games := []models.Game{
		{ID: 1, PlayedAt: time.Date(2026, 3, 5, 20, 0, 0, 0, time.UTC)},
		{ID: 2, PlayedAt: time.Date(2026, 3, 19, 20, 0, 0, 0, time.UTC)},
		{ID: 3, PlayedAt: time.Date(2026, 1, 2, 20, 0, 0, 0, time.UTC)},
	}
	points := monthlyActivity(games)

	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}
	if points[0].Label != "2026-01" || points[0].Value != 1 {
		t.Errorf("first point = %+v", points[0])
	}
	if points[1].Label != "2026-03" || points[1].Value != 2 {
		t.Errorf("second point = %+v", points[1])
	}
}

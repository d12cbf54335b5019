package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempio/commander-tracker/models"
)

func TestPlayerTrendCumulative(t *testing.T) {
	games := []models.Game{
		{ID: 1, PlayedAt: day(1), WinnerPlayer: strPtr("Ann")},
		{ID: 2, PlayedAt: day(2), WinnerPlayer: strPtr("Bob")},
		{ID: 3, PlayedAt: day(3), WinnerPlayer: strPtr("Ann")},
		{ID: 4, PlayedAt: day(4), WinnerPlayer: strPtr("Cat")}, // Ann not seated
	}
	entries := []models.GameEntry{
		{GameID: 1, Player: "Ann", Commander: "Krenko"},
		{GameID: 1, Player: "Bob", Commander: "Meren"},
		{GameID: 2, Player: "Ann", Commander: "Krenko"},
		{GameID: 2, Player: "Bob", Commander: "Meren"},
		{GameID: 3, Player: "Ann", Commander: "Krenko"},
		{GameID: 3, Player: "Bob", Commander: "Meren"},
		{GameID: 4, Player: "Cat", Commander: "Zur"},
		{GameID: 4, Player: "Bob", Commander: "Meren"},
	}

	points := PlayerTrend(games, entries, "Ann", false, 0)
	require.Len(t, points, 3, "only games Ann sat in")

	assert.InDelta(t, 100.0, points[0].Value, 1e-9)
	assert.InDelta(t, 50.0, points[1].Value, 1e-9)
	assert.InDelta(t, 100.0*2.0/3.0, points[2].Value, 1e-9)
	assert.Equal(t, "2026-03-01", points[0].Label)
}

func TestPlayerTrendOrdersByDateThenID(t *testing.T) {
	sameDay := day(5)
	games := []models.Game{
		{ID: 9, PlayedAt: sameDay, WinnerPlayer: strPtr("Ann")},
		{ID: 3, PlayedAt: sameDay},
		{ID: 1, PlayedAt: day(6)},
	}
	entries := []models.GameEntry{
		{GameID: 9, Player: "Ann", Commander: "Krenko"},
		{GameID: 3, Player: "Ann", Commander: "Krenko"},
		{GameID: 1, Player: "Ann", Commander: "Krenko"},
	}

	points := PlayerTrend(games, entries, "Ann", false, 0)
	require.Len(t, points, 3)

	// Day 5 games first (id 3 before id 9), then day 6.
	assert.InDelta(t, 0.0, points[0].Value, 1e-9)
	assert.InDelta(t, 50.0, points[1].Value, 1e-9)
	assert.InDelta(t, 100.0/3.0, points[2].Value, 1e-9)
}

func TestPlayerTrendWeighted(t *testing.T) {
	games := []models.Game{
		{ID: 1, PlayedAt: day(1), WinnerPlayer: strPtr("Ann")},
		{ID: 2, PlayedAt: day(2), WinnerPlayer: strPtr("Bob")},
	}
	entries := []models.GameEntry{
		{GameID: 1, Player: "Ann", Commander: "Krenko", Bracket: intPtr(4)},
		{GameID: 1, Player: "Bob", Commander: "Meren", Bracket: intPtr(2)},
		{GameID: 1, Player: "Cat", Commander: "Zur", Bracket: intPtr(2)},
		{GameID: 1, Player: "Dee", Commander: "Isshin", Bracket: intPtr(2)},
		{GameID: 2, Player: "Ann", Commander: "Krenko", Bracket: intPtr(4)},
		{GameID: 2, Player: "Bob", Commander: "Meren", Bracket: intPtr(2)},
	}

	points := PlayerTrend(games, entries, "Ann", true, 0.5)
	require.Len(t, points, 2)

	// Game 1: win weight 4/7 (delta 1.5 at alpha 0.5). One game in,
	// the weighted rate is still 100.
	assert.InDelta(t, 100.0, points[0].Value, 1e-9)

	// Game 2 lost: wins 4/7, denominator 1 + 4/7.
	want := (4.0 / 7.0) / (1.0 + 4.0/7.0) * 100.0
	assert.InDelta(t, want, points[1].Value, 1e-9)
}

func TestPlayerTrendUnknownPlayer(t *testing.T) {
	games := []models.Game{{ID: 1, PlayedAt: time.Now()}}
	entries := []models.GameEntry{{GameID: 1, Player: "Ann", Commander: "Krenko"}}

	assert.Empty(t, PlayerTrend(games, entries, "Zed", false, 0))
}

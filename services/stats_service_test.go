package services

import (
	"testing"
	"time"

	"github.com/tempio/commander-tracker/models"
)

func filterFixture() ([]models.Game, []models.GameEntry) {
	games := []models.Game{
		{ID: 1, PlayedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, PlayedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 3, PlayedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)},
	}
	entries := []models.GameEntry{
		{GameID: 1, Player: "Ann", Commander: "Krenko", Bracket: intPtr(4)},
		{GameID: 1, Player: "Bob", Commander: "Meren", Bracket: intPtr(2)},
		{GameID: 2, Player: "Bob", Commander: "Meren", Bracket: intPtr(2)},
		{GameID: 2, Player: "Cat", Commander: "Zur"},
		{GameID: 3, Player: "Cat", Commander: "Zur"},
		{GameID: 3, Player: "Dee", Commander: "Isshin"},
	}
	return games, entries
}

func gameIDs(games []models.Game) []int {
	ids := make([]int, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	return ids
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyFiltersNoop(t *testing.T) {
	games, entries := filterFixture()
	fg, fe := applyFilters(games, entries, models.StatsFilters{})
	if len(fg) != 3 || len(fe) != 6 {
		t.Fatalf("empty filters must keep everything, got %d games %d entries", len(fg), len(fe))
	}
}

func TestApplyFiltersByPlayer(t *testing.T) {
	games, entries := filterFixture()
	fg, fe := applyFilters(games, entries, models.StatsFilters{Players: []string{"Ann"}})

	if !equalInts(gameIDs(fg), []int{1}) {
		t.Fatalf("games = %v, want [1]", gameIDs(fg))
	}
	// The whole pod of a kept game survives, not just the filtered seat.
	if len(fe) != 2 {
		t.Errorf("entries = %d, want 2", len(fe))
	}
}

func TestApplyFiltersByCommander(t *testing.T) {
	games, entries := filterFixture()
	fg, _ := applyFilters(games, entries, models.StatsFilters{Commanders: []string{"Zur"}})
	if !equalInts(gameIDs(fg), []int{2, 3}) {
		t.Fatalf("games = %v, want [2 3]", gameIDs(fg))
	}
}

func TestApplyFiltersByBracket(t *testing.T) {
	games, entries := filterFixture()
	fg, _ := applyFilters(games, entries, models.StatsFilters{Brackets: []int{4}})
	if !equalInts(gameIDs(fg), []int{1}) {
		t.Fatalf("games = %v, want [1]", gameIDs(fg))
	}
}

func TestApplyFiltersConjunction(t *testing.T) {
	games, entries := filterFixture()
	fg, _ := applyFilters(games, entries, models.StatsFilters{
		Players:    []string{"Bob"},
		Commanders: []string{"Zur"},
	})
	// Game 2 is the only pod with both Bob and a Zur seat.
	if !equalInts(gameIDs(fg), []int{2}) {
		t.Fatalf("games = %v, want [2]", gameIDs(fg))
	}
}

func TestApplyFiltersNoMatch(t *testing.T) {
	games, entries := filterFixture()
	fg, fe := applyFilters(games, entries, models.StatsFilters{Players: []string{"Zed"}})
	if len(fg) != 0 || len(fe) != 0 {
		t.Fatalf("got %d games %d entries, want none", len(fg), len(fe))
	}
}

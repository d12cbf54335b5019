package stats

import "github.com/tempio/commander-tracker/models"

// GroupEntriesByGame indexes entries by game id. Input order is
// preserved within each game's slice so downstream tie-breaks are
// reproducible. Empty input yields an empty map.
func GroupEntriesByGame(entries []models.GameEntry) map[int][]models.GameEntry {
	byGame := make(map[int][]models.GameEntry)
	for _, e := range entries {
		byGame[e.GameID] = append(byGame[e.GameID], e)
	}
	return byGame
}

// PodSize is the number of seats at one game's table.
func PodSize(entries []models.GameEntry) int {
	return len(entries)
}

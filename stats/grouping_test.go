package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempio/commander-tracker/models"
)

func TestGroupEntriesByGame(t *testing.T) {
	entries := []models.GameEntry{
		{ID: 1, GameID: 10, Player: "Ann"},
		{ID: 2, GameID: 11, Player: "Bob"},
		{ID: 3, GameID: 10, Player: "Cat"},
		{ID: 4, GameID: 10, Player: "Dee"},
	}

	byGame := GroupEntriesByGame(entries)
	require.Len(t, byGame, 2)
	require.Len(t, byGame[10], 3)
	assert.Equal(t, "Ann", byGame[10][0].Player, "input order preserved")
	assert.Equal(t, "Cat", byGame[10][1].Player)
	assert.Equal(t, "Dee", byGame[10][2].Player)
	assert.Len(t, byGame[11], 1)
}

func TestGroupEntriesByGameEmpty(t *testing.T) {
	assert.Empty(t, GroupEntriesByGame(nil))
}

func TestPodSize(t *testing.T) {
	assert.Equal(t, 0, PodSize(nil))
	assert.Equal(t, 2, PodSize([]models.GameEntry{{Player: "a"}, {Player: "b"}}))
}

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempio/commander-tracker/models"
)

func TestViewClamp(t *testing.T) {
	tests := []struct {
		name string
		in   View
		want View
	}{
		{"zero values raised", View{}, View{MinGames: 1, TopN: 1}},
		{"negative values raised", View{MinGames: -3, TopN: -1}, View{MinGames: 1, TopN: 1}},
		{"cap at fifty", View{MinGames: 2, TopN: 200}, View{MinGames: 2, TopN: 50}},
		{"in range untouched", View{MinGames: 3, TopN: 25, Weighted: true}, View{MinGames: 3, TopN: 25, Weighted: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp())
		})
	}
}

func TestClampAlpha(t *testing.T) {
	assert.Equal(t, 0.0, ClampAlpha(-1))
	assert.Equal(t, 0.5, ClampAlpha(0.5))
	assert.Equal(t, 5.0, ClampAlpha(5))
	assert.Equal(t, 5.0, ClampAlpha(12))
}

func TestTopPlayersOrdering(t *testing.T) {
	rows := []models.PlayerRow{
		{Player: "Cat", Games: 5, Winrate: 40, WeightedGames: 5, WeightedWinrate: 20},
		{Player: "Ann", Games: 5, Winrate: 40, WeightedGames: 5, WeightedWinrate: 60},
		{Player: "Bob", Games: 9, Winrate: 10, WeightedGames: 9, WeightedWinrate: 10},
		{Player: "Eve", Games: 1, Winrate: 100, WeightedGames: 1, WeightedWinrate: 100},
	}

	got := TopPlayers(rows, View{MinGames: 2, TopN: 10})
	require.Len(t, got, 3, "Eve falls below the games floor")
	assert.Equal(t, "Bob", got[0].Player, "most games first")
	assert.Equal(t, "Ann", got[1].Player, "equal games and rate, name breaks the tie")
	assert.Equal(t, "Cat", got[2].Player)

	weighted := TopPlayers(rows, View{MinGames: 2, TopN: 10, Weighted: true})
	assert.Equal(t, "Bob", weighted[0].Player)
	assert.Equal(t, "Ann", weighted[1].Player, "weighted rate orders the tie on games")
	assert.Equal(t, "Cat", weighted[2].Player)
}

func TestTopPlayersTruncates(t *testing.T) {
	rows := []models.PlayerRow{
		{Player: "a", Games: 3},
		{Player: "b", Games: 2},
		{Player: "c", Games: 1},
	}
	got := TopPlayers(rows, View{MinGames: 1, TopN: 2})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Player)
}

func TestBubbleRadius(t *testing.T) {
	tests := []struct {
		games int
		want  int
	}{
		{0, 4},
		{1, 7},
		{4, 10},
		{9, 13},
		{16, 16},
		{25, 18},
		{1000, 18},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BubbleRadius(tt.games), "games=%d", tt.games)
	}
}

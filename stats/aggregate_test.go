package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempio/commander-tracker/models"
)

func strPtr(s string) *string { return &s }

func day(n int) time.Time {
	return time.Date(2026, 3, n, 20, 0, 0, 0, time.UTC)
}

// twoGameFixture: the same four-seat pod plays twice. Ann sits above
// the table average (4 vs 2.5), everyone else below it. Ann wins the
// first game, Bob the second.
func twoGameFixture() ([]models.Game, []models.GameEntry) {
	games := []models.Game{
		{ID: 1, PlayedAt: day(1), WinnerPlayer: strPtr("Ann")},
		{ID: 2, PlayedAt: day(2), WinnerPlayer: strPtr("Bob")},
	}
	var entries []models.GameEntry
	for _, gameID := range []int{1, 2} {
		entries = append(entries,
			models.GameEntry{GameID: gameID, Player: "Ann", Commander: "Krenko", Bracket: intPtr(4)},
			models.GameEntry{GameID: gameID, Player: "Bob", Commander: "Tatyova", Bracket: intPtr(2)},
			models.GameEntry{GameID: gameID, Player: "Cat", Commander: "Meren", Bracket: intPtr(2)},
			models.GameEntry{GameID: gameID, Player: "Dee", Commander: "Isshin", Bracket: intPtr(2)},
		)
	}
	return games, entries
}

func findPlayer(t *testing.T, rows []models.PlayerRow, name string) models.PlayerRow {
	t.Helper()
	for _, r := range rows {
		if r.Player == name {
			return r
		}
	}
	t.Fatalf("player %q not in rows", name)
	return models.PlayerRow{}
}

func TestComputeEmptyDataset(t *testing.T) {
	res := Compute(nil, nil, Config{Alpha: DefaultAlpha})

	assert.Equal(t, 0, res.Counts.Games)
	assert.Equal(t, 0, res.Counts.Entries)
	assert.Empty(t, res.Players)
	assert.Empty(t, res.Pairs)
	assert.Empty(t, res.Commanders)
	assert.Empty(t, res.PodSizes)
	assert.Empty(t, res.Brackets)
	assert.Empty(t, res.Triples)
}

func TestComputeWeightedPenaltyAndReward(t *testing.T) {
	games, entries := twoGameFixture()
	res := Compute(games, entries, Config{Alpha: 0.5})

	// Ann: bracket 4 against a 2.5 table, delta 1.5, win weight 4/7.
	ann := findPlayer(t, res.Players, "Ann")
	assert.Equal(t, 2, ann.Games)
	assert.Equal(t, 1, ann.Wins)
	assert.InDelta(t, 50.0, ann.Winrate, 1e-9)
	assert.InDelta(t, 4.0/7.0, ann.WeightedWins, 1e-9)
	assert.InDelta(t, 2.0+(4.0/7.0-1.0), ann.WeightedGames, 1e-9)
	assert.InDelta(t, (4.0/7.0)/(11.0/7.0)*100.0, ann.WeightedWinrate, 1e-9)

	// Bob: bracket 2 against a 2.5 table, delta -0.5, win weight 1.25.
	bob := findPlayer(t, res.Players, "Bob")
	assert.InDelta(t, 1.25, bob.WeightedWins, 1e-9)
	assert.InDelta(t, 2.25, bob.WeightedGames, 1e-9)
	assert.InDelta(t, 1.25/2.25*100.0, bob.WeightedWinrate, 1e-9)

	// The penalized rate drops below the plain rate, the rewarded one
	// rises above it.
	assert.Less(t, ann.WeightedWinrate, ann.Winrate)
	assert.Greater(t, bob.WeightedWinrate, bob.Winrate)
}

func TestComputeWeightedRateStaysBounded(t *testing.T) {
	games, entries := twoGameFixture()

	for _, alpha := range []float64{0, 0.5, 1, 5} {
		res := Compute(games, entries, Config{Alpha: alpha})
		for _, r := range res.Players {
			assert.GreaterOrEqual(t, r.WeightedWinrate, 0.0)
			assert.LessOrEqual(t, r.WeightedWinrate, 100.0)
		}
		for _, r := range res.Triples {
			assert.GreaterOrEqual(t, r.WeightedWinrate, 0.0)
			assert.LessOrEqual(t, r.WeightedWinrate, 100.0)
		}
	}
}

func TestComputeUnratedPodIsNeutral(t *testing.T) {
	games := []models.Game{{ID: 1, PlayedAt: day(1), WinnerPlayer: strPtr("Ann")}}
	entries := []models.GameEntry{
		{GameID: 1, Player: "Ann", Commander: "Krenko"},
		{GameID: 1, Player: "Bob", Commander: "Tatyova"},
	}
	res := Compute(games, entries, Config{Alpha: 5})

	ann := findPlayer(t, res.Players, "Ann")
	assert.InDelta(t, ann.Winrate, ann.WeightedWinrate, 1e-9,
		"without bracket data weighted and plain rates coincide")
	assert.InDelta(t, 1.0, ann.WeightedWins, 1e-9)
	assert.InDelta(t, 1.0, ann.WeightedGames, 1e-9)
}

func TestComputeZeroAlphaMatchesPlain(t *testing.T) {
	games, entries := twoGameFixture()
	res := Compute(games, entries, Config{Alpha: 0})

	for _, r := range res.Players {
		assert.InDelta(t, r.Winrate, r.WeightedWinrate, 1e-9, "player %s", r.Player)
	}
}

func TestComputePodSizes(t *testing.T) {
	games, entries := twoGameFixture()
	res := Compute(games, entries, Config{Alpha: 0.5})

	require.Len(t, res.PodSizes, 1)
	ps := res.PodSizes[0]
	assert.Equal(t, 4, ps.PodSize)
	assert.Equal(t, 2, ps.Games)
	assert.Equal(t, 8, ps.Participations)
	assert.Equal(t, 2, ps.Wins)
	assert.InDelta(t, 25.0, ps.Baseline, 1e-9)
}

func TestComputeBracketBucketsCountGameOnce(t *testing.T) {
	games, entries := twoGameFixture()
	res := Compute(games, entries, Config{Alpha: 0.5})

	// Bob, Cat and Dee share bucket "2" in both games.
	require.Len(t, res.Brackets, 2)
	assert.Equal(t, "2", res.Brackets[0].Bracket)
	assert.Equal(t, 2, res.Brackets[0].Games)
	assert.Equal(t, 1, res.Brackets[0].Wins)
	assert.Equal(t, "4", res.Brackets[1].Bracket)
	assert.Equal(t, 2, res.Brackets[1].Games)
	assert.Equal(t, 1, res.Brackets[1].Wins)
}

func TestComputeBracketRowsUnratedLast(t *testing.T) {
	games := []models.Game{{ID: 1, PlayedAt: day(1)}}
	entries := []models.GameEntry{
		{GameID: 1, Player: "Ann", Commander: "Krenko", Bracket: intPtr(3)},
		{GameID: 1, Player: "Bob", Commander: "Tatyova"},
		{GameID: 1, Player: "Cat", Commander: "Meren", Bracket: intPtr(1)},
	}
	res := Compute(games, entries, Config{})

	require.Len(t, res.Brackets, 3)
	assert.Equal(t, "1", res.Brackets[0].Bracket)
	assert.Equal(t, "3", res.Brackets[1].Bracket)
	assert.Equal(t, UnratedBucket, res.Brackets[2].Bracket)
}

func TestComputeMetaImpact(t *testing.T) {
	games, entries := twoGameFixture()
	res := Compute(games, entries, Config{Alpha: 0.5})

	ann := findPlayer(t, res.Players, "Ann")
	require.NotNil(t, ann.MetaImpact)
	assert.InDelta(t, 1.5, *ann.MetaImpact, 1e-9)

	bob := findPlayer(t, res.Players, "Bob")
	require.NotNil(t, bob.MetaImpact)
	assert.InDelta(t, -0.5, *bob.MetaImpact, 1e-9)
}

func TestComputeTriples(t *testing.T) {
	games, entries := twoGameFixture()
	res := Compute(games, entries, Config{Alpha: 0.5})

	var ann models.TripleRow
	found := false
	for _, r := range res.Triples {
		if r.Player == "Ann" && r.Commander == "Krenko" && r.Bracket == "4" {
			ann = r
			found = true
		}
	}
	require.True(t, found)

	assert.Equal(t, 2, ann.Games)
	assert.Equal(t, 1, ann.Wins)
	require.NotNil(t, ann.BPI)
	assert.InDelta(t, 1.5, *ann.BPI, 1e-9)
	assert.Equal(t, LabelOver, ann.BPILabel)
	require.NotNil(t, ann.DeltaCoverage)
	assert.InDelta(t, 100.0, *ann.DeltaCoverage, 1e-9)
	require.NotNil(t, ann.AvgTableBracket)
	assert.InDelta(t, 2.5, *ann.AvgTableBracket, 1e-9)

	// Cat never won: coverage undefined, label n/a.
	for _, r := range res.Triples {
		if r.Player == "Cat" {
			assert.Nil(t, r.DeltaCoverage)
			assert.Nil(t, r.BPI)
			assert.Equal(t, LabelNA, r.BPILabel)
		}
	}
}

func TestComputePlayerNamesAreCaseSensitive(t *testing.T) {
	games := []models.Game{
		{ID: 1, PlayedAt: day(1)},
		{ID: 2, PlayedAt: day(2)},
	}
	entries := []models.GameEntry{
		{GameID: 1, Player: "Ann", Commander: "Krenko"},
		{GameID: 1, Player: "Bob", Commander: "Meren"},
		{GameID: 2, Player: "ann", Commander: "Krenko"},
		{GameID: 2, Player: "Bob", Commander: "Meren"},
	}
	res := Compute(games, entries, Config{})

	names := make([]string, 0, len(res.Players))
	for _, r := range res.Players {
		names = append(names, r.Player)
	}
	assert.Equal(t, []string{"Bob", "Ann", "ann"}, names,
		"distinct casings stay distinct and order deterministically")
}

func TestComputeTopCommander(t *testing.T) {
	games := []models.Game{
		{ID: 1, PlayedAt: day(1)},
		{ID: 2, PlayedAt: day(2)},
		{ID: 3, PlayedAt: day(3)},
	}
	entries := []models.GameEntry{
		{GameID: 1, Player: "Ann", Commander: "Krenko"},
		{GameID: 1, Player: "Bob", Commander: "Meren"},
		{GameID: 2, Player: "Ann", Commander: "Krenko"},
		{GameID: 2, Player: "Bob", Commander: "Meren"},
		{GameID: 3, Player: "Ann", Commander: "Tatyova"},
		{GameID: 3, Player: "Bob", Commander: "Isshin"},
		{GameID: 1, Player: "Cat", Commander: "Zur"},
		{GameID: 2, Player: "Cat", Commander: "Atraxa"},
	}
	res := Compute(games, entries, Config{})

	ann := findPlayer(t, res.Players, "Ann")
	assert.Equal(t, "Krenko", ann.TopCommander)
	assert.Equal(t, 2, ann.TopCommanderGames)
	assert.Equal(t, 2, ann.UniqueCommanders)

	// Equal counts break alphabetically.
	cat := findPlayer(t, res.Players, "Cat")
	assert.Equal(t, "Atraxa", cat.TopCommander)
	assert.Equal(t, 1, cat.TopCommanderGames)
}

func TestComputeIsDeterministic(t *testing.T) {
	games, entries := twoGameFixture()

	first := Compute(games, entries, Config{Alpha: 0.5})
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Compute(games, entries, Config{Alpha: 0.5}))
	}
}

func TestComputeSkipsGamesWithoutEntries(t *testing.T) {
	games := []models.Game{
		{ID: 1, PlayedAt: day(1)},
		{ID: 2, PlayedAt: day(2)},
	}
	entries := []models.GameEntry{
		{GameID: 2, Player: "Ann", Commander: "Krenko"},
	}
	res := Compute(games, entries, Config{})

	require.Len(t, res.PodSizes, 1)
	assert.Equal(t, 1, res.PodSizes[0].PodSize)
	assert.Equal(t, 1, res.PodSizes[0].Games)
	// Counts still reflect the raw snapshot.
	assert.Equal(t, 2, res.Counts.Games)
	assert.Equal(t, 1, res.Counts.Entries)
}

func TestComputeSharedCommanderCountsGameOnce(t *testing.T) {
	// Two seats field the same commander in one pod; the commander
	// table counts distinct games, not entries.
	games := []models.Game{
		{ID: 1, PlayedAt: day(1), WinnerPlayer: strPtr("Ann")},
	}
	entries := []models.GameEntry{
		{GameID: 1, Player: "Ann", Commander: "Krenko", Bracket: intPtr(3)},
		{GameID: 1, Player: "Bob", Commander: "Krenko", Bracket: intPtr(3)},
		{GameID: 1, Player: "Cat", Commander: "Zur", Bracket: intPtr(3)},
	}
	res := Compute(games, entries, Config{Alpha: 0.5})

	require.Len(t, res.Commanders, 2)
	krenko := res.Commanders[0]
	require.Equal(t, "Krenko", krenko.Commander)
	assert.Equal(t, 1, krenko.Games)
	assert.Equal(t, 1, krenko.Wins)
	assert.InDelta(t, 100.0, krenko.Winrate, 1e-9)

	zur := res.Commanders[1]
	assert.Equal(t, "Zur", zur.Commander)
	assert.Equal(t, 1, zur.Games)
	assert.Equal(t, 0, zur.Wins)

	// Pair rows stay per-seat: each Krenko pilot keeps their own game.
	require.Len(t, res.Pairs, 3)
	for _, pr := range res.Pairs {
		assert.Equal(t, 1, pr.Games)
	}
}

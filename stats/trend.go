package stats

import (
	"fmt"
	"sort"

	"github.com/tempio/commander-tracker/models"
)

// PlayerTrend builds the cumulative win-rate series for one player,
// one point per game the player sat in, ordered by played_at (game id
// breaks timestamp ties). When weighted is set, wins contribute their
// bracket weight to both numerator and denominator, so the series
// stays bounded in [0,100].
func PlayerTrend(games []models.Game, entries []models.GameEntry, player string, weighted bool, alpha float64) []models.TrendPoint {
	byGame := GroupEntriesByGame(entries)

	played := make([]models.Game, 0)
	for _, g := range games {
		for _, e := range byGame[g.ID] {
			if e.Player == player {
				played = append(played, g)
				break
			}
		}
	}
	sort.SliceStable(played, func(i, j int) bool {
		if !played[i].PlayedAt.Equal(played[j].PlayedAt) {
			return played[i].PlayedAt.Before(played[j].PlayedAt)
		}
		return played[i].ID < played[j].ID
	})

	points := make([]models.TrendPoint, 0, len(played))
	wins := 0.0
	denom := 0.0
	for _, g := range played {
		denom++

		winner := ""
		if g.WinnerPlayer != nil {
			winner = *g.WinnerPlayer
		}
		if winner == player {
			w := 1.0
			if weighted {
				pod := byGame[g.ID]
				if bavg, ok := TableBracketAverage(pod); ok {
					if wb, ok := WinnerBracket(pod, winner); ok {
						w = WinWeight(float64(wb)-bavg, alpha)
					}
				}
			}
			wins += w
			denom += w - 1.0
		}

		wr := 0.0
		if denom > 0 {
			wr = wins / denom * 100.0
		}

		label := fmt.Sprintf("game %d", g.ID)
		if !g.PlayedAt.IsZero() {
			label = g.PlayedAt.Format("2006-01-02")
		}
		points = append(points, models.TrendPoint{Label: label, Value: wr})
	}
	return points
}

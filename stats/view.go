package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/tempio/commander-tracker/models"
)

// View carries the display parameters shared by every top-N
// extraction: a minimum sample size, a result cap, and whether the
// bracket-weighted rate drives the ordering.
type View struct {
	MinGames int
	TopN     int
	Weighted bool
}

// Clamp bounds the view parameters the way the dashboard endpoints do:
// MinGames at least 1, TopN in [1,50].
func (v View) Clamp() View {
	if v.MinGames < 1 {
		v.MinGames = 1
	}
	if v.TopN < 1 {
		v.TopN = 1
	}
	if v.TopN > 50 {
		v.TopN = 50
	}
	return v
}

// ClampAlpha bounds the weighting strength to [0,5] at the
// presentation boundary; the WinWeight primitive itself never clamps.
func ClampAlpha(alpha float64) float64 {
	if alpha < 0 {
		return 0
	}
	if alpha > 5 {
		return 5
	}
	return alpha
}

// TopPlayers extracts the view's player rows: descending games
// (weighted games for weighted views), then descending the relevant
// win-rate, then ascending case-insensitive name.
func TopPlayers(rows []models.PlayerRow, v View) []models.PlayerRow {
	v = v.Clamp()
	out := make([]models.PlayerRow, 0, len(rows))
	for _, r := range rows {
		if r.Games >= v.MinGames {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		gi, gj := float64(out[i].Games), float64(out[j].Games)
		ri, rj := out[i].Winrate, out[j].Winrate
		if v.Weighted {
			gi, gj = out[i].WeightedGames, out[j].WeightedGames
			ri, rj = out[i].WeightedWinrate, out[j].WeightedWinrate
		}
		if gi != gj {
			return gi > gj
		}
		if ri != rj {
			return ri > rj
		}
		return lessFold(out[i].Player, out[j].Player)
	})
	return truncate(out, v.TopN)
}

// TopPairs is TopPlayers for (player, commander) rows.
func TopPairs(rows []models.PairRow, v View) []models.PairRow {
	v = v.Clamp()
	out := make([]models.PairRow, 0, len(rows))
	for _, r := range rows {
		if r.Games >= v.MinGames {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		gi, gj := float64(out[i].Games), float64(out[j].Games)
		ri, rj := out[i].Winrate, out[j].Winrate
		if v.Weighted {
			gi, gj = out[i].WeightedGames, out[j].WeightedGames
			ri, rj = out[i].WeightedWinrate, out[j].WeightedWinrate
		}
		if gi != gj {
			return gi > gj
		}
		if ri != rj {
			return ri > rj
		}
		if !strings.EqualFold(out[i].Player, out[j].Player) {
			return lessFold(out[i].Player, out[j].Player)
		}
		return lessFold(out[i].Commander, out[j].Commander)
	})
	return truncate(out, v.TopN)
}

// TopCommanders extracts the commander view rows.
func TopCommanders(rows []models.CommanderRow, v View) []models.CommanderRow {
	v = v.Clamp()
	out := make([]models.CommanderRow, 0, len(rows))
	for _, r := range rows {
		if r.Games >= v.MinGames {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Games != out[j].Games {
			return out[i].Games > out[j].Games
		}
		if out[i].Winrate != out[j].Winrate {
			return out[i].Winrate > out[j].Winrate
		}
		return lessFold(out[i].Commander, out[j].Commander)
	})
	return truncate(out, v.TopN)
}

// TopTriples caps the triple table; ordering is already the table
// default (games, weighted rate, rate, names).
func TopTriples(rows []models.TripleRow, topN int) []models.TripleRow {
	return truncate(rows, topN)
}

// BubbleRadius maps a sample size to a scatter bubble radius in
// pixels: 4 + min(14, floor(sqrt(games)*3)). Caps at 18 so a long
// campaign cannot drown the chart.
func BubbleRadius(games int) int {
	r := int(math.Sqrt(float64(games)) * 3)
	if r > 14 {
		r = 14
	}
	return 4 + r
}

func truncate[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}

package stats

import (
	"sort"
	"strings"

	"github.com/tempio/commander-tracker/models"
)

// Config parameterizes one aggregation pass. The same configuration is
// used by every presentation adapter; there is exactly one fold.
type Config struct {
	// Alpha is the win-weight strength. Callers clamp it to a sane
	// range before handing it to the engine; the engine only refuses
	// negative values (treated as 0, i.e. no weighting).
	Alpha float64
}

// Result holds every aggregate table computed from one snapshot. All
// rows carry full float precision; rounding happens at the
// presentation edge.
type Result struct {
	Counts models.StatsCounts

	Players    []models.PlayerRow
	Pairs      []models.PairRow
	Commanders []models.CommanderRow

	PodSizes   []models.PodSizeRow
	PlayerPods []models.PlayerPodRow
	PairPods   []models.PairPodRow

	Brackets     []models.BracketRow
	Triples      []models.TripleRow
	TripleCounts []models.TripleCountRow
}

type pairKey struct {
	player    string
	commander string
}

type playerPodKey struct {
	player  string
	podSize int
}

type pairPodKey struct {
	player    string
	commander string
	podSize   int
}

type tripleKey struct {
	player    string
	commander string
	bracket   string
}

type counterAcc struct {
	games int
	wins  int
}

type weightedAcc struct {
	games         int
	wins          int
	weightedWins  float64
	weightedGames float64
}

type playerAcc struct {
	weightedAcc
	commanderEntries map[string]int
	metaDeltaSum     float64
	metaDeltaGames   int
}

type tripleAcc struct {
	weightedAcc
	deltas      []float64
	tableAvgSum float64
	tableAvgN   int
	entryCount  int
}

// Compute folds the snapshot into every aggregate table in a single
// pass over (game, pod) pairs. Inputs are never mutated; calling twice
// over the same snapshot yields identical results.
func Compute(games []models.Game, entries []models.GameEntry, cfg Config) Result {
	byGame := GroupEntriesByGame(entries)

	players := make(map[string]*playerAcc)
	pairs := make(map[pairKey]*weightedAcc)
	commanders := make(map[string]*counterAcc)
	podSizes := make(map[int]*models.PodSizeRow)
	playerPods := make(map[playerPodKey]*counterAcc)
	pairPods := make(map[pairPodKey]*counterAcc)
	brackets := make(map[string]*counterAcc)
	triples := make(map[tripleKey]*tripleAcc)

	for _, g := range games {
		pod := byGame[g.ID]
		n := PodSize(pod)
		if n == 0 {
			continue
		}

		winner := ""
		if g.WinnerPlayer != nil {
			winner = *g.WinnerPlayer
		}

		bavg, bavgOK := TableBracketAverage(pod)
		wb, wbOK := WinnerBracket(pod, winner)

		// Win weight for this game; neutral when the delta is not
		// computable so weighted and unweighted stats coincide.
		weight := 1.0
		delta := 0.0
		deltaOK := false
		if bavgOK && wbOK {
			delta = float64(wb) - bavg
			weight = WinWeight(delta, cfg.Alpha)
			deltaOK = true
		}

		ps := podSizes[n]
		if ps == nil {
			ps = &models.PodSizeRow{PodSize: n, Baseline: PodBaseline(n)}
			podSizes[n] = ps
		}
		ps.Games++
		ps.Participations += n
		if winner != "" {
			ps.Wins++
		}

		// Two seats in one pod can share a bracket bucket or a
		// commander; each still counts the game once.
		seenBuckets := make(map[string]bool, n)
		seenCommanders := make(map[string]bool, n)

		for _, e := range pod {
			won := winner != "" && e.Player == winner

			pa := players[e.Player]
			if pa == nil {
				pa = &playerAcc{commanderEntries: make(map[string]int)}
				players[e.Player] = pa
			}
			pa.games++
			pa.weightedGames++
			pa.commanderEntries[e.Commander]++
			if b, rated := e.RatedBracket(); rated && bavgOK {
				pa.metaDeltaGames++
				pa.metaDeltaSum += float64(b) - bavg
			}

			pk := pairKey{e.Player, e.Commander}
			pr := pairs[pk]
			if pr == nil {
				pr = &weightedAcc{}
				pairs[pk] = pr
			}
			pr.games++
			pr.weightedGames++

			ca := commanders[e.Commander]
			if ca == nil {
				ca = &counterAcc{}
				commanders[e.Commander] = ca
			}
			if !seenCommanders[e.Commander] {
				seenCommanders[e.Commander] = true
				ca.games++
			}

			ppk := playerPodKey{e.Player, n}
			pp := playerPods[ppk]
			if pp == nil {
				pp = &counterAcc{}
				playerPods[ppk] = pp
			}
			pp.games++

			cpk := pairPodKey{e.Player, e.Commander, n}
			cp := pairPods[cpk]
			if cp == nil {
				cp = &counterAcc{}
				pairPods[cpk] = cp
			}
			cp.games++

			bucket := BracketBucket(e)
			ba := brackets[bucket]
			if ba == nil {
				ba = &counterAcc{}
				brackets[bucket] = ba
			}
			if !seenBuckets[bucket] {
				seenBuckets[bucket] = true
				ba.games++
			}

			tk := tripleKey{e.Player, e.Commander, bucket}
			ta := triples[tk]
			if ta == nil {
				ta = &tripleAcc{}
				triples[tk] = ta
			}
			ta.games++
			ta.weightedGames++
			ta.entryCount++
			if bavgOK {
				ta.tableAvgSum += bavg
				ta.tableAvgN++
			}

			if !won {
				continue
			}

			pa.wins++
			pr.wins++
			ca.wins++
			pp.wins++
			cp.wins++
			ba.wins++
			ta.wins++

			// A win of weight w contributes w to both numerator and
			// denominator, keeping the weighted rate in [0,100].
			addWeightedWin(&pa.weightedAcc, weight, deltaOK)
			addWeightedWin(pr, weight, deltaOK)
			addWeightedWin(&ta.weightedAcc, weight, deltaOK)
			if deltaOK {
				ta.deltas = append(ta.deltas, delta)
			}
		}
	}

	res := Result{
		Counts: models.StatsCounts{Games: len(games), Entries: len(entries)},
	}

	res.Players = buildPlayerRows(players)
	res.Pairs = buildPairRows(pairs)
	res.Commanders = buildCommanderRows(commanders)
	res.PodSizes = buildPodSizeRows(podSizes)
	res.PlayerPods = buildPlayerPodRows(playerPods)
	res.PairPods = buildPairPodRows(pairPods)
	res.Brackets = buildBracketRows(brackets)
	res.Triples = buildTripleRows(triples)
	res.TripleCounts = buildTripleCountRows(triples)
	return res
}

func addWeightedWin(acc *weightedAcc, weight float64, deltaOK bool) {
	w := weight
	if !deltaOK {
		w = 1.0
	}
	acc.weightedWins += w
	acc.weightedGames += w - 1.0
}

func winrate(wins, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(wins) / float64(games) * 100.0
}

func weightedWinrate(acc weightedAcc) (ww, wg, wr float64) {
	ww = acc.weightedWins
	wg = acc.weightedGames
	if wg == 0 {
		wg = float64(acc.games)
	}
	if wg == 0 {
		return ww, wg, 0
	}
	return ww, wg, ww / wg * 100.0
}

func buildPlayerRows(accs map[string]*playerAcc) []models.PlayerRow {
	rows := make([]models.PlayerRow, 0, len(accs))
	for p, acc := range accs {
		ww, wg, wwr := weightedWinrate(acc.weightedAcc)
		row := models.PlayerRow{
			Player:           p,
			Games:            acc.games,
			Wins:             acc.wins,
			Winrate:          winrate(acc.wins, acc.games),
			WeightedWins:     ww,
			WeightedGames:    wg,
			WeightedWinrate:  wwr,
			UniqueCommanders: len(acc.commanderEntries),
		}
		row.TopCommander, row.TopCommanderGames = topCommander(acc.commanderEntries)
		if acc.metaDeltaGames > 0 {
			mi := acc.metaDeltaSum / float64(acc.metaDeltaGames)
			row.MetaImpact = &mi
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Games != rows[j].Games {
			return rows[i].Games > rows[j].Games
		}
		if rows[i].Winrate != rows[j].Winrate {
			return rows[i].Winrate > rows[j].Winrate
		}
		return lessFold(rows[i].Player, rows[j].Player)
	})
	return rows
}

// topCommander picks the commander the player fielded most often.
// Equal counts break alphabetically (case-insensitive) so the result
// never depends on map iteration order.
func topCommander(counts map[string]int) (string, int) {
	best, bestN := "", 0
	for c, n := range counts {
		if n > bestN || (n == bestN && bestN > 0 && lessFold(c, best)) {
			best, bestN = c, n
		}
	}
	return best, bestN
}

func buildPairRows(accs map[pairKey]*weightedAcc) []models.PairRow {
	rows := make([]models.PairRow, 0, len(accs))
	for k, acc := range accs {
		ww, wg, wwr := weightedWinrate(*acc)
		rows = append(rows, models.PairRow{
			Player:          k.player,
			Commander:       k.commander,
			Games:           acc.games,
			Wins:            acc.wins,
			Winrate:         winrate(acc.wins, acc.games),
			WeightedWins:    ww,
			WeightedGames:   wg,
			WeightedWinrate: wwr,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Games != rows[j].Games {
			return rows[i].Games > rows[j].Games
		}
		if rows[i].Winrate != rows[j].Winrate {
			return rows[i].Winrate > rows[j].Winrate
		}
		if !strings.EqualFold(rows[i].Player, rows[j].Player) {
			return lessFold(rows[i].Player, rows[j].Player)
		}
		return lessFold(rows[i].Commander, rows[j].Commander)
	})
	return rows
}

func buildCommanderRows(accs map[string]*counterAcc) []models.CommanderRow {
	rows := make([]models.CommanderRow, 0, len(accs))
	for c, acc := range accs {
		rows = append(rows, models.CommanderRow{
			Commander: c,
			Games:     acc.games,
			Wins:      acc.wins,
			Winrate:   winrate(acc.wins, acc.games),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Games != rows[j].Games {
			return rows[i].Games > rows[j].Games
		}
		if rows[i].Winrate != rows[j].Winrate {
			return rows[i].Winrate > rows[j].Winrate
		}
		return lessFold(rows[i].Commander, rows[j].Commander)
	})
	return rows
}

func buildPodSizeRows(accs map[int]*models.PodSizeRow) []models.PodSizeRow {
	rows := make([]models.PodSizeRow, 0, len(accs))
	for _, r := range accs {
		row := *r
		row.Winrate = winrate(row.Wins, row.Games)
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PodSize < rows[j].PodSize })
	return rows
}

func buildPlayerPodRows(accs map[playerPodKey]*counterAcc) []models.PlayerPodRow {
	rows := make([]models.PlayerPodRow, 0, len(accs))
	for k, acc := range accs {
		rows = append(rows, models.PlayerPodRow{
			Player:   k.player,
			PodSize:  k.podSize,
			Games:    acc.games,
			Wins:     acc.wins,
			Winrate:  winrate(acc.wins, acc.games),
			Baseline: PodBaseline(k.podSize),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PodSize != rows[j].PodSize {
			return rows[i].PodSize < rows[j].PodSize
		}
		if rows[i].Games != rows[j].Games {
			return rows[i].Games > rows[j].Games
		}
		if rows[i].Winrate != rows[j].Winrate {
			return rows[i].Winrate > rows[j].Winrate
		}
		return lessFold(rows[i].Player, rows[j].Player)
	})
	return rows
}

func buildPairPodRows(accs map[pairPodKey]*counterAcc) []models.PairPodRow {
	rows := make([]models.PairPodRow, 0, len(accs))
	for k, acc := range accs {
		rows = append(rows, models.PairPodRow{
			Player:    k.player,
			Commander: k.commander,
			PodSize:   k.podSize,
			Games:     acc.games,
			Wins:      acc.wins,
			Winrate:   winrate(acc.wins, acc.games),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PodSize != rows[j].PodSize {
			return rows[i].PodSize < rows[j].PodSize
		}
		if rows[i].Games != rows[j].Games {
			return rows[i].Games > rows[j].Games
		}
		if rows[i].Winrate != rows[j].Winrate {
			return rows[i].Winrate > rows[j].Winrate
		}
		if !strings.EqualFold(rows[i].Player, rows[j].Player) {
			return lessFold(rows[i].Player, rows[j].Player)
		}
		return lessFold(rows[i].Commander, rows[j].Commander)
	})
	return rows
}

func buildBracketRows(accs map[string]*counterAcc) []models.BracketRow {
	rows := make([]models.BracketRow, 0, len(accs))
	for b, acc := range accs {
		rows = append(rows, models.BracketRow{
			Bracket: b,
			Games:   acc.games,
			Wins:    acc.wins,
			Winrate: winrate(acc.wins, acc.games),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		ni, nj := rows[i].Bracket == UnratedBucket, rows[j].Bracket == UnratedBucket
		if ni != nj {
			return nj // "n/a" sorts last
		}
		return rows[i].Bracket < rows[j].Bracket
	})
	return rows
}

func buildTripleRows(accs map[tripleKey]*tripleAcc) []models.TripleRow {
	rows := make([]models.TripleRow, 0, len(accs))
	for k, acc := range accs {
		ww, wg, wwr := weightedWinrate(acc.weightedAcc)
		row := models.TripleRow{
			Player:          k.player,
			Commander:       k.commander,
			Bracket:         k.bracket,
			Games:           acc.games,
			Wins:            acc.wins,
			Winrate:         winrate(acc.wins, acc.games),
			WeightedWins:    ww,
			WeightedGames:   wg,
			WeightedWinrate: wwr,
		}

		bpi, ok := BPI(acc.deltas)
		if ok {
			v := bpi
			row.BPI = &v
		}
		row.BPILabel = BPILabel(bpi, ok)

		if acc.wins > 0 {
			cov := float64(len(acc.deltas)) / float64(acc.wins) * 100.0
			row.DeltaCoverage = &cov
		}
		if acc.tableAvgN > 0 {
			avg := acc.tableAvgSum / float64(acc.tableAvgN)
			row.AvgTableBracket = &avg
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Games != rows[j].Games {
			return rows[i].Games > rows[j].Games
		}
		if rows[i].WeightedWinrate != rows[j].WeightedWinrate {
			return rows[i].WeightedWinrate > rows[j].WeightedWinrate
		}
		if rows[i].Winrate != rows[j].Winrate {
			return rows[i].Winrate > rows[j].Winrate
		}
		if !strings.EqualFold(rows[i].Player, rows[j].Player) {
			return lessFold(rows[i].Player, rows[j].Player)
		}
		return lessFold(rows[i].Commander, rows[j].Commander)
	})
	return rows
}

func buildTripleCountRows(accs map[tripleKey]*tripleAcc) []models.TripleCountRow {
	rows := make([]models.TripleCountRow, 0, len(accs))
	for k, acc := range accs {
		rows = append(rows, models.TripleCountRow{
			Commander: k.commander,
			Player:    k.player,
			Bracket:   k.bracket,
			Entries:   acc.entryCount,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !strings.EqualFold(rows[i].Commander, rows[j].Commander) {
			return lessFold(rows[i].Commander, rows[j].Commander)
		}
		if !strings.EqualFold(rows[i].Player, rows[j].Player) {
			return lessFold(rows[i].Player, rows[j].Player)
		}
		ni, nj := rows[i].Bracket == UnratedBucket, rows[j].Bracket == UnratedBucket
		if ni != nj {
			return nj
		}
		return rows[i].Bracket < rows[j].Bracket
	})
	return rows
}

// lessFold orders strings case-insensitively with a case-sensitive
// tie-break so distinct casings keep a stable order.
func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

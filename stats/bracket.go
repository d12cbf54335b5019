package stats

import (
	"strconv"

	"github.com/tempio/commander-tracker/models"
)

// DefaultAlpha is the standard weighting strength for win weights.
const DefaultAlpha = 0.5

// BPI qualitative labels.
const (
	LabelNA       = "n/a"
	LabelPubstomp = "pubstomp"
	LabelOver     = "over"
	LabelFair     = "fair"
	LabelUnderdog = "underdog"
)

// UnratedBucket labels entries without a usable bracket value.
const UnratedBucket = "n/a"

// TableBracketAverage returns the arithmetic mean bracket of a pod over
// its rated entries. ok is false when no entry is rated: "no data" is
// distinct from an average of zero.
func TableBracketAverage(entries []models.GameEntry) (float64, bool) {
	sum, n := 0, 0
	for _, e := range entries {
		if b, rated := e.RatedBracket(); rated {
			sum += b
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// WinnerBracket returns the bracket of the entry whose player matches
// winner exactly. ok is false when winner is empty, not seated in the
// pod, or seated but unrated.
func WinnerBracket(entries []models.GameEntry, winner string) (int, bool) {
	if winner == "" {
		return 0, false
	}
	for _, e := range entries {
		if e.Player == winner {
			return e.RatedBracket()
		}
	}
	return 0, false
}

// WinWeight maps a winner's bracket delta to a win multiplier.
//
//	delta > 0: winner above the table average, penalize: 1/(1+alpha*delta)
//	delta < 0: winner below the table average, reward:   1+alpha*(-delta)
//	delta == 0: neutral, 1
//
// Negative alpha is clamped to 0. Neither delta nor the result is
// clamped here; callers bound alpha at the presentation edge.
func WinWeight(delta, alpha float64) float64 {
	if alpha < 0 {
		alpha = 0
	}
	switch {
	case delta > 0:
		return 1.0 / (1.0 + alpha*delta)
	case delta < 0:
		return 1.0 + alpha*(-delta)
	default:
		return 1.0
	}
}

// BPI is the mean bracket delta over a key's winning games. ok is false
// for an empty input.
func BPI(deltas []float64) (float64, bool) {
	if len(deltas) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, d := range deltas {
		sum += d
	}
	return sum / float64(len(deltas)), true
}

// BPILabel gives the qualitative reading of a BPI value. Thresholds are
// fixed; boundaries round up to the stronger label.
func BPILabel(bpi float64, ok bool) string {
	switch {
	case !ok:
		return LabelNA
	case bpi >= 2.0:
		return LabelPubstomp
	case bpi >= 1.0:
		return LabelOver
	case bpi <= -1.0:
		return LabelUnderdog
	default:
		return LabelFair
	}
}

// PodBaseline is the naive win expectation for one seat in a pod of n,
// as a percentage.
func PodBaseline(n int) float64 {
	if n <= 0 {
		return 0
	}
	return 100.0 / float64(n)
}

// BracketBucket labels an entry's bracket for bucketed tables; unrated
// or out-of-range values fall into the "n/a" bucket.
func BracketBucket(e models.GameEntry) string {
	if b, rated := e.RatedBracket(); rated {
		return strconv.Itoa(b)
	}
	return UnratedBucket
}

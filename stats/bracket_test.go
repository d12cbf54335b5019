package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempio/commander-tracker/models"
)

func intPtr(v int) *int { return &v }

func entry(player, commander string, bracket *int) models.GameEntry {
	return models.GameEntry{Player: player, Commander: commander, Bracket: bracket}
}

func TestTableBracketAverage(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.GameEntry
		want    float64
		wantOK  bool
	}{
		{
			name: "all rated",
			entries: []models.GameEntry{
				entry("a", "x", intPtr(2)),
				entry("b", "y", intPtr(2)),
				entry("c", "z", intPtr(2)),
				entry("d", "w", intPtr(4)),
			},
			want:   2.5,
			wantOK: true,
		},
		{
			name: "mixed rated and unrated averages over rated only",
			entries: []models.GameEntry{
				entry("a", "x", intPtr(3)),
				entry("b", "y", nil),
				entry("c", "z", intPtr(1)),
			},
			want:   2,
			wantOK: true,
		},
		{
			name: "no rated entries",
			entries: []models.GameEntry{
				entry("a", "x", nil),
				entry("b", "y", nil),
			},
			wantOK: false,
		},
		{
			name: "out of range treated as unrated",
			entries: []models.GameEntry{
				entry("a", "x", intPtr(9)),
			},
			wantOK: false,
		},
		{name: "empty pod", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TableBracketAverage(tt.entries)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestWinnerBracket(t *testing.T) {
	pod := []models.GameEntry{
		entry("Ann", "Krenko", intPtr(4)),
		entry("Bob", "Tatyova", nil),
	}

	b, ok := WinnerBracket(pod, "Ann")
	require.True(t, ok)
	assert.Equal(t, 4, b)

	_, ok = WinnerBracket(pod, "Bob")
	assert.False(t, ok, "unrated winner has no bracket")

	_, ok = WinnerBracket(pod, "Cat")
	assert.False(t, ok, "winner not seated")

	_, ok = WinnerBracket(pod, "")
	assert.False(t, ok, "empty winner")

	_, ok = WinnerBracket(pod, "ann")
	assert.False(t, ok, "player names are case-sensitive")
}

func TestWinWeight(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		alpha float64
		want  float64
	}{
		{"above average is penalized", 1.5, 0.5, 4.0 / 7.0},
		{"below average is rewarded", -0.5, 0.5, 1.25},
		{"exactly average is neutral", 0, 0.5, 1},
		{"zero alpha disables weighting", 2, 0, 1},
		{"negative alpha clamps to zero", 2, -3, 1},
		{"strong penalty", 2, 1, 1.0 / 3.0},
		{"strong reward", -2, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WinWeight(tt.delta, tt.alpha), 1e-9)
		})
	}
}

func TestWinWeightStrictlyDecreasingInDelta(t *testing.T) {
	deltas := []float64{-4, -2.5, -1, -0.25, 0, 0.5, 1, 1.75, 3, 4}

	for _, alpha := range []float64{0.25, 0.5, 1, 2, 5} {
		for i := 1; i < len(deltas); i++ {
			lo, hi := deltas[i-1], deltas[i]
			assert.Greater(t, WinWeight(lo, alpha), WinWeight(hi, alpha),
				"alpha=%v: weight must fall from delta %v to %v", alpha, lo, hi)
		}
	}

	// With alpha 0 the weight is flat at 1 across the whole range.
	for _, d := range deltas {
		assert.InDelta(t, 1.0, WinWeight(d, 0), 1e-9)
	}
}

func TestBPI(t *testing.T) {
	_, ok := BPI(nil)
	assert.False(t, ok)

	got, ok := BPI([]float64{1.5, 0.5, -1.0})
	require.True(t, ok)
	assert.InDelta(t, 1.0/3.0, got, 1e-9)
}

func TestBPILabel(t *testing.T) {
	tests := []struct {
		name string
		bpi  float64
		ok   bool
		want string
	}{
		{"undefined", 0, false, LabelNA},
		{"pubstomp at boundary", 2.0, true, LabelPubstomp},
		{"above pubstomp", 3.5, true, LabelPubstomp},
		{"over at boundary", 1.0, true, LabelOver},
		{"fair just below over", 0.999, true, LabelFair},
		{"fair at zero", 0, true, LabelFair},
		{"fair just above underdog", -0.999, true, LabelFair},
		{"underdog at boundary", -1.0, true, LabelUnderdog},
		{"deep underdog", -2.5, true, LabelUnderdog},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BPILabel(tt.bpi, tt.ok))
		})
	}
}

func TestPodBaseline(t *testing.T) {
	assert.InDelta(t, 25.0, PodBaseline(4), 1e-9)
	assert.InDelta(t, 100.0/3.0, PodBaseline(3), 1e-9)
	assert.Equal(t, 0.0, PodBaseline(0))
	assert.Equal(t, 0.0, PodBaseline(-1))
}

func TestBracketBucket(t *testing.T) {
	assert.Equal(t, "3", BracketBucket(entry("a", "x", intPtr(3))))
	assert.Equal(t, UnratedBucket, BracketBucket(entry("a", "x", nil)))
	assert.Equal(t, UnratedBucket, BracketBucket(entry("a", "x", intPtr(0))))
	assert.Equal(t, UnratedBucket, BracketBucket(entry("a", "x", intPtr(6))))
}

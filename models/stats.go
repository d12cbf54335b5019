package models

// Aggregate rows produced by the stats engine. Each table is a slice of
// one of these structs; presentation adapters render them as-is and
// never recompute numbers from raw rows.

type PlayerRow struct {
	Player            string   `json:"player"`
	Games             int      `json:"games"`
	Wins              int      `json:"wins"`
	Winrate           float64  `json:"winrate"`
	WeightedWins      float64  `json:"weighted_wins"`
	WeightedGames     float64  `json:"weighted_games"`
	WeightedWinrate   float64  `json:"weighted_winrate"`
	UniqueCommanders  int      `json:"unique_commanders"`
	TopCommander      string   `json:"top_commander,omitempty"`
	TopCommanderGames int      `json:"top_commander_games"`
	MetaImpact        *float64 `json:"meta_impact,omitempty"`
}

type PairRow struct {
	Player          string  `json:"player"`
	Commander       string  `json:"commander"`
	Games           int     `json:"games"`
	Wins            int     `json:"wins"`
	Winrate         float64 `json:"winrate"`
	WeightedWins    float64 `json:"weighted_wins"`
	WeightedGames   float64 `json:"weighted_games"`
	WeightedWinrate float64 `json:"weighted_winrate"`
}

type CommanderRow struct {
	Commander string  `json:"commander"`
	Games     int     `json:"games"`
	Wins      int     `json:"wins"`
	Winrate   float64 `json:"winrate"`
}

// PodSizeRow describes one pod size overall: how many games were played
// at that size and how often any winner was recorded. Baseline is the
// naive 1/N expectation, informational only.
type PodSizeRow struct {
	PodSize        int     `json:"pod_size"`
	Games          int     `json:"games"`
	Participations int     `json:"participations"`
	Wins           int     `json:"wins"`
	Winrate        float64 `json:"winrate"`
	Baseline       float64 `json:"baseline"`
}

type PlayerPodRow struct {
	Player   string  `json:"player"`
	PodSize  int     `json:"pod_size"`
	Games    int     `json:"games"`
	Wins     int     `json:"wins"`
	Winrate  float64 `json:"winrate"`
	Baseline float64 `json:"baseline"`
}

type PairPodRow struct {
	Player    string  `json:"player"`
	Commander string  `json:"commander"`
	PodSize   int     `json:"pod_size"`
	Games     int     `json:"games"`
	Wins      int     `json:"wins"`
	Winrate   float64 `json:"winrate"`
}

// BracketRow buckets entries by bracket value; unrated entries land in
// the "n/a" bucket.
type BracketRow struct {
	Bracket string  `json:"bracket"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	Winrate float64 `json:"winrate"`
}

// TripleRow is the (player, commander, bracket-bucket) table with the
// full bracket-adjusted metric set.
type TripleRow struct {
	Player          string   `json:"player"`
	Commander       string   `json:"commander"`
	Bracket         string   `json:"bracket"`
	Games           int      `json:"games"`
	Wins            int      `json:"wins"`
	Winrate         float64  `json:"winrate"`
	WeightedWins    float64  `json:"weighted_wins"`
	WeightedGames   float64  `json:"weighted_games"`
	WeightedWinrate float64  `json:"weighted_winrate"`
	BPI             *float64 `json:"bpi,omitempty"`
	BPILabel        string   `json:"bpi_label"`
	DeltaCoverage   *float64 `json:"delta_coverage,omitempty"`
	AvgTableBracket *float64 `json:"avg_table_bracket,omitempty"`
}

// TripleCountRow is the data-hygiene listing of distinct
// (commander, player, bracket-bucket) combinations with entry counts.
type TripleCountRow struct {
	Commander string `json:"commander"`
	Player    string `json:"player"`
	Bracket   string `json:"bracket"`
	Entries   int    `json:"entries"`
}

type TrendPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// CommanderBracketSummary reports how a commander's entries distribute
// over bracket buckets; CurrentBracket is the modal rated bracket.
type CommanderBracketSummary struct {
	Commander      string         `json:"commander"`
	Total          int            `json:"total"`
	Counts         map[string]int `json:"counts"`
	CurrentBracket *int           `json:"current_bracket,omitempty"`
}

// StatsCounts are the scalar summary counts of a snapshot.
type StatsCounts struct {
	Games   int `json:"games"`
	Entries int `json:"entries"`
}

type StatsFilters struct {
	Players    []string `json:"players"`
	Commanders []string `json:"commanders"`
	Brackets   []int    `json:"brackets"`
}

// StatsPayload is the versioned data-first export contract. Consumers
// (static pages, CSV writers) treat it as the single source of truth.
type StatsPayload struct {
	Version           string           `json:"version"`
	GeneratedUTC      string           `json:"generated_utc"`
	Counts            StatsCounts      `json:"counts"`
	Filters           StatsFilters     `json:"filters"`
	ByPlayer          []PlayerRow      `json:"by_player"`
	ByPlayerCommander []PairRow        `json:"by_player_commander"`
	ByCommander       []CommanderRow   `json:"by_commander"`
	ByPodSize         []PodSizeRow     `json:"by_pod_size"`
	ByPlayerPodSize   []PlayerPodRow   `json:"by_player_pod_size"`
	ByPairPodSize     []PairPodRow     `json:"by_pair_pod_size"`
	ByBracket         []BracketRow     `json:"by_bracket"`
	Triples           []TripleRow      `json:"triples"`
	TripleCounts      []TripleCountRow `json:"triple_counts"`
}

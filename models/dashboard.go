package models

// BubbleRow backs the pairing scatter charts. Radius is precomputed so
// every renderer (HTML page, static export) draws identical bubbles.
type BubbleRow struct {
	Player    string  `json:"player"`
	Commander string  `json:"commander"`
	Games     int     `json:"games"`
	Wins      int     `json:"wins"`
	Winrate   float64 `json:"winrate"`
	Radius    int     `json:"radius"`
}

// DashboardPayload feeds both the classic and the bracket-weighted
// dashboard. Weighted distinguishes the two.
type DashboardPayload struct {
	GeneratedUTC  string         `json:"generated_utc"`
	Weighted      bool           `json:"weighted"`
	Alpha         float64        `json:"alpha"`
	Counts        StatsCounts    `json:"counts"`
	TopPlayers    []PlayerRow    `json:"top_players"`
	TopPairs      []PairRow      `json:"top_pairs"`
	TopCommanders []CommanderRow `json:"top_commanders"`
	PodSizes      []PodSizeRow   `json:"pod_sizes"`
	Brackets      []BracketRow   `json:"brackets"`
	Activity      []TrendPoint   `json:"activity"`
	Bubbles       []BubbleRow    `json:"bubbles"`
}

// PlayerDashboardPayload is the per-player drill-down.
type PlayerDashboardPayload struct {
	Player       string         `json:"player"`
	GeneratedUTC string         `json:"generated_utc"`
	Alpha        float64        `json:"alpha"`
	Summary      *PlayerRow     `json:"summary,omitempty"`
	Trend        []TrendPoint   `json:"trend"`
	Pods         []PlayerPodRow `json:"pods"`
	Commanders   []PairRow      `json:"commanders"`
	Triples      []TripleRow    `json:"triples"`
	Bubbles      []BubbleRow    `json:"bubbles"`
}

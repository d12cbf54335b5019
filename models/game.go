package models

import "time"

// Game is one recorded match. WinnerPlayer must match exactly one
// participant's player name for the game to register a win; nil means
// no recorded winner.
type Game struct {
	ID           int       `json:"id"`
	PlayedAt     time.Time `json:"played_at"`
	Notes        *string   `json:"notes,omitempty"`
	WinnerPlayer *string   `json:"winner_player,omitempty"`

	// Optional linked data, populated by the service layer, not stored
	// on the games table.
	Entries []GameEntry `json:"entries,omitempty"`
}

// GameEntry is one seat at a game's table. Player and commander are
// opaque display strings: case and whitespace variants are distinct
// keys, normalization is the ingestion layer's business.
type GameEntry struct {
	ID        int    `json:"id"`
	GameID    int    `json:"game_id"`
	Player    string `json:"player"`
	Commander string `json:"commander"`
	Bracket   *int   `json:"bracket,omitempty"` // 1..5, nil = unrated
}

const (
	BracketMin = 1
	BracketMax = 5
)

// RatedBracket reports the entry's bracket when it is present and in
// range. Out-of-range values are treated as unrated rather than fatal.
func (e GameEntry) RatedBracket() (int, bool) {
	if e.Bracket == nil {
		return 0, false
	}
	b := *e.Bracket
	if b < BracketMin || b > BracketMax {
		return 0, false
	}
	return b, true
}

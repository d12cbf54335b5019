package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tempio/commander-tracker/models"
)

var (
	ErrNoEntries      = errors.New("no entries found in lineup text")
	ErrInvalidLine    = errors.New("invalid lineup line")
	ErrInvalidBracket = errors.New("invalid bracket (use 1-5 or n/a)")
)

// unratedTokens are the accepted spellings of "no bracket".
var unratedTokens = map[string]bool{
	"":     true,
	"n/a":  true,
	"na":   true,
	"none": true,
	"null": true,
}

// ParsedEntry is one lineup line before it becomes a GameEntry.
type ParsedEntry struct {
	Player    string
	Commander string
	Bracket   *int
}

// ParseLineup parses the one-line-per-participant lineup format:
//
//	Player - Commander - Bracket
//
// Bracket is an integer 1-5 or one of the unrated tokens; the legacy
// two-field form "Player - Commander" is also accepted. The spaced
// separator " - " is preferred when present so hyphenated names
// survive; commanders that themselves contain the separator are
// rejoined from the middle fields.
func ParseLineup(text string) ([]ParsedEntry, error) {
	var out []ParsedEntry
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}

	if len(out) == 0 {
		return nil, ErrNoEntries
	}
	return out, nil
}

func parseLine(line string) (ParsedEntry, error) {
	sep := "-"
	if strings.Contains(line, " - ") {
		sep = " - "
	}

	parts := strings.Split(line, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 {
		return ParsedEntry{}, fmt.Errorf("%w: %s", ErrInvalidLine, line)
	}

	player := parts[0]
	if player == "" {
		return ParsedEntry{}, fmt.Errorf("%w: %s", ErrInvalidLine, line)
	}

	var bracket *int
	commanderParts := parts[1:]

	// Three or more fields: the last one is the bracket token.
	if len(parts) >= 3 {
		token := strings.ToLower(parts[len(parts)-1])
		commanderParts = parts[1 : len(parts)-1]

		if !unratedTokens[token] {
			val, err := strconv.Atoi(token)
			if err != nil {
				return ParsedEntry{}, fmt.Errorf("%w: %s", ErrInvalidBracket, line)
			}
			if val < models.BracketMin || val > models.BracketMax {
				return ParsedEntry{}, fmt.Errorf("%w: %s", ErrInvalidBracket, line)
			}
			bracket = &val
		}
	}

	kept := commanderParts[:0]
	for _, c := range commanderParts {
		if c != "" {
			kept = append(kept, c)
		}
	}
	commander := strings.TrimSpace(strings.Join(kept, " "+strings.TrimSpace(sep)+" "))
	if commander == "" {
		return ParsedEntry{}, fmt.Errorf("%w: %s", ErrInvalidLine, line)
	}

	return ParsedEntry{Player: player, Commander: commander, Bracket: bracket}, nil
}

// FormatLineup renders entries back to the lineup text format, the
// inverse of ParseLineup for edit forms.
func FormatLineup(entries []models.GameEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		bracket := "n/a"
		if e.Bracket != nil {
			bracket = strconv.Itoa(*e.Bracket)
		}
		lines = append(lines, fmt.Sprintf("%s - %s - %s", e.Player, e.Commander, bracket))
	}
	return strings.Join(lines, "\n")
}

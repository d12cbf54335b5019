package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/tempio/commander-tracker/models"
	"github.com/tempio/commander-tracker/repositories"
	"github.com/tempio/commander-tracker/stats"
)

// BracketService maintains commander bracket assignments across the
// recorded history. Commander matching is case-insensitive.
type BracketService interface {
	CommanderSummary(ctx context.Context, commander string) (*models.CommanderBracketSummary, error)
	ListSummaries(ctx context.Context) ([]models.CommanderBracketSummary, error)
	SetCommanderBracket(ctx context.Context, commander string, bracket *int) (int, error)
}

type bracketService struct {
	entryRepo repositories.EntryRepository
	logger    *slog.Logger
}

func NewBracketService(entryRepo repositories.EntryRepository, logger *slog.Logger) BracketService {
	return &bracketService{entryRepo: entryRepo, logger: logger}
}

func (s *bracketService) CommanderSummary(ctx context.Context, commander string) (*models.CommanderBracketSummary, error) {
	if strings.TrimSpace(commander) == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrCommanderRequired)
	}
	entries, err := s.entryRepo.ListByCommander(ctx, nil, commander)
	if err != nil {
		return nil, fmt.Errorf("list entries for commander %q: %w", commander, err)
	}
	if len(entries) == 0 {
		return nil, ErrCommanderNotFound
	}
	summary := summarize(entries[0].Commander, entries)
	return &summary, nil
}

func (s *bracketService) ListSummaries(ctx context.Context) ([]models.CommanderBracketSummary, error) {
	entries, err := s.entryRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	// Commanders differing only in case fold into one summary, keyed by
	// the spelling seen first.
	byCommander := make(map[string][]models.GameEntry)
	display := make(map[string]string)
	for _, e := range entries {
		key := strings.ToLower(e.Commander)
		if _, ok := display[key]; !ok {
			display[key] = e.Commander
		}
		byCommander[key] = append(byCommander[key], e)
	}

	summaries := make([]models.CommanderBracketSummary, 0, len(byCommander))
	for key, group := range byCommander {
		summaries = append(summaries, summarize(display[key], group))
	}
	sort.Slice(summaries, func(i, j int) bool {
		a, b := strings.ToLower(summaries[i].Commander), strings.ToLower(summaries[j].Commander)
		if a != b {
			return a < b
		}
		return summaries[i].Commander < summaries[j].Commander
	})
	return summaries, nil
}

// SetCommanderBracket rewrites the bracket on every entry of the
// commander. A nil bracket clears it. Returns the number of entries
// touched.
func (s *bracketService) SetCommanderBracket(ctx context.Context, commander string, bracket *int) (int, error) {
	if strings.TrimSpace(commander) == "" {
		return 0, fmt.Errorf("%w: %w", ErrValidationFailed, ErrCommanderRequired)
	}
	if bracket != nil && (*bracket < models.BracketMin || *bracket > models.BracketMax) {
		return 0, fmt.Errorf("%w: %w", ErrValidationFailed, ErrInvalidBracketValue)
	}
	affected, err := s.entryRepo.SetBracketForCommander(ctx, nil, commander, bracket)
	if err != nil {
		return 0, fmt.Errorf("set bracket for commander %q: %w", commander, err)
	}
	if affected == 0 {
		return 0, ErrCommanderNotFound
	}
	s.logger.Info("commander bracket updated",
		slog.String("commander", commander),
		slog.Int("entries", affected))
	return affected, nil
}

// summarize counts entries per bracket bucket and picks the modal
// rated bracket. Ties resolve to the lower bracket.
func summarize(commander string, entries []models.GameEntry) models.CommanderBracketSummary {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[stats.BracketBucket(e)]++
	}

	var modal *int
	best := 0
	for b := models.BracketMin; b <= models.BracketMax; b++ {
		if n := counts[strconv.Itoa(b)]; n > best {
			best = n
			v := b
			modal = &v
		}
	}

	return models.CommanderBracketSummary{
		Commander:      commander,
		Total:          len(entries),
		Counts:         counts,
		CurrentBracket: modal,
	}
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tempio/commander-tracker/models"
	"github.com/tempio/commander-tracker/repositories"
	"github.com/tempio/commander-tracker/stats"
)

// Snapshot is an immutable read of the full game log. Every aggregate
// in one response is computed from the same snapshot.
type Snapshot struct {
	Games   []models.Game
	Entries []models.GameEntry
}

type StatsService interface {
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
	Compute(ctx context.Context, alpha float64) (*stats.Result, *Snapshot, error)
	BuildPayload(ctx context.Context, alpha float64, filters models.StatsFilters) (*models.StatsPayload, error)
	PlayerTrend(ctx context.Context, player string, weighted bool, alpha float64) ([]models.TrendPoint, error)
}

type statsService struct {
	gameRepo  repositories.GameRepository
	entryRepo repositories.EntryRepository
	logger    *slog.Logger
}

func NewStatsService(
	gameRepo repositories.GameRepository,
	entryRepo repositories.EntryRepository,
	logger *slog.Logger,
) StatsService {
	return &statsService{
		gameRepo:  gameRepo,
		entryRepo: entryRepo,
		logger:    logger,
	}
}

func (s *statsService) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		games, err := s.gameRepo.ListAll(gctx, nil)
		if err != nil {
			return fmt.Errorf("load games: %w", err)
		}
		snap.Games = games
		return nil
	})
	g.Go(func() error {
		entries, err := s.entryRepo.ListAll(gctx, nil)
		if err != nil {
			return fmt.Errorf("load entries: %w", err)
		}
		snap.Entries = entries
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *statsService) Compute(ctx context.Context, alpha float64) (*stats.Result, *Snapshot, error) {
	if alpha < 0 {
		return nil, nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrInvalidAlpha)
	}
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	result := stats.Compute(snap.Games, snap.Entries, stats.Config{Alpha: alpha})
	return &result, snap, nil
}

// BuildPayload assembles the stats.v1 document. Filters restrict which
// games participate: a game is kept when every active filter matches at
// least one of its seats.
func (s *statsService) BuildPayload(ctx context.Context, alpha float64, filters models.StatsFilters) (*models.StatsPayload, error) {
	if alpha < 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrInvalidAlpha)
	}
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	games, entries := applyFilters(snap.Games, snap.Entries, filters)
	result := stats.Compute(games, entries, stats.Config{Alpha: alpha})

	payload := &models.StatsPayload{
		Version:           "stats.v1",
		GeneratedUTC:      time.Now().UTC().Format(time.RFC3339),
		Counts:            result.Counts,
		Filters:           filters,
		ByPlayer:          result.Players,
		ByPlayerCommander: result.Pairs,
		ByCommander:       result.Commanders,
		ByPodSize:         result.PodSizes,
		ByPlayerPodSize:   result.PlayerPods,
		ByPairPodSize:     result.PairPods,
		ByBracket:         result.Brackets,
		Triples:           result.Triples,
		TripleCounts:      result.TripleCounts,
	}
	s.logger.Debug("stats payload built",
		slog.Int("games", payload.Counts.Games),
		slog.Int("entries", payload.Counts.Entries))
	return payload, nil
}

func (s *statsService) PlayerTrend(ctx context.Context, player string, weighted bool, alpha float64) ([]models.TrendPoint, error) {
	if player == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrPlayerRequired)
	}
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return stats.PlayerTrend(snap.Games, snap.Entries, player, weighted, alpha), nil
}

func applyFilters(games []models.Game, entries []models.GameEntry, filters models.StatsFilters) ([]models.Game, []models.GameEntry) {
	if len(filters.Players) == 0 && len(filters.Commanders) == 0 && len(filters.Brackets) == 0 {
		return games, entries
	}

	players := toSet(filters.Players)
	commanders := toSet(filters.Commanders)
	bracketSet := make(map[int]struct{}, len(filters.Brackets))
	for _, b := range filters.Brackets {
		bracketSet[b] = struct{}{}
	}

	byGame := stats.GroupEntriesByGame(entries)
	keep := make(map[int]struct{}, len(games))
	for _, g := range games {
		pod := byGame[g.ID]
		if len(players) > 0 && !anySeat(pod, func(e models.GameEntry) bool {
			_, ok := players[e.Player]
			return ok
		}) {
			continue
		}
		if len(commanders) > 0 && !anySeat(pod, func(e models.GameEntry) bool {
			_, ok := commanders[e.Commander]
			return ok
		}) {
			continue
		}
		if len(bracketSet) > 0 && !anySeat(pod, func(e models.GameEntry) bool {
			b, rated := e.RatedBracket()
			if !rated {
				return false
			}
			_, ok := bracketSet[b]
			return ok
		}) {
			continue
		}
		keep[g.ID] = struct{}{}
	}

	filteredGames := make([]models.Game, 0, len(keep))
	for _, g := range games {
		if _, ok := keep[g.ID]; ok {
			filteredGames = append(filteredGames, g)
		}
	}
	filteredEntries := make([]models.GameEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := keep[e.GameID]; ok {
			filteredEntries = append(filteredEntries, e)
		}
	}
	return filteredGames, filteredEntries
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func anySeat(pod []models.GameEntry, match func(models.GameEntry) bool) bool {
	for _, e := range pod {
		if match(e) {
			return true
		}
	}
	return false
}

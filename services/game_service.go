package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/tempio/commander-tracker/live"
	"github.com/tempio/commander-tracker/models"
	"github.com/tempio/commander-tracker/repositories"
)

// LiveNotifier decouples services from the websocket hub.
type LiveNotifier interface {
	Broadcast(eventType string, payload interface{})
}

type RecordGameInput struct {
	PlayedAt     *time.Time
	Notes        *string
	WinnerPlayer *string
	Entries      []models.GameEntry
}

type GameService interface {
	Record(ctx context.Context, input RecordGameInput) (*models.Game, error)
	GetByID(ctx context.Context, id int) (*models.Game, error)
	ListRecent(ctx context.Context, limit int) ([]models.Game, error)
	Update(ctx context.Context, id int, input RecordGameInput) (*models.Game, error)
	Delete(ctx context.Context, id int) error
	DistinctPlayers(ctx context.Context) ([]string, error)
	DistinctCommanders(ctx context.Context) ([]string, error)
}

type gameService struct {
	db        *sql.DB
	gameRepo  repositories.GameRepository
	entryRepo repositories.EntryRepository
	notifier  LiveNotifier
	logger    *slog.Logger
}

func NewGameService(
	db *sql.DB,
	gameRepo repositories.GameRepository,
	entryRepo repositories.EntryRepository,
	notifier LiveNotifier,
	logger *slog.Logger,
) GameService {
	return &gameService{
		db:        db,
		gameRepo:  gameRepo,
		entryRepo: entryRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

func validateGameInput(input RecordGameInput) error {
	if len(input.Entries) == 0 {
		return fmt.Errorf("%w: %w", ErrValidationFailed, ErrLineupRequired)
	}
	for _, e := range input.Entries {
		if strings.TrimSpace(e.Player) == "" {
			return fmt.Errorf("%w: %w", ErrValidationFailed, ErrPlayerRequired)
		}
		if strings.TrimSpace(e.Commander) == "" {
			return fmt.Errorf("%w: %w", ErrValidationFailed, ErrCommanderRequired)
		}
		if e.Bracket != nil && (*e.Bracket < models.BracketMin || *e.Bracket > models.BracketMax) {
			return fmt.Errorf("%w: %w", ErrValidationFailed, ErrInvalidBracketValue)
		}
	}
	if input.WinnerPlayer != nil && *input.WinnerPlayer != "" {
		found := false
		for _, e := range input.Entries {
			if e.Player == *input.WinnerPlayer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %w", ErrValidationFailed, ErrWinnerNotInLineup)
		}
	}
	return nil
}

func (s *gameService) Record(ctx context.Context, input RecordGameInput) (*models.Game, error) {
	input.WinnerPlayer = normalizeWinner(input.WinnerPlayer)
	if err := validateGameInput(input); err != nil {
		return nil, err
	}

	game := &models.Game{
		Notes:        input.Notes,
		WinnerPlayer: input.WinnerPlayer,
	}
	if input.PlayedAt != nil {
		game.PlayedAt = input.PlayedAt.UTC()
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.gameRepo.Create(ctx, tx, game); err != nil {
			return fmt.Errorf("create game: %w", err)
		}
		if err := s.entryRepo.CreateBatch(ctx, tx, game.ID, input.Entries); err != nil {
			return fmt.Errorf("create entries for game %d: %w", game.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	game.Entries = input.Entries
	s.logger.Info("game recorded",
		slog.Int("game_id", game.ID),
		slog.Int("pod_size", len(game.Entries)))
	s.notifier.Broadcast(live.EventGameRecorded, game)
	return game, nil
}

func (s *gameService) GetByID(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("get game %d: %w", id, err)
	}
	entries, err := s.entryRepo.ListByGame(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("list entries for game %d: %w", id, err)
	}
	sortLineup(entries)
	game.Entries = entries
	return game, nil
}

func (s *gameService) ListRecent(ctx context.Context, limit int) ([]models.Game, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrInvalidLimit)
	}
	games, err := s.gameRepo.ListRecent(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent games: %w", err)
	}
	for i := range games {
		entries, err := s.entryRepo.ListByGame(ctx, nil, games[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list entries for game %d: %w", games[i].ID, err)
		}
		sortLineup(entries)
		games[i].Entries = entries
	}
	return games, nil
}

// sortLineup orders a pod's entries by player then commander,
// case-insensitively, for stable display.
func sortLineup(entries []models.GameEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := strings.ToLower(entries[i].Player), strings.ToLower(entries[j].Player)
		if pi != pj {
			return pi < pj
		}
		return strings.ToLower(entries[i].Commander) < strings.ToLower(entries[j].Commander)
	})
}

func (s *gameService) Update(ctx context.Context, id int, input RecordGameInput) (*models.Game, error) {
	input.WinnerPlayer = normalizeWinner(input.WinnerPlayer)
	if err := validateGameInput(input); err != nil {
		return nil, err
	}

	game, err := s.gameRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("get game %d: %w", id, err)
	}

	if input.PlayedAt != nil {
		game.PlayedAt = input.PlayedAt.UTC()
	}
	game.Notes = input.Notes
	game.WinnerPlayer = input.WinnerPlayer

	// Entries are replaced wholesale: editing a pod re-submits the full lineup.
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.gameRepo.Update(ctx, tx, game); err != nil {
			return fmt.Errorf("update game %d: %w", id, err)
		}
		if err := s.entryRepo.DeleteByGame(ctx, tx, id); err != nil {
			return fmt.Errorf("clear entries for game %d: %w", id, err)
		}
		if err := s.entryRepo.CreateBatch(ctx, tx, id, input.Entries); err != nil {
			return fmt.Errorf("recreate entries for game %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	game.Entries = input.Entries
	s.logger.Info("game updated", slog.Int("game_id", id))
	s.notifier.Broadcast(live.EventGameUpdated, game)
	return game, nil
}

func (s *gameService) Delete(ctx context.Context, id int) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.entryRepo.DeleteByGame(ctx, tx, id); err != nil {
			return fmt.Errorf("delete entries for game %d: %w", id, err)
		}
		if err := s.gameRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	s.logger.Info("game deleted", slog.Int("game_id", id))
	s.notifier.Broadcast(live.EventGameDeleted, map[string]int{"id": id})
	return nil
}

func (s *gameService) DistinctPlayers(ctx context.Context) ([]string, error) {
	players, err := s.entryRepo.DistinctPlayers(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *gameService) DistinctCommanders(ctx context.Context) ([]string, error) {
	commanders, err := s.entryRepo.DistinctCommanders(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list commanders: %w", err)
	}
	return commanders, nil
}

func (s *gameService) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("transaction rollback failed",
				slog.Any("rollback_error", rbErr),
				slog.Any("error", err))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func normalizeWinner(winner *string) *string {
	if winner == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*winner)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

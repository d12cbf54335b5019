package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tempio/commander-tracker/models"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	Create(ctx context.Context, exec SQLExecutor, game *models.Game) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Game, error)
	ListAll(ctx context.Context, exec SQLExecutor) ([]models.Game, error)
	ListRecent(ctx context.Context, exec SQLExecutor, limit int) ([]models.Game, error)
	Update(ctx context.Context, exec SQLExecutor, game *models.Game) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	Count(ctx context.Context, exec SQLExecutor) (int, error)
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGameRepository) Create(ctx context.Context, exec SQLExecutor, game *models.Game) error {
	executor := r.getExecutor(exec)
	if game.PlayedAt.IsZero() {
		game.PlayedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO games (played_at, notes, winner_player)
		VALUES ($1, $2, $3)
		RETURNING id`
	return executor.QueryRowContext(ctx, query, game.PlayedAt, game.Notes, game.WinnerPlayer).Scan(&game.ID)
}

func (r *postgresGameRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Game, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, played_at, notes, winner_player FROM games WHERE id = $1`

	var g models.Game
	err := executor.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.PlayedAt, &g.Notes, &g.WinnerPlayer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *postgresGameRepository) ListAll(ctx context.Context, exec SQLExecutor) ([]models.Game, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, played_at, notes, winner_player FROM games ORDER BY played_at ASC, id ASC`
	return r.scanGames(executor.QueryContext(ctx, query))
}

func (r *postgresGameRepository) ListRecent(ctx context.Context, exec SQLExecutor, limit int) ([]models.Game, error) {
	executor := r.getExecutor(exec)
	query := `SELECT id, played_at, notes, winner_player FROM games ORDER BY played_at DESC, id DESC LIMIT $1`
	return r.scanGames(executor.QueryContext(ctx, query, limit))
}

func (r *postgresGameRepository) scanGames(rows *sql.Rows, err error) ([]models.Game, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		var g models.Game
		if scanErr := rows.Scan(&g.ID, &g.PlayedAt, &g.Notes, &g.WinnerPlayer); scanErr != nil {
			return nil, scanErr
		}
		games = append(games, g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *postgresGameRepository) Update(ctx context.Context, exec SQLExecutor, game *models.Game) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE games
		SET played_at = $1, notes = $2, winner_player = $3
		WHERE id = $4`
	result, err := executor.ExecContext(ctx, query, game.PlayedAt, game.Notes, game.WinnerPlayer, game.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	executor := r.getExecutor(exec)
	var n int
	err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n)
	return n, err
}

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tempio/commander-tracker/models"
)

var ErrEntryNotFound = errors.New("game entry not found")

type EntryRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, gameID int, entries []models.GameEntry) error
	ListByGame(ctx context.Context, exec SQLExecutor, gameID int) ([]models.GameEntry, error)
	ListAll(ctx context.Context, exec SQLExecutor) ([]models.GameEntry, error)
	DeleteByGame(ctx context.Context, exec SQLExecutor, gameID int) error
	DistinctPlayers(ctx context.Context, exec SQLExecutor) ([]string, error)
	DistinctCommanders(ctx context.Context, exec SQLExecutor) ([]string, error)
	ListByCommander(ctx context.Context, exec SQLExecutor, commander string) ([]models.GameEntry, error)
	SetBracketForCommander(ctx context.Context, exec SQLExecutor, commander string, bracket *int) (int, error)
	Count(ctx context.Context, exec SQLExecutor) (int, error)
}

type postgresEntryRepository struct {
	db *sql.DB
}

func NewPostgresEntryRepository(db *sql.DB) EntryRepository {
	return &postgresEntryRepository{db: db}
}

func (r *postgresEntryRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresEntryRepository) CreateBatch(ctx context.Context, exec SQLExecutor, gameID int, entries []models.GameEntry) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO game_entries (game_id, player, commander, bracket)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	for i := range entries {
		entries[i].GameID = gameID
		err := executor.QueryRowContext(ctx, query,
			gameID, entries[i].Player, entries[i].Commander, entries[i].Bracket,
		).Scan(&entries[i].ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresEntryRepository) ListByGame(ctx context.Context, exec SQLExecutor, gameID int) ([]models.GameEntry, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, game_id, player, commander, bracket
		FROM game_entries
		WHERE game_id = $1
		ORDER BY id ASC`
	return r.scanEntries(executor.QueryContext(ctx, query, gameID))
}

func (r *postgresEntryRepository) ListAll(ctx context.Context, exec SQLExecutor) ([]models.GameEntry, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, game_id, player, commander, bracket
		FROM game_entries
		ORDER BY game_id ASC, id ASC`
	return r.scanEntries(executor.QueryContext(ctx, query))
}

func (r *postgresEntryRepository) ListByCommander(ctx context.Context, exec SQLExecutor, commander string) ([]models.GameEntry, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, game_id, player, commander, bracket
		FROM game_entries
		WHERE LOWER(commander) = LOWER($1)
		ORDER BY game_id ASC, id ASC`
	return r.scanEntries(executor.QueryContext(ctx, query, commander))
}

func (r *postgresEntryRepository) scanEntries(rows *sql.Rows, err error) ([]models.GameEntry, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.GameEntry, 0)
	for rows.Next() {
		var e models.GameEntry
		if scanErr := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Commander, &e.Bracket); scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *postgresEntryRepository) DeleteByGame(ctx context.Context, exec SQLExecutor, gameID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM game_entries WHERE game_id = $1`, gameID)
	return err
}

func (r *postgresEntryRepository) DistinctPlayers(ctx context.Context, exec SQLExecutor) ([]string, error) {
	executor := r.getExecutor(exec)
	return r.scanStrings(executor.QueryContext(ctx,
		`SELECT DISTINCT player FROM game_entries ORDER BY player ASC`))
}

func (r *postgresEntryRepository) DistinctCommanders(ctx context.Context, exec SQLExecutor) ([]string, error) {
	executor := r.getExecutor(exec)
	return r.scanStrings(executor.QueryContext(ctx,
		`SELECT DISTINCT commander FROM game_entries ORDER BY commander ASC`))
}

func (r *postgresEntryRepository) scanStrings(rows *sql.Rows, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var s string
		if scanErr := rows.Scan(&s); scanErr != nil {
			return nil, scanErr
		}
		values = append(values, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

func (r *postgresEntryRepository) SetBracketForCommander(ctx context.Context, exec SQLExecutor, commander string, bracket *int) (int, error) {
	executor := r.getExecutor(exec)
	query := `UPDATE game_entries SET bracket = $1 WHERE LOWER(commander) = LOWER($2)`
	result, err := executor.ExecContext(ctx, query, bracket, commander)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

func (r *postgresEntryRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	executor := r.getExecutor(exec)
	var n int
	err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_entries`).Scan(&n)
	return n, err
}

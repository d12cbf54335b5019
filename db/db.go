package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

func Connect(dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return db, nil
}

// EnsureSchema creates the two tables the tracker needs. The schema is
// small enough that migration tooling would be overhead.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id            SERIAL PRIMARY KEY,
			played_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			notes         TEXT,
			winner_player TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS game_entries (
			id        SERIAL PRIMARY KEY,
			game_id   INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			player    TEXT NOT NULL,
			commander TEXT NOT NULL,
			bracket   INTEGER CHECK (bracket BETWEEN 1 AND 5)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_game_entries_game_id ON game_entries(game_id)`,
		`CREATE INDEX IF NOT EXISTS idx_game_entries_commander ON game_entries(LOWER(commander))`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Game is one finished session
type Game struct {
	Session string
	Score   int
	Mode    string
	EndedAt time.Time
}

// Store persists the best score and finished games in sqlite
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS best_score (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			score INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT,
			score INTEGER NOT NULL,
			mode TEXT,
			ended_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS games_score ON games (score DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table (%s): %w", query, err)
		}
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Best returns the stored best score, 0 if none was written yet
func (s *Store) Best(ctx context.Context) (int, error) {
	var best int
	err := s.db.QueryRowContext(ctx, `SELECT score FROM best_score WHERE id = 1`).Scan(&best)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read best score: %w", err)
	}
	return best, nil
}

// UpdateBest stores score if it beats the stored best and reports whether it did
func (s *Store) UpdateBest(ctx context.Context, score int) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO best_score (id, score, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at
		 WHERE excluded.score > best_score.score`,
		score, time.Now().Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update best score: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update best score: %w", err)
	}
	return n > 0, nil
}

// RecordGame appends a finished game to the history
func (s *Store) RecordGame(ctx context.Context, g Game) error {
	if g.EndedAt.IsZero() {
		g.EndedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (session, score, mode, ended_at) VALUES (?, ?, ?, ?)`,
		g.Session, g.Score, g.Mode, g.EndedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record game: %w", err)
	}
	return nil
}

// Top returns the n highest scoring games, most recent first among ties
func (s *Store) Top(ctx context.Context, n int) ([]Game, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session, score, mode, ended_at FROM games
		 ORDER BY score DESC, ended_at DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var (
			g     Game
			ended int64
		)
		if err := rows.Scan(&g.Session, &g.Score, &g.Mode, &ended); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		g.EndedAt = time.Unix(ended, 0)
		games = append(games, g)
	}
	return games, rows.Err()
}

// Count returns the number of recorded games
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return n, nil
}

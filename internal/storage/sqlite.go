// Package storage provides SQLite-based persistence for finished rounds.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Round sources.
const (
	SourceLocal   = "local"   // terminal play
	SourceDesktop = "desktop" // Ebitengine window
	SourceSSH     = "ssh"     // remote terminal session
	SourceStream  = "stream"  // spectated table
	SourceSim     = "sim"     // headless simulation
)

// Store manages the SQLite database connection for round history.
type Store struct {
	db *sqlx.DB
}

// Round is one finished round.
type Round struct {
	ID       int64  `db:"id" json:"id"`
	GameID   string `db:"game_id" json:"game_id"`
	Outcome  string `db:"outcome" json:"outcome"`
	Pocketed int    `db:"pocketed" json:"pocketed"`
	Strikes  int    `db:"strikes" json:"strikes"`
	Frames   int    `db:"frames" json:"frames"`
	Seed     int64  `db:"seed" json:"seed"`
	Source   string `db:"source" json:"source"`
	PlayedMS int64  `db:"played_at" json:"played_at"` // unix milliseconds
}

// PlayedAt returns when the round finished.
func (r Round) PlayedAt() time.Time {
	return time.UnixMilli(r.PlayedMS)
}

// Stats contains aggregated statistics for a game.
type Stats struct {
	GameID      string  `db:"game_id" json:"game_id"`
	Rounds      int     `db:"rounds" json:"rounds"`
	Clears      int     `db:"clears" json:"clears"`
	Scratches   int     `db:"scratches" json:"scratches"`
	Best        int     `db:"best_pocketed" json:"best_pocketed"`
	AvgPocketed float64 `db:"avg_pocketed" json:"avg_pocketed"`
	Strikes     int64   `db:"total_strikes" json:"total_strikes"`
	LastPlayed  int64   `db:"last_played" json:"last_played"` // unix milliseconds
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SQLite allows one writer; the SSH server saves from many sessions.
	db.SetMaxOpenConns(1)

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound records a finished round. PlayedMS defaults to now and Source
// to SourceLocal. Returns the ID of the inserted record.
func (s *Store) SaveRound(r Round) (int64, error) {
	if r.PlayedMS == 0 {
		r.PlayedMS = time.Now().UnixMilli()
	}
	if r.Source == "" {
		r.Source = SourceLocal
	}

	result, err := s.db.NamedExec(
		`INSERT INTO rounds (game_id, outcome, pocketed, strikes, frames, seed, source, played_at)
		 VALUES (:game_id, :outcome, :pocketed, :strikes, :frames, :seed, :source, :played_at)`,
		r,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRounds retrieves the latest rounds, newest first.
// An empty gameID returns rounds of every game.
func (s *Store) RecentRounds(gameID string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}

	var rounds []Round
	err := s.db.Select(&rounds,
		`SELECT id, game_id, outcome, pocketed, strikes, frames, seed, source, played_at
		 FROM rounds
		 WHERE ? = '' OR game_id = ?
		 ORDER BY played_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	return rounds, nil
}

// BestRounds retrieves the rounds with the most balls pocketed.
// Ties go to the round finished in fewer frames.
func (s *Store) BestRounds(gameID string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 10
	}

	var rounds []Round
	err := s.db.Select(&rounds,
		`SELECT id, game_id, outcome, pocketed, strikes, frames, seed, source, played_at
		 FROM rounds
		 WHERE game_id = ?
		 ORDER BY pocketed DESC, frames ASC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best rounds: %w", err)
	}
	return rounds, nil
}

// RoundByID retrieves a single round. Returns nil if it does not exist.
func (s *Store) RoundByID(id int64) (*Round, error) {
	var r Round
	err := s.db.Get(&r,
		`SELECT id, game_id, outcome, pocketed, strikes, frames, seed, source, played_at
		 FROM rounds WHERE id = ?`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round: %w", err)
	}
	return &r, nil
}

// GameStats retrieves aggregated statistics for a specific game.
func (s *Store) GameStats(gameID string) (*Stats, error) {
	stats := &Stats{}
	err := s.db.Get(stats,
		`SELECT ? AS game_id,
		        COUNT(*) AS rounds,
		        COALESCE(SUM(outcome = 'clear'), 0) AS clears,
		        COALESCE(SUM(outcome = 'scratch'), 0) AS scratches,
		        COALESCE(MAX(pocketed), 0) AS best_pocketed,
		        COALESCE(AVG(pocketed), 0) AS avg_pocketed,
		        COALESCE(SUM(strikes), 0) AS total_strikes,
		        COALESCE(MAX(played_at), 0) AS last_played
		 FROM rounds WHERE game_id = ?`,
		gameID, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	return stats, nil
}

// AllGamesStats retrieves statistics for every game that has rounds.
func (s *Store) AllGamesStats() (map[string]*Stats, error) {
	var rows []Stats
	err := s.db.Select(&rows,
		`SELECT game_id,
		        COUNT(*) AS rounds,
		        COALESCE(SUM(outcome = 'clear'), 0) AS clears,
		        COALESCE(SUM(outcome = 'scratch'), 0) AS scratches,
		        MAX(pocketed) AS best_pocketed,
		        AVG(pocketed) AS avg_pocketed,
		        SUM(strikes) AS total_strikes,
		        MAX(played_at) AS last_played
		 FROM rounds
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}

	stats := make(map[string]*Stats, len(rows))
	for i := range rows {
		stats[rows[i].GameID] = &rows[i]
	}
	return stats, nil
}

// ClearRounds deletes all rounds for the given game.
func (s *Store) ClearRounds(gameID string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

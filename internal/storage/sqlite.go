// Package storage provides SQLite-based persistence for runner high scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	Character string
	Score     int
	CreatedAt time.Time
}

// Stats contains aggregated statistics for one character, or all of them.
type Stats struct {
	Character  string
	RunsCount  int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dbPath, "~") {
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			character TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_character ON scores(character);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(character, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished run for the given character.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(character string, score int) (int64, error) {
	if character == "" {
		return 0, errors.New("storage: character is required")
	}
	result, err := s.db.Exec(
		"INSERT INTO scores (character, score) VALUES (?, ?)",
		strings.ToLower(character), score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given character.
// An empty character ranks every run. Results are ordered by score descending.
func (s *Store) TopScores(character string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	where, args := characterFilter(character)
	rows, err := s.db.Query(
		`SELECT id, character, score, created_at
		 FROM scores`+where+`
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		append(args, limit)...,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Character, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given character, or across all
// characters when character is empty. Returns 0 if no scores exist.
func (s *Store) HighScore(character string) (int, error) {
	var score sql.NullInt64
	where, args := characterFilter(character)
	err := s.db.QueryRow("SELECT MAX(score) FROM scores"+where, args...).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// CountScores returns the number of recorded runs for the character, or all runs.
func (s *Store) CountScores(character string) (int, error) {
	var n int
	where, args := characterFilter(character)
	if err := s.db.QueryRow("SELECT COUNT(*) FROM scores"+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count scores: %w", err)
	}
	return n, nil
}

// ClearScores deletes all scores for the given character.
func (s *Store) ClearScores(character string) error {
	where, args := characterFilter(character)
	if _, err := s.db.Exec("DELETE FROM scores"+where, args...); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GetStats retrieves aggregated statistics for a character, or all runs.
func (s *Store) GetStats(character string) (*Stats, error) {
	stats := &Stats{Character: character}
	where, args := characterFilter(character)

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM scores`+where,
		args...,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

func characterFilter(character string) (string, []any) {
	if character == "" {
		return "", nil
	}
	return " WHERE character = ?", []any{strings.ToLower(character)}
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

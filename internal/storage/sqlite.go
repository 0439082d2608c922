// Package storage provides SQLite-based persistence for final 2048 scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-2048/internal/scores"
)

// MaxRankingLimit caps a single ranking query.
const MaxRankingLimit = 100

// Store manages the SQLite database connection for score persistence.
// It implements scores.Board.
type Store struct {
	db *sql.DB
}

var _ scores.Board = (*Store)(nil)

// ScoreEntry represents a single stored score.
type ScoreEntry struct {
	ID        int64
	Nickname  string
	Score     int
	SessionID string
	CreatedAt time.Time
}

// Record converts the entry to the exchange shape.
func (e ScoreEntry) Record() scores.Record {
	return scores.Record{
		Nickname:  e.Nickname,
		Score:     e.Score,
		SessionID: e.SessionID,
		CreatedAt: e.CreatedAt,
	}
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SQLite allows one writer; the score board serves concurrent requests.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

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
			nickname TEXT NOT NULL,
			score INTEGER NOT NULL,
			session_id TEXT UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_nickname ON scores(nickname);
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

// SaveScore appends a record and returns its ID. A record whose SessionID is
// already stored is not inserted again: the existing ID is returned with
// created=false.
func (s *Store) SaveScore(ctx context.Context, rec scores.Record) (id int64, created bool, err error) {
	if err := rec.Validate(); err != nil {
		return 0, false, err
	}

	sessionID := sql.NullString{String: rec.SessionID, Valid: rec.SessionID != ""}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (nickname, score, session_id) VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO NOTHING`,
		strings.TrimSpace(rec.Nickname), rec.Score, sessionID,
	)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot save score: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot save score: %w", err)
	}
	if affected == 0 {
		err := s.db.QueryRowContext(ctx,
			"SELECT id FROM scores WHERE session_id = ?", rec.SessionID,
		).Scan(&id)
		if err != nil {
			return 0, false, fmt.Errorf("storage: cannot find existing score: %w", err)
		}
		return id, false, nil
	}

	id, err = result.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, true, nil
}

// Submit implements scores.Submitter.
func (s *Store) Submit(ctx context.Context, rec scores.Record) error {
	_, _, err := s.SaveScore(ctx, rec)
	return err
}

// Top implements scores.Ranker.
func (s *Store) Top(ctx context.Context, limit int) ([]scores.Record, error) {
	entries, err := s.TopScores(ctx, limit)
	if err != nil {
		return nil, err
	}

	records := make([]scores.Record, len(entries))
	for i, e := range entries {
		records[i] = e.Record()
	}
	return records, nil
}

// TopScores retrieves the top N scores, ordered by score descending. Ties go
// to the earlier record.
func (s *Store) TopScores(ctx context.Context, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = scores.DefaultRankingLimit
	}
	limit = min(limit, MaxRankingLimit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, nickname, score, session_id, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var sessionID sql.NullString
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Nickname, &e.Score, &sessionID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.SessionID = sessionID.String
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest stored score, or 0 if none exist.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT MAX(score) FROM scores").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// PlayerBest returns the best score for nickname, or 0 if it has none.
func (s *Store) PlayerBest(ctx context.Context, nickname string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM scores WHERE nickname = ?",
		strings.TrimSpace(nickname),
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query player best: %w", err)
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores.
func (s *Store) ClearScores(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM scores")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all stored scores.
type Stats struct {
	GamesCount int
	Players    int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// GetStats retrieves aggregated statistics.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT nickname), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM scores`,
	).Scan(&stats.GamesCount, &stats.Players, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRowContext(ctx,
		`SELECT created_at FROM scores ORDER BY id DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(time.DateTime, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

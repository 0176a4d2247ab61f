// Package storage provides SQLite-based persistence for snake training runs:
// per-session telemetry samples and finished-game results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Session is one program run that recorded telemetry.
type Session struct {
	ID        string
	Columns   int
	Rows      int
	StartedAt time.Time
}

// Sample is one stored feature row.
type Sample struct {
	SessionID string
	Tick      uint64
	DW1       float64
	DW2       float64
	DW3       float64
	DW4       float64
	DF        float64
	Ate       bool
	Direction string // four-character one-hot code
}

// GameEntry is one finished game.
type GameEntry struct {
	ID        int64
	SessionID string
	Score     int
	Length    int
	Ticks     uint64
	Cause     string
	EndedAt   time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			columns INTEGER NOT NULL,
			rows INTEGER NOT NULL,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			tick INTEGER NOT NULL,
			dw1 REAL NOT NULL,
			dw2 REAL NOT NULL,
			dw3 REAL NOT NULL,
			dw4 REAL NOT NULL,
			df REAL NOT NULL,
			ate INTEGER NOT NULL,
			direction TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_samples_session ON samples(session_id, tick);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			score INTEGER NOT NULL,
			length INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			cause TEXT NOT NULL,
			ended_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(score DESC);
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

// BeginSession registers a new recording session and returns its ID.
func (s *Store) BeginSession(columns, rows int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, columns, rows) VALUES (?, ?, ?)",
		id, columns, rows,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin session: %w", err)
	}
	return id, nil
}

// SaveSamples stores a batch of samples in one transaction.
func (s *Store) SaveSamples(sessionID string, samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO samples (session_id, tick, dw1, dw2, dw3, dw4, df, ate, direction)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: cannot prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for _, smp := range samples {
		if _, err := stmt.Exec(sessionID, smp.Tick, smp.DW1, smp.DW2, smp.DW3, smp.DW4, smp.DF, smp.Ate, smp.Direction); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: cannot save sample: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit samples: %w", err)
	}
	return nil
}

// SaveGame records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveGame(g GameEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO games (session_id, score, length, ticks, cause) VALUES (?, ?, ?, ?, ?)",
		g.SessionID, g.Score, g.Length, g.Ticks, g.Cause,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopGames retrieves the best N games across all sessions.
// Results are ordered by score descending.
func (s *Store) TopGames(limit int) ([]GameEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, score, length, ticks, cause, ended_at
		 FROM games
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var entries []GameEntry
	for rows.Next() {
		var e GameEntry
		var endedAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Score, &e.Length, &e.Ticks, &e.Cause, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.EndedAt = parseTime(endedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Samples returns stored samples ordered by session start and tick.
// An empty sessionID selects every session.
func (s *Store) Samples(sessionID string) ([]Sample, error) {
	query := `SELECT m.session_id, m.tick, m.dw1, m.dw2, m.dw3, m.dw4, m.df, m.ate, m.direction
		 FROM samples m JOIN sessions s ON s.id = m.session_id`
	var args []any
	if sessionID != "" {
		query += " WHERE m.session_id = ?"
		args = append(args, sessionID)
	}
	query += " ORDER BY s.started_at, m.session_id, m.tick"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query samples: %w", err)
	}
	defer rows.Close()

	var out []Sample
	for rows.Next() {
		var smp Sample
		if err := rows.Scan(&smp.SessionID, &smp.Tick, &smp.DW1, &smp.DW2, &smp.DW3, &smp.DW4, &smp.DF, &smp.Ate, &smp.Direction); err != nil {
			return nil, fmt.Errorf("storage: cannot scan sample: %w", err)
		}
		out = append(out, smp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// Sessions lists recorded sessions, newest first.
func (s *Store) Sessions() ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT id, columns, rows, started_at FROM sessions ORDER BY started_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var startedAt any
		if err := rows.Scan(&sess.ID, &sess.Columns, &sess.Rows, &startedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan session: %w", err)
		}
		sess.StartedAt = parseTime(startedAt)
		out = append(out, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// Stats contains aggregated statistics over everything recorded.
type Stats struct {
	Sessions   int
	Samples    int
	GamesCount int
	HighScore  int
	AvgScore   float64
	FoodRate   float64 // fraction of samples where food was eaten
	LastPlayed time.Time
}

// GetStats retrieves aggregated statistics.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&stats.Sessions)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count sessions: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(ate), 0) FROM samples`,
	).Scan(&stats.Samples, &stats.FoodRate)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count samples: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0) FROM games`,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT ended_at FROM games ORDER BY ended_at DESC, id DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

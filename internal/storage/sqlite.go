// Package storage persists finished level runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one attempt at a level.
type Run struct {
	ID         int64
	LevelID    string
	Player     string // session user, empty for local play
	Difficulty string
	Score      int
	TimeMs     int64 // time spent in the level
	Completed  bool  // reached the finish
	CreatedAt  time.Time
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Runs       int
	Completed  int
	HighScore  int
	BestTimeMs int64 // 0 when never completed
	AvgScore   float64
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL DEFAULT 0,
			time_ms INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(level_id, completed DESC, time_ms ASC);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (level_id, player, difficulty, score, time_ms, completed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.LevelID, r.Player, r.Difficulty, r.Score, r.TimeMs, r.Completed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns returns the best runs of a level: completed runs first, fastest
// first, then by score.
func (s *Store) TopRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, level_id, player, difficulty, score, time_ms, completed, created_at
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY completed DESC,
		          CASE WHEN completed THEN time_ms ELSE 0 END ASC,
		          score DESC
		 LIMIT ?`,
		levelID, limit,
	)
}

// RecentRuns returns the latest runs across all levels.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, level_id, player, difficulty, score, time_ms, completed, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Player, &r.Difficulty, &r.Score, &r.TimeMs, &r.Completed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// HighScore returns the highest score reached on a level, 0 if none.
func (s *Store) HighScore(levelID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE level_id = ?",
		levelID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// BestTime returns the fastest completion of a level. ok is false when the
// level was never completed.
func (s *Store) BestTime(levelID string) (ms int64, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(time_ms) FROM runs WHERE level_id = ? AND completed",
		levelID,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return best.Int64, true, nil
}

// ClearRuns deletes the history of a level.
func (s *Store) ClearRuns(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// GetLevelStats retrieves aggregated statistics for a level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(completed), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(MIN(CASE WHEN completed THEN time_ms END), 0),
		        COALESCE(AVG(score), 0),
		        MAX(created_at)
		 FROM runs WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &stats.Completed, &stats.HighScore, &stats.BestTimeMs, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllLevelStats retrieves statistics for every level that has been played.
func (s *Store) GetAllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(`SELECT DISTINCT level_id FROM runs`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list levels: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan level id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()

	stats := make(map[string]*LevelStats, len(ids))
	for _, id := range ids {
		st, err := s.GetLevelStats(id)
		if err != nil {
			return nil, err
		}
		stats[id] = st
	}
	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Recorder saves runs into an optional store. A nil store discards runs.
type Recorder struct {
	Store  *Store
	Player string
}

// Record saves r, filling in the recorder's player name.
func (rec Recorder) Record(r Run) error {
	if rec.Store == nil {
		return nil
	}
	if r.Player == "" {
		r.Player = rec.Player
	}
	_, err := rec.Store.SaveRun(r)
	return err
}

package visits

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists visits to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads don't block recording.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			date    TEXT NOT NULL,
			user_id TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_visitors_date_user ON visitors(date, user_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// Record inserts a (day, user) visit, once per day per user.
func (s *SQLiteStore) Record(userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO visitors (date, user_id) VALUES (?, ?)`,
		now.Format("2006-01-02"), userID,
	)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Stats returns distinct-visitor counts for today, this month, this year
// and all time.
func (s *SQLiteStore) Stats(now time.Time) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats Stats
	queries := []struct {
		dst   *int
		query string
		arg   any
	}{
		{&stats.Today, `SELECT COUNT(DISTINCT user_id) FROM visitors WHERE date = ?`, now.Format("2006-01-02")},
		{&stats.Month, `SELECT COUNT(DISTINCT user_id) FROM visitors WHERE strftime('%Y-%m', date) = ?`, now.Format("2006-01")},
		{&stats.Year, `SELECT COUNT(DISTINCT user_id) FROM visitors WHERE strftime('%Y', date) = ?`, now.Format("2006")},
		{&stats.Total, `SELECT COUNT(DISTINCT user_id) FROM visitors`, nil},
	}
	for _, q := range queries {
		var row *sql.Row
		if q.arg != nil {
			row = s.db.QueryRow(q.query, q.arg)
		} else {
			row = s.db.QueryRow(q.query)
		}
		if err := row.Scan(q.dst); err != nil {
			return Stats{}, fmt.Errorf("query stats: %w", err)
		}
	}
	return stats, nil
}

// Recent returns per-day distinct-visitor counts for the trailing window
// ending today, oldest first.
func (s *SQLiteStore) Recent(now time.Time, days int) ([]DayCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	since := now.AddDate(0, 0, -(days - 1)).Format("2006-01-02")
	rows, err := s.db.Query(
		`SELECT date, COUNT(DISTINCT user_id) AS users
		 FROM visitors WHERE date >= ?
		 GROUP BY date ORDER BY date`, since,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent visits: %w", err)
	}
	defer rows.Close()

	var out []DayCount
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Date, &dc.Users); err != nil {
			return nil, fmt.Errorf("scan recent visits: %w", err)
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Package visits persists page-visit analytics. It is a standalone
// collaborator of the simulator: nothing in the engine depends on it, and
// it carries no simulation data.
package visits

import "time"

// Stats holds distinct-visitor counts for the usual display windows.
type Stats struct {
	Today int
	Month int
	Year  int
	Total int
}

// DayCount is one day's distinct-visitor count, for the recent-traffic
// series.
type DayCount struct {
	Date  string // YYYY-MM-DD
	Users int
}

// Store records visits and serves aggregate counts.
type Store interface {
	// Record notes a visit by userID on the current day. Repeat visits by
	// the same user on the same day are counted once.
	Record(userID string, now time.Time) error
	Stats(now time.Time) (Stats, error)
	// Recent returns per-day distinct-visitor counts for the trailing
	// window ending today, oldest first. Days without visits are omitted.
	Recent(now time.Time, days int) ([]DayCount, error)
	Close() error
}

// NoopStore discards everything; used when tracking is disabled.
type NoopStore struct{}

func (NoopStore) Record(string, time.Time) error            { return nil }
func (NoopStore) Stats(time.Time) (Stats, error)            { return Stats{}, nil }
func (NoopStore) Recent(time.Time, int) ([]DayCount, error) { return nil, nil }
func (NoopStore) Close() error                              { return nil }

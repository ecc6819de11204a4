package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

const dayLayout = "2006-01-02"

// StatsDB persists served-item counters in SQLite
type StatsDB struct {
	db     *sql.DB
	now    func() time.Time
	mux    sync.RWMutex
	closed bool
}

// DailyReporter is implemented by stores that keep per-day counters
type DailyReporter interface {
	DailyCounts(ctx context.Context, days int) (map[string]map[string]int64, error)
}

func (s *StatsDB) conn() (*sql.DB, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.db, nil
}

// Record increments the total and today's counter for bucket
func (s *StatsDB) Record(ctx context.Context, bucket string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := retryableExec(ctx, db, `INSERT INTO served_counts (bucket, count, updated_at)
		VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(bucket) DO UPDATE SET count = count + 1, updated_at = CURRENT_TIMESTAMP`, bucket); err != nil {
		return fmt.Errorf("failed to record %s: %w", bucket, err)
	}
	day := s.now().UTC().Format(dayLayout)
	if _, err := retryableExec(ctx, db, `INSERT INTO served_daily (day, bucket, count)
		VALUES (?, ?, 1)
		ON CONFLICT(day, bucket) DO UPDATE SET count = count + 1`, day, bucket); err != nil {
		return fmt.Errorf("failed to record daily %s: %w", bucket, err)
	}
	return nil
}

// Counts returns the all-time counter per bucket; known buckets are always present
func (s *StatsDB) Counts(ctx context.Context) (map[string]int64, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	rows, err := retryableQuery(ctx, db, "SELECT bucket, count FROM served_counts")
	if err != nil {
		return nil, fmt.Errorf("failed to query counts: %w", err)
	}
	defer rows.Close()

	counts := zeroCounts()
	for rows.Next() {
		var bucket string
		var n int64
		if err := rows.Scan(&bucket, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[bucket] = n
	}
	return counts, rows.Err()
}

// DailyCounts returns per-bucket counters for the last days days, keyed by YYYY-MM-DD
func (s *StatsDB) DailyCounts(ctx context.Context, days int) (map[string]map[string]int64, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if days < 1 {
		days = 1
	}
	since := s.now().UTC().AddDate(0, 0, -(days - 1)).Format(dayLayout)
	rows, err := retryableQuery(ctx, db, "SELECT day, bucket, count FROM served_daily WHERE day >= ? ORDER BY day", since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily counts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[string]int64)
	for rows.Next() {
		var day, bucket string
		var n int64
		if err := rows.Scan(&day, &bucket, &n); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		if out[day] == nil {
			out[day] = make(map[string]int64)
		}
		out[day][bucket] = n
	}
	return out, rows.Err()
}

// Close closes the underlying database; further calls return ErrClosed
func (s *StatsDB) Close() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver
)

// DBConfig holds SQLite settings for the stats database
type DBConfig struct {
	Path string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// SQLite settings
	WALMode   bool   // Write-Ahead Logging
	SyncMode  string // OFF, NORMAL, FULL
	CacheSize int    // KB
	TempStore string // MEMORY, FILE
}

// DefaultDBConfig returns default database configuration for path
func DefaultDBConfig(path string) *DBConfig {
	return &DBConfig{
		Path:            path,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 0, // Unlimited for SQLite - connections don't need to be recycled
		WALMode:         true,
		SyncMode:        "NORMAL",
		CacheSize:       -2048, // -2048 == 2MB cache
		TempStore:       "MEMORY",
	}
}

// OpenStatsDB opens (creating if needed) the SQLite stats database and applies migrations
func OpenStatsDB(ctx context.Context, dbconfig *DBConfig) (*StatsDB, error) {
	if dbconfig == nil || dbconfig.Path == "" {
		return nil, fmt.Errorf("stats database path not set")
	}
	log.Printf("[DATABASE] Initializing stats database at: %s", dbconfig.Path)

	if dir := filepath.Dir(dbconfig.Path); dir != "." {
		if err := createDirIfNotExists(dir); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dbconfig.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats database: %w", err)
	}

	// Configure connection pool
	conn.SetMaxOpenConns(dbconfig.MaxOpenConns)
	conn.SetMaxIdleConns(dbconfig.MaxIdleConns)
	conn.SetConnMaxLifetime(dbconfig.ConnMaxLifetime)

	closeWith := func(err error) (*StatsDB, error) {
		if cerr := conn.Close(); cerr != nil {
			return nil, fmt.Errorf("%w; also failed to close stats database: %v", err, cerr)
		}
		return nil, err
	}

	// Test connection
	if err := conn.PingContext(ctx); err != nil {
		return closeWith(fmt.Errorf("failed to ping stats database: %w", err))
	}

	if err := applySQLitePragmas(ctx, conn, dbconfig); err != nil {
		return closeWith(fmt.Errorf("failed to apply SQLite pragmas: %w", err))
	}

	if err := migrate(ctx, conn); err != nil {
		return closeWith(fmt.Errorf("failed to migrate stats database: %w", err))
	}

	return &StatsDB{db: conn, now: time.Now}, nil
}

// applySQLitePragmas applies performance and configuration pragmas to SQLite connection
func applySQLitePragmas(ctx context.Context, conn *sql.DB, dbconfig *DBConfig) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA cache_size = %d", dbconfig.CacheSize),
		fmt.Sprintf("PRAGMA synchronous = %s", dbconfig.SyncMode),
		fmt.Sprintf("PRAGMA temp_store = %s", dbconfig.TempStore),
		"PRAGMA busy_timeout = 30000", // 30 seconds
	}

	if dbconfig.WALMode {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
		pragmas = append(pragmas, "PRAGMA wal_autocheckpoint = 1000")
	}

	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute pragma '%s': %w", pragma, err)
		}
	}

	return nil
}

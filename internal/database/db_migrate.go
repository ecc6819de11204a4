package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// migrate applies every embedded migration newer than the recorded schema version
func migrate(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		filename   TEXT NOT NULL,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	var current int
	if err := conn.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	migrations, err := getEmbeddedMigrationFiles()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		content, err := readMigrationContent(m)
		if err != nil {
			return err
		}
		if err := applyMigration(ctx, conn, m, content); err != nil {
			return err
		}
		log.Printf("[DATABASE] Applied migration %s", m.FileName)
	}
	return nil
}

func applyMigration(ctx context.Context, conn *sql.DB, m *MigrationFile, content string) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", m.FileName, err)
	}
	if _, err := tx.ExecContext(ctx, content); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to apply migration %s: %w", m.FileName, err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version, filename) VALUES (?, ?)", m.Version, m.FileName); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", m.FileName, err)
	}
	return tx.Commit()
}

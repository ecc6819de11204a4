package database

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var EmbeddedMigrationsFS embed.FS

// MigrationFile represents a migration file with its metadata
type MigrationFile struct {
	FileName    string
	Version     int
	Description string
	FilePath    string
}

// getEmbeddedMigrationFiles reads and parses all migration files from the embedded filesystem
func getEmbeddedMigrationFiles() ([]*MigrationFile, error) {
	files, err := fs.ReadDir(EmbeddedMigrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations directory: %w", err)
	}

	var migrations []*MigrationFile
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".sql") {
			continue
		}
		migration, err := parseMigrationFileName(f.Name())
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, migration)
	}

	// Sort by version number
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// parseMigrationFileName parses NNNN_stats_description.sql
func parseMigrationFileName(fileName string) (*MigrationFile, error) {
	base := strings.TrimSuffix(fileName, ".sql")
	parts := strings.SplitN(base, "_", 3)
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid migration filename format: %s (expected format: NNNN_stats_description.sql)", fileName)
	}

	version, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid version number in filename %s: %w", fileName, err)
	}
	if parts[1] != "stats" {
		return nil, fmt.Errorf("unknown migration type in filename %s: %s", fileName, parts[1])
	}

	return &MigrationFile{
		FileName:    fileName,
		Version:     version,
		Description: parts[2],
		FilePath:    "migrations/" + fileName, // embed paths always use forward slashes
	}, nil
}

// readMigrationContent reads the content of an embedded migration file
func readMigrationContent(migration *MigrationFile) (string, error) {
	content, err := fs.ReadFile(EmbeddedMigrationsFS, migration.FilePath)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded migration file %s: %w", migration.FilePath, err)
	}
	return string(content), nil
}

// Package migrations applies the embedded schema migrations for each SQL dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrationsFS embed.FS

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// RunMigrations executes all pending migrations for the dialect ("sqlite" or "postgres")
func RunMigrations(ctx context.Context, db *sql.DB, dialect string) error {
	placeholder, err := placeholderFor(dialect)
	if err != nil {
		return err
	}

	// Create migrations table if it doesn't exist
	if err := createMigrationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create migrations table")
	}

	dirty, err := getDirtyMigrations(ctx, db)
	if err != nil {
		return errors.Wrap(err, "failed to check migration state")
	}
	if len(dirty) > 0 {
		return errors.Newf("database is in a dirty state, failed migration(s): %v", dirty)
	}

	migrations, err := LoadMigrations(dialect)
	if err != nil {
		return errors.Wrap(err, "failed to load migrations")
	}

	applied, err := getAppliedMigrations(ctx, db)
	if err != nil {
		return errors.Wrap(err, "failed to get applied migrations")
	}

	// Apply pending migrations
	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		if err := applyMigration(ctx, db, migration, placeholder); err != nil {
			markDirty(ctx, db, migration.Version, placeholder)
			return errors.Wrapf(err, "failed to apply migration %d (%s)", migration.Version, migration.Name)
		}
	}

	return nil
}

// LoadMigrations returns the migrations of a dialect sorted by version
func LoadMigrations(dialect string) ([]Migration, error) {
	entries, err := migrationsFS.ReadDir(dialect)
	if err != nil {
		return nil, errors.Wrapf(err, "no migrations for dialect %q", dialect)
	}

	var migrations []Migration
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		version := extractVersion(entry.Name())
		if version == 0 {
			continue
		}

		upSQL, err := migrationsFS.ReadFile(path.Join(dialect, entry.Name()))
		if err != nil {
			return nil, err
		}

		downFile := strings.Replace(entry.Name(), ".up.sql", ".down.sql", 1)
		downSQL, err := migrationsFS.ReadFile(path.Join(dialect, downFile))
		if err != nil {
			return nil, err
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(entry.Name(), ".up.sql"),
			Up:      string(upSQL),
			Down:    string(downSQL),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// Statements splits a migration script into individual statements
func Statements(script string) []string {
	var statements []string
	for _, stmt := range strings.Split(script, ";") {
		if trimmed := strings.TrimSpace(stmt); trimmed != "" {
			statements = append(statements, trimmed)
		}
	}
	return statements
}

func placeholderFor(dialect string) (string, error) {
	switch dialect {
	case "sqlite":
		return "?", nil
	case "postgres":
		return "$1", nil
	}
	return "", errors.Newf("unsupported migration dialect %q", dialect)
}

func createMigrationsTable(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		dirty BOOLEAN DEFAULT FALSE
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func getAppliedMigrations(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func getDirtyMigrations(ctx context.Context, db *sql.DB) ([]int, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM migrations WHERE dirty = TRUE ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dirty []int
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		dirty = append(dirty, version)
	}
	return dirty, rows.Err()
}

func applyMigration(ctx context.Context, db *sql.DB, migration Migration, placeholder string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, stmt := range Statements(migration.Up) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO migrations (version) VALUES ("+placeholder+")", migration.Version); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// markDirty records a failed migration so later runs refuse to continue
func markDirty(ctx context.Context, db *sql.DB, version int, placeholder string) {
	_, _ = db.ExecContext(ctx, "INSERT INTO migrations (version, dirty) VALUES ("+placeholder+", TRUE)", version)
}

func extractVersion(filename string) int {
	var version int
	fmt.Sscanf(filename, "%d_", &version)
	return version
}

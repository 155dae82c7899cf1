// Package sqlstore implements the repository on database/sql for SQLite and PostgreSQL.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fact-tracker/internal/errors"
	"fact-tracker/internal/repository"
	"fact-tracker/internal/repository/sqlstore/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Options configures how a Store connects
type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	QueryTimeout time.Duration
}

// Store implements repository.Repository
type Store struct {
	db           *sql.DB
	dialect      Dialect
	queryTimeout time.Duration
}

var _ repository.Repository = (*Store)(nil)

// Open connects, verifies the connection and runs pending migrations
func Open(ctx context.Context, opts Options) (*Store, error) {
	dialect, ok := DialectFor(opts.Driver)
	if !ok {
		return nil, errors.NewInvalidInputError("driver", opts.Driver, "unsupported database driver")
	}

	db, err := sql.Open(dialect.DriverName(), opts.DSN)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	if dialect.Name() == "sqlite" {
		// One writer at a time, and :memory: databases live on a single connection.
		db.SetMaxOpenConns(1)
	} else if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("connect to database", err)
	}

	if err := migrations.RunMigrations(ctx, db, dialect.Name()); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &Store{db: db, dialect: dialect, queryTimeout: opts.QueryTimeout}, nil
}

// OpenSQLite opens (creating if needed) a SQLite database file, or ":memory:"
func OpenSQLite(ctx context.Context, path string, dirPerm os.FileMode) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
			return nil, errors.NewDatabaseError("create database directory", err)
		}
	}
	return Open(ctx, Options{Driver: "sqlite", DSN: SQLiteDSN(path)})
}

// SQLiteDSN builds a modernc.org/sqlite DSN with foreign keys enforced
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
}

// NewWithDB wraps an existing connection without running migrations
func NewWithDB(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Dialect returns the SQL dialect in use
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Ping verifies the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return HandleDatabaseError("ping", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

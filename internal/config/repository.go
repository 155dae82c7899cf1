package config

import (
	"context"
	"fmt"
	"os"

	"fact-tracker/internal/repository"
	"fact-tracker/internal/repository/sqlstore"
)

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(ctx context.Context, config *Config) (repository.Repository, error) {
	var (
		store *sqlstore.Store
		err   error
	)

	switch config.Database.Driver {
	case DriverPostgres:
		store, err = sqlstore.Open(ctx, sqlstore.Options{
			Driver:       DriverPostgres,
			DSN:          config.Database.DSN,
			MaxOpenConns: config.Database.MaxOpenConns,
			QueryTimeout: config.Database.QueryTimeout,
		})
	default:
		if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		store, err = sqlstore.Open(ctx, sqlstore.Options{
			Driver:       DriverSQLite,
			DSN:          sqlstore.SQLiteDSN(config.GetDatabasePath()),
			QueryTimeout: config.Database.QueryTimeout,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository(ctx context.Context) (repository.Repository, error) {
	repo, err := sqlstore.OpenSQLite(ctx, ":memory:", 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FT_CONFIG", "FT_DB_DRIVER", "FT_DB_DIR", "FT_DB_FILENAME", "FT_DB_DSN",
		"FT_DB_QUERY_TIMEOUT", "FT_PAGINATION_MAX_PAGE_SIZE", "FT_LOG_LEVEL", "FT_LOG_FORMAT",
		"FT_SERVER_PORT", "FT_APP_VERBOSE", "FT_TRACING_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Database.Driver = %q, expected %q", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Pagination.MaxPageSize != 100 {
		t.Errorf("Pagination.MaxPageSize = %d, expected 100", cfg.Pagination.MaxPageSize)
	}
	if cfg.Validation.DescriptionMaxLength != 500 {
		t.Errorf("Validation.DescriptionMaxLength = %d, expected 500", cfg.Validation.DescriptionMaxLength)
	}
	if filepath.Base(cfg.GetDatabasePath()) != "ft.db" {
		t.Errorf("GetDatabasePath() = %q, expected ft.db file", cfg.GetDatabasePath())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults error = %v", err)
	}
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("FT_DB_DRIVER", "POSTGRES")
	t.Setenv("FT_DB_DSN", "postgres://localhost/facts")
	t.Setenv("FT_DB_QUERY_TIMEOUT", "3s")
	t.Setenv("FT_PAGINATION_MAX_PAGE_SIZE", "250")
	t.Setenv("FT_SERVER_PORT", "not-a-number")
	t.Setenv("FT_TRACING_ENABLED", "true")

	cfg := NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		t.Fatalf("LoadFromEnvironment() error = %v", err)
	}

	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("Database.Driver = %q, expected %q", cfg.Database.Driver, DriverPostgres)
	}
	if cfg.Database.DSN != "postgres://localhost/facts" {
		t.Errorf("Database.DSN = %q", cfg.Database.DSN)
	}
	if cfg.Database.QueryTimeout != 3*time.Second {
		t.Errorf("Database.QueryTimeout = %v, expected 3s", cfg.Database.QueryTimeout)
	}
	if cfg.Pagination.MaxPageSize != 250 {
		t.Errorf("Pagination.MaxPageSize = %d, expected 250", cfg.Pagination.MaxPageSize)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, expected unparsable value to keep default", cfg.Server.Port)
	}
	if !cfg.Tracing.Enabled {
		t.Error("Tracing.Enabled = false, expected true")
	}
}

func TestConfig_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ft.yaml")
	content := "pagination:\n  max_page_size: 20\nlogging:\n  format: json\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg := NewConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Pagination.MaxPageSize != 20 {
		t.Errorf("Pagination.MaxPageSize = %d, expected 20", cfg.Pagination.MaxPageSize)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, expected json", cfg.Logging.Format)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, keys absent from the file must keep defaults", cfg.Server.Port)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("pagination: [unclosed"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	var configErr *ConfigError
	if err := NewConfig().LoadFromFile(bad); !errors.As(err, &configErr) {
		t.Errorf("LoadFromFile() on invalid YAML error = %v, expected ConfigError", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *Config)
		expectedField string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, "database.driver"},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = DriverPostgres }, "database.dsn"},
		{"empty sqlite dir", func(c *Config) { c.Database.Dir = "" }, "database.dir"},
		{"zero max page size", func(c *Config) { c.Pagination.MaxPageSize = 0 }, "pagination.max_page_size"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"zero timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.expectedField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, expected nil", err)
				}
				return
			}

			var configErr *ConfigError
			if !errors.As(err, &configErr) {
				t.Fatalf("Validate() error = %v, expected ConfigError", err)
			}
			if configErr.Field != tt.expectedField {
				t.Errorf("ConfigError.Field = %q, expected %q", configErr.Field, tt.expectedField)
			}
		})
	}
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("FT_PAGINATION_MAX_PAGE_SIZE", "30")

	path := filepath.Join(t.TempDir(), "ft.yaml")
	if err := os.WriteFile(path, []byte("pagination:\n  max_page_size: 10\nserver:\n  port: 9000\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	port := 9100
	verbose := true
	tracing := true
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		ConfigFile: &path,
		Port:       &port,
		Tracing:    &tracing,
		Verbose:    &verbose,
	})
	if err != nil {
		t.Fatalf("LoadWithOverrides() error = %v", err)
	}

	if cfg.Pagination.MaxPageSize != 30 {
		t.Errorf("Pagination.MaxPageSize = %d, environment must win over file", cfg.Pagination.MaxPageSize)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, flags must win over file", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, verbose must force debug", cfg.Logging.Level)
	}
	if !cfg.Tracing.Enabled {
		t.Error("Tracing.Enabled = false, expected the flag to enable it")
	}

	invalid := 0
	if _, err := NewLoader().LoadWithOverrides(&ConfigOverrides{MaxPageSize: &invalid}); err == nil {
		t.Error("LoadWithOverrides() expected error for invalid override")
	}
}

func TestParseWithFallback(t *testing.T) {
	if got := ParseDurationWithFallback("bogus", time.Second); got != time.Second {
		t.Errorf("ParseDurationWithFallback() = %v, expected fallback", got)
	}
	if got := ParseIntWithFallback("42", 0); got != 42 {
		t.Errorf("ParseIntWithFallback() = %d, expected 42", got)
	}
	if got := ParseBoolWithFallback("maybe", true); !got {
		t.Error("ParseBoolWithFallback() expected fallback true")
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration options for the fact tracker
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Server      ServerConfig      `yaml:"server"`
	Pagination  PaginationConfig  `yaml:"pagination"`
	Validation  ValidationConfig  `yaml:"validation"`
	Logging     LoggingConfig     `yaml:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Tracing     TracingConfig     `yaml:"tracing"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver         string        `yaml:"driver" env:"FT_DB_DRIVER"`
	Dir            string        `yaml:"dir" env:"FT_DB_DIR"`
	Filename       string        `yaml:"filename" env:"FT_DB_FILENAME"`
	DSN            string        `yaml:"dsn" env:"FT_DB_DSN"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"FT_DB_QUERY_TIMEOUT"`
	MaxOpenConns   int           `yaml:"max_open_conns" env:"FT_DB_MAX_OPEN_CONNS"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"FT_DB_DIR_PERMISSIONS"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" env:"FT_SERVER_HOST"`
	Port            int           `yaml:"port" env:"FT_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"FT_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"FT_SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"FT_SERVER_SHUTDOWN_TIMEOUT"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" env:"FT_SERVER_MAX_UPLOAD_BYTES"`
}

// PaginationConfig holds page size limits for searches and reports
type PaginationConfig struct {
	MaxPageSize int `yaml:"max_page_size" env:"FT_PAGINATION_MAX_PAGE_SIZE"`
}

// ValidationConfig holds length limits for free-text fields
type ValidationConfig struct {
	DescriptionMaxLength int `yaml:"description_max_length" env:"FT_VALIDATION_DESCRIPTION_MAX"`
	FullNameMaxLength    int `yaml:"full_name_max_length" env:"FT_VALIDATION_FULL_NAME_MAX"`
	EmailMaxLength       int `yaml:"email_max_length" env:"FT_VALIDATION_EMAIL_MAX"`
}

// LoggingConfig holds log output configuration
type LoggingConfig struct {
	Level  string `yaml:"level" env:"FT_LOG_LEVEL"`
	Format string `yaml:"format" env:"FT_LOG_FORMAT"`
}

// MetricsConfig holds Prometheus exposition configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"FT_METRICS_ENABLED"`
	Path    string `yaml:"path" env:"FT_METRICS_PATH"`
}

// TracingConfig controls export of service spans
type TracingConfig struct {
	Enabled bool `yaml:"enabled" env:"FT_TRACING_ENABLED"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"FT_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"FT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".ft")

	return &Config{
		Database: DatabaseConfig{
			Driver:         DriverSQLite,
			Dir:            defaultDBDir,
			Filename:       "ft.db",
			QueryTimeout:   10 * time.Second,
			MaxOpenConns:   10,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadBytes:  10 << 20,
		},
		Pagination: PaginationConfig{
			MaxPageSize: 100,
		},
		Validation: ValidationConfig{
			DescriptionMaxLength: 500,
			FullNameMaxLength:    100,
			EmailMaxLength:       320,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Tracing: TracingConfig{
			Enabled: false,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the SQLite database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// ListenAddress returns host:port for the HTTP server
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LoadFromFile merges a YAML document into the configuration.
// Keys absent from the file keep their current values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("invalid YAML in %s: %v", path, err)}
	}
	return nil
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if driver := os.Getenv("FT_DB_DRIVER"); driver != "" {
		c.Database.Driver = strings.ToLower(driver)
	}
	if dir := os.Getenv("FT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("FT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if dsn := os.Getenv("FT_DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if timeout := os.Getenv("FT_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}
	if conns := os.Getenv("FT_DB_MAX_OPEN_CONNS"); conns != "" {
		if n, err := strconv.Atoi(conns); err == nil {
			c.Database.MaxOpenConns = n
		}
	}
	if perms := os.Getenv("FT_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// Server configuration
	if host := os.Getenv("FT_SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("FT_SERVER_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			c.Server.Port = n
		}
	}
	if timeout := os.Getenv("FT_SERVER_READ_TIMEOUT"); timeout != "" {
		c.Server.ReadTimeout = ParseDurationWithFallback(timeout, c.Server.ReadTimeout)
	}
	if timeout := os.Getenv("FT_SERVER_WRITE_TIMEOUT"); timeout != "" {
		c.Server.WriteTimeout = ParseDurationWithFallback(timeout, c.Server.WriteTimeout)
	}
	if timeout := os.Getenv("FT_SERVER_SHUTDOWN_TIMEOUT"); timeout != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(timeout, c.Server.ShutdownTimeout)
	}
	if limit := os.Getenv("FT_SERVER_MAX_UPLOAD_BYTES"); limit != "" {
		if n, err := strconv.ParseInt(limit, 10, 64); err == nil {
			c.Server.MaxUploadBytes = n
		}
	}

	// Pagination configuration
	if size := os.Getenv("FT_PAGINATION_MAX_PAGE_SIZE"); size != "" {
		c.Pagination.MaxPageSize = ParseIntWithFallback(size, c.Pagination.MaxPageSize)
	}

	// Validation configuration
	if n := os.Getenv("FT_VALIDATION_DESCRIPTION_MAX"); n != "" {
		c.Validation.DescriptionMaxLength = ParseIntWithFallback(n, c.Validation.DescriptionMaxLength)
	}
	if n := os.Getenv("FT_VALIDATION_FULL_NAME_MAX"); n != "" {
		c.Validation.FullNameMaxLength = ParseIntWithFallback(n, c.Validation.FullNameMaxLength)
	}
	if n := os.Getenv("FT_VALIDATION_EMAIL_MAX"); n != "" {
		c.Validation.EmailMaxLength = ParseIntWithFallback(n, c.Validation.EmailMaxLength)
	}

	// Logging configuration
	if level := os.Getenv("FT_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if format := os.Getenv("FT_LOG_FORMAT"); format != "" {
		c.Logging.Format = strings.ToLower(format)
	}

	// Metrics configuration
	if enabled := os.Getenv("FT_METRICS_ENABLED"); enabled != "" {
		c.Metrics.Enabled = ParseBoolWithFallback(enabled, c.Metrics.Enabled)
	}
	if path := os.Getenv("FT_METRICS_PATH"); path != "" {
		c.Metrics.Path = path
	}

	// Tracing configuration
	if enabled := os.Getenv("FT_TRACING_ENABLED"); enabled != "" {
		c.Tracing.Enabled = ParseBoolWithFallback(enabled, c.Tracing.Enabled)
	}

	// Application configuration
	if timeout := os.Getenv("FT_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("FT_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Dir == "" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return &ConfigError{Field: "database.dsn", Message: "dsn is required for the postgres driver"}
		}
	default:
		return &ConfigError{Field: "database.driver", Message: fmt.Sprintf("unsupported driver %q", c.Database.Driver)}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.MaxOpenConns < 1 {
		return &ConfigError{Field: "database.max_open_conns", Message: "max open connections must be at least 1"}
	}

	// Validate server configuration
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port must be between 1 and 65535"}
	}
	if c.Server.MaxUploadBytes <= 0 {
		return &ConfigError{Field: "server.max_upload_bytes", Message: "upload limit must be positive"}
	}

	// Validate pagination configuration
	if c.Pagination.MaxPageSize < 1 {
		return &ConfigError{Field: "pagination.max_page_size", Message: "max page size must be at least 1"}
	}

	// Validate validation configuration
	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length must be at least 1"}
	}
	if c.Validation.FullNameMaxLength < 1 {
		return &ConfigError{Field: "validation.full_name_max_length", Message: "full name maximum length must be at least 1"}
	}
	if c.Validation.EmailMaxLength < 3 {
		return &ConfigError{Field: "validation.email_max_length", Message: "email maximum length must be at least 3"}
	}

	// Validate logging configuration
	switch c.Logging.Format {
	case "console", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "log format must be console or json"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

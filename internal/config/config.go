// Package config provides centralized configuration management.
// Settings load from environment variables with defaults and are
// validated on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Grid     GridConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the graceful shutdown limit (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the per-request middleware timeout (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required).
	// Supports both DATABASE_URL and DB_URL for compatibility.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns is the connection pool ceiling (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the number of connections kept open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// SecurityConfig holds authentication settings for the API surface.
type SecurityConfig struct {
	// RequireAuth enables bearer-token checks on /api routes (default: true)
	RequireAuth bool `env:"REQUIRE_AUTH" default:"true"`

	// APIKeys is the comma-separated list of accepted bearer tokens.
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// File, when set, writes logs to a rotating file instead of stdout.
	File string `env:"LOG_FILE"`

	// FileMaxSizeMB is the rotation threshold in megabytes (default: 50)
	FileMaxSizeMB int `env:"LOG_FILE_MAX_SIZE_MB" default:"50"`

	// FileMaxBackups is how many rotated files to keep (default: 5)
	FileMaxBackups int `env:"LOG_FILE_MAX_BACKUPS" default:"5"`
}

// GridConfig holds record-grid settings.
type GridConfig struct {
	// Module is the entity module the grid serves (default: leads)
	Module string `env:"GRID_MODULE" default:"leads"`

	// ImportMaxBytes caps the accepted import file size (default: 20MB)
	ImportMaxBytes int64 `env:"GRID_IMPORT_MAX_BYTES" default:"20971520"`

	// ExportFilename is the download filename for CSV exports.
	ExportFilename string `env:"GRID_EXPORT_FILENAME" default:"leads.csv"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Host + ":" + strconv.Itoa(c.Port)
}

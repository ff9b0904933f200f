// Package config loads vocdata settings from environment variables.
// Every field has a default, so the CLI runs without any configuration;
// the loaded values are validated up front.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Data     DataConfig
	Database DatabaseConfig
	Server   ServerConfig
	Export   ExportConfig
	Logging  LoggingConfig
}

// DataConfig locates and decodes the source files.
type DataConfig struct {
	// BaseDir is the directory the registry's relative paths are resolved
	// against (default: current directory)
	BaseDir string `env:"VOC_DATA_DIR" default:"."`

	// Encoding of the CSV files: utf-8, latin1 or cp1252 (default: utf-8)
	Encoding string `env:"VOC_ENCODING" default:"utf-8"`
}

// DatabaseConfig holds PostgreSQL settings for the postgres export sink.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string.
	// Supports both DATABASE_URL and DB_URL env vars.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// ServerConfig holds settings for the read-only HTTP API.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" default:"127.0.0.1"`
	Port int    `env:"SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	RequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// X-Real-IP and X-Forwarded-For headers are believed.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// ExportConfig controls where cleaned datasets are written.
type ExportConfig struct {
	// Sink is postgres or sqlite (default: sqlite)
	Sink string `env:"EXPORT_SINK" default:"sqlite"`

	// SQLitePath is the database file for the sqlite sink (default: vocdata.db)
	SQLitePath string `env:"EXPORT_SQLITE_PATH" default:"vocdata.db"`

	// Concurrency is how many datasets are loaded in parallel (default: 4)
	Concurrency int `env:"EXPORT_CONCURRENCY" default:"4"`

	// Timeout bounds a whole export run (default: 30m)
	Timeout time.Duration `env:"EXPORT_TIMEOUT" default:"30m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

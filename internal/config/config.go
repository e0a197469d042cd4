// Package config defines the configuration structures for PlanWise.  No I/O
// or parsing logic lives here, only plain data types and validation; loading
// is in loader.go and defaults in defaults.go.
package config

import (
	"fmt"
	"time"

	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
)

// Version is the application version, overridden at build time via ldflags.
var Version = "dev"

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DocumentConfig holds planning-document fetch and cache tunables.
type DocumentConfig struct {
	// CacheTTL is how long fetched document text stays fresh.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// FetchTimeout bounds a single document download.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`

	// CacheBackend selects "memory" or "redis".
	CacheBackend string `mapstructure:"cache_backend"`

	// TextBudget caps document text passed to rule extraction, in bytes.
	TextBudget int `mapstructure:"text_budget"`
}

// ExtractionConfig holds rule-extraction tunables.
type ExtractionConfig struct {
	// MaxSnippetsPerCategory caps retained snippets per rule category.
	MaxSnippetsPerCategory int `mapstructure:"max_snippets_per_category"`

	// MinSentenceLength filters table-of-contents noise.
	MinSentenceLength int `mapstructure:"min_sentence_length"`
}

// GISConfig holds geodata feature-query provider parameters.
type GISConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	ZoneDataset     string        `mapstructure:"zone_dataset"`
	OverlayDatasets []string      `mapstructure:"overlay_datasets"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// RedisConfig holds Redis connection parameters for the document cache.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the assessment
// history store.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`

	// Enabled gates history persistence; the engine works without it.
	Enabled bool `mapstructure:"enabled"`
}

// MetricsConfig holds Prometheus exposure settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// WorkerConfig holds cache-prefetch worker settings.
type WorkerConfig struct {
	// PrefetchInterval is how often the worker re-warms the document cache.
	PrefetchInterval time.Duration `mapstructure:"prefetch_interval"`

	// Concurrency bounds parallel document downloads during a warm pass.
	Concurrency int `mapstructure:"concurrency"`
}

// Config is the root configuration for all PlanWise processes.
type Config struct {
	Server     ServerConfig      `mapstructure:"server"`
	Log        logging.LogConfig `mapstructure:"log"`
	Document   DocumentConfig    `mapstructure:"document"`
	Extraction ExtractionConfig  `mapstructure:"extraction"`
	GIS        GISConfig         `mapstructure:"gis"`
	Redis      RedisConfig       `mapstructure:"redis"`
	Database   DatabaseConfig    `mapstructure:"database"`
	Metrics    MetricsConfig     `mapstructure:"metrics"`
	Worker     WorkerConfig      `mapstructure:"worker"`
}

// Validate checks cross-field constraints that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release, or test, got %q", c.Server.Mode)
	}
	if c.Document.CacheTTL <= 0 {
		return fmt.Errorf("document.cache_ttl must be positive, got %s", c.Document.CacheTTL)
	}
	if c.Document.FetchTimeout <= 0 {
		return fmt.Errorf("document.fetch_timeout must be positive, got %s", c.Document.FetchTimeout)
	}
	switch c.Document.CacheBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("document.cache_backend must be memory or redis, got %q", c.Document.CacheBackend)
	}
	if c.Document.CacheBackend == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when document.cache_backend is redis")
	}
	if c.Extraction.MaxSnippetsPerCategory <= 0 {
		return fmt.Errorf("extraction.max_snippets_per_category must be positive")
	}
	if c.Database.Enabled && c.Database.Host == "" {
		return fmt.Errorf("database.host is required when database.enabled is true")
	}
	return nil
}

// DSN assembles the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

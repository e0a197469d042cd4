package config

import "time"

// Default values applied to any unset configuration field.  The document TTL
// and fetch timeout mirror the operating assumptions of the advisory flow:
// planning PDFs change rarely, so a day of staleness is acceptable, and the
// council document host can take tens of seconds to respond.
const (
	DefaultServerPort      = 8080
	DefaultServerMode      = "release"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultDocumentCacheTTL     = 24 * time.Hour
	DefaultDocumentFetchTimeout = 30 * time.Second
	DefaultDocumentCacheBackend = "memory"
	DefaultDocumentTextBudget   = 8000

	DefaultMaxSnippetsPerCategory = 10
	DefaultMinSentenceLength      = 20

	DefaultGISRequestTimeout = 20 * time.Second

	DefaultRedisKeyPrefix = "planwise:"

	DefaultMetricsPath = "/metrics"

	DefaultPrefetchInterval    = 12 * time.Hour
	DefaultPrefetchConcurrency = 4
)

// ApplyDefaults fills every zero-valued field of cfg with its default.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	if cfg.Document.CacheTTL == 0 {
		cfg.Document.CacheTTL = DefaultDocumentCacheTTL
	}
	if cfg.Document.FetchTimeout == 0 {
		cfg.Document.FetchTimeout = DefaultDocumentFetchTimeout
	}
	if cfg.Document.CacheBackend == "" {
		cfg.Document.CacheBackend = DefaultDocumentCacheBackend
	}
	if cfg.Document.TextBudget == 0 {
		cfg.Document.TextBudget = DefaultDocumentTextBudget
	}

	if cfg.Extraction.MaxSnippetsPerCategory == 0 {
		cfg.Extraction.MaxSnippetsPerCategory = DefaultMaxSnippetsPerCategory
	}
	if cfg.Extraction.MinSentenceLength == 0 {
		cfg.Extraction.MinSentenceLength = DefaultMinSentenceLength
	}

	if cfg.GIS.RequestTimeout == 0 {
		cfg.GIS.RequestTimeout = DefaultGISRequestTimeout
	}

	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = 3 * time.Second
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = 3 * time.Second
	}

	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Database.MinConns == 0 {
		cfg.Database.MinConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	if cfg.Worker.PrefetchInterval == 0 {
		cfg.Worker.PrefetchInterval = DefaultPrefetchInterval
	}
	if cfg.Worker.Concurrency == 0 {
		cfg.Worker.Concurrency = DefaultPrefetchConcurrency
	}
}

// NewDefaultConfig returns a Config populated entirely from defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

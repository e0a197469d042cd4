package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all PlanWise settings.
const envPrefix = "PLANWISE"

// configKeys lists every configuration key.  Viper only resolves environment
// overrides for keys it already knows, so each key is bound explicitly;
// without this the fileless load path would silently ignore all PLANWISE_*
// variables.
var configKeys = []string{
	"server.port",
	"server.mode",
	"server.read_timeout",
	"server.write_timeout",
	"server.shutdown_timeout",

	"log.level",
	"log.format",
	"log.output_paths",
	"log.error_output_paths",

	"document.cache_ttl",
	"document.fetch_timeout",
	"document.cache_backend",
	"document.text_budget",

	"extraction.max_snippets_per_category",
	"extraction.min_sentence_length",

	"gis.base_url",
	"gis.zone_dataset",
	"gis.overlay_datasets",
	"gis.request_timeout",

	"redis.addr",
	"redis.password",
	"redis.db",
	"redis.pool_size",
	"redis.dial_timeout",
	"redis.read_timeout",
	"redis.write_timeout",
	"redis.key_prefix",

	"database.enabled",
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.db_name",
	"database.ssl_mode",
	"database.max_conns",
	"database.min_conns",
	"database.conn_max_lifetime",

	"metrics.enabled",
	"metrics.path",

	"worker.prefetch_interval",
	"worker.concurrency",
}

// newViper builds a pre-configured viper instance: YAML file type, PLANWISE_
// env prefix, automatic env binding, and a key replacer mapping "." to "_"
// so nested keys like "document.cache_ttl" resolve to
// PLANWISE_DOCUMENT_CACHE_TTL.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}
	return v
}

// Load reads the YAML file at configPath, merges PLANWISE_* environment
// overrides, applies defaults for unset fields, and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from PLANWISE_* environment variables
// with no config file, the preferred strategy for containerised deployments.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the newly parsed Config
// whenever the file changes on disk.  Intended for hot-reloading non-critical
// settings such as log level; callers apply only the safe subset at runtime.
// If a changed file fails to parse or validate, onChange is not called.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}

// MustLoad wraps Load and panics on error; for use in main() where a
// config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

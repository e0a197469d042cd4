// Package bootstrap assembles the application object graph from
// configuration.  Every process entrypoint builds its dependencies here so
// the wiring stays in one place.
package bootstrap

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/planwise-nz/planwise/internal/application/advisor"
	"github.com/planwise-nz/planwise/internal/config"
	"github.com/planwise-nz/planwise/internal/domain/rules"
	"github.com/planwise-nz/planwise/internal/domain/zone"
	"github.com/planwise-nz/planwise/internal/infrastructure/database/postgres"
	"github.com/planwise-nz/planwise/internal/infrastructure/document"
	"github.com/planwise-nz/planwise/internal/infrastructure/gis"
	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
	promx "github.com/planwise-nz/planwise/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

// NewDocumentService wires the fetcher, extractor and configured cache
// backend into a document service.
func NewDocumentService(cfg *config.Config, logger logging.Logger, metrics *promx.Metrics) (*document.Service, error) {
	var cache document.Cache
	switch cfg.Document.CacheBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "connecting to redis")
		}
		cache = document.NewRedisCache(client, cfg.Redis.KeyPrefix)
	default:
		cache = document.NewMemoryCache()
	}

	return document.NewService(document.ServiceOptions{
		Fetcher:    document.NewHTTPFetcher(cfg.Document.FetchTimeout),
		Extractor:  document.NewPDFExtractor(),
		Cache:      cache,
		TTL:        cfg.Document.CacheTTL,
		TextBudget: cfg.Document.TextBudget,
		Logger:     logger,
		Metrics:    metrics,
	}), nil
}

// NewLocator builds the geodata locator, or nil when no provider is
// configured.
func NewLocator(cfg *config.Config, logger logging.Logger, metrics *promx.Metrics) *gis.Locator {
	if cfg.GIS.BaseURL == "" {
		return nil
	}
	client := gis.NewHTTPClient(cfg.GIS.BaseURL, cfg.GIS.RequestTimeout, logger, metrics)
	return gis.NewLocator(client, cfg.GIS.ZoneDataset, cfg.GIS.OverlayDatasets, logger)
}

// NewHistory migrates the schema and opens the assessment repository.  It
// returns nils when the database is disabled; the returned close function is
// always safe to call.
func NewHistory(ctx context.Context, cfg *config.Config, logger logging.Logger) (*postgres.AssessmentRepository, func(), error) {
	if !cfg.Database.Enabled {
		return nil, func() {}, nil
	}
	dsn := cfg.Database.DSN()
	if err := postgres.Migrate(dsn, logger); err != nil {
		return nil, func() {}, err
	}
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, func() {}, err
	}
	return postgres.NewAssessmentRepository(pool), pool.Close, nil
}

// NewAggregator builds the assessment pipeline on top of the shared
// collaborators.  locator and history may be nil.
func NewAggregator(cfg *config.Config, docs *document.Service, locator *gis.Locator, history advisor.HistoryStore, logger logging.Logger, metrics *promx.Metrics) *advisor.Aggregator {
	opts := advisor.AggregatorOptions{
		Resolver: zone.NewResolver(logger),
		Documents: docs,
		Extractor: rules.NewExtractor(
			cfg.Extraction.MaxSnippetsPerCategory,
			cfg.Extraction.MinSentenceLength,
			logger,
		),
		Logger:  logger,
		Metrics: metrics,
	}
	if locator != nil {
		opts.Locator = locator
	}
	if history != nil {
		opts.History = history
	}
	return advisor.NewAggregator(opts)
}

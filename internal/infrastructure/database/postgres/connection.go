// Package postgres persists assessment history.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

// PoolOptions tunes the connection pool.  Zero values fall back to 10 max
// connections, the pgx default for min connections, and a one hour lifetime.
type PoolOptions struct {
	MaxConns        int
	MinConns        int
	ConnMaxLifetime time.Duration
}

// newPoolConfig parses dsn and applies opts.
func newPoolConfig(dsn string, opts PoolOptions) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "parsing database dsn")
	}
	cfg.MaxConns = 10
	if opts.MaxConns > 0 {
		cfg.MaxConns = int32(opts.MaxConns)
	}
	if opts.MinConns > 0 {
		cfg.MinConns = int32(opts.MinConns)
	}
	cfg.MaxConnLifetime = time.Hour
	if opts.ConnMaxLifetime > 0 {
		cfg.MaxConnLifetime = opts.ConnMaxLifetime
	}
	return cfg, nil
}

// NewPool opens a pgx connection pool against dsn and verifies it with a
// ping.
func NewPool(ctx context.Context, dsn string, opts PoolOptions, logger logging.Logger) (*pgxpool.Pool, error) {
	if logger == nil {
		logger = logging.Default()
	}
	cfg, err := newPoolConfig(dsn, opts)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "creating connection pool")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "pinging database")
	}

	logger.Named("postgres").Info("database pool ready",
		logging.String("host", cfg.ConnConfig.Host),
		logging.String("database", cfg.ConnConfig.Database),
		logging.Int("max_conns", int(cfg.MaxConns)),
	)
	return pool, nil
}

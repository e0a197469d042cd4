package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/planwise-nz/planwise/internal/application/advisor"
	"github.com/planwise-nz/planwise/internal/bootstrap"
	"github.com/planwise-nz/planwise/internal/config"
	"github.com/planwise-nz/planwise/internal/domain/zone"
	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
	promx "github.com/planwise-nz/planwise/internal/infrastructure/monitoring/prometheus"
	"github.com/planwise-nz/planwise/internal/interfaces/rest"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "path to config file")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logging.SetDefault(logger)
	logger.Info("starting apiserver", logging.String("version", config.Version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *cfgPath != "" {
		config.Watch(*cfgPath, func(updated *config.Config) {
			// Structural settings need a restart; only the log level is
			// applied live.
			if reloaded, err := logging.NewLogger(updated.Log); err == nil {
				logging.SetDefault(reloaded)
				logger.Info("configuration reloaded", logging.String("log_level", updated.Log.Level))
			}
		})
	}

	metrics := promx.NewMetrics()

	docs, err := bootstrap.NewDocumentService(cfg, logger, metrics)
	if err != nil {
		return err
	}
	locator := bootstrap.NewLocator(cfg, logger, metrics)

	repo, closeDB, err := bootstrap.NewHistory(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	var (
		history advisor.HistoryStore
		reader  rest.HistoryReader
	)
	if repo != nil {
		history = repo
		reader = repo
	}

	aggregator := bootstrap.NewAggregator(cfg, docs, locator, history, logger, metrics)

	router := rest.NewRouter(rest.RouterOptions{
		Aggregator: aggregator,
		Resolver:   zone.NewResolver(logger),
		History:    reader,
		Logger:     logger,
		Metrics:    metrics,
		Mode:       cfg.Server.Mode,
	})
	return rest.NewServer(cfg.Server, router, logger).Run(ctx)
}

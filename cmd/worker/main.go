// The worker re-warms the planning document cache on an interval so
// interactive assessments always hit warm entries.  It only makes sense with
// the redis cache backend, where the apiserver shares the warmed store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/planwise-nz/planwise/internal/application/prefetch"
	"github.com/planwise-nz/planwise/internal/bootstrap"
	"github.com/planwise-nz/planwise/internal/config"
	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "path to config file")
	once := flag.Bool("once", false, "run a single warm pass and exit")
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
	logger.Info("starting worker",
		logging.String("version", config.Version),
		logging.Duration("interval", cfg.Worker.PrefetchInterval),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	docs, err := bootstrap.NewDocumentService(cfg, logger, nil)
	if err != nil {
		return err
	}
	warmer := prefetch.NewWarmer(docs, cfg.Worker.Concurrency, logger)

	warmer.Run(ctx)
	if *once {
		return nil
	}

	ticker := time.NewTicker(cfg.Worker.PrefetchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopping")
			return nil
		case <-ticker.C:
			warmer.Run(ctx)
		}
	}
}

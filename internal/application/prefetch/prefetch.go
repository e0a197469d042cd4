// Package prefetch warms the document cache with every catalog reference
// document so interactive assessments avoid cold fetches.
package prefetch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/planwise-nz/planwise/internal/domain/overlay"
	"github.com/planwise-nz/planwise/internal/domain/zone"
	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
)

// Warmer preloads document text for the whole catalog.
type Warmer struct {
	documents   Prefetcher
	concurrency int
	logger      logging.Logger
}

// Prefetcher is the document-service surface the warmer needs.
type Prefetcher interface {
	Prefetch(ctx context.Context, url string) error
}

func NewWarmer(documents Prefetcher, concurrency int, logger logging.Logger) *Warmer {
	if concurrency <= 0 {
		concurrency = 3
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Warmer{
		documents:   documents,
		concurrency: concurrency,
		logger:      logger.Named("prefetch"),
	}
}

// CatalogURLs returns every reference document in the zone and overlay
// catalogs, deduplicated (the hazard overlays share one chapter).
func CatalogURLs() []string {
	seen := make(map[string]bool)
	var urls []string
	for _, info := range zone.All() {
		if !seen[info.DocumentURL] {
			seen[info.DocumentURL] = true
			urls = append(urls, info.DocumentURL)
		}
	}
	for _, info := range overlay.AllTypes() {
		if !seen[info.DocumentURL] {
			seen[info.DocumentURL] = true
			urls = append(urls, info.DocumentURL)
		}
	}
	return urls
}

// Run warms every catalog document once.  Individual failures are logged and
// counted, not fatal; the returned count is the number of failures.
func (w *Warmer) Run(ctx context.Context) int {
	start := time.Now()
	urls := CatalogURLs()

	var failed int
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	results := make([]bool, len(urls))

	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			if err := w.documents.Prefetch(ctx, url); err != nil {
				w.logger.Warn("prefetch failed", logging.String("url", url), logging.Err(err))
				results[i] = true
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, f := range results {
		if f {
			failed++
		}
	}
	w.logger.Info("cache warm pass complete",
		logging.Int("documents", len(urls)),
		logging.Int("failed", failed),
		logging.Duration("elapsed", time.Since(start)),
	)
	return failed
}

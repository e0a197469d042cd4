package document

import (
	"context"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
	promx "github.com/planwise-nz/planwise/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

// Service provides cached access to planning document text.  Concurrent
// requests for the same URL are coalesced into a single fetch; failures are
// returned but never cached, so the next request retries.
type Service struct {
	fetcher    Fetcher
	extractor  TextExtractor
	cache      Cache
	ttl        time.Duration
	textBudget int

	group   singleflight.Group
	logger  logging.Logger
	metrics *promx.Metrics
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	Fetcher    Fetcher
	Extractor  TextExtractor
	Cache      Cache
	TTL        time.Duration
	TextBudget int
	Logger     logging.Logger
	Metrics    *promx.Metrics
}

// NewService constructs a Service.  Zero-value options fall back to a memory
// cache, a 24 hour TTL and an 8000 character text budget.
func NewService(opts ServiceOptions) *Service {
	if opts.Cache == nil {
		opts.Cache = NewMemoryCache()
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.TextBudget <= 0 {
		opts.TextBudget = 8000
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	return &Service{
		fetcher:    opts.Fetcher,
		extractor:  opts.Extractor,
		cache:      opts.Cache,
		ttl:        opts.TTL,
		textBudget: opts.TextBudget,
		logger:     opts.Logger.Named("document"),
		metrics:    opts.Metrics,
	}
}

// GetText returns the extracted text of the document at url, truncated to the
// text budget.  Cache hits avoid the network entirely.
func (s *Service) GetText(ctx context.Context, url string) (string, error) {
	if text, ok, err := s.cache.Get(ctx, url); err == nil && ok {
		s.countHit()
		return text, nil
	} else if err != nil {
		// A broken cache degrades to fetch-through.
		s.logger.Warn("document cache read failed", logging.String("url", url), logging.Err(err))
	}
	s.countMiss()

	v, err, _ := s.group.Do(url, func() (interface{}, error) {
		return s.fetchAndCache(ctx, url)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Service) fetchAndCache(ctx context.Context, url string) (string, error) {
	start := time.Now()

	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.observeFetch(start, "error", err)
		return "", err
	}
	text, err := s.extractor.ExtractText(data)
	if err != nil {
		s.observeFetch(start, "error", err)
		return "", err
	}
	if len(text) > s.textBudget {
		cut := s.textBudget
		// Back off to a rune boundary so the cut never splits a
		// multi-byte character.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	s.observeFetch(start, "ok", nil)

	if err := s.cache.Set(ctx, url, text, s.ttl); err != nil {
		s.logger.Warn("document cache write failed", logging.String("url", url), logging.Err(err))
	}
	s.logger.Info("document fetched",
		logging.String("url", url),
		logging.Int("bytes", len(data)),
		logging.Int("text_chars", len(text)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return text, nil
}

// Prefetch warms the cache for url, discarding the text.
func (s *Service) Prefetch(ctx context.Context, url string) error {
	_, err := s.GetText(ctx, url)
	return err
}

// ClearCache drops every cached document.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

func (s *Service) countHit() {
	if s.metrics != nil {
		s.metrics.DocumentCacheHits.WithLabelValues(s.cache.Backend()).Inc()
	}
}

func (s *Service) countMiss() {
	if s.metrics != nil {
		s.metrics.DocumentCacheMisses.WithLabelValues(s.cache.Backend()).Inc()
	}
}

func (s *Service) observeFetch(start time.Time, outcome string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.DocumentFetchSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.DocumentFetchErrors.WithLabelValues(string(apperrors.GetCode(err))).Inc()
	}
}

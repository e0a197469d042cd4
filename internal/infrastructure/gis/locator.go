package gis

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/planwise-nz/planwise/internal/domain/overlay"
	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
)

// zoneNameFields are the attribute keys the zone dataset uses for the zone
// name, in lookup order.
var zoneNameFields = []string{"ZONE", "ZONE_NAME", "ZONING", "UNITARY_ZONE"}

// Locator answers the two geodata questions the assessment pipeline asks:
// which zone a point sits in, and which overlay features cover it.
type Locator struct {
	client          FeatureClient
	zoneDataset     string
	overlayDatasets []string
	logger          logging.Logger
}

func NewLocator(client FeatureClient, zoneDataset string, overlayDatasets []string, logger logging.Logger) *Locator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Locator{
		client:          client,
		zoneDataset:     zoneDataset,
		overlayDatasets: overlayDatasets,
		logger:          logger.Named("locator"),
	}
}

// ZoneNameAt returns the raw zone name at the point, or "" when the dataset
// has no feature there or names the zone under an unknown attribute.
func (l *Locator) ZoneNameAt(ctx context.Context, lat, lng float64) (string, error) {
	records, err := l.client.QueryPoint(ctx, l.zoneDataset, lat, lng)
	if err != nil {
		return "", err
	}
	for _, record := range records {
		for _, field := range zoneNameFields {
			if v, ok := record[field]; ok {
				if s, ok := v.(string); ok && s != "" {
					return s, nil
				}
			}
		}
	}
	return "", nil
}

// OverlayRecordsAt queries every configured overlay dataset concurrently and
// returns the union of their attribute bags.  A failing dataset drops out of
// the result; the first error is returned alongside the surviving records so
// the caller can degrade rather than abort.
func (l *Locator) OverlayRecordsAt(ctx context.Context, lat, lng float64) ([]overlay.Record, error) {
	var (
		mu       sync.Mutex
		records  []overlay.Record
		firstErr error
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, dataset := range l.overlayDatasets {
		dataset := dataset
		g.Go(func() error {
			found, err := l.client.QueryPoint(ctx, dataset, lat, lng)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				l.logger.Warn("overlay dataset query failed",
					logging.String("dataset", dataset),
					logging.Err(err),
				)
				if firstErr == nil {
					firstErr = err
				}
				return nil
			}
			records = append(records, found...)
			return nil
		})
	}
	_ = g.Wait()
	return records, firstErr
}

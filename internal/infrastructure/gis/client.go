// Package gis queries the council geodata service for the plan features
// intersecting a point.
package gis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/planwise-nz/planwise/internal/domain/overlay"
	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
	promx "github.com/planwise-nz/planwise/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

// FeatureClient returns the attribute bags of the features in a dataset that
// intersect a WGS84 point.
type FeatureClient interface {
	QueryPoint(ctx context.Context, dataset string, lat, lng float64) ([]overlay.Record, error)
}

// HTTPClient implements FeatureClient against an ArcGIS-style feature
// service: GET {base}/{dataset}/query with a point geometry, JSON out.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
	metrics *promx.Metrics
}

// NewHTTPClient constructs a client.  A non-positive timeout falls back to
// 15 seconds.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger, metrics *promx.Metrics) *HTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("gis"),
		metrics: metrics,
	}
}

type queryResponse struct {
	Features []struct {
		Attributes map[string]interface{} `json:"attributes"`
	} `json:"features"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *HTTPClient) QueryPoint(ctx context.Context, dataset string, lat, lng float64) ([]overlay.Record, error) {
	if dataset == "" {
		return nil, apperrors.New(apperrors.ErrCodeGISDatasetUnknown, "dataset is empty")
	}
	start := time.Now()
	records, err := c.queryPoint(ctx, dataset, lat, lng)
	if c.metrics != nil {
		c.metrics.GISQuerySeconds.WithLabelValues(dataset).Observe(time.Since(start).Seconds())
		if err != nil {
			c.metrics.GISQueryErrors.Inc()
		}
	}
	return records, err
}

func (c *HTTPClient) queryPoint(ctx context.Context, dataset string, lat, lng float64) ([]overlay.Record, error) {
	params := url.Values{}
	params.Set("geometry", fmt.Sprintf("%f,%f", lng, lat))
	params.Set("geometryType", "esriGeometryPoint")
	params.Set("inSR", "4326")
	params.Set("spatialRel", "esriSpatialRelIntersects")
	params.Set("outFields", "*")
	params.Set("returnGeometry", "false")
	params.Set("f", "json")

	endpoint := fmt.Sprintf("%s/%s/query?%s", c.baseURL, url.PathEscape(dataset), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeGISUnavailable, "building geodata request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeGISUnavailable,
			fmt.Sprintf("querying dataset %s", dataset))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.ErrCodeGISUnavailable,
			fmt.Sprintf("dataset %s: status %d", dataset, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeGISUnavailable, "reading geodata response")
	}

	var parsed queryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeGISParseError,
			fmt.Sprintf("dataset %s", dataset))
	}
	if parsed.Error != nil {
		return nil, apperrors.New(apperrors.ErrCodeGISParseError,
			fmt.Sprintf("dataset %s: remote error %d: %s", dataset, parsed.Error.Code, parsed.Error.Message))
	}

	records := make([]overlay.Record, 0, len(parsed.Features))
	for _, f := range parsed.Features {
		if f.Attributes != nil {
			records = append(records, overlay.Record(f.Attributes))
		}
	}
	c.logger.Debug("geodata query complete",
		logging.String("dataset", dataset),
		logging.Int("features", len(records)),
	)
	return records, nil
}

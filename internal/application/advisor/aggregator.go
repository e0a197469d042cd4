// Package advisor aggregates zone and overlay rules into one assessment of a
// property.
package advisor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/planwise-nz/planwise/internal/domain/overlay"
	"github.com/planwise-nz/planwise/internal/domain/rules"
	"github.com/planwise-nz/planwise/internal/domain/zone"
	"github.com/planwise-nz/planwise/internal/infrastructure/database/postgres"
	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
	promx "github.com/planwise-nz/planwise/internal/infrastructure/monitoring/prometheus"
)

// DefaultProjectType applies when the caller does not say what they want to
// build.
const DefaultProjectType = "garage"

// TextSource returns the extracted text of a planning document.
type TextSource interface {
	GetText(ctx context.Context, url string) (string, error)
}

// Locator answers point-in-polygon questions against the council geodata.
type Locator interface {
	ZoneNameAt(ctx context.Context, lat, lng float64) (string, error)
	OverlayRecordsAt(ctx context.Context, lat, lng float64) ([]overlay.Record, error)
}

// HistoryStore records completed assessments.
type HistoryStore interface {
	Save(ctx context.Context, record postgres.AssessmentRecord) error
}

// Request describes one property assessment.  Either ZoneName or coordinates
// must identify the zone; OverlayRecords short-circuits the geodata lookup
// when the caller already holds the feature attributes.
type Request struct {
	Address        string           `json:"address"`
	Latitude       float64          `json:"latitude"`
	Longitude      float64          `json:"longitude"`
	ZoneName       string           `json:"zoneName,omitempty"`
	ProjectType    string           `json:"projectType,omitempty"`
	OverlayRecords []overlay.Record `json:"overlayRecords,omitempty"`
}

// OverlayRules pairs a classified overlay with the rules extracted from its
// reference document.
type OverlayRules struct {
	Overlay overlay.Info `json:"overlay"`
	Rules   rules.Bundle `json:"rules"`
}

// PropertyRuleSet is the assessment result.  It is always produced: upstream
// failures degrade individual fields and are listed in DegradedFields rather
// than failing the whole assessment.
type PropertyRuleSet struct {
	ID             uuid.UUID        `json:"id"`
	Address        string           `json:"address"`
	ProjectType    string           `json:"projectType"`
	Zone           *zone.Info       `json:"zone,omitempty"`
	ZoneRules      rules.Bundle     `json:"zoneRules"`
	Overlays       []OverlayRules   `json:"overlays"`
	Unclassified   []overlay.Record `json:"unclassified,omitempty"`
	Merged         rules.Bundle     `json:"merged"`
	DegradedFields []string         `json:"degradedFields,omitempty"`
	GeneratedAt    time.Time        `json:"generatedAt"`
}

// Aggregator runs the assessment pipeline.
type Aggregator struct {
	resolver  *zone.Resolver
	documents TextSource
	extractor *rules.Extractor
	locator   Locator
	history   HistoryStore
	logger    logging.Logger
	metrics   *promx.Metrics
	now       func() time.Time
}

// AggregatorOptions configures an Aggregator.  Locator and History are
// optional; Resolver, Documents and Extractor are required.
type AggregatorOptions struct {
	Resolver  *zone.Resolver
	Documents TextSource
	Extractor *rules.Extractor
	Locator   Locator
	History   HistoryStore
	Logger    logging.Logger
	Metrics   *promx.Metrics
}

func NewAggregator(opts AggregatorOptions) *Aggregator {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	return &Aggregator{
		resolver:  opts.Resolver,
		documents: opts.Documents,
		extractor: opts.Extractor,
		locator:   opts.Locator,
		history:   opts.History,
		logger:    opts.Logger.Named("advisor"),
		metrics:   opts.Metrics,
		now:       time.Now,
	}
}

// Assess builds the PropertyRuleSet for req.  It never returns an error:
// every upstream failure degrades the corresponding field instead.
func (a *Aggregator) Assess(ctx context.Context, req Request) *PropertyRuleSet {
	start := a.now()
	projectType := req.ProjectType
	if projectType == "" {
		projectType = DefaultProjectType
	}

	result := &PropertyRuleSet{
		ID:          uuid.New(),
		Address:     req.Address,
		ProjectType: projectType,
		GeneratedAt: start,
	}

	zoneInfo := a.resolveZone(ctx, req, result)
	classified := a.collectOverlays(ctx, req, result)
	ordered := overlay.OrderByPrecedence(classified)

	a.extractAllRules(ctx, zoneInfo, ordered, projectType, result)
	result.Merged = mergeRules(result.ZoneRules, result.Overlays)

	a.recordHistory(ctx, req, result)
	a.observe(result, start)

	a.logger.Info("assessment complete",
		logging.String("assessment_id", result.ID.String()),
		logging.String("project_type", projectType),
		logging.Int("overlays", len(result.Overlays)),
		logging.Strings("degraded", result.DegradedFields),
		logging.Duration("elapsed", a.now().Sub(start)),
	)
	return result
}

func (a *Aggregator) resolveZone(ctx context.Context, req Request, result *PropertyRuleSet) *zone.Info {
	name := req.ZoneName
	if name == "" && a.locator != nil {
		found, err := a.locator.ZoneNameAt(ctx, req.Latitude, req.Longitude)
		if err != nil {
			a.logger.Warn("zone lookup degraded", logging.Err(err))
			result.DegradedFields = append(result.DegradedFields, "zone")
			return nil
		}
		name = found
	}
	info, ok := a.resolver.Resolve(name)
	if !ok {
		a.logger.Warn("zone unresolved", logging.String("zone_name", name))
		result.DegradedFields = append(result.DegradedFields, "zone")
		return nil
	}
	result.Zone = &info
	return &info
}

func (a *Aggregator) collectOverlays(ctx context.Context, req Request, result *PropertyRuleSet) []overlay.Classified {
	records := req.OverlayRecords
	if records == nil && a.locator != nil {
		found, err := a.locator.OverlayRecordsAt(ctx, req.Latitude, req.Longitude)
		if err != nil {
			result.DegradedFields = append(result.DegradedFields, "overlays")
		}
		records = found
	}

	var classified []overlay.Classified
	for _, record := range records {
		info, ok := overlay.Classify(record)
		if !ok {
			result.Unclassified = append(result.Unclassified, record)
			continue
		}
		classified = append(classified, overlay.Classified{Info: info, SourceRecord: record})
	}
	return classified
}

// extractAllRules fetches the zone document and every overlay document
// concurrently, extracting a rule bundle from each.  A failed document
// degrades only its own field.
func (a *Aggregator) extractAllRules(ctx context.Context, zoneInfo *zone.Info, overlays []overlay.Classified, projectType string, result *PropertyRuleSet) {
	var mu sync.Mutex
	overlayRules := make([]OverlayRules, len(overlays))
	overlayFailed := make([]bool, len(overlays))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	if zoneInfo != nil {
		g.Go(func() error {
			text, err := a.documents.GetText(ctx, zoneInfo.DocumentURL)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.logger.Warn("zone document degraded",
					logging.String("zone", zoneInfo.Code), logging.Err(err))
				result.DegradedFields = append(result.DegradedFields, "zoneRules")
				return nil
			}
			result.ZoneRules = a.extractor.Extract(text, projectType, zoneInfo.Code)
			return nil
		})
	}

	for i, c := range overlays {
		i, c := i, c
		g.Go(func() error {
			text, err := a.documents.GetText(ctx, c.Info.DocumentURL)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.logger.Warn("overlay document degraded",
					logging.String("overlay", string(c.Info.Type)), logging.Err(err))
				result.DegradedFields = append(result.DegradedFields,
					fmt.Sprintf("overlay:%s", c.Info.Type))
				overlayFailed[i] = true
				return nil
			}
			overlayRules[i] = OverlayRules{
				Overlay: c.Info,
				Rules:   a.extractor.Extract(text, projectType, string(c.Info.Type)),
			}
			return nil
		})
	}
	_ = g.Wait()

	// Preserve precedence order, skipping overlays whose document failed.
	for i := range overlayRules {
		if !overlayFailed[i] && i < len(overlays) {
			result.Overlays = append(result.Overlays, OverlayRules{
				Overlay: overlays[i].Info,
				Rules:   overlayRules[i].Rules,
			})
		}
	}
}

// mergeRules combines the zone bundle with the overlay bundles.  Overlays
// are already in precedence order; for each category the highest-precedence
// overlay with snippets supersedes the zone, and project-specific snippets
// accumulate across all sources.
func mergeRules(zoneRules rules.Bundle, overlays []OverlayRules) rules.Bundle {
	merged := zoneRules
	categories := []rules.Category{
		rules.CategoryHeightLimits,
		rules.CategorySetbacks,
		rules.CategoryCoverage,
		rules.CategoryConsent,
	}
	for _, category := range categories {
		for _, o := range overlays {
			if snippets := o.Rules.ByCategory(category); len(snippets) > 0 {
				switch category {
				case rules.CategoryHeightLimits:
					merged.HeightLimits = snippets
				case rules.CategorySetbacks:
					merged.Setbacks = snippets
				case rules.CategoryCoverage:
					merged.Coverage = snippets
				case rules.CategoryConsent:
					merged.ConsentRequirements = snippets
				}
				break
			}
		}
	}

	seen := make(map[string]bool, len(merged.ProjectSpecific))
	for _, s := range merged.ProjectSpecific {
		seen[s] = true
	}
	for _, o := range overlays {
		for _, s := range o.Rules.ProjectSpecific {
			if !seen[s] {
				seen[s] = true
				merged.ProjectSpecific = append(merged.ProjectSpecific, s)
			}
		}
	}
	return merged
}

// recordHistory persists an assessment summary.  Failures are logged and
// never degrade the result itself.
func (a *Aggregator) recordHistory(ctx context.Context, req Request, result *PropertyRuleSet) {
	if a.history == nil {
		return
	}
	zoneCode := ""
	if result.Zone != nil {
		zoneCode = result.Zone.Code
	}
	record := postgres.AssessmentRecord{
		ID:             result.ID,
		Address:        req.Address,
		ZoneCode:       zoneCode,
		ProjectType:    result.ProjectType,
		OverlayCount:   len(result.Overlays),
		DegradedFields: result.DegradedFields,
		CreatedAt:      result.GeneratedAt,
	}
	if err := a.history.Save(ctx, record); err != nil {
		a.logger.Error("assessment history write failed",
			logging.String("assessment_id", result.ID.String()), logging.Err(err))
	}
}

func (a *Aggregator) observe(result *PropertyRuleSet, start time.Time) {
	if a.metrics == nil {
		return
	}
	a.metrics.AssessmentsTotal.WithLabelValues(result.ProjectType).Inc()
	a.metrics.AssessmentSeconds.Observe(a.now().Sub(start).Seconds())
	for _, field := range result.DegradedFields {
		a.metrics.DegradedFieldsTotal.WithLabelValues(field).Inc()
	}
}

package advisor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/planwise-nz/planwise/internal/domain/overlay"
	"github.com/planwise-nz/planwise/internal/domain/rules"
	"github.com/planwise-nz/planwise/internal/domain/zone"
	"github.com/planwise-nz/planwise/internal/infrastructure/database/postgres"
	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

const zoneDocText = `Development standards
Buildings must not exceed 8 metres in height plus a 1 metre roof allowance.
A front yard of 3 metres must be provided on every site.
Maximum building coverage must not exceed 35 per cent of net site area.
Construction of a garage that meets all standards is a permitted activity.`

const heritageDocText = `Assessment
Any building work on a scheduled place requires resource consent as a discretionary activity.
Buildings must not exceed the existing height of the scheduled heritage place.`

type stubTextSource struct {
	texts  map[string]string
	errFor map[string]error
	calls  map[string]int
}

func newStubTextSource() *stubTextSource {
	return &stubTextSource{
		texts:  make(map[string]string),
		errFor: make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (s *stubTextSource) GetText(_ context.Context, url string) (string, error) {
	s.calls[url]++
	if err, ok := s.errFor[url]; ok {
		return "", err
	}
	return s.texts[url], nil
}

type stubLocator struct {
	zoneName   string
	zoneErr    error
	records    []overlay.Record
	recordsErr error
}

func (s *stubLocator) ZoneNameAt(context.Context, float64, float64) (string, error) {
	return s.zoneName, s.zoneErr
}

func (s *stubLocator) OverlayRecordsAt(context.Context, float64, float64) ([]overlay.Record, error) {
	return s.records, s.recordsErr
}

type mockHistory struct{ mock.Mock }

func (m *mockHistory) Save(ctx context.Context, record postgres.AssessmentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func newTestAggregator(docs TextSource, locator Locator, history HistoryStore) *Aggregator {
	return NewAggregator(AggregatorOptions{
		Resolver:  zone.NewResolver(nil),
		Documents: docs,
		Extractor: rules.NewExtractor(10, 20, nil),
		Locator:   locator,
		History:   history,
	})
}

func zoneDocURL(t *testing.T, code string) string {
	t.Helper()
	info, ok := zone.Lookup(code)
	require.True(t, ok)
	return info.DocumentURL
}

func overlayDocURL(t *testing.T, typ overlay.Type) string {
	t.Helper()
	info, ok := overlay.TypeLookup(typ)
	require.True(t, ok)
	return info.DocumentURL
}

func TestAssess_ZoneWithHeritageOverlay(t *testing.T) {
	docs := newStubTextSource()
	docs.texts[zoneDocURL(t, "H3")] = zoneDocText
	docs.texts[overlayDocURL(t, overlay.TypeHeritage)] = heritageDocText

	agg := newTestAggregator(docs, nil, nil)
	got := agg.Assess(context.Background(), Request{
		Address:        "12 Ponsonby Road, Auckland",
		ZoneName:       "Residential - Single House Zone",
		ProjectType:    "garage",
		OverlayRecords: []overlay.Record{{"HERITAGE_NAME": "Ponsonby House"}},
	})

	require.NotNil(t, got.Zone)
	assert.Equal(t, "H3", got.Zone.Code)
	require.Len(t, got.Overlays, 1)
	assert.Equal(t, overlay.TypeHeritage, got.Overlays[0].Overlay.Type)
	assert.Equal(t, "Ponsonby House", got.Overlays[0].Overlay.ExtractedLabel)
	assert.Empty(t, got.DegradedFields)

	// The heritage document carries height and consent rules, so both
	// categories come from the overlay; setbacks and coverage stay with
	// the zone.
	assert.Contains(t, strings.Join(got.Merged.HeightLimits, " "), "heritage place")
	assert.Contains(t, strings.Join(got.Merged.ConsentRequirements, " "), "discretionary")
	assert.Contains(t, strings.Join(got.Merged.Setbacks, " "), "front yard")
	assert.Contains(t, strings.Join(got.Merged.Coverage, " "), "35 per cent")
}

func TestAssess_DefaultProjectType(t *testing.T) {
	docs := newStubTextSource()
	agg := newTestAggregator(docs, nil, nil)
	got := agg.Assess(context.Background(), Request{ZoneName: "H3"})
	assert.Equal(t, "garage", got.ProjectType)
}

func TestAssess_UnresolvableZoneDegrades(t *testing.T) {
	docs := newStubTextSource()
	agg := newTestAggregator(docs, nil, nil)
	got := agg.Assess(context.Background(), Request{ZoneName: "Klingon Homeworld"})

	assert.Nil(t, got.Zone)
	assert.Contains(t, got.DegradedFields, "zone")
}

func TestAssess_ZoneDocumentFailureDegradesOnlyZoneRules(t *testing.T) {
	docs := newStubTextSource()
	docs.errFor[zoneDocURL(t, "H3")] = apperrors.New(apperrors.ErrCodeDocumentUnreachable, "down")
	docs.texts[overlayDocURL(t, overlay.TypeFlood)] = heritageDocText

	agg := newTestAggregator(docs, nil, nil)
	got := agg.Assess(context.Background(), Request{
		ZoneName:       "H3",
		OverlayRecords: []overlay.Record{{"FLOOD_ZONE": "1pc AEP"}},
	})

	require.NotNil(t, got.Zone)
	assert.True(t, got.ZoneRules.IsEmpty())
	assert.Contains(t, got.DegradedFields, "zoneRules")
	assert.Len(t, got.Overlays, 1)
}

func TestAssess_OverlayDocumentFailureDegradesThatOverlay(t *testing.T) {
	docs := newStubTextSource()
	docs.texts[zoneDocURL(t, "H3")] = zoneDocText
	docs.errFor[overlayDocURL(t, overlay.TypeHeritage)] =
		apperrors.New(apperrors.ErrCodeDocumentUnreachable, "down")

	agg := newTestAggregator(docs, nil, nil)
	got := agg.Assess(context.Background(), Request{
		ZoneName:       "H3",
		OverlayRecords: []overlay.Record{{"HERITAGE_NAME": "Villa"}},
	})

	assert.Empty(t, got.Overlays)
	assert.Contains(t, got.DegradedFields, "overlay:heritage")
	assert.False(t, got.ZoneRules.IsEmpty())
}

func TestAssess_UnclassifiedRecordsSurfaced(t *testing.T) {
	docs := newStubTextSource()
	docs.texts[zoneDocURL(t, "H3")] = zoneDocText

	agg := newTestAggregator(docs, nil, nil)
	got := agg.Assess(context.Background(), Request{
		ZoneName:       "H3",
		OverlayRecords: []overlay.Record{{"MYSTERY_FIELD": "???"}},
	})

	assert.Empty(t, got.Overlays)
	require.Len(t, got.Unclassified, 1)
	assert.Empty(t, got.DegradedFields)
}

func TestAssess_LocatorProvidesZoneAndOverlays(t *testing.T) {
	docs := newStubTextSource()
	docs.texts[zoneDocURL(t, "H6")] = zoneDocText
	docs.texts[overlayDocURL(t, overlay.TypeSpecialCharacter)] = heritageDocText

	locator := &stubLocator{
		zoneName: "Terrace Housing and Apartment Buildings (Zone 6)",
		records:  []overlay.Record{{"SCA_NAME": "Isthmus B"}},
	}
	agg := newTestAggregator(docs, locator, nil)
	got := agg.Assess(context.Background(), Request{
		Address:   "1 Example Street",
		Latitude:  -36.86,
		Longitude: 174.76,
	})

	require.NotNil(t, got.Zone)
	assert.Equal(t, "H6", got.Zone.Code)
	require.Len(t, got.Overlays, 1)
	assert.Equal(t, overlay.TypeSpecialCharacter, got.Overlays[0].Overlay.Type)
}

func TestAssess_LocatorFailuresDegrade(t *testing.T) {
	docs := newStubTextSource()
	locator := &stubLocator{
		zoneErr:    apperrors.New(apperrors.ErrCodeGISUnavailable, "down"),
		recordsErr: apperrors.New(apperrors.ErrCodeGISUnavailable, "down"),
	}
	agg := newTestAggregator(docs, locator, nil)
	got := agg.Assess(context.Background(), Request{Latitude: -36.86, Longitude: 174.76})

	assert.Nil(t, got.Zone)
	assert.Contains(t, got.DegradedFields, "zone")
	assert.Contains(t, got.DegradedFields, "overlays")
}

func TestAssess_PrecedenceOrdersOverlays(t *testing.T) {
	docs := newStubTextSource()
	docs.texts[zoneDocURL(t, "H3")] = zoneDocText
	docs.texts[overlayDocURL(t, overlay.TypeHeritage)] = heritageDocText
	docs.texts[overlayDocURL(t, overlay.TypeNotableTrees)] = heritageDocText

	agg := newTestAggregator(docs, nil, nil)
	got := agg.Assess(context.Background(), Request{
		ZoneName: "H3",
		OverlayRecords: []overlay.Record{
			{"TREE_NAME": "Pohutukawa"},
			{"HERITAGE_NAME": "Villa"},
		},
	})

	require.Len(t, got.Overlays, 2)
	assert.Equal(t, overlay.TypeHeritage, got.Overlays[0].Overlay.Type)
	assert.Equal(t, overlay.TypeNotableTrees, got.Overlays[1].Overlay.Type)
}

func TestAssess_HistoryRecordedBestEffort(t *testing.T) {
	docs := newStubTextSource()
	docs.texts[zoneDocURL(t, "H3")] = zoneDocText

	history := &mockHistory{}
	history.On("Save", mock.Anything, mock.MatchedBy(func(r postgres.AssessmentRecord) bool {
		return r.ZoneCode == "H3" && r.ProjectType == "garage"
	})).Return(nil).Once()

	agg := newTestAggregator(docs, nil, history)
	agg.Assess(context.Background(), Request{ZoneName: "H3", ProjectType: "garage"})
	history.AssertExpectations(t)
}

func TestAssess_HistoryFailureDoesNotDegrade(t *testing.T) {
	docs := newStubTextSource()
	docs.texts[zoneDocURL(t, "H3")] = zoneDocText

	history := &mockHistory{}
	history.On("Save", mock.Anything, mock.Anything).
		Return(apperrors.New(apperrors.ErrCodeHistoryWriteFailed, "db down"))

	agg := newTestAggregator(docs, nil, history)
	got := agg.Assess(context.Background(), Request{ZoneName: "H3"})
	assert.Empty(t, got.DegradedFields)
}

func TestBuildPromptContext(t *testing.T) {
	docs := newStubTextSource()
	docs.texts[zoneDocURL(t, "H3")] = zoneDocText
	docs.errFor[overlayDocURL(t, overlay.TypeFlood)] =
		apperrors.New(apperrors.ErrCodeDocumentUnreachable, "down")

	agg := newTestAggregator(docs, nil, nil)
	got := agg.Assess(context.Background(), Request{
		Address:        "12 Ponsonby Road, Auckland",
		ZoneName:       "H3",
		ProjectType:    "garage",
		OverlayRecords: []overlay.Record{{"FLOOD_ZONE": "1pc AEP"}},
	})

	prompt := BuildPromptContext(got)
	assert.Contains(t, prompt, "12 Ponsonby Road")
	assert.Contains(t, prompt, "Residential - Single House Zone")
	assert.Contains(t, prompt, "Height limits:")
	// Every degraded field is called out as a caveat.
	for _, field := range got.DegradedFields {
		assert.Contains(t, prompt, field)
	}
}

func TestBuildPromptContext_NoZone(t *testing.T) {
	prompt := BuildPromptContext(&PropertyRuleSet{ProjectType: "garage"})
	assert.Contains(t, prompt, "could not be determined")
	assert.Contains(t, prompt, "an unspecified address")
}

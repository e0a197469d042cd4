package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise-nz/planwise/internal/application/advisor"
	"github.com/planwise-nz/planwise/internal/domain/rules"
	"github.com/planwise-nz/planwise/internal/domain/zone"
	promx "github.com/planwise-nz/planwise/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

type staticTextSource struct{ text string }

func (s staticTextSource) GetText(context.Context, string) (string, error) {
	if s.text == "" {
		return "", apperrors.New(apperrors.ErrCodeDocumentUnreachable, "offline")
	}
	return s.text, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	resolver := zone.NewResolver(nil)
	aggregator := advisor.NewAggregator(advisor.AggregatorOptions{
		Resolver:  resolver,
		Documents: staticTextSource{text: "Buildings must not exceed 8 metres in height above ground."},
		Extractor: rules.NewExtractor(10, 20, nil),
	})
	return NewRouter(RouterOptions{
		Aggregator: aggregator,
		Resolver:   resolver,
		Metrics:    promx.NewMetrics(),
		Mode:       gin.TestMode,
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetZone(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/zones/H3", "")
	require.Equal(t, http.StatusOK, w.Code)

	var info zone.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "Residential - Single House Zone", info.Name)
}

func TestGetZone_NotFound(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/zones/H99", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope struct {
		Error struct {
			Code      string `json:"code"`
			RequestID string `json:"requestId"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "ZON_001", envelope.Error.Code)
	assert.NotEmpty(t, envelope.Error.RequestID)
}

func TestResolveZone(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/zones/resolve",
		`{"name":"Single House (Zone 3)"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var info zone.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "H3", info.Code)
}

func TestResolveZone_BadBody(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/v1/zones/resolve", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassifyOverlays(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/overlays/classify",
		`{"records":[{"TREE_NAME":"Pohutukawa"},{"HERITAGE_NAME":"Villa"},{"MYSTERY":"x"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Classified []struct {
			Type           string `json:"Type"`
			ExtractedLabel string `json:"ExtractedLabel"`
		} `json:"classified"`
		Unclassified []map[string]interface{} `json:"unclassified"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Classified, 2)
	// Heritage outranks notable trees, so it comes back first.
	assert.Equal(t, "heritage", resp.Classified[0].Type)
	assert.Len(t, resp.Unclassified, 1)
}

func TestCreateAssessment(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/assessments?prompt=true",
		`{"address":"12 Ponsonby Road","zoneName":"H3","projectType":"garage",
		  "overlayRecords":[{"HERITAGE_NAME":"Ponsonby House"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Zone          *zone.Info `json:"zone"`
		PromptContext string     `json:"promptContext"`
		Overlays      []any      `json:"overlays"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Zone)
	assert.Equal(t, "H3", resp.Zone.Code)
	assert.Len(t, resp.Overlays, 1)
	assert.Contains(t, resp.PromptContext, "12 Ponsonby Road")
}

func TestCreateAssessment_Validation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/assessments", `{"address":"nowhere"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "COMMON_005")
}

func TestAssessmentsWithoutHistoryStore(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/v1/assessments", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	assert.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/readyz", "").Code)

	w := doJSON(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "planwise_")
}

func TestRequestIDPropagated(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

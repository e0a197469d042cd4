package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/planwise-nz/planwise/internal/application/advisor"
	"github.com/planwise-nz/planwise/internal/domain/overlay"
	"github.com/planwise-nz/planwise/internal/domain/zone"
	"github.com/planwise-nz/planwise/internal/infrastructure/database/postgres"
	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

// HistoryReader reads persisted assessment summaries.
type HistoryReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (postgres.AssessmentRecord, error)
	ListRecent(ctx context.Context, limit int) ([]postgres.AssessmentRecord, error)
}

type handlers struct {
	aggregator *advisor.Aggregator
	resolver   *zone.Resolver
	history    HistoryReader
	ready      func(context.Context) error
}

type assessmentResponse struct {
	*advisor.PropertyRuleSet
	PromptContext string `json:"promptContext,omitempty"`
}

// createAssessment runs the full pipeline for one property.
func (h *handlers) createAssessment(c *gin.Context) {
	var req advisor.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid assessment request"))
		return
	}
	if req.ZoneName == "" && req.Latitude == 0 && req.Longitude == 0 {
		writeError(c, apperrors.New(apperrors.ErrCodeValidation,
			"either zoneName or latitude/longitude is required"))
		return
	}

	result := h.aggregator.Assess(c.Request.Context(), req)

	resp := assessmentResponse{PropertyRuleSet: result}
	if c.Query("prompt") == "true" {
		resp.PromptContext = advisor.BuildPromptContext(result)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) getAssessment(c *gin.Context) {
	if h.history == nil {
		writeError(c, apperrors.New(apperrors.ErrCodeServiceUnavailable, "assessment history is not enabled"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, apperrors.New(apperrors.ErrCodeValidation, "invalid assessment id"))
		return
	}
	record, err := h.history.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *handlers) listAssessments(c *gin.Context) {
	if h.history == nil {
		writeError(c, apperrors.New(apperrors.ErrCodeServiceUnavailable, "assessment history is not enabled"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	records, err := h.history.ListRecent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": records})
}

func (h *handlers) getZone(c *gin.Context) {
	code := c.Param("code")
	info, ok := zone.Lookup(code)
	if !ok {
		writeError(c, apperrors.New(apperrors.ErrCodeZoneNotFound,
			fmt.Sprintf("no zone with code %q", code)))
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *handlers) listZones(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"zones": zone.All()})
}

type resolveZoneRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *handlers) resolveZone(c *gin.Context) {
	var req resolveZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid resolve request"))
		return
	}
	info, ok := h.resolver.Resolve(req.Name)
	if !ok {
		writeError(c, apperrors.New(apperrors.ErrCodeZoneNotFound,
			fmt.Sprintf("could not resolve %q to a zone", req.Name)))
		return
	}
	c.JSON(http.StatusOK, info)
}

type classifyRequest struct {
	Records []overlay.Record `json:"records" binding:"required"`
}

type classifyResponse struct {
	Classified   []overlay.Info   `json:"classified"`
	Unclassified []overlay.Record `json:"unclassified,omitempty"`
}

func (h *handlers) classifyOverlays(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid classify request"))
		return
	}
	resp := classifyResponse{Classified: []overlay.Info{}}
	var ordered []overlay.Classified
	for _, record := range req.Records {
		info, ok := overlay.Classify(record)
		if !ok {
			resp.Unclassified = append(resp.Unclassified, record)
			continue
		}
		ordered = append(ordered, overlay.Classified{Info: info, SourceRecord: record})
	}
	for _, item := range overlay.OrderByPrecedence(ordered) {
		resp.Classified = append(resp.Classified, item.Info)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) listOverlayTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": overlay.AllTypes()})
}

func (h *handlers) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) readyz(c *gin.Context) {
	if h.ready != nil {
		if err := h.ready(c.Request.Context()); err != nil {
			writeError(c, apperrors.Wrap(err, apperrors.ErrCodeServiceUnavailable, "not ready"))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

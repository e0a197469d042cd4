package rest

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/planwise-nz/planwise/internal/application/advisor"
	"github.com/planwise-nz/planwise/internal/domain/zone"
	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
	promx "github.com/planwise-nz/planwise/internal/infrastructure/monitoring/prometheus"
)

// RouterOptions carries the collaborators the HTTP layer exposes.
type RouterOptions struct {
	Aggregator *advisor.Aggregator
	Resolver   *zone.Resolver
	History    HistoryReader
	Logger     logging.Logger
	Metrics    *promx.Metrics
	Mode       string
	// Ready reports whether dependencies are reachable, for /readyz.
	Ready func(context.Context) error
}

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	engine := gin.New()
	engine.Use(RequestID())
	engine.Use(Recovery(opts.Logger))
	engine.Use(RequestLogger(opts.Logger))
	if opts.Metrics != nil {
		engine.Use(Observe(opts.Metrics))
	}

	h := &handlers{
		aggregator: opts.Aggregator,
		resolver:   opts.Resolver,
		history:    opts.History,
		ready:      opts.Ready,
	}

	engine.GET("/healthz", h.healthz)
	engine.GET("/readyz", h.readyz)
	if opts.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(
			promhttp.HandlerFor(opts.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/assessments", h.createAssessment)
		v1.GET("/assessments", h.listAssessments)
		v1.GET("/assessments/:id", h.getAssessment)

		v1.GET("/zones", h.listZones)
		v1.GET("/zones/:code", h.getZone)
		v1.POST("/zones/resolve", h.resolveZone)

		v1.GET("/overlays/types", h.listOverlayTypes)
		v1.POST("/overlays/classify", h.classifyOverlays)
	}
	return engine
}

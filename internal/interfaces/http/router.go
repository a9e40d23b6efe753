package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/FinCrime-Intelligence/internal/config"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/FinCrime-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/FinCrime-Intelligence/internal/interfaces/http/middleware"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// RouterConfig aggregates the handlers and infrastructure required to build
// the complete route tree.
type RouterConfig struct {
	AssessHandler     *handlers.AssessHandler
	AssessmentHandler *handlers.AssessmentHandler
	HealthHandler     *handlers.HealthHandler

	Mode    string
	Metrics config.MetricsConfig

	Logger           logging.Logger
	MetricsCollector prometheus.MetricsCollector
	AppMetrics       *prometheus.AppMetrics
}

// NewRouter constructs the HTTP route tree: public health endpoints, the
// metrics endpoint, and the versioned API group.
func NewRouter(cfg RouterConfig) *gin.Engine {
	switch cfg.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger))
	}
	if cfg.AppMetrics != nil {
		r.Use(middleware.RequestMetrics(cfg.AppMetrics))
	}

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}

	if cfg.Metrics.Enabled && cfg.MetricsCollector != nil {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	api := r.Group("/api/v1")
	{
		if cfg.AssessHandler != nil {
			api.POST("/transactions/assess", cfg.AssessHandler.Assess)
		}
		if cfg.AssessmentHandler != nil {
			api.GET("/assessments", cfg.AssessmentHandler.ListRecent)
			api.GET("/assessments/:id", cfg.AssessmentHandler.GetByID)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{
			Code:    string(errors.ErrCodeNotFound),
			Message: "resource not found",
		})
	})

	return r
}

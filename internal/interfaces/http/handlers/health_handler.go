package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/prometheus"
)

const readinessCheckTimeout = 5 * time.Second

// ComponentCheck names a dependency and how to probe it.
type ComponentCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.  Readiness fans the
// registered component checks out and reports per-component status.
type HealthHandler struct {
	checks  []ComponentCheck
	metrics *prometheus.AppMetrics
	logger  logging.Logger
}

func NewHealthHandler(checks []ComponentCheck, metrics *prometheus.AppMetrics, log logging.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, metrics: metrics, logger: log}
}

// Liveness handles GET /healthz.  It only confirms the process serves traffic.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz.  It returns 503 when any dependency probe
// fails, with a per-component breakdown either way.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessCheckTimeout)
	defer cancel()

	components := make(map[string]string, len(h.checks))
	healthy := true
	for _, chk := range h.checks {
		if err := chk.Check(ctx); err != nil {
			healthy = false
			components[chk.Name] = err.Error()
			h.recordStatus(chk.Name, 0)
			h.logger.Warn("readiness check failed",
				logging.String("component", chk.Name), logging.Err(err))
			continue
		}
		components[chk.Name] = "ok"
		h.recordStatus(chk.Name, 1)
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "unavailable"
	}
	c.JSON(status, gin.H{"status": overall, "components": components})
}

func (h *HealthHandler) recordStatus(component string, up float64) {
	if h.metrics == nil {
		return
	}
	h.metrics.HealthCheckStatus.WithLabelValues(component).Set(up)
}

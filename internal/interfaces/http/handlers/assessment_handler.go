package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// AssessmentStore reads persisted assessments from the audit store.
type AssessmentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TransactionRisk, error)
	ListRecent(ctx context.Context, limit int) ([]repositories.AssessmentSummary, error)
}

// AssessmentHandler serves read access to persisted assessments.
type AssessmentHandler struct {
	store  AssessmentStore
	logger logging.Logger
}

func NewAssessmentHandler(store AssessmentStore, log logging.Logger) *AssessmentHandler {
	return &AssessmentHandler{store: store, logger: log}
}

// GetByID handles GET /api/v1/assessments/:id.
func (h *AssessmentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "assessment id must be a UUID")
		return
	}

	risk, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, risk)
}

// ListRecent handles GET /api/v1/assessments?limit=N.
func (h *AssessmentHandler) ListRecent(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondBadRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	summaries, err := h.store.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if summaries == nil {
		summaries = []repositories.AssessmentSummary{}
	}

	c.JSON(http.StatusOK, gin.H{
		"assessments": summaries,
		"count":       len(summaries),
	})
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

// TransactionAssessor runs the risk pipeline over a transaction's entities.
type TransactionAssessor interface {
	AssessTransaction(ctx context.Context, entities []entity.ExtractedEntity) (*entity.TransactionRisk, error)
}

// AssessRequest is the body of POST /api/v1/transactions/assess.
type AssessRequest struct {
	Entities []entity.ExtractedEntity `json:"entities"`
}

// AssessHandler serves synchronous transaction risk assessment.
type AssessHandler struct {
	assessor TransactionAssessor
	logger   logging.Logger
}

func NewAssessHandler(assessor TransactionAssessor, log logging.Logger) *AssessHandler {
	return &AssessHandler{assessor: assessor, logger: log}
}

// Assess handles POST /api/v1/transactions/assess.
func (h *AssessHandler) Assess(c *gin.Context) {
	var req AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	risk, err := h.assessor.AssessTransaction(c.Request.Context(), req.Entities)
	if err != nil {
		h.logger.Warn("assessment request failed",
			logging.Int("entity_count", len(req.Entities)),
			logging.Err(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, risk)
}

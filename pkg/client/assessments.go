package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/turtacn/FinCrime-Intelligence/pkg/types/assessment"
)

// assessRequest is the body of POST /api/v1/transactions/assess.
type assessRequest struct {
	Entities []assessment.Entity `json:"entities"`
}

// listResponse is the body of GET /api/v1/assessments.
type listResponse struct {
	Assessments []assessment.Summary `json:"assessments"`
	Count       int                  `json:"count"`
}

// AssessTransaction runs a synchronous risk assessment over the given
// transaction entities.
func (c *Client) AssessTransaction(ctx context.Context, entities []assessment.Entity) (*assessment.TransactionRisk, error) {
	var risk assessment.TransactionRisk
	if err := c.post(ctx, "/api/v1/transactions/assess", assessRequest{Entities: entities}, &risk); err != nil {
		return nil, err
	}
	return &risk, nil
}

// GetAssessment fetches one persisted assessment by its ID.
func (c *Client) GetAssessment(ctx context.Context, id uuid.UUID) (*assessment.TransactionRisk, error) {
	var risk assessment.TransactionRisk
	if err := c.get(ctx, "/api/v1/assessments/"+id.String(), &risk); err != nil {
		return nil, err
	}
	return &risk, nil
}

// ListAssessments returns up to limit recent assessment summaries, newest
// first.  A non-positive limit uses the server default.
func (c *Client) ListAssessments(ctx context.Context, limit int) ([]assessment.Summary, error) {
	path := "/api/v1/assessments"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var resp listResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Assessments, nil
}

// Ready probes the server's readiness endpoint.
func (c *Client) Ready(ctx context.Context) error {
	return c.get(ctx, "/readyz", nil)
}

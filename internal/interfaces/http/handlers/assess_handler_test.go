package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

type mockAssessor struct {
	assessFn func(ctx context.Context, entities []entity.ExtractedEntity) (*entity.TransactionRisk, error)
}

func (m *mockAssessor) AssessTransaction(ctx context.Context, entities []entity.ExtractedEntity) (*entity.TransactionRisk, error) {
	if m.assessFn != nil {
		return m.assessFn(ctx, entities)
	}
	return &entity.TransactionRisk{ID: uuid.New()}, nil
}

func performRequest(h gin.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h(c)
	return w
}

func TestAssess_ReturnsRisk(t *testing.T) {
	var gotEntities []entity.ExtractedEntity
	assessor := &mockAssessor{
		assessFn: func(_ context.Context, entities []entity.ExtractedEntity) (*entity.TransactionRisk, error) {
			gotEntities = entities
			return &entity.TransactionRisk{
				ID:        uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
				RiskScore: 0.42,
				Entities:  []string{"Acme Holdings"},
			}, nil
		},
	}
	h := NewAssessHandler(assessor, logging.NewNopLogger())

	w := performRequest(h.Assess, "POST", "/api/v1/transactions/assess",
		`{"entities":[{"name":"Acme Holdings","type":"organization","place":"Panama"}]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if len(gotEntities) != 1 || gotEntities[0].Name != "Acme Holdings" || gotEntities[0].Place != "Panama" {
		t.Errorf("entities passed to assessor = %+v", gotEntities)
	}

	var resp entity.TransactionRisk
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.RiskScore != 0.42 {
		t.Errorf("RiskScore = %v, want 0.42", resp.RiskScore)
	}
}

func TestAssess_MalformedBody(t *testing.T) {
	h := NewAssessHandler(&mockAssessor{}, logging.NewNopLogger())

	w := performRequest(h.Assess, "POST", "/api/v1/transactions/assess", `{"entities": [`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if resp.Code != string(errors.ErrCodeBadRequest) {
		t.Errorf("error code = %q", resp.Code)
	}
}

func TestAssess_EmptyTransaction(t *testing.T) {
	assessor := &mockAssessor{
		assessFn: func(context.Context, []entity.ExtractedEntity) (*entity.TransactionRisk, error) {
			return nil, errors.New(errors.ErrCodeTransactionEmpty, "transaction carries no entities")
		},
	}
	h := NewAssessHandler(assessor, logging.NewNopLogger())

	w := performRequest(h.Assess, "POST", "/api/v1/transactions/assess", `{"entities":[]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if resp.Code != "TXN_001" {
		t.Errorf("error code = %q, want TXN_001", resp.Code)
	}
	if resp.Message != "transaction carries no entities" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestAssess_PipelineFailureMapsToStatus(t *testing.T) {
	assessor := &mockAssessor{
		assessFn: func(context.Context, []entity.ExtractedEntity) (*entity.TransactionRisk, error) {
			return nil, errors.New(errors.ErrCodeGraphUnavailable, "relationship store unreachable")
		},
	}
	h := NewAssessHandler(assessor, logging.NewNopLogger())

	w := performRequest(h.Assess, "POST", "/api/v1/transactions/assess",
		`{"entities":[{"name":"Acme","type":"organization"}]}`)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestAssess_UnclassifiedErrorHidesDetail(t *testing.T) {
	assessor := &mockAssessor{
		assessFn: func(context.Context, []entity.ExtractedEntity) (*entity.TransactionRisk, error) {
			return nil, context.DeadlineExceeded
		},
	}
	h := NewAssessHandler(assessor, logging.NewNopLogger())

	w := performRequest(h.Assess, "POST", "/api/v1/transactions/assess",
		`{"entities":[{"name":"Acme","type":"organization"}]}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if resp.Message != "internal server error" {
		t.Errorf("message = %q, must not leak internals", resp.Message)
	}
}

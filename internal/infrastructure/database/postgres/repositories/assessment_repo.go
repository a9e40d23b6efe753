// Package repositories implements the assessment audit store: every
// transaction-level risk verdict is persisted with its full per-entity result
// payload for later review.
package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// querier is the slice of pgxpool.Pool the repository needs; satisfied by a
// pool, a tx, or a test fake.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconnCommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// pgconnCommandTag avoids importing pgconn just for the Exec return type.
type pgconnCommandTag interface {
	RowsAffected() int64
}

// poolQuerier adapts *pgxpool.Pool to querier.
type poolQuerier struct {
	pool *pgxpool.Pool
}

func (p poolQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconnCommandTag, error) {
	tag, err := p.pool.Exec(ctx, sql, args...)
	return tag, err
}

func (p poolQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

func (p poolQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

// AssessmentRepository persists and retrieves transaction risk verdicts.
type AssessmentRepository struct {
	db     querier
	logger logging.Logger
}

// NewAssessmentRepository builds a repository over a connection pool.
func NewAssessmentRepository(pool *pgxpool.Pool, log logging.Logger) *AssessmentRepository {
	return newAssessmentRepository(poolQuerier{pool: pool}, log)
}

func newAssessmentRepository(db querier, log logging.Logger) *AssessmentRepository {
	return &AssessmentRepository{db: db, logger: log.Named("assessment_repo")}
}

// AssessmentSummary is one audit listing row; the full payload is fetched by
// ID.
type AssessmentSummary struct {
	ID              uuid.UUID `json:"id"`
	RiskScore       float64   `json:"risk_score"`
	ConfidenceScore float64   `json:"confidence_score"`
	Entities        []string  `json:"entities"`
	AssessedAt      string    `json:"assessed_at"`
}

// Save stores a transaction risk verdict with its full result payload.
func (r *AssessmentRepository) Save(ctx context.Context, risk *entity.TransactionRisk) error {
	payload, err := json.Marshal(risk)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal assessment")
	}

	const q = `
		INSERT INTO assessments (id, risk_score, confidence_score, entities, result, assessed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`

	tag, err := r.db.Exec(ctx, q,
		risk.ID, risk.RiskScore, risk.ConfidenceScore, risk.Entities, payload, risk.AssessedAt)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to persist assessment")
	}
	if tag.RowsAffected() == 0 {
		// Duplicate delivery of the same assessment event; already stored.
		r.logger.Debug("assessment already persisted", logging.String("id", risk.ID.String()))
	}
	return nil
}

// GetByID fetches one full assessment payload.
func (r *AssessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TransactionRisk, error) {
	const q = `SELECT result FROM assessments WHERE id = $1`

	var payload []byte
	if err := r.db.QueryRow(ctx, q, id).Scan(&payload); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New(errors.ErrCodeAssessmentNotFound, "assessment not found").
				WithDetail(id.String())
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load assessment")
	}

	var risk entity.TransactionRisk
	if err := json.Unmarshal(payload, &risk); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to unmarshal assessment")
	}
	return &risk, nil
}

// ListRecent returns the newest assessments, most recent first.
func (r *AssessmentRepository) ListRecent(ctx context.Context, limit int) ([]AssessmentSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
		SELECT id, risk_score, confidence_score, entities, assessed_at::text
		FROM assessments
		ORDER BY assessed_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list assessments")
	}
	defer rows.Close()

	var out []AssessmentSummary
	for rows.Next() {
		var s AssessmentSummary
		if err := rows.Scan(&s.ID, &s.RiskScore, &s.ConfidenceScore, &s.Entities, &s.AssessedAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan assessment row")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "assessment listing failed")
	}
	return out, nil
}

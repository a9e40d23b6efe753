package risk

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/sanctions"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

type mockIndex struct {
	searchFn func(ctx context.Context, vec []float32, topN int) ([]sanctions.Candidate, error)
}

func (m *mockIndex) Search(ctx context.Context, vec []float32, topN int) ([]sanctions.Candidate, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, vec, topN)
	}
	return nil, nil
}

func (m *mockIndex) Size() int { return 0 }

func sanctionedRecord(name, program, info string) sanctions.Record {
	return sanctions.Record{
		ID:              "1001",
		Name:            name,
		Type:            "individual",
		SanctionProgram: program,
		AdditionalInfo:  info,
		OtherInfo:       "-0-",
	}
}

func TestSanctionsScore_NoQualifyingCandidates(t *testing.T) {
	idx := &mockIndex{
		searchFn: func(context.Context, []float32, int) ([]sanctions.Candidate, error) {
			return []sanctions.Candidate{
				{Record: sanctionedRecord("SOMEONE ELSE", "SDGT", "-0-"), Similarity: 0.62},
			}, nil
		},
	}
	s := NewSanctionsRiskScorer(&mockEncoder{fallback: []float32{1, 0}}, idx, logging.NewNopLogger())

	got, err := s.Score(context.Background(), "Clean Corp")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got.RiskScore != 0 {
		t.Errorf("RiskScore = %v, want 0", got.RiskScore)
	}
	if got.ConfidenceScore != 1 {
		t.Errorf("ConfidenceScore = %v, want 1", got.ConfidenceScore)
	}
}

func TestSanctionsScore_BlendedScore(t *testing.T) {
	idx := &mockIndex{
		searchFn: func(_ context.Context, _ []float32, topN int) ([]sanctions.Candidate, error) {
			if topN != 3 {
				t.Fatalf("topN = %d, want 3", topN)
			}
			return []sanctions.Candidate{
				{Record: sanctionedRecord("IVANOV, Sergei", "SDGT", "-0-"), Similarity: 0.9},
			}, nil
		},
	}
	s := NewSanctionsRiskScorer(&mockEncoder{fallback: []float32{1, 0}}, idx, logging.NewNopLogger())

	got, err := s.Score(context.Background(), "Sergei Ivanov")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// 0.4*0.9 + 0.35*(0.95/0.95) + 0.15*0 + 0.1*0 = 0.71.
	if got.RiskScore != 0.71 {
		t.Errorf("RiskScore = %v, want 0.71", got.RiskScore)
	}
	if math.Abs(got.ConfidenceScore-0.9) > 1e-9 {
		t.Errorf("ConfidenceScore = %v, want 0.9", got.ConfidenceScore)
	}
	if !strings.Contains(got.Reason, "IVANOV, Sergei") {
		t.Errorf("Reason %q missing matched name", got.Reason)
	}
}

func TestSanctionsScore_MaxAcrossCandidates(t *testing.T) {
	idx := &mockIndex{
		searchFn: func(context.Context, []float32, int) ([]sanctions.Candidate, error) {
			return []sanctions.Candidate{
				{Record: sanctionedRecord("WEAK MATCH CO", "", "-0-"), Similarity: 0.8},
				{Record: sanctionedRecord("STRONG MATCH CO", "SDGT", "linked to terrorist financing"), Similarity: 0.85},
			}, nil
		},
	}
	s := NewSanctionsRiskScorer(&mockEncoder{fallback: []float32{1, 0}}, idx, logging.NewNopLogger())

	got, err := s.Score(context.Background(), "Match Co")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// Weak candidate: 0.4*0.8 = 0.32.  Strong candidate adds full program
	// weight plus keyword and sentiment signals, so it dominates.
	if got.RiskScore <= 0.32 {
		t.Errorf("RiskScore = %v, want dominated by the strong candidate", got.RiskScore)
	}
	// Confidence is the mean similarity of both qualifying candidates.
	if math.Abs(got.ConfidenceScore-0.825) > 1e-9 {
		t.Errorf("ConfidenceScore = %v, want 0.825", got.ConfidenceScore)
	}
	if !strings.Contains(got.Reason, "; ") {
		t.Errorf("Reason should concatenate both candidates: %q", got.Reason)
	}
}

func TestSanctionsScore_RiskWithinUnitRange(t *testing.T) {
	idx := &mockIndex{
		searchFn: func(context.Context, []float32, int) ([]sanctions.Candidate, error) {
			return []sanctions.Candidate{
				{Record: sanctionedRecord("WORST CASE", "SDGT IRGC",
					"terrorist fraud money laundering criminal drug weapons russia china pakistan seized frozen illegal"),
					Similarity: 0.999},
			}, nil
		},
	}
	s := NewSanctionsRiskScorer(&mockEncoder{fallback: []float32{1, 0}}, idx, logging.NewNopLogger())

	got, err := s.Score(context.Background(), "Worst Case")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got.RiskScore < 0 || got.RiskScore > 1 {
		t.Errorf("RiskScore = %v, want within [0,1]", got.RiskScore)
	}
	if got.RiskScore < 0.9 {
		t.Errorf("RiskScore = %v, want near the top of the range", got.RiskScore)
	}
}

func TestSanctionsScore_EncoderFailurePropagates(t *testing.T) {
	s := NewSanctionsRiskScorer(
		&mockEncoder{err: errors.New(errors.ErrCodeEmbeddingFailed, "encoder down")},
		&mockIndex{}, logging.NewNopLogger())

	_, err := s.Score(context.Background(), "Any Corp")
	if !errors.IsCode(err, errors.ErrCodeEmbeddingFailed) {
		t.Fatalf("err = %v, want SANC_003", err)
	}
}

func TestSanctionsScore_IndexFailurePropagates(t *testing.T) {
	idx := &mockIndex{
		searchFn: func(context.Context, []float32, int) ([]sanctions.Candidate, error) {
			return nil, errors.New(errors.ErrCodeVectorSearchFailed, "index down")
		},
	}
	s := NewSanctionsRiskScorer(&mockEncoder{fallback: []float32{1, 0}}, idx, logging.NewNopLogger())

	_, err := s.Score(context.Background(), "Any Corp")
	if !errors.IsCode(err, errors.ErrCodeVectorSearchFailed) {
		t.Fatalf("err = %v, want SANC_004", err)
	}
}

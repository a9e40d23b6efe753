package risk

import (
	"context"
	"strings"
	"testing"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/neo4j/repositories"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

type mockTraverser struct {
	traverseFn func(ctx context.Context, name string, category entity.NodeCategory) ([]repositories.Connection, error)
}

func (m *mockTraverser) TraverseNeighborhood(ctx context.Context, name string, category entity.NodeCategory) ([]repositories.Connection, error) {
	if m.traverseFn != nil {
		return m.traverseFn(ctx, name, category)
	}
	return nil, nil
}

func matchedOrg(name, matched string) entity.MatchedEntity {
	return entity.MatchedEntity{
		Name:        name,
		Type:        "organization",
		MatchedName: matched,
		MatchedType: entity.CategoryEntity,
		Confidence:  0.93,
	}
}

func TestNetworkScore_UnmatchedEntity(t *testing.T) {
	s := NewNetworkRiskScorer(&mockTraverser{
		traverseFn: func(context.Context, string, entity.NodeCategory) ([]repositories.Connection, error) {
			t.Fatal("traversal must not run for an unmatched entity")
			return nil, nil
		},
	}, logging.NewNopLogger())

	got, err := s.Score(context.Background(), entity.MatchedEntity{
		Name: "Ghost Corp", Type: "organization",
		MatchedType: entity.CategoryEntity, Confidence: 1,
	})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got.RiskScore != 0 {
		t.Errorf("RiskScore = %v, want 0", got.RiskScore)
	}
	if len(got.RelationshipsSummary) != 0 {
		t.Errorf("RelationshipsSummary = %v, want empty", got.RelationshipsSummary)
	}
	if got.ConfidenceScore != 1 {
		t.Errorf("ConfidenceScore = %v, want 1", got.ConfidenceScore)
	}
}

func TestNetworkScore_SingleIntermediaryDepthZero(t *testing.T) {
	s := NewNetworkRiskScorer(&mockTraverser{
		traverseFn: func(_ context.Context, name string, _ entity.NodeCategory) ([]repositories.Connection, error) {
			if name != "Acme Holdings" {
				t.Fatalf("traversed %q, want matched name", name)
			}
			return []repositories.Connection{{
				ConnectedEntity:   "Fast Shipping SA",
				Source:            "Panama Papers",
				RelationshipTypes: []string{"intermediary_of"},
				Labels:            []string{"Intermediary"},
				Depth:             0,
			}}, nil
		},
	}, logging.NewNopLogger())

	got, err := s.Score(context.Background(), matchedOrg("ACME", "Acme Holdings"))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// 2.5/(0+1) normalized by 7.0*5 = 0.0714..., rounded to 3 decimals.
	if got.RiskScore != 0.071 {
		t.Errorf("RiskScore = %v, want 0.071", got.RiskScore)
	}
	if len(got.RelationshipsSummary) != 1 {
		t.Fatalf("RelationshipsSummary len = %d, want 1", len(got.RelationshipsSummary))
	}
	for _, want := range []string{"Fast Shipping SA", "Panama Papers", "intermediary_of", "Depth: 0"} {
		if !strings.Contains(got.RelationshipsSummary[0], want) {
			t.Errorf("summary %q missing %q", got.RelationshipsSummary[0], want)
		}
	}
}

func TestNetworkScore_DepthDiscountsContribution(t *testing.T) {
	scoreAtDepth := func(depth int) float64 {
		s := NewNetworkRiskScorer(&mockTraverser{
			traverseFn: func(context.Context, string, entity.NodeCategory) ([]repositories.Connection, error) {
				return []repositories.Connection{{
					ConnectedEntity:   "Hop",
					RelationshipTypes: []string{"officer_of"},
					Depth:             depth,
				}}, nil
			},
		}, logging.NewNopLogger())
		got, err := s.Score(context.Background(), matchedOrg("A", "A"))
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		return got.RiskScore
	}

	if !(scoreAtDepth(0) > scoreAtDepth(1) && scoreAtDepth(1) > scoreAtDepth(3)) {
		t.Errorf("deeper paths must contribute strictly less: %v %v %v",
			scoreAtDepth(0), scoreAtDepth(1), scoreAtDepth(3))
	}
}

func TestNetworkScore_UnknownRelationshipDefaultWeight(t *testing.T) {
	s := NewNetworkRiskScorer(&mockTraverser{
		traverseFn: func(context.Context, string, entity.NodeCategory) ([]repositories.Connection, error) {
			return []repositories.Connection{{
				ConnectedEntity:   "B",
				RelationshipTypes: []string{"linked_to"},
				Depth:             0,
			}}, nil
		},
	}, logging.NewNopLogger())

	got, err := s.Score(context.Background(), matchedOrg("A", "A"))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// 1.0/1/35 = 0.0286 rounded.
	if got.RiskScore != 0.029 {
		t.Errorf("RiskScore = %v, want 0.029", got.RiskScore)
	}
}

func TestNetworkScore_SaturatesAtOne(t *testing.T) {
	dense := make([]repositories.Connection, 20)
	for i := range dense {
		dense[i] = repositories.Connection{
			ConnectedEntity:   "Hub",
			RelationshipTypes: []string{"intermediary_of", "officer_of", "intermediary_of"},
			Depth:             0,
		}
	}
	s := NewNetworkRiskScorer(&mockTraverser{
		traverseFn: func(context.Context, string, entity.NodeCategory) ([]repositories.Connection, error) {
			return dense, nil
		},
	}, logging.NewNopLogger())

	got, err := s.Score(context.Background(), matchedOrg("A", "A"))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got.RiskScore != 1 {
		t.Errorf("RiskScore = %v, want clamped to 1", got.RiskScore)
	}
}

func TestNetworkScore_TraversalFailurePropagates(t *testing.T) {
	s := NewNetworkRiskScorer(&mockTraverser{
		traverseFn: func(context.Context, string, entity.NodeCategory) ([]repositories.Connection, error) {
			return nil, errors.New(errors.ErrCodeTraversalFailed, "store down")
		},
	}, logging.NewNopLogger())

	_, err := s.Score(context.Background(), matchedOrg("A", "A"))
	if !errors.IsCode(err, errors.ErrCodeTraversalFailed) {
		t.Fatalf("err = %v, want NET_002", err)
	}
}

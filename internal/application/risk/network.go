package risk

import (
	"context"
	"fmt"
	"math"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/neo4j/repositories"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

// relationshipWeights assigns a base risk weight per relationship kind.
// Intermediary chains carry the strongest signal; name similarity the weakest.
var relationshipWeights = map[string]float64{
	"officer_of":         2.0,
	"registered_address": 1.5,
	"intermediary_of":    2.5,
	"similar":            1.0,
}

const defaultRelationshipWeight = 1.0

// maxNetworkScore normalizes the accumulated weight sum.  Depth factor 5:
// a denser neighborhood than that indicates a layered network and saturates
// the score.
var maxNetworkScore = func() float64 {
	var sum float64
	for _, w := range relationshipWeights {
		sum += w
	}
	return sum * 5
}()

// neighborhoodTraverser is the slice of the relationship repository the
// network scorer needs.
type neighborhoodTraverser interface {
	TraverseNeighborhood(ctx context.Context, name string, category entity.NodeCategory) ([]repositories.Connection, error)
}

// NetworkRiskScorer derives risk from the matched entity's relationship
// neighborhood.
type NetworkRiskScorer struct {
	traverser neighborhoodTraverser
	logger    logging.Logger
}

// NewNetworkRiskScorer builds a scorer over the given traverser.
func NewNetworkRiskScorer(traverser neighborhoodTraverser, log logging.Logger) *NetworkRiskScorer {
	return &NetworkRiskScorer{
		traverser: traverser,
		logger:    log.Named("network_scorer"),
	}
}

// Score computes the network risk for one matched entity.  An unmatched
// entity has no neighborhood: risk 0 with no evidence.  Each relationship on
// a path contributes weight/(depth+1); the sum is normalized, clamped to 1,
// and rounded to 3 decimals.
func (s *NetworkRiskScorer) Score(ctx context.Context, matched entity.MatchedEntity) (entity.NetworkRiskResult, error) {
	result := entity.NetworkRiskResult{
		Name:            matched.Name,
		Type:            matched.Type,
		MatchedName:     matched.MatchedName,
		MatchedType:     matched.MatchedType,
		ConfidenceScore: matched.Confidence,
	}
	if !matched.IsMatched() {
		return result, nil
	}

	connections, err := s.traverser.TraverseNeighborhood(ctx, matched.MatchedName, matched.MatchedType)
	if err != nil {
		return entity.NetworkRiskResult{}, err
	}

	var raw float64
	summary := make([]string, 0, len(connections))
	for _, conn := range connections {
		for _, rel := range conn.RelationshipTypes {
			weight, ok := relationshipWeights[rel]
			if !ok {
				weight = defaultRelationshipWeight
			}
			raw += weight / float64(conn.Depth+1)
		}
		summary = append(summary, fmt.Sprintf(
			"Entity: %s | Label: %v | Source: %s | Relationship Path: %v | Depth: %d",
			conn.ConnectedEntity, conn.Labels, conn.Source, conn.RelationshipTypes, conn.Depth))
	}

	result.RiskScore = round3(math.Min(raw/maxNetworkScore, 1))
	result.RelationshipsSummary = summary
	return result, nil
}

// round3 rounds to 3 decimal places; all published risk scores use it.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

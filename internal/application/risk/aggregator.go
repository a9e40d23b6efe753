package risk

import (
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
)

// Cross-domain blend weights.  Graph structure dominates; the sanctions list
// is a strong signal; open-knowledge reputation refines.
const (
	blendNetwork    = 0.5
	blendSanctions  = 0.35
	blendReputation = 0.15
)

// mergeEntityRisk folds the three domain results for one entity into its
// overall risk and confidence.  Reputation values are rescaled from 0-100 to
// [0,1] before blending.
func mergeEntityRisk(name string, network entity.NetworkRiskResult, sanctions entity.SanctionsRiskResult, reputation entity.ReputationRiskResult) entity.PerEntityRisk {
	overall := blendNetwork*network.RiskScore +
		blendSanctions*sanctions.RiskScore +
		blendReputation*float64(reputation.RiskScore)/100

	confidence := (network.ConfidenceScore +
		sanctions.ConfidenceScore +
		float64(reputation.Confidence)/100) / 3

	return entity.PerEntityRisk{
		Name:              name,
		Network:           network,
		Sanctions:         sanctions,
		Reputation:        reputation,
		OverallRisk:       round3(overall),
		OverallConfidence: round3(confidence),
	}
}

// aggregateTransaction rolls the per-entity records up to the transaction
// verdict: the riskiest entity sets the risk, confidence is the mean.
func aggregateTransaction(entityRisks []entity.PerEntityRisk) *entity.TransactionRisk {
	risk := &entity.TransactionRisk{
		ID:          uuid.New(),
		EntityRisks: entityRisks,
		AssessedAt:  time.Now().UTC(),
	}

	var confidenceSum float64
	for _, er := range entityRisks {
		risk.Entities = append(risk.Entities, er.Name)
		risk.NetworkResults = append(risk.NetworkResults, er.Network)
		risk.SanctionsResults = append(risk.SanctionsResults, er.Sanctions)
		risk.ReputationResults = append(risk.ReputationResults, er.Reputation)

		if er.OverallRisk > risk.RiskScore {
			risk.RiskScore = er.OverallRisk
		}
		confidenceSum += er.OverallConfidence
	}
	if len(entityRisks) > 0 {
		risk.ConfidenceScore = round3(confidenceSum / float64(len(entityRisks)))
	}
	return risk
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// ─────────────────────────────────────────────────────────────────────────────
// Per-domain risk results
// ─────────────────────────────────────────────────────────────────────────────

// NetworkRiskResult carries the graph-derived risk for one entity.
type NetworkRiskResult struct {
	Name        string       `json:"name"`
	Type        EntityType   `json:"type"`
	MatchedName string       `json:"matched_name,omitempty"`
	MatchedType NodeCategory `json:"matched_type,omitempty"`

	// RiskScore is in [0,1], rounded to 3 decimal places.
	RiskScore float64 `json:"risk_score"`

	// RelationshipsSummary holds one descriptive evidence record per
	// connected node, ordered as returned by the traversal.  The records are
	// opaque audit text and are never machine-parsed downstream.
	RelationshipsSummary []string `json:"relationships_summary"`

	// ConfidenceScore is the match confidence carried over from the matcher.
	ConfidenceScore float64 `json:"confidence_score"`
}

// SanctionsRiskResult carries the sanctions-list risk for one entity.
type SanctionsRiskResult struct {
	Entity string `json:"entity"`

	// RiskScore is in [0,1].
	RiskScore float64 `json:"risk_score"`

	// Reason concatenates one human-readable explanation per qualifying
	// sanctions candidate.
	Reason string `json:"reason"`

	// ConfidenceScore is the mean raw similarity of the qualifying
	// candidates.  When no candidate qualifies it is 1: full confidence in
	// the absence of a match, not absence of data.
	ConfidenceScore float64 `json:"confidence_score"`
}

// NoSanctionsMatch returns the defined no-match default for an entity: zero
// risk at full confidence.
func NoSanctionsMatch(name string) SanctionsRiskResult {
	return SanctionsRiskResult{
		Entity:          name,
		RiskScore:       0,
		Reason:          "no sanctions list match above threshold",
		ConfidenceScore: 1,
	}
}

// RiskLevel is the categorical band of a reputation risk score.
type RiskLevel string

const (
	RiskLevelVeryLow RiskLevel = "Very Low"
	RiskLevelLow     RiskLevel = "Low"
	RiskLevelMedium  RiskLevel = "Medium"
	RiskLevelHigh    RiskLevel = "High"
)

// RiskLevelForScore maps a 0–100 reputation score to its band.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= 75:
		return RiskLevelHigh
	case score >= 50:
		return RiskLevelMedium
	case score >= 25:
		return RiskLevelLow
	default:
		return RiskLevelVeryLow
	}
}

// ComponentScore is one weighted component of a reputation assessment.
type ComponentScore struct {
	// Score is the component's raw value in [0,100].
	Score int `json:"score"`

	// Weight is the component's share of the total, in [0,1].
	Weight float64 `json:"weight"`

	// Factors lists the human-readable contributions that produced Score.
	Factors []string `json:"factors"`
}

// ReputationRiskResult carries the open-knowledge risk for one entity.
type ReputationRiskResult struct {
	Entity       string `json:"entity"`
	Jurisdiction string `json:"jurisdiction,omitempty"`

	// RiskScore is in [0,100].
	RiskScore int       `json:"risk_score"`
	RiskLevel RiskLevel `json:"risk_level"`

	// Confidence is in [0,100]: the percentage of attainable data-completeness
	// points given which knowledge sources responded.
	Confidence int `json:"confidence"`

	// RiskBreakdown maps component name (entity_structure, jurisdiction,
	// reputation, financial_transparency) to its score, weight, and factors.
	RiskBreakdown map[string]ComponentScore `json:"risk_breakdown"`

	// Evidence lists source references (URLs, article titles) backing the
	// assessment.
	Evidence []string `json:"evidence"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Aggregated results
// ─────────────────────────────────────────────────────────────────────────────

// PerEntityRisk merges the three domain results for one entity.  Every entity
// in the assessed transaction has exactly one PerEntityRisk record; a failed
// domain scorer contributes its defaulted result rather than an omitted field.
type PerEntityRisk struct {
	Name string `json:"name"`

	Network    NetworkRiskResult    `json:"network"`
	Sanctions  SanctionsRiskResult  `json:"sanctions"`
	Reputation ReputationRiskResult `json:"reputation"`

	// OverallRisk is 0.5*network + 0.35*sanctions + 0.15*(reputation/100).
	OverallRisk float64 `json:"overall_risk"`

	// OverallConfidence is the mean of the three domain confidences, with
	// reputation confidence rescaled from 0–100 to [0,1].  The three inputs
	// are not the same statistical quantity (raw similarity, candidate-set
	// similarity mean, completeness percentage); the documented formulas are
	// preserved as-is rather than reconciled.
	OverallConfidence float64 `json:"overall_confidence"`

	// ValidationError is set when the extracted entity was rejected at the
	// aggregator boundary; the per-domain results are then all defaults.
	ValidationError string `json:"validation_error,omitempty"`
}

// TransactionRisk is the transaction-level verdict.  Constructed once per
// assessed transaction and never mutated after return.
type TransactionRisk struct {
	// ID uniquely identifies the assessment for audit and event publication.
	ID uuid.UUID `json:"id"`

	// RiskScore is the maximum overall risk across the transaction's
	// entities: the riskiest entity dominates.
	RiskScore float64 `json:"risk_score"`

	// ConfidenceScore is the mean overall confidence across entities.
	ConfidenceScore float64 `json:"confidence_score"`

	// Entities lists the assessed entity names.
	Entities []string `json:"entities"`

	// EntityRisks holds the merged per-entity records, keyed in Entities
	// order.
	EntityRisks []PerEntityRisk `json:"entity_risks"`

	// NetworkResults, SanctionsResults, and ReputationResults are the raw
	// per-entity result sequences from the three domains.
	NetworkResults    []NetworkRiskResult    `json:"network_results"`
	SanctionsResults  []SanctionsRiskResult  `json:"ofac_results"`
	ReputationResults []ReputationRiskResult `json:"wiki_results"`

	// AssessedAt is the completion timestamp of the assessment.
	AssessedAt time.Time `json:"assessed_at"`
}

// Package assessment defines the wire types of the transaction risk API.
// They mirror the server's JSON encoding so that SDK consumers never import
// the server's internal packages.
package assessment

import (
	"time"

	"github.com/google/uuid"
)

// Entity is one transaction counterparty submitted for assessment.
type Entity struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Place string `json:"place,omitempty"`
}

// NetworkRisk is the relationship-graph exposure verdict for one entity.
type NetworkRisk struct {
	Name                 string   `json:"name"`
	Type                 string   `json:"type"`
	MatchedName          string   `json:"matched_name,omitempty"`
	MatchedType          string   `json:"matched_type,omitempty"`
	RiskScore            float64  `json:"risk_score"`
	RelationshipsSummary []string `json:"relationships_summary"`
	ConfidenceScore      float64  `json:"confidence_score"`
}

// SanctionsRisk is the sanctions-screening verdict for one entity.
type SanctionsRisk struct {
	Entity          string  `json:"entity"`
	RiskScore       float64 `json:"risk_score"`
	Reason          string  `json:"reason"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// ComponentScore is one weighted component of a reputation assessment.
type ComponentScore struct {
	Score   int      `json:"score"`
	Weight  float64  `json:"weight"`
	Factors []string `json:"factors"`
}

// ReputationRisk is the open-knowledge verdict for one entity.
type ReputationRisk struct {
	Entity        string                    `json:"entity"`
	Jurisdiction  string                    `json:"jurisdiction,omitempty"`
	RiskScore     int                       `json:"risk_score"`
	RiskLevel     string                    `json:"risk_level"`
	Confidence    int                       `json:"confidence"`
	RiskBreakdown map[string]ComponentScore `json:"risk_breakdown"`
	Evidence      []string                  `json:"evidence"`
}

// EntityRisk merges the three domain verdicts for one entity.
type EntityRisk struct {
	Name              string         `json:"name"`
	Network           NetworkRisk    `json:"network"`
	Sanctions         SanctionsRisk  `json:"sanctions"`
	Reputation        ReputationRisk `json:"reputation"`
	OverallRisk       float64        `json:"overall_risk"`
	OverallConfidence float64        `json:"overall_confidence"`
	ValidationError   string         `json:"validation_error,omitempty"`
}

// TransactionRisk is the transaction-level verdict.
type TransactionRisk struct {
	ID              uuid.UUID    `json:"id"`
	RiskScore       float64      `json:"risk_score"`
	ConfidenceScore float64      `json:"confidence_score"`
	Entities        []string     `json:"entities"`
	EntityRisks     []EntityRisk `json:"entity_risks"`
	AssessedAt      time.Time    `json:"assessed_at"`
}

// Summary is the condensed audit-store listing of one assessment.
type Summary struct {
	ID              uuid.UUID `json:"id"`
	RiskScore       float64   `json:"risk_score"`
	ConfidenceScore float64   `json:"confidence_score"`
	Entities        []string  `json:"entities"`
	AssessedAt      string    `json:"assessed_at"`
}

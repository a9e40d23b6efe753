// Package entity defines the value objects that flow through the
// financial-crime risk pipeline: extracted entities, graph match results, and
// the per-domain and per-transaction risk records.  All types here are created
// fresh per assessment and never mutated after construction; infrastructure
// concerns (graph queries, sanctions storage, persistence) live in separate
// adapter layers.
package entity

import (
	"strings"

	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Entity types and graph node categories
// ─────────────────────────────────────────────────────────────────────────────

// EntityType classifies an extracted entity as produced by the upstream
// extraction step.  The set is open-ended; unrecognized values are accepted
// and mapped to the default graph category.
type EntityType string

const (
	TypePerson       EntityType = "person"
	TypeIndividual   EntityType = "individual"
	TypeOrganization EntityType = "organization"
	TypeShellCompany EntityType = "shell_company"
	TypeIntermediary EntityType = "intermediary"
	TypeLocation     EntityType = "location"
	TypeAddress      EntityType = "address"
)

// NodeCategory identifies a node category in the relationship store.  Each
// category carries its own full-text index and its own match-acceptance
// threshold.
type NodeCategory string

const (
	CategoryEntity       NodeCategory = "Entity"
	CategoryOfficer      NodeCategory = "Officer"
	CategoryAddress      NodeCategory = "Address"
	CategoryIntermediary NodeCategory = "Intermediary"
)

// CategoryForType maps an extracted entity type to its relationship-store
// node category.  Unknown types default to CategoryEntity.
func CategoryForType(t EntityType) NodeCategory {
	switch EntityType(strings.ToLower(strings.TrimSpace(string(t)))) {
	case TypeOrganization, TypeShellCompany:
		return CategoryEntity
	case TypeIntermediary:
		return CategoryIntermediary
	case TypePerson, TypeIndividual:
		return CategoryOfficer
	case TypeLocation, TypeAddress:
		return CategoryAddress
	default:
		return CategoryEntity
	}
}

// MatchThreshold returns the embedding-similarity acceptance threshold for a
// node category.  Person names collide more often than organization names, so
// Officer matches require a stricter threshold.
func (c NodeCategory) MatchThreshold() float64 {
	if c == CategoryOfficer {
		return 0.9
	}
	return 0.75
}

// ─────────────────────────────────────────────────────────────────────────────
// Extracted entity
// ─────────────────────────────────────────────────────────────────────────────

// ExtractedEntity is the immutable input to the risk pipeline, produced by the
// upstream extraction step.
type ExtractedEntity struct {
	// Name is the free-text entity name as extracted.
	Name string `json:"name"`

	// Type is the extraction-time classification.
	Type EntityType `json:"type"`

	// Place optionally carries a jurisdiction or location string associated
	// with the entity, used by reputation scoring.
	Place string `json:"place,omitempty"`
}

// Validate checks that the entity carries the fields the pipeline requires.
// A failing entity is rejected individually at the aggregator boundary; other
// entities in the same transaction proceed.
func (e ExtractedEntity) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New(errors.ErrCodeEntityInvalid, "extracted entity has empty name")
	}
	if strings.TrimSpace(string(e.Type)) == "" {
		return errors.New(errors.ErrCodeEntityInvalid, "extracted entity has empty type").
			WithDetail("name=" + e.Name)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Matching
// ─────────────────────────────────────────────────────────────────────────────

// MatchCandidate is one full-text match result from the relationship store,
// re-scored by embedding similarity.  Ephemeral per matching call.
type MatchCandidate struct {
	// MatchedName is the candidate node's name or address.
	MatchedName string `json:"matched_name"`

	// Score is the embedding similarity between the query name and the
	// candidate name, in [0,1].
	Score float64 `json:"score"`
}

// MatchedEntity is the outcome of resolving an ExtractedEntity against the
// relationship store.  MatchedName == "" means no confident match was found;
// downstream scorers treat this as absence from the graph, not as an error.
type MatchedEntity struct {
	Name        string       `json:"name"`
	Type        EntityType   `json:"type"`
	MatchedName string       `json:"matched_name,omitempty"`
	MatchedType NodeCategory `json:"matched_type,omitempty"`

	// Confidence is the accepted candidate's similarity score.  When no match
	// was accepted it is 1: full confidence that the entity is absent from
	// the graph, mirroring the sanctions no-match default.
	Confidence float64 `json:"confidence"`
}

// IsMatched reports whether a confident graph match was found.
func (m MatchedEntity) IsMatched() bool {
	return m.MatchedName != ""
}

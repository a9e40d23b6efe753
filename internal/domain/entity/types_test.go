package entity

import (
	"testing"

	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

func TestCategoryForType(t *testing.T) {
	tests := []struct {
		in   EntityType
		want NodeCategory
	}{
		{TypeOrganization, CategoryEntity},
		{TypeShellCompany, CategoryEntity},
		{TypeIntermediary, CategoryIntermediary},
		{TypePerson, CategoryOfficer},
		{TypeIndividual, CategoryOfficer},
		{TypeLocation, CategoryAddress},
		{TypeAddress, CategoryAddress},
		{EntityType("Organization"), CategoryEntity}, // case-insensitive
		{EntityType("  person "), CategoryOfficer},   // whitespace tolerant
		{EntityType("vessel"), CategoryEntity},       // unknown defaults
		{EntityType(""), CategoryEntity},
	}
	for _, tt := range tests {
		if got := CategoryForType(tt.in); got != tt.want {
			t.Errorf("CategoryForType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchThreshold(t *testing.T) {
	if got := CategoryOfficer.MatchThreshold(); got != 0.9 {
		t.Errorf("Officer threshold = %v, want 0.9", got)
	}
	for _, c := range []NodeCategory{CategoryEntity, CategoryAddress, CategoryIntermediary} {
		if got := c.MatchThreshold(); got != 0.75 {
			t.Errorf("%s threshold = %v, want 0.75", c, got)
		}
	}
}

func TestExtractedEntity_Validate(t *testing.T) {
	valid := ExtractedEntity{Name: "Acme Holdings", Type: TypeOrganization}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid entity rejected: %v", err)
	}

	noName := ExtractedEntity{Type: TypeOrganization}
	if err := noName.Validate(); !errors.IsCode(err, errors.ErrCodeEntityInvalid) {
		t.Errorf("empty name: got %v, want ENT_001", err)
	}

	blankName := ExtractedEntity{Name: "   ", Type: TypePerson}
	if err := blankName.Validate(); !errors.IsCode(err, errors.ErrCodeEntityInvalid) {
		t.Errorf("blank name: got %v, want ENT_001", err)
	}

	noType := ExtractedEntity{Name: "Acme Holdings"}
	if err := noType.Validate(); !errors.IsCode(err, errors.ErrCodeEntityInvalid) {
		t.Errorf("empty type: got %v, want ENT_001", err)
	}
}

func TestMatchedEntity_IsMatched(t *testing.T) {
	m := MatchedEntity{Name: "Acme", MatchedName: "ACME HOLDINGS LTD", Confidence: 0.93}
	if !m.IsMatched() {
		t.Error("expected matched entity")
	}
	unmatched := MatchedEntity{Name: "Acme"}
	if unmatched.IsMatched() {
		t.Error("expected unmatched entity")
	}
}

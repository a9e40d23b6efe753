// Package sanctions defines the sanctions reference-set model: the SDN record
// schema, the lookup index contract, and the heuristic risk tables applied by
// the sanctions scorer.  Loading, embedding precomputation, and index
// implementations live under internal/infrastructure.
package sanctions

import (
	"context"
	"strings"
)

// Record is one sanctions reference entry.  The column set follows the SDN
// flat-file schema; vessel columns are carried through untouched for audit
// even though scoring only consumes Name, SanctionProgram, and the info text.
type Record struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	SanctionProgram string `json:"sanction_program"`
	AdditionalInfo  string `json:"additional_info"`
	CallSign        string `json:"call_sign"`
	VessType        string `json:"vess_type"`
	Tonnage         string `json:"tonnage"`
	GRT             string `json:"grt"`
	VessFlag        string `json:"vess_flag"`
	VessOwner       string `json:"vess_owner"`
	OtherInfo       string `json:"other_info"`

	// Embedding is the precomputed name embedding, built once at reference-set
	// preparation time and loaded read-only.
	Embedding []float32 `json:"-"`
}

// noDataMarker is the SDN flat-file placeholder for an absent field.
const noDataMarker = "-0-"

// InfoText returns the free-text notes used for sentiment and keyword
// analysis: AdditionalInfo concatenated with OtherInfo, with the flat-file
// no-data marker treated as empty.
func (r Record) InfoText() string {
	var b strings.Builder
	if r.AdditionalInfo != noDataMarker {
		b.WriteString(r.AdditionalInfo)
	}
	if r.OtherInfo != noDataMarker {
		b.WriteString(r.OtherInfo)
	}
	return b.String()
}

// Candidate is one index search hit: a reference record with its cosine
// similarity to the query embedding.
type Candidate struct {
	Record     Record
	Similarity float64
}

// Index is the lookup contract over the sanctions reference set.  Search
// returns the topN records most similar to the query embedding, ordered by
// similarity descending, without applying any acceptance threshold — the
// scorer owns thresholding.  Implementations must be safe for concurrent use;
// the reference set is read-only across assessments.
type Index interface {
	Search(ctx context.Context, embedding []float32, topN int) ([]Candidate, error)

	// Size reports the number of indexed records.
	Size() int
}

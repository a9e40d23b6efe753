// Package knowledge implements the open-knowledge source clients consumed by
// reputation scoring: encyclopedia lookups, structured-knowledge attributes,
// and news search.  Every client degrades to an explicit "unavailable" value
// on transport or protocol failure; none of them propagates an error that
// would abort an assessment.
package knowledge

import "context"

// WikipediaData is the encyclopedia lookup result.
type WikipediaData struct {
	// Exists reports whether a page for the queried title was found.  The
	// zero value is the documented "unavailable" state.
	Exists        bool   `json:"exists"`
	Title         string `json:"title,omitempty"`
	URL           string `json:"url,omitempty"`
	Extract       string `json:"extract,omitempty"`
	Controversial bool   `json:"controversial"`
}

// WikidataInfo is the structured-knowledge lookup result.  Slice fields hold
// item identifiers (or literal values) for each claimed property.
type WikidataInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	InstanceOf   []string `json:"instance_of,omitempty"`
	Industry     []string `json:"industry,omitempty"`
	Jurisdiction []string `json:"jurisdiction,omitempty"`
	Founded      []string `json:"founded,omitempty"`
	Website      []string `json:"website,omitempty"`
	RegisteredIn []string `json:"registered_in,omitempty"`
}

// NewsArticle is one news search hit.
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
}

// Provider is the contract reputation scoring depends on.  Implementations
// return (zero value, nil info, empty slice) respectively when a source has
// nothing or fails; errors are reserved for caller bugs, not source health.
type Provider interface {
	Wikipedia(ctx context.Context, entityName string) WikipediaData
	Wikidata(ctx context.Context, entityName string) *WikidataInfo
	News(ctx context.Context, entityName, jurisdiction string) []NewsArticle
}

// NarrativeProvider supplies free-text narrative about an entity, gathered by
// an out-of-process agent.  The risk engine only ever consumes the text; any
// rule-based, retrieval-based, or model-backed implementation satisfies the
// contract.
type NarrativeProvider interface {
	Lookup(ctx context.Context, entityName string) (string, error)
}

// NoNarrative is a NarrativeProvider that always reports no narrative.
type NoNarrative struct{}

func (NoNarrative) Lookup(context.Context, string) (string, error) { return "", nil }

// Package risk implements the transaction risk pipeline: entity resolution
// against the relationship store, the three domain scorers (network,
// sanctions, reputation), and the aggregation service that assembles a
// per-transaction verdict.
package risk

import (
	"context"
	"sort"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/neo4j/repositories"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/embedding"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

// nameSearcher is the slice of the relationship repository the matcher needs.
type nameSearcher interface {
	FullTextSearch(ctx context.Context, category entity.NodeCategory, name string) ([]repositories.FullTextHit, error)
}

// EntityMatcher resolves extracted entities to relationship-store nodes.  The
// lexical index narrows the candidate set; embedding similarity decides.
type EntityMatcher struct {
	searcher nameSearcher
	encoder  embedding.Encoder
	logger   logging.Logger
}

// NewEntityMatcher builds a matcher over the given searcher and encoder.
func NewEntityMatcher(searcher nameSearcher, encoder embedding.Encoder, log logging.Logger) *EntityMatcher {
	return &EntityMatcher{
		searcher: searcher,
		encoder:  encoder,
		logger:   log.Named("entity_matcher"),
	}
}

// Match resolves one extracted entity.  Candidates come from the category's
// full-text index, are re-scored by embedding similarity, and the best
// candidate above the category threshold wins.  No confident candidate means
// the entity is absent from the graph; that outcome carries confidence 1 and
// is not an error.
func (m *EntityMatcher) Match(ctx context.Context, ext entity.ExtractedEntity) (entity.MatchedEntity, error) {
	category := entity.CategoryForType(ext.Type)
	unmatched := entity.MatchedEntity{
		Name:        ext.Name,
		Type:        ext.Type,
		MatchedType: category,
		Confidence:  1,
	}

	hits, err := m.searcher.FullTextSearch(ctx, category, ext.Name)
	if err != nil {
		return entity.MatchedEntity{}, err
	}
	if len(hits) == 0 {
		m.logger.Debug("no lexical candidates",
			logging.String("entity", ext.Name), logging.String("category", string(category)))
		return unmatched, nil
	}

	candidates, err := m.rank(ctx, ext.Name, hits)
	if err != nil {
		return entity.MatchedEntity{}, err
	}

	threshold := category.MatchThreshold()
	for _, c := range candidates {
		if c.Score > threshold {
			return entity.MatchedEntity{
				Name:        ext.Name,
				Type:        ext.Type,
				MatchedName: c.MatchedName,
				MatchedType: category,
				Confidence:  c.Score,
			}, nil
		}
	}
	return unmatched, nil
}

// rank re-scores the lexical hits by embedding similarity to the query name,
// descending.
func (m *EntityMatcher) rank(ctx context.Context, name string, hits []repositories.FullTextHit) ([]entity.MatchCandidate, error) {
	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = h.Name
	}

	candidateVecs, err := m.encoder.EncodeBatch(ctx, names)
	if err != nil {
		return nil, err
	}
	queryVec, err := m.encoder.Encode(ctx, name)
	if err != nil {
		return nil, err
	}

	candidates := make([]entity.MatchCandidate, len(hits))
	for i, h := range hits {
		candidates[i] = entity.MatchCandidate{
			MatchedName: h.Name,
			Score:       embedding.CosineSimilarity(queryVec, candidateVecs[i]),
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates, nil
}

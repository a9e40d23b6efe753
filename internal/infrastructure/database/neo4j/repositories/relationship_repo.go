// Package repositories implements relationship-store access for the risk
// pipeline: per-category full-text name search and bounded neighborhood
// traversal.
package repositories

import (
	"context"
	"fmt"

	neo4jdriver "github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/neo4j"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// Traversal bounds.  A neighborhood is cut off at maxTraversalDepth hops and
// maxConnectedNodes connected nodes; deeper or wider structure does not add
// evidence.
const (
	maxTraversalDepth  = 10
	maxConnectedNodes  = 20
	fullTextResultSize = 5
)

// fullTextIndexes maps each node category to its full-text index name.
var fullTextIndexes = map[entity.NodeCategory]string{
	entity.CategoryEntity:       "entity_name_index",
	entity.CategoryOfficer:      "officer_name_index",
	entity.CategoryAddress:      "address_name_index",
	entity.CategoryIntermediary: "intermediary_name_index",
}

// FullTextHit is one lexical search result.
type FullTextHit struct {
	Name  string
	Score float64
}

// Connection is one traversal result: a node reachable from the start node,
// with its relationship path and depth.
type Connection struct {
	ConnectedEntity   string
	Source            string
	RelationshipTypes []string
	Labels            []string
	Depth             int
}

// graphExecutor is the slice of the driver the repository needs.
type graphExecutor interface {
	ExecuteRead(ctx context.Context, work func(neo4j.Transaction) (any, error)) (any, error)
}

// RelationshipRepository queries the relationship store.
type RelationshipRepository struct {
	driver graphExecutor
	logger logging.Logger
}

// NewRelationshipRepository builds a repository over the given driver.
func NewRelationshipRepository(driver graphExecutor, log logging.Logger) *RelationshipRepository {
	return &RelationshipRepository{
		driver: driver,
		logger: log.Named("relationship_repo"),
	}
}

// FullTextSearch returns the top lexical matches for name in the category's
// full-text index, ordered by lexical score descending.  An empty result is
// not an error.
func (r *RelationshipRepository) FullTextSearch(ctx context.Context, category entity.NodeCategory, name string) ([]FullTextHit, error) {
	indexName, ok := fullTextIndexes[category]
	if !ok {
		return nil, errors.New(errors.ErrCodeGraphIndexMissing,
			fmt.Sprintf("no full-text index for category %q", category))
	}

	// Address nodes carry their value in the address property.
	nameProp := "node.name"
	if category == entity.CategoryAddress {
		nameProp = "node.address"
	}

	cypher := fmt.Sprintf(`
		CALL db.index.fulltext.queryNodes($index, $name)
		YIELD node, score
		RETURN %s AS matched_name, score
		ORDER BY score DESC LIMIT %d`, nameProp, fullTextResultSize)

	result, err := r.driver.ExecuteRead(ctx, func(tx neo4j.Transaction) (any, error) {
		res, err := tx.Run(ctx, cypher, map[string]any{"index": indexName, "name": name})
		if err != nil {
			return nil, err
		}
		return neo4j.CollectRecords(ctx, res, func(rec *neo4jdriver.Record) (FullTextHit, error) {
			matched, _, err := neo4jdriver.GetRecordValue[string](rec, "matched_name")
			if err != nil {
				return FullTextHit{}, err
			}
			score, _, err := neo4jdriver.GetRecordValue[float64](rec, "score")
			if err != nil {
				return FullTextHit{}, err
			}
			return FullTextHit{Name: matched, Score: score}, nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFullTextFailed, "full-text search failed")
	}

	hits, _ := result.([]FullTextHit)
	return hits, nil
}

// TraverseNeighborhood walks outward from the named node along the four risk
// relationship kinds up to the depth and node bounds, returning one
// Connection per reachable node with its relationship path.
func (r *RelationshipRepository) TraverseNeighborhood(ctx context.Context, name string, category entity.NodeCategory) ([]Connection, error) {
	if _, ok := fullTextIndexes[category]; !ok {
		return nil, errors.New(errors.ErrCodeTraversalFailed,
			fmt.Sprintf("unknown node category %q", category))
	}

	// The category is validated against the fixed set above, so interpolating
	// it as a node label is safe; labels cannot be parameterized in Cypher.
	cypher := fmt.Sprintf(`
		MATCH path = (a:%s {name: $entity})-[r:officer_of|intermediary_of|registered_address|similar*..%d]-(b)
		WITH a, b, b.sourceID AS source, labels(b) AS node_labels,
		     [rel IN RELATIONSHIPS(path) | TYPE(rel)] AS relationship_types,
		     length(path) AS depth
		RETURN
			a.name AS entity,
			CASE WHEN 'Address' IN node_labels THEN b.address ELSE b.name END AS connected_entity,
			source,
			relationship_types,
			node_labels,
			depth
		LIMIT %d`, category, maxTraversalDepth, maxConnectedNodes)

	result, err := r.driver.ExecuteRead(ctx, func(tx neo4j.Transaction) (any, error) {
		res, err := tx.Run(ctx, cypher, map[string]any{"entity": name})
		if err != nil {
			return nil, err
		}
		return neo4j.CollectRecords(ctx, res, mapConnection)
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTraversalFailed, "neighborhood traversal failed")
	}

	conns, _ := result.([]Connection)
	return conns, nil
}

func mapConnection(rec *neo4jdriver.Record) (Connection, error) {
	conn := Connection{}

	if v, ok := valueByKey(rec, "connected_entity").(string); ok {
		conn.ConnectedEntity = v
	}
	if v, ok := valueByKey(rec, "source").(string); ok {
		conn.Source = v
	}
	conn.RelationshipTypes = stringSlice(valueByKey(rec, "relationship_types"))
	conn.Labels = stringSlice(valueByKey(rec, "node_labels"))
	if v, ok := valueByKey(rec, "depth").(int64); ok {
		conn.Depth = int(v)
	}
	return conn, nil
}

func valueByKey(rec *neo4jdriver.Record, key string) any {
	v, _ := rec.Get(key)
	return v
}

func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

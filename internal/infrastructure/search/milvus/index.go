// Package milvus implements the optional Milvus-backed sanctions name index.
// The in-memory index is the default; Milvus takes over when the reference
// set outgrows a linear scan (consolidated multi-list reference data runs to
// millions of names).  Milvus stores only (id, embedding); record metadata
// stays in process and is joined back by ID after the vector search.
package milvus

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	milvusentity "github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/turtacn/FinCrime-Intelligence/internal/config"
	"github.com/turtacn/FinCrime-Intelligence/internal/domain/sanctions"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

const (
	fieldID     = "record_id"
	fieldVector = "embedding"

	insertBatchSize = 1000
)

// milvusNewClient is a variable to allow mocking in tests.
var milvusNewClient = client.NewClient

// Index is a sanctions.Index backed by a Milvus collection with an HNSW
// index over inner-product similarity.
type Index struct {
	cli        client.Client
	collection string
	dim        int
	records    map[string]sanctions.Record
	logger     logging.Logger
}

// NewIndex connects to Milvus, (re)creates the sanctions collection, and
// bulk-loads records.
func NewIndex(ctx context.Context, cfg config.MilvusConfig, records []sanctions.Record, log logging.Logger) (*Index, error) {
	cli, err := milvusNewClient(ctx, client.Config{Address: cfg.Addr})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeVectorSearchFailed, "failed to connect to milvus")
	}

	idx := &Index{
		cli:        cli,
		collection: cfg.Collection,
		dim:        cfg.EmbeddingDim,
		records:    make(map[string]sanctions.Record, len(records)),
		logger:     log.Named("milvus_index"),
	}
	if err := idx.rebuild(ctx, records); err != nil {
		cli.Close()
		return nil, err
	}
	return idx, nil
}

// rebuild drops and recreates the collection, inserts all record embeddings,
// and loads the collection for search.
func (x *Index) rebuild(ctx context.Context, records []sanctions.Record) error {
	has, err := x.cli.HasCollection(ctx, x.collection)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeVectorSearchFailed, "failed to check milvus collection")
	}
	if has {
		if err := x.cli.DropCollection(ctx, x.collection); err != nil {
			return errors.Wrap(err, errors.ErrCodeVectorSearchFailed, "failed to drop stale collection")
		}
	}

	schema := milvusentity.NewSchema().
		WithName(x.collection).
		WithDescription("sanctions reference name embeddings").
		WithField(milvusentity.NewField().
			WithName(fieldID).
			WithDataType(milvusentity.FieldTypeVarChar).
			WithMaxLength(64).
			WithIsPrimaryKey(true)).
		WithField(milvusentity.NewField().
			WithName(fieldVector).
			WithDataType(milvusentity.FieldTypeFloatVector).
			WithDim(int64(x.dim)))

	if err := x.cli.CreateCollection(ctx, schema, 1); err != nil {
		return errors.Wrap(err, errors.ErrCodeVectorSearchFailed, "failed to create sanctions collection")
	}

	if err := x.insertAll(ctx, records); err != nil {
		return err
	}

	hnsw, err := milvusentity.NewIndexHNSW(milvusentity.IP, 16, 200)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeVectorSearchFailed, "failed to build hnsw index spec")
	}
	if err := x.cli.CreateIndex(ctx, x.collection, fieldVector, hnsw, false); err != nil {
		return errors.Wrap(err, errors.ErrCodeVectorSearchFailed, "failed to create vector index")
	}
	if err := x.cli.LoadCollection(ctx, x.collection, false); err != nil {
		return errors.Wrap(err, errors.ErrCodeVectorSearchFailed, "failed to load sanctions collection")
	}

	x.logger.Info("milvus sanctions index built",
		logging.String("collection", x.collection),
		logging.Int("records", len(x.records)))
	return nil
}

func (x *Index) insertAll(ctx context.Context, records []sanctions.Record) error {
	var ids []string
	var vectors [][]float32
	for _, rec := range records {
		if len(rec.Embedding) == 0 {
			continue
		}
		x.records[rec.ID] = rec
		ids = append(ids, rec.ID)
		vectors = append(vectors, rec.Embedding)
	}

	for start := 0; start < len(ids); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		idCol := milvusentity.NewColumnVarChar(fieldID, ids[start:end])
		vecCol := milvusentity.NewColumnFloatVector(fieldVector, x.dim, vectors[start:end])
		if _, err := x.cli.Insert(ctx, x.collection, "", idCol, vecCol); err != nil {
			return errors.Wrap(err, errors.ErrCodeVectorSearchFailed, "failed to insert sanctions vectors")
		}
	}
	return nil
}

// Search implements sanctions.Index over the Milvus collection.
func (x *Index) Search(ctx context.Context, vec []float32, topN int) ([]sanctions.Candidate, error) {
	if topN <= 0 || len(vec) == 0 {
		return nil, nil
	}

	sp, err := milvusentity.NewIndexHNSWSearchParam(64)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeVectorSearchFailed, "failed to build search params")
	}

	results, err := x.cli.Search(ctx, x.collection, nil, "", []string{fieldID},
		[]milvusentity.Vector{milvusentity.FloatVector(vec)},
		fieldVector, milvusentity.IP, topN, sp)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeVectorSearchFailed, "milvus search failed")
	}

	var candidates []sanctions.Candidate
	for _, result := range results {
		idCol, ok := result.IDs.(*milvusentity.ColumnVarChar)
		if !ok {
			return nil, errors.New(errors.ErrCodeVectorSearchFailed,
				fmt.Sprintf("unexpected id column type %T", result.IDs))
		}
		for i := 0; i < result.ResultCount; i++ {
			id, err := idCol.ValueByIdx(i)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeVectorSearchFailed, "failed to read result id")
			}
			rec, ok := x.records[id]
			if !ok {
				continue
			}
			candidates = append(candidates, sanctions.Candidate{
				Record:     rec,
				Similarity: float64(result.Scores[i]),
			})
		}
	}
	return candidates, nil
}

// Size reports the number of indexed records.
func (x *Index) Size() int { return len(x.records) }

// Close releases the Milvus connection.
func (x *Index) Close() error { return x.cli.Close() }

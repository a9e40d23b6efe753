package sanctions

import (
	"context"
	"sort"
	"sync"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/sanctions"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/embedding"
)

// MemoryIndex is the default sanctions.Index: a brute-force cosine scan over
// the in-memory reference set.  The SDN list is small enough (low tens of
// thousands of rows) that a linear scan beats maintaining a separate vector
// store; larger reference sets switch to the Milvus-backed index.
type MemoryIndex struct {
	mu      sync.RWMutex
	records []sanctions.Record
}

// NewMemoryIndex builds an index over records.
func NewMemoryIndex(records []sanctions.Record) *MemoryIndex {
	return &MemoryIndex{records: records}
}

// Search returns the topN records most similar to the query embedding,
// similarity descending.  No acceptance threshold is applied.
func (m *MemoryIndex) Search(ctx context.Context, vec []float32, topN int) ([]sanctions.Candidate, error) {
	if topN <= 0 || len(vec) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	candidates := make([]sanctions.Candidate, 0, len(m.records))
	for _, rec := range m.records {
		if len(rec.Embedding) == 0 {
			continue
		}
		candidates = append(candidates, sanctions.Candidate{
			Record:     rec,
			Similarity: embedding.CosineSimilarity(vec, rec.Embedding),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})
	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	return candidates, nil
}

// Size reports the number of indexed records.
func (m *MemoryIndex) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Replace swaps the reference set atomically.  Used by the file watcher on
// hot reload; in-flight searches finish against the old set.
func (m *MemoryIndex) Replace(records []sanctions.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = records
}

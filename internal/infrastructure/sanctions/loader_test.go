package sanctions

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/turtacn/FinCrime-Intelligence/internal/domain/sanctions"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// stubEncoder returns deterministic unit vectors so similarity ordering in
// tests is predictable.
type stubEncoder struct {
	vectors map[string][]float32
	err     error
	calls   [][]string
}

func (s *stubEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.EncodeBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (s *stubEncoder) EncodeBatch(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.calls = append(s.calls, texts)
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := s.vectors[t]; ok {
			out[i] = v
		} else {
			out[i] = []float32{1, 0, 0}
		}
	}
	return out, nil
}

const sampleCSV = `1001,AEROCARIBBEAN AIRLINES,Entity,[CUBA],-0-,-0-,-0-,-0-,-0-,-0-,-0-,-0-
1002,ANGLO-CARIBBEAN CO. LTD.,Entity,[CUBA] [SDGT],linked to fraud,-0-,-0-,-0-,-0-,-0-,-0-,-0-
1003,,Entity,[SDGT],-0-,-0-,-0-,-0-,-0-,-0-,-0-,blank name row
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sdn.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_ParsesAndEmbeds(t *testing.T) {
	enc := &stubEncoder{vectors: map[string][]float32{
		"AEROCARIBBEAN AIRLINES":   {1, 0, 0},
		"ANGLO-CARIBBEAN CO. LTD.": {0, 1, 0},
	}}
	loader := NewLoader(enc, logging.NewNopLogger())

	records, err := loader.LoadFile(context.Background(), writeCSV(t, sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "1001", records[0].ID)
	assert.Equal(t, "AEROCARIBBEAN AIRLINES", records[0].Name)
	assert.Equal(t, "[CUBA]", records[0].SanctionProgram)
	assert.Equal(t, []float32{1, 0, 0}, records[0].Embedding)

	assert.Equal(t, "linked to fraud", records[1].AdditionalInfo)
	assert.Equal(t, []float32{0, 1, 0}, records[1].Embedding)

	// Blank name: no embedding, can never match.
	assert.Nil(t, records[2].Embedding)
}

func TestLoadFile_MissingFile(t *testing.T) {
	loader := NewLoader(&stubEncoder{}, logging.NewNopLogger())

	_, err := loader.LoadFile(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSanctionsSetUnavailable))
}

func TestLoadFile_MalformedRow(t *testing.T) {
	loader := NewLoader(&stubEncoder{}, logging.NewNopLogger())

	_, err := loader.LoadFile(context.Background(), writeCSV(t, "only,three,columns\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSanctionsSetMalformed))
}

func TestLoadFile_EncoderFailure(t *testing.T) {
	loader := NewLoader(&stubEncoder{
		err: errors.New(errors.ErrCodeEmbeddingFailed, "encoder down"),
	}, logging.NewNopLogger())

	_, err := loader.LoadFile(context.Background(), writeCSV(t, sampleCSV))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeEmbeddingFailed))
}

func TestLoadFile_BatchesLargeSets(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 150; i++ {
		b.WriteString("1,NAME,Entity,[SDGT],-0-,-0-,-0-,-0-,-0-,-0-,-0-,-0-\n")
	}
	enc := &stubEncoder{}
	loader := NewLoader(enc, logging.NewNopLogger())

	records, err := loader.LoadFile(context.Background(), writeCSV(t, b.String()))
	require.NoError(t, err)
	assert.Len(t, records, 150)
	// 150 names at batch size 64 → 3 encoder calls.
	assert.Len(t, enc.calls, 3)
}

func TestMemoryIndex_Search(t *testing.T) {
	idx := NewMemoryIndex([]domain.Record{
		{Name: "A", Embedding: []float32{1, 0, 0}},
		{Name: "B", Embedding: []float32{0.9, 0.1, 0}},
		{Name: "C", Embedding: []float32{0, 1, 0}},
		{Name: "no embedding"},
	})

	got, err := idx.Search(context.Background(), []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Record.Name)
	assert.InDelta(t, 1.0, got[0].Similarity, 1e-9)
	assert.Equal(t, "B", got[1].Record.Name)
	assert.Greater(t, got[0].Similarity, got[1].Similarity)
}

func TestMemoryIndex_SearchEdgeCases(t *testing.T) {
	idx := NewMemoryIndex(nil)

	got, err := idx.Search(context.Background(), []float32{1}, 3)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = idx.Search(context.Background(), nil, 3)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = idx.Search(context.Background(), []float32{1}, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryIndex_CancelledContext(t *testing.T) {
	idx := NewMemoryIndex([]domain.Record{{Name: "A", Embedding: []float32{1}}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := idx.Search(ctx, []float32{1}, 1)
	assert.Error(t, err)
}

func TestMemoryIndex_Replace(t *testing.T) {
	idx := NewMemoryIndex([]domain.Record{{Name: "old", Embedding: []float32{1}}})
	require.Equal(t, 1, idx.Size())

	idx.Replace([]domain.Record{
		{Name: "new-1", Embedding: []float32{1}},
		{Name: "new-2", Embedding: []float32{0.5}},
	})
	assert.Equal(t, 2, idx.Size())

	got, err := idx.Search(context.Background(), []float32{1}, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new-1", got[0].Record.Name)
}

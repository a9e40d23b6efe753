// Package sanctions loads the sanctions reference set from its CSV flat file,
// precomputes name embeddings through the encoder service, and serves
// similarity lookups through an in-memory index.  A file watcher rebuilds the
// index when the reference CSV changes on disk.
package sanctions

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/sanctions"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/embedding"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// csvColumns is the SDN flat-file column count.  The file carries no header
// row; columns are positional.
const csvColumns = 12

// encodeBatchSize bounds one encoder request during preparation.
const encodeBatchSize = 64

// Loader reads the reference CSV and precomputes name embeddings.
type Loader struct {
	encoder embedding.Encoder
	logger  logging.Logger
}

// NewLoader builds a Loader over the given encoder.
func NewLoader(encoder embedding.Encoder, log logging.Logger) *Loader {
	return &Loader{encoder: encoder, logger: log.Named("sanctions_loader")}
}

// LoadFile parses the CSV at path and embeds every record name.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]sanctions.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSanctionsSetUnavailable,
			fmt.Sprintf("cannot open sanctions reference file %q", path))
	}
	defer f.Close()

	records, err := l.parse(f)
	if err != nil {
		return nil, err
	}
	if err := l.embedNames(ctx, records); err != nil {
		return nil, err
	}

	l.logger.Info("loaded sanctions reference set",
		logging.String("path", path),
		logging.Int("records", len(records)))
	return records, nil
}

// parse reads positional CSV rows into records.  Rows with the wrong column
// count make the whole set malformed; a partially-loaded reference list would
// silently weaken screening.
func (l *Loader) parse(r io.Reader) ([]sanctions.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = csvColumns

	var records []sanctions.Record
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSanctionsSetMalformed,
				fmt.Sprintf("bad sanctions CSV row at line %d", line))
		}
		records = append(records, sanctions.Record{
			ID:              row[0],
			Name:            row[1],
			Type:            row[2],
			SanctionProgram: row[3],
			AdditionalInfo:  row[4],
			CallSign:        row[5],
			VessType:        row[6],
			Tonnage:         row[7],
			GRT:             row[8],
			VessFlag:        row[9],
			VessOwner:       row[10],
			OtherInfo:       row[11],
		})
	}
	return records, nil
}

// embedNames fills Embedding for every record with a non-blank name.  Records
// with blank names keep a nil embedding and never match anything.
func (l *Loader) embedNames(ctx context.Context, records []sanctions.Record) error {
	var names []string
	var indices []int
	for i, rec := range records {
		if strings.TrimSpace(rec.Name) != "" {
			names = append(names, strings.TrimSpace(rec.Name))
			indices = append(indices, i)
		}
	}

	for start := 0; start < len(names); start += encodeBatchSize {
		end := start + encodeBatchSize
		if end > len(names) {
			end = len(names)
		}
		vecs, err := l.encoder.EncodeBatch(ctx, names[start:end])
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeEmbeddingFailed,
				"failed to embed sanctions record names")
		}
		for i, vec := range vecs {
			records[indices[start+i]].Embedding = vec
		}
	}
	return nil
}

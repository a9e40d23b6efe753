// Package embedding provides the text-encoder client used by entity matching
// and sanctions scoring, plus the vector similarity primitives over its
// output.  The encoder service contract is numeric only: text in, fixed-width
// float vector out.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/turtacn/FinCrime-Intelligence/internal/config"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// Encoder turns text into fixed-width embedding vectors.
type Encoder interface {
	// Encode returns the embedding for a single text.
	Encode(ctx context.Context, text string) ([]float32, error)

	// EncodeBatch returns one embedding per input text, in input order.
	EncodeBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Client is an HTTP Encoder backed by a sentence-encoder service.
type Client struct {
	baseURL    string
	model      string
	dimension  int
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient builds an encoder client from configuration.
func NewClient(cfg config.EmbeddingConfig, log logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		dimension:  cfg.Dimension,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.Named("embedding"),
	}
}

type encodeRequest struct {
	Model string   `json:"model"`
	Texts []string `json:"texts"`
}

type encodeResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Encode returns the embedding for a single text.
func (c *Client) Encode(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.EncodeBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EncodeBatch posts texts to the encoder service and returns one vector per
// input text.
func (c *Client) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(encodeRequest{Model: c.model, Texts: texts})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/encode", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeEmbeddingFailed, "failed to build encode request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeEmbeddingFailed, "encoder service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.New(errors.ErrCodeEmbeddingFailed,
			fmt.Sprintf("encoder service returned status %d", resp.StatusCode)).
			WithDetail(string(payload))
	}

	var out encodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode encoder response")
	}
	if len(out.Embeddings) != len(texts) {
		return nil, errors.New(errors.ErrCodeEmbeddingFailed,
			fmt.Sprintf("encoder returned %d embeddings for %d texts", len(out.Embeddings), len(texts)))
	}
	if c.dimension > 0 {
		for i, v := range out.Embeddings {
			if len(v) != c.dimension {
				return nil, errors.New(errors.ErrCodeEmbeddingFailed,
					fmt.Sprintf("embedding %d has dimension %d, expected %d", i, len(v), c.dimension))
			}
		}
	}
	return out.Embeddings, nil
}

package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"polybot/internal/embedding"
)

// Encoder produces sentence embeddings through an OpenAI-compatible
// embeddings endpoint.
type Encoder struct {
	client    *openai.Client
	model     string
	timeout   time.Duration
	dimension atomic.Int64
}

// Config configures the OpenAI-compatible embeddings encoder.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewEncoder creates an embeddings encoder using the provided configuration.
func NewEncoder(cfg Config) (*Encoder, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	cc := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	return &Encoder{
		client:  openai.NewClientWithConfig(cc),
		model:   cfg.Model,
		timeout: t,
	}, nil
}

// Name returns the identifier of this encoder implementation.
func (e *Encoder) Name() string { return "openai-" + e.model }

// Prepare is a no-op for remote embedding; the dimension is set lazily on
// the first successful Embed call.
func (e *Encoder) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *Encoder) Dimension() int { return int(e.dimension.Load()) }

// Embed returns an L2-normalized embedding vector for the given text.
func (e *Encoder) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, errors.New("cannot embed empty text")
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("no embedding returned")
	}
	raw := resp.Data[0].Embedding
	vec := make([]float64, len(raw))
	for i, x := range raw {
		vec[i] = float64(x)
	}
	embedding.Normalize(vec)
	e.dimension.CompareAndSwap(0, int64(len(vec)))
	return vec, nil
}

// Package embeddings provides embedding generation over the OpenAI embeddings API.
package embeddings

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v2"

	"github.com/imfe-lab/aulalab/pkg/utils"
)

var (
	// ErrEmptyInput indicates empty or nil input texts
	ErrEmptyInput = errors.New("empty or nil input texts")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmbeddingFailed indicates embedding generation failure
	ErrEmbeddingFailed = errors.New("embedding generation failed")
)

// DefaultModel is used when no embedding model is configured
const DefaultModel = "text-embedding-3-small"

// Config holds configuration for the embedding service
type Config struct {
	// Model is the embedding model to use
	Model string
}

// ConfigFromEnv creates a Config from the application configuration
func ConfigFromEnv(cfg *utils.Config) Config {
	return Config{
		Model: cfg.GetWithDefault("EMBEDDING_MODEL", DefaultModel),
	}
}

// Validate validates the configuration
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("%w: model required", ErrInvalidConfig)
	}
	return nil
}

// Service generates embedding vectors through an OpenAI-compatible client
type Service struct {
	config Config
	client openai.Client
}

// NewService creates a new embedding service with the given configuration
func NewService(config Config, client openai.Client) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &Service{
		config: config,
		client: client,
	}, nil
}

// EmbedDocuments generates embeddings for multiple texts in one batched call.
// The call returns only once every vector has been computed, so callers never
// observe a partial batch.
func (s *Service) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: texts cannot be empty", ErrEmptyInput)
	}

	resp, err := s.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model: openai.EmbeddingModel(s.config.Model),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d vectors, got %d", ErrEmbeddingFailed, len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(texts) {
			return nil, fmt.Errorf("%w: vector index %d out of range", ErrEmbeddingFailed, d.Index)
		}
		vectors[d.Index] = toFloat32(d.Embedding)
	}

	return vectors, nil
}

// EmbedQuery generates an embedding for a single query text
func (s *Service) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text cannot be empty", ErrEmptyInput)
	}

	vectors, err := s.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	return vectors[0], nil
}

func toFloat32(vec []float64) []float32 {
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(v)
	}
	return out
}

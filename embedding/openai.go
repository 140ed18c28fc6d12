package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/smallnest/semrouter/router"
)

// Default dimensions of the OpenAI embedding models.
var openAIModelDimensions = map[openai.EmbeddingModel]int{
	openai.AdaEmbeddingV2:  1536,
	openai.SmallEmbedding3: 1536,
	openai.LargeEmbedding3: 3072,
}

// OpenAIEmbedder implements router.Embedder using the OpenAI embeddings API
// (or any compatible endpoint via a custom base URL).
type OpenAIEmbedder struct {
	client    *openai.Client
	model     openai.EmbeddingModel
	dimension int
}

var _ router.Embedder = (*OpenAIEmbedder)(nil)

// OpenAIOption configures an OpenAIEmbedder.
type OpenAIOption func(*openAIConfig)

type openAIConfig struct {
	baseURL   string
	model     openai.EmbeddingModel
	dimension int
}

// WithModel sets the embedding model, default text-embedding-3-small.
func WithModel(model openai.EmbeddingModel) OpenAIOption {
	return func(c *openAIConfig) {
		c.model = model
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(baseURL string) OpenAIOption {
	return func(c *openAIConfig) {
		c.baseURL = baseURL
	}
}

// WithDimensions requests reduced-dimension embeddings from models that
// support it, and overrides the dimension reported by GetDimension.
func WithDimensions(dimension int) OpenAIOption {
	return func(c *openAIConfig) {
		c.dimension = dimension
	}
}

// NewOpenAIEmbedder creates an embedder backed by the OpenAI API.
func NewOpenAIEmbedder(apiKey string, opts ...OpenAIOption) *OpenAIEmbedder {
	cfg := &openAIConfig{
		model: openai.SmallEmbedding3,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.baseURL != "" {
		clientConfig.BaseURL = cfg.baseURL
	}

	dimension := cfg.dimension
	if dimension == 0 {
		dimension = openAIModelDimensions[cfg.model]
	}

	return &OpenAIEmbedder{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.model,
		dimension: dimension,
	}
}

// EmbedDocument embeds a single text.
func (e *OpenAIEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedDocuments embeds a batch of texts in a single API call.
func (e *OpenAIEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	req := openai.EmbeddingRequest{
		Input: texts,
		Model: e.model,
	}
	// Dimensions is only honored by the v3 models; the API rejects it on
	// older ones, so send it only when explicitly configured.
	if e.dimension > 0 && e.dimension != openAIModelDimensions[e.model] {
		req.Dimensions = e.dimension
	}

	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai embeddings request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d texts", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		vectors[i] = data.Embedding
	}
	return vectors, nil
}

// GetDimension returns the embedding dimension of the configured model.
func (e *OpenAIEmbedder) GetDimension() int {
	return e.dimension
}

package embedding

import (
	"context"

	"github.com/tmc/langchaingo/embeddings"

	"github.com/smallnest/semrouter/router"
)

// LangChainEmbedder adapts langchaingo's embeddings.Embedder to the
// router.Embedder interface, opening the router to every provider
// langchaingo supports (Ollama, VertexAI, Hugging Face, ...).
type LangChainEmbedder struct {
	embedder embeddings.Embedder
}

var _ router.Embedder = (*LangChainEmbedder)(nil)

// NewLangChainEmbedder creates a new adapter for langchaingo embedders.
func NewLangChainEmbedder(embedder embeddings.Embedder) *LangChainEmbedder {
	return &LangChainEmbedder{
		embedder: embedder,
	}
}

// EmbedDocument embeds a single text using the underlying langchaingo
// embedder.
func (l *LangChainEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	vector, err := l.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	result := make([]float32, len(vector))
	for i, val := range vector {
		result[i] = float32(val)
	}
	return result, nil
}

// EmbedDocuments embeds a batch of texts using the underlying langchaingo
// embedder.
func (l *LangChainEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := l.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}

	result := make([][]float32, len(vectors))
	for i, vector := range vectors {
		result[i] = make([]float32, len(vector))
		for j, val := range vector {
			result[i][j] = float32(val)
		}
	}
	return result, nil
}

// GetDimension returns the embedding dimension. langchaingo embedders don't
// expose it directly, so it is probed with a throwaway embedding once.
func (l *LangChainEmbedder) GetDimension() int {
	probe, err := l.embedder.EmbedQuery(context.Background(), "dimension probe")
	if err != nil {
		return 0
	}
	return len(probe)
}

package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeLangChainEmbedder implements langchaingo's embeddings.Embedder.
type fakeLangChainEmbedder struct {
	dimension int
	err       error
}

func (f *fakeLangChainEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vector := make([]float32, f.dimension)
	for i := range vector {
		vector[i] = float32(len(text)+i) / 100
	}
	return vector, nil
}

func (f *fakeLangChainEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i], _ = f.EmbedQuery(ctx, text)
	}
	return vectors, nil
}

func TestLangChainEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds single text", func(t *testing.T) {
		embedder := NewLangChainEmbedder(&fakeLangChainEmbedder{dimension: 4})

		vector, err := embedder.EmbedDocument(ctx, "hello")
		assert.NoError(t, err)
		assert.Len(t, vector, 4)
	})

	t.Run("embeds batch", func(t *testing.T) {
		embedder := NewLangChainEmbedder(&fakeLangChainEmbedder{dimension: 4})

		vectors, err := embedder.EmbedDocuments(ctx, []string{"a", "b", "c"})
		assert.NoError(t, err)
		assert.Len(t, vectors, 3)
		for _, vector := range vectors {
			assert.Len(t, vector, 4)
		}
	})

	t.Run("probes dimension", func(t *testing.T) {
		embedder := NewLangChainEmbedder(&fakeLangChainEmbedder{dimension: 7})
		assert.Equal(t, 7, embedder.GetDimension())
	})

	t.Run("propagates provider errors", func(t *testing.T) {
		embedder := NewLangChainEmbedder(&fakeLangChainEmbedder{err: errors.New("provider unavailable")})

		_, err := embedder.EmbedDocument(ctx, "hello")
		assert.ErrorContains(t, err, "provider unavailable")

		_, err = embedder.EmbedDocuments(ctx, []string{"a"})
		assert.ErrorContains(t, err, "provider unavailable")

		// A failed probe reports an unknown dimension rather than panicking.
		assert.Equal(t, 0, embedder.GetDimension())
	})
}

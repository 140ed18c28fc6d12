package router

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// stubEmbedder returns hand-picked vectors per text so tests can control
// the similarity geometry exactly.
type stubEmbedder struct {
	dim     int
	vectors map[string][]float32
	err     error
	calls   int
}

func (e *stubEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	vector, ok := e.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no stub vector for %q", text)
	}
	return vector, nil
}

func (e *stubEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := e.EmbedDocument(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func (e *stubEmbedder) GetDimension() int { return e.dim }

// stubIndex is a minimal in-process VectorIndex for router tests.
type stubIndex struct {
	entries   []Entry
	dimension int
	failAfter int // fail the Nth Add call (1-based), 0 disables
	adds      int
}

func (idx *stubIndex) Add(ctx context.Context, entry Entry) error {
	idx.adds++
	if idx.failAfter > 0 && idx.adds >= idx.failAfter {
		return errors.New("index unavailable")
	}
	if idx.dimension == 0 {
		idx.dimension = len(entry.Vector)
	} else if len(entry.Vector) != idx.dimension {
		return fmt.Errorf("%w: got %d, index dimension is %d",
			ErrDimensionMismatch, len(entry.Vector), idx.dimension)
	}
	idx.entries = append(idx.entries, entry)
	return nil
}

func (idx *stubIndex) Search(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	if topK < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopK, topK)
	}
	matches := make([]Match, len(idx.entries))
	for i, entry := range idx.entries {
		matches[i] = Match{
			Destination: entry.Destination,
			Score:       CosineSimilarity(vector, entry.Vector),
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if topK > len(matches) {
		topK = len(matches)
	}
	return matches[:topK], nil
}

func (idx *stubIndex) Remove(ctx context.Context, destination string) error {
	kept := idx.entries[:0]
	for _, entry := range idx.entries {
		if entry.Destination != destination {
			kept = append(kept, entry)
		}
	}
	idx.entries = kept
	return nil
}

func (idx *stubIndex) Count(ctx context.Context) (int, error) {
	return len(idx.entries), nil
}

func (idx *stubIndex) Close() error { return nil }

// supportVectors is the shared geometry for the support-routing scenarios:
// billing descriptions point along the x axis, technical ones along y.
func supportVectors() map[string][]float32 {
	return map[string][]float32{
		"invoice": {1, 0, 0},
		"payment": {0.9, 0.1, 0},
		"refund":  {0.95, 0, 0.05},
		"bug":     {0, 1, 0},
		"error":   {0, 0.9, 0.1},
		"crash":   {0, 0.95, 0},

		"I was charged twice":       {0.85, 0.15, 0},
		"the app crashed on launch": {0.05, 0.9, 0.05},
		"hello, how are you":        {0.3, 0.3, 0.9},
	}
}

func newSupportRegistry(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, opts ...RegistryOption) (*Registry, *stubIndex) {
	t.Helper()

	index := &stubIndex{}
	embedder := &stubEmbedder{dim: 3, vectors: supportVectors()}
	registry := NewRegistry(embedder, index, opts...)

	ctx := context.Background()
	if err := registry.Register(ctx, "billing", "invoice", "payment", "refund"); err != nil {
		t.Fatalf("failed to register billing: %v", err)
	}
	if err := registry.Register(ctx, "technical", "bug", "error", "crash"); err != nil {
		t.Fatalf("failed to register technical: %v", err)
	}
	return registry, index
}

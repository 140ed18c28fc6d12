package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/smallnest/semrouter/router"
)

// Index is the in-memory reference implementation of router.VectorIndex.
// Entries are kept in insertion order, which doubles as the tie-break order
// for equal similarity scores.
type Index struct {
	mu        sync.RWMutex
	entries   []router.Entry
	dimension int
}

var _ router.VectorIndex = (*Index)(nil)

// NewIndex creates an empty in-memory index. The first entry added
// establishes the index dimension.
func NewIndex() *Index {
	return &Index{}
}

// Add stores an entry, enforcing a consistent vector dimension.
func (idx *Index) Add(ctx context.Context, entry router.Entry) error {
	if len(entry.Vector) == 0 {
		return fmt.Errorf("%w: empty vector for destination %q", router.ErrDimensionMismatch, entry.Destination)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.dimension == 0 {
		idx.dimension = len(entry.Vector)
	} else if len(entry.Vector) != idx.dimension {
		return fmt.Errorf("%w: got %d, index dimension is %d",
			router.ErrDimensionMismatch, len(entry.Vector), idx.dimension)
	}

	idx.entries = append(idx.entries, entry)
	return nil
}

// Search returns up to topK matches ordered by descending cosine
// similarity. Equal scores keep insertion order, first added wins.
func (idx *Index) Search(ctx context.Context, vector []float32, topK int) ([]router.Match, error) {
	if topK < 1 {
		return nil, fmt.Errorf("%w: got %d", router.ErrInvalidTopK, topK)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.entries) == 0 {
		return []router.Match{}, nil
	}
	if len(vector) != idx.dimension {
		return nil, fmt.Errorf("%w: query vector has %d, index dimension is %d",
			router.ErrDimensionMismatch, len(vector), idx.dimension)
	}

	matches := make([]router.Match, len(idx.entries))
	for i, entry := range idx.entries {
		matches[i] = router.Match{
			Destination: entry.Destination,
			Score:       router.CosineSimilarity(vector, entry.Vector),
		}
	}

	// Stable sort preserves insertion order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topK > len(matches) {
		topK = len(matches)
	}
	return matches[:topK], nil
}

// Remove deletes every entry owned by the named destination.
func (idx *Index) Remove(ctx context.Context, destination string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	kept := idx.entries[:0]
	for _, entry := range idx.entries {
		if entry.Destination != destination {
			kept = append(kept, entry)
		}
	}
	idx.entries = kept
	return nil
}

// Count returns the number of stored entries.
func (idx *Index) Count(ctx context.Context) (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries), nil
}

// Dimension returns the established vector dimension, or 0 while the index
// is empty.
func (idx *Index) Dimension() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dimension
}

// Close clears the index.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries = nil
	idx.dimension = 0
	return nil
}

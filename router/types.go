package router

import "context"

// Definition describes a destination before registration: a unique name plus
// one or more example phrasings of the requests it should receive.
type Definition struct {
	Name         string
	Descriptions []string
	Metadata     map[string]any
}

// Destination is a registered routing target.
type Destination struct {
	Name         string
	Descriptions []string
	Metadata     map[string]any
}

// Entry associates one destination description with its embedding vector.
// Entries are created during registration and are immutable afterwards.
type Entry struct {
	ID          string
	Destination string
	Description string
	Vector      []float32
}

// Match is a single index search hit: the owning destination and the cosine
// similarity of one of its description entries against the query vector.
type Match struct {
	Destination string
	Score       float64
}

// Decision is the outcome of a single routing call.
type Decision struct {
	// Destination is the selected destination name. When Fallback is true
	// this is the registry's default destination.
	Destination string

	// Score is the best similarity found for the query, or nil when nothing
	// was scored at all (routing against an empty index).
	Score *float64

	// Fallback reports whether the default destination was selected because
	// no match cleared the confidence threshold.
	Fallback bool

	// Alternatives holds the ranked runner-up destinations, best first.
	// Populated only when requested via RouteConfig.Alternatives.
	Alternatives []Match
}

// Embedder generates embeddings for text. Implementations live in the
// embedding package; the router only consumes the interface.
type Embedder interface {
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	GetDimension() int
}

// VectorIndex stores description entries and answers nearest-neighbor
// queries. Implementations live under store/.
//
// Search returns matches ordered by descending cosine similarity. Equal
// scores are ordered by insertion: the entry added first wins, so routing
// stays deterministic for identical inputs. Fewer than topK matches are
// returned when fewer entries exist.
type VectorIndex interface {
	// Add stores one entry. The first entry establishes the index dimension;
	// later entries with a different vector length fail with
	// ErrDimensionMismatch.
	Add(ctx context.Context, entry Entry) error

	// Search returns up to topK matches for the query vector. A topK below 1
	// fails with ErrInvalidTopK; a query vector whose length differs from
	// the established dimension fails with ErrDimensionMismatch.
	Search(ctx context.Context, vector []float32, topK int) ([]Match, error)

	// Remove deletes every entry owned by the named destination. Used to
	// roll back a partially applied registration.
	Remove(ctx context.Context, destination string) error

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Close releases any resources held by the index.
	Close() error
}

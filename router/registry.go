package router

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/smallnest/semrouter/log"
)

// Registry manages the authoritative set of destinations and populates the
// vector index as destinations are registered.
//
// Registration mutates the index and must complete before concurrent routing
// begins. Concurrent Register and Route calls on the same registry require
// external synchronization; Route alone is safe for unlimited concurrent
// readers once registration has quiesced.
type Registry struct {
	embedder Embedder
	index    VectorIndex

	mu           sync.RWMutex
	destinations map[string]*Destination
	order        []string
	defaultDest  string
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDefault sets the fallback destination returned when no match clears
// the confidence threshold. The default does not need to be registered.
func WithDefault(name string) RegistryOption {
	return func(r *Registry) {
		r.defaultDest = name
	}
}

// NewRegistry creates a registry backed by the given embedder and index.
func NewRegistry(embedder Embedder, index VectorIndex, opts ...RegistryOption) *Registry {
	r := &Registry{
		embedder:     embedder,
		index:        index,
		destinations: make(map[string]*Destination),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a named destination with its description texts, embeds each
// description and stores the resulting entries in the index.
//
// Registration is atomic: validation and embedding happen before the index
// is touched, and a failure while inserting entries rolls back the ones
// already added. The registry is unchanged on any error.
func (r *Registry) Register(ctx context.Context, name string, descriptions ...string) error {
	return r.register(ctx, Definition{Name: name, Descriptions: descriptions})
}

// RegisterAll registers a batch of definitions in order, stopping at the
// first failure.
func (r *Registry) RegisterAll(ctx context.Context, defs []Definition) error {
	for _, def := range defs {
		if err := r.register(ctx, def); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) register(ctx context.Context, def Definition) error {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return fmt.Errorf("destination name cannot be empty")
	}
	if len(def.Descriptions) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyDescriptions, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.destinations[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateDestination, name)
	}

	// Embed everything before mutating the index so an embedder failure
	// leaves no partial registration behind.
	vectors, err := r.embedder.EmbedDocuments(ctx, def.Descriptions)
	if err != nil {
		return fmt.Errorf("failed to embed descriptions for %q: %w", name, err)
	}
	if len(vectors) != len(def.Descriptions) {
		return fmt.Errorf("embedder returned %d vectors for %d descriptions", len(vectors), len(def.Descriptions))
	}

	for i, vec := range vectors {
		entry := Entry{
			ID:          uuid.NewString(),
			Destination: name,
			Description: def.Descriptions[i],
			Vector:      vec,
		}
		if err := r.index.Add(ctx, entry); err != nil {
			// Roll back entries added so far; the index error takes
			// precedence over any cleanup failure.
			if rmErr := r.index.Remove(ctx, name); rmErr != nil {
				log.Warn("rollback of destination %q failed: %v", name, rmErr)
			}
			return fmt.Errorf("failed to index description for %q: %w", name, err)
		}
	}

	r.destinations[name] = &Destination{
		Name:         name,
		Descriptions: append([]string(nil), def.Descriptions...),
		Metadata:     def.Metadata,
	}
	r.order = append(r.order, name)

	log.Debug("registered destination %q with %d descriptions", name, len(def.Descriptions))
	return nil
}

// Default returns the configured fallback destination name. The second
// return value is false when routing must fail closed instead.
func (r *Registry) Default() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultDest, r.defaultDest != ""
}

// Get returns the registered destination by name.
func (r *Registry) Get(name string) (*Destination, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dest, ok := r.destinations[name]
	return dest, ok
}

// Destinations returns the registered destination names in registration
// order.
func (r *Registry) Destinations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered destinations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Index returns the registry's vector index.
func (r *Registry) Index() VectorIndex {
	return r.index
}

// Embedder returns the registry's embedder.
func (r *Registry) Embedder() Embedder {
	return r.embedder
}

package router

import (
	"context"
	"fmt"

	"github.com/smallnest/semrouter/log"
)

// RouteConfig controls a single routing call.
type RouteConfig struct {
	// Threshold is the minimum similarity a match must reach (inclusive) to
	// be accepted. The zero value accepts the best match unconditionally.
	Threshold float64

	// Alternatives is how many runner-up destinations to include in the
	// decision, ranked best first. Zero disables runner-up collection.
	Alternatives int
}

// Router converts incoming queries into routing decisions. It is stateless
// apart from its references to the registry and its index, so a single
// Router may serve unlimited concurrent Route calls once registration has
// completed.
type Router struct {
	registry *Registry
	config   RouteConfig
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithThreshold sets the default confidence threshold for Route.
func WithThreshold(threshold float64) RouterOption {
	return func(r *Router) {
		r.config.Threshold = threshold
	}
}

// WithAlternatives sets how many runner-up matches Route collects.
func WithAlternatives(n int) RouterOption {
	return func(r *Router) {
		r.config.Alternatives = n
	}
}

// NewRouter creates a router over a populated registry.
func NewRouter(registry *Registry, opts ...RouterOption) *Router {
	r := &Router{registry: registry}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route routes a query using the router's configured threshold.
func (r *Router) Route(ctx context.Context, query string) (*Decision, error) {
	return r.RouteWithConfig(ctx, query, nil)
}

// RouteWithThreshold routes a query with an explicit confidence threshold.
func (r *Router) RouteWithThreshold(ctx context.Context, query string, threshold float64) (*Decision, error) {
	config := r.config
	config.Threshold = threshold
	return r.RouteWithConfig(ctx, query, &config)
}

// RouteWithConfig routes a query with a custom configuration. A nil config
// uses the router's defaults.
//
// The query is embedded, the index searched, and the best destination
// selected by the maximum similarity across any of its description entries.
// A best score at or above the threshold selects that destination; below
// it, the registry's default is selected with the best score kept for
// diagnostics, or ErrNoRoute is returned when no default is configured.
func (r *Router) RouteWithConfig(ctx context.Context, query string, config *RouteConfig) (*Decision, error) {
	if config == nil {
		config = &r.config
	}

	index := r.registry.Index()

	count, err := index.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect index: %w", err)
	}
	if count == 0 {
		if name, ok := r.registry.Default(); ok {
			log.Debug("empty index, routing to default %q", name)
			return &Decision{Destination: name, Fallback: true}, nil
		}
		return nil, fmt.Errorf("%w: no destinations registered", ErrNoRoute)
	}

	// Embedding failures propagate unrecovered; retry policy belongs to the
	// caller, not the router.
	vector, err := r.registry.Embedder().EmbedDocument(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	// With the max-over-descriptions metric the globally best entry already
	// identifies the winning destination, so a single hit suffices unless
	// runner-ups were requested.
	topK := 1
	if config.Alternatives > 0 {
		topK = count
	}

	matches, err := index.Search(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("index search failed: %w", err)
	}
	if len(matches) == 0 {
		if name, ok := r.registry.Default(); ok {
			return &Decision{Destination: name, Fallback: true}, nil
		}
		return nil, fmt.Errorf("%w: index returned no matches", ErrNoRoute)
	}

	ranked := collapseByDestination(matches)
	best := ranked[0]

	var alternatives []Match
	if config.Alternatives > 0 && len(ranked) > 1 {
		alternatives = ranked[1:]
		if len(alternatives) > config.Alternatives {
			alternatives = alternatives[:config.Alternatives]
		}
	}

	if best.Score >= config.Threshold {
		log.Debug("routed query to %q (score=%.4f)", best.Destination, best.Score)
		return &Decision{
			Destination:  best.Destination,
			Score:        &best.Score,
			Alternatives: alternatives,
		}, nil
	}

	if name, ok := r.registry.Default(); ok {
		log.Debug("best match %q scored %.4f below threshold %.4f, falling back to %q",
			best.Destination, best.Score, config.Threshold, name)
		return &Decision{
			Destination:  name,
			Score:        &best.Score,
			Fallback:     true,
			Alternatives: alternatives,
		}, nil
	}

	return nil, fmt.Errorf("%w: best match %q scored %.4f below threshold %.4f",
		ErrNoRoute, best.Destination, best.Score, config.Threshold)
}

// collapseByDestination reduces per-entry matches to one match per
// destination, keeping each destination's best score. The input is ordered
// by descending score with insertion-order tie-break, so the first
// occurrence of a destination is its maximum and the relative order of
// destinations is preserved.
func collapseByDestination(matches []Match) []Match {
	seen := make(map[string]bool, len(matches))
	ranked := make([]Match, 0, len(matches))
	for _, m := range matches {
		if seen[m.Destination] {
			continue
		}
		seen[m.Destination] = true
		ranked = append(ranked, m)
	}
	return ranked
}

// Package router implements embedding-based content routing: given a fixed
// set of named destinations described by example texts, it selects the
// destination whose descriptions are semantically closest to an incoming
// query.
//
// # Components
//
// The package is built from three small pieces:
//
//   - Registry: the authoritative set of destinations. Registering a
//     destination embeds each of its descriptions (via an injected Embedder)
//     and stores the vectors in a VectorIndex.
//   - VectorIndex: stores description vectors and answers cosine-similarity
//     nearest-neighbor queries. Implementations live under store/.
//   - Router: embeds a query, searches the index and returns a Decision, or
//     falls back to the registry's default destination.
//
// # Quick Start
//
//	import (
//		"github.com/smallnest/semrouter/embedding"
//		"github.com/smallnest/semrouter/router"
//		"github.com/smallnest/semrouter/store/memory"
//	)
//
//	embedder := embedding.NewOpenAIEmbedder(apiKey)
//	registry := router.NewRegistry(embedder, memory.NewIndex(), router.WithDefault("general"))
//
//	registry.Register(ctx, "billing", "invoice", "payment", "refund")
//	registry.Register(ctx, "technical", "bug", "error", "crash")
//
//	r := router.NewRouter(registry, router.WithThreshold(0.6))
//	decision, err := r.Route(ctx, "I was charged twice")
//	// decision.Destination == "billing"
//
// # Matching Semantics
//
// A destination's similarity to a query is the maximum over its description
// embeddings, not the average: a destination is relevant if any of its
// example phrasings is close to the query. Matches with equal scores are
// broken by registration order, so routing is fully deterministic given a
// deterministic embedder and an unchanged index.
//
// The confidence threshold is inclusive. The permissive default of 0 always
// accepts the best match; a higher threshold routes weak matches to the
// registry's default destination, or fails with ErrNoRoute when no default
// is configured. ErrNoRoute is a normal outcome, not a fault:
//
//	decision, err := r.Route(ctx, query)
//	if errors.Is(err, router.ErrNoRoute) {
//		// "I don't know how to handle this request"
//	}
//
// # Concurrency
//
// Registration writes to the index and must be serialized relative to both
// other registrations and concurrent routing. Once registration has
// quiesced, Route is safe for unlimited concurrent callers.
package router

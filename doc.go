// SemRouter - Embedding-Based Content Routing for Go
//
// SemRouter routes free-form queries to named destinations by comparing the
// query's embedding against example descriptions registered for each
// destination. It is the matching half of a multi-prompt / multi-chain
// setup: SemRouter picks the destination name, the caller decides what that
// destination executes.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/smallnest/semrouter
//
// Basic example:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"os"
//
//		"github.com/smallnest/semrouter/embedding"
//		"github.com/smallnest/semrouter/router"
//		"github.com/smallnest/semrouter/store/memory"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		embedder := embedding.NewOpenAIEmbedder(os.Getenv("OPENAI_API_KEY"))
//		registry := router.NewRegistry(embedder, memory.NewIndex(),
//			router.WithDefault("general"))
//
//		registry.Register(ctx, "billing", "invoice questions", "payment issues", "refunds")
//		registry.Register(ctx, "technical", "bug reports", "error messages", "crashes")
//
//		r := router.NewRouter(registry, router.WithThreshold(0.6))
//		decision, err := r.Route(ctx, "I was charged twice for my subscription")
//		if err != nil {
//			panic(err)
//		}
//		fmt.Println(decision.Destination) // billing
//	}
//
// # Packages
//
//   - router: registry, vector index contract and the routing algorithm
//   - store/memory, store/redis, store/sqlite, store/postgres: index backends
//   - embedding: OpenAI and langchaingo embedders, deterministic mock,
//     caching decorator with in-memory and Redis caches
//   - loader: destination definitions from static lists, Markdown or HTML
//   - dispatch: bind destination names to handlers or langchaingo chains
//   - log: leveled logging facade with a golog backend
//
// # Design Notes
//
// Similarity is cosine, a destination scores as the best of its
// descriptions, ties go to the destination registered first, and the
// confidence threshold is inclusive. Routing against an empty registry
// returns the default destination (with no score) or router.ErrNoRoute.
// Registration must finish before concurrent routing starts; after that a
// single Router serves any number of goroutines.
package semrouter // import "github.com/smallnest/semrouter"

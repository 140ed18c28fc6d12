// Package redis provides a Redis-backed vector index for the router.
//
// Entries are kept in a Redis list, preserving insertion order so that
// routing tie-breaks stay deterministic across processes and restarts. The
// established embedding dimension is persisted alongside the entries and
// enforced on every Add. Scoring happens in process; Redis only stores.
//
// # Basic Usage
//
//	import (
//		"github.com/smallnest/semrouter/router"
//		"github.com/smallnest/semrouter/store/redis"
//	)
//
//	idx := redis.NewRedisIndex(redis.RedisOptions{
//		Addr:     "localhost:6379",
//		Password: "yourpassword",
//		DB:       0,
//		Prefix:   "semrouter:",    // Optional key prefix
//		TTL:      24 * time.Hour,  // Optional expiration
//	})
//	defer idx.Close()
//
//	registry := router.NewRegistry(embedder, idx)
//
// # Key Layout
//
//	{prefix}entries    list of JSON-encoded entries, in insertion order
//	{prefix}dimension  the embedding dimension, set by the first entry
//
// Distinct prefixes isolate independent routing tables on a shared Redis
// instance.
//
// # When To Use It
//
// Reach for this backend when several processes route against the same
// destination set, or when the registry should survive restarts without a
// re-embedding pass. For a single process the in-memory index is simpler
// and faster; for relational querying over the entries use the Postgres
// backend instead.
package redis

// Package memory provides the in-memory reference implementation of
// router.VectorIndex.
//
// Entries live in a slice in insertion order, which doubles as the
// tie-break order for equal similarity scores. The index is safe for
// concurrent use and is the right default for a single process whose
// destinations are registered at startup:
//
//	registry := router.NewRegistry(embedder, memory.NewIndex())
//
// Nothing persists; restarting the process means re-registering (and
// re-embedding) every destination. Use the redis, sqlite or postgres
// backends when that cost matters.
package memory

package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smallnest/semrouter/log"
	"github.com/smallnest/semrouter/router"
)

// Cache stores computed embeddings keyed by text hash. Callers construct
// and own the cache instance; there is no process-global cache.
type Cache interface {
	Get(ctx context.Context, key string) ([]float32, bool, error)
	Set(ctx context.Context, key string, vector []float32) error
}

// CachedEmbedder wraps another embedder with a cache, so repeated texts
// (destination descriptions at startup, recurring queries) cost one
// upstream call. Cache failures degrade to the inner embedder; they never
// fail the embedding.
type CachedEmbedder struct {
	inner Embedder
	cache Cache
}

// Embedder is an alias of the router contract, re-exported here so this
// package reads standalone.
type Embedder = router.Embedder

var _ router.Embedder = (*CachedEmbedder)(nil)

// NewCachedEmbedder wraps an embedder with a cache.
func NewCachedEmbedder(inner Embedder, cache Cache) *CachedEmbedder {
	return &CachedEmbedder{
		inner: inner,
		cache: cache,
	}
}

// EmbedDocument returns the cached embedding for a text, computing and
// storing it on a miss.
func (e *CachedEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)

	if vector, ok, err := e.cache.Get(ctx, key); err != nil {
		log.Warn("embedding cache read failed: %v", err)
	} else if ok {
		return vector, nil
	}

	vector, err := e.inner.EmbedDocument(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := e.cache.Set(ctx, key, vector); err != nil {
		log.Warn("embedding cache write failed: %v", err)
	}
	return vector, nil
}

// EmbedDocuments embeds a batch, serving cached texts locally and sending
// only the misses upstream in one call.
func (e *CachedEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int

	for i, text := range texts {
		vector, ok, err := e.cache.Get(ctx, cacheKey(text))
		if err != nil {
			log.Warn("embedding cache read failed: %v", err)
		}
		if err == nil && ok {
			vectors[i] = vector
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	computed, err := e.inner.EmbedDocuments(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(computed) != len(missing) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(computed), len(missing))
	}

	for i, vector := range computed {
		vectors[missingIdx[i]] = vector
		if err := e.cache.Set(ctx, cacheKey(missing[i]), vector); err != nil {
			log.Warn("embedding cache write failed: %v", err)
		}
	}
	return vectors, nil
}

// GetDimension returns the inner embedder's dimension.
func (e *CachedEmbedder) GetDimension() int {
	return e.inner.GetDimension()
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// MemoryCache is a process-local embedding cache.
type MemoryCache struct {
	mu      sync.RWMutex
	vectors map[string][]float32
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		vectors: make(map[string][]float32),
	}
}

// Get returns the cached vector for a key.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]float32, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vector, ok := c.vectors[key]
	return vector, ok, nil
}

// Set stores a vector under a key.
func (c *MemoryCache) Set(ctx context.Context, key string, vector []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vectors[key] = vector
	return nil
}

// RedisCache is a shared embedding cache backed by Redis, useful when
// several processes route against the same destination set.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ Cache = (*RedisCache)(nil)

// RedisCacheOptions configuration for the Redis connection.
type RedisCacheOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "semrouter:emb:"
	TTL      time.Duration // Expiration for cached vectors, default 0 (no expiration)
}

// NewRedisCache creates a Redis-backed embedding cache.
func NewRedisCache(opts RedisCacheOptions) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "semrouter:emb:"
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

// Get returns the cached vector for a key.
func (c *RedisCache) Get(ctx context.Context, key string) ([]float32, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached embedding: %w", err)
	}

	var vector []float32
	if err := json.Unmarshal(data, &vector); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached embedding: %w", err)
	}
	return vector, true, nil
}

// Set stores a vector under a key.
func (c *RedisCache) Set(ctx context.Context, key string, vector []float32) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache embedding: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smallnest/semrouter/router"
)

// RedisIndex implements router.VectorIndex using Redis. Entries live in a
// Redis list, so insertion order is preserved and equal similarity scores
// keep the first-registered-wins tie-break. The established dimension is
// stored alongside the entries and survives process restarts.
type RedisIndex struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ router.VectorIndex = (*RedisIndex)(nil)

// RedisOptions configuration for the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "semrouter:"
	TTL      time.Duration // Expiration for index keys, default 0 (no expiration)
}

// NewRedisIndex creates a new Redis-backed vector index.
func NewRedisIndex(opts RedisOptions) *RedisIndex {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "semrouter:"
	}

	return &RedisIndex{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

type storedEntry struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	Description string    `json:"description"`
	Vector      []float32 `json:"vector"`
}

func (idx *RedisIndex) entriesKey() string {
	return idx.prefix + "entries"
}

func (idx *RedisIndex) dimensionKey() string {
	return idx.prefix + "dimension"
}

// Add appends an entry to the index list, enforcing a consistent vector
// dimension against the persisted one.
func (idx *RedisIndex) Add(ctx context.Context, entry router.Entry) error {
	if len(entry.Vector) == 0 {
		return fmt.Errorf("%w: empty vector for destination %q", router.ErrDimensionMismatch, entry.Destination)
	}

	// SetNX establishes the dimension exactly once; later writers compare
	// against the stored value.
	set, err := idx.client.SetNX(ctx, idx.dimensionKey(), len(entry.Vector), idx.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to establish index dimension: %w", err)
	}
	if !set {
		dimension, err := idx.client.Get(ctx, idx.dimensionKey()).Int()
		if err != nil {
			return fmt.Errorf("failed to read index dimension: %w", err)
		}
		if len(entry.Vector) != dimension {
			return fmt.Errorf("%w: got %d, index dimension is %d",
				router.ErrDimensionMismatch, len(entry.Vector), dimension)
		}
	}

	data, err := json.Marshal(storedEntry{
		ID:          entry.ID,
		Destination: entry.Destination,
		Description: entry.Description,
		Vector:      entry.Vector,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	pipe := idx.client.Pipeline()
	pipe.RPush(ctx, idx.entriesKey(), data)
	if idx.ttl > 0 {
		pipe.Expire(ctx, idx.entriesKey(), idx.ttl)
		pipe.Expire(ctx, idx.dimensionKey(), idx.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append entry to redis: %w", err)
	}

	return nil
}

// Search loads the entry list and scores it against the query vector in
// process. Registries are small fixed sets, so a full scan per query is the
// deliberate trade-off here.
func (idx *RedisIndex) Search(ctx context.Context, vector []float32, topK int) ([]router.Match, error) {
	if topK < 1 {
		return nil, fmt.Errorf("%w: got %d", router.ErrInvalidTopK, topK)
	}

	entries, err := idx.loadEntries(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []router.Match{}, nil
	}

	if len(vector) != len(entries[0].Vector) {
		return nil, fmt.Errorf("%w: query vector has %d, index dimension is %d",
			router.ErrDimensionMismatch, len(vector), len(entries[0].Vector))
	}

	matches := make([]router.Match, len(entries))
	for i, entry := range entries {
		matches[i] = router.Match{
			Destination: entry.Destination,
			Score:       router.CosineSimilarity(vector, entry.Vector),
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

// Remove deletes every entry owned by the named destination by rewriting
// the entry list without them.
func (idx *RedisIndex) Remove(ctx context.Context, destination string) error {
	entries, err := idx.loadEntries(ctx)
	if err != nil {
		return err
	}

	var kept [][]byte
	for _, entry := range entries {
		if entry.Destination == destination {
			continue
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}
		kept = append(kept, data)
	}

	pipe := idx.client.TxPipeline()
	pipe.Del(ctx, idx.entriesKey())
	for _, data := range kept {
		pipe.RPush(ctx, idx.entriesKey(), data)
	}
	if idx.ttl > 0 && len(kept) > 0 {
		pipe.Expire(ctx, idx.entriesKey(), idx.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to rewrite entries: %w", err)
	}

	return nil
}

// Count returns the number of stored entries.
func (idx *RedisIndex) Count(ctx context.Context) (int, error) {
	n, err := idx.client.LLen(ctx, idx.entriesKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return int(n), nil
}

// Close closes the underlying Redis client.
func (idx *RedisIndex) Close() error {
	return idx.client.Close()
}

func (idx *RedisIndex) loadEntries(ctx context.Context) ([]storedEntry, error) {
	raw, err := idx.client.LRange(ctx, idx.entriesKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load entries from redis: %w", err)
	}

	entries := make([]storedEntry, 0, len(raw))
	for _, data := range raw {
		var entry storedEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smallnest/semrouter/router"
)

// DBPool defines the interface for the database connection pool.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresIndex implements router.VectorIndex using PostgreSQL. Entries
// carry a BIGSERIAL sequence, so insertion order survives restarts and
// equal similarity scores keep the first-registered-wins tie-break.
type PostgresIndex struct {
	pool      DBPool
	tableName string
}

var _ router.VectorIndex = (*PostgresIndex)(nil)

// PostgresOptions configuration for the Postgres connection.
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "route_entries"
}

// NewPostgresIndex creates a new Postgres-backed vector index.
func NewPostgresIndex(ctx context.Context, opts PostgresOptions) (*PostgresIndex, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "route_entries"
	}

	idx := &PostgresIndex{
		pool:      pool,
		tableName: tableName,
	}

	if err := idx.InitSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return idx, nil
}

// NewPostgresIndexWithPool creates a new Postgres index with an existing
// pool. Useful for testing with mocks.
func NewPostgresIndexWithPool(pool DBPool, tableName string) *PostgresIndex {
	if tableName == "" {
		tableName = "route_entries"
	}
	return &PostgresIndex{
		pool:      pool,
		tableName: tableName,
	}
}

// InitSchema creates the necessary table if it doesn't exist.
func (idx *PostgresIndex) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			seq BIGSERIAL PRIMARY KEY,
			id TEXT NOT NULL,
			destination TEXT NOT NULL,
			description TEXT NOT NULL,
			dimension INT NOT NULL,
			vector TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_destination ON %s (destination);
	`, idx.tableName, idx.tableName, idx.tableName)

	if _, err := idx.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (idx *PostgresIndex) Close() error {
	idx.pool.Close()
	return nil
}

// Add stores an entry, enforcing a consistent vector dimension against the
// entries already present.
func (idx *PostgresIndex) Add(ctx context.Context, entry router.Entry) error {
	if len(entry.Vector) == 0 {
		return fmt.Errorf("%w: empty vector for destination %q", router.ErrDimensionMismatch, entry.Destination)
	}

	dimension, err := idx.dimension(ctx)
	if err != nil {
		return err
	}
	if dimension > 0 && len(entry.Vector) != dimension {
		return fmt.Errorf("%w: got %d, index dimension is %d",
			router.ErrDimensionMismatch, len(entry.Vector), dimension)
	}

	vectorJSON, err := json.Marshal(entry.Vector)
	if err != nil {
		return fmt.Errorf("failed to marshal vector: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, destination, description, dimension, vector)
		VALUES ($1, $2, $3, $4, $5)
	`, idx.tableName)

	_, err = idx.pool.Exec(ctx, query,
		entry.ID,
		entry.Destination,
		entry.Description,
		len(entry.Vector),
		string(vectorJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	return nil
}

// Search loads all entries in sequence order and scores them against the
// query vector in process.
func (idx *PostgresIndex) Search(ctx context.Context, vector []float32, topK int) ([]router.Match, error) {
	if topK < 1 {
		return nil, fmt.Errorf("%w: got %d", router.ErrInvalidTopK, topK)
	}

	query := fmt.Sprintf(`
		SELECT destination, vector
		FROM %s
		ORDER BY seq ASC
	`, idx.tableName)

	rows, err := idx.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	defer rows.Close()

	var matches []router.Match
	for rows.Next() {
		var destination string
		var vectorJSON string

		if err := rows.Scan(&destination, &vectorJSON); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}

		var entryVector []float32
		if err := json.Unmarshal([]byte(vectorJSON), &entryVector); err != nil {
			return nil, fmt.Errorf("failed to unmarshal vector: %w", err)
		}

		if len(vector) != len(entryVector) {
			return nil, fmt.Errorf("%w: query vector has %d, index dimension is %d",
				router.ErrDimensionMismatch, len(vector), len(entryVector))
		}

		matches = append(matches, router.Match{
			Destination: destination,
			Score:       router.CosineSimilarity(vector, entryVector),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	if len(matches) == 0 {
		return []router.Match{}, nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topK > len(matches) {
		topK = len(matches)
	}
	return matches[:topK], nil
}

// Remove deletes every entry owned by the named destination.
func (idx *PostgresIndex) Remove(ctx context.Context, destination string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE destination = $1", idx.tableName)
	if _, err := idx.pool.Exec(ctx, query, destination); err != nil {
		return fmt.Errorf("failed to remove destination entries: %w", err)
	}
	return nil
}

// Count returns the number of stored entries.
func (idx *PostgresIndex) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", idx.tableName)

	var count int
	if err := idx.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

func (idx *PostgresIndex) dimension(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT dimension FROM %s ORDER BY seq ASC LIMIT 1", idx.tableName)

	var dimension int
	err := idx.pool.QueryRow(ctx, query).Scan(&dimension)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read index dimension: %w", err)
	}
	return dimension, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/smallnest/semrouter/router"
)

// SqliteIndex implements router.VectorIndex using SQLite. Entries carry an
// autoincrement sequence, so insertion order survives restarts and equal
// similarity scores keep the first-registered-wins tie-break. Vectors are
// stored as JSON arrays.
type SqliteIndex struct {
	db        *sql.DB
	tableName string
}

var _ router.VectorIndex = (*SqliteIndex)(nil)

// SqliteOptions configuration for the SQLite connection.
type SqliteOptions struct {
	Path      string
	TableName string // Default "route_entries"
}

// NewSqliteIndex creates a new SQLite-backed vector index.
func NewSqliteIndex(opts SqliteOptions) (*SqliteIndex, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "route_entries"
	}

	idx := &SqliteIndex{
		db:        db,
		tableName: tableName,
	}

	if err := idx.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return idx, nil
}

// InitSchema creates the necessary table if it doesn't exist.
func (idx *SqliteIndex) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			destination TEXT NOT NULL,
			description TEXT NOT NULL,
			dimension INTEGER NOT NULL,
			vector TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_destination ON %s (destination);
	`, idx.tableName, idx.tableName, idx.tableName)

	_, err := idx.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (idx *SqliteIndex) Close() error {
	return idx.db.Close()
}

// Add stores an entry, enforcing a consistent vector dimension against the
// entries already present.
func (idx *SqliteIndex) Add(ctx context.Context, entry router.Entry) error {
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
		VALUES (?, ?, ?, ?, ?)
	`, idx.tableName)

	_, err = idx.db.ExecContext(ctx, query,
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
func (idx *SqliteIndex) Search(ctx context.Context, vector []float32, topK int) ([]router.Match, error) {
	if topK < 1 {
		return nil, fmt.Errorf("%w: got %d", router.ErrInvalidTopK, topK)
	}

	query := fmt.Sprintf(`
		SELECT destination, vector
		FROM %s
		ORDER BY seq ASC
	`, idx.tableName)

	rows, err := idx.db.QueryContext(ctx, query)
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
func (idx *SqliteIndex) Remove(ctx context.Context, destination string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE destination = ?", idx.tableName)
	_, err := idx.db.ExecContext(ctx, query, destination)
	if err != nil {
		return fmt.Errorf("failed to remove destination entries: %w", err)
	}
	return nil
}

// Count returns the number of stored entries.
func (idx *SqliteIndex) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", idx.tableName)

	var count int
	if err := idx.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

func (idx *SqliteIndex) dimension(ctx context.Context) (int, error) {
	query := fmt.Sprintf("SELECT dimension FROM %s ORDER BY seq ASC LIMIT 1", idx.tableName)

	var dimension int
	err := idx.db.QueryRowContext(ctx, query).Scan(&dimension)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read index dimension: %w", err)
	}
	return dimension, nil
}

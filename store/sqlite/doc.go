// Package sqlite provides a SQLite-backed vector index for the router.
//
// Entries are rows in a single table with an autoincrement sequence column,
// so insertion order (and with it the routing tie-break) survives restarts.
// Vectors are stored as JSON arrays and scored in process.
//
// # Basic Usage
//
//	idx, err := sqlite.NewSqliteIndex(sqlite.SqliteOptions{
//		Path:      "routes.db",
//		TableName: "route_entries", // optional
//	})
//	if err != nil {
//		return err
//	}
//	defer idx.Close()
//
//	registry := router.NewRegistry(embedder, idx)
//
// The schema is created on construction if it does not exist. A file path
// is expected; ":memory:" does not play well with database/sql connection
// pooling.
//
// This backend suits single-process deployments that want the registry to
// persist without running a database server.
package sqlite

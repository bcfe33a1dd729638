// Package sqlite provides a unified SQLite-based implementation of
// several driven port interfaces, backed by a single database file.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite
// implementation that requires no CGO, enabling easy
// cross-compilation. It implements:
//
//   - ContentStore: document + chunk persistence, content zstd-compressed
//   - SourceStore: source registry with document/chunk counters
//   - JobStore: async ingest job tracking
//
// # Schema
//
// The database schema is managed through versioned migrations stored
// in the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.eywa/data/metadata.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level
// locking provided by SQLite in WAL mode.
package sqlite

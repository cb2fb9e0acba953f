// Package sqlite provides a SQLite-backed SnapshotStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. A snapshot is stored as three tables: snapshot_meta (a
// single row), snapshot_sources and records. Postings are not stored; the
// corpus rebuilds them on load.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are tracked in schema_migrations.
//
// # Data Location
//
// By default the database is stored at ~/.manuals/corpus.db.
//
// # Thread Safety
//
// All operations are safe for concurrent use. Save runs in a single
// transaction, so readers see either the previous or the new snapshot.
package sqlite

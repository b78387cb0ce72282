// Package sqlite provides a SQLite-backed implementation of driven.EventStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Participants carry a position column so they read back in insertion order;
// intolerances and preferences are stored as comma-separated text.
//
// # Data Location
//
// By default, the database is stored at ~/.convivio/data/events.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite

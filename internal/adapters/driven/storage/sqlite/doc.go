// Package sqlite persists archives in a SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Archives are keyed by a stable ID derived from the upload
// and file name, so persisting an archive again replaces it.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.elnmap/data/archives.db
package sqlite

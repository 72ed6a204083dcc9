// Package sqlite provides a SQLite-backed package document store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Documents are stored in the same
// indented JSON form the file store writes, one row per package.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is an .up.sql file.
//
// # Data Location
//
// The database lives at <docs-dir>/pkgdocs.db.
package sqlite

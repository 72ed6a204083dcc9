package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/custodia-labs/pkgdocs/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/pkgdocs/internal/core/domain"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
)

var _ driven.DocumentStore = (*Store)(nil)

// DatabaseFile is the database file name inside the docs directory.
const DatabaseFile = "pkgdocs.db"

// Store keeps each package document as a JSON body in the package_docs table.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens pkgdocs.db inside dataDir, creating both as needed, and
// brings the schema up to date.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create docs directory: %w", err)
	}
	path := filepath.Join(dataDir, DatabaseFile)

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := migrate(context.Background(), db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return &Store{db: db, path: path}, nil
}

// dsn enables WAL so a reader does not block the writer, and waits on locks
// held by another pkgdocs process.
func dsn(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

func (s *Store) Close() error { return s.db.Close() }

// Path is the database file.
func (s *Store) Path() string { return s.path }

// Location returns a reference to the row holding the package.
func (s *Store) Location(name string) string {
	return s.path + "#" + name
}

// Get returns the stored document for the package.
func (s *Store) Get(ctx context.Context, name string) (*domain.PackageDocument, error) {
	var body string
	err := s.db.QueryRowContext(ctx, "SELECT body FROM package_docs WHERE name = ?", name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("querying document: %w", err)
	}

	var doc domain.PackageDocument
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrMalformedDocument, s.Location(name), err)
	}
	return &doc, nil
}

// Save inserts or fully replaces the document for the package.
func (s *Store) Save(ctx context.Context, name string, doc *domain.PackageDocument) error {
	body, err := domain.MarshalDocument(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO package_docs (name, body) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP
	`, name, string(body))
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// List returns all stored package names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM package_docs ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// migrate runs every NNN_*.up.sql file newer than the database's
// user_version, each in its own transaction that also bumps user_version.
func migrate(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	var current int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	files, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return err
	}
	for _, name := range files {
		version, err := strconv.Atoi(strings.SplitN(name, "_", 2)[0])
		if err != nil {
			return fmt.Errorf("migration %s: name must start with a number", name)
		}
		if version <= current {
			continue
		}
		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if err := apply(ctx, db, string(script), version); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
		current = version
	}
	return nil
}

func apply(ctx context.Context, db *sql.DB, script string, version int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	// PRAGMA does not accept bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return err
	}
	return tx.Commit()
}

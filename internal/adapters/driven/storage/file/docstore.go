// Package file provides a filesystem-backed package document store.
// Each document lives in <dir>/<package>.json as indented JSON.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

const docExt = ".json"

// DocumentStore stores one JSON file per package.
// Writes are not atomic: an interrupted write leaves a truncated file that
// surfaces as domain.ErrMalformedDocument on the next read.
type DocumentStore struct {
	dir string
}

// NewDocumentStore creates a store rooted at dir. The directory is resolved
// against the working directory but not created until the first Save.
func NewDocumentStore(dir string) (*DocumentStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving docs directory: %w", err)
	}
	return &DocumentStore{dir: abs}, nil
}

// Dir returns the absolute cache directory.
func (s *DocumentStore) Dir() string {
	return s.dir
}

// Location returns the file path for the package.
func (s *DocumentStore) Location(name string) string {
	return filepath.Join(s.dir, name+docExt)
}

// Get reads and decodes the document for the package.
func (s *DocumentStore) Get(_ context.Context, name string) (*domain.PackageDocument, error) {
	data, err := os.ReadFile(s.Location(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", s.Location(name), err)
	}

	var doc domain.PackageDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrMalformedDocument, s.Location(name), err)
	}
	return &doc, nil
}

// Save creates the directory if needed and overwrites the package file.
func (s *DocumentStore) Save(_ context.Context, name string, doc *domain.PackageDocument) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating docs directory: %w", err)
	}

	data, err := domain.MarshalDocument(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	if err := os.WriteFile(s.Location(name), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", s.Location(name), err)
	}
	return nil
}

// List returns the package names with a file in the directory. Files whose
// stem is not a valid package name are skipped.
func (s *DocumentStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading docs directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), docExt) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), docExt)
		if domain.ValidatePackageName(stem) != nil {
			continue
		}
		names = append(names, stem)
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op for the file store.
func (s *DocumentStore) Close() error {
	return nil
}

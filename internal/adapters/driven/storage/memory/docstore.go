// Package memory provides in-memory implementations of the driven ports,
// used by tests and as a scratch backend.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.PackageDocument
	saves     int
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.PackageDocument),
	}
}

// Get retrieves a copy of the stored document.
func (s *DocumentStore) Get(_ context.Context, name string) (*domain.PackageDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc.KeyVariables = append([]domain.KeyVariable(nil), doc.KeyVariables...)
	return &doc, nil
}

// Save stores a copy of the document.
func (s *DocumentStore) Save(_ context.Context, name string, doc *domain.PackageDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *doc
	stored.KeyVariables = append([]domain.KeyVariable(nil), doc.KeyVariables...)
	s.documents[name] = stored
	s.saves++
	return nil
}

// List returns stored package names, sorted.
func (s *DocumentStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.documents))
	for name := range s.documents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Location returns a pseudo location for the package.
func (s *DocumentStore) Location(name string) string {
	return "memory://" + name
}

// SaveCount returns how many times Save has been called.
func (s *DocumentStore) SaveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Close is a no-op.
func (s *DocumentStore) Close() error {
	return nil
}

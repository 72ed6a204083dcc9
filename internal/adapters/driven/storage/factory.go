// Package storage selects a document store implementation from settings.
package storage

import (
	"fmt"

	"github.com/custodia-labs/pkgdocs/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/pkgdocs/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pkgdocs/internal/core/domain"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
)

// OpenDocumentStore opens the document store selected by settings.Backend.
// The caller must Close the returned store.
func OpenDocumentStore(settings domain.DocsSettings) (driven.DocumentStore, error) {
	switch settings.Backend {
	case domain.StorageBackendFile, "":
		store, err := file.NewDocumentStore(settings.Dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case domain.StorageBackendSQLite:
		store, err := sqlite.NewStore(settings.Dir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: unknown docs backend %q", domain.ErrInvalidConfig, settings.Backend)
	}
}

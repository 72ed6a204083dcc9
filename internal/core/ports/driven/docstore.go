package driven

import (
	"context"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
)

// DocumentStore persists package documents keyed by package name.
// Names reaching a store have already passed domain.ValidatePackageName.
type DocumentStore interface {
	// Get returns the stored document.
	// Returns domain.ErrNotFound when nothing is stored for the name and
	// domain.ErrMalformedDocument when the stored bytes do not decode.
	Get(ctx context.Context, name string) (*domain.PackageDocument, error)

	// Save writes the document, fully replacing any prior content.
	Save(ctx context.Context, name string, doc *domain.PackageDocument) error

	// List returns the names of all stored packages, sorted.
	List(ctx context.Context) ([]string, error)

	// Location describes where the document for name lives
	// (a file path or database reference).
	Location(name string) string

	// Close releases resources.
	Close() error
}

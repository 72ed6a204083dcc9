package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driving"
	"github.com/custodia-labs/pkgdocs/internal/logger"
)

// Ensure DocsService implements the interface.
var _ driving.DocsService = (*DocsService)(nil)

// DocsService resolves package documents through the cache, generating
// them on a miss.
type DocsService struct {
	store       driven.DocumentStore
	fetcher     driven.PageFetcher
	synthesizer *Synthesizer
}

// NewDocsService creates a documentation service. With a nil synthesizer
// cached documents are still served; misses fail with a configuration error.
func NewDocsService(store driven.DocumentStore, fetcher driven.PageFetcher, synthesizer *Synthesizer) *DocsService {
	return &DocsService{
		store:       store,
		fetcher:     fetcher,
		synthesizer: synthesizer,
	}
}

// GetPackageDocs returns the stored document for the package, generating
// and persisting it first when absent. A stored document is authoritative:
// it is never refreshed, and one that fails to decode is reported rather
// than regenerated.
func (s *DocsService) GetPackageDocs(ctx context.Context, packageName string) (*domain.PackageDocument, error) {
	if err := domain.ValidatePackageName(packageName); err != nil {
		return nil, domain.NewDocsError(packageName, domain.ReasonInvalidName, err)
	}

	doc, err := s.store.Get(ctx, packageName)
	if err == nil {
		logger.Debug("Cache hit for %s at %s", packageName, s.store.Location(packageName))
		return doc, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewDocsError(packageName, domain.ReasonStorage, err)
	}

	logger.Info("Documentation for %s not found. Generating...", packageName)
	if err := s.generate(ctx, packageName); err != nil {
		return nil, err
	}

	doc, err = s.store.Get(ctx, packageName)
	if err != nil {
		return nil, domain.NewDocsError(packageName, domain.ReasonStorage, err)
	}
	return doc, nil
}

// generate runs fetch, synthesis and persist for one package.
func (s *DocsService) generate(ctx context.Context, packageName string) error {
	if s.synthesizer == nil || s.fetcher == nil {
		return domain.NewDocsError(packageName, domain.ReasonConfiguration, domain.ErrMissingCredential)
	}

	genID := uuid.NewString()
	logger.Section("Generate " + packageName)

	url := s.fetcher.PageURL(packageName)
	logger.Debugw("fetching listing page", "generation", genID, "url", url)
	page, err := s.fetcher.Fetch(ctx, packageName)
	if err != nil {
		logger.Warnw("page fetch failed", "generation", genID, "package", packageName, "error", err)
		return domain.NewDocsError(packageName, domain.ReasonFetch, err)
	}

	logger.Debugw("synthesizing document", "generation", genID, "bytes", len(page))
	doc, err := s.synthesizer.Synthesize(ctx, packageName, url, page)
	if err != nil {
		logger.Errorw("document synthesis failed", "generation", genID, "package", packageName, "error", err)
		return domain.NewDocsError(packageName, domain.ReasonSynthesis, err)
	}

	if err := s.store.Save(ctx, packageName, doc); err != nil {
		logger.Errorw("saving document failed", "generation", genID, "package", packageName, "error", err)
		return domain.NewDocsError(packageName, domain.ReasonStorage, err)
	}
	logger.Debugw("document saved", "generation", genID, "location", s.store.Location(packageName))

	return nil
}

// ListCached returns the names of all cached packages.
func (s *DocsService) ListCached(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// Location describes where the document for the package is stored.
func (s *DocsService) Location(packageName string) string {
	return s.store.Location(packageName)
}

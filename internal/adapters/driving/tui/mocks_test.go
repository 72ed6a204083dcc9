package tui

import (
	"context"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
)

type mockDocsService struct {
	docs map[string]*domain.PackageDocument
}

func (m *mockDocsService) GetPackageDocs(_ context.Context, name string) (*domain.PackageDocument, error) {
	doc, ok := m.docs[name]
	if !ok {
		return nil, domain.NewDocsError(name, domain.ReasonFetch, domain.ErrUpstreamStatus)
	}
	return doc, nil
}

func (m *mockDocsService) ListCached(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(m.docs))
	for name := range m.docs {
		names = append(names, name)
	}
	return names, nil
}

func (m *mockDocsService) Location(name string) string {
	return name + ".json"
}

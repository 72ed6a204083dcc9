package mcp

import (
	"context"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
)

// mockDocsService is a mock implementation of driving.DocsService.
type mockDocsService struct {
	docs  map[string]*domain.PackageDocument
	names []string
	err   error
	asked []string
}

func (m *mockDocsService) GetPackageDocs(_ context.Context, name string) (*domain.PackageDocument, error) {
	m.asked = append(m.asked, name)
	if m.err != nil {
		return nil, m.err
	}
	doc, ok := m.docs[name]
	if !ok {
		return nil, domain.NewDocsError(name, domain.ReasonFetch, domain.ErrUpstreamStatus)
	}
	return doc, nil
}

func (m *mockDocsService) ListCached(_ context.Context) ([]string, error) {
	return m.names, m.err
}

func (m *mockDocsService) Location(name string) string {
	return "package_docs/" + name + ".json"
}

// mockPromptService is a mock implementation of driving.PromptService.
type mockPromptService struct {
	prompt string
	err    error
}

func (m *mockPromptService) GeneratePrompt(_ context.Context, name, task string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.prompt + " " + name + ": " + task, nil
}

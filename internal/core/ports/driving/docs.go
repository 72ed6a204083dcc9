package driving

import (
	"context"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
)

// DocsService resolves package documents, generating and caching them on a miss.
type DocsService interface {
	// GetPackageDocs returns the cached document for the package, generating
	// and persisting it first if none is stored. Every failure is a
	// *domain.DocsError naming the package and the reason.
	GetPackageDocs(ctx context.Context, packageName string) (*domain.PackageDocument, error)

	// ListCached returns the names of all cached packages.
	ListCached(ctx context.Context) ([]string, error)

	// Location describes where the document for the package is stored.
	Location(packageName string) string
}

// PromptService renders code-generation prompts from package documents.
type PromptService interface {
	// GeneratePrompt resolves the package document and renders the prompt
	// for the task. On failure it returns an empty prompt and the
	// resolution error; error text is never returned as a prompt.
	GeneratePrompt(ctx context.Context, packageName, taskDescription string) (string, error)
}

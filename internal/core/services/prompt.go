package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driving"
	"github.com/custodia-labs/pkgdocs/internal/core/prompts"
)

// Ensure PromptService implements the interface.
var _ driving.PromptService = (*PromptService)(nil)

// PromptService renders code-generation prompts from package documents.
type PromptService struct {
	docs        driving.DocsService
	promptStore driven.PromptStore
}

// NewPromptService creates a prompt service. promptStore may be nil.
func NewPromptService(docs driving.DocsService, promptStore driven.PromptStore) *PromptService {
	return &PromptService{
		docs:        docs,
		promptStore: promptStore,
	}
}

// codePromptData feeds the code_generation template.
type codePromptData struct {
	Package          string
	Task             string
	Doc              *domain.PackageDocument
	KeyVariablesJSON string
}

// GeneratePrompt resolves the document and renders the prompt for the task.
func (s *PromptService) GeneratePrompt(ctx context.Context, packageName, taskDescription string) (string, error) {
	doc, err := s.docs.GetPackageDocs(ctx, packageName)
	if err != nil {
		return "", err
	}

	vars := doc.KeyVariables
	if vars == nil {
		vars = []domain.KeyVariable{}
	}
	var kv bytes.Buffer
	enc := json.NewEncoder(&kv)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(vars); err != nil {
		return "", fmt.Errorf("encode key variables: %w", err)
	}

	tmpl, err := prompts.Load(s.promptStore, driven.PromptCodeGeneration)
	if err != nil {
		return "", err
	}
	return prompts.Render(driven.PromptCodeGeneration, tmpl, codePromptData{
		Package:          packageName,
		Task:             taskDescription,
		Doc:              doc,
		KeyVariablesJSON: strings.TrimSuffix(kv.String(), "\n"),
	})
}

package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pkgdocs/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pkgdocs/internal/core/domain"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
)

func TestGeneratePrompt_RendersDocument(t *testing.T) {
	store := memory.NewDocumentStore()
	svc := newTestDocsService(t, store, &mockFetcher{page: examplePage}, newMockLLM(sampleReply))
	prompts := NewPromptService(svc, nil)

	prompt, err := prompts.GeneratePrompt(context.Background(), "examplepkg", "Parse a config file.")

	require.NoError(t, err)
	assert.Contains(t, prompt, "The assistant needs to write code that uses the 'examplepkg' package.")
	assert.Contains(t, prompt, "Package Name: examplepkg\n")
	assert.Contains(t, prompt, "Version: 1.0\n")
	assert.Contains(t, prompt, "Installation: pip install examplepkg\n")
	assert.Contains(t, prompt, "Description: A sample tool.\n")
	assert.Contains(t, prompt, "Example Usage:\nimport examplepkg\nexamplepkg.run()\n")
	assert.Contains(t, prompt, "Key Variables:\n[\n  {\n    \"name\": \"run\",\n    \"description\": \"Runs the tool\"\n  },")
	assert.Contains(t, prompt, `"description": "Configuration <dict>"`)
	assert.Contains(t, prompt, "Task: Parse a config file.\n")
	assert.Contains(t, prompt, "Include any necessary imports and provide comments explaining your code.")
}

func TestGeneratePrompt_EmptyKeyVariables(t *testing.T) {
	store := memory.NewDocumentStore()
	require.NoError(t, store.Save(context.Background(), "bare", &domain.PackageDocument{Name: "bare"}))
	prompts := NewPromptService(NewDocsService(store, nil, nil), nil)

	prompt, err := prompts.GeneratePrompt(context.Background(), "bare", "anything")

	require.NoError(t, err)
	assert.Contains(t, prompt, "Key Variables:\n[]\n")
}

func TestGeneratePrompt_FailureReturnsEmptyPrompt(t *testing.T) {
	fetcher := &mockFetcher{err: fmt.Errorf("%w: status 404", domain.ErrUpstreamStatus)}
	svc := newTestDocsService(t, memory.NewDocumentStore(), fetcher, newMockLLM(sampleReply))
	prompts := NewPromptService(svc, nil)

	prompt, err := prompts.GeneratePrompt(context.Background(), "nosuchpkg", "task")

	assert.Empty(t, prompt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nosuchpkg")
	assert.Equal(t, domain.ReasonFetch, domain.ReasonOf(err))
}

func TestGeneratePrompt_TemplateOverride(t *testing.T) {
	store := memory.NewDocumentStore()
	require.NoError(t, store.Save(context.Background(), "pkg", &domain.PackageDocument{Name: "pkg", Version: "2"}))
	override := mapPromptStore{driven.PromptCodeGeneration: "{{.Doc.Name}}@{{.Doc.Version}}: {{.Task}}"}
	prompts := NewPromptService(NewDocsService(store, nil, nil), override)

	prompt, err := prompts.GeneratePrompt(context.Background(), "pkg", "do it")

	require.NoError(t, err)
	assert.Equal(t, "pkg@2: do it", prompt)
}

func TestGeneratePrompt_BrokenOverrideFails(t *testing.T) {
	store := memory.NewDocumentStore()
	require.NoError(t, store.Save(context.Background(), "pkg", &domain.PackageDocument{Name: "pkg"}))
	override := mapPromptStore{driven.PromptCodeGeneration: "{{.Missing}}"}
	prompts := NewPromptService(NewDocsService(store, nil, nil), override)

	prompt, err := prompts.GeneratePrompt(context.Background(), "pkg", "do it")

	assert.Error(t, err)
	assert.Empty(t, prompt)
}

package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/pkgdocs/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pkgdocs/internal/core/domain"
	"github.com/custodia-labs/pkgdocs/internal/core/services"
)

type mockDocsService struct {
	docs map[string]*domain.PackageDocument
	err  error
}

func (m *mockDocsService) GetPackageDocs(_ context.Context, name string) (*domain.PackageDocument, error) {
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
	if m.err != nil {
		return nil, m.err
	}
	names := make([]string, 0, len(m.docs))
	for name := range m.docs {
		names = append(names, name)
	}
	return names, nil
}

func (m *mockDocsService) Location(name string) string {
	return "package_docs/" + name + ".json"
}

type mockPromptService struct {
	lastPackage string
	lastTask    string
	err         error
}

func (m *mockPromptService) GeneratePrompt(_ context.Context, name, task string) (string, error) {
	m.lastPackage = name
	m.lastTask = task
	if m.err != nil {
		return "", m.err
	}
	return "Task: " + task, nil
}

type testEnv struct {
	docs     *mockDocsService
	prompt   *mockPromptService
	config   *memory.ConfigStore
	validate func(context.Context, *domain.LLMSettings) error
}

// setupTestServices installs mock services and resets flag state between runs.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		docs: &mockDocsService{docs: map[string]*domain.PackageDocument{
			"requests": {
				Name:         "requests",
				Version:      "2.32.3",
				Installation: "pip install requests",
				KeyVariables: []domain.KeyVariable{{Name: "timeout", Description: "seconds"}},
			},
		}},
		prompt: &mockPromptService{},
		config: memory.NewConfigStore(),
	}
	settings := services.NewSettingsService(env.config, func(ctx context.Context, s *domain.LLMSettings) error {
		if env.validate != nil {
			return env.validate(ctx, s)
		}
		return nil
	})

	SetServices(&Services{Docs: env.docs, Prompt: env.prompt, Settings: settings})

	t.Cleanup(func() {
		SetServices(&Services{})
		docsFormat = formatJSON
		llmProviderFlag, llmModelFlag = "", ""
		docsDirFlag, docsBackendFlag = "", ""
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	return env
}

// run executes the root command with args and returns combined output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func setupSettingsOnly(t *testing.T) *services.SettingsService {
	t.Helper()
	return services.NewSettingsService(memory.NewConfigStore(), nil)
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pkgdocs/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pkgdocs/internal/core/domain"
)

func newTestSettingsService(env map[string]string) (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store, nil)
	svc.getenv = func(key string) string { return env[key] }
	return svc, store
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	svc, _ := newTestSettingsService(nil)

	settings, err := svc.Get()

	require.NoError(t, err)
	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.LLM.Provider, settings.LLM.Provider)
	assert.Equal(t, defaults.Docs, settings.Docs)
	assert.Equal(t, defaults.Index, settings.Index)
	assert.Equal(t, defaults.Fetch, settings.Fetch)
	assert.Empty(t, settings.LLM.APIKey)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	svc, store := newTestSettingsService(nil)
	_ = store.Set("llm.provider", "ollama")
	_ = store.Set("llm.model", "llama3.1")
	_ = store.Set("llm.base_url", "http://gpu:11434")
	_ = store.Set("docs.dir", "/var/cache/docs")
	_ = store.Set("docs.backend", "sqlite")
	_ = store.Set("index.base_url", "https://test.pypi.org")
	_ = store.Set("fetch.timeout_seconds", 5)
	_ = store.Set("fetch.max_retries", 0)

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
	assert.Equal(t, "llama3.1", settings.LLM.Model)
	assert.Equal(t, "http://gpu:11434", settings.LLM.BaseURL)
	assert.Equal(t, "/var/cache/docs", settings.Docs.Dir)
	assert.Equal(t, domain.StorageBackendSQLite, settings.Docs.Backend)
	assert.Equal(t, "https://test.pypi.org", settings.Index.BaseURL)
	assert.Equal(t, 5*time.Second, settings.Fetch.Timeout)
	assert.Equal(t, 0, settings.Fetch.MaxRetries)
}

func TestSettingsService_Get_EnvCredentialWins(t *testing.T) {
	svc, store := newTestSettingsService(map[string]string{"OPENAI_API_KEY": "sk-env"})
	_ = store.Set("llm.api_key", "sk-config")

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, "sk-env", settings.LLM.APIKey)
}

func TestSettingsService_Get_ConfigCredentialFallback(t *testing.T) {
	svc, store := newTestSettingsService(map[string]string{"OPENAI_API_KEY": "sk-wrong-provider"})
	_ = store.Set("llm.provider", "anthropic")
	_ = store.Set("llm.api_key", "sk-ant-config")

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, "sk-ant-config", settings.LLM.APIKey)
}

func TestSettingsService_Get_MissingCredentialFailsValidation(t *testing.T) {
	svc, _ := newTestSettingsService(nil)

	settings, err := svc.Get()
	require.NoError(t, err)

	assert.ErrorIs(t, settings.Validate(), domain.ErrMissingCredential)
}

func TestSettingsService_Get_UnknownProviderIsKept(t *testing.T) {
	svc, store := newTestSettingsService(nil)
	_ = store.Set("llm.provider", "gemini")

	settings, err := svc.Get()
	require.NoError(t, err)

	assert.ErrorIs(t, settings.Validate(), domain.ErrUnsupportedProvider)
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	svc, store := newTestSettingsService(nil)

	require.NoError(t, svc.SetLLMProvider(domain.AIProviderAnthropic, "claude-haiku-4-5", ""))

	assert.Equal(t, "anthropic", store.String("llm.provider"))
	assert.Equal(t, "claude-haiku-4-5", store.String("llm.model"))
	assert.Empty(t, store.String("llm.api_key"))
	assert.ErrorIs(t, svc.SetLLMProvider("gemini", "", ""), domain.ErrUnsupportedProvider)
}

func TestSettingsService_SetLLMProvider_StoresKey(t *testing.T) {
	svc, store := newTestSettingsService(nil)

	require.NoError(t, svc.SetLLMProvider(domain.AIProviderOpenAI, "", "sk-file"))
	require.NoError(t, svc.SetLLMProvider(domain.AIProviderOpenAI, "gpt-4o-mini", ""))

	assert.Equal(t, "sk-file", store.String("llm.api_key"))
}

func TestSettingsService_SetDocsStorage(t *testing.T) {
	svc, store := newTestSettingsService(nil)

	require.NoError(t, svc.SetDocsStorage("cache", domain.StorageBackendSQLite))

	assert.Equal(t, "cache", store.String("docs.dir"))
	assert.Equal(t, "sqlite", store.String("docs.backend"))
	assert.ErrorIs(t, svc.SetDocsStorage("", domain.StorageBackendFile), domain.ErrInvalidConfig)
	assert.ErrorIs(t, svc.SetDocsStorage("x", "redis"), domain.ErrInvalidConfig)
}

func TestSettingsService_ValidateLLM(t *testing.T) {
	svc, _ := newTestSettingsService(map[string]string{"OPENAI_API_KEY": "sk-env"})
	var seen *domain.LLMSettings
	svc.validator = func(_ context.Context, s *domain.LLMSettings) error {
		seen = s
		return errors.New("unreachable")
	}

	err := svc.ValidateLLM(context.Background())

	assert.EqualError(t, err, "unreachable")
	require.NotNil(t, seen)
	assert.Equal(t, "sk-env", seen.APIKey)
}

func TestSettingsService_ValidateLLM_StopsAtMissingCredential(t *testing.T) {
	svc, _ := newTestSettingsService(nil)
	called := false
	svc.validator = func(context.Context, *domain.LLMSettings) error {
		called = true
		return nil
	}

	err := svc.ValidateLLM(context.Background())

	assert.ErrorIs(t, err, domain.ErrMissingCredential)
	assert.False(t, called)
}

func TestSettingsService_ConfigPath(t *testing.T) {
	svc, _ := newTestSettingsService(nil)
	assert.Equal(t, ":memory:", svc.ConfigPath())
}

package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMBaseURL      = "llm.base_url"
	keyLLMAPIKey       = "llm.api_key"
	keyDocsDir         = "docs.dir"
	keyDocsBackend     = "docs.backend"
	keyIndexBaseURL    = "index.base_url"
	keyFetchTimeout    = "fetch.timeout_seconds"
	keyFetchMaxRetries = "fetch.max_retries"
)

// SettingsService assembles settings from the config file and environment.
type SettingsService struct {
	configStore driven.ConfigStore
	validator   driven.LLMValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service. validator may be nil.
func NewSettingsService(configStore driven.ConfigStore, validator driven.LLMValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validator:   validator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current settings. The provider's credential environment
// variable takes precedence over llm.api_key in the config file.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	provider := domain.AIProvider(s.getString(keyLLMProvider, defaults.LLM.Provider.String()))
	apiKey := s.configStore.String(keyLLMAPIKey)
	if envVar := provider.APIKeyEnvVar(); envVar != "" {
		if v := s.getenv(envVar); v != "" {
			apiKey = v
		}
	}

	settings := &domain.Settings{
		LLM: domain.LLMSettings{
			Provider: provider,
			Model:    s.configStore.String(keyLLMModel),   // No default - adapters pick one
			BaseURL:  s.configStore.String(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   apiKey,
		},
		Docs: domain.DocsSettings{
			Dir:     s.getString(keyDocsDir, defaults.Docs.Dir),
			Backend: domain.StorageBackend(s.getString(keyDocsBackend, defaults.Docs.Backend.String())),
		},
		Index: domain.IndexSettings{
			BaseURL: s.getString(keyIndexBaseURL, defaults.Index.BaseURL),
		},
		Fetch: domain.FetchSettings{
			Timeout:      time.Duration(s.getInt(keyFetchTimeout, int(defaults.Fetch.Timeout/time.Second))) * time.Second,
			MaxRetries:   s.getInt(keyFetchMaxRetries, defaults.Fetch.MaxRetries),
			RetryBackoff: defaults.Fetch.RetryBackoff,
		},
	}

	return settings, nil
}

// SetLLMProvider updates the LLM provider, model and optionally the API key.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, provider)
	}

	if err := s.configStore.Set(keyLLMProvider, provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if apiKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, apiKey); err != nil {
			return fmt.Errorf("save llm api key: %w", err)
		}
	}
	return nil
}

// SetDocsStorage updates the cache directory and backend.
func (s *SettingsService) SetDocsStorage(dir string, backend domain.StorageBackend) error {
	if dir == "" {
		return fmt.Errorf("%w: docs dir is empty", domain.ErrInvalidConfig)
	}
	if !backend.IsValid() {
		return fmt.Errorf("%w: unknown docs backend %q", domain.ErrInvalidConfig, backend)
	}

	if err := s.configStore.Set(keyDocsDir, dir); err != nil {
		return fmt.Errorf("save docs dir: %w", err)
	}
	if err := s.configStore.Set(keyDocsBackend, backend.String()); err != nil {
		return fmt.Errorf("save docs backend: %w", err)
	}
	return nil
}

// ValidateLLM validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLM(ctx context.Context) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if s.validator == nil {
		return nil
	}
	return s.validator(ctx, &settings.LLM)
}

// ConfigPath returns the configuration file path.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.String(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt treats an explicit zero as a value, not as unset.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if v, ok := s.configStore.Int(key); ok {
		return v
	}
	return defaultVal
}

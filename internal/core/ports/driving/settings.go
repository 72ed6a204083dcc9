package driving

import (
	"context"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings: config file values overlaid with
	// environment credentials. The result is not validated.
	Get() (*domain.Settings, error)

	// SetLLMProvider configures the LLM provider and model. A non-empty
	// apiKey is stored in the config file; an empty one leaves it unchanged.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetDocsStorage configures the cache directory and backend.
	SetDocsStorage(dir string, backend domain.StorageBackend) error

	// ValidateLLM checks the current LLM settings against the provider.
	ValidateLLM(ctx context.Context) error

	// ConfigPath returns the configuration file path.
	ConfigPath() string
}

package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// APIKeyEnvVar returns the environment variable holding this provider's
// credential, or "" for providers that need none.
func (p AIProvider) APIKeyEnvVar() string {
	switch p {
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// AllAIProviders returns the supported providers in menu order.
func AllAIProviders() []AIProvider {
	return []AIProvider{AIProviderOpenAI, AIProviderAnthropic, AIProviderOllama}
}

// DefaultLLMModels returns the model each provider uses when none is set.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOpenAI:    "gpt-4o",
		AIProviderAnthropic: "claude-sonnet-4-5",
		AIProviderOllama:    "llama3.2",
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// StorageBackend selects where package documents are cached.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendFile stores one JSON file per package.
	StorageBackendFile StorageBackend = "file"

	// StorageBackendSQLite stores documents in a single SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageBackendFile || b == StorageBackendSQLite
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name. Empty selects the provider default.
	Model string

	// BaseURL is the API endpoint. Empty selects the provider default.
	BaseURL string

	// APIKey is the bearer credential (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// DocsSettings controls the document cache.
type DocsSettings struct {
	// Dir is the cache directory, relative to the working directory unless absolute.
	Dir string

	// Backend selects the storage implementation.
	Backend StorageBackend
}

// IndexSettings controls where listing pages are fetched from.
type IndexSettings struct {
	// BaseURL is the package index root, e.g. https://pypi.org.
	BaseURL string
}

// FetchSettings controls listing page retrieval.
type FetchSettings struct {
	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt for
	// transient failures. Zero disables retrying.
	MaxRetries int

	// RetryBackoff is the initial backoff between retries.
	RetryBackoff time.Duration
}

// Settings holds all application settings.
type Settings struct {
	LLM   LLMSettings
	Docs  DocsSettings
	Index IndexSettings
	Fetch FetchSettings
}

// DefaultSettings returns settings with sensible defaults.
// The credential is left empty; it comes from the environment.
func DefaultSettings() Settings {
	return Settings{
		LLM: LLMSettings{
			Provider: AIProviderOpenAI,
		},
		Docs: DocsSettings{
			Dir:     "package_docs",
			Backend: StorageBackendFile,
		},
		Index: IndexSettings{
			BaseURL: "https://pypi.org",
		},
		Fetch: FetchSettings{
			Timeout:      30 * time.Second,
			MaxRetries:   2,
			RetryBackoff: 500 * time.Millisecond,
		},
	}
}

// Validate checks the settings once at startup. A provider that needs a
// credential without one fails with ErrMissingCredential.
func (s Settings) Validate() error {
	if !s.LLM.Provider.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, s.LLM.Provider)
	}
	if s.LLM.Provider.RequiresAPIKey() && s.LLM.APIKey == "" {
		return fmt.Errorf("%w: set %s in the environment or .env file",
			ErrMissingCredential, s.LLM.Provider.APIKeyEnvVar())
	}
	if s.Docs.Dir == "" {
		return fmt.Errorf("%w: docs.dir is empty", ErrInvalidConfig)
	}
	if !s.Docs.Backend.IsValid() {
		return fmt.Errorf("%w: unknown docs.backend %q", ErrInvalidConfig, s.Docs.Backend)
	}
	if s.Index.BaseURL == "" {
		return fmt.Errorf("%w: index.base_url is empty", ErrInvalidConfig)
	}
	if s.Fetch.MaxRetries < 0 {
		return fmt.Errorf("%w: fetch.max_retries must not be negative", ErrInvalidConfig)
	}
	return nil
}

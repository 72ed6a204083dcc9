// Package ai picks and builds the LLM adapter named in the settings.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/pkgdocs/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/pkgdocs/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/pkgdocs/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/pkgdocs/internal/core/domain"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
)

const pingTimeout = 5 * time.Second

type constructor func(*domain.LLMSettings) (driven.LLMService, error)

var constructors = map[domain.AIProvider]constructor{
	domain.AIProviderOpenAI: func(s *domain.LLMSettings) (driven.LLMService, error) {
		return openaillm.NewLLMService(openaillm.LLMConfig{APIKey: s.APIKey, BaseURL: s.BaseURL, Model: s.Model})
	},
	domain.AIProviderAnthropic: func(s *domain.LLMSettings) (driven.LLMService, error) {
		return anthropicllm.NewLLMService(anthropicllm.Config{APIKey: s.APIKey, BaseURL: s.BaseURL, Model: s.Model})
	},
	domain.AIProviderOllama: func(s *domain.LLMSettings) (driven.LLMService, error) {
		return ollamallm.NewLLMService(ollamallm.LLMConfig{BaseURL: s.BaseURL, Model: s.Model}), nil
	},
}

// CreateLLMService builds the chat adapter for settings.Provider. A
// provider that needs a credential and has none fails with
// domain.ErrMissingCredential before anything is constructed.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: no LLM settings", domain.ErrInvalidConfig)
	}
	build, ok := constructors[settings.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: set %s", domain.ErrMissingCredential, settings.Provider.APIKeyEnvVar())
	}
	return build(settings)
}

// ValidateLLMConfig builds the adapter and pings it, giving up after five
// seconds. It matches driven.LLMValidator.
func ValidateLLMConfig(ctx context.Context, settings *domain.LLMSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%s unreachable: %w", settings.Provider.Description(), err)
	}
	return nil
}

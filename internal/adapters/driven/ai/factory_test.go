package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
)

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name      string
		settings  *domain.LLMSettings
		wantModel string
		wantErr   error
	}{
		{
			name:     "nil settings",
			settings: nil,
			wantErr:  domain.ErrInvalidConfig,
		},
		{
			name:     "unknown provider",
			settings: &domain.LLMSettings{Provider: "gemini"},
			wantErr:  domain.ErrUnsupportedProvider,
		},
		{
			name:     "openai without key",
			settings: &domain.LLMSettings{Provider: domain.AIProviderOpenAI},
			wantErr:  domain.ErrMissingCredential,
		},
		{
			name:     "anthropic without key",
			settings: &domain.LLMSettings{Provider: domain.AIProviderAnthropic},
			wantErr:  domain.ErrMissingCredential,
		},
		{
			name:      "openai default model",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "sk-test"},
			wantModel: "gpt-4o",
		},
		{
			name:      "anthropic custom model",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "sk-ant", Model: "claude-haiku-4-5"},
			wantModel: "claude-haiku-4-5",
		},
		{
			name:      "ollama needs no key",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llama3.1"},
			wantModel: "llama3.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, svc.ModelName())
			assert.NoError(t, svc.Close())
		})
	}
}

func TestValidateLLMConfig_PingsProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			_, _ = w.Write([]byte(`{"models":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := ValidateLLMConfig(context.Background(), &domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  srv.URL,
	})

	assert.NoError(t, err)
}

func TestValidateLLMConfig_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := ValidateLLMConfig(context.Background(), &domain.LLMSettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "sk-bad",
		BaseURL:  srv.URL,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAI (cloud) unreachable")
}

func TestValidateLLMConfig_MissingCredential(t *testing.T) {
	err := ValidateLLMConfig(context.Background(), &domain.LLMSettings{Provider: domain.AIProviderAnthropic})

	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

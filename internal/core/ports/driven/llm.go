package driven

import (
	"context"
	"errors"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
)

// ErrTransient marks LLM or fetch failures that are worth retrying:
// transport errors, rate limiting and server-side 5xx responses.
// Decode and validation failures are never wrapped with it.
var ErrTransient = errors.New("transient failure")

// LLMService provides chat completion against a single provider.
//
// Implementations include:
//   - OpenAI (and compatible APIs)
//   - Anthropic (Claude)
//   - Ollama (local models)
type LLMService interface {
	// Chat conducts a conversation and returns the assistant's reply text.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// LLMValidator checks that LLM settings reach a working provider,
// typically by constructing the service and calling Ping.
type LLMValidator func(ctx context.Context, settings *domain.LLMSettings) error

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// JSONMode asks the provider to constrain the reply to a JSON object
	// where the API supports it.
	JSONMode bool
}

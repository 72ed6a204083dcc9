// Package anthropic adapts the Anthropic Messages API, through the official
// SDK, to driven.LLMService.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/custodia-labs/pkgdocs/internal/adapters/driven/llm/llmhttp"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Defaults applied when the config leaves a field empty.
const (
	// DefaultModel is the Claude model used for synthesis.
	DefaultModel     = "claude-sonnet-4-5"
	// DefaultTimeout bounds a single Messages API request.
	DefaultTimeout   = 120 * time.Second
	// DefaultMaxTokens caps the reply length.
	DefaultMaxTokens = 4096
)

// Config configures an LLMService. APIKey is required. An empty BaseURL
// keeps the SDK's endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMService sends one Messages request per Chat call.
type LLMService struct {
	client sdk.Client
	model  string
}

// NewLLMService builds the SDK client with its own retries turned off.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &LLMService{
		client: sdk.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

// Chat lifts system messages into the request's system field. There is no
// JSON response mode in the Messages API, so JSONMode is left to the prompt.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(s.model),
		MaxTokens: DefaultMaxTokens,
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = int64(opts.MaxTokens)
	}
	if opts.Temperature > 0 {
		params.Temperature = sdk.Float(opts.Temperature)
	}
	for _, m := range messages {
		block := sdk.NewTextBlock(m.Content)
		switch m.Role {
		case driven.RoleSystem:
			params.System = append(params.System, sdk.TextBlockParam{Text: m.Content})
		case driven.RoleAssistant:
			params.Messages = append(params.Messages, sdk.NewAssistantMessage(block))
		default:
			params.Messages = append(params.Messages, sdk.NewUserMessage(block))
		}
	}

	reply, err := s.client.Messages.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}

	var text strings.Builder
	for _, block := range reply.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", errNoText
	}
	return text.String(), nil
}

var errNoText = errors.New("anthropic: reply has no text content")

// classify wraps driven.ErrTransient around retryable API statuses and
// transport failures. Cancellation stays terminal.
func classify(err error) error {
	var apiErr *sdk.Error
	switch {
	case errors.As(err, &apiErr) && llmhttp.Retryable(apiErr.StatusCode):
		return fmt.Errorf("anthropic: status %d: %w: %w", apiErr.StatusCode, driven.ErrTransient, err)
	case apiErr != nil:
		return fmt.Errorf("anthropic: status %d: %w", apiErr.StatusCode, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("anthropic: %w", err)
	default:
		return fmt.Errorf("anthropic: %w: %w", driven.ErrTransient, err)
	}
}

func (s *LLMService) ModelName() string { return s.model }

// Ping validates the API key by listing models.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := s.client.Models.List(ctx, sdk.ModelListParams{}); err != nil {
		return fmt.Errorf("anthropic: ping failed: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *LLMService) Close() error { return nil }

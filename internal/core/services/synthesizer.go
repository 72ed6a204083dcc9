package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/custodia-labs/pkgdocs/internal/core/domain"
	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
	"github.com/custodia-labs/pkgdocs/internal/core/prompts"
	"github.com/custodia-labs/pkgdocs/internal/logger"
)

// Default synthesizer settings.
const (
	DefaultSynthesisRetries = 2
	DefaultSynthesisBackoff = time.Second
)

// SynthesizerConfig tunes the completion call.
type SynthesizerConfig struct {
	// MaxRetries is the number of retries after the first attempt for
	// transient LLM failures. Decode failures are never retried.
	MaxRetries int

	// RetryBackoff is the initial exponential backoff.
	RetryBackoff time.Duration

	// MaxTokens caps the completion length. Zero leaves it to the provider.
	MaxTokens int
}

// Synthesizer turns a listing page blob into a PackageDocument with one
// logical LLM call.
type Synthesizer struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
	maxRetries  int
	backoff     time.Duration
	maxTokens   int
}

// NewSynthesizer creates a synthesizer. A nil LLM service means no provider
// could be built from the settings, reported as domain.ErrMissingCredential.
func NewSynthesizer(llm driven.LLMService, promptStore driven.PromptStore, cfg SynthesizerConfig) (*Synthesizer, error) {
	if llm == nil {
		return nil, fmt.Errorf("%w: no LLM service configured", domain.ErrMissingCredential)
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = DefaultSynthesisBackoff
	}

	return &Synthesizer{
		llm:         llm,
		promptStore: promptStore,
		maxRetries:  cfg.MaxRetries,
		backoff:     cfg.RetryBackoff,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// synthesisData feeds the synthesis_user template.
type synthesisData struct {
	Package     string
	URL         string
	PageContent string
}

// Synthesize asks the LLM for a JSON document describing the package.
// The reply is decoded as-is; fields beyond the six known ones are dropped.
func (s *Synthesizer) Synthesize(ctx context.Context, packageName, pageURL, pageContent string) (*domain.PackageDocument, error) {
	messages, err := s.buildMessages(packageName, pageURL, pageContent)
	if err != nil {
		return nil, err
	}

	opts := driven.ChatOptions{
		MaxTokens: s.maxTokens,
		JSONMode:  true,
	}

	var reply string
	attempt := 0
	backoff := retry.WithMaxRetries(uint64(s.maxRetries), retry.NewExponential(s.backoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		out, err := s.llm.Chat(ctx, messages, opts)
		if err != nil {
			if errors.Is(err, driven.ErrTransient) {
				logger.Debugw("completion failed", "model", s.llm.ModelName(), "attempt", attempt, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		reply = out
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("completion with %s: %w", s.llm.ModelName(), err)
	}

	return decodeDocument(reply)
}

func (s *Synthesizer) buildMessages(packageName, pageURL, pageContent string) ([]driven.ChatMessage, error) {
	system, err := prompts.Load(s.promptStore, driven.PromptSynthesisSystem)
	if err != nil {
		return nil, err
	}
	userTmpl, err := prompts.Load(s.promptStore, driven.PromptSynthesisUser)
	if err != nil {
		return nil, err
	}
	user, err := prompts.Render(driven.PromptSynthesisUser, userTmpl, synthesisData{
		Package:     packageName,
		URL:         pageURL,
		PageContent: pageContent,
	})
	if err != nil {
		return nil, err
	}

	return []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: system},
		{Role: driven.RoleUser, Content: user},
	}, nil
}

// decodeDocument parses an LLM reply, tolerating a surrounding markdown fence.
func decodeDocument(reply string) (*domain.PackageDocument, error) {
	body := stripCodeFence(reply)
	if body == "" {
		return nil, domain.ErrEmptyCompletion
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedDocument, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: reply is not a JSON object", domain.ErrMalformedDocument)
	}
	var doc domain.PackageDocument
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedDocument, err)
	}
	return &doc, nil
}

// stripCodeFence removes a leading ``` line (with optional language tag)
// and a trailing ``` from s.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

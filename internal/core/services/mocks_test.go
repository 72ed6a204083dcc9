package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
)

// mockFetcher returns a fixed page or error and counts calls.
type mockFetcher struct {
	page  string
	err   error
	calls int
}

func (m *mockFetcher) Fetch(_ context.Context, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.page, nil
}

func (m *mockFetcher) PageURL(packageName string) string {
	return fmt.Sprintf("https://pypi.org/project/%s/", packageName)
}

// mockLLM replays scripted results in order; the last one repeats.
type mockLLM struct {
	mu       sync.Mutex
	replies  []string
	errs     []error
	requests [][]driven.ChatMessage
	opts     []driven.ChatOptions
}

func newMockLLM(reply string) *mockLLM {
	return &mockLLM{replies: []string{reply}, errs: []error{nil}}
}

func (m *mockLLM) script(results ...any) *mockLLM {
	m.replies = nil
	m.errs = nil
	for _, r := range results {
		switch v := r.(type) {
		case error:
			m.replies = append(m.replies, "")
			m.errs = append(m.errs, v)
		case string:
			m.replies = append(m.replies, v)
			m.errs = append(m.errs, nil)
		}
	}
	return m
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := len(m.requests)
	m.requests = append(m.requests, messages)
	m.opts = append(m.opts, opts)
	if i >= len(m.replies) {
		i = len(m.replies) - 1
	}
	return m.replies[i], m.errs[i]
}

func (m *mockLLM) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mapPromptStore serves prompts from a map.
type mapPromptStore map[string]string

func (m mapPromptStore) Load(name string) (string, error) {
	if p, ok := m[name]; ok {
		return p, nil
	}
	return "", errors.New("not found")
}

func (m mapPromptStore) Reload() {}

const sampleReply = `{
  "name": "examplepkg",
  "version": "1.0",
  "installation": "pip install examplepkg",
  "description": "A sample tool.",
  "example_usage": "import examplepkg\nexamplepkg.run()",
  "key_variables": [
    {"name": "run", "description": "Runs the tool"},
    {"name": "config", "description": "Configuration <dict>"},
    {"name": "verbose", "description": "Verbose output"},
    {"name": "timeout", "description": "Seconds before giving up"},
    {"name": "retries", "description": "Retry count"}
  ]
}`

package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
	"github.com/custodia-labs/pkgdocs/internal/core/prompts"
)

var _ driven.PromptStore = (*PromptStore)(nil)

const promptExt = ".tmpl"

// PromptStore serves prompt templates from a directory of .tmpl files the
// user can edit. The directory is seeded with the built-in templates on
// first use, not on construction. A template that cannot be read falls
// back to its built-in text.
type PromptStore struct {
	dir string

	seedOnce sync.Once
	seedErr  error

	mu    sync.RWMutex
	cache map[string]string
}

// NewPromptStore returns a store rooted at dir, or ~/.pkgdocs/prompts when
// dir is empty. It does not touch the filesystem.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		base, err := DefaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(base, "prompts")
	}
	return &PromptStore{dir: dir, cache: map[string]string{}}, nil
}

// Dir returns the template directory.
func (s *PromptStore) Dir() string { return s.dir }

// Load returns the named template, trimmed of surrounding whitespace.
func (s *PromptStore) Load(name string) (string, error) {
	if err := s.ensureSeeded(); err != nil {
		if text, ok := prompts.Default(name); ok {
			return text, nil
		}
		return "", fmt.Errorf("prompt store unavailable: %w", err)
	}

	s.mu.RLock()
	text, hit := s.cache[name]
	s.mu.RUnlock()
	if hit {
		return text, nil
	}

	raw, err := os.ReadFile(s.templatePath(name))
	if err != nil {
		builtin, ok := prompts.Default(name)
		if !ok {
			return "", fmt.Errorf("load prompt %q: %w", name, err)
		}
		text = builtin
	} else {
		text = strings.TrimSpace(string(raw))
	}

	s.mu.Lock()
	if prev, raced := s.cache[name]; raced {
		text = prev
	} else {
		s.cache[name] = text
	}
	s.mu.Unlock()
	return text, nil
}

// Reload drops cached templates so the next Load reads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	clear(s.cache)
	s.mu.Unlock()
}

func (s *PromptStore) templatePath(name string) string {
	return filepath.Join(s.dir, name+promptExt)
}

func (s *PromptStore) ensureSeeded() error {
	s.seedOnce.Do(func() { s.seedErr = s.seed() })
	return s.seedErr
}

// seed creates the directory and writes every built-in template and the
// README that are not already present. Existing files are left alone.
func (s *PromptStore) seed() error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create prompt directory: %w", err)
	}
	for _, name := range prompts.Names() {
		text, _ := prompts.Default(name)
		if err := writeIfAbsent(s.templatePath(name), text); err != nil {
			return fmt.Errorf("write default prompt %q: %w", name, err)
		}
	}
	return writeIfAbsent(filepath.Join(s.dir, "README.md"), promptReadme)
}

func writeIfAbsent(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

const promptReadme = "# pkgdocs prompts\n\n" +
	"Go text/template files used by pkgdocs. Edit them to change what the model\n" +
	"is asked; delete one to get the built-in version back on the next run.\n\n" +
	"| File | Used for | Fields |\n" +
	"| --- | --- | --- |\n" +
	"| synthesis_system.tmpl | system message when summarising a listing page | none |\n" +
	"| synthesis_user.tmpl | page text and JSON schema | `.Package` `.URL` `.PageContent` |\n" +
	"| code_generation.tmpl | output of `pkgdocs prompt` | `.Package` `.Task` `.Doc.*` `.KeyVariablesJSON` |\n\n" +
	"`.Doc` has Name, Version, Installation, Description and ExampleUsage.\n"

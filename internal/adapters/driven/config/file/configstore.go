package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigFileName is the settings file inside the config directory.
const ConfigFileName = "config.toml"

// DefaultConfigDir returns ~/.pkgdocs.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pkgdocs"), nil
}

// ConfigStore keeps config.toml as a tree of tables. A dotted key walks the
// tree, so "llm.provider" is the provider entry of the [llm] table.
type ConfigStore struct {
	mu   sync.RWMutex
	path string
	tree map[string]any
}

// NewConfigStore reads <configDir>/config.toml. An empty configDir means
// DefaultConfigDir. A missing file yields an empty store; nothing is
// created until the first Set.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}
	s := &ConfigStore{path: filepath.Join(configDir, ConfigFileName)}
	tree, err := readTree(s.path)
	if err != nil {
		return nil, err
	}
	s.tree = tree
	return s, nil
}

func readTree(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	tree := map[string]any{}
	if err := toml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tree, nil
}

// find walks key through the tree. Caller holds mu.
func (s *ConfigStore) find(key string) (any, bool) {
	node := s.tree
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		child, ok := node[p].(map[string]any)
		if !ok {
			return nil, false
		}
		node = child
	}
	v, ok := node[parts[len(parts)-1]]
	return v, ok
}

func (s *ConfigStore) String(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, _ := s.find(key)
	str, _ := v.(string)
	return str
}

// Int accepts int64, which is what TOML integers decode to, and int from Set.
func (s *ConfigStore) Int(key string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, _ := s.find(key)
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

// Set updates key and rewrites the whole file with mode 0600, since it may
// hold an API key. The directory is created as needed.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.tree
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		child, ok := node[p].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[p] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value

	out, err := toml.Marshal(s.tree)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, out, 0o600)
}

func (s *ConfigStore) Path() string { return s.path }

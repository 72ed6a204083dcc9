package memory

import (
	"sync"

	"github.com/custodia-labs/pkgdocs/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map. Tests and ephemeral runs use it in
// place of the TOML file.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore returns an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

func (s *ConfigStore) lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// String returns the value for key, or "" when unset or not a string.
func (s *ConfigStore) String(key string) string {
	v, _ := s.lookup(key)
	str, _ := v.(string)
	return str
}

// Int returns the value for key and whether it was set as an integer.
func (s *ConfigStore) Int(key string) (int, bool) {
	v, _ := s.lookup(key)
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

// Set stores value under key. It never fails.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// Path reports ":memory:" since nothing is written to disk.
func (s *ConfigStore) Path() string { return ":memory:" }

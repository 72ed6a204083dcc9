package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndRead(t *testing.T) {
	s := NewConfigStore()

	require.NoError(t, s.Set("llm.provider", "openai"))
	require.NoError(t, s.Set("pypi.max_retries", 3))
	require.NoError(t, s.Set("pypi.timeout", int64(20)))

	assert.Equal(t, "openai", s.String("llm.provider"))

	n, ok := s.Int("pypi.max_retries")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = s.Int("pypi.timeout")
	assert.True(t, ok)
	assert.Equal(t, 20, n)
}

func TestConfigStore_MissingOrMistyped(t *testing.T) {
	s := NewConfigStore()
	require.NoError(t, s.Set("llm.model", 7))

	assert.Empty(t, s.String("absent"))
	assert.Empty(t, s.String("llm.model"))

	_, ok := s.Int("llm.provider")
	assert.False(t, ok)
}

func TestConfigStore_Path(t *testing.T) {
	assert.Equal(t, ":memory:", NewConfigStore().Path())
}

package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pkgdocs/internal/core/prompts"
)

func TestIsTemplateChange(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write template", fsnotify.Event{Name: "/p/code_generation.tmpl", Op: fsnotify.Write}, true},
		{"remove template", fsnotify.Event{Name: "/p/code_generation.tmpl", Op: fsnotify.Remove}, true},
		{"chmod template", fsnotify.Event{Name: "/p/code_generation.tmpl", Op: fsnotify.Chmod}, false},
		{"write readme", fsnotify.Event{Name: "/p/README.md", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTemplateChange(tt.event))
		})
	}
}

func TestPromptStore_Watch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	name := prompts.Names()[0]
	before, err := store.Load(name)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx) }()

	path := filepath.Join(dir, name+promptExt)
	require.Eventually(t, func() bool {
		// Rewrite until the watcher is registered and picks the change up.
		_ = os.WriteFile(path, []byte("custom template"), 0600)
		got, err := store.Load(name)
		return err == nil && got == "custom template"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.NotEqual(t, "custom template", before)
}

func TestPromptStore_Watch_StopsOnCancel(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, store.Watch(ctx))
}

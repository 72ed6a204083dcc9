package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture routes log output to a buffer for the duration of the test.
func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose_Toggles(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func()
		want    string
	}{
		{"debug verbose", true, func() { Debug("fetching %s", "requests") }, "[DEBUG] fetching requests\n"},
		{"debug quiet", false, func() { Debug("fetching %s", "requests") }, ""},
		{"info verbose", true, func() { Info("saved %d docs", 2) }, "[INFO] saved 2 docs\n"},
		{"info quiet", false, func() { Info("saved") }, ""},
		{"warn quiet", false, func() { Warn("prompt watcher stopped") }, "[WARN] prompt watcher stopped\n"},
		{"error quiet", false, func() { Error("synthesis failed") }, "[ERROR] synthesis failed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.verbose)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestStructuredFields(t *testing.T) {
	buf := capture(t, true)

	Debugw("cache miss", "package", "attrs")
	Warnw("retrying", "attempt", 2)
	Errorw("generation failed", "package", "requests")

	out := buf.String()
	assert.Contains(t, out, `[DEBUG] cache miss {"package": "attrs"}`)
	assert.Contains(t, out, `[WARN] retrying {"attempt": 2}`)
	assert.Contains(t, out, `[ERROR] generation failed {"package": "requests"}`)
}

func TestSection_OnlyWhenVerbose(t *testing.T) {
	buf := capture(t, false)
	Section("Synthesis")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Section("Synthesis")
	assert.Equal(t, "\n=== Synthesis ===\n", buf.String())
}

func TestConcurrentUse(t *testing.T) {
	capture(t, false)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(i%2 == 0)
			Debug("worker %d", i)
			_ = IsVerbose()
		}()
	}
	wg.Wait()
}

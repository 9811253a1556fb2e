// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dotandev/svginvert/internal/invert"
	"github.com/dotandev/svginvert/internal/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, cfg Config) (*terminal.MockRenderer, func()) {
	t.Helper()
	r := terminal.NewMockRenderer()
	w := New(invert.New(), cfg, r)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	return r, func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	}
}

func TestWatcherInitialPass(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.svg"), []byte(`<svg fill="#000000"/>`), 0o644))

	r, stop := startWatcher(t, Config{Dir: dir, OutDir: out, Suffix: "-inverted", Debounce: 10 * time.Millisecond})
	defer stop()

	require.Eventually(t, func() bool { return len(r.Lines()) >= 1 }, 5*time.Second, 10*time.Millisecond)
	got, err := os.ReadFile(filepath.Join(out, "a-inverted.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(got), `fill="#FFFFFFFF"`)
}

func TestWatcherReactsToWrites(t *testing.T) {
	dir := t.TempDir()
	r, stop := startWatcher(t, Config{Dir: dir, Suffix: "-inverted", Debounce: 10 * time.Millisecond, SkipInitial: true})
	defer stop()

	// Give the watcher a moment to register the directory.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.svg"), []byte(`<svg stroke="#FFFFFF"/>`), 0o644))

	output := filepath.Join(dir, "b-inverted.svg")
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(output)
		return err == nil && len(data) > 0
	}, 5*time.Second, 10*time.Millisecond)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(got), `stroke="#000000FF"`)

	// The output lands in the watched directory but must not be inverted again.
	time.Sleep(100 * time.Millisecond)
	_, err = os.Stat(filepath.Join(dir, "b-inverted-inverted.svg"))
	assert.True(t, os.IsNotExist(err))
	for _, line := range r.Lines() {
		assert.NotContains(t, line, "notes.txt")
	}
}

func TestWatcherReportsFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.svg"), []byte(`<svg>`), 0o644))

	r, stop := startWatcher(t, Config{Dir: dir, Suffix: "-inverted"})
	defer stop()

	require.Eventually(t, func() bool { return len(r.Lines()) >= 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, r.Lines()[0], "[X]")
	assert.Contains(t, r.Lines()[0], "bad.svg")
}

func TestWatcherMissingDir(t *testing.T) {
	w := New(invert.New(), Config{Dir: filepath.Join(t.TempDir(), "missing")}, nil)
	assert.Error(t, w.Run(context.Background()))
}

// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package terminal

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	value, exists := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if exists {
			_ = os.Setenv(key, value)
			return
		}
		_ = os.Unsetenv(key)
	})
}

func TestColorEnabled(t *testing.T) {
	devnull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatal(err)
	}
	defer devnull.Close()

	t.Run("NO_COLOR disables color", func(t *testing.T) {
		unsetEnv(t, "FORCE_COLOR")
		t.Setenv("NO_COLOR", "1")
		assert.False(t, NewANSIRenderer(devnull).IsTTY())
	})

	t.Run("FORCE_COLOR enables color", func(t *testing.T) {
		unsetEnv(t, "NO_COLOR")
		t.Setenv("FORCE_COLOR", "1")
		assert.True(t, NewANSIRenderer(devnull).IsTTY())
	})

	t.Run("TERM=dumb disables color", func(t *testing.T) {
		unsetEnv(t, "FORCE_COLOR")
		unsetEnv(t, "NO_COLOR")
		t.Setenv("TERM", "dumb")
		assert.False(t, NewANSIRenderer(devnull).IsTTY())
	})

	t.Run("non-terminal file", func(t *testing.T) {
		unsetEnv(t, "FORCE_COLOR")
		unsetEnv(t, "NO_COLOR")
		t.Setenv("TERM", "xterm")
		assert.False(t, NewANSIRenderer(devnull).IsTTY())
		assert.False(t, IsInteractive(devnull))
	})
}

func TestStatusLinesWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)

	r.Success("%s -> %s", "a.svg", "a-inverted.svg")
	r.Warning("skipped %s", "notes.txt")
	r.Failure("%s: %v", "b.svg", "syntax error")

	assert.Equal(t, "[OK] a.svg -> a-inverted.svg\n[!] skipped notes.txt\n[X] b.svg: syntax error\n", buf.String())
	assert.Empty(t, r.Swatch("#FF0000FF"))
}

func TestStatusLinesWithColor(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, true)

	r.Success("done")
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "[OK]")
	assert.Contains(t, buf.String(), "done")
}

func TestSwatch(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, true)

	assert.Contains(t, r.Swatch("#FF8000FF"), "48;2;255;128;0")
	assert.Contains(t, r.Swatch("#FF8000"), "48;2;255;128;0")
	assert.Empty(t, r.Swatch("red"))
	assert.Empty(t, r.Swatch("#GG0000"))
}

func TestMockRenderer(t *testing.T) {
	m := NewMockRenderer()
	m.Success("a")
	m.Failure("b %d", 2)
	assert.Equal(t, []string{"[OK] a", "[X] b 2"}, m.Lines())
	assert.Empty(t, m.Swatch("#000000FF"))

	m.TTY = true
	assert.Equal(t, "[#000000FF]", m.Swatch("#000000FF"))
}

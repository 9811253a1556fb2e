// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dotandev/svginvert/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the search paths and working directory at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	orig := searchPaths
	searchPaths = func() []string { return []string{filepath.Join(dir, ".svginvert.toml")} }
	t.Cleanup(func() { searchPaths = orig })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "css", cfg.Parser)
	assert.Equal(t, 2, cfg.Indent)
	assert.Equal(t, "  ", cfg.IndentString())
	assert.True(t, cfg.Strict)
	assert.Equal(t, "-inverted", cfg.OutputSuffix)
	assert.Positive(t, cfg.Workers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Parser, cfg.Parser)
	assert.Empty(t, cfg.Source)
}

func TestLoadTOMLFromSearchPath(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".svginvert.toml"), `
parser = "svg"
indent = 4
strict = false
workers = 3
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "svg", cfg.Parser)
	assert.Equal(t, 4, cfg.Indent)
	assert.False(t, cfg.Strict)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "-inverted", cfg.OutputSuffix, "keys absent from the file keep their defaults")
	assert.Equal(t, filepath.Join(dir, ".svginvert.toml"), cfg.Source)
}

func TestLoadExplicitPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, `output_suffix = "-dark"`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "-dark", cfg.OutputSuffix)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, errors.ErrConfig)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, `colour = "css"`)

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfig)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".svginvert.toml"), "parser = \"svg\"\nindent = 4\n")

	t.Setenv("SVGINVERT_PARSER", "css")
	t.Setenv("SVGINVERT_INDENT", "0")
	t.Setenv("SVGINVERT_TRACING", "yes")
	t.Setenv("SVGINVERT_ADDR", "127.0.0.1:9999")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "css", cfg.Parser)
	assert.Equal(t, 0, cfg.Indent)
	assert.Equal(t, "", cfg.IndentString())
	assert.True(t, cfg.Tracing)
	assert.Equal(t, "127.0.0.1:9999", cfg.ServeAddr)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "SVGINVERT_OUTPUT_SUFFIX=-neg\nSVGINVERT_WORKERS=5\n")
	t.Setenv("SVGINVERT_WORKERS", "2")
	// Load sets variables from .env; make sure the test leaves no trace.
	t.Setenv("SVGINVERT_OUTPUT_SUFFIX", "")
	require.NoError(t, os.Unsetenv("SVGINVERT_OUTPUT_SUFFIX"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "-neg", cfg.OutputSuffix)
	assert.Equal(t, 2, cfg.Workers, ".env must not override the environment")
}

func TestLoadInvalidEnvironment(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SVGINVERT_INDENT", "two"},
		{"SVGINVERT_STRICT", "maybe"},
		{"SVGINVERT_WORKERS", "0"},
		{"SVGINVERT_PARSER", "hsl"},
		{"SVGINVERT_LOG_LEVEL", "verbose"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			assert.ErrorIs(t, err, errors.ErrConfig)
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "on"} {
		b, err := parseBool(v)
		require.NoError(t, err)
		assert.True(t, b, v)
	}
	for _, v := range []string{"0", "false", "no", "off"} {
		b, err := parseBool(v)
		require.NoError(t, err)
		assert.False(t, b, v)
	}
	_, err := parseBool("sometimes")
	assert.Error(t, err)
}

func TestConfigString(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 4
	assert.Equal(t, "Config{Parser: css, Indent: 2, Strict: true, Workers: 4, LogLevel: warn}", cfg.String())
}

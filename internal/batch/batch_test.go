// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dotandev/svginvert/internal/errors"
	"github.com/dotandev/svginvert/internal/invert"
	"github.com/dotandev/svginvert/internal/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSVG(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, outDir, suffix, want string
	}{
		{"icons/a.svg", "", "-inverted", filepath.Join("icons", "a-inverted.svg")},
		{"icons/a.svg", "out", "-dark", filepath.Join("out", "a-dark.svg")},
		{"icons/a.b.SVG", "out", "-x", filepath.Join("out", "a.b-x.SVG")},
		{"noext", "out", "-x", filepath.Join("out", "noext-x")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputPath(tt.input, tt.outDir, tt.suffix), tt.input)
	}
}

func TestPlan(t *testing.T) {
	dir := t.TempDir()
	writeSVG(t, filepath.Join(dir, "b.svg"), "<svg/>")
	writeSVG(t, filepath.Join(dir, "a.svg"), "<svg/>")
	writeSVG(t, filepath.Join(dir, "a-inverted.svg"), "<svg/>")
	writeSVG(t, filepath.Join(dir, "notes.txt"), "x")
	writeSVG(t, filepath.Join(dir, "sub", "c.svg"), "<svg/>")

	out := filepath.Join(dir, "out")
	jobs, err := Plan([]string{dir, filepath.Join(dir, "a.svg")}, out, "-inverted")
	require.NoError(t, err)

	assert.Equal(t, []Job{
		{Input: filepath.Join(dir, "a.svg"), Output: filepath.Join(out, "a-inverted.svg")},
		{Input: filepath.Join(dir, "b.svg"), Output: filepath.Join(out, "b-inverted.svg")},
		{Input: filepath.Join(dir, "sub", "c.svg"), Output: filepath.Join(out, "sub", "c-inverted.svg")},
	}, jobs)
}

func TestPlanKeepsSubdirectoriesApart(t *testing.T) {
	dir := t.TempDir()
	writeSVG(t, filepath.Join(dir, "a", "icon.svg"), `<svg fill="#000"/>`)
	writeSVG(t, filepath.Join(dir, "b", "icon.svg"), `<svg fill="#fff"/>`)
	out := filepath.Join(t.TempDir(), "out")

	jobs, err := Plan([]string{dir}, out, "-inverted")
	require.NoError(t, err)
	assert.Equal(t, []Job{
		{Input: filepath.Join(dir, "a", "icon.svg"), Output: filepath.Join(out, "a", "icon-inverted.svg")},
		{Input: filepath.Join(dir, "b", "icon.svg"), Output: filepath.Join(out, "b", "icon-inverted.svg")},
	}, jobs)

	sum, err := NewProcessor(invert.New(), 2, nil).Run(context.Background(), jobs)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Succeeded)

	a, err := os.ReadFile(filepath.Join(out, "a", "icon-inverted.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(a), `fill="#FFFFFFFF"`)
	b, err := os.ReadFile(filepath.Join(out, "b", "icon-inverted.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `fill="#000000FF"`)
}

func TestPlanRejectsSharedOutput(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a", "icon.svg")
	b := filepath.Join(dir, "b", "icon.svg")
	writeSVG(t, a, "<svg/>")
	writeSVG(t, b, "<svg/>")

	_, err := Plan([]string{a, b}, filepath.Join(dir, "out"), "-inverted")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would both be written to")

	jobs, err := Plan([]string{a, b}, "", "-inverted")
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestPlanMissingInput(t *testing.T) {
	_, err := Plan([]string{filepath.Join(t.TempDir(), "missing.svg")}, "", "-inverted")
	assert.Error(t, err)
}

func TestProcessorRun(t *testing.T) {
	dir := t.TempDir()
	writeSVG(t, filepath.Join(dir, "a.svg"), `<svg><rect fill="#FF0000"/></svg>`)
	writeSVG(t, filepath.Join(dir, "b.svg"), `<svg><rect fill="#FF0000" stroke="#000000"/></svg>`)
	writeSVG(t, filepath.Join(dir, "broken.svg"), `<svg><rect></svg>`)

	out := filepath.Join(dir, "out")
	jobs, err := Plan([]string{dir}, out, "-inverted")
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	inv := invert.New()
	r := terminal.NewMockRenderer()
	sum, err := NewProcessor(inv, 2, r).Run(context.Background(), jobs)
	require.NoError(t, err)

	assert.NotEmpty(t, sum.RunID)
	assert.Equal(t, 2, sum.Succeeded)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 3, sum.Total.ColorsRewritten)
	assert.Equal(t, 2, inv.Cache().Len(), "the cache is shared across files")

	failure := sum.Err()
	require.Error(t, failure)
	assert.True(t, errors.IsRead(failure))
	assert.Contains(t, failure.Error(), "broken.svg")

	got, err := os.ReadFile(filepath.Join(out, "a-inverted.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<svg>\n  <rect fill=\"#00FFFFFF\"/>\n</svg>\n", string(got))

	_, err = os.Stat(filepath.Join(out, "broken-inverted.svg"))
	assert.True(t, os.IsNotExist(err), "failed files leave no output")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files are left behind")

	assert.Len(t, r.Lines(), 3)
}

func TestProcessorRunCancelled(t *testing.T) {
	dir := t.TempDir()
	writeSVG(t, filepath.Join(dir, "a.svg"), `<svg/>`)
	jobs, err := Plan([]string{dir}, "", "-inverted")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewProcessor(invert.New(), 1, nil).Run(ctx, jobs)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := ProcessFile(context.Background(), invert.New(), filepath.Join(dir, "nope.svg"), filepath.Join(dir, "out.svg"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out.svg")
	st, err := WriteFile(context.Background(), invert.New(), strings.NewReader(`<svg fill="red"/>`), out)
	require.NoError(t, err)
	assert.Equal(t, 1, st.ColorsRewritten)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), `fill="#00FFFFFF"`)
}

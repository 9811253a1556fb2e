// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

// Package batch inverts many files concurrently through one shared Inverter,
// so a color seen in one file is computed once for the whole batch.
package batch

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dotandev/svginvert/internal/invert"
	"github.com/dotandev/svginvert/internal/logger"
	"github.com/dotandev/svginvert/internal/terminal"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Job maps one input file to its output path.
type Job struct {
	Input  string
	Output string
}

// Result is the outcome of one Job.
type Result struct {
	Job
	Stats    invert.Stats
	Duration time.Duration
	Err      error
}

// Summary aggregates a batch.
type Summary struct {
	RunID     string
	Results   []Result
	Succeeded int
	Failed    int
	Total     invert.Stats
}

// Err joins the errors of every failed job.
func (s Summary) Err() error {
	var errs []error
	for _, r := range s.Results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Input, r.Err))
		}
	}
	return stderrors.Join(errs...)
}

// OutputPath returns the output file for input: the base name with suffix
// inserted before the extension, placed in outDir, or beside the input when
// outDir is empty.
func OutputPath(input, outDir, suffix string) string {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+suffix+ext)
}

// IsSVG reports whether path has an .svg extension.
func IsSVG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".svg")
}

// Plan expands inputs into jobs. Directories are walked recursively for .svg
// files; files that already carry suffix are skipped so repeated runs do not
// invert their own output. Explicit file arguments are always kept. Under
// outDir, files found in a directory keep their path relative to it. Two
// inputs that would share an output path are rejected.
func Plan(inputs []string, outDir, suffix string) ([]Job, error) {
	seen := make(map[string]bool)
	owners := make(map[string]string)
	var jobs []Job
	add := func(path, dir string) error {
		if seen[path] {
			return nil
		}
		output := OutputPath(path, dir, suffix)
		if prev, ok := owners[output]; ok {
			return fmt.Errorf("%s and %s would both be written to %s", prev, path, output)
		}
		seen[path] = true
		owners[output] = path
		jobs = append(jobs, Job{Input: path, Output: output})
		return nil
	}

	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if err := add(in, outDir); err != nil {
				return nil, err
			}
			continue
		}

		var found []string
		err = filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !IsSVG(path) || IsOutput(path, suffix) {
				return nil
			}
			found = append(found, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		for _, path := range found {
			dir := outDir
			if outDir != "" {
				rel, err := filepath.Rel(in, filepath.Dir(path))
				if err != nil {
					return nil, err
				}
				dir = filepath.Join(outDir, rel)
			}
			if err := add(path, dir); err != nil {
				return nil, err
			}
		}
	}
	return jobs, nil
}

// IsOutput reports whether path looks like a file this tool wrote with suffix.
func IsOutput(path, suffix string) bool {
	if suffix == "" {
		return false
	}
	base := filepath.Base(path)
	return strings.HasSuffix(strings.TrimSuffix(base, filepath.Ext(base)), suffix)
}

// Processor runs jobs with bounded concurrency.
type Processor struct {
	inv      *invert.Inverter
	workers  int
	renderer terminal.Renderer
}

// NewProcessor returns a Processor running at most workers jobs at a time.
// A nil renderer discards status lines.
func NewProcessor(inv *invert.Inverter, workers int, r terminal.Renderer) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{inv: inv, workers: workers, renderer: r}
}

// Run processes every job. A failing job does not stop the others; it is
// recorded in the summary. Only cancellation of ctx ends the batch early,
// and is then returned.
func (p *Processor) Run(ctx context.Context, jobs []Job) (Summary, error) {
	sum := Summary{RunID: uuid.NewString(), Results: make([]Result, len(jobs))}
	log := logger.Logger.With("run_id", sum.RunID)
	log.Debug("Batch started", "jobs", len(jobs), "workers", p.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			start := time.Now()
			st, err := ProcessFile(gctx, p.inv, job.Input, job.Output)
			res := Result{Job: job, Stats: st, Duration: time.Since(start), Err: err}

			sum.Results[i] = res

			p.report(res)
			if err != nil {
				log.Debug("File failed", "input", job.Input, "error", err)
				if ctx.Err() != nil {
					return ctx.Err()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	for _, r := range sum.Results {
		if r.Err != nil {
			sum.Failed++
			continue
		}
		sum.Succeeded++
		sum.Total.Add(r.Stats)
	}
	log.Debug("Batch finished", "succeeded", sum.Succeeded, "failed", sum.Failed,
		"colors_rewritten", sum.Total.ColorsRewritten, "cache_entries", p.inv.Cache().Len())
	return sum, nil
}

func (p *Processor) report(r Result) {
	if p.renderer == nil {
		return
	}
	if r.Err != nil {
		p.renderer.Failure("%s: %v", r.Input, r.Err)
		return
	}
	p.renderer.Success("%s -> %s (%d colors, %s)", r.Input, r.Output,
		r.Stats.ColorsRewritten, r.Duration.Round(time.Millisecond))
}

// ProcessFile inverts input into output.
func ProcessFile(ctx context.Context, inv *invert.Inverter, input, output string) (invert.Stats, error) {
	in, err := os.Open(input)
	if err != nil {
		return invert.Stats{}, err
	}
	defer in.Close()
	return WriteFile(ctx, inv, in, output)
}

// WriteFile inverts the document read from r into output. The document is
// written to a temporary file in the same directory and renamed into place,
// so a failed run never leaves a truncated document behind.
func WriteFile(ctx context.Context, inv *invert.Inverter, r io.Reader, output string) (invert.Stats, error) {
	dir := filepath.Dir(output)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return invert.Stats{}, err
	}
	tmp, err := os.CreateTemp(dir, ".svginvert-*")
	if err != nil {
		return invert.Stats{}, err
	}
	defer os.Remove(tmp.Name())

	st, err := inv.Run(ctx, r, tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return st, err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return st, err
	}
	return st, os.Rename(tmp.Name(), output)
}

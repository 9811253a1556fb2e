// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

// Package watch re-inverts SVG files in a directory whenever they change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dotandev/svginvert/internal/batch"
	"github.com/dotandev/svginvert/internal/invert"
	"github.com/dotandev/svginvert/internal/logger"
	"github.com/dotandev/svginvert/internal/terminal"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// DefaultDebounce coalesces the burst of write events an editor produces
// when saving.
const DefaultDebounce = 100 * time.Millisecond

// Config selects the watched directory and where inverted files go.
type Config struct {
	Dir    string
	OutDir string
	Suffix string
	// Debounce is how long a file must be quiet before it is processed.
	Debounce time.Duration
	// SkipInitial disables inverting the files already present at start.
	SkipInitial bool
}

// Watcher inverts files in Config.Dir on create and write.
type Watcher struct {
	cfg      Config
	inv      *invert.Inverter
	renderer terminal.Renderer
}

// New returns a Watcher. A nil renderer keeps status lines in memory.
func New(inv *invert.Inverter, cfg Config, r terminal.Renderer) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if r == nil {
		r = terminal.NewMockRenderer()
	}
	return &Watcher{cfg: cfg, inv: inv, renderer: r}
}

// Run watches until ctx is done. The directory is not watched recursively.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.cfg.Dir, err)
	}

	log := logger.Logger.With("watch_id", uuid.NewString(), "dir", w.cfg.Dir)
	log.Info("Watching for changes")

	if !w.cfg.SkipInitial {
		jobs, err := batch.Plan([]string{w.cfg.Dir}, w.cfg.OutDir, w.cfg.Suffix)
		if err != nil {
			return err
		}
		for _, job := range jobs {
			if filepath.Dir(job.Input) != filepath.Clean(w.cfg.Dir) || w.isOwnOutput(job.Input) {
				continue
			}
			w.process(ctx, job.Input)
		}
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(w.cfg.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Watch stopped")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !batch.IsSVG(ev.Name) || w.isOwnOutput(ev.Name) {
				continue
			}
			log.Debug("Change detected", "file", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = true
			timer.Reset(w.cfg.Debounce)

		case <-timer.C:
			for path := range pending {
				w.process(ctx, path)
				delete(pending, path)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error", "error", err)
		}
	}
}

// isOwnOutput reports whether path is something this watcher writes, which
// must not trigger another run.
func (w *Watcher) isOwnOutput(path string) bool {
	out := filepath.Clean(w.cfg.OutDir)
	if w.cfg.OutDir != "" && out != filepath.Clean(w.cfg.Dir) && filepath.Dir(path) == out {
		return true
	}
	return batch.IsOutput(path, w.cfg.Suffix)
}

func (w *Watcher) process(ctx context.Context, input string) {
	output := batch.OutputPath(input, w.cfg.OutDir, w.cfg.Suffix)
	st, err := batch.ProcessFile(ctx, w.inv, input, output)
	if err != nil {
		w.renderer.Failure("%s: %v", input, err)
		return
	}
	w.renderer.Success("%s -> %s (%d colors)", input, output, st.ColorsRewritten)
}

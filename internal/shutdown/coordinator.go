// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

// Package shutdown tears down long-running commands (watch, serve) in the
// reverse order their resources were acquired.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dotandev/svginvert/internal/logger"
)

// HookFunc releases one resource.
type HookFunc func(context.Context) error

type hook struct {
	name string
	fn   HookFunc
}

// Coordinator runs registered hooks exactly once, last registered first.
type Coordinator struct {
	mu    sync.Mutex
	hooks []hook
	ran   bool
}

func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Register adds a hook. Hooks registered after Run are ignored.
func (c *Coordinator) Register(name string, fn HookFunc) {
	if fn == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ran {
		return
	}
	c.hooks = append(c.hooks, hook{name: name, fn: fn})
}

// Len returns the number of pending hooks.
func (c *Coordinator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ran {
		return 0
	}
	return len(c.hooks)
}

// Run calls every hook in LIFO order and joins their errors. The deadline of
// ctx, if any, is split evenly across the hooks still to run. Later calls are
// no-ops.
func (c *Coordinator) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.ran {
		c.mu.Unlock()
		return nil
	}
	c.ran = true
	hooks := c.hooks
	c.hooks = nil
	c.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		start := time.Now()

		hookCtx, cancel := hookContext(ctx, i+1)
		err := h.fn(hookCtx)
		cancel()

		if err != nil {
			logger.Logger.Warn("Shutdown hook failed", "hook", h.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
			continue
		}
		logger.Logger.Debug("Shutdown hook finished", "hook", h.name, "duration", time.Since(start))
	}
	return errors.Join(errs...)
}

func hookContext(ctx context.Context, remainingHooks int) (context.Context, context.CancelFunc) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return context.WithCancel(ctx)
	}
	left := time.Until(deadline)
	if left <= 0 {
		return context.WithTimeout(ctx, time.Millisecond)
	}
	return context.WithTimeout(ctx, left/time.Duration(remainingHooks))
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

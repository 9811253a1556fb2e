// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dotandev/svginvert/internal/logger"
	"github.com/dotandev/svginvert/internal/shutdown"
)

const shutdownTimeout = 3 * time.Second

// activeCoordinator collects the hooks of the command being executed.
var activeCoordinator atomic.Pointer[shutdown.Coordinator]

func setShutdownCoordinator(c *shutdown.Coordinator) {
	activeCoordinator.Store(c)
}

func clearShutdownCoordinator() {
	activeCoordinator.Store(nil)
}

// registerShutdownHook is a no-op outside execute, e.g. in unit tests that
// call RunE directly.
func registerShutdownHook(name string, fn shutdown.HookFunc) {
	if c := activeCoordinator.Load(); c != nil {
		c.Register(name, fn)
	}
}

func runShutdownHooksWithTimeout(c *shutdown.Coordinator, timeout time.Duration) {
	if c == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := c.Run(ctx); err != nil {
		logger.Logger.Warn("Shutdown hooks completed with errors", "error", err)
	}
}

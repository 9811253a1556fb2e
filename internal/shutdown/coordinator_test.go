// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatorRunsLIFOOnce(t *testing.T) {
	c := NewCoordinator()
	var order []string
	for _, name := range []string{"watcher", "server", "exporter"} {
		c.Register(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}
	assert.Equal(t, 3, c.Len())

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, []string{"exporter", "server", "watcher"}, order)

	order = nil
	require.NoError(t, c.Run(context.Background()))
	assert.Empty(t, order)
	assert.Zero(t, c.Len())
}

func TestCoordinatorIgnoresLateAndNilHooks(t *testing.T) {
	c := NewCoordinator()
	c.Register("nil", nil)
	assert.Zero(t, c.Len())

	require.NoError(t, c.Run(context.Background()))

	called := false
	c.Register("late", func(context.Context) error { called = true; return nil })
	require.NoError(t, c.Run(context.Background()))
	assert.False(t, called)
}

func TestCoordinatorJoinsErrors(t *testing.T) {
	c := NewCoordinator()
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	c.Register("a", func(context.Context) error { return errA })
	c.Register("b", func(context.Context) error { return errB })
	ranAfterFailure := false
	c.Register("c", func(context.Context) error { ranAfterFailure = true; return nil })

	err := c.Run(context.Background())
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Contains(t, err.Error(), "a: a failed")
	assert.True(t, ranAfterFailure)
}

func TestCoordinatorSplitsDeadline(t *testing.T) {
	c := NewCoordinator()
	var budgets []time.Duration
	for i := 0; i < 2; i++ {
		c.Register("hook", func(ctx context.Context) error {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			budgets = append(budgets, time.Until(deadline))
			return nil
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.Run(ctx))

	require.Len(t, budgets, 2)
	assert.LessOrEqual(t, budgets[0], time.Second, "first hook gets half of the budget")
}

func TestSignalContextCancel(t *testing.T) {
	ctx, stop := SignalContext(context.Background())
	stop()
	<-ctx.Done()
	assert.Error(t, ctx.Err())
}

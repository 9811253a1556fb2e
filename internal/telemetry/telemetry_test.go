// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabled(t *testing.T) {
	cleanup, err := Init(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	cleanup()
}

func TestInitUnreachableCollector(t *testing.T) {
	// The exporter connects lazily, so a missing collector must not fail Init.
	cleanup, err := Init(context.Background(), Config{
		Enabled:     true,
		ExporterURL: "localhost:4318",
		ServiceName: "test-service",
	})
	require.NoError(t, err)
	cleanup()

	_, span := GetTracer().Start(context.Background(), "test-span")
	span.End()
}

func TestExporterOptions(t *testing.T) {
	assert.Len(t, exporterOptions(""), 1)
	assert.Len(t, exporterOptions("https://collector:4318/v1/traces"), 1)
	assert.Len(t, exporterOptions("http://collector:4318/v1/traces"), 2)
	assert.Len(t, exporterOptions("collector:4318"), 2)
}

func TestGetTracer(t *testing.T) {
	tracer := GetTracer()
	require.NotNil(t, tracer)

	_, span := tracer.Start(context.Background(), "test-span")
	span.End()
}

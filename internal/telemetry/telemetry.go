// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

// Package telemetry configures OpenTelemetry tracing for svginvert.
package telemetry

import (
	"context"
	"strings"
	"time"

	"github.com/dotandev/svginvert/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// TracerName identifies spans created by svginvert.
const TracerName = "svginvert"

// Config holds OpenTelemetry configuration
type Config struct {
	Enabled        bool
	ExporterURL    string
	ServiceName    string
	ServiceVersion string
}

// Init installs a global tracer provider exporting over OTLP/HTTP. When
// tracing is disabled the global no-op provider stays in place. The returned
// function flushes pending spans and must be called on exit.
func Init(ctx context.Context, config Config) (func(), error) {
	if !config.Enabled {
		return func() {}, nil
	}
	if config.ServiceName == "" {
		config.ServiceName = TracerName
	}
	if config.ServiceVersion == "" {
		config.ServiceVersion = "dev"
	}

	exporter, err := otlptracehttp.New(ctx, exporterOptions(config.ExporterURL)...)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	logger.Logger.Debug("Tracing enabled", "exporter", config.ExporterURL)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Logger.Debug("Trace exporter shutdown failed", "error", err)
		}
	}, nil
}

// exporterOptions accepts either a bare host:port or a URL. Plain http URLs
// and bare endpoints are exported without TLS.
func exporterOptions(url string) []otlptracehttp.Option {
	switch {
	case url == "":
		return []otlptracehttp.Option{otlptracehttp.WithInsecure()}
	case strings.HasPrefix(url, "https://"):
		return []otlptracehttp.Option{otlptracehttp.WithEndpointURL(url)}
	case strings.HasPrefix(url, "http://"):
		return []otlptracehttp.Option{otlptracehttp.WithEndpointURL(url), otlptracehttp.WithInsecure()}
	default:
		return []otlptracehttp.Option{otlptracehttp.WithEndpoint(url), otlptracehttp.WithInsecure()}
	}
}

// GetTracer returns the global tracer instance
func GetTracer() oteltrace.Tracer {
	return otel.Tracer(TracerName)
}

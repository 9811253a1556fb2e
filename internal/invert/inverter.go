// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

// Package invert rewrites the fill and stroke colors of an XML document while
// streaming it from a reader to a writer.
package invert

import (
	"context"
	"io"

	"github.com/dotandev/svginvert/internal/cache"
	"github.com/dotandev/svginvert/internal/colors"
	"github.com/dotandev/svginvert/internal/errors"
	"github.com/dotandev/svginvert/internal/logger"
	"github.com/dotandev/svginvert/internal/telemetry"
	"github.com/dotandev/svginvert/internal/xmlstream"
	"go.opentelemetry.io/otel/attribute"
)

// Stats describes one run.
type Stats struct {
	EventsRead       int `json:"events_read"`
	EventsWritten    int `json:"events_written"`
	EventsSuppressed int `json:"events_suppressed"`
	ColorsRewritten  int `json:"colors_rewritten"`
	CacheHits        int `json:"cache_hits"`
	CacheMisses      int `json:"cache_misses"`
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.EventsRead += o.EventsRead
	s.EventsWritten += o.EventsWritten
	s.EventsSuppressed += o.EventsSuppressed
	s.ColorsRewritten += o.ColorsRewritten
	s.CacheHits += o.CacheHits
	s.CacheMisses += o.CacheMisses
}

// Inverter processes documents. Its color cache lives as long as the Inverter,
// and Run may be called from several goroutines at once.
type Inverter struct {
	parser colors.Parser
	cache  *cache.Cache
	indent string
	strict bool
}

// Option configures an Inverter.
type Option func(*Inverter)

// WithParser selects the color parser. The default is colors.CSS.
func WithParser(p colors.Parser) Option {
	return func(inv *Inverter) {
		if p != nil {
			inv.parser = p
		}
	}
}

// WithIndent sets the output indentation per level; "" disables it.
func WithIndent(indent string) Option {
	return func(inv *Inverter) {
		inv.indent = indent
	}
}

// WithStrict toggles strict XML parsing. It is on by default.
func WithStrict(strict bool) Option {
	return func(inv *Inverter) {
		inv.strict = strict
	}
}

// New returns an Inverter with an empty cache.
func New(opts ...Option) *Inverter {
	inv := &Inverter{
		parser: colors.CSS,
		indent: xmlstream.DefaultIndent,
		strict: true,
	}
	for _, opt := range opts {
		opt(inv)
	}
	inv.cache = cache.New(colors.NewInverter(inv.parser).Invert)
	return inv
}

// Invert runs a fresh Inverter over one document.
func Invert(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	return New().Run(ctx, r, w)
}

// Parser returns the color parser in use.
func (inv *Inverter) Parser() colors.Parser {
	return inv.parser
}

// Cache exposes the color cache shared by every run.
func (inv *Inverter) Cache() *cache.Cache {
	return inv.cache
}

// InvertColor returns the inverted form of one literal through the cache.
func (inv *Inverter) InvertColor(literal string) string {
	return inv.cache.LookupOrCompute(literal)
}

// Run streams the document in r to w, one event at a time. A tokenizer failure
// is returned wrapping errors.ErrRead and an emitter failure wrapping
// errors.ErrWrite; the first one ends the run. Unparseable colors never fail
// a run. Cancelling ctx stops the run before the next event.
func (inv *Inverter) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	ctx, span := telemetry.GetTracer().Start(ctx, "svginvert.invert")
	defer span.End()
	span.SetAttributes(attribute.String("svginvert.parser", inv.parser.Name()))

	var st Stats
	tr := NewTranslator(&Rewriter{cache: inv.cache, stats: &st})
	src := xmlstream.NewReader(r, xmlstream.WithStrict(inv.strict))
	dst := xmlstream.NewWriter(w, xmlstream.WithIndent(inv.indent))

	err := pump(ctx, src, dst, tr, &st)
	if err == nil {
		if cerr := dst.Close(); cerr != nil {
			err = errors.WrapWrite(cerr)
		}
	}

	span.SetAttributes(
		attribute.Int("svginvert.events_read", st.EventsRead),
		attribute.Int("svginvert.events_written", st.EventsWritten),
		attribute.Int("svginvert.colors_rewritten", st.ColorsRewritten),
		attribute.Int("svginvert.cache_hits", st.CacheHits),
		attribute.Int("svginvert.cache_misses", st.CacheMisses),
	)
	if err != nil {
		span.RecordError(err)
		return st, err
	}

	logger.Logger.Debug("Document inverted",
		"events_read", st.EventsRead,
		"events_written", st.EventsWritten,
		"events_suppressed", st.EventsSuppressed,
		"colors_rewritten", st.ColorsRewritten,
		"cache_hits", st.CacheHits,
		"cache_misses", st.CacheMisses,
	)
	return st, nil
}

func pump(ctx context.Context, src *xmlstream.Reader, dst *xmlstream.Writer, tr *Translator, st *Stats) error {
	for ev, err := range src.All() {
		if err != nil {
			return errors.WrapRead(err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		st.EventsRead++

		out, ok := tr.Translate(ev)
		if !ok {
			st.EventsSuppressed++
			continue
		}
		if err := dst.Write(out); err != nil {
			return errors.WrapWrite(err)
		}
		st.EventsWritten++
	}
	return nil
}

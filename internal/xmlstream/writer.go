// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package xmlstream

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultIndent is the per-level indentation used unless WithIndent says
// otherwise.
const DefaultIndent = "  "

type openElement struct {
	name      string
	hasMarkup bool
	hasText   bool
}

// Writer serializes events as XML. Element structure is indented one level
// per depth; character data is written verbatim, so elements holding text
// are never re-indented. Elements without content are written self-closing.
type Writer struct {
	w      *bufio.Writer
	indent string

	stack   []openElement
	tagOpen bool
	wrote   bool
	err     error
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithIndent sets the per-level indentation. An empty string disables
// pretty-printing.
func WithIndent(indent string) WriterOption {
	return func(w *Writer) {
		w.indent = indent
	}
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	xw := &Writer{w: bufio.NewWriter(w), indent: DefaultIndent}
	for _, opt := range opts {
		opt(xw)
	}
	return xw
}

// Write serializes one event. End-document events are accepted and ignored.
// The first error is sticky.
func (w *Writer) Write(ev Event) error {
	if w.err != nil {
		return w.err
	}

	switch ev.Kind {
	case KindStartDocument:
		w.startDocument(ev)
	case KindStartElement:
		w.startElement(ev)
	case KindEndElement:
		w.endElement()
	case KindCharacters:
		w.text(ev.Text)
	case KindWhitespace:
		if len(w.stack) > 0 {
			w.text(ev.Text)
		}
	case KindCData:
		w.cdata(ev.Text)
	case KindComment:
		if strings.Contains(ev.Text, "--") || strings.HasSuffix(ev.Text, "-") {
			w.fail("comment must not contain \"--\" or end in \"-\"")
			break
		}
		w.markup()
		w.writeString("<!--" + ev.Text + "-->")
	case KindProcInst:
		w.procInst(ev.Target, ev.Text)
	case KindDirective:
		w.markup()
		w.writeString("<!" + ev.Text + ">")
	case KindEndDocument:
	default:
		w.fail("cannot write event of kind " + ev.Kind.String())
	}
	return w.err
}

// Flush writes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

// Close checks that every element was closed, terminates the output with a
// newline when indenting, and flushes.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if n := len(w.stack); n > 0 {
		w.fail("element <" + w.stack[n-1].name + "> is not closed")
		return w.err
	}
	if w.wrote && w.indent != "" {
		w.writeString("\n")
	}
	return w.Flush()
}

func (w *Writer) startDocument(ev Event) {
	if w.wrote {
		w.fail("XML declaration must come first")
		return
	}
	version := ev.Version
	if version == "" {
		version = "1.0"
	}
	encoding := ev.Encoding
	if encoding == "" {
		encoding = "UTF-8"
	}
	w.writeString(`<?xml version="` + version + `" encoding="` + encoding + `"`)
	if ev.Standalone != "" {
		w.writeString(` standalone="` + ev.Standalone + `"`)
	}
	w.writeString("?>")
}

func (w *Writer) startElement(ev Event) {
	name := ev.Name.String()
	if ev.Name.Local == "" {
		w.fail("start element with empty name")
		return
	}
	w.markup()

	w.writeString("<" + name)
	for _, ns := range ev.Namespaces {
		w.writeString(" " + ns.AttrName() + `="`)
		w.writeString(escapeAttr(ns.URI))
		w.writeString(`"`)
	}
	for _, a := range ev.Attrs {
		w.writeString(" " + a.Name.String() + `="`)
		w.writeString(escapeAttr(a.Value))
		w.writeString(`"`)
	}
	w.tagOpen = true
	w.stack = append(w.stack, openElement{name: name})
}

func (w *Writer) endElement() {
	n := len(w.stack)
	if n == 0 {
		w.fail("end element without matching start element")
		return
	}
	el := w.stack[n-1]
	w.stack = w.stack[:n-1]

	if w.tagOpen {
		w.tagOpen = false
		w.writeString("/>")
		return
	}
	if el.hasMarkup && !el.hasText {
		w.newline()
	}
	w.writeString("</" + el.name + ">")
}

func (w *Writer) text(s string) {
	if len(w.stack) == 0 {
		w.fail("character data outside the root element")
		return
	}
	w.closeTag()
	w.stack[len(w.stack)-1].hasText = true
	w.writeString(escapeText(s))
}

func (w *Writer) cdata(s string) {
	if len(w.stack) == 0 {
		w.fail("CDATA section outside the root element")
		return
	}
	w.closeTag()
	w.stack[len(w.stack)-1].hasText = true
	w.writeString("<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>")
}

func (w *Writer) procInst(target, data string) {
	if target == "" || strings.EqualFold(target, "xml") {
		w.fail(fmt.Sprintf("invalid processing instruction target %q", target))
		return
	}
	if strings.Contains(data, "?>") {
		w.fail("processing instruction must not contain \"?>\"")
		return
	}
	w.markup()
	w.writeString("<?" + target)
	if data != "" {
		w.writeString(" " + data)
	}
	w.writeString("?>")
}

// markup prepares for a child node that is not character data: it closes a
// pending start tag and starts a new indented line unless the parent already
// holds text.
func (w *Writer) markup() {
	w.closeTag()
	if n := len(w.stack); n > 0 {
		w.stack[n-1].hasMarkup = true
		if w.stack[n-1].hasText {
			return
		}
	}
	if w.wrote {
		w.newline()
	}
}

func (w *Writer) closeTag() {
	if w.tagOpen {
		w.tagOpen = false
		w.writeString(">")
	}
}

func (w *Writer) newline() {
	if w.indent == "" {
		return
	}
	w.writeString("\n" + strings.Repeat(w.indent, len(w.stack)))
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.w.WriteString(s); err != nil {
		w.err = err
		return
	}
	w.wrote = true
}

func (w *Writer) fail(msg string) {
	w.err = fmt.Errorf("xmlstream: %s", msg)
}

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\r", "&#xD;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\t", "&#x9;",
		"\n", "&#xA;",
		"\r", "&#xD;",
	)
)

func escapeText(s string) string { return textEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }

// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package invert

import "github.com/dotandev/svginvert/internal/xmlstream"

// Translator maps input events to output events.
type Translator struct {
	rw *Rewriter
}

// NewTranslator returns a Translator that rewrites element attributes with rw.
func NewTranslator(rw *Rewriter) *Translator {
	return &Translator{rw: rw}
}

// Translate returns the output event for ev, or false when ev is suppressed.
// Whitespace-only text is dropped because the writer re-indents; the
// end-document marker has no serialized form. The declaration is rebuilt with
// an explicit UTF-8 encoding since that is what the writer produces.
func (t *Translator) Translate(ev xmlstream.Event) (xmlstream.Event, bool) {
	switch ev.Kind {
	case xmlstream.KindStartDocument:
		version := ev.Version
		if version == "" {
			version = "1.0"
		}
		return xmlstream.StartDocument(version, "UTF-8", ev.Standalone), true

	case xmlstream.KindStartElement:
		return xmlstream.StartElement(ev.Name, t.rw.Rewrite(ev.Attrs), ev.Namespaces), true

	case xmlstream.KindEndElement:
		return xmlstream.EndElement(ev.Name), true

	case xmlstream.KindCharacters,
		xmlstream.KindCData,
		xmlstream.KindComment,
		xmlstream.KindProcInst,
		xmlstream.KindDirective:
		return ev, true

	case xmlstream.KindWhitespace, xmlstream.KindEndDocument:
		return xmlstream.Event{}, false
	}
	return xmlstream.Event{}, false
}

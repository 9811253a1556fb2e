// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

// Package xmlstream reads an XML document as a flat sequence of events and
// writes such a sequence back out as indented XML.
package xmlstream

import "strings"

// Kind identifies the variant held by an Event.
type Kind uint8

// constants for Event.Kind
const (
	KindInvalid Kind = iota
	KindStartDocument
	KindStartElement
	KindEndElement
	KindCharacters
	KindWhitespace
	KindComment
	KindCData
	KindProcInst
	KindDirective
	KindEndDocument
)

var kindNames = [...]string{
	KindInvalid:       "invalid",
	KindStartDocument: "start-document",
	KindStartElement:  "start-element",
	KindEndElement:    "end-element",
	KindCharacters:    "characters",
	KindWhitespace:    "whitespace",
	KindComment:       "comment",
	KindCData:         "cdata",
	KindProcInst:      "processing-instruction",
	KindDirective:     "directive",
	KindEndDocument:   "end-document",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// XMLNamespace is bound to the "xml" prefix in every document.
const XMLNamespace = "http://www.w3.org/XML/1998/namespace"

// Name is a qualified name. Space holds the resolved namespace URI, Prefix the
// prefix as written in the source.
type Name struct {
	Local  string
	Space  string
	Prefix string
}

// String returns the name as written: prefix:local or local.
func (n Name) String() string {
	if n.Prefix == "" {
		return n.Local
	}
	return n.Prefix + ":" + n.Local
}

// Attr is an attribute of an element.
type Attr struct {
	Name  Name
	Value string
}

// Namespace is a namespace declaration carried by an element. An empty Prefix
// declares the default namespace.
type Namespace struct {
	Prefix string
	URI    string
}

// AttrName returns the attribute name that declares ns.
func (ns Namespace) AttrName() string {
	if ns.Prefix == "" {
		return "xmlns"
	}
	return "xmlns:" + ns.Prefix
}

// Event is one unit of a document. Only the fields of the variant named by
// Kind are meaningful.
type Event struct {
	Kind Kind

	// KindStartElement, KindEndElement
	Name Name

	// KindStartElement
	Attrs      []Attr
	Namespaces []Namespace

	// KindCharacters, KindWhitespace, KindComment, KindCData, KindDirective,
	// and the instruction body of KindProcInst
	Text string

	// KindProcInst
	Target string

	// KindStartDocument. Standalone is "", "yes" or "no".
	Version    string
	Encoding   string
	Standalone string
}

// StartDocument returns a document-start event.
func StartDocument(version, encoding, standalone string) Event {
	return Event{Kind: KindStartDocument, Version: version, Encoding: encoding, Standalone: standalone}
}

// StartElement returns an element-start event.
func StartElement(name Name, attrs []Attr, namespaces []Namespace) Event {
	return Event{Kind: KindStartElement, Name: name, Attrs: attrs, Namespaces: namespaces}
}

// EndElement returns an element-end event.
func EndElement(name Name) Event {
	return Event{Kind: KindEndElement, Name: name}
}

// Characters returns a character-data event.
func Characters(text string) Event {
	return Event{Kind: KindCharacters, Text: text}
}

// Whitespace returns a whitespace-only character-data event.
func Whitespace(text string) Event {
	return Event{Kind: KindWhitespace, Text: text}
}

// Comment returns a comment event.
func Comment(text string) Event {
	return Event{Kind: KindComment, Text: text}
}

// CData returns a CDATA section event.
func CData(text string) Event {
	return Event{Kind: KindCData, Text: text}
}

// ProcInst returns a processing-instruction event.
func ProcInst(target, data string) Event {
	return Event{Kind: KindProcInst, Target: target, Text: data}
}

// Directive returns a markup declaration event such as <!DOCTYPE ...>.
func Directive(text string) Event {
	return Event{Kind: KindDirective, Text: text}
}

// EndDocument returns the end-of-document marker.
func EndDocument() Event {
	return Event{Kind: KindEndDocument}
}

// isWhitespace reports whether s consists only of XML whitespace.
func isWhitespace(s string) bool {
	return strings.Trim(s, " \t\r\n") == ""
}

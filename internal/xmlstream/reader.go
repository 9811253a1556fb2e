// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package xmlstream

import (
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"io"
	"iter"
	"regexp"
	"strings"

	"github.com/dotandev/svginvert/internal/errors"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// SyntaxError reports malformed input.
type SyntaxError struct {
	Msg  string
	Line int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error on line %d: %s", e.Line, e.Msg)
}

type frame struct {
	raw      string
	bindings []Namespace
}

// Reader produces the events of one document. It reports a document-start
// event first, even when the input has no XML declaration, and an end-document
// event last; after that Next returns io.EOF.
type Reader struct {
	dec *xml.Decoder
	src *tap

	started bool
	pending *Event
	stack   []frame
	sawRoot bool
	ended   bool
	err     error
}

// ReaderOption configures a Reader.
type ReaderOption func(*xml.Decoder)

// WithStrict toggles strict parsing. Non-strict mode accepts the HTML entity
// set and unquoted attribute values.
func WithStrict(strict bool) ReaderOption {
	return func(d *xml.Decoder) {
		d.Strict = strict
		if !strict {
			d.Entity = xml.HTMLEntity
		}
	}
}

// NewReader returns a Reader over r. A leading byte order mark is dropped, and
// UTF-16 input marked by one is transcoded to UTF-8, as are declared non-UTF-8
// encodings.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	rd := &Reader{src: newTap(transform.NewReader(r, unicode.BOMOverride(transform.Nop)), 0)}
	rd.dec = xml.NewDecoder(rd.src)
	rd.dec.CharsetReader = rd.charsetReader
	for _, opt := range opts {
		opt(rd.dec)
	}
	return rd
}

// charsetReader switches the decoder to a transcoding source. Input that
// declares UTF-16 was already transcoded through its byte order mark.
func (r *Reader) charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(label)), "utf-16") {
		return input, nil
	}
	cr, err := charset.NewReaderLabel(label, input)
	if err != nil {
		return nil, err
	}
	r.src = newTap(cr, r.dec.InputOffset())
	return r.src, nil
}

// rawToken reads the next token and reports whether it is a CDATA section.
func (r *Reader) rawToken() (xml.Token, bool, error) {
	r.src.mark(r.dec.InputOffset())
	tok, err := r.dec.RawToken()
	if err != nil {
		return nil, false, err
	}
	_, text := tok.(xml.CharData)
	return tok, text && r.src.opened() == '<', nil
}

// All returns the remaining events as an iterator. Iteration stops after the
// first error, which is yielded with a zero Event.
func (r *Reader) All() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			ev, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

// Next returns the next event.
func (r *Reader) Next() (Event, error) {
	if r.err != nil {
		return Event{}, r.err
	}
	if !r.started {
		r.started = true
		return r.readDeclaration()
	}
	if r.pending != nil {
		ev := *r.pending
		r.pending = nil
		return ev, nil
	}

	for {
		tok, cdata, err := r.rawToken()
		if err == io.EOF {
			return r.finish()
		}
		if err != nil {
			return Event{}, r.fail(err)
		}
		ev, ok, err := r.convert(tok, cdata)
		if err != nil {
			return Event{}, r.fail(err)
		}
		if ok {
			return ev, nil
		}
	}
}

func (r *Reader) readDeclaration() (Event, error) {
	decl := StartDocument("1.0", "UTF-8", "")

	tok, cdata, err := r.rawToken()
	if err == io.EOF {
		return Event{}, r.fail(errors.ErrNoRootElement)
	}
	if err != nil {
		return Event{}, r.fail(err)
	}

	if pi, ok := tok.(xml.ProcInst); ok && pi.Target == "xml" {
		params := declParams(string(pi.Inst))
		if v := params["version"]; v != "" {
			decl.Version = v
		}
		if v := params["encoding"]; v != "" {
			decl.Encoding = v
		}
		decl.Standalone = params["standalone"]
		return decl, nil
	}

	ev, ok, err := r.convert(tok, cdata)
	if err != nil {
		r.fail(err)
		return decl, nil
	}
	if ok {
		r.pending = &ev
	}
	return decl, nil
}

var declParamRe = regexp.MustCompile(`([A-Za-z]+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

func declParams(inst string) map[string]string {
	params := make(map[string]string, 3)
	for _, m := range declParamRe.FindAllStringSubmatch(inst, -1) {
		params[m[1]] = m[2] + m[3]
	}
	return params
}

func (r *Reader) convert(tok xml.Token, cdata bool) (Event, bool, error) {
	switch t := tok.(type) {
	case xml.StartElement:
		if len(r.stack) == 0 && r.sawRoot {
			return Event{}, false, r.syntaxError("multiple root elements: <" + rawName(t.Name) + ">")
		}
		r.sawRoot = true
		return r.startElement(t), true, nil

	case xml.EndElement:
		raw := rawName(t.Name)
		if len(r.stack) == 0 {
			return Event{}, false, r.syntaxError("unexpected end element </" + raw + ">")
		}
		top := r.stack[len(r.stack)-1]
		if top.raw != raw {
			return Event{}, false, r.syntaxError("element <" + top.raw + "> closed by </" + raw + ">")
		}
		name := r.resolve(t.Name, true)
		r.stack = r.stack[:len(r.stack)-1]
		return EndElement(name), true, nil

	case xml.CharData:
		text := string(t)
		if cdata {
			if len(r.stack) == 0 {
				return Event{}, false, r.syntaxError("CDATA section outside the root element")
			}
			return CData(text), true, nil
		}
		if isWhitespace(text) {
			return Whitespace(text), true, nil
		}
		if len(r.stack) == 0 {
			return Event{}, false, r.syntaxError("character data outside the root element")
		}
		return Characters(text), true, nil

	case xml.Comment:
		return Comment(string(t)), true, nil

	case xml.ProcInst:
		if t.Target == "xml" {
			return Event{}, false, r.syntaxError("XML declaration allowed only at the start of the document")
		}
		return ProcInst(t.Target, string(t.Inst)), true, nil

	case xml.Directive:
		return Directive(string(t)), true, nil
	}
	return Event{}, false, nil
}

func (r *Reader) startElement(t xml.StartElement) Event {
	var (
		namespaces []Namespace
		rawAttrs   []xml.Attr
	)
	for _, a := range t.Attr {
		switch {
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			namespaces = append(namespaces, Namespace{URI: a.Value})
		case a.Name.Space == "xmlns":
			namespaces = append(namespaces, Namespace{Prefix: a.Name.Local, URI: a.Value})
		default:
			rawAttrs = append(rawAttrs, a)
		}
	}

	r.stack = append(r.stack, frame{raw: rawName(t.Name), bindings: namespaces})

	attrs := make([]Attr, 0, len(rawAttrs))
	for _, a := range rawAttrs {
		attrs = append(attrs, Attr{Name: r.resolve(a.Name, false), Value: a.Value})
	}
	return StartElement(r.resolve(t.Name, true), attrs, namespaces)
}

// resolve maps a raw prefix:local name to a Name with its namespace URI.
// Unprefixed attributes are in no namespace.
func (r *Reader) resolve(n xml.Name, element bool) Name {
	name := Name{Local: n.Local, Prefix: n.Space}
	if n.Space == "" && !element {
		return name
	}
	name.Space = r.lookup(n.Space)
	return name
}

func (r *Reader) lookup(prefix string) string {
	if prefix == "xml" {
		return XMLNamespace
	}
	for i := len(r.stack) - 1; i >= 0; i-- {
		for _, ns := range r.stack[i].bindings {
			if ns.Prefix == prefix {
				return ns.URI
			}
		}
	}
	return ""
}

func (r *Reader) finish() (Event, error) {
	if len(r.stack) > 0 {
		return Event{}, r.fail(r.syntaxError("unexpected EOF: element <" + r.stack[len(r.stack)-1].raw + "> is not closed"))
	}
	if !r.sawRoot {
		return Event{}, r.fail(errors.ErrNoRootElement)
	}
	if r.ended {
		r.err = io.EOF
		return Event{}, io.EOF
	}
	r.ended = true
	return EndDocument(), nil
}

// fail records err so every later call returns it.
func (r *Reader) fail(err error) error {
	var xerr *xml.SyntaxError
	if stderrors.As(err, &xerr) {
		err = &SyntaxError{Msg: xerr.Msg, Line: xerr.Line}
	}
	r.err = err
	return err
}

func (r *Reader) syntaxError(msg string) error {
	line, _ := r.dec.InputPos()
	return &SyntaxError{Msg: msg, Line: line}
}

func rawName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

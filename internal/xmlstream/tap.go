// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package xmlstream

import (
	"bufio"
	"io"
)

// tap is the byte source handed to the decoder. It remembers the byte at a
// marked input offset, which tells a CDATA section (opened by '<') apart from
// plain character data once the decoder has folded both into xml.CharData.
//
// The decoder keeps at most one byte of lookahead, so the byte at its current
// InputOffset is either the last byte read or the next one.
type tap struct {
	r *bufio.Reader
	n int64

	last  byte
	watch int64
	seen  byte
}

func newTap(r io.Reader, offset int64) *tap {
	return &tap{r: bufio.NewReader(r), n: offset, watch: -1}
}

// mark starts watching the byte at offset.
func (t *tap) mark(offset int64) {
	t.watch = offset
	t.seen = 0
	if offset == t.n-1 {
		t.seen = t.last
	}
}

// opened returns the byte at the marked offset, or 0 if it was not read.
func (t *tap) opened() byte {
	return t.seen
}

func (t *tap) ReadByte() (byte, error) {
	b, err := t.r.ReadByte()
	if err != nil {
		return 0, err
	}
	t.record(b)
	return b, nil
}

func (t *tap) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	for _, b := range p[:n] {
		t.record(b)
	}
	return n, err
}

func (t *tap) record(b byte) {
	if t.n == t.watch {
		t.seen = b
	}
	t.last = b
	t.n++
}

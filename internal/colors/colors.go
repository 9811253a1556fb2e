// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

// Package colors inverts the color literals found in SVG paint attributes.
//
// A literal is parsed into an RGBA value, its color channels are complemented
// and the result is written back as an uppercase #RRGGBBAA literal. Alpha is
// never modified.
package colors

import (
	"fmt"
	"strings"

	"github.com/dotandev/svginvert/internal/errors"
)

// CurrentColor is the keyword that refers to the inherited color value. It is
// not a color and is never decomposed.
const CurrentColor = "currentColor"

// RGBA is a color with 8-bit channels.
type RGBA struct {
	R, G, B, A uint8
}

// Invert returns the per-channel complement of the color channels. Alpha is kept.
func (c RGBA) Invert() RGBA {
	return RGBA{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A}
}

// Hex formats the color as #RRGGBBAA with uppercase digits.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// paintKeywords are SVG paint values that are not colors.
var paintKeywords = map[string]bool{
	"none":           true,
	"inherit":        true,
	"context-fill":   true,
	"context-stroke": true,
}

func isPaintKeyword(literal string) bool {
	v := strings.ToLower(strings.TrimSpace(literal))
	return paintKeywords[v] || strings.HasPrefix(v, "url(")
}

// Inverter inverts color literals using a Parser.
type Inverter struct {
	parser Parser
}

// NewInverter returns an Inverter backed by p. A nil parser selects CSS.
func NewInverter(p Parser) *Inverter {
	if p == nil {
		p = CSS
	}
	return &Inverter{parser: p}
}

// Parser returns the parser in use.
func (i *Inverter) Parser() Parser {
	return i.parser
}

// Invert returns the inverted form of literal. currentColor and non-color paint
// values are returned unchanged. A literal the parser rejects yields an error
// wrapping errors.ErrUnparseableColor; callers treat it as recoverable.
func (i *Inverter) Invert(literal string) (string, error) {
	if literal == CurrentColor || isPaintKeyword(literal) {
		return literal, nil
	}

	c, err := i.parser.Parse(literal)
	if err != nil {
		return "", errors.WrapUnparseableColor(literal, err)
	}
	return c.Invert().Hex(), nil
}

var defaultInverter = NewInverter(CSS)

// Invert inverts literal with the CSS parser.
func Invert(literal string) (string, error) {
	return defaultInverter.Invert(literal)
}

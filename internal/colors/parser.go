// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package colors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Parser turns a color literal into an RGBA value.
type Parser interface {
	Name() string
	Parse(literal string) (RGBA, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc struct {
	ID string
	Fn func(literal string) (RGBA, error)
}

func (p ParserFunc) Name() string { return p.ID }

func (p ParserFunc) Parse(literal string) (RGBA, error) { return p.Fn(literal) }

// CSS parses CSS Color Module Level 4 syntax: hex in 3, 4, 6 and 8 digit
// forms, named colors, transparent, rgb(), rgba(), hsl(), hsla(), hwb().
var CSS Parser = ParserFunc{ID: "css", Fn: parseCSS}

func parseCSS(literal string) (RGBA, error) {
	c, err := csscolorparser.Parse(literal)
	if err != nil {
		return RGBA{}, err
	}
	r, g, b, a := c.RGBA255()
	return RGBA{R: r, G: g, B: b, A: a}, nil
}

var parsers = map[string]Parser{
	"css": CSS,
	"svg": SVG,
}

// LookupParser returns the parser registered under name.
func LookupParser(name string) (Parser, error) {
	p, ok := parsers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown color parser %q (available: %s)", name, strings.Join(ParserNames(), ", "))
	}
	return p, nil
}

// ParserNames lists the registered parser names in sorted order.
func ParserNames() []string {
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package colors

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	errEmptyColor     = errors.New("empty color")
	errBadHexLength   = errors.New("hex color must have 3, 4, 6 or 8 digits")
	errParamMismatch  = errors.New("wrong number of color components")
	errUnknownKeyword = errors.New("unknown color keyword")
)

// SVG parses the SVG 1.1 color grammar: the SVG named colors, #hex in 3, 4, 6
// and 8 digit forms, rgb() with integer or percentage components and rgba().
var SVG Parser = ParserFunc{ID: "svg", Fn: parseSVG}

func parseSVG(literal string) (RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(literal))
	if v == "" {
		return RGBA{}, errEmptyColor
	}

	if v == "transparent" {
		return RGBA{}, nil
	}
	if cn, ok := colornames.Map[v]; ok {
		return RGBA{R: cn.R, G: cn.G, B: cn.B, A: cn.A}, nil
	}

	if v[0] == '#' {
		return parseHex(v[1:])
	}

	if args, ok := functionArgs(v, "rgba"); ok {
		return parseRGBArgs(args, true)
	}
	if args, ok := functionArgs(v, "rgb"); ok {
		return parseRGBArgs(args, false)
	}

	return RGBA{}, errUnknownKeyword
}

func functionArgs(v, name string) (string, bool) {
	if !strings.HasPrefix(v, name+"(") || !strings.HasSuffix(v, ")") {
		return "", false
	}
	return v[len(name)+1 : len(v)-1], true
}

// parseHex reads the digits of a #hex color. Short forms duplicate each digit.
func parseHex(s string) (RGBA, error) {
	switch len(s) {
	case 3, 4:
		long := make([]byte, 0, len(s)*2)
		for i := 0; i < len(s); i++ {
			long = append(long, s[i], s[i])
		}
		s = string(long)
	case 6, 8:
	default:
		return RGBA{}, errBadHexLength
	}

	var ch [4]uint8
	ch[3] = 0xFF
	for i := 0; i*2 < len(s); i++ {
		n, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGBA{}, err
		}
		ch[i] = uint8(n)
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

func parseRGBArgs(args string, withAlpha bool) (RGBA, error) {
	vals := strings.Split(args, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(vals) != want {
		return RGBA{}, errParamMismatch
	}

	var ch [3]uint8
	for i := range ch {
		n, err := parseColorValue(vals[i])
		if err != nil {
			return RGBA{}, err
		}
		ch[i] = n
	}

	a := uint8(0xFF)
	if withAlpha {
		f, err := strconv.ParseFloat(strings.TrimSpace(vals[3]), 64)
		if err != nil {
			return RGBA{}, err
		}
		a = uint8(clamp(f, 0, 1)*255 + 0.5)
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: a}, nil
}

// parseColorValue reads an rgb() component, either 0-255 or a percentage.
func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, errParamMismatch
	}
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-1]), 64)
		if err != nil {
			return 0, err
		}
		return uint8(clamp(f, 0, 100)*255/100 + 0.5), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	return uint8(clamp(float64(n), 0, 255)), nil
}

func clamp(f, lo, hi float64) float64 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}

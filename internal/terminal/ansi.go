// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package terminal

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ANSIRenderer writes status lines to a stream, colored when that stream is
// a terminal.
type ANSIRenderer struct {
	mu    sync.Mutex
	out   io.Writer
	isTTY bool

	ok, warn, fail *color.Color
}

// NewANSIRenderer returns a renderer on f. Colors follow FORCE_COLOR,
// NO_COLOR and TERM=dumb, then whether f is a terminal.
func NewANSIRenderer(f *os.File) *ANSIRenderer {
	return NewRenderer(f, colorEnabled(f))
}

// NewRenderer returns a renderer on w with colors forced on or off.
func NewRenderer(w io.Writer, tty bool) *ANSIRenderer {
	r := &ANSIRenderer{
		out:   w,
		isTTY: tty,
		ok:    color.New(color.FgGreen, color.Bold),
		warn:  color.New(color.FgYellow),
		fail:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{r.ok, r.warn, r.fail} {
		if tty {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func colorEnabled(f *os.File) bool {
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsInteractive(f)
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (r *ANSIRenderer) IsTTY() bool {
	return r.isTTY
}

func (r *ANSIRenderer) Success(format string, a ...any) {
	r.line(r.ok.Sprint("[OK]"), format, a...)
}

func (r *ANSIRenderer) Warning(format string, a ...any) {
	r.line(r.warn.Sprint("[!]"), format, a...)
}

func (r *ANSIRenderer) Failure(format string, a ...any) {
	r.line(r.fail.Sprint("[X]"), format, a...)
}

func (r *ANSIRenderer) line(tag, format string, a ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "%s %s\n", tag, fmt.Sprintf(format, a...))
}

func (r *ANSIRenderer) Swatch(hex string) string {
	if !r.isTTY {
		return ""
	}
	rgb, ok := parseHex(hex)
	if !ok {
		return ""
	}
	c := color.BgRGB(rgb[0], rgb[1], rgb[2])
	c.EnableColor()
	return c.Sprint("  ")
}

// parseHex reads the RGB channels of #RRGGBB or #RRGGBBAA.
func parseHex(hex string) ([3]int, bool) {
	var rgb [3]int
	if len(hex) != 7 && len(hex) != 9 || hex[0] != '#' {
		return rgb, false
	}
	for i := range rgb {
		v, err := strconv.ParseUint(hex[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return rgb, false
		}
		rgb[i] = int(v)
	}
	return rgb, true
}

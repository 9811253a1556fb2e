// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

// Package terminal prints human-facing status lines. Documents never go
// through it; they are written to stdout or files by the caller.
package terminal

// Renderer reports per-file outcomes and color swatches.
type Renderer interface {
	// Success reports a finished file, e.g. "[OK] in.svg -> out.svg".
	Success(format string, a ...any)
	// Warning reports something skipped.
	Warning(format string, a ...any)
	// Failure reports a file that could not be processed.
	Failure(format string, a ...any)
	// Swatch renders a small block filled with the given #RRGGBB[AA] color,
	// or "" when colors are off or hex is not a canonical literal.
	Swatch(hex string) string
	IsTTY() bool
}

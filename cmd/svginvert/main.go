// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/dotandev/svginvert/internal/cmd"
)

// Version is injected with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	cmd.Version = Version

	if err := cmd.Execute(); err != nil {
		if cmd.IsInterrupted(err) {
			os.Exit(cmd.InterruptExitCode)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

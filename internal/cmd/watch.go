// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dotandev/svginvert/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchOutDir      string
	watchSuffix      string
	watchDebounce    time.Duration
	watchSkipInitial bool
)

var watchCmd = &cobra.Command{
	Use:     "watch <dir>",
	GroupID: "core",
	Short:   "Re-invert SVG files whenever they change",
	Long: `Invert the .svg files in a directory, then keep watching it and invert
each file again when it is created or saved. Stop with Ctrl+C.

Example:
  svginvert watch icons/ --out-dir dark/`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", args[0])
		}

		suffix := cfg.OutputSuffix
		if cmd.Flags().Changed("suffix") {
			suffix = watchSuffix
		}
		if watchOutDir == "" && suffix == "" {
			return fmt.Errorf("an empty suffix needs --out-dir, or inputs would be overwritten")
		}

		inv, err := newInverter()
		if err != nil {
			return err
		}

		w := watch.New(inv, watch.Config{
			Dir:         args[0],
			OutDir:      watchOutDir,
			Suffix:      suffix,
			Debounce:    watchDebounce,
			SkipInitial: watchSkipInitial,
		}, statusRenderer(cmd))
		return w.Run(cmd.Context())
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchOutDir, "out-dir", "", "Directory for inverted files (default: the watched directory)")
	watchCmd.Flags().StringVar(&watchSuffix, "suffix", "-inverted", "Inserted before the extension of each output name")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before a changed file is processed")
	watchCmd.Flags().BoolVar(&watchSkipInitial, "skip-initial", false, "Only process files that change after start")
	rootCmd.AddCommand(watchCmd)
}

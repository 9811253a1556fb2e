// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/dotandev/svginvert/internal/batch"
	"github.com/dotandev/svginvert/internal/terminal"
	"github.com/spf13/cobra"
)

var (
	batchOutDir  string
	batchWorkers int
	batchSuffix  string
)

var batchCmd = &cobra.Command{
	Use:     "batch <file|dir>...",
	GroupID: "core",
	Short:   "Invert many files concurrently",
	Long: `Invert every given file and every .svg file below every given directory.
Outputs are named <name><suffix>.svg and written to --out-dir, or next to
their input when no directory is given. All files share one color cache.

Example:
  svginvert batch icons/ logo.svg --out-dir dark/ --workers 8`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		suffix := cfg.OutputSuffix
		if cmd.Flags().Changed("suffix") {
			suffix = batchSuffix
		}
		workers := cfg.Workers
		if cmd.Flags().Changed("workers") {
			workers = batchWorkers
		}
		if batchOutDir == "" && suffix == "" {
			return fmt.Errorf("an empty suffix needs --out-dir, or inputs would be overwritten")
		}

		jobs, err := batch.Plan(args, batchOutDir, suffix)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			return fmt.Errorf("no .svg files found")
		}

		inv, err := newInverter()
		if err != nil {
			return err
		}

		r := statusRenderer(cmd)
		sum, err := batch.NewProcessor(inv, workers, r).Run(cmd.Context(), jobs)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%d inverted, %d failed, %d colors rewritten\n",
			sum.Succeeded, sum.Failed, sum.Total.ColorsRewritten)
		if sum.Failed > 0 {
			return fmt.Errorf("%d of %d files failed: %w", sum.Failed, len(jobs), sum.Err())
		}
		return nil
	},
}

// statusRenderer writes status lines to the command's stderr, colored when
// it is a terminal.
func statusRenderer(cmd *cobra.Command) terminal.Renderer {
	w := cmd.ErrOrStderr()
	if f, ok := w.(*os.File); ok {
		return terminal.NewANSIRenderer(f)
	}
	return terminal.NewRenderer(w, false)
}

func init() {
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "Directory for inverted files (default: next to each input)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Files processed concurrently (default: number of CPUs)")
	batchCmd.Flags().StringVar(&batchSuffix, "suffix", "-inverted", "Inserted before the extension of each output name")
	rootCmd.AddCommand(batchCmd)
}

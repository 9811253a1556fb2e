// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/dotandev/svginvert/internal/colors"
	"github.com/dotandev/svginvert/internal/terminal"
	"github.com/spf13/cobra"
)

var colorCmd = &cobra.Command{
	Use:     "color <literal>...",
	GroupID: "core",
	Short:   "Invert individual color literals",
	Long: `Print each literal with its inverted form. Literals that do not parse are
printed unchanged and reported on stderr.

Example:
  svginvert color '#336699' tomato 'rgb(0 0 0 / 50%)'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := colors.LookupParser(cfg.Parser)
		if err != nil {
			return err
		}
		inv := colors.NewInverter(p)

		out := cmd.OutOrStdout()
		var swatches terminal.Renderer = terminal.NewRenderer(out, false)
		if f, ok := out.(*os.File); ok {
			swatches = terminal.NewANSIRenderer(f)
		}
		status := statusRenderer(cmd)

		for _, literal := range args {
			inverted, err := inv.Invert(literal)
			if err != nil {
				status.Warning("%v", err)
				inverted = literal
			}

			line := literal + " -> " + inverted
			if sw := swatches.Swatch(inverted); sw != "" {
				line += " " + sw
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(colorCmd)
}

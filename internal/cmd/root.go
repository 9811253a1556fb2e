// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dotandev/svginvert/internal/batch"
	"github.com/dotandev/svginvert/internal/colors"
	"github.com/dotandev/svginvert/internal/config"
	"github.com/dotandev/svginvert/internal/invert"
	"github.com/dotandev/svginvert/internal/logger"
	"github.com/dotandev/svginvert/internal/shutdown"
	"github.com/dotandev/svginvert/internal/telemetry"
	"github.com/dotandev/svginvert/internal/terminal"
	"github.com/spf13/cobra"
)

// Global flag variables
var (
	configPathFlag string
	parserFlag     string
	indentFlag     int
	logLevelFlag   string
	logFormatFlag  string
	strictFlag     bool
	tracingFlag    bool
	otlpURLFlag    string

	outputFlag string
)

// cfg is the effective configuration, loaded before any command runs.
var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "svginvert [file]",
	Short: "Invert the fill and stroke colors of SVG documents",
	Long: `svginvert rewrites every fill and stroke color of an SVG document to its
complement, leaving the rest of the document untouched. Use it to produce a
dark-mode or negative variant of an icon.

Colors are written as #RRGGBBAA. currentColor, none, url(...) paints and
values that do not parse as colors are kept as they are. Alpha is preserved.

Examples:
  svginvert icon.svg > icon-dark.svg         Invert one file to stdout
  cat icon.svg | svginvert -o icon-dark.svg  Invert stdin to a file
  svginvert batch icons/ --out-dir dark/     Invert a whole directory
  svginvert watch icons/                     Re-invert on every save
  svginvert color '#336699' tomato           Invert single colors`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = c

		logger.SetLevel(logger.ParseLevel(c.LogLevel))
		logger.SetOutput(cmd.ErrOrStderr(), c.LogFormat == "json")
		logger.Logger.Debug("Configuration loaded", "config", c.String(), "source", c.Source)

		cleanup, err := telemetry.Init(cmd.Context(), telemetry.Config{
			Enabled:        c.Tracing,
			ExporterURL:    c.OTLPURL,
			ServiceName:    "svginvert",
			ServiceVersion: Version,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		registerShutdownHook("telemetry", func(context.Context) error {
			cleanup()
			return nil
		})
		return nil
	},
	RunE:          runInvert,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := shutdown.SignalContext(context.Background())
	defer stop()
	return execute(ctx, os.Args[1:])
}

func execute(ctx context.Context, args []string) error {
	coordinator := shutdown.NewCoordinator()
	setShutdownCoordinator(coordinator)
	defer clearShutdownCoordinator()

	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	runShutdownHooksWithTimeout(coordinator, shutdownTimeout)

	if err != nil && ctx.Err() != nil && IsCancellation(err) {
		return fmt.Errorf("%w: %w", ErrInterrupted, err)
	}
	return err
}

// loadConfig layers explicitly set flags over config.Load.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configPathFlag)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("parser") {
		c.Parser = parserFlag
	}
	if flags.Changed("indent") {
		c.Indent = indentFlag
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevelFlag
	}
	if flags.Changed("log-format") {
		c.LogFormat = logFormatFlag
	}
	if flags.Changed("strict") {
		c.Strict = strictFlag
	}
	if flags.Changed("tracing") {
		c.Tracing = tracingFlag
	}
	if flags.Changed("otlp-url") {
		c.OTLPURL = otlpURLFlag
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// newInverter builds the Inverter described by the loaded configuration.
func newInverter() (*invert.Inverter, error) {
	p, err := colors.LookupParser(cfg.Parser)
	if err != nil {
		return nil, err
	}
	return invert.New(
		invert.WithParser(p),
		invert.WithIndent(cfg.IndentString()),
		invert.WithStrict(cfg.Strict),
	), nil
}

func runInvert(cmd *cobra.Command, args []string) error {
	inv, err := newInverter()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	} else if f, ok := in.(*os.File); ok && terminal.IsInteractive(f) {
		return fmt.Errorf("no input: pass a file or pipe a document on stdin")
	}

	var st invert.Stats
	if outputFlag == "" || outputFlag == "-" {
		st, err = inv.Run(ctx, in, cmd.OutOrStdout())
	} else {
		st, err = batch.WriteFile(ctx, inv, in, outputFlag)
	}
	if err != nil {
		return err
	}

	logger.Logger.Info("Inverted document", "colors_rewritten", st.ColorsRewritten, "events", st.EventsWritten)
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPathFlag, "config", "", "Path to a TOML config file (default: search .svginvert.toml, ~/.svginvert.toml, /etc/svginvert/config.toml)")
	pf.StringVar(&parserFlag, "parser", "css", "Color parser: css or svg")
	pf.IntVar(&indentFlag, "indent", 2, "Spaces per indentation level; 0 disables pretty-printing")
	pf.StringVar(&logLevelFlag, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormatFlag, "log-format", "text", "Log format: text or json")
	pf.BoolVar(&strictFlag, "strict", true, "Reject HTML entities and unquoted attribute values")
	pf.BoolVar(&tracingFlag, "tracing", false, "Export OpenTelemetry traces")
	pf.StringVar(&otlpURLFlag, "otlp-url", "localhost:4318", "OTLP/HTTP collector endpoint")

	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the document to this file instead of stdout")

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Commands:"},
		&cobra.Group{ID: "utility", Title: "Utility Commands:"},
	)
}

// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dotandev/svginvert/internal/errors"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SVGINVERT_"

// Config represents the configuration for svginvert
type Config struct {
	// Parser names the color parser: "css" or "svg".
	Parser string `toml:"parser"`
	// Indent is the number of spaces per nesting level. 0 disables
	// pretty-printing.
	Indent    int    `toml:"indent"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	// Strict rejects HTML entities and unquoted attribute values.
	Strict bool `toml:"strict"`

	OutputSuffix string `toml:"output_suffix"`
	Workers      int    `toml:"workers"`

	Tracing bool   `toml:"tracing"`
	OTLPURL string `toml:"otlp_url"`

	ServeAddr string `toml:"serve_addr"`
	AuthToken string `toml:"auth_token"`

	// Source is the TOML file the values came from, if any.
	Source string `toml:"-"`
}

// searchPaths lists the TOML files consulted when no explicit path is given.
// The first one that exists wins.
var searchPaths = func() []string {
	return []string{
		".svginvert.toml",
		filepath.Join(os.ExpandEnv("$HOME"), ".svginvert.toml"),
		"/etc/svginvert/config.toml",
	}
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Parser:       "css",
		Indent:       2,
		LogLevel:     "warn",
		LogFormat:    "text",
		Strict:       true,
		OutputSuffix: "-inverted",
		Workers:      runtime.NumCPU(),
		OTLPURL:      "localhost:4318",
		ServeAddr:    ":8080",
	}
}

// Load builds the configuration from defaults, a TOML file, a .env file in the
// working directory and SVGINVERT_* environment variables, in increasing
// order of precedence. An explicit path must exist; otherwise the search
// paths are tried in order.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	} else {
		for _, p := range searchPaths() {
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := cfg.LoadFile(p); err != nil {
				return nil, err
			}
			break
		}
	}

	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.WrapConfigError("failed to read .env", err)
	}

	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the keys present in a TOML file onto c.
func (c *Config) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.WrapConfigError("failed to parse "+path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.WrapConfigError(fmt.Sprintf("unknown key %q in %s", undecoded[0].String(), path), nil)
	}
	c.Source = path
	return nil
}

// LoadEnv overlays SVGINVERT_* environment variables onto c.
func (c *Config) LoadEnv() error {
	strs := map[string]*string{
		"PARSER":        &c.Parser,
		"LOG_LEVEL":     &c.LogLevel,
		"LOG_FORMAT":    &c.LogFormat,
		"OUTPUT_SUFFIX": &c.OutputSuffix,
		"OTLP_URL":      &c.OTLPURL,
		"ADDR":          &c.ServeAddr,
		"AUTH_TOKEN":    &c.AuthToken,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"INDENT":  &c.Indent,
		"WORKERS": &c.Workers,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.WrapConfigError(EnvPrefix+key+" must be an integer", err)
		}
		*dst = n
	}

	bools := map[string]*bool{
		"STRICT":  &c.Strict,
		"TRACING": &c.Tracing,
	}
	for key, dst := range bools {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		b, err := parseBool(v)
		if err != nil {
			return errors.WrapConfigError(EnvPrefix+key+" must be a boolean", err)
		}
		*dst = b
	}
	return nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", v)
}

// Validate runs the default validators.
func (c *Config) Validate() error {
	return RunValidators(c, DefaultValidators())
}

// IndentString returns the per-level indentation for the writer.
func (c *Config) IndentString() string {
	return strings.Repeat(" ", c.Indent)
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Parser: %s, Indent: %d, Strict: %t, Workers: %d, LogLevel: %s}",
		c.Parser, c.Indent, c.Strict, c.Workers, c.LogLevel,
	)
}

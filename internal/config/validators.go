// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"

	"github.com/dotandev/svginvert/internal/colors"
	"github.com/dotandev/svginvert/internal/errors"
	"github.com/dotandev/svginvert/internal/logger"
)

// Validator validates a specific aspect of the configuration.
type Validator interface {
	Validate(cfg *Config) error
}

// ParserValidator checks that the color parser is registered.
type ParserValidator struct{}

func (v ParserValidator) Validate(cfg *Config) error {
	if _, err := colors.LookupParser(cfg.Parser); err != nil {
		return errors.WrapConfigError("parser", err)
	}
	return nil
}

// OutputValidator checks the writer and batch settings.
type OutputValidator struct{}

func (v OutputValidator) Validate(cfg *Config) error {
	if cfg.Indent < 0 {
		return errors.WrapConfigError("indent cannot be negative", nil)
	}
	if cfg.Workers <= 0 {
		return errors.WrapConfigError("workers must be positive", nil)
	}
	if strings.ContainsAny(cfg.OutputSuffix, `/\`) {
		return errors.WrapConfigError("output_suffix cannot contain a path separator", nil)
	}
	return nil
}

// LogValidator checks that the log level and format are known values.
type LogValidator struct{}

func (v LogValidator) Validate(cfg *Config) error {
	if cfg.LogLevel != "" && !logger.ValidLevel(cfg.LogLevel) {
		return errors.WrapConfigError("log_level must be one of: debug, info, warn, error", nil)
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "", "text", "json":
	default:
		return errors.WrapConfigError("log_format must be text or json", nil)
	}
	return nil
}

// DefaultValidators returns the standard set of validators.
func DefaultValidators() []Validator {
	return []Validator{
		ParserValidator{},
		OutputValidator{},
		LogValidator{},
	}
}

// RunValidators executes each validator against the config, returning the
// first error encountered.
func RunValidators(cfg *Config, validators []Validator) error {
	for _, v := range validators {
		if err := v.Validate(cfg); err != nil {
			return err
		}
	}
	return nil
}

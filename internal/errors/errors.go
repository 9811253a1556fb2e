// Copyright (c) 2026 dotandev
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for comparison with errors.Is
var (
	ErrRead             = errors.New("XML read error")
	ErrWrite            = errors.New("XML write error")
	ErrUnparseableColor = errors.New("unparseable color")
	ErrNoRootElement    = errors.New("no root element found")
	ErrConfig           = errors.New("configuration error")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidRequest   = errors.New("invalid request")
)

// Wrap functions for consistent error wrapping
func WrapRead(err error) error {
	return fmt.Errorf("%w: %w", ErrRead, err)
}

func WrapWrite(err error) error {
	return fmt.Errorf("%w: %w", ErrWrite, err)
}

func WrapUnparseableColor(literal string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %q", ErrUnparseableColor, literal)
	}
	return fmt.Errorf("%w: %q: %w", ErrUnparseableColor, literal, err)
}

func WrapConfigError(msg string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrConfig, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrConfig, msg, err)
}

func WrapInvalidRequest(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, msg)
}

// IsRead reports whether err came from the input side of a run.
func IsRead(err error) bool {
	return errors.Is(err, ErrRead)
}

// IsWrite reports whether err came from the output side of a run.
func IsWrite(err error) bool {
	return errors.Is(err, ErrWrite)
}

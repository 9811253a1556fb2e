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
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotNil(t, ErrRead)
	assert.NotNil(t, ErrWrite)
	assert.NotNil(t, ErrUnparseableColor)
	assert.NotNil(t, ErrNoRootElement)
	assert.NotNil(t, ErrConfig)
	assert.NotNil(t, ErrUnauthorized)
	assert.NotNil(t, ErrInvalidRequest)
}

func TestErrorWrapping(t *testing.T) {
	baseErr := fmt.Errorf("base error")

	wrappedErr := WrapRead(baseErr)
	assert.True(t, errors.Is(wrappedErr, ErrRead))
	assert.True(t, errors.Is(wrappedErr, baseErr))
	assert.Equal(t, "XML read error: base error", wrappedErr.Error())

	wrappedErr = WrapWrite(io.ErrClosedPipe)
	assert.True(t, errors.Is(wrappedErr, ErrWrite))
	assert.True(t, errors.Is(wrappedErr, io.ErrClosedPipe))

	wrappedErr = WrapUnparseableColor("not-a-color", baseErr)
	assert.True(t, errors.Is(wrappedErr, ErrUnparseableColor))
	assert.True(t, errors.Is(wrappedErr, baseErr))
	assert.Contains(t, wrappedErr.Error(), `"not-a-color"`)

	wrappedErr = WrapUnparseableColor("#zz", nil)
	assert.True(t, errors.Is(wrappedErr, ErrUnparseableColor))
	assert.Contains(t, wrappedErr.Error(), `"#zz"`)

	wrappedErr = WrapConfigError("failed to parse config file", baseErr)
	assert.True(t, errors.Is(wrappedErr, ErrConfig))
	assert.True(t, errors.Is(wrappedErr, baseErr))
	assert.Contains(t, wrappedErr.Error(), "failed to parse config file")

	wrappedErr = WrapConfigError("unknown parser", nil)
	assert.True(t, errors.Is(wrappedErr, ErrConfig))

	wrappedErr = WrapInvalidRequest("empty document")
	assert.True(t, errors.Is(wrappedErr, ErrInvalidRequest))
	assert.Contains(t, wrappedErr.Error(), "empty document")
}

func TestErrorComparison(t *testing.T) {
	err1 := WrapRead(fmt.Errorf("test"))
	err2 := WrapWrite(fmt.Errorf("test"))

	assert.True(t, IsRead(err1))
	assert.False(t, IsWrite(err1))

	assert.True(t, IsWrite(err2))
	assert.False(t, IsRead(err2))
}

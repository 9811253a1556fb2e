// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package terminal

import (
	"fmt"
	"sync"
)

// MockRenderer records status lines for tests.
type MockRenderer struct {
	mu     sync.Mutex
	Output []string
	TTY    bool
}

func NewMockRenderer() *MockRenderer {
	return &MockRenderer{}
}

func (m *MockRenderer) record(tag, format string, a ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Output = append(m.Output, tag+" "+fmt.Sprintf(format, a...))
}

func (m *MockRenderer) Success(format string, a ...any) { m.record("[OK]", format, a...) }

func (m *MockRenderer) Warning(format string, a ...any) { m.record("[!]", format, a...) }

func (m *MockRenderer) Failure(format string, a ...any) { m.record("[X]", format, a...) }

func (m *MockRenderer) Swatch(hex string) string {
	if !m.TTY {
		return ""
	}
	return "[" + hex + "]"
}

func (m *MockRenderer) IsTTY() bool { return m.TTY }

// Lines returns a copy of the recorded output.
func (m *MockRenderer) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Output...)
}

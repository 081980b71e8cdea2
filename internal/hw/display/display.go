// Package display draws the menu text on the 128x64 status screen.
package display

import (
	"strings"
	"sync"

	"github.com/cjeanneret/irrigo/internal/debug"
)

// Display is the text surface the menu is rendered to. Clear starts a new
// frame, DrawText adds text with its top-left corner at (x, y), Flush
// pushes the frame to the panel.
type Display interface {
	Clear()
	DrawText(text string, x, y int)
	Flush() error
}

// Panel geometry shared by every implementation.
const (
	Width  = 128
	Height = 64
)

// Border is the frame drawn around every screen.
var Border = struct{ X, Y, W, H int16 }{X: 3, Y: 3, W: 122, H: 58}

// Text is one drawn string.
type Text struct {
	Text string
	X, Y int
}

// MockDisplay keeps frames in memory and logs them. Used for development
// on PC and in tests.
type MockDisplay struct {
	mu      sync.Mutex
	pending []Text
	frame   []Text
	flushes int
}

// NewMockDisplay returns an empty mock display.
func NewMockDisplay() *MockDisplay {
	return &MockDisplay{}
}

func (m *MockDisplay) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = m.pending[:0]
}

func (m *MockDisplay) DrawText(text string, x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, Text{Text: text, X: x, Y: y})
}

func (m *MockDisplay) Flush() error {
	m.mu.Lock()
	m.frame = append(m.frame[:0], m.pending...)
	m.flushes++
	lines := make([]string, len(m.frame))
	for i, t := range m.frame {
		lines[i] = t.Text
	}
	m.mu.Unlock()

	debug.Verbose("Display: [%s]", strings.Join(lines, " | "))
	return nil
}

// Frame returns a copy of the last flushed frame.
func (m *MockDisplay) Frame() []Text {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Text(nil), m.frame...)
}

// Lines returns the text of the last flushed frame.
func (m *MockDisplay) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.frame))
	for i, t := range m.frame {
		out[i] = t.Text
	}
	return out
}

// Flushes returns how many frames were pushed.
func (m *MockDisplay) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

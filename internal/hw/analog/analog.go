// Package analog reads the joystick axes as 12-bit samples.
package analog

import (
	"sync"

	"github.com/cjeanneret/irrigo/internal/debug"
)

// MaxSample is the largest 12-bit reading.
const MaxSample = 4095

// Channel selects an analog input.
type Channel int

const (
	// AxisX is the primary joystick axis. It doubles as the value knob
	// for battery, pump level, light, angle and flow readings.
	AxisX Channel = 0
	// AxisY is the secondary joystick axis used for menu navigation.
	AxisY Channel = 1
)

func (c Channel) String() string {
	switch c {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return "?"
}

// Sampler returns one 12-bit reading from the selected channel. Readings
// are always in [0,4095]; implementations clamp if the hardware is wider.
type Sampler interface {
	Read(ch Channel) uint16
}

// MockSampler returns values set by the caller. Each channel can hold a
// script of readings consumed one per Read; the last one repeats.
type MockSampler struct {
	mu      sync.Mutex
	scripts map[Channel][]uint16
	reads   map[Channel]int
}

// NewMockSampler returns a sampler reading rest on every channel.
func NewMockSampler(rest uint16) *MockSampler {
	m := &MockSampler{
		scripts: make(map[Channel][]uint16),
		reads:   make(map[Channel]int),
	}
	m.Set(AxisX, rest)
	m.Set(AxisY, rest)
	return m
}

// Set makes ch read v until changed.
func (m *MockSampler) Set(ch Channel, v uint16) {
	m.Script(ch, v)
}

// Script queues readings for ch.
func (m *MockSampler) Script(ch Channel, values ...uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scripts == nil {
		m.scripts = make(map[Channel][]uint16)
		m.reads = make(map[Channel]int)
	}
	m.scripts[ch] = append([]uint16(nil), values...)
}

func (m *MockSampler) Read(ch Channel) uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reads == nil {
		m.reads = make(map[Channel]int)
	}
	m.reads[ch]++
	script := m.scripts[ch]
	if len(script) == 0 {
		return 0
	}
	v := script[0]
	if len(script) > 1 {
		m.scripts[ch] = script[1:]
	}
	if v > MaxSample {
		v = MaxSample
	}
	debug.Trace("ADC read channel=%s value=%d (mock)", ch, v)
	return v
}

// Reads returns how many times ch was sampled.
func (m *MockSampler) Reads(ch Channel) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads[ch]
}

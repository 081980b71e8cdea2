// Package pwm drives the 12-bit duty-cycle outputs and the tri-color
// indicator built on top of them.
package pwm

import (
	"fmt"
	"sync"

	"github.com/cjeanneret/irrigo/internal/debug"
)

// MaxLevel is the highest duty-cycle level (12-bit wrap).
const MaxLevel = 4095

// Driver sets duty cycles on numbered output channels.
type Driver interface {
	SetDutyCycle(channel int, level uint16) error
	Close() error
}

// Color names one channel of the composite indicator.
type Color byte

const (
	Red   Color = 'R'
	Green Color = 'G'
	Blue  Color = 'B'
)

func (c Color) String() string {
	return string(c)
}

// Channels maps the indicator colors to driver channels.
type Channels struct {
	Red   int
	Green int
	Blue  int
}

// Indicator is the composite RGB output: setting one color zeroes the
// other two. It is shared by the loop and the pump timer callback, so
// writes are serialized.
type Indicator struct {
	mu    sync.Mutex
	drv   Driver
	ch    Channels
	color Color
	level uint16
}

// NewIndicator wraps drv with the given channel mapping.
func NewIndicator(drv Driver, ch Channels) *Indicator {
	return &Indicator{drv: drv, ch: ch}
}

// Set drives color at level and the other two channels at 0.
// Unknown colors are ignored.
func (i *Indicator) Set(c Color, level uint16) error {
	if level > MaxLevel {
		level = MaxLevel
	}
	var r, g, b uint16
	switch c {
	case Red:
		r = level
	case Green:
		g = level
	case Blue:
		b = level
	default:
		return nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.drv.SetDutyCycle(i.ch.Red, r); err != nil {
		return fmt.Errorf("set red: %w", err)
	}
	if err := i.drv.SetDutyCycle(i.ch.Green, g); err != nil {
		return fmt.Errorf("set green: %w", err)
	}
	if err := i.drv.SetDutyCycle(i.ch.Blue, b); err != nil {
		return fmt.Errorf("set blue: %w", err)
	}
	i.color = c
	i.level = level
	return nil
}

// Off drives all three channels to 0.
func (i *Indicator) Off() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, ch := range []int{i.ch.Red, i.ch.Green, i.ch.Blue} {
		if err := i.drv.SetDutyCycle(ch, 0); err != nil {
			return err
		}
	}
	i.level = 0
	return nil
}

// Current returns the last color and level written.
func (i *Indicator) Current() (Color, uint16) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.color, i.level
}

// MockDriver keeps duty cycles in memory. Used for development on PC
// and in tests.
type MockDriver struct {
	mu     sync.Mutex
	levels map[int]uint16
	writes int
}

// NewMockDriver returns an empty mock driver.
func NewMockDriver() *MockDriver {
	return &MockDriver{levels: make(map[int]uint16)}
}

func (m *MockDriver) SetDutyCycle(channel int, level uint16) error {
	debug.PWM(channel, level)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.levels == nil {
		m.levels = make(map[int]uint16)
	}
	m.levels[channel] = level
	m.writes++
	return nil
}

// Level returns the last level written to channel.
func (m *MockDriver) Level(channel int) uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levels[channel]
}

// Writes returns the number of SetDutyCycle calls.
func (m *MockDriver) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *MockDriver) Close() error {
	debug.Trace("PWM Close (mock)")
	return nil
}

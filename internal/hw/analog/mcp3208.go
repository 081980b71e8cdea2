//go:build !tinygo

package analog

import (
	"fmt"
	"sync"

	"github.com/cjeanneret/irrigo/internal/debug"
	"github.com/stianeikeland/go-rpio/v4"
)

// MCP3208 reads a 12-bit MCP3208 ADC on the Raspberry Pi SPI0 bus.
// The joystick axes are wired to two of its eight single-ended inputs.
// rpio.Open must have been called (the gpio driver does it).
type MCP3208 struct {
	mu     sync.Mutex
	inputs map[Channel]uint8
	buf    [3]byte
}

// MCP3208Config selects the chip select line, bus speed and the ADC input
// each joystick axis is wired to.
type MCP3208Config struct {
	ChipSelect uint8
	SpeedHz    int
	XInput     uint8
	YInput     uint8
}

// NewMCP3208 claims SPI0 for the converter.
func NewMCP3208(cfg MCP3208Config) (*MCP3208, error) {
	debug.Info("Initializing MCP3208 on SPI0 CE%d (%d Hz)", cfg.ChipSelect, cfg.SpeedHz)

	if cfg.XInput > 7 || cfg.YInput > 7 {
		return nil, fmt.Errorf("mcp3208 input out of range: x=%d y=%d", cfg.XInput, cfg.YInput)
	}
	if err := rpio.SpiBegin(rpio.Spi0); err != nil {
		return nil, fmt.Errorf("begin spi0: %w", err)
	}
	if cfg.SpeedHz > 0 {
		rpio.SpiSpeed(cfg.SpeedHz)
	}
	rpio.SpiChipSelect(cfg.ChipSelect)

	return &MCP3208{
		inputs: map[Channel]uint8{AxisX: cfg.XInput, AxisY: cfg.YInput},
	}, nil
}

// Read performs one single-ended conversion. The channel is selected in the
// first two bytes of the transaction, so no separate settle delay is needed.
func (m *MCP3208) Read(ch Channel) uint16 {
	in, ok := m.inputs[ch]
	if !ok {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// start bit, single-ended, D2 | D1 D0 | don't care
	m.buf[0] = 0x06 | (in >> 2)
	m.buf[1] = (in & 0x03) << 6
	m.buf[2] = 0
	rpio.SpiExchange(m.buf[:])

	v := uint16(m.buf[1]&0x0F)<<8 | uint16(m.buf[2])
	debug.Trace("ADC read channel=%s input=%d value=%d", ch, in, v)
	return v
}

// Close releases SPI0.
func (m *MCP3208) Close() error {
	rpio.SpiEnd(rpio.Spi0)
	return nil
}

//go:build tinygo && rp2040

// Package pico implements the hardware interfaces on the RP2040 with the
// TinyGo machine package: ADC joystick, PWM slices for the RGB indicator,
// SSD1306 on I2C1, button interrupts and the USB bootloader reset.
package pico

import (
	"machine"
	"time"

	"github.com/cjeanneret/irrigo/internal/debug"
	"github.com/cjeanneret/irrigo/internal/hw/analog"
	"github.com/cjeanneret/irrigo/internal/hw/gpio"
	"github.com/cjeanneret/irrigo/internal/hw/input"
)

// Reference wiring.
const (
	LED_RED    = machine.GP13
	LED_GREEN  = machine.GP11
	LED_BLUE   = machine.GP12
	BUTTON_A   = machine.GP5
	BUTTON_B   = machine.GP6
	JOY_BUTTON = machine.GP22
	LEVEL      = machine.GP17
	JOY_X      = machine.ADC0 // GP26
	JOY_Y      = machine.ADC1 // GP27
	I2C_SDA    = machine.GP14
	I2C_SCL    = machine.GP15

	DisplayAddress = 0x3C
)

// settle is the wait after selecting an ADC input.
const settle = 2 * time.Microsecond

// ADC samples the joystick axes with the on-chip converter.
type ADC struct {
	inputs [2]machine.ADC
}

// NewADC configures the two joystick inputs.
func NewADC(x, y machine.Pin) *ADC {
	machine.InitADC()
	a := &ADC{inputs: [2]machine.ADC{{Pin: x}, {Pin: y}}}
	for i := range a.inputs {
		a.inputs[i].Configure(machine.ADCConfig{})
	}
	return a
}

// Read returns a 12-bit reading. machine.ADC scales to 16 bits.
func (a *ADC) Read(ch analog.Channel) uint16 {
	if int(ch) >= len(a.inputs) {
		return 0
	}
	time.Sleep(settle)
	return a.inputs[ch].Get() >> 4
}

// GPIO drives plain digital pins, addressed by their GP number.
type GPIO struct{}

func (GPIO) SetupPin(pin int, mode gpio.PinMode) error {
	debug.GPIO("SetupPin", pin, mode)
	p := machine.Pin(pin)
	switch mode {
	case gpio.Output:
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	case gpio.InputPullUp:
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	default:
		p.Configure(machine.PinConfig{Mode: machine.PinInput})
	}
	return nil
}

func (GPIO) WritePin(pin int, level gpio.Level) error {
	machine.Pin(pin).Set(bool(level))
	return nil
}

func (GPIO) ReadPin(pin int) (gpio.Level, error) {
	return gpio.Level(machine.Pin(pin).Get()), nil
}

func (GPIO) Close() error { return nil }

// WatchButtons configures each pin as a pulled-up input and pushes an edge
// onto q on every falling edge. The handler only enqueues.
func WatchButtons(pins map[input.Source]machine.Pin, q *input.Queue, clock input.Clock) error {
	for src, pin := range pins {
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		err := pin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
			q.Push(input.Edge{Source: src, At: clock()})
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Bootloader reboots into the USB mass-storage bootloader.
type Bootloader struct{}

func (Bootloader) EnterProgrammingMode() {
	debug.Info("Entering USB bootloader")
	machine.EnterBootloader()
}

//go:build !tinygo

package pwm

import (
	"fmt"

	"github.com/cjeanneret/irrigo/internal/debug"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/pca9685"
)

// PCA9685 drives outputs through a PCA9685 16-channel controller. Its
// 4096-step counter matches the 12-bit levels used everywhere else, so
// levels are written as-is.
type PCA9685 struct {
	dev *pca9685.Dev
}

// NewPCA9685 configures the controller at addr on bus and turns every
// channel off.
func NewPCA9685(bus i2c.Bus, addr uint16, freq physic.Frequency) (*PCA9685, error) {
	debug.Info("Initializing PCA9685 at 0x%02x (%s)", addr, freq)

	dev, err := pca9685.NewI2C(bus, addr)
	if err != nil {
		return nil, fmt.Errorf("open pca9685: %w", err)
	}
	if err := dev.SetPwmFreq(freq); err != nil {
		return nil, fmt.Errorf("set pwm frequency: %w", err)
	}
	if err := dev.SetAllPwm(0, 0); err != nil {
		return nil, fmt.Errorf("clear outputs: %w", err)
	}
	return &PCA9685{dev: dev}, nil
}

func (p *PCA9685) SetDutyCycle(channel int, level uint16) error {
	debug.PWM(channel, level)
	if level > MaxLevel {
		level = MaxLevel
	}
	return p.dev.SetPwm(channel, 0, gpio.Duty(level))
}

// Close switches all outputs off. The bus is owned by the caller.
func (p *PCA9685) Close() error {
	debug.Trace("PWM Close (pca9685)")
	return p.dev.SetAllPwm(0, 0)
}

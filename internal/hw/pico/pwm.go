//go:build tinygo && rp2040

package pico

import (
	"errors"
	"fmt"
	"machine"

	"github.com/cjeanneret/irrigo/internal/debug"
	"github.com/cjeanneret/irrigo/internal/hw/pwm"
)

// pwmGroup is the subset of TinyGo's unexported PWM slice type we use.
type pwmGroup interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (channel uint8, err error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// sliceFor returns the PWM slice a GPIO is routed to.
func sliceFor(pin machine.Pin) pwmGroup {
	switch (uint8(pin) >> 1) & 7 {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

type output struct {
	group pwmGroup
	ch    uint8
}

// PWM drives pins through the hardware PWM slices. Channels are GP
// numbers, levels are 12-bit and scaled to each slice's counter top.
type PWM struct {
	outs map[int]output
}

// NewPWM configures a slice for every pin with the given period in
// nanoseconds and sets the outputs low.
func NewPWM(period uint64, pins ...machine.Pin) (*PWM, error) {
	p := &PWM{outs: make(map[int]output)}
	configured := map[pwmGroup]bool{}
	for _, pin := range pins {
		g := sliceFor(pin)
		if !configured[g] {
			if err := g.Configure(machine.PWMConfig{Period: period}); err != nil {
				return nil, fmt.Errorf("configure pwm for GP%d: %w", pin, err)
			}
			configured[g] = true
		}
		ch, err := g.Channel(pin)
		if err != nil {
			return nil, fmt.Errorf("pwm channel for GP%d: %w", pin, err)
		}
		g.Set(ch, 0)
		p.outs[int(pin)] = output{group: g, ch: ch}
	}
	return p, nil
}

func (p *PWM) SetDutyCycle(channel int, level uint16) error {
	o, ok := p.outs[channel]
	if !ok {
		return errors.New("pwm: pin not configured")
	}
	if level > pwm.MaxLevel {
		level = pwm.MaxLevel
	}
	debug.PWM(channel, level)
	o.group.Set(o.ch, uint32(level)*(o.group.Top()+1)/(pwm.MaxLevel+1))
	return nil
}

// Close sets every output low.
func (p *PWM) Close() error {
	for _, o := range p.outs {
		o.group.Set(o.ch, 0)
	}
	return nil
}

// Package stepper drives the optional panel tilt motor through an A4988
// driver: STEP and DIR lines plus an active-low ENABLE.
package stepper

import (
	"context"
	"fmt"
	"time"

	"github.com/cjeanneret/irrigo/internal/debug"
	"github.com/cjeanneret/irrigo/internal/hw/gpio"
)

// Config holds the wiring and gearing of the tilt motor.
type Config struct {
	StepPin       int
	DirPin        int
	EnablePin     int // 0 = not wired. Active LOW (LOW=enabled).
	StepsPerRev   int
	Microstepping int
	StepDelay     time.Duration // half-cycle of the STEP pulse
}

// Stepper moves the tilt axis and remembers its position in steps from
// the 0° end stop.
type Stepper struct {
	gpio     gpio.Driver
	cfg      Config
	delay    time.Duration
	position int
}

// NewStepper sets the pins up and enables the driver. The axis is assumed
// to start at 0°.
func NewStepper(g gpio.Driver, cfg Config) (*Stepper, error) {
	if cfg.StepsPerRev <= 0 {
		return nil, fmt.Errorf("steps_per_rev must be > 0, got %d", cfg.StepsPerRev)
	}
	if cfg.Microstepping <= 0 {
		cfg.Microstepping = 1
	}
	delay := cfg.StepDelay
	if delay <= 0 {
		delay = time.Millisecond
	}

	for _, pin := range []int{cfg.StepPin, cfg.DirPin} {
		if err := g.SetupPin(pin, gpio.Output); err != nil {
			return nil, fmt.Errorf("setup stepper pin %d: %w", pin, err)
		}
	}
	s := &Stepper{gpio: g, cfg: cfg, delay: delay}

	if cfg.EnablePin > 0 {
		if err := g.SetupPin(cfg.EnablePin, gpio.Output); err != nil {
			return nil, fmt.Errorf("setup stepper pin %d: %w", cfg.EnablePin, err)
		}
		if err := s.Enable(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// StepsForAngle converts an absolute tilt angle in degrees to a step
// position, rounded to the nearest step.
func (s *Stepper) StepsForAngle(angle uint) int {
	perRev := s.cfg.StepsPerRev * s.cfg.Microstepping
	return (int(angle)*perRev + 180) / 360
}

// Position returns the current position in steps.
func (s *Stepper) Position() int {
	return s.position
}

// MoveToAngle moves the axis to an absolute angle.
func (s *Stepper) MoveToAngle(ctx context.Context, angle uint) error {
	return s.MoveSteps(ctx, s.StepsForAngle(angle)-s.position)
}

// MoveSteps moves by a relative number of steps, positive towards 180°.
// It stops early when ctx is cancelled; the position reflects the steps
// actually taken.
func (s *Stepper) MoveSteps(ctx context.Context, steps int) error {
	if steps == 0 {
		return nil
	}

	dir, inc := gpio.High, 1
	if steps < 0 {
		dir, inc = gpio.Low, -1
		steps = -steps
	}
	debug.Verbose("Stepper: %d steps (dir=%v) from %d", steps, dir, s.position)

	if err := s.gpio.WritePin(s.cfg.DirPin, dir); err != nil {
		return err
	}
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.pulse(); err != nil {
			return err
		}
		s.position += inc
	}
	return nil
}

func (s *Stepper) pulse() error {
	if err := s.gpio.WritePin(s.cfg.StepPin, gpio.High); err != nil {
		return err
	}
	time.Sleep(s.delay)
	if err := s.gpio.WritePin(s.cfg.StepPin, gpio.Low); err != nil {
		return err
	}
	time.Sleep(s.delay)
	return nil
}

// Enable powers the driver (ENABLE=LOW); the motor holds position.
func (s *Stepper) Enable() error {
	if s.cfg.EnablePin <= 0 {
		return nil
	}
	return s.gpio.WritePin(s.cfg.EnablePin, gpio.Low)
}

// Disable releases the motor (ENABLE=HIGH).
func (s *Stepper) Disable() error {
	if s.cfg.EnablePin <= 0 {
		return nil
	}
	return s.gpio.WritePin(s.cfg.EnablePin, gpio.High)
}

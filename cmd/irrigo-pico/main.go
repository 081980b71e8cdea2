//go:build tinygo && rp2040

// Firmware entry point for the Raspberry Pi Pico build:
//
//	tinygo flash -target=pico ./cmd/irrigo-pico
package main

import (
	"context"
	"machine"
	"time"

	"github.com/cjeanneret/irrigo/internal/controller"
	"github.com/cjeanneret/irrigo/internal/debug"
	"github.com/cjeanneret/irrigo/internal/hw/input"
	"github.com/cjeanneret/irrigo/internal/hw/pico"
	"github.com/cjeanneret/irrigo/internal/hw/pwm"
	"github.com/cjeanneret/irrigo/internal/logic/menu"
)

// pwmPeriod gives roughly 1.2kHz with a 4096-step wrap.
const pwmPeriod = uint64(time.Second) / 1200

func main() {
	debug.Init(debug.LevelInfo)
	debug.Info("irrigo firmware starting")

	out, err := pico.NewPWM(pwmPeriod, pico.LED_RED, pico.LED_GREEN, pico.LED_BLUE)
	if err != nil {
		fail("pwm", err)
	}
	oled, err := pico.NewOLED(pico.I2C_SDA, pico.I2C_SCL, pico.DisplayAddress)
	if err != nil {
		fail("display", err)
	}

	edges := input.NewQueue(input.DefaultQueueSize)
	err = pico.WatchButtons(map[input.Source]machine.Pin{
		input.Confirm:    pico.BUTTON_A,
		input.Reset:      pico.BUTTON_B,
		input.SampleAxis: pico.JOY_BUTTON,
	}, edges, input.SinceStart())
	if err != nil {
		fail("buttons", err)
	}

	ctrl, err := controller.New(controller.Hardware{
		GPIO:    pico.GPIO{},
		ADC:     pico.NewADC(pico.JOY_X, pico.JOY_Y),
		Display: oled,
		Indicator: pwm.NewIndicator(out, pwm.Channels{
			Red:   int(pico.LED_RED),
			Green: int(pico.LED_GREEN),
			Blue:  int(pico.LED_BLUE),
		}),
		Resetter: pico.Bootloader{},
	}, controller.Config{
		Nav:      menu.DefaultNav,
		LevelPin: int(pico.LEVEL),
		Dropped:  edges.Dropped,
	})
	if err != nil {
		fail("controller", err)
	}

	ctrl.Run(context.Background(), edges.Edges())
}

// fail reports a fatal init error and keeps the board alive so the
// message stays readable on the serial console.
func fail(what string, err error) {
	for {
		println("init", what, "failed:", err.Error())
		time.Sleep(5 * time.Second)
	}
}

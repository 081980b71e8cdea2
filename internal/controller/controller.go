// Package controller runs the irrigation controller: the polling loop that
// navigates and renders the menu, the debounced dispatch of button edges,
// the scheduled pump run and the auto-tracking step.
package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cjeanneret/irrigo/internal/debug"
	"github.com/cjeanneret/irrigo/internal/hw/analog"
	"github.com/cjeanneret/irrigo/internal/hw/bootsel"
	"github.com/cjeanneret/irrigo/internal/hw/display"
	"github.com/cjeanneret/irrigo/internal/hw/gpio"
	"github.com/cjeanneret/irrigo/internal/hw/input"
	"github.com/cjeanneret/irrigo/internal/hw/pwm"
	"github.com/cjeanneret/irrigo/internal/logic/debounce"
	"github.com/cjeanneret/irrigo/internal/logic/menu"
	"github.com/cjeanneret/irrigo/internal/logic/scale"
	"github.com/cjeanneret/irrigo/internal/logic/tracking"
)

// DefaultInterval is the pause between two loop iterations.
const DefaultInterval = 200 * time.Millisecond

// Config holds the loop tuning.
type Config struct {
	Interval time.Duration      // loop period, 0 = DefaultInterval
	Debounce time.Duration      // shared debounce window, 0 = debounce.DefaultWindow
	Nav      menu.NavThresholds // zero value = menu.DefaultNav
	LevelPin int                // tank level switch (HIGH = full)

	// Dropped reports how many edges the producer discarded, typically
	// input.Queue.Dropped. Optional.
	Dropped func() uint64
}

// Tracker positions the physical panel. Track must not block.
type Tracker interface {
	Track(angle uint)
}

// Hardware groups the collaborators the controller drives. Tilt is
// optional.
type Hardware struct {
	GPIO      gpio.Driver
	ADC       analog.Sampler
	Display   display.Display
	Indicator *pwm.Indicator
	Resetter  bootsel.Resetter
	Scheduler Scheduler
	Tilt      Tracker
}

// Controller ties the shared state to the hardware.
type Controller struct {
	hw    Hardware
	cfg   Config
	state *State
	gate  *debounce.Gate

	dropped uint64 // last value reported from cfg.Dropped

	timerMu sync.Mutex
	timer   Timer

	// outMu orders pump state changes with the indicator writes that
	// reflect them.
	outMu sync.Mutex
}

// New returns a controller in the boot state. The level pin is set up as a
// pulled-up input.
func New(hw Hardware, cfg Config) (*Controller, error) {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Nav == (menu.NavThresholds{}) {
		cfg.Nav = menu.DefaultNav
	}
	if hw.Scheduler == nil {
		hw.Scheduler = SystemScheduler{}
	}
	if hw.Resetter == nil {
		hw.Resetter = bootsel.Func(func() {})
	}

	if err := hw.GPIO.SetupPin(cfg.LevelPin, gpio.InputPullUp); err != nil {
		return nil, fmt.Errorf("setup level sensor pin %d: %w", cfg.LevelPin, err)
	}

	return &Controller{
		hw:    hw,
		cfg:   cfg,
		state: NewState(),
		gate:  debounce.NewGate(cfg.Debounce),
	}, nil
}

// State exposes the shared state.
func (c *Controller) State() *State {
	return c.state
}

// Run drives the loop until ctx is cancelled. Edges are drained between
// ticks; the first tick runs immediately.
func (c *Controller) Run(ctx context.Context, edges <-chan input.Edge) error {
	ticker := time.NewTicker(c.cfg.Interval)
	defer ticker.Stop()

	c.Tick()
	return c.loop(ctx, edges, ticker.C)
}

func (c *Controller) loop(ctx context.Context, edges <-chan input.Edge, tick <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			debug.Info("Controller loop stopped: %v", ctx.Err())
			return nil
		case e := <-edges:
			c.HandleEdge(e)
		case <-tick:
			c.Tick()
		}
	}
}

// Tick runs one iteration of the polling loop: read the level sensor,
// navigate, take the per-screen reading, render, then auto-track.
func (c *Controller) Tick() {
	level, err := c.hw.GPIO.ReadPin(c.cfg.LevelPin)
	if err != nil {
		debug.Error(fmt.Errorf("read level sensor: %w", err))
	} else {
		c.state.SetTankFull(level == gpio.High)
	}

	c.reportDrops()
	c.navigate()
	frame := c.render()
	c.apply(frame)

	if c.state.AutoTracking() {
		angle := tracking.Angle(c.state.Light())
		if c.state.SetAngle(angle) {
			debug.Tilt(angle, "auto")
			c.track(angle)
		}
	}
}

// reportDrops logs edges the producers had to discard since the last tick.
// Producers may run in interrupt context, so they only count.
func (c *Controller) reportDrops() {
	if c.cfg.Dropped == nil {
		return
	}
	n := c.cfg.Dropped()
	if n > c.dropped {
		debug.Trace("Edge queue full, dropped %d edges", n-c.dropped)
		c.dropped = n
	}
}

func (c *Controller) navigate() {
	y := c.hw.ADC.Read(analog.AxisY)
	cur := c.state.Screen()
	next := c.cfg.Nav.Navigate(cur, y)
	if next != cur {
		c.state.SetScreen(next)
		debug.Screen(int(cur), int(next))
	}
}

// render takes the reading the active screen needs and renders it.
func (c *Controller) render() menu.Frame {
	view := c.state.View()
	var sample uint16

	switch view.Screen {
	case menu.ScreenFlow:
		if view.PumpActive {
			sample = c.hw.ADC.Read(analog.AxisX)
			total := c.state.AddConsumption(scale.Percent(sample))
			debug.Verbose("Flow: sample=%d total=%d", sample, total)
		}
	case menu.ScreenSchedule:
		sample = c.hw.ADC.Read(analog.AxisX)
		c.state.SetDuration(scale.Seconds(sample))
	case menu.ScreenTilt:
		if !view.AutoTracking {
			sample = c.hw.ADC.Read(analog.AxisX)
		}
	}

	view = c.state.View()
	view.Sample = sample
	return menu.Render(view)
}

func (c *Controller) apply(f menu.Frame) {
	d := c.hw.Display
	d.Clear()
	for _, l := range f.Lines {
		d.DrawText(l.Text, l.X, l.Y)
	}
	if err := d.Flush(); err != nil {
		debug.Error(fmt.Errorf("flush display: %w", err))
	}

	if f.Indicator != nil {
		c.applyIndicator(*f.Indicator)
	}
}

// applyIndicator writes a rendered indicator. The pump color is refreshed
// from the live pump state: the timer callback may have switched the pump
// off since the frame was rendered.
func (c *Controller) applyIndicator(ind menu.Indicator) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	if ind.Color == pwm.Blue {
		ind.Level = c.pumpOutput()
	}
	c.setIndicator(ind.Color, ind.Level)
}

func (c *Controller) pumpOutput() uint16 {
	if active, _ := c.state.Pump(); active {
		return c.state.PumpLevel()
	}
	return 0
}

func (c *Controller) setIndicator(col pwm.Color, level uint16) {
	if c.hw.Indicator == nil {
		return
	}
	if err := c.hw.Indicator.Set(col, level); err != nil {
		debug.Error(fmt.Errorf("set indicator %s: %w", col, err))
	}
}

// HandleEdge applies the debounce gate to e and dispatches it when
// accepted. It reports whether the edge was accepted.
func (c *Controller) HandleEdge(e input.Edge) bool {
	if !c.gate.Accept(e.At) {
		debug.Trace("Edge: %s dropped at %dus (debounce)", e.Source, e.At.Microseconds())
		return false
	}
	debug.Edge(e.Source.String(), e.At.Microseconds())

	switch e.Source {
	case input.Confirm:
		c.ScreenAction()
	case input.Reset:
		c.hw.Resetter.EnterProgrammingMode()
	case input.SampleAxis:
		c.SampleAxis()
	}
	return true
}

// ScreenAction runs the confirm action bound to the active screen.
func (c *Controller) ScreenAction() {
	switch c.state.Screen() {
	case menu.ScreenPump:
		active, toggled := c.state.TogglePump()
		if !toggled {
			debug.Live("Pump: toggle ignored, scheduled run in progress")
			return
		}
		_, armed := c.state.Pump()
		debug.Pump(active, armed, c.state.PumpLevel())
	case menu.ScreenSchedule:
		c.ScheduledPumpRun(c.state.Duration())
	case menu.ScreenTracking:
		on := c.state.ToggleAutoTracking()
		debug.Live("Auto-tracking: %v", on)
	}
}

// SampleAxis reads the primary axis into the value owned by the active
// screen.
func (c *Controller) SampleAxis() {
	scr := c.state.Screen()
	switch scr {
	case menu.ScreenStatus:
		s := c.hw.ADC.Read(analog.AxisX)
		c.state.SetBattery(scale.Percent(s))
		debug.Live("Battery: %d%%", scale.Percent(s))
	case menu.ScreenPump, menu.ScreenSchedule:
		s := c.hw.ADC.Read(analog.AxisX)
		c.state.SetPumpLevel(s)
		debug.Live("Pump level: %d", s)
	case menu.ScreenTracking:
		s := c.hw.ADC.Read(analog.AxisX)
		c.state.SetMotorLevel(s)
		c.state.SetLight(scale.Light(s))
		debug.Live("Light: %d (motor level %d)", scale.Light(s), s)
	case menu.ScreenTilt:
		s := c.hw.ADC.Read(analog.AxisX)
		c.state.SetMotorLevel(s)
		if c.state.AutoTracking() {
			debug.Live("Tilt: manual entry blocked while auto-tracking")
			return
		}
		angle := scale.Angle(s)
		if c.state.SetAngle(angle) {
			c.track(angle)
		}
		debug.Tilt(angle, "manual")
	}
}

func (c *Controller) track(angle uint) {
	if c.hw.Tilt != nil {
		c.hw.Tilt.Track(angle)
	}
}

// ScheduledPumpRun turns the pump on for the given number of seconds.
// A run already in progress is not replaced: the call is ignored and
// false is returned.
func (c *Controller) ScheduledPumpRun(seconds uint) bool {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	c.outMu.Lock()
	if !c.state.Arm() {
		c.outMu.Unlock()
		debug.Live("Pump: scheduled run already armed, ignoring")
		return false
	}
	level := c.state.PumpLevel()
	c.setIndicator(pwm.Blue, level)
	c.outMu.Unlock()
	debug.Pump(true, true, level)
	debug.Live("Pump: scheduled off in %ds", seconds)

	c.timer = c.hw.Scheduler.AfterFunc(time.Duration(seconds)*time.Second, c.turnOff)
	return true
}

// turnOff is the one-shot end of a scheduled run.
func (c *Controller) turnOff() {
	c.timerMu.Lock()
	c.timer = nil
	c.timerMu.Unlock()

	c.outMu.Lock()
	c.state.Disarm()
	c.setIndicator(pwm.Blue, 0)
	c.outMu.Unlock()
	debug.Pump(false, false, c.state.PumpLevel())
}

// Close cancels a pending scheduled run and switches the pump and the
// indicator off.
func (c *Controller) Close() {
	c.timerMu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerMu.Unlock()

	c.state.Disarm()
	if c.hw.Indicator != nil {
		if err := c.hw.Indicator.Off(); err != nil {
			debug.Error(err)
		}
	}
}

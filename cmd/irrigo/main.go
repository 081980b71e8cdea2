package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/cjeanneret/irrigo/internal/config"
	"github.com/cjeanneret/irrigo/internal/controller"
	"github.com/cjeanneret/irrigo/internal/debug"
	"github.com/cjeanneret/irrigo/internal/hw/analog"
	"github.com/cjeanneret/irrigo/internal/hw/bootsel"
	"github.com/cjeanneret/irrigo/internal/hw/display"
	"github.com/cjeanneret/irrigo/internal/hw/gpio"
	"github.com/cjeanneret/irrigo/internal/hw/input"
	"github.com/cjeanneret/irrigo/internal/hw/pwm"
	"github.com/cjeanneret/irrigo/internal/hw/stepper"
	"github.com/cjeanneret/irrigo/internal/logic/menu"
	"github.com/cjeanneret/irrigo/internal/logic/motion"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// mockRest is the joystick reading at rest, inside the navigation dead zone.
const mockRest = 2048

func main() {
	// CLI flags
	cfgPath := flag.String("config", filepath.Join("configs", "default.yaml"), "path to config file")
	debugLevel := flag.Int("debug", -1, "override debug level 0-4 (-1 = use config)")
	mock := &boolOverride{}
	flag.Var(mock, "mock", "override mock_hardware (use -mock or -mock=false)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	if err := validateCLIOverrides(*debugLevel); err != nil {
		log.Fatalf("invalid CLI override: %v", err)
	}
	applyOverrides(cfg, *debugLevel, mock)

	// Initialize debug system
	debug.Init(cfg.Defaults.DebugLevel)
	debug.Section("Initialization")
	debug.Value("Config path", *cfgPath)
	debug.Value("Debug level", cfg.Defaults.DebugLevel)
	debug.Value("Mock hardware", cfg.Defaults.MockHardware)

	edges := input.NewQueue(cfg.Defaults.EdgeQueue)
	exit := bootsel.NewExit()

	var b *board
	if cfg.Defaults.MockHardware {
		b = newMockBoard(cfg)
	} else {
		b, err = newRealBoard(cfg, edges)
		if err != nil {
			log.Fatalf("init hardware failed: %v", err)
		}
	}
	exit.OnReset(b.Close)

	kb := newKeyboard(os.Stdin, b, edges)
	go func() {
		if err := kb.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			debug.Error(fmt.Errorf("keyboard: %w", err))
		}
	}()

	var tilt controller.Tracker
	if cfg.TiltStepper.Enabled() {
		follower, err := newTiltFollower(cfg, b)
		if err != nil {
			_ = b.Close()
			log.Fatalf("init tilt motor failed: %v", err)
		}
		go follower.Run(ctx)
		tilt = follower
	}

	debug.Info("Starting controller")
	ctrl, err := controller.New(controller.Hardware{
		GPIO:      b.gpio,
		ADC:       b.adc,
		Display:   b.display,
		Indicator: b.indicator,
		Resetter:  exit,
		Tilt:      tilt,
	}, controllerConfig(cfg, edges))
	if err != nil {
		_ = b.Close()
		log.Fatalf("init controller failed: %v", err)
	}
	exit.OnReset(func() error {
		ctrl.Close()
		return nil
	})

	debug.Section("Running")
	if err := ctrl.Run(ctx, edges.Edges()); err != nil {
		log.Printf("controller stopped: %v", err)
	}

	ctrl.Close()
	if n := edges.Dropped(); n > 0 {
		debug.Info("Dropped %d button edges (queue full)", n)
	}
	if err := b.Close(); err != nil {
		log.Printf("closing hardware failed: %v", err)
	}
}

// controllerConfig maps the loaded configuration onto the controller's.
func controllerConfig(cfg *config.Config, q *input.Queue) controller.Config {
	return controller.Config{
		Dropped:  q.Dropped,
		Interval: cfg.LoopInterval(),
		Debounce: cfg.Debounce(),
		Nav: menu.NavThresholds{
			Low:  uint16(cfg.Menu.NavLow),
			High: uint16(cfg.Menu.NavHigh),
		},
		LevelPin: cfg.Pins.LevelSensor,
	}
}

// newTiltFollower drives the optional panel motor from the board's GPIO.
// The motor is released when the board closes.
func newTiltFollower(cfg *config.Config, b *board) (*motion.Follower, error) {
	ts := cfg.TiltStepper
	debug.PrintStruct("Tilt stepper config", ts)
	motor, err := stepper.NewStepper(b.gpio, stepper.Config{
		StepPin:       ts.StepPin,
		DirPin:        ts.DirPin,
		EnablePin:     ts.EnablePin,
		StepsPerRev:   ts.StepsPerRev,
		Microstepping: ts.Microstepping,
		StepDelay:     cfg.StepDelay(),
	})
	if err != nil {
		return nil, err
	}
	b.onClose(motor.Disable)
	return motion.NewFollower(motor), nil
}

// validateCLIOverrides checks the -debug override. -1 means "use config".
func validateCLIOverrides(debugLevel int) error {
	if debugLevel != -1 && (debugLevel < 0 || debugLevel > 4) {
		return fmt.Errorf("debug must be between 0 and 4, got %d", debugLevel)
	}
	return nil
}

// applyOverrides mutates cfg with the CLI overrides that were given.
func applyOverrides(cfg *config.Config, debugLevel int, mock *boolOverride) {
	if debugLevel >= 0 {
		cfg.Defaults.DebugLevel = debugLevel
	}
	if mock != nil && mock.set {
		cfg.Defaults.MockHardware = mock.val
	}
}

// boolOverride implements flag.Value for a boolean that is only applied
// when given on the command line.
type boolOverride struct {
	val bool
	set bool
}

func (b *boolOverride) String() string {
	if b == nil || !b.set {
		return ""
	}
	return strconv.FormatBool(b.val)
}

func (b *boolOverride) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.val = v
	b.set = true
	return nil
}

func (b *boolOverride) IsBoolFlag() bool { return true }

// board owns the hardware handles and releases them in reverse order.
type board struct {
	gpio      gpio.Driver
	adc       analog.Sampler
	display   display.Display
	indicator *pwm.Indicator

	// mock-only handles, nil on real hardware
	mockADC  *analog.MockSampler
	mockGPIO *gpio.MockDriver
	levelPin int

	closers []func() error
}

func (b *board) onClose(fn func() error) {
	b.closers = append(b.closers, fn)
}

// Close runs the release functions once, last registered first.
func (b *board) Close() error {
	closers := b.closers
	b.closers = nil

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func indicatorChannels(cfg *config.Config) pwm.Channels {
	return pwm.Channels{
		Red:   cfg.PWM.RedChannel,
		Green: cfg.PWM.GreenChannel,
		Blue:  cfg.PWM.BlueChannel,
	}
}

// newMockBoard wires in-memory hardware for development on a PC.
func newMockBoard(cfg *config.Config) *board {
	debug.Info("Using MOCK hardware (development mode)")

	g := gpio.NewMockDriver()
	adc := analog.NewMockSampler(mockRest)
	drv := pwm.NewMockDriver()

	b := &board{
		gpio:      g,
		adc:       adc,
		display:   display.NewMockDisplay(),
		indicator: pwm.NewIndicator(drv, indicatorChannels(cfg)),
		mockADC:   adc,
		mockGPIO:  g,
		levelPin:  cfg.Pins.LevelSensor,
	}
	b.onClose(g.Close)
	b.onClose(drv.Close)
	return b
}

// newKeyboard maps lines read from r to the buttons. On real hardware the
// typed edges are stamped on the kernel's monotonic clock so they share
// the debounce window with the button lines. With mock hardware it also
// drives the mock analog and level inputs:
//
//	a, b, j      buttons A, B and the joystick button
//	n, p         push the joystick up or down for one tick
//	x <value>    set the joystick X reading (0-4095)
//	full, low    set the tank level switch
func newKeyboard(r io.Reader, b *board, q *input.Queue) *input.Keyboard {
	if b.mockADC == nil {
		return input.NewKeyboard(r, q, input.MonotonicClock())
	}
	kb := input.NewKeyboard(r, q, input.SinceStart())
	kb.Bind("n", func(string) { b.mockADC.Script(analog.AxisY, analog.MaxSample, mockRest) })
	kb.Bind("p", func(string) { b.mockADC.Script(analog.AxisY, 0, mockRest) })
	kb.Bind("x", func(arg string) {
		v, err := strconv.ParseUint(arg, 10, 16)
		if err != nil {
			debug.Error(fmt.Errorf("x: %w", err))
			return
		}
		b.mockADC.Set(analog.AxisX, uint16(v))
	})
	kb.Bind("full", func(string) { b.mockGPIO.SetLevel(b.levelPin, gpio.High) })
	kb.Bind("low", func(string) { b.mockGPIO.SetLevel(b.levelPin, gpio.Low) })
	return kb
}

// newRealBoard opens the Raspberry Pi peripherals: go-rpio for the level
// sensor and the SPI ADC, periph.io for the I2C display and PWM board,
// gpiocdev for the button lines.
func newRealBoard(cfg *config.Config, q *input.Queue) (_ *board, err error) {
	b := &board{}
	defer func() {
		if err != nil {
			_ = b.Close()
		}
	}()

	debug.Step(1, "Initializing periph host")
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	debug.Step(2, "Initializing GPIO driver")
	g, err := gpio.NewDriver(false)
	if err != nil {
		return nil, err
	}
	b.gpio = g
	b.onClose(g.Close)

	debug.Step(3, "Initializing ADC")
	adc, err := analog.NewMCP3208(analog.MCP3208Config{
		ChipSelect: cfg.ADC.SPIChipSelect,
		SpeedHz:    cfg.ADC.SPISpeedHz,
		XInput:     cfg.ADC.XChannel,
		YInput:     cfg.ADC.YChannel,
	})
	if err != nil {
		return nil, err
	}
	b.adc = adc
	b.onClose(adc.Close)

	debug.Step(4, "Opening I2C buses")
	buses := map[string]i2c.BusCloser{}
	openBus := func(name string) (i2c.Bus, error) {
		if bus, ok := buses[name]; ok {
			return bus, nil
		}
		bus, err := i2creg.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
		}
		buses[name] = bus
		b.onClose(bus.Close)
		return bus, nil
	}

	debug.Step(5, "Initializing display")
	dispBus, err := openBus(cfg.Display.I2CBus)
	if err != nil {
		return nil, err
	}
	oled, err := display.NewSSD1306(dispBus, cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		return nil, err
	}
	b.display = oled
	b.onClose(oled.Halt)

	debug.Step(6, "Initializing PWM indicator")
	pwmBus, err := openBus(cfg.PWM.I2CBus)
	if err != nil {
		return nil, err
	}
	pca, err := pwm.NewPCA9685(pwmBus, cfg.PWM.Address, physic.Frequency(cfg.PWM.FrequencyHz)*physic.Hertz)
	if err != nil {
		return nil, err
	}
	b.indicator = pwm.NewIndicator(pca, indicatorChannels(cfg))
	b.onClose(pca.Close)

	debug.Step(7, "Watching button lines")
	lines, err := input.WatchLines(cfg.GPIOChip, input.Pins{
		input.Confirm:    cfg.Pins.ButtonA,
		input.Reset:      cfg.Pins.ButtonB,
		input.SampleAxis: cfg.Pins.JoystickButton,
	}, q)
	if err != nil {
		return nil, err
	}
	b.onClose(lines.Close)

	return b, nil
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MaxConfigFileBytes caps the size of a configuration file.
const MaxConfigFileBytes = 64 * 1024

// DefaultsConfig contains generic parameters (timing, logging, hardware mode).
type DefaultsConfig struct {
	LoopIntervalMs int  `yaml:"loop_interval_ms"` // pause between loop iterations (default 200)
	DebounceMs     int  `yaml:"debounce_ms"`      // shared button debounce window (default 200)
	DebugLevel     int  `yaml:"debug_level"`      // debug level 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
	MockHardware   bool `yaml:"mock_hardware"`    // use mock hardware (true=dev/test, false=real Raspberry Pi)
	EdgeQueue      int  `yaml:"edge_queue"`       // capacity of the button edge queue (default 8)
}

// MenuConfig holds the navigation dead zone of the secondary axis.
type MenuConfig struct {
	NavLow  int `yaml:"nav_low"`  // below: previous screen (default 1800)
	NavHigh int `yaml:"nav_high"` // above: next screen (default 3000)
}

// PinsConfig holds the GPIO numbers (BCM on the Pi).
type PinsConfig struct {
	ButtonA        int `yaml:"button_a"`        // confirm
	ButtonB        int `yaml:"button_b"`        // reset to programming mode
	JoystickButton int `yaml:"joystick_button"` // sample primary axis
	LevelSensor    int `yaml:"level_sensor"`    // tank level switch, HIGH = full
}

// DisplayConfig describes the SSD1306 panel.
type DisplayConfig struct {
	I2CBus string `yaml:"i2c_bus"` // "" = first available bus
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// PWMConfig describes the PCA9685 board driving the RGB indicator.
type PWMConfig struct {
	I2CBus       string `yaml:"i2c_bus"`
	Address      uint16 `yaml:"address"`      // default 0x40
	FrequencyHz  int    `yaml:"frequency_hz"` // default 1200
	RedChannel   int    `yaml:"red_channel"`
	GreenChannel int    `yaml:"green_channel"`
	BlueChannel  int    `yaml:"blue_channel"`
}

// ADCConfig describes the MCP3208 wiring.
type ADCConfig struct {
	SPIChipSelect uint8 `yaml:"spi_chip_select"`
	SPISpeedHz    int   `yaml:"spi_speed_hz"` // default 1000000
	XChannel      uint8 `yaml:"x_channel"`    // primary axis input
	YChannel      uint8 `yaml:"y_channel"`    // navigation axis input
}

// StepperConfig describes the optional panel tilt motor (A4988 driver).
// StepPin 0 means no motor is fitted.
type StepperConfig struct {
	StepPin       int `yaml:"step_pin"`
	DirPin        int `yaml:"dir_pin"`
	EnablePin     int `yaml:"enable_pin"` // 0 = not used. Active LOW.
	StepsPerRev   int `yaml:"steps_per_rev"`
	Microstepping int `yaml:"microstepping"`
	StepDelayMs   int `yaml:"step_delay_ms"` // half-cycle of the STEP pulse (default 1)
}

// Enabled reports whether a tilt motor is configured.
func (s StepperConfig) Enabled() bool {
	return s.StepPin > 0
}

// Config aggregates all application configuration.
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Menu     MenuConfig     `yaml:"menu"`
	Pins     PinsConfig     `yaml:"pins"`
	Display  DisplayConfig  `yaml:"display"`
	PWM      PWMConfig      `yaml:"pwm"`
	ADC      ADCConfig      `yaml:"adc"`
	GPIOChip string         `yaml:"gpio_chip"` // character device for button lines

	TiltStepper StepperConfig `yaml:"tilt_stepper"` // optional
}

// Default returns the configuration matching the reference wiring.
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			LoopIntervalMs: 200,
			DebounceMs:     200,
			EdgeQueue:      8,
		},
		Menu: MenuConfig{NavLow: 1800, NavHigh: 3000},
		Pins: PinsConfig{
			ButtonA:        5,
			ButtonB:        6,
			JoystickButton: 22,
			LevelSensor:    17,
		},
		Display: DisplayConfig{Width: 128, Height: 64},
		PWM: PWMConfig{
			Address:      0x40,
			FrequencyHz:  1200,
			RedChannel:   0,
			GreenChannel: 1,
			BlueChannel:  2,
		},
		ADC:      ADCConfig{SPISpeedHz: 1000000, XChannel: 0, YChannel: 1},
		GPIOChip: "gpiochip0",
	}
}

// ValidateConfigPath checks that path names a .yaml file inside a
// directory called "configs" and does not climb out of it.
func ValidateConfigPath(path string) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return fmt.Errorf("config path %q must not contain '..'", path)
		}
	}
	clean := filepath.Clean(path)
	if filepath.Ext(clean) != ".yaml" {
		return fmt.Errorf("config path %q must have a .yaml extension", path)
	}
	if filepath.Base(filepath.Dir(clean)) != "configs" {
		return fmt.Errorf("config path %q must be inside a configs/ directory", path)
	}
	return nil
}

// Load reads a YAML file and returns the configuration. Fields missing
// from the file keep the values of Default.
func Load(path string) (*Config, error) {
	if err := ValidateConfigPath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxConfigFileBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if len(data) > MaxConfigFileBytes {
		return nil, fmt.Errorf("config file exceeds %d bytes", MaxConfigFileBytes)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and fills zero values with defaults.
func (c *Config) Validate() error {
	def := Default()

	if c.Defaults.LoopIntervalMs < 0 {
		return fmt.Errorf("loop_interval_ms must be > 0, got %d", c.Defaults.LoopIntervalMs)
	}
	if c.Defaults.LoopIntervalMs == 0 {
		c.Defaults.LoopIntervalMs = def.Defaults.LoopIntervalMs
	}
	if c.Defaults.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must be >= 0, got %d", c.Defaults.DebounceMs)
	}
	if c.Defaults.DebounceMs == 0 {
		c.Defaults.DebounceMs = def.Defaults.DebounceMs
	}
	if c.Defaults.DebugLevel < 0 || c.Defaults.DebugLevel > 4 {
		return fmt.Errorf("debug_level must be between 0 and 4, got %d", c.Defaults.DebugLevel)
	}
	if c.Defaults.EdgeQueue <= 0 {
		c.Defaults.EdgeQueue = def.Defaults.EdgeQueue
	}

	if c.Menu.NavLow < 0 || c.Menu.NavHigh > 4095 || c.Menu.NavLow >= c.Menu.NavHigh {
		return fmt.Errorf("menu thresholds must satisfy 0 <= nav_low < nav_high <= 4095, got %d/%d",
			c.Menu.NavLow, c.Menu.NavHigh)
	}

	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size must be > 0, got %dx%d", c.Display.Width, c.Display.Height)
	}

	if c.PWM.FrequencyHz <= 0 {
		c.PWM.FrequencyHz = def.PWM.FrequencyHz
	}
	if c.PWM.Address == 0 {
		c.PWM.Address = def.PWM.Address
	}
	ch := []int{c.PWM.RedChannel, c.PWM.GreenChannel, c.PWM.BlueChannel}
	for _, v := range ch {
		if v < 0 || v > 15 {
			return fmt.Errorf("pwm channels must be between 0 and 15, got %d", v)
		}
	}
	if ch[0] == ch[1] || ch[0] == ch[2] || ch[1] == ch[2] {
		return fmt.Errorf("pwm channels must be distinct, got %v", ch)
	}

	if c.ADC.XChannel > 7 || c.ADC.YChannel > 7 {
		return fmt.Errorf("adc channels must be between 0 and 7, got %d/%d", c.ADC.XChannel, c.ADC.YChannel)
	}
	if c.ADC.SPISpeedHz <= 0 {
		c.ADC.SPISpeedHz = def.ADC.SPISpeedHz
	}

	if c.GPIOChip == "" {
		c.GPIOChip = def.GPIOChip
	}

	if ts := &c.TiltStepper; ts.Enabled() {
		if ts.DirPin <= 0 {
			return fmt.Errorf("tilt_stepper.dir_pin is required when step_pin is set")
		}
		if ts.StepsPerRev <= 0 {
			return fmt.Errorf("tilt_stepper.steps_per_rev must be > 0, got %d", ts.StepsPerRev)
		}
		if ts.Microstepping <= 0 {
			ts.Microstepping = 1
		}
		if ts.StepDelayMs <= 0 {
			ts.StepDelayMs = 1
		}
	}
	return nil
}

// LoopInterval returns the pause between two loop iterations.
func (c *Config) LoopInterval() time.Duration {
	return time.Duration(c.Defaults.LoopIntervalMs) * time.Millisecond
}

// StepDelay returns the half-cycle of the tilt motor STEP pulse.
func (c *Config) StepDelay() time.Duration {
	return time.Duration(c.TiltStepper.StepDelayMs) * time.Millisecond
}

// Debounce returns the shared button debounce window.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Defaults.DebounceMs) * time.Millisecond
}

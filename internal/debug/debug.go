package debug

import (
	"io"
	"log"
	"os"
)

// Debug levels
const (
	LevelOff     = 0 // No output
	LevelInfo    = 1 // Important info (startup, configuration, hardware init)
	LevelLive    = 2 // Live info (screen changes, accepted button events, pump runs)
	LevelVerbose = 3 // Verbose (rendered frames, samples, conversions)
	LevelTrace   = 4 // Trace (GPIO, PWM, dropped edges)
)

var (
	level  int
	logger *log.Logger
	output io.Writer = os.Stdout
)

// Init initializes the debug system with a level (0-4).
// 0 = no output
// 1 = important info (startup, hardware)
// 2 = live info (navigation, buttons, pump)
// 3 = verbose (frames, samples)
// 4 = trace (pins and duty cycles)
func Init(debugLevel int) {
	level = debugLevel
	logger = nil
	if level > LevelOff {
		logger = log.New(output, "[irrigo] ", log.LstdFlags|log.Lmicroseconds)
	}
}

// SetOutput redirects debug output. Call before or after Init.
func SetOutput(w io.Writer) {
	output = w
	if logger != nil {
		logger.SetOutput(w)
	}
}

// Level returns the current debug level.
func Level() int {
	return level
}

// IsEnabled returns true if debug level is >= the requested level.
func IsEnabled(minLevel int) bool {
	return level >= minLevel
}

func printf(minLevel int, tag, format string, args ...interface{}) {
	if level >= minLevel && logger != nil {
		logger.Printf(tag+" "+format, args...)
	}
}

// --- Level 1 functions (Info) ---

// Info prints a level 1 message (important info).
func Info(format string, args ...interface{}) {
	printf(LevelInfo, "[INFO]", format, args...)
}

// Value prints a named value in formatted form (level 1).
func Value(name string, value interface{}) {
	printf(LevelInfo, "[INFO]", "  %s = %v", name, value)
}

// Error prints a debug error (level 1+).
func Error(err error) {
	printf(LevelInfo, "[ERROR]", "%v", err)
}

// --- Level 2 functions (Live) ---

// Live prints a level 2 message (live info).
func Live(format string, args ...interface{}) {
	printf(LevelLive, "[LIVE]", format, args...)
}

// Screen prints a menu navigation step (level 2).
func Screen(from, to int) {
	printf(LevelLive, "[LIVE]", "Menu: screen %d -> %d", from, to)
}

// Edge prints an accepted input edge (level 2).
func Edge(source string, atMicros int64) {
	printf(LevelLive, "[LIVE]", "Edge: %s accepted at %dus", source, atMicros)
}

// Pump prints a pump state change (level 2).
func Pump(active, armed bool, level uint16) {
	printf(LevelLive, "[LIVE]", "Pump: active=%v armed=%v level=%d", active, armed, level)
}

// Tilt prints a tilt angle change (level 2).
func Tilt(angle uint, source string) {
	printf(LevelLive, "[LIVE]", "Tilt: %d deg (%s)", angle, source)
}

// --- Level 3 functions (Verbose) ---

// Verbose prints a level 3 message (verbose).
func Verbose(format string, args ...interface{}) {
	printf(LevelVerbose, "[VERBOSE]", format, args...)
}

// PrintStruct prints a struct in formatted form (level 3).
func PrintStruct(name string, v interface{}) {
	printf(LevelVerbose, "[VERBOSE]", "%s: %+v", name, v)
}

// Section prints a section separator (level 3).
func Section(name string) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		logger.Printf("  %s", name)
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	}
}

// Step prints a numbered step (level 3).
func Step(num int, description string) {
	printf(LevelVerbose, "[VERBOSE]", "Step %d: %s", num, description)
}

// --- Level 4 functions (Trace) ---

// Trace prints a level 4 message (trace).
func Trace(format string, args ...interface{}) {
	printf(LevelTrace, "[TRACE]", format, args...)
}

// GPIO prints a GPIO operation (level 4).
func GPIO(operation string, pin int, value interface{}) {
	printf(LevelTrace, "[GPIO]", "%s pin=%d value=%v", operation, pin, value)
}

// PWM prints a duty cycle write (level 4).
func PWM(channel int, level uint16) {
	printf(LevelTrace, "[PWM]", "channel=%d level=%d", channel, level)
}

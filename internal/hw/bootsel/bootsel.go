// Package bootsel reboots the controller into its programming mode. On the
// RP2040 that is the USB mass-storage bootloader; on a host it means
// releasing the hardware and exiting with ExitCode so the supervisor can
// start the flashing tool instead of restarting the controller.
package bootsel

import (
	"os"
	"sync"

	"github.com/cjeanneret/irrigo/internal/debug"
)

// ExitCode is the process status that signals "enter programming mode".
const ExitCode = 3

// Resetter enters programming mode. It does not return on real hardware.
type Resetter interface {
	EnterProgrammingMode()
}

// Func adapts a plain function to Resetter.
type Func func()

func (f Func) EnterProgrammingMode() { f() }

// Exit is the host Resetter: it runs the release hooks in reverse order of
// registration, then terminates the process with ExitCode.
type Exit struct {
	mu    sync.Mutex
	hooks []func() error
	exit  func(code int)
}

// NewExit returns a Resetter that calls os.Exit.
func NewExit() *Exit {
	return &Exit{exit: os.Exit}
}

// OnReset registers a hook run before exiting, typically a hardware Close.
func (e *Exit) OnReset(hook func() error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hooks = append(e.hooks, hook)
}

func (e *Exit) EnterProgrammingMode() {
	debug.Info("Entering programming mode (exit %d)", ExitCode)

	e.mu.Lock()
	hooks := e.hooks
	e.hooks = nil
	e.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](); err != nil {
			debug.Error(err)
		}
	}
	e.exit(ExitCode)
}

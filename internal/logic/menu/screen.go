// Package menu holds the six-screen menu: navigation driven by the
// secondary joystick axis and the pure rendering of each screen.
package menu

import "fmt"

// Screen identifies the active menu view. Valid values are 0..Count-1.
type Screen int

const (
	ScreenStatus   Screen = iota // battery level and tank state
	ScreenFlow                   // flow sensor and total consumption
	ScreenPump                   // manual pump toggle
	ScreenSchedule               // scheduled pump run duration
	ScreenTracking               // auto-tracking toggle and current angle
	ScreenTilt                   // manual tilt entry

	// Count is the number of screens.
	Count = 6
)

var screenNames = [Count]string{
	"status", "flow", "pump", "schedule", "tracking", "tilt",
}

func (s Screen) String() string {
	if s.Valid() {
		return screenNames[s]
	}
	return fmt.Sprintf("screen(%d)", int(s))
}

// Valid reports whether s is one of the six screens.
func (s Screen) Valid() bool {
	return s >= 0 && s < Count
}

// Wrap folds any integer into [0,Count) cyclically.
func Wrap(n int) Screen {
	n %= Count
	if n < 0 {
		n += Count
	}
	return Screen(n)
}

// NavThresholds are the dead-zone bounds of the navigation axis. Samples
// above High advance, samples below Low go back, anything in between holds.
type NavThresholds struct {
	Low  uint16
	High uint16
}

// DefaultNav matches a centered joystick resting around 2000.
var DefaultNav = NavThresholds{Low: 1800, High: 3000}

// Navigate applies one navigation step with the default thresholds.
func Navigate(cur Screen, axisY uint16) Screen {
	return DefaultNav.Navigate(cur, axisY)
}

// Navigate applies one navigation step from a secondary-axis sample.
func (n NavThresholds) Navigate(cur Screen, axisY uint16) Screen {
	step := 0
	switch {
	case axisY > n.High:
		step = 1
	case axisY < n.Low:
		step = -1
	}
	return Wrap(int(cur) + step)
}

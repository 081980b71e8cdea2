//go:build !linux || baremetal

package input

import "errors"

// Pins maps each edge source to a GPIO line offset.
type Pins map[Source]int

// Lines is not available on non-Linux platforms.
type Lines struct{}

// WatchLines returns an error on non-Linux platforms.
func WatchLines(chip string, pins Pins, q *Queue) (*Lines, error) {
	return nil, errors.New("input: gpio lines not supported on this platform (requires Linux)")
}

// MonotonicClock falls back to the process clock.
func MonotonicClock() Clock {
	return SinceStart()
}

// Close is a no-op on non-Linux platforms.
func (l *Lines) Close() error {
	return nil
}

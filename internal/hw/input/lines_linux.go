//go:build linux && !baremetal

package input

import (
	"fmt"
	"time"

	"github.com/cjeanneret/irrigo/internal/debug"
	"github.com/warthog618/go-gpiocdev"
)

// Pins maps each edge source to a GPIO line offset.
type Pins map[Source]int

// Lines watches the button lines for falling edges through the Linux GPIO
// character device. The kernel timestamps each edge on the monotonic
// clock, which is used as the edge time.
type Lines struct {
	lines []*gpiocdev.Line
}

// WatchLines requests every pin as a pulled-up input with falling-edge
// detection. Edges are pushed onto q from gpiocdev's event goroutine.
func WatchLines(chip string, pins Pins, q *Queue) (*Lines, error) {
	l := &Lines{}
	for src, offset := range pins {
		debug.Info("Watching %s button on %s line %d", src, chip, offset)

		handler := func(evt gpiocdev.LineEvent) {
			if evt.Type != gpiocdev.LineEventFallingEdge {
				return
			}
			q.Push(Edge{Source: src, At: evt.Timestamp})
		}
		line, err := gpiocdev.RequestLine(chip, offset,
			gpiocdev.AsInput,
			gpiocdev.WithPullUp,
			gpiocdev.WithFallingEdge,
			gpiocdev.WithEventHandler(handler),
		)
		if err != nil {
			l.Close()
			return nil, fmt.Errorf("request %s line %d: %w", src, offset, err)
		}
		l.lines = append(l.lines, line)
	}
	return l, nil
}

// MonotonicClock reads the same clock the kernel uses for line event
// timestamps, so loop-side times are comparable with edge times.
func MonotonicClock() Clock {
	return func() time.Duration {
		return monotonicNow()
	}
}

// Close releases every requested line.
func (l *Lines) Close() error {
	var errs []error
	for _, line := range l.lines {
		if err := line.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.lines = nil
	if len(errs) > 0 {
		return fmt.Errorf("close lines: %v", errs)
	}
	return nil
}

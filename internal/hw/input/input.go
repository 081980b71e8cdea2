// Package input turns button presses into timestamped edge events. Edge
// producers run in interrupt-like contexts (kernel event goroutines, pin
// interrupts) and only enqueue; the controller loop drains the queue.
package input

import (
	"sync/atomic"
	"time"
)

// Source identifies which physical input produced an edge.
type Source int

const (
	Confirm    Source = iota // button A: run the action of the active screen
	Reset                    // button B: reboot into programming mode
	SampleAxis               // joystick button: sample the primary axis
)

func (s Source) String() string {
	switch s {
	case Confirm:
		return "confirm"
	case Reset:
		return "reset"
	case SampleAxis:
		return "sample-axis"
	}
	return "unknown"
}

// Edge is a falling edge observed at At, measured on the monotonic clock
// since boot.
type Edge struct {
	Source Source
	At     time.Duration
}

// DefaultQueueSize bounds the number of edges waiting for the loop.
const DefaultQueueSize = 8

// Queue is a bounded edge buffer. Push never blocks; edges arriving while
// the queue is full are dropped.
type Queue struct {
	ch      chan Edge
	dropped atomic.Uint64
}

// NewQueue returns a queue holding up to size edges.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Edge, size)}
}

// Push enqueues e and reports whether it fit. Safe to call from any
// goroutine or interrupt handler: it neither allocates nor logs. Drops are
// only counted; the consumer reports them.
func (q *Queue) Push(e Edge) bool {
	select {
	case q.ch <- e:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Edges is the receive side consumed by the controller loop.
func (q *Queue) Edges() <-chan Edge {
	return q.ch
}

// Dropped returns how many edges were discarded because the queue was full.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

// Clock returns the monotonic time since boot.
type Clock func() time.Duration

// SinceStart returns a Clock measuring from now.
func SinceStart() Clock {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

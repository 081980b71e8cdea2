// Package motion keeps the panel tilt axis in line with the tracked angle.
package motion

import (
	"context"
	"sync"

	"github.com/cjeanneret/irrigo/internal/debug"
)

// Axis is a positioner that moves to an absolute angle.
type Axis interface {
	MoveToAngle(ctx context.Context, angle uint) error
}

// Follower moves an Axis to the latest requested angle in its own
// goroutine, so a slow move never stalls the control loop. A request made
// while a move is under way replaces any request still pending.
type Follower struct {
	axis   Axis
	target chan uint

	mu      sync.Mutex
	reached uint
	moves   int
}

// NewFollower returns a follower for axis. Call Run to start it.
func NewFollower(axis Axis) *Follower {
	return &Follower{axis: axis, target: make(chan uint, 1)}
}

// Track requests a move to angle. It never blocks.
func (f *Follower) Track(angle uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	select {
	case <-f.target:
	default:
	}
	f.target <- angle
}

// Run performs the requested moves until ctx is cancelled.
func (f *Follower) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case angle := <-f.target:
			if err := f.axis.MoveToAngle(ctx, angle); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				debug.Error(err)
				continue
			}
			f.mu.Lock()
			f.reached = angle
			f.moves++
			f.mu.Unlock()
			debug.Tilt(angle, "panel")
		}
	}
}

// Reached returns the last angle the axis arrived at and how many moves
// completed.
func (f *Follower) Reached() (angle uint, moves int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reached, f.moves
}

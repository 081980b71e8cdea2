// Package debounce implements the refractory window shared by every input
// edge source. An accepted edge on any source closes the window for all of
// them; the window reopens purely by elapsed time, checked on the next edge.
package debounce

import "time"

// DefaultWindow is the refractory period after an accepted edge.
const DefaultWindow = 200 * time.Millisecond

// Gate accepts an edge only when more than Window has elapsed since the last
// accepted one. The zero value uses DefaultWindow and treats boot (t=0) as
// the last accepted edge. Gate is not safe for concurrent use; the
// controller loop owns it.
type Gate struct {
	Window time.Duration
	last   time.Duration
}

// NewGate returns a gate with the given window (DefaultWindow if <= 0).
func NewGate(window time.Duration) *Gate {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Gate{Window: window}
}

// Accept reports whether an edge observed at the given time since boot
// passes the gate. Accepted edges restart the window.
func (g *Gate) Accept(at time.Duration) bool {
	window := g.Window
	if window <= 0 {
		window = DefaultWindow
	}
	if at-g.last <= window {
		return false
	}
	g.last = at
	return true
}

// Last returns the timestamp of the last accepted edge.
func (g *Gate) Last() time.Duration {
	return g.last
}

package controller

import (
	"sync"

	"github.com/cjeanneret/irrigo/internal/logic/menu"
)

// State is the single owner of the readings and actuator flags shared by
// the loop, the edge dispatcher and the pump timer callback. Every access
// goes through a method holding the lock.
type State struct {
	mu sync.Mutex

	screen menu.Screen

	battery     uint
	tankFull    bool
	light       uint
	angle       uint
	consumption uint64
	duration    uint

	pumpActive   bool
	pumpLevel    uint16
	motorLevel   uint16
	autoTracking bool
	timerArmed   bool
}

// NewState returns the boot state: pump off, auto-tracking on, screen 0.
func NewState() *State {
	return &State{autoTracking: true}
}

// View returns a consistent snapshot for rendering. Sample is left zero.
func (s *State) View() menu.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return menu.View{
		Screen:       s.screen,
		Battery:      s.battery,
		TankFull:     s.tankFull,
		Light:        s.light,
		Angle:        s.angle,
		Consumption:  s.consumption,
		Duration:     s.duration,
		PumpActive:   s.pumpActive,
		PumpLevel:    s.pumpLevel,
		MotorLevel:   s.motorLevel,
		AutoTracking: s.autoTracking,
		TimerArmed:   s.timerArmed,
	}
}

func (s *State) Screen() menu.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// SetScreen stores the active screen, wrapping out-of-range values.
func (s *State) SetScreen(scr menu.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = menu.Wrap(int(scr))
}

func (s *State) SetTankFull(full bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tankFull = full
}

func (s *State) SetBattery(pct uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.battery = pct
}

func (s *State) SetLight(light uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.light = light
}

func (s *State) Light() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.light
}

// SetAngle stores the tilt angle and reports whether it changed.
func (s *State) SetAngle(angle uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.angle != angle
	s.angle = angle
	return changed
}

func (s *State) Angle() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.angle
}

// AddConsumption accumulates water use and returns the new total.
func (s *State) AddConsumption(v uint) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consumption += uint64(v)
	return s.consumption
}

func (s *State) SetDuration(seconds uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duration = seconds
}

func (s *State) Duration() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

func (s *State) SetPumpLevel(level uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pumpLevel = level
}

func (s *State) PumpLevel() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pumpLevel
}

func (s *State) SetMotorLevel(level uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.motorLevel = level
}

// TogglePump flips the pump unless a scheduled run is armed. It returns
// the resulting pump state and whether the toggle happened.
func (s *State) TogglePump() (active, toggled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timerArmed {
		return s.pumpActive, false
	}
	s.pumpActive = !s.pumpActive
	return s.pumpActive, true
}

// ToggleAutoTracking flips auto-tracking and returns the new value.
func (s *State) ToggleAutoTracking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoTracking = !s.autoTracking
	return s.autoTracking
}

func (s *State) AutoTracking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoTracking
}

// Arm marks a scheduled run as pending and forces the pump on. It fails
// when a run is already armed.
func (s *State) Arm() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timerArmed {
		return false
	}
	s.timerArmed = true
	s.pumpActive = true
	return true
}

// Disarm ends a scheduled run: pump off, timer cleared.
func (s *State) Disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pumpActive = false
	s.timerArmed = false
}

// Pump returns the pump-active and timer-armed flags together.
func (s *State) Pump() (active, armed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pumpActive, s.timerArmed
}

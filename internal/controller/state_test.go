package controller

import (
	"sync"
	"testing"

	"github.com/cjeanneret/irrigo/internal/logic/menu"
)

func TestState_SetScreenWraps(t *testing.T) {
	s := NewState()
	s.SetScreen(menu.Screen(6))
	if got := s.Screen(); got != menu.ScreenStatus {
		t.Errorf("screen 6 wrapped to %d, want 0", got)
	}
	s.SetScreen(menu.Screen(-1))
	if got := s.Screen(); got != menu.ScreenTilt {
		t.Errorf("screen -1 wrapped to %d, want 5", got)
	}
}

func TestState_ArmDisarm(t *testing.T) {
	s := NewState()
	if !s.Arm() {
		t.Fatal("first Arm should succeed")
	}
	if s.Arm() {
		t.Error("second Arm should fail while armed")
	}
	if _, toggled := s.TogglePump(); toggled {
		t.Error("TogglePump should be blocked while armed")
	}
	s.Disarm()
	active, armed := s.Pump()
	if active || armed {
		t.Errorf("after Disarm: active=%v armed=%v", active, armed)
	}
	if active, toggled := s.TogglePump(); !toggled || !active {
		t.Error("TogglePump should work again after Disarm")
	}
}

func TestState_SetAngleReportsChange(t *testing.T) {
	s := NewState()
	if !s.SetAngle(90) {
		t.Error("0 -> 90 should report a change")
	}
	if s.SetAngle(90) {
		t.Error("90 -> 90 should not report a change")
	}
}

func TestState_ConcurrentConsumption(t *testing.T) {
	s := NewState()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.AddConsumption(1)
			}
		}()
	}
	wg.Wait()
	if got := s.View().Consumption; got != 800 {
		t.Errorf("consumption = %d, want 800", got)
	}
}

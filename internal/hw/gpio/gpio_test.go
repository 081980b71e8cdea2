package gpio

import "testing"

func TestMockDriver_PullUpReadsHigh(t *testing.T) {
	m := NewMockDriver()
	if err := m.SetupPin(17, InputPullUp); err != nil {
		t.Fatalf("SetupPin: %v", err)
	}
	level, err := m.ReadPin(17)
	if err != nil {
		t.Fatalf("ReadPin: %v", err)
	}
	if level != High {
		t.Error("pulled-up input should read HIGH when nothing drives it")
	}
}

func TestMockDriver_SetLevel(t *testing.T) {
	m := NewMockDriver()
	_ = m.SetupPin(17, InputPullUp)
	m.SetLevel(17, Low)
	if level, _ := m.ReadPin(17); level != Low {
		t.Error("ReadPin should return the forced level")
	}
	// Setting up again must not override a forced level.
	_ = m.SetupPin(17, InputPullUp)
	if level, _ := m.ReadPin(17); level != Low {
		t.Error("re-setup should keep the forced level")
	}
}

func TestMockDriver_WriteThenRead(t *testing.T) {
	m := NewMockDriver()
	_ = m.SetupPin(4, Output)
	_ = m.WritePin(4, High)
	if level, _ := m.ReadPin(4); level != High {
		t.Error("written level should be readable")
	}
	mode, ok := m.Mode(4)
	if !ok || mode != Output {
		t.Errorf("Mode(4) = %v/%v, want output", mode, ok)
	}
}

func TestMockDriver_ZeroValue(t *testing.T) {
	var m MockDriver
	if level, err := m.ReadPin(1); err != nil || level != Low {
		t.Errorf("zero value ReadPin = %v/%v", level, err)
	}
}

func TestNewDriver_Mock(t *testing.T) {
	d, err := NewDriver(true)
	if err != nil {
		t.Fatalf("NewDriver(mock): %v", err)
	}
	if _, ok := d.(*MockDriver); !ok {
		t.Errorf("NewDriver(true) returned %T, want *MockDriver", d)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestPinMode_String(t *testing.T) {
	if InputPullUp.String() != "input-pullup" || PinMode(9).String() != "unknown" {
		t.Error("unexpected pin mode names")
	}
}

package analog

import "testing"

func TestMockSampler_Set(t *testing.T) {
	m := NewMockSampler(2000)
	if got := m.Read(AxisX); got != 2000 {
		t.Errorf("rest reading = %d, want 2000", got)
	}
	m.Set(AxisY, 3500)
	if got := m.Read(AxisY); got != 3500 {
		t.Errorf("AxisY = %d, want 3500", got)
	}
	if got := m.Read(AxisX); got != 2000 {
		t.Errorf("AxisX should be unaffected, got %d", got)
	}
}

func TestMockSampler_ScriptRepeatsLast(t *testing.T) {
	m := NewMockSampler(0)
	m.Script(AxisY, 3500, 1000, 2000)
	want := []uint16{3500, 1000, 2000, 2000, 2000}
	for i, w := range want {
		if got := m.Read(AxisY); got != w {
			t.Errorf("read %d = %d, want %d", i, got, w)
		}
	}
	if m.Reads(AxisY) != len(want) {
		t.Errorf("Reads = %d, want %d", m.Reads(AxisY), len(want))
	}
}

func TestMockSampler_Clamps(t *testing.T) {
	m := NewMockSampler(0)
	m.Set(AxisX, 9000)
	if got := m.Read(AxisX); got != MaxSample {
		t.Errorf("out-of-range reading = %d, want %d", got, MaxSample)
	}
}

func TestMockSampler_ZeroValue(t *testing.T) {
	var m MockSampler
	if got := m.Read(AxisX); got != 0 {
		t.Errorf("zero value read = %d, want 0", got)
	}
	m.Set(AxisX, 5)
	if got := m.Read(AxisX); got != 5 {
		t.Errorf("read after Set = %d, want 5", got)
	}
}

func TestChannel_String(t *testing.T) {
	if AxisX.String() != "x" || AxisY.String() != "y" || Channel(7).String() != "?" {
		t.Error("unexpected channel names")
	}
}

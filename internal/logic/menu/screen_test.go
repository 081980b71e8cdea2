package menu

import "testing"

func TestNavigate_Wraps(t *testing.T) {
	if got := Navigate(ScreenTilt, 3500); got != ScreenStatus {
		t.Errorf("Navigate(5, 3500) = %d, want 0", got)
	}
	if got := Navigate(ScreenStatus, 1500); got != ScreenTilt {
		t.Errorf("Navigate(0, 1500) = %d, want 5", got)
	}
}

func TestNavigate_DeadZone(t *testing.T) {
	for _, s := range []uint16{1800, 2000, 2500, 3000} {
		for cur := Screen(0); cur < Count; cur++ {
			if got := Navigate(cur, s); got != cur {
				t.Errorf("Navigate(%d, %d) = %d, want hold", cur, s, got)
			}
		}
	}
}

func TestNavigate_Steps(t *testing.T) {
	cases := []struct {
		name   string
		cur    Screen
		sample uint16
		want   Screen
	}{
		{"advance", ScreenFlow, 3001, ScreenPump},
		{"back", ScreenPump, 1799, ScreenFlow},
		{"max_sample", ScreenSchedule, 4095, ScreenTracking},
		{"zero_sample", ScreenSchedule, 0, ScreenPump},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Navigate(tc.cur, tc.sample); got != tc.want {
				t.Errorf("Navigate(%d, %d) = %d, want %d", tc.cur, tc.sample, got, tc.want)
			}
		})
	}
}

func TestNavigate_AlwaysValid(t *testing.T) {
	for cur := Screen(0); cur < Count; cur++ {
		for s := 0; s <= 4095; s += 7 {
			if got := Navigate(cur, uint16(s)); !got.Valid() {
				t.Fatalf("Navigate(%d, %d) = %d, out of range", cur, s, got)
			}
		}
	}
}

func TestNavThresholds_Custom(t *testing.T) {
	n := NavThresholds{Low: 1000, High: 3500}
	if got := n.Navigate(ScreenStatus, 3200); got != ScreenStatus {
		t.Errorf("3200 is inside the custom dead zone, got %d", got)
	}
	if got := n.Navigate(ScreenStatus, 900); got != ScreenTilt {
		t.Errorf("900 should go back, got %d", got)
	}
}

func TestWrap(t *testing.T) {
	cases := map[int]Screen{-1: 5, -6: 0, -7: 5, 6: 0, 13: 1, 3: 3}
	for in, want := range cases {
		if got := Wrap(in); got != want {
			t.Errorf("Wrap(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestScreen_String(t *testing.T) {
	if ScreenPump.String() != "pump" {
		t.Errorf("ScreenPump.String() = %q", ScreenPump.String())
	}
	if Screen(9).String() != "screen(9)" {
		t.Errorf("invalid screen String() = %q", Screen(9).String())
	}
}

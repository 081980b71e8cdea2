package tracking

import "testing"

func TestAngle_Table(t *testing.T) {
	cases := []struct {
		light uint
		want  uint
	}{
		{240, 180},
		{210, 180},
		{201, 180},
		{200, 30}, // gap: > 200 is required for the top bracket
		{190, 30}, // gap between 180 and 201
		{181, 30},
		{180, 120},
		{150, 120},
		{145, 120},
		{144, 30}, // gap between 120 and 145
		{121, 30},
		{120, 90},
		{90, 90},
		{89, 60},
		{60, 60},
		{59, 45},
		{45, 45},
		{44, 30},
		{40, 30},
		{0, 30},
	}
	for _, tc := range cases {
		if got := Angle(tc.light); got != tc.want {
			t.Errorf("Angle(%d) = %d, want %d", tc.light, got, tc.want)
		}
	}
}

func TestAngle_OnlyTableValues(t *testing.T) {
	allowed := map[uint]bool{180: true, 120: true, 90: true, 60: true, 45: true, 30: true}
	for light := uint(0); light <= 240; light++ {
		if a := Angle(light); !allowed[a] {
			t.Fatalf("Angle(%d) = %d, not a table value", light, a)
		}
	}
}

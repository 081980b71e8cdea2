// Package scale converts raw 12-bit analog samples into the units shown on
// the menu screens. All conversions truncate toward zero.
package scale

// Max is the largest value a 12-bit sample can hold.
const Max = 4095

// Full is the divisor used by every conversion (2^12).
const Full = 4096

// Clamp12 narrows a sample to the 12-bit range.
func Clamp12(s uint16) uint16 {
	if s > Max {
		return Max
	}
	return s
}

func convert(s uint16, span uint) uint {
	return uint(Clamp12(s)) * span / Full
}

// Percent maps a sample to [0,99] (battery level, flow percentage).
func Percent(s uint16) uint {
	return convert(s, 100)
}

// Seconds maps a sample to a scheduled pump duration in [0,9] seconds.
func Seconds(s uint16) uint {
	return convert(s, 10)
}

// Angle maps a sample to a tilt angle in [0,179] degrees.
func Angle(s uint16) uint {
	return convert(s, 180)
}

// Light maps a sample to the light-sensor domain [0,239].
func Light(s uint16) uint {
	return convert(s, 240)
}

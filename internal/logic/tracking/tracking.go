// Package tracking positions the solar panel from the light-sensor reading.
package tracking

// Default is the angle used when no bracket matches.
const Default = 30

// Bracket is one row of the threshold table. A bracket matches when
// Min <= light <= Max; MaxExclusive turns the upper bound into light < Max.
type Bracket struct {
	Min, Max     uint
	MaxExclusive bool
	Angle        uint
}

func (b Bracket) matches(light uint) bool {
	if light < b.Min {
		return false
	}
	if b.MaxExclusive {
		return light < b.Max
	}
	return light <= b.Max
}

// Table is evaluated top-down, first match wins. Values between 121-144
// and 181-200 match no bracket and fall through to Default.
var Table = []Bracket{
	{Min: 201, Max: ^uint(0), Angle: 180},
	{Min: 145, Max: 180, Angle: 120},
	{Min: 90, Max: 120, Angle: 90},
	{Min: 60, Max: 90, MaxExclusive: true, Angle: 60},
	{Min: 45, Max: 60, MaxExclusive: true, Angle: 45},
}

// Angle returns the tilt angle for a light-domain value in [0,240].
func Angle(light uint) uint {
	for _, b := range Table {
		if b.matches(light) {
			return b.Angle
		}
	}
	return Default
}

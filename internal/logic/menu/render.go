package menu

import (
	"strconv"

	"github.com/cjeanneret/irrigo/internal/hw/pwm"
	"github.com/cjeanneret/irrigo/internal/logic/scale"
)

// View is the snapshot of shared state a frame is rendered from.
type View struct {
	Screen Screen

	Battery     uint   // [0,100]
	TankFull    bool   // level sensor, refreshed each tick
	Light       uint   // light-domain value [0,240]
	Angle       uint   // current tilt angle [0,180]
	Consumption uint64 // cumulative water consumption
	Duration    uint   // scheduled run duration in seconds [0,10]

	PumpActive   bool
	PumpLevel    uint16 // [0,4095]
	MotorLevel   uint16 // [0,4095]
	AutoTracking bool
	TimerArmed   bool

	// Sample is the primary-axis reading taken this tick. The flow screen
	// shows it as the flow sensor, the tilt screen as the new angle preview.
	Sample uint16
}

// Line is a piece of text drawn at a pixel position.
type Line struct {
	Text string
	X, Y int
}

// Indicator is the composite LED output a frame asks for.
type Indicator struct {
	Color pwm.Color
	Level uint16
}

// Frame is the result of rendering one screen. Indicator is nil when the
// screen leaves the composite output untouched.
type Frame struct {
	Screen    Screen
	Lines     []Line
	Indicator *Indicator
}

func (f *Frame) text(s string, x, y int) {
	f.Lines = append(f.Lines, Line{Text: s, X: x, Y: y})
}

func (f *Frame) indicate(c pwm.Color, level uint16) {
	f.Indicator = &Indicator{Color: c, Level: level}
}

func pumpOutput(v View) uint16 {
	if v.PumpActive {
		return v.PumpLevel
	}
	return 0
}

// Render produces the frame for the active screen. It never touches
// hardware; the caller applies Lines to the display and Indicator to the
// composite LED.
func Render(v View) Frame {
	f := Frame{Screen: v.Screen}

	switch v.Screen {
	case ScreenStatus:
		f.text("Bateria", 10, 8)
		f.text(strconv.FormatUint(uint64(v.Battery), 10), 10, 16)
		f.text("Tanque", 10, 24)
		if v.TankFull {
			f.text("Nivel maximo", 20, 32)
		} else {
			f.text("nivel baixo", 20, 32)
		}

	case ScreenFlow:
		if v.PumpActive {
			f.text("sensor fluxo", 10, 8)
			f.text(strconv.FormatUint(uint64(v.Sample), 10), 10, 16)
			f.text("Consumo total", 10, 24)
			f.text(strconv.FormatUint(v.Consumption, 10), 10, 32)
		} else {
			f.text("Consumo total", 10, 8)
			f.text(strconv.FormatUint(v.Consumption, 10), 10, 16)
		}
		f.indicate(pwm.Blue, pumpOutput(v))

	case ScreenPump:
		if v.PumpActive {
			f.text("Desativar bomba", 10, 8)
		} else {
			f.text("Ativar bomba", 10, 8)
		}
		f.text("BOTAO A", 10, 16)
		f.indicate(pwm.Blue, pumpOutput(v))

	case ScreenSchedule:
		f.text("Programar bomba", 5, 8)
		f.text("Para", 10, 16)
		f.text(strconv.FormatUint(uint64(v.Duration), 10), 10, 24)

	case ScreenTracking:
		if v.AutoTracking {
			f.text("Desativar", 10, 8)
			f.text("Ajuste", 10, 16)
		} else {
			f.text("Ativar", 10, 8)
			f.text("Ajuste", 8, 16)
		}
		f.text("BOTAO A", 10, 24)
		f.text("Angulo atual", 10, 32)
		f.text(strconv.FormatUint(uint64(v.Angle), 10), 10, 40)
		f.indicate(pwm.Red, v.MotorLevel)

	case ScreenTilt:
		if v.AutoTracking {
			f.text("Ajuste manual", 10, 8)
			f.text("BLOQUEADO", 10, 16)
		} else {
			f.text("Novo angulo", 10, 8)
			f.text(strconv.FormatUint(uint64(scale.Angle(v.Sample)), 10), 10, 16)
		}
		f.indicate(pwm.Red, v.MotorLevel)
	}

	return f
}

// Texts returns the text of every line, top to bottom.
func (f Frame) Texts() []string {
	out := make([]string, len(f.Lines))
	for i, l := range f.Lines {
		out[i] = l.Text
	}
	return out
}

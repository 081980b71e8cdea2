package menu

import (
	"reflect"
	"testing"

	"github.com/cjeanneret/irrigo/internal/hw/pwm"
)

func TestRender_Status(t *testing.T) {
	f := Render(View{Screen: ScreenStatus, Battery: 42, TankFull: true})
	want := []string{"Bateria", "42", "Tanque", "Nivel maximo"}
	if !reflect.DeepEqual(f.Texts(), want) {
		t.Errorf("texts = %v, want %v", f.Texts(), want)
	}
	if f.Indicator != nil {
		t.Errorf("status screen should not drive the indicator, got %+v", f.Indicator)
	}

	f = Render(View{Screen: ScreenStatus})
	if got := f.Texts()[3]; got != "nivel baixo" {
		t.Errorf("empty tank text = %q", got)
	}
}

func TestRender_FlowPumpActive(t *testing.T) {
	f := Render(View{
		Screen:      ScreenFlow,
		PumpActive:  true,
		PumpLevel:   3000,
		Sample:      2048,
		Consumption: 150,
	})
	want := []string{"sensor fluxo", "2048", "Consumo total", "150"}
	if !reflect.DeepEqual(f.Texts(), want) {
		t.Errorf("texts = %v, want %v", f.Texts(), want)
	}
	if f.Indicator == nil || f.Indicator.Color != pwm.Blue || f.Indicator.Level != 3000 {
		t.Errorf("indicator = %+v, want blue at 3000", f.Indicator)
	}
	// Lines must not overlap each other.
	seen := map[[2]int]bool{}
	for _, l := range f.Lines {
		pos := [2]int{l.X, l.Y}
		if seen[pos] {
			t.Errorf("two lines drawn at %v", pos)
		}
		seen[pos] = true
	}
}

func TestRender_FlowPumpOff(t *testing.T) {
	f := Render(View{Screen: ScreenFlow, PumpLevel: 3000, Consumption: 7})
	want := []string{"Consumo total", "7"}
	if !reflect.DeepEqual(f.Texts(), want) {
		t.Errorf("texts = %v, want %v", f.Texts(), want)
	}
	if f.Indicator == nil || f.Indicator.Color != pwm.Blue || f.Indicator.Level != 0 {
		t.Errorf("indicator = %+v, want blue off", f.Indicator)
	}
}

func TestRender_Pump(t *testing.T) {
	f := Render(View{Screen: ScreenPump, PumpActive: true, PumpLevel: 1000})
	if f.Texts()[0] != "Desativar bomba" {
		t.Errorf("active pump prompt = %q", f.Texts()[0])
	}
	if f.Indicator.Level != 1000 {
		t.Errorf("indicator level = %d, want 1000", f.Indicator.Level)
	}

	f = Render(View{Screen: ScreenPump, PumpLevel: 1000})
	if f.Texts()[0] != "Ativar bomba" {
		t.Errorf("idle pump prompt = %q", f.Texts()[0])
	}
	if f.Indicator.Level != 0 {
		t.Errorf("idle pump indicator level = %d, want 0", f.Indicator.Level)
	}
}

func TestRender_Schedule(t *testing.T) {
	f := Render(View{Screen: ScreenSchedule, Duration: 7})
	want := []string{"Programar bomba", "Para", "7"}
	if !reflect.DeepEqual(f.Texts(), want) {
		t.Errorf("texts = %v, want %v", f.Texts(), want)
	}
	if f.Indicator != nil {
		t.Error("schedule screen should not drive the indicator")
	}
}

func TestRender_Tracking(t *testing.T) {
	f := Render(View{Screen: ScreenTracking, AutoTracking: true, Angle: 120, MotorLevel: 2222})
	want := []string{"Desativar", "Ajuste", "BOTAO A", "Angulo atual", "120"}
	if !reflect.DeepEqual(f.Texts(), want) {
		t.Errorf("texts = %v, want %v", f.Texts(), want)
	}
	if f.Indicator == nil || f.Indicator.Color != pwm.Red || f.Indicator.Level != 2222 {
		t.Errorf("indicator = %+v, want red at 2222", f.Indicator)
	}

	f = Render(View{Screen: ScreenTracking, Angle: 45})
	if f.Texts()[0] != "Ativar" {
		t.Errorf("manual mode prompt = %q", f.Texts()[0])
	}
}

func TestRender_Tilt(t *testing.T) {
	f := Render(View{Screen: ScreenTilt, AutoTracking: true, Sample: 4095, MotorLevel: 10})
	want := []string{"Ajuste manual", "BLOQUEADO"}
	if !reflect.DeepEqual(f.Texts(), want) {
		t.Errorf("texts = %v, want %v", f.Texts(), want)
	}
	if f.Indicator == nil || f.Indicator.Color != pwm.Red || f.Indicator.Level != 10 {
		t.Errorf("indicator = %+v, want red at 10", f.Indicator)
	}

	f = Render(View{Screen: ScreenTilt, Sample: 2048})
	want = []string{"Novo angulo", "90"}
	if !reflect.DeepEqual(f.Texts(), want) {
		t.Errorf("texts = %v, want %v", f.Texts(), want)
	}
}

func TestRender_IsPure(t *testing.T) {
	v := View{Screen: ScreenFlow, PumpActive: true, Sample: 1000, Consumption: 3}
	a := Render(v)
	b := Render(v)
	if !reflect.DeepEqual(a, b) {
		t.Error("rendering the same view twice should give the same frame")
	}
}

package display

import (
	"reflect"
	"testing"
)

func TestMockDisplay_FlushKeepsLastFrame(t *testing.T) {
	d := NewMockDisplay()

	d.Clear()
	d.DrawText("Bateria", 10, 8)
	d.DrawText("42", 10, 16)
	if err := d.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	d.Clear()
	d.DrawText("Consumo total", 10, 8)
	// not flushed yet: last frame is unchanged
	if got := d.Lines(); !reflect.DeepEqual(got, []string{"Bateria", "42"}) {
		t.Errorf("Lines() before flush = %v", got)
	}
	_ = d.Flush()

	want := []Text{{Text: "Consumo total", X: 10, Y: 8}}
	if got := d.Frame(); !reflect.DeepEqual(got, want) {
		t.Errorf("Frame() = %+v, want %+v", got, want)
	}
	if d.Flushes() != 2 {
		t.Errorf("Flushes() = %d, want 2", d.Flushes())
	}
}

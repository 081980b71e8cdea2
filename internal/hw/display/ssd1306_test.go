//go:build !tinygo

package display

import "testing"

func TestClearPixels_DrawsBorder(t *testing.T) {
	c := NewCanvas(Width, Height)
	c.SetPixel(60, 30, On)
	ClearPixels(c)

	if c.Pixel(60, 30) {
		t.Error("interior pixel should be cleared")
	}
	corners := [][2]int{{3, 3}, {124, 3}, {3, 60}, {124, 60}}
	for _, p := range corners {
		if !c.Pixel(p[0], p[1]) {
			t.Errorf("border pixel %v should be lit", p)
		}
	}
	if c.Pixel(2, 2) || c.Pixel(125, 61) {
		t.Error("pixels outside the border should stay dark")
	}
}

func TestWriteText_LightsPixels(t *testing.T) {
	c := NewCanvas(Width, Height)
	ClearPixels(c)
	WriteText(c, "BOTAO A", 10, 16)

	lit := 0
	for y := 16; y < 26; y++ {
		for x := 10; x < 70; x++ {
			if c.Pixel(x, y) {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("text should light pixels inside its line box")
	}
}

func TestCanvas_Size(t *testing.T) {
	w, h := NewCanvas(128, 64).Size()
	if w != 128 || h != 64 {
		t.Errorf("Size() = %dx%d", w, h)
	}
}

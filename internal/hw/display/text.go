package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is the 8px font every panel uses, matching the 8px line pitch of
// the menu layouts.
var Font = &proggy.TinySZ8pt7b

// baseline converts a top-left text position to tinyfont's baseline.
const baseline = 7

var (
	On  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Off = color.RGBA{}
)

// ClearPixels blanks a pixel panel and draws the screen border.
func ClearPixels(d drivers.Displayer) {
	w, h := d.Size()
	for y := int16(0); y < h; y++ {
		for x := int16(0); x < w; x++ {
			d.SetPixel(x, y, Off)
		}
	}
	b := Border
	for x := b.X; x < b.X+b.W; x++ {
		d.SetPixel(x, b.Y, On)
		d.SetPixel(x, b.Y+b.H-1, On)
	}
	for y := b.Y; y < b.Y+b.H; y++ {
		d.SetPixel(b.X, y, On)
		d.SetPixel(b.X+b.W-1, y, On)
	}
}

// WriteText draws text with its top-left corner at (x, y).
func WriteText(d drivers.Displayer, text string, x, y int) {
	tinyfont.WriteLine(d, Font, int16(x), int16(y+baseline), text, On)
}

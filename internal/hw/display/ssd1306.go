//go:build !tinygo

package display

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cjeanneret/irrigo/internal/debug"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Canvas is a 1-bit frame buffer that tinyfont can draw on.
type Canvas struct {
	img *image1bit.VerticalLSB
}

// NewCanvas returns a blank w x h canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{img: image1bit.NewVerticalLSB(image.Rect(0, 0, w, h))}
}

func (c *Canvas) Size() (int16, int16) {
	b := c.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.img.SetBit(int(x), int(y), image1bit.Bit(col.R|col.G|col.B != 0))
}

// Display is a no-op; the owner pushes Image() to the panel.
func (c *Canvas) Display() error {
	return nil
}

// Image returns the underlying buffer.
func (c *Canvas) Image() image.Image {
	return c.img
}

// Pixel reports whether (x, y) is lit.
func (c *Canvas) Pixel(x, y int) bool {
	return bool(c.img.BitAt(x, y))
}

// SSD1306 is the status OLED on the host I2C bus, driven by periph.io.
type SSD1306 struct {
	dev    *ssd1306.Dev
	canvas *Canvas
}

// NewSSD1306 initializes a w x h panel on bus and blanks it.
func NewSSD1306(bus i2c.Bus, w, h int) (*SSD1306, error) {
	debug.Info("Initializing SSD1306 %dx%d", w, h)

	opts := ssd1306.DefaultOpts
	opts.W = w
	opts.H = h
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("open ssd1306: %w", err)
	}

	d := &SSD1306{dev: dev, canvas: NewCanvas(w, h)}
	d.Clear()
	if err := d.Flush(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *SSD1306) Clear() {
	ClearPixels(d.canvas)
}

func (d *SSD1306) DrawText(text string, x, y int) {
	WriteText(d.canvas, text, x, y)
}

func (d *SSD1306) Flush() error {
	img := d.canvas.Image()
	if err := d.dev.Draw(img.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("ssd1306 draw: %w", err)
	}
	return nil
}

// Halt blanks the panel.
func (d *SSD1306) Halt() error {
	return d.dev.Halt()
}

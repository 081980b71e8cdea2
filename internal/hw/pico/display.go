//go:build tinygo && rp2040

package pico

import (
	"machine"

	"github.com/cjeanneret/irrigo/internal/hw/display"
	"tinygo.org/x/drivers/ssd1306"
)

// OLED is the SSD1306 panel on I2C1.
type OLED struct {
	dev *ssd1306.Device
}

// NewOLED configures I2C1 at 400kHz and the panel at addr.
func NewOLED(sda, scl machine.Pin, addr uint16) (*OLED, error) {
	err := machine.I2C1.Configure(machine.I2CConfig{
		SDA:       sda,
		SCL:       scl,
		Frequency: 400 * machine.KHz,
	})
	if err != nil {
		return nil, err
	}
	dev := ssd1306.NewI2C(machine.I2C1)
	dev.Configure(ssd1306.Config{
		Width:    display.Width,
		Height:   display.Height,
		Address:  addr,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	dev.ClearDisplay()
	return &OLED{dev: dev}, nil
}

func (o *OLED) Clear() {
	display.ClearPixels(o.dev)
}

func (o *OLED) DrawText(text string, x, y int) {
	display.WriteText(o.dev, text, x, y)
}

func (o *OLED) Flush() error {
	return o.dev.Display()
}

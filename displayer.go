package sh1106

import (
	"image/color"

	"periph.io/x/devices/v3/sh1106/gfx"
	"periph.io/x/devices/v3/sh1106/image1bit"
	"tinygo.org/x/drivers"
)

// displayer exposes a Context through the TinyGo display interface.
type displayer struct {
	d   *Dev
	c   *gfx.Context
	err error
}

// Displayer returns a drivers.Displayer drawing into c, so renderers from the
// TinyGo ecosystem such as tinyfont can target the display. Its Display
// method flushes c to d.
func (d *Dev) Displayer(c *gfx.Context) drivers.Displayer {
	return &displayer{d: d, c: c}
}

func (s *displayer) Size() (x, y int16) {
	return int16(s.c.Width()), int16(s.c.Height())
}

// SetPixel has no error return, so the first failure is kept for Display.
func (s *displayer) SetPixel(x, y int16, c color.RGBA) {
	err := s.c.SetPixel(int(x), int(y), image1bit.BitModel.Convert(c).(image1bit.Bit))
	if err != nil && s.err == nil {
		s.err = err
	}
}

// Display flushes the context, or returns the first SetPixel error and
// clears it.
func (s *displayer) Display() error {
	if err := s.err; err != nil {
		s.err = nil
		return err
	}
	return s.d.Flush(s.c)
}

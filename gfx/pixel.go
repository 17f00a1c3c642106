package gfx

import "periph.io/x/devices/v3/sh1106/image1bit"

// SetPixel sets the pixel at (x, y) in the current orientation.
//
// Coordinates outside the drawable area are silently dropped; the call still
// succeeds.
func (c *Context) SetPixel(x, y int, col image1bit.Bit) error {
	rx, ry, ok := c.transform(x, y)
	if !ok {
		return nil
	}
	c.fb.SetBit(rx, ry, col)
	return nil
}

// Pixel returns the pixel at (x, y) in the current orientation. Pixels outside
// the drawable area read as Off.
func (c *Context) Pixel(x, y int) image1bit.Bit {
	rx, ry, ok := c.transform(x, y)
	if !ok {
		return image1bit.Off
	}
	return c.fb.BitAt(rx, ry)
}

// transform clips (x, y) to the drawable area and maps it to raw framebuffer
// coordinates.
func (c *Context) transform(x, y int) (rx, ry int, ok bool) {
	if x < 0 || y < 0 || x >= c.Width() || y >= c.Height() {
		return 0, 0, false
	}
	switch c.rotation {
	case Rotate90:
		return c.width - 1 - y, x, true
	case Rotate180:
		return c.width - 1 - x, c.height - 1 - y, true
	case Rotate270:
		return y, c.height - 1 - x, true
	}
	return x, y, true
}

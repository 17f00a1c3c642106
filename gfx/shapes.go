package gfx

import (
	"fmt"

	"periph.io/x/devices/v3/sh1106/image1bit"
)

// Corner masks accepted by quarterCircle.
const (
	cornerTopLeft     = 0x1
	cornerTopRight    = 0x2
	cornerBottomRight = 0x4
	cornerBottomLeft  = 0x8
)

// Half masks accepted by quarterFill.
const (
	halfRight = 0x1
	halfLeft  = 0x2
)

// DrawLine draws a line between (x0, y0) and (x1, y1) inclusive using
// Bresenham's algorithm.
func (c *Context) DrawLine(x0, y0, x1, y1 int, col image1bit.Bit) error {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := abs(y1 - y0)
	err := dx / 2
	ystep := -1
	if y0 < y1 {
		ystep = 1
	}

	for ; x0 <= x1; x0++ {
		var e error
		if steep {
			e = c.SetPixel(y0, x0, col)
		} else {
			e = c.SetPixel(x0, y0, col)
		}
		if e != nil {
			return e
		}
		err -= dy
		if err < 0 {
			y0 += ystep
			err += dx
		}
	}
	return nil
}

// DrawHLine draws a horizontal line of w pixels starting at (x, y).
func (c *Context) DrawHLine(x, y, w int, col image1bit.Bit) error {
	if w <= 0 {
		return nil
	}
	return c.DrawLine(x, y, x+w-1, y, col)
}

// DrawVLine draws a vertical line of h pixels starting at (x, y).
func (c *Context) DrawVLine(x, y, h int, col image1bit.Bit) error {
	if h <= 0 {
		return nil
	}
	return c.DrawLine(x, y, x, y+h-1, col)
}

// DrawRect draws the outline of a w x h rectangle with its top-left corner at (x, y).
func (c *Context) DrawRect(x, y, w, h int, col image1bit.Bit) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	if err := c.DrawHLine(x, y, w, col); err != nil {
		return err
	}
	if err := c.DrawHLine(x, y+h-1, w, col); err != nil {
		return err
	}
	if err := c.DrawVLine(x, y, h, col); err != nil {
		return err
	}
	return c.DrawVLine(x+w-1, y, h, col)
}

// FillRect fills a w x h rectangle with its top-left corner at (x, y).
func (c *Context) FillRect(x, y, w, h int, col image1bit.Bit) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	for i := x; i < x+w; i++ {
		if err := c.DrawVLine(i, y, h, col); err != nil {
			return err
		}
	}
	return nil
}

// DrawTriangle draws the outline of the triangle with the given vertices.
func (c *Context) DrawTriangle(x0, y0, x1, y1, x2, y2 int, col image1bit.Bit) error {
	if err := c.DrawLine(x0, y0, x1, y1, col); err != nil {
		return err
	}
	if err := c.DrawLine(x1, y1, x2, y2, col); err != nil {
		return err
	}
	return c.DrawLine(x2, y2, x0, y0, col)
}

// FillTriangle fills the triangle with the given vertices, one horizontal
// span per scanline.
func (c *Context) FillTriangle(x0, y0, x1, y1, x2, y2 int, col image1bit.Bit) error {
	// Sort vertices by y: y0 <= y1 <= y2.
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	if y1 > y2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}

	if y0 == y2 {
		// All on one scanline.
		a, b := min(x0, x1, x2), max(x0, x1, x2)
		return c.DrawHLine(a, y0, b-a+1, col)
	}

	dx01, dy01 := x1-x0, y1-y0
	dx02, dy02 := x2-x0, y2-y0
	dx12, dy12 := x2-x1, y2-y1

	// Upper part: edges 0-1 and 0-2. The row of vertex 1 belongs to the upper
	// part only when the lower edge 1-2 is flat.
	last := y1 - 1
	if y1 == y2 {
		last = y1
	}

	sa, sb := 0, 0
	y := y0
	for ; y <= last; y++ {
		a := x0 + sa/dy01
		b := x0 + sb/dy02
		sa += dx01
		sb += dx02
		if a > b {
			a, b = b, a
		}
		if err := c.DrawHLine(a, y, b-a+1, col); err != nil {
			return err
		}
	}

	// Lower part: edges 1-2 and 0-2.
	sa = dx12 * (y - y1)
	sb = dx02 * (y - y0)
	for ; y <= y2; y++ {
		a := x1 + sa/dy12
		b := x0 + sb/dy02
		sa += dx12
		sb += dx02
		if a > b {
			a, b = b, a
		}
		if err := c.DrawHLine(a, y, b-a+1, col); err != nil {
			return err
		}
	}
	return nil
}

// DrawCircle draws the outline of a circle of radius r centered on (x0, y0)
// with the midpoint algorithm.
func (c *Context) DrawCircle(x0, y0, r int, col image1bit.Bit) error {
	if r < 0 {
		return fmt.Errorf("%w: negative radius %d", ErrInvalidArgument, r)
	}
	f := 1 - r
	ddx := 1
	ddy := -2 * r
	x, y := 0, r

	extremes := [4][2]int{{x0, y0 + r}, {x0, y0 - r}, {x0 + r, y0}, {x0 - r, y0}}
	for _, p := range extremes {
		if err := c.SetPixel(p[0], p[1], col); err != nil {
			return err
		}
	}

	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx

		octants := [8][2]int{
			{x0 + x, y0 + y}, {x0 - x, y0 + y}, {x0 + x, y0 - y}, {x0 - x, y0 - y},
			{x0 + y, y0 + x}, {x0 - y, y0 + x}, {x0 + y, y0 - x}, {x0 - y, y0 - x},
		}
		for _, p := range octants {
			if err := c.SetPixel(p[0], p[1], col); err != nil {
				return err
			}
		}
	}
	return nil
}

// FillCircle fills a circle of radius r centered on (x0, y0).
func (c *Context) FillCircle(x0, y0, r int, col image1bit.Bit) error {
	if r < 0 {
		return fmt.Errorf("%w: negative radius %d", ErrInvalidArgument, r)
	}
	if err := c.DrawVLine(x0, y0-r, 2*r+1, col); err != nil {
		return err
	}
	return c.quarterFill(x0, y0, r, halfRight|halfLeft, 0, col)
}

// DrawRoundRect draws the outline of a w x h rectangle with corners rounded
// to radius r. The radius is clamped to half the shorter side.
func (c *Context) DrawRoundRect(x, y, w, h, r int, col image1bit.Bit) error {
	if r < 0 {
		return fmt.Errorf("%w: negative radius %d", ErrInvalidArgument, r)
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	r = min(r, min(w, h)/2)

	edges := []func() error{
		func() error { return c.DrawHLine(x+r, y, w-2*r, col) },
		func() error { return c.DrawHLine(x+r, y+h-1, w-2*r, col) },
		func() error { return c.DrawVLine(x, y+r, h-2*r, col) },
		func() error { return c.DrawVLine(x+w-1, y+r, h-2*r, col) },
		func() error { return c.quarterCircle(x+r, y+r, r, cornerTopLeft, col) },
		func() error { return c.quarterCircle(x+w-r-1, y+r, r, cornerTopRight, col) },
		func() error { return c.quarterCircle(x+w-r-1, y+h-r-1, r, cornerBottomRight, col) },
		func() error { return c.quarterCircle(x+r, y+h-r-1, r, cornerBottomLeft, col) },
	}
	for _, draw := range edges {
		if err := draw(); err != nil {
			return err
		}
	}
	return nil
}

// FillRoundRect fills a w x h rectangle with corners rounded to radius r.
// The radius is clamped to half the shorter side.
func (c *Context) FillRoundRect(x, y, w, h, r int, col image1bit.Bit) error {
	if r < 0 {
		return fmt.Errorf("%w: negative radius %d", ErrInvalidArgument, r)
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	r = min(r, min(w, h)/2)

	if err := c.FillRect(x+r, y, w-2*r, h, col); err != nil {
		return err
	}
	if err := c.quarterFill(x+w-r-1, y+r, r, halfRight, h-2*r-1, col); err != nil {
		return err
	}
	return c.quarterFill(x+r, y+r, r, halfLeft, h-2*r-1, col)
}

// DrawBitmap draws a 1-bit bitmap stored row-major, most significant bit
// first, each row padded to a whole byte. Set bits are painted with fg and
// cleared bits with bg.
func (c *Context) DrawBitmap(x, y int, bitmap []byte, w, h int, fg, bg image1bit.Bit) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	byteWidth := (w + 7) / 8
	if len(bitmap) < byteWidth*h {
		return fmt.Errorf("%w: bitmap holds %d bytes, %dx%d needs %d", ErrInvalidArgument, len(bitmap), w, h, byteWidth*h)
	}
	for j := 0; j < h; j++ {
		var b byte
		for i := 0; i < w; i++ {
			if i&7 == 0 {
				b = bitmap[j*byteWidth+i/8]
			} else {
				b <<= 1
			}
			col := bg
			if b&0x80 != 0 {
				col = fg
			}
			if err := c.SetPixel(x+i, y+j, col); err != nil {
				return err
			}
		}
	}
	return nil
}

// quarterCircle draws the arcs of the circle of radius r centered on (x0, y0)
// selected by corners, a combination of the corner* masks. The four extreme
// points are left to the caller's straight edges.
func (c *Context) quarterCircle(x0, y0, r int, corners uint8, col image1bit.Bit) error {
	f := 1 - r
	ddx := 1
	ddy := -2 * r
	x, y := 0, r

	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx

		var pts [][2]int
		if corners&cornerBottomRight != 0 {
			pts = append(pts, [2]int{x0 + x, y0 + y}, [2]int{x0 + y, y0 + x})
		}
		if corners&cornerTopRight != 0 {
			pts = append(pts, [2]int{x0 + x, y0 - y}, [2]int{x0 + y, y0 - x})
		}
		if corners&cornerBottomLeft != 0 {
			pts = append(pts, [2]int{x0 - y, y0 + x}, [2]int{x0 - x, y0 + y})
		}
		if corners&cornerTopLeft != 0 {
			pts = append(pts, [2]int{x0 - y, y0 - x}, [2]int{x0 - x, y0 - y})
		}
		for _, p := range pts {
			if err := c.SetPixel(p[0], p[1], col); err != nil {
				return err
			}
		}
	}
	return nil
}

// quarterFill fills the right and/or left half of the circle of radius r
// centered on (x0, y0) with vertical spans, excluding the center column.
// Each span is stretched downwards by delta pixels, which lets rounded
// rectangles reuse it for their side bands.
func (c *Context) quarterFill(x0, y0, r int, halves uint8, delta int, col image1bit.Bit) error {
	f := 1 - r
	ddx := 1
	ddy := -2 * r
	x, y := 0, r
	px, py := x, y

	delta++
	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx

		// Skip spans already drawn on the previous step so they are not
		// painted twice at the 45° crossover.
		if x < y+1 {
			if err := c.fillSpans(x0, y0, x, y, halves, delta, col); err != nil {
				return err
			}
		}
		if y != py {
			if err := c.fillSpans(x0, y0, py, px, halves, delta, col); err != nil {
				return err
			}
			py = y
		}
		px = x
	}
	return nil
}

// fillSpans draws the vertical spans at x0±dx running from y0-dy for
// 2*dy+delta pixels.
func (c *Context) fillSpans(x0, y0, dx, dy int, halves uint8, delta int, col image1bit.Bit) error {
	if halves&halfRight != 0 {
		if err := c.DrawVLine(x0+dx, y0-dy, 2*dy+delta, col); err != nil {
			return err
		}
	}
	if halves&halfLeft != 0 {
		return c.DrawVLine(x0-dx, y0-dy, 2*dy+delta, col)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

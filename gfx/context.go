package gfx

import (
	"errors"
	"fmt"
	"image"

	"periph.io/x/devices/v3/sh1106/image1bit"
)

// ErrInvalidArgument is returned for arguments no drawing can honor, such as
// a negative radius or a zero text scale. Off-screen coordinates are never an
// error: they are clipped.
var ErrInvalidArgument = errors.New("gfx: invalid argument")

// Rotation is one of the four discrete display orientations.
type Rotation uint8

const (
	Rotate0   Rotation = iota // Native orientation
	Rotate90                  // 90° clockwise
	Rotate180                 // Upside down
	Rotate270                 // 90° counter-clockwise
)

func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "0°"
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	}
	return fmt.Sprintf("Rotation(%d)", uint8(r))
}

// Context is the rendering state of one display: its framebuffer, geometry,
// rotation, text cursor, colors, scale and active font.
//
// A Context is not safe for concurrent use. Callers sharing one between
// goroutines must serialize every call, drawing and flushing alike.
type Context struct {
	fb *image1bit.VerticalLSB

	// Raw geometry, fixed at construction.
	width, height int

	rotation Rotation

	cursorX, cursorY int
	fg, bg           image1bit.Bit
	scaleX, scaleY   int
	wrap             bool
	legacy           bool

	font GlyphSource
}

// New returns a Context for a display of the given raw geometry.
//
// The height must be a positive multiple of 8 since the framebuffer is
// organized in 8-pixel pages.
func New(width, height int) (*Context, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: width %d must be positive", ErrInvalidArgument, width)
	}
	if height <= 0 || height%8 != 0 {
		return nil, fmt.Errorf("%w: height %d must be a positive multiple of 8", ErrInvalidArgument, height)
	}
	return &Context{
		fb:     image1bit.NewVerticalLSB(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
		fg:     image1bit.On,
		bg:     image1bit.Off,
		scaleX: 1,
		scaleY: 1,
		font:   Fixed,
	}, nil
}

// RawWidth returns the width of the panel in its native orientation.
func (c *Context) RawWidth() int { return c.width }

// RawHeight returns the height of the panel in its native orientation.
func (c *Context) RawHeight() int { return c.height }

// Width returns the drawable width under the current rotation.
func (c *Context) Width() int {
	if c.rotation == Rotate90 || c.rotation == Rotate270 {
		return c.height
	}
	return c.width
}

// Height returns the drawable height under the current rotation.
func (c *Context) Height() int {
	if c.rotation == Rotate90 || c.rotation == Rotate270 {
		return c.width
	}
	return c.height
}

// Bounds returns the drawable area under the current rotation.
func (c *Context) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width(), c.Height())
}

// SetRotation changes the orientation used by subsequent drawing calls.
// Pixels already in the framebuffer are not moved. Values above Rotate270
// wrap around.
func (c *Context) SetRotation(r Rotation) {
	c.rotation = r & 3
}

// Rotation returns the current orientation.
func (c *Context) Rotation() Rotation { return c.rotation }

// SetFont selects the glyph source used by the text functions. nil restores
// the built-in 5x7 font.
func (c *Context) SetFont(f GlyphSource) {
	if f == nil {
		f = Fixed
	}
	c.font = f
}

// Font returns the active glyph source.
func (c *Context) Font() GlyphSource { return c.font }

// SetCursor moves the text cursor.
func (c *Context) SetCursor(x, y int) {
	c.cursorX, c.cursorY = x, y
}

// Cursor returns the text cursor.
func (c *Context) Cursor() (x, y int) {
	return c.cursorX, c.cursorY
}

// SetTextColor sets the text foreground and background. When both are equal
// the background is transparent.
func (c *Context) SetTextColor(fg, bg image1bit.Bit) {
	c.fg, c.bg = fg, bg
}

// TextColor returns the text foreground and background.
func (c *Context) TextColor() (fg, bg image1bit.Bit) {
	return c.fg, c.bg
}

// SetTextSize sets the text magnification. Values below 1 are raised to 1.
func (c *Context) SetTextSize(sx, sy int) {
	c.scaleX = max(sx, 1)
	c.scaleY = max(sy, 1)
}

// TextSize returns the text magnification.
func (c *Context) TextSize() (sx, sy int) {
	return c.scaleX, c.scaleY
}

// SetWrap enables wrapping text at the right edge.
func (c *Context) SetWrap(wrap bool) { c.wrap = wrap }

// Wrap reports whether text wraps at the right edge.
func (c *Context) Wrap() bool { return c.wrap }

// SetLegacyCharset enables the classic charset of the built-in font, in which
// glyph 176 is missing and every code from 176 up renders its successor.
func (c *Context) SetLegacyCharset(legacy bool) { c.legacy = legacy }

// LegacyCharset reports whether the classic charset is enabled.
func (c *Context) LegacyCharset() bool { return c.legacy }

// Clear turns every pixel off.
func (c *Context) Clear() {
	clear(c.fb.Pix)
}

// Fill sets every pixel to col.
func (c *Context) Fill(col image1bit.Bit) {
	var b byte
	if col {
		b = 0xFF
	}
	for i := range c.fb.Pix {
		c.fb.Pix[i] = b
	}
}

// Pages returns the number of 8-pixel pages in the framebuffer.
func (c *Context) Pages() int {
	return c.fb.Pages()
}

// Page returns a copy of page p, one byte per raw column.
func (c *Context) Page(p int) []byte {
	if p < 0 || p >= c.fb.Pages() {
		return nil
	}
	return append([]byte(nil), c.fb.Page(p)...)
}

// Bytes returns a copy of the whole framebuffer in controller order.
func (c *Context) Bytes() []byte {
	return append([]byte(nil), c.fb.Pix...)
}

// Image returns a copy of the framebuffer in the raw orientation.
func (c *Context) Image() *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(c.fb.Rect)
	copy(img.Pix, c.fb.Pix)
	return img
}

func (c *Context) String() string {
	return fmt.Sprintf("gfx.Context{%dx%d, %v}", c.width, c.height, c.rotation)
}

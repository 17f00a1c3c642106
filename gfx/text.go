package gfx

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"periph.io/x/devices/v3/sh1106/image1bit"
)

// DrawChar draws r with the active font at (x, y), magnified sx times
// horizontally and sy times vertically. The cursor is not moved.
//
// With the built-in font, a background different from fg paints the whole
// 6x8 cell; glyphs entirely off-screen are skipped. Runes the font does not
// cover are skipped.
func (c *Context) DrawChar(x, y int, r rune, fg, bg image1bit.Bit, sx, sy int) error {
	if sx < 1 || sy < 1 {
		return fmt.Errorf("%w: text scale %dx%d", ErrInvalidArgument, sx, sy)
	}
	return c.font.Render(c, x, y, r, fg, bg, sx, sy)
}

// WriteChar renders r at the cursor with the current colors and scale, then
// advances the cursor. '\n' moves to the start of the next line and '\r' is
// ignored.
func (c *Context) WriteChar(r rune) error {
	switch r {
	case '\n':
		c.newline()
		return nil
	case '\r':
		return nil
	}

	advance, extent, ok := c.font.Advance(r)
	if !ok {
		return nil
	}
	if extent > 0 {
		if c.wrap && c.cursorX+extent*c.scaleX > c.Width() {
			c.newline()
		}
		if err := c.DrawChar(c.cursorX, c.cursorY, r, c.fg, c.bg, c.scaleX, c.scaleY); err != nil {
			return err
		}
	}
	c.cursorX += advance * c.scaleX
	return nil
}

// WriteString moves the cursor to (x0, y0) and writes s one rune at a time.
// It stops at the first rune that fails to render.
func (c *Context) WriteString(s string, x0, y0 int) error {
	c.SetCursor(x0, y0)
	return c.Print(s)
}

// Print writes s at the current cursor position. With the built-in font,
// non-ASCII runes are encoded to code page 437 and runes it lacks are skipped.
func (c *Context) Print(s string) error {
	for _, r := range s {
		r, ok := c.textRune(r)
		if !ok {
			continue
		}
		if err := c.WriteChar(r); err != nil {
			return err
		}
	}
	return nil
}

// Write implements io.Writer. p is decoded as UTF-8 and mapped like Print;
// invalid bytes are written as their own code, which suits the 8-bit built-in
// font.
func (c *Context) Write(p []byte) (int, error) {
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])
		ok := true
		if r == utf8.RuneError && size == 1 {
			r = rune(p[i])
		} else {
			r, ok = c.textRune(r)
		}
		if ok {
			if err := c.WriteChar(r); err != nil {
				return i, err
			}
		}
		i += size
	}
	return len(p), nil
}

// TextBounds returns the size s would occupy when written with the active
// font and scale, ignoring wrapping: the widest line's advance and the number
// of lines times the line height.
func (c *Context) TextBounds(s string) (w, h int) {
	line, lines := 0, 1
	for _, r := range s {
		switch r {
		case '\n':
			w = max(w, line)
			line = 0
			lines++
			continue
		case '\r':
			continue
		}
		r, ok := c.textRune(r)
		if !ok {
			continue
		}
		if advance, _, ok := c.font.Advance(r); ok {
			line += advance * c.scaleX
		}
	}
	w = max(w, line)
	return w, lines * c.font.LineHeight() * c.scaleY
}

// textRune returns the code the active font indexes r by. The built-in font
// holds the code page 437 glyph set.
func (c *Context) textRune(r rune) (rune, bool) {
	if c.font != Fixed || r < utf8.RuneSelf {
		return r, true
	}
	b, ok := charmap.CodePage437.EncodeRune(r)
	return rune(b), ok
}

func (c *Context) newline() {
	c.cursorX = 0
	c.cursorY += c.font.LineHeight() * c.scaleY
}

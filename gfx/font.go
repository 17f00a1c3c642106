package gfx

import "periph.io/x/devices/v3/sh1106/image1bit"

// GlyphSource supplies glyph metrics and rendering to the text functions.
//
// Two implementations ship with the package: Fixed, the built-in 5x7 font,
// and *Font, a table of proportional glyphs.
type GlyphSource interface {
	// Advance returns, in unscaled pixels, how far the cursor moves after r
	// and the right edge of r's ink relative to the cursor. extent is 0 when
	// r has nothing to draw. ok is false when r is not covered at all.
	Advance(r rune) (advance, extent int, ok bool)

	// LineHeight returns the unscaled distance between two baselines.
	LineHeight() int

	// Render draws r with its origin at (x, y), each font pixel magnified
	// to an sx x sy block.
	Render(c *Context, x, y int, r rune, fg, bg image1bit.Bit, sx, sy int) error
}

// Glyph locates one character in a Font bitmap and describes its metrics.
type Glyph struct {
	Offset   int // Byte offset into Font.Bitmap
	Width    int // Bitmap width in pixels
	Height   int // Bitmap height in pixels
	XAdvance int // Cursor advance after the glyph
	XOffset  int // Distance from the cursor to the left edge
	YOffset  int // Distance from the cursor to the top edge, usually negative
}

// Font is a table of proportional glyphs covering the runes First to Last.
//
// Glyph bitmaps are packed one after the other in Bitmap as a continuous bit
// stream, row-major, most significant bit first. A Font must not be modified
// once in use; it can be shared by any number of contexts.
type Font struct {
	Bitmap   []byte
	Glyphs   []Glyph // Glyphs[r-First]
	First    rune
	Last     rune
	YAdvance int // Newline distance
}

func (f *Font) glyph(r rune) (Glyph, bool) {
	if r < f.First || r > f.Last || int(r-f.First) >= len(f.Glyphs) {
		return Glyph{}, false
	}
	g := f.Glyphs[r-f.First]
	if g == (Glyph{}) {
		return g, false
	}
	return g, true
}

// Advance implements GlyphSource.
func (f *Font) Advance(r rune) (advance, extent int, ok bool) {
	g, ok := f.glyph(r)
	if !ok {
		return 0, 0, false
	}
	if g.Width > 0 && g.Height > 0 {
		extent = g.XOffset + g.Width
	}
	return g.XAdvance, extent, true
}

// LineHeight implements GlyphSource.
func (f *Font) LineHeight() int {
	return f.YAdvance
}

// Render implements GlyphSource. Only set bits are painted: table fonts are
// always drawn with a transparent background.
func (f *Font) Render(c *Context, x, y int, r rune, fg, _ image1bit.Bit, sx, sy int) error {
	g, ok := f.glyph(r)
	if !ok {
		return nil
	}
	bo := g.Offset
	var bits byte
	bit := 0
	for yy := 0; yy < g.Height; yy++ {
		for xx := 0; xx < g.Width; xx++ {
			if bit&7 == 0 {
				if bo >= len(f.Bitmap) {
					return nil
				}
				bits = f.Bitmap[bo]
				bo++
			}
			bit++
			if bits&0x80 != 0 {
				var err error
				if sx == 1 && sy == 1 {
					err = c.SetPixel(x+g.XOffset+xx, y+g.YOffset+yy, fg)
				} else {
					err = c.FillRect(x+(g.XOffset+xx)*sx, y+(g.YOffset+yy)*sy, sx, sy, fg)
				}
				if err != nil {
					return err
				}
			}
			bits <<= 1
		}
	}
	return nil
}

// fixedFont is the built-in 5x7 font.
type fixedFont struct{}

// Fixed is the built-in 5x7 font covering codes 0 to 255 with the code page
// 437 glyph set. Each glyph occupies a 6x8 cell: 5 bitmap columns plus one
// column of spacing.
var Fixed GlyphSource = fixedFont{}

const (
	fixedAdvance    = 6
	fixedLineHeight = 8
)

func (fixedFont) Advance(r rune) (advance, extent int, ok bool) {
	if r < 0 || r > 0xFF {
		return 0, 0, false
	}
	return fixedAdvance, fixedAdvance, true
}

func (fixedFont) LineHeight() int {
	return fixedLineHeight
}

func (fixedFont) Render(c *Context, x, y int, r rune, fg, bg image1bit.Bit, sx, sy int) error {
	if x >= c.Width() || y >= c.Height() || x+fixedAdvance*sx-1 < 0 || y+fixedLineHeight*sy-1 < 0 {
		return nil
	}
	code := int(r)
	if c.legacy && code >= 176 {
		code++
	}
	if code < 0 || code*5+5 > len(font5x7) {
		return nil
	}

	opaque := bg != fg
	cell := func(i, j int, col image1bit.Bit) error {
		if sx == 1 && sy == 1 {
			return c.SetPixel(x+i, y+j, col)
		}
		return c.FillRect(x+i*sx, y+j*sy, sx, sy, col)
	}

	for i := 0; i < 5; i++ {
		line := font5x7[code*5+i]
		for j := 0; j < 8; j, line = j+1, line>>1 {
			var err error
			switch {
			case line&1 != 0:
				err = cell(i, j, fg)
			case opaque:
				err = cell(i, j, bg)
			}
			if err != nil {
				return err
			}
		}
	}
	if opaque {
		if sx == 1 && sy == 1 {
			return c.DrawVLine(x+5, y, 8, bg)
		}
		return c.FillRect(x+5*sx, y, sx, 8*sy, bg)
	}
	return nil
}

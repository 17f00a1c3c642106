package gfx

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/tinyfont"
)

// FromTinyfont converts a TinyGo font to a Font. Runes missing between the
// first and last glyph are left uncovered.
//
// TinyGo glyph bitmaps already use the packed MSB-first layout, so bitmaps
// are copied as is.
func FromTinyfont(tf *tinyfont.Font) *Font {
	f := &Font{YAdvance: int(tf.YAdvance)}
	if len(tf.Glyphs) == 0 {
		return f
	}

	f.First, f.Last = tf.Glyphs[0].Rune, tf.Glyphs[0].Rune
	for _, g := range tf.Glyphs {
		f.First = min(f.First, g.Rune)
		f.Last = max(f.Last, g.Rune)
	}
	f.Glyphs = make([]Glyph, f.Last-f.First+1)

	for _, g := range tf.Glyphs {
		f.Glyphs[g.Rune-f.First] = Glyph{
			Offset:   len(f.Bitmap),
			Width:    int(g.Width),
			Height:   int(g.Height),
			XAdvance: int(g.XAdvance),
			XOffset:  int(g.XOffset),
			YOffset:  int(g.YOffset),
		}
		f.Bitmap = append(f.Bitmap, g.Bitmaps...)
	}
	return f
}

// FromFace rasterizes the runes first to last of face into a Font. Mask
// pixels at least half opaque become set bits. Glyph offsets are relative to
// the baseline, like the cursor of the text functions.
func FromFace(face font.Face, first, last rune) *Font {
	f := &Font{
		First:    first,
		Last:     last,
		YAdvance: face.Metrics().Height.Ceil(),
	}
	if last < first {
		return f
	}
	f.Glyphs = make([]Glyph, last-first+1)

	for r := first; r <= last; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		g := Glyph{
			Offset:   len(f.Bitmap),
			Width:    dr.Dx(),
			Height:   dr.Dy(),
			XAdvance: advance.Round(),
			XOffset:  dr.Min.X,
			YOffset:  dr.Min.Y,
		}
		f.Bitmap = append(f.Bitmap, packMask(mask, maskp, g.Width, g.Height)...)
		f.Glyphs[r-first] = g
	}
	return f
}

// packMask packs a w x h area of mask starting at mp into a continuous
// MSB-first bit stream.
func packMask(mask image.Image, mp image.Point, w, h int) []byte {
	out := make([]byte, (w*h+7)/8)
	bit := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if _, _, _, a := mask.At(mp.X+x, mp.Y+y).RGBA(); a >= 0x8000 {
				out[bit/8] |= 0x80 >> uint(bit&7)
			}
			bit++
		}
	}
	return out
}

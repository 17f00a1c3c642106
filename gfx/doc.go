// Package gfx renders monochrome graphics and text into a page-organized
// framebuffer.
//
// A Context owns the framebuffer of one display together with its rendering
// state: rotation, text cursor, colors, text scale, wrapping and the active
// font. All drawing goes through the rotation-aware pixel engine, which clips
// silently: drawing off-screen is never an error.
//
// # Primitives
//
// Lines use Bresenham's algorithm; circles and rounded corners the midpoint
// algorithm; filled triangles an integer scanline sweep.
//
//	ctx, _ := gfx.New(128, 64)
//	ctx.DrawRoundRect(0, 0, 128, 64, 6, image1bit.On)
//	ctx.FillCircle(64, 32, 10, image1bit.On)
//	ctx.FillTriangle(10, 50, 30, 20, 50, 50, image1bit.On)
//
// # Text
//
// Text is drawn with the built-in 5x7 font unless another GlyphSource is
// selected. Proportional fonts can be converted from TinyGo fonts or from any
// golang.org/x/image font.Face:
//
//	ctx.SetFont(gfx.FromFace(basicfont.Face7x13, ' ', '~'))
//	ctx.WriteString("Hello", 0, 12)
//
// With a proportional font the cursor sits on the baseline, so y must leave
// room for the ascent.
//
// # Flushing
//
// A Context only holds pixels in memory. Use sh1106.Dev.Flush to transfer it
// to the panel.
package gfx

// Package image1bit provides a 1-bit monochrome image format for page-addressed
// OLED controllers such as the SH1106 and SSD1306.
//
// The controller RAM is organized in pages: horizontal bands 8 pixels tall.
// Each byte holds one column of a page, least significant bit on top.
//
// Memory layout example for a 4x8 image (one page):
//
//	          x=0   x=1   x=2   x=3
//	Byte:     0     1     2     3
//	bit 0     y=0   y=0   y=0   y=0
//	bit 1     y=1   y=1   y=1   y=1
//	...
//	bit 7     y=7   y=7   y=7   y=7
//
// A pixel (x, y) lives in byte Stride*(y/8) + x, bit y%8.
//
// This package provides:
//
// - Bit: A color type with two values, On and Off
// - BitModel: A color model converting standard Go colors to Bit
// - VerticalLSB: An image.Image implementation matching the controller RAM
//
// Example usage:
//
//	// Create a 128x64 image
//	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
//
//	// Light a pixel
//	img.SetBit(10, 20, image1bit.On)
//
//	// Read it back
//	println(img.BitAt(10, 20)) // Output: true
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
package image1bit

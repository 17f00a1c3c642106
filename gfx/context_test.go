package gfx

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"periph.io/x/devices/v3/sh1106/image1bit"
)

func newTestContext(t *testing.T, w, h int) *Context {
	t.Helper()
	c, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d) error = %v", w, h, err)
	}
	return c
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"128x64", 128, 64, false},
		{"128x32", 128, 32, false},
		{"1x8 (minimum)", 1, 8, false},
		{"width zero", 0, 64, true},
		{"width negative", -4, 64, true},
		{"height zero", 128, 0, true},
		{"height not multiple of 8", 128, 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("error %v does not wrap ErrInvalidArgument", err)
				}
				return
			}
			if c.RawWidth() != tt.w || c.RawHeight() != tt.h {
				t.Errorf("raw size = %dx%d, want %dx%d", c.RawWidth(), c.RawHeight(), tt.w, tt.h)
			}
			if len(c.Bytes()) != tt.w*tt.h/8 {
				t.Errorf("framebuffer holds %d bytes, want %d", len(c.Bytes()), tt.w*tt.h/8)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	c := newTestContext(t, 128, 64)

	if x, y := c.Cursor(); x != 0 || y != 0 {
		t.Errorf("Cursor() = (%d, %d), want (0, 0)", x, y)
	}
	if fg, bg := c.TextColor(); fg != image1bit.On || bg != image1bit.Off {
		t.Errorf("TextColor() = (%v, %v), want (On, Off)", fg, bg)
	}
	if sx, sy := c.TextSize(); sx != 1 || sy != 1 {
		t.Errorf("TextSize() = (%d, %d), want (1, 1)", sx, sy)
	}
	if c.Rotation() != Rotate0 {
		t.Errorf("Rotation() = %v, want %v", c.Rotation(), Rotate0)
	}
	if c.Wrap() || c.LegacyCharset() {
		t.Error("wrap and legacy charset should be off")
	}
	if c.Font() != Fixed {
		t.Error("Font() should be the built-in font")
	}
	if !bytes.Equal(c.Bytes(), make([]byte, 128*64/8)) {
		t.Error("framebuffer should start blank")
	}
}

func TestRotationGeometry(t *testing.T) {
	tests := []struct {
		rot  Rotation
		w, h int
		name string
	}{
		{Rotate0, 128, 64, "0°"},
		{Rotate90, 64, 128, "90°"},
		{Rotate180, 128, 64, "180°"},
		{Rotate270, 64, 128, "270°"},
	}

	c := newTestContext(t, 128, 64)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.SetRotation(tt.rot)
			if c.Width() != tt.w || c.Height() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", c.Width(), c.Height(), tt.w, tt.h)
			}
			if c.Bounds() != image.Rect(0, 0, tt.w, tt.h) {
				t.Errorf("Bounds() = %v", c.Bounds())
			}
			if c.RawWidth() != 128 || c.RawHeight() != 64 {
				t.Error("raw size must not change with rotation")
			}
			if c.Rotation().String() != tt.name {
				t.Errorf("String() = %q, want %q", c.Rotation().String(), tt.name)
			}
		})
	}
}

func TestSetRotationWraps(t *testing.T) {
	c := newTestContext(t, 128, 64)
	c.SetRotation(Rotation(5))
	if c.Rotation() != Rotate90 {
		t.Errorf("Rotation() = %v, want %v", c.Rotation(), Rotate90)
	}
}

func TestSetTextSizeClamps(t *testing.T) {
	c := newTestContext(t, 128, 64)
	c.SetTextSize(0, -3)
	if sx, sy := c.TextSize(); sx != 1 || sy != 1 {
		t.Errorf("TextSize() = (%d, %d), want (1, 1)", sx, sy)
	}
	c.SetTextSize(2, 3)
	if sx, sy := c.TextSize(); sx != 2 || sy != 3 {
		t.Errorf("TextSize() = (%d, %d), want (2, 3)", sx, sy)
	}
}

func TestSetFontNil(t *testing.T) {
	c := newTestContext(t, 128, 64)
	c.SetFont(&Font{YAdvance: 10})
	c.SetFont(nil)
	if c.Font() != Fixed {
		t.Error("SetFont(nil) should restore the built-in font")
	}
}

func TestClearAndFill(t *testing.T) {
	c := newTestContext(t, 16, 16)
	c.Fill(image1bit.On)
	for _, b := range c.Bytes() {
		if b != 0xFF {
			t.Fatalf("Fill(On) left byte 0x%02X", b)
		}
	}
	c.Clear()
	for _, b := range c.Bytes() {
		if b != 0 {
			t.Fatalf("Clear() left byte 0x%02X", b)
		}
	}
}

func TestPage(t *testing.T) {
	c := newTestContext(t, 16, 16)
	if c.Pages() != 2 {
		t.Fatalf("Pages() = %d, want 2", c.Pages())
	}
	if err := c.SetPixel(3, 9, image1bit.On); err != nil {
		t.Fatal(err)
	}
	p := c.Page(1)
	if len(p) != 16 || p[3] != 0x02 {
		t.Errorf("Page(1) = % X", p)
	}
	// Page returns a copy.
	p[0] = 0xFF
	if c.Pixel(0, 8) != image1bit.Off {
		t.Error("modifying the copy changed the framebuffer")
	}
	if c.Page(2) != nil || c.Page(-1) != nil {
		t.Error("Page() out of range should return nil")
	}
}

func TestImage(t *testing.T) {
	c := newTestContext(t, 16, 8)
	if err := c.SetPixel(5, 6, image1bit.On); err != nil {
		t.Fatal(err)
	}
	img := c.Image()
	if img.BitAt(5, 6) != image1bit.On {
		t.Error("Image() lost a pixel")
	}
	img.SetBit(0, 0, image1bit.On)
	if c.Pixel(0, 0) != image1bit.Off {
		t.Error("Image() should return a copy")
	}
}

func TestContextString(t *testing.T) {
	c := newTestContext(t, 128, 64)
	c.SetRotation(Rotate180)
	if got, want := c.String(), "gfx.Context{128x64, 180°}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

package gfx

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"periph.io/x/devices/v3/sh1106/image1bit"
)

// litPixels returns every pixel that is on, in logical coordinates.
func litPixels(c *Context) map[image.Point]bool {
	lit := map[image.Point]bool{}
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.Pixel(x, y) {
				lit[image.Pt(x, y)] = true
			}
		}
	}
	return lit
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"single point", 4, 4, 4, 4, 1},
		{"horizontal", 0, 0, 9, 0, 10},
		{"vertical", 5, 2, 5, 11, 10},
		{"diagonal", 0, 0, 7, 7, 8},
		{"shallow", 0, 0, 20, 5, 21},
		{"steep", 0, 0, 5, 20, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, 128, 64)
			if err := c.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1, image1bit.On); err != nil {
				t.Fatal(err)
			}
			lit := litPixels(c)
			if len(lit) != tt.want {
				t.Errorf("%d pixels lit, want %d", len(lit), tt.want)
			}
			if !lit[image.Pt(tt.x0, tt.y0)] || !lit[image.Pt(tt.x1, tt.y1)] {
				t.Error("endpoints must be drawn")
			}
		})
	}
}

func TestDrawLineSymmetric(t *testing.T) {
	lines := [][4]int{{3, 7, 40, 19}, {50, 2, 10, 60}, {0, 63, 127, 0}, {20, 5, 21, 50}}
	for _, l := range lines {
		a := newTestContext(t, 128, 64)
		b := newTestContext(t, 128, 64)
		if err := a.DrawLine(l[0], l[1], l[2], l[3], image1bit.On); err != nil {
			t.Fatal(err)
		}
		if err := b.DrawLine(l[2], l[3], l[0], l[1], image1bit.On); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a.Bytes(), b.Bytes()) {
			t.Errorf("line %v differs when drawn backwards", l)
		}
	}
}

func TestDrawLineClips(t *testing.T) {
	c := newTestContext(t, 128, 64)
	if err := c.DrawLine(-50, 10, 200, 10, image1bit.On); err != nil {
		t.Fatal(err)
	}
	if n := len(litPixels(c)); n != 128 {
		t.Errorf("%d pixels lit, want 128", n)
	}
}

func TestHVLineNonPositiveLength(t *testing.T) {
	c := newTestContext(t, 16, 16)
	for _, n := range []int{0, -1, -10} {
		if err := c.DrawHLine(4, 4, n, image1bit.On); err != nil {
			t.Error(err)
		}
		if err := c.DrawVLine(4, 4, n, image1bit.On); err != nil {
			t.Error(err)
		}
	}
	if n := len(litPixels(c)); n != 0 {
		t.Errorf("%d pixels lit, want 0", n)
	}
}

func TestRects(t *testing.T) {
	c := newTestContext(t, 128, 64)
	if err := c.DrawRect(10, 10, 8, 5, image1bit.On); err != nil {
		t.Fatal(err)
	}
	if n := len(litPixels(c)); n != 2*8+2*5-4 {
		t.Errorf("outline has %d pixels, want %d", n, 2*8+2*5-4)
	}
	if c.Pixel(12, 12) {
		t.Error("outline interior should be off")
	}

	c.Clear()
	if err := c.FillRect(10, 10, 8, 5, image1bit.On); err != nil {
		t.Fatal(err)
	}
	lit := litPixels(c)
	if len(lit) != 8*5 {
		t.Errorf("filled rect has %d pixels, want %d", len(lit), 8*5)
	}
	if !lit[image.Pt(10, 10)] || !lit[image.Pt(17, 14)] || lit[image.Pt(18, 14)] {
		t.Error("filled rect has the wrong extent")
	}

	if err := c.FillRect(12, 11, 2, 2, image1bit.Off); err != nil {
		t.Fatal(err)
	}
	if n := len(litPixels(c)); n != 8*5-4 {
		t.Errorf("%d pixels lit after clearing a block, want %d", n, 8*5-4)
	}
}

func TestDrawCircle(t *testing.T) {
	c := newTestContext(t, 128, 64)
	if err := c.DrawCircle(10, 10, 5, image1bit.On); err != nil {
		t.Fatal(err)
	}
	lit := litPixels(c)
	for _, p := range []image.Point{{10, 15}, {10, 5}, {15, 10}, {5, 10}} {
		if !lit[p] {
			t.Errorf("extreme point %v is off", p)
		}
	}
	if lit[image.Pt(10, 10)] {
		t.Error("center should be off")
	}
	for p := range lit {
		if !lit[image.Pt(20-p.X, p.Y)] || !lit[image.Pt(p.X, 20-p.Y)] || !lit[image.Pt(p.Y, p.X)] {
			t.Errorf("circle is not symmetric around %v", p)
		}
		dx, dy := p.X-10, p.Y-10
		if d := dx*dx + dy*dy; d < 4*4 || d > 6*6 {
			t.Errorf("%v is %d squared pixels from the center", p, d)
		}
	}
}

func TestDrawCircleZeroRadius(t *testing.T) {
	c := newTestContext(t, 16, 16)
	if err := c.DrawCircle(3, 4, 0, image1bit.On); err != nil {
		t.Fatal(err)
	}
	lit := litPixels(c)
	if len(lit) != 1 || !lit[image.Pt(3, 4)] {
		t.Errorf("zero radius circle = %v, want the single center pixel", lit)
	}
}

func TestFillCircle(t *testing.T) {
	const r = 9
	c := newTestContext(t, 64, 64)
	if err := c.FillCircle(30, 30, r, image1bit.On); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			dx, dy := x-30, y-30
			d := dx*dx + dy*dy
			switch on := bool(c.Pixel(x, y)); {
			case d <= (r-1)*(r-1) && !on:
				t.Errorf("(%d, %d) inside the circle is off", x, y)
			case d > (r+1)*(r+1) && on:
				t.Errorf("(%d, %d) outside the circle is on", x, y)
			}
		}
	}
}

func TestNegativeRadius(t *testing.T) {
	c := newTestContext(t, 64, 64)
	calls := map[string]func() error{
		"DrawCircle":    func() error { return c.DrawCircle(10, 10, -1, image1bit.On) },
		"FillCircle":    func() error { return c.FillCircle(10, 10, -1, image1bit.On) },
		"DrawRoundRect": func() error { return c.DrawRoundRect(0, 0, 10, 10, -1, image1bit.On) },
		"FillRoundRect": func() error { return c.FillRoundRect(0, 0, 10, 10, -1, image1bit.On) },
	}
	for name, call := range calls {
		if err := call(); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s() error = %v, want ErrInvalidArgument", name, err)
		}
	}
	if n := len(litPixels(c)); n != 0 {
		t.Errorf("%d pixels drawn by failing calls", n)
	}
}

func TestDrawRoundRectClampsRadius(t *testing.T) {
	a := newTestContext(t, 32, 16)
	b := newTestContext(t, 32, 16)
	if err := a.DrawRoundRect(0, 0, 20, 10, 50, image1bit.On); err != nil {
		t.Fatal(err)
	}
	if err := b.DrawRoundRect(0, 0, 20, 10, 5, image1bit.On); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("oversized radius should behave as half the shorter side")
	}

	for x := 0; x < 32; x++ {
		want := x >= 3 && x <= 16
		if got := bool(a.Pixel(x, 0)); got != want {
			t.Errorf("top edge (%d, 0) = %v, want %v", x, got, want)
		}
	}
	for y := 0; y < 16; y++ {
		want := y >= 3 && y <= 6
		if got := bool(a.Pixel(0, y)); got != want {
			t.Errorf("left edge (0, %d) = %v, want %v", y, got, want)
		}
	}
}

func TestFillRoundRect(t *testing.T) {
	outline := newTestContext(t, 32, 16)
	filled := newTestContext(t, 32, 16)
	if err := outline.DrawRoundRect(0, 0, 20, 10, 5, image1bit.On); err != nil {
		t.Fatal(err)
	}
	if err := filled.FillRoundRect(0, 0, 20, 10, 5, image1bit.On); err != nil {
		t.Fatal(err)
	}

	lit := litPixels(filled)
	for p := range litPixels(outline) {
		if !lit[p] {
			t.Errorf("outline pixel %v not covered by the fill", p)
		}
	}
	for p := range lit {
		if !p.In(image.Rect(0, 0, 20, 10)) {
			t.Errorf("%v drawn outside the rectangle", p)
		}
	}
	for _, p := range []image.Point{{0, 0}, {19, 0}, {0, 9}, {19, 9}} {
		if lit[p] {
			t.Errorf("corner %v should be rounded off", p)
		}
	}
	if !lit[image.Pt(10, 5)] || !lit[image.Pt(0, 5)] || !lit[image.Pt(10, 0)] {
		t.Error("fill has holes")
	}
}

func TestFillTriangle(t *testing.T) {
	c := newTestContext(t, 32, 16)
	if err := c.FillTriangle(0, 0, 10, 0, 0, 10, image1bit.On); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			want := x+y <= 10 && y <= 10
			if got := bool(c.Pixel(x, y)); got != want {
				t.Errorf("(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFillTriangleVertexOrder(t *testing.T) {
	v := [3][2]int{{5, 1}, {30, 9}, {12, 15}}
	orders := [][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	var first []byte
	for _, o := range orders {
		c := newTestContext(t, 32, 16)
		a, b, d := v[o[0]], v[o[1]], v[o[2]]
		if err := c.FillTriangle(a[0], a[1], b[0], b[1], d[0], d[1], image1bit.On); err != nil {
			t.Fatal(err)
		}
		if first == nil {
			first = c.Bytes()
			continue
		}
		if !bytes.Equal(first, c.Bytes()) {
			t.Errorf("vertex order %v changes the result", o)
		}
	}
}

func TestFillTriangleFlat(t *testing.T) {
	c := newTestContext(t, 32, 16)
	if err := c.FillTriangle(0, 5, 10, 5, 4, 5, image1bit.On); err != nil {
		t.Fatal(err)
	}
	lit := litPixels(c)
	if len(lit) != 11 {
		t.Errorf("%d pixels lit, want 11", len(lit))
	}
	for x := 0; x <= 10; x++ {
		if !lit[image.Pt(x, 5)] {
			t.Errorf("(%d, 5) is off", x)
		}
	}
}

func TestDrawTriangle(t *testing.T) {
	c := newTestContext(t, 32, 16)
	if err := c.DrawTriangle(1, 1, 20, 3, 8, 14, image1bit.On); err != nil {
		t.Fatal(err)
	}
	lit := litPixels(c)
	for _, p := range []image.Point{{1, 1}, {20, 3}, {8, 14}} {
		if !lit[p] {
			t.Errorf("vertex %v is off", p)
		}
	}
	if lit[image.Pt(10, 6)] {
		t.Error("interior should be off")
	}
}

func TestDrawBitmap(t *testing.T) {
	c := newTestContext(t, 16, 16)
	c.Fill(image1bit.On)
	// 3x2: 101 / 010, rows padded to a byte.
	bitmap := []byte{0xA0, 0x40}
	if err := c.DrawBitmap(2, 3, bitmap, 3, 2, image1bit.On, image1bit.Off); err != nil {
		t.Fatal(err)
	}
	want := [2][3]bool{{true, false, true}, {false, true, false}}
	for j := 0; j < 2; j++ {
		for i := 0; i < 3; i++ {
			if got := bool(c.Pixel(2+i, 3+j)); got != want[j][i] {
				t.Errorf("(%d, %d) = %v, want %v", 2+i, 3+j, got, want[j][i])
			}
		}
	}
	if !c.Pixel(5, 3) || !c.Pixel(2, 5) {
		t.Error("pixels outside the bitmap changed")
	}
}

func TestDrawBitmapTooShort(t *testing.T) {
	c := newTestContext(t, 16, 16)
	err := c.DrawBitmap(0, 0, []byte{0xFF}, 9, 1, image1bit.On, image1bit.Off)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("DrawBitmap() error = %v, want ErrInvalidArgument", err)
	}
}

func TestShapesRotated(t *testing.T) {
	c := newTestContext(t, 128, 64)
	c.SetRotation(Rotate270)
	if err := c.FillRect(0, 0, 64, 128, image1bit.On); err != nil {
		t.Fatal(err)
	}
	for _, b := range c.Bytes() {
		if b != 0xFF {
			t.Fatal("filling the rotated area should light every raw pixel")
		}
	}
}

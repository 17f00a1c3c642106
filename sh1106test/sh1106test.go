// Package sh1106test provides an in-memory SH1106 controller for tests and
// simulators.
//
// Controller implements the sh1106.Bus interface: it records every transfer
// and interprets the command stream the way the chip does, so the content of
// its display RAM can be compared with what was drawn.
package sh1106test

import (
	"fmt"
	"image"
	"sync"

	"periph.io/x/devices/v3/sh1106/image1bit"
)

// RAM geometry of the SH1106.
const (
	Columns = 132
	Pages   = 8
)

// IO is one recorded transfer.
type IO struct {
	Command bool
	B       []byte
}

func (io IO) String() string {
	if io.Command {
		return fmt.Sprintf("cmd % X", io.B)
	}
	return fmt.Sprintf("data[%d]", len(io.B))
}

// argCount lists the commands followed by one argument byte.
var argCount = map[byte]int{
	0x20: 1, // Memory addressing mode
	0x81: 1, // Contrast
	0xA8: 1, // Multiplex ratio
	0xAD: 1, // DC-DC control
	0xD3: 1, // Display offset
	0xD5: 1, // Clock divide
	0xD9: 1, // Pre-charge period
	0xDA: 1, // COM pins
	0xDB: 1, // VCOM deselect level
	0xDC: 1, // Display start line (SH1107)
}

// Controller models the SH1106 RAM and the registers the driver touches.
//
// It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	// Ops holds every transfer in order.
	Ops []IO

	// FailOn, when set, is called before each transfer is applied; a non-nil
	// result is returned to the caller and the transfer is dropped.
	FailOn func(n int, io IO) error

	ram      [Pages][Columns]byte
	page     int
	column   int
	on       bool
	inverted bool
	contrast byte
	pending  byte // Command waiting for its argument, 0 if none
	width    int
	offset   int
}

// NewController returns a controller whose visible window is width columns
// centered in RAM, as wired on SH1106 modules.
func NewController(width int) *Controller {
	return &Controller{width: width, offset: (Columns - width) / 2, contrast: 0x80}
}

// SendCommand implements sh1106.Bus.
func (c *Controller) SendCommand(cmd ...byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	io := IO{Command: true, B: append([]byte(nil), cmd...)}
	if err := c.fail(io); err != nil {
		return err
	}
	c.Ops = append(c.Ops, io)
	for _, b := range cmd {
		c.command(b)
	}
	return nil
}

// SendData implements sh1106.Bus.
func (c *Controller) SendData(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	io := IO{B: append([]byte(nil), data...)}
	if err := c.fail(io); err != nil {
		return err
	}
	c.Ops = append(c.Ops, io)
	for _, b := range data {
		// The column pointer stops at the end of RAM; it does not wrap.
		if c.column < Columns {
			c.ram[c.page][c.column] = b
			c.column++
		}
	}
	return nil
}

func (c *Controller) fail(io IO) error {
	if c.FailOn == nil {
		return nil
	}
	return c.FailOn(len(c.Ops), io)
}

func (c *Controller) command(b byte) {
	if c.pending != 0 {
		if c.pending == 0x81 {
			c.contrast = b
		}
		c.pending = 0
		return
	}
	if argCount[b] > 0 {
		c.pending = b
		return
	}
	switch {
	case b <= 0x0F:
		c.column = c.column&0xF0 | int(b)
	case b >= 0x10 && b <= 0x1F:
		c.column = int(b&0x0F)<<4 | c.column&0x0F
	case b >= 0xB0 && b <= 0xB7:
		c.page = int(b & 0x07)
	case b == 0xAE:
		c.on = false
	case b == 0xAF:
		c.on = true
	case b == 0xA6:
		c.inverted = false
	case b == 0xA7:
		c.inverted = true
	}
}

// Reset clears the recorded transfers without touching RAM.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Ops = nil
}

// Transfers returns a copy of the recorded transfers.
func (c *Controller) Transfers() []IO {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]IO(nil), c.Ops...)
}

// On reports whether the panel is switched on.
func (c *Controller) On() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.on
}

// Inverted reports whether the panel shows inverted colors.
func (c *Controller) Inverted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverted
}

// Contrast returns the last contrast written.
func (c *Controller) Contrast() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contrast
}

// Position returns the current page and column pointers.
func (c *Controller) Position() (page, column int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page, c.column
}

// RAM returns a copy of one RAM page over the full 132 columns.
func (c *Controller) RAM(page int) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.ram[page][:]...)
}

// Image returns the visible window of the RAM as an image, using the
// panel's height in pages.
func (c *Controller) Image(pages int) *image1bit.VerticalLSB {
	c.mu.Lock()
	defer c.mu.Unlock()
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, c.width, pages*8))
	for p := 0; p < pages; p++ {
		copy(img.Page(p), c.ram[p][c.offset:c.offset+c.width])
	}
	return img
}

func (c *Controller) String() string {
	return "sh1106test.Controller"
}

package sh1106

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/sh1106/gfx"
	"periph.io/x/devices/v3/sh1106/image1bit"
)

var (
	// ErrInvalidArgument reports a geometry or address the controller cannot
	// represent.
	ErrInvalidArgument = errors.New("sh1106: invalid argument")
	// ErrBusTransfer wraps every error returned by the underlying bus.
	ErrBusTransfer = errors.New("sh1106: bus transfer failed")

	errHalted = errors.New("sh1106: halted")
)

// FlushError reports the page whose transfer failed. Pages after it were not
// sent.
type FlushError struct {
	Page int
	Err  error
}

func (e *FlushError) Error() string {
	return fmt.Sprintf("sh1106: page %d: %v", e.Page, e.Err)
}

func (e *FlushError) Unwrap() error {
	return e.Err
}

// Controller RAM geometry.
const (
	ramColumns = 132
	ramPages   = 8
)

// DefaultAddr is the usual I²C address of SH1106 modules (SA0 low).
const DefaultAddr = 0x3C

// settleDelay is the time the charge pump needs before the panel is turned on.
const settleDelay = 100 * time.Millisecond

// Opts is the configuration for the SH1106 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 128, must be ≤132)
	H int // Height (default: 64, must be a multiple of 8 and ≤64)

	// I²C address, ignored on SPI (default: 0x3C)
	Addr uint16

	// 180° rotation done by the controller (segment remap and COM scan)
	Rotated bool

	// Optional hardware reset pin
	RST gpio.PinIO // Reset pin (optional, nil if not used)
}

// Dev is the device handle for the SH1106 display.
type Dev struct {
	bus Bus
	rst gpio.PinIO

	// Display geometry
	rect         image.Rectangle
	columnOffset int // For centering on the 132-column RAM

	// Lazily allocated frame for Draw
	next *image1bit.VerticalLSB

	halted bool
}

var _ display.Drawer = &Dev{}

// NewI2C creates a new SH1106 device connected via I²C.
//
// opts can be nil to use defaults (128x64 display at address 0x3C).
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	opts, err := withDefaults(opts)
	if err != nil {
		return nil, err
	}
	return newDev(NewI2CBus(&i2c.Dev{Bus: b, Addr: opts.Addr}), opts)
}

// NewSPI creates a new SH1106 device connected via 4-wire SPI.
//
// The SPI port is configured for 4MHz, Mode0 (CPOL=0, CPHA=0), 8-bit transfers.
// The dc (Data/Command) GPIO pin must be provided and configured as an output.
//
// opts can be nil to use defaults (128x64 display).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	opts, err := withDefaults(opts)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, fmt.Errorf("%w: SPI requires a D/C pin", ErrInvalidArgument)
	}
	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("sh1106: %w", err)
	}
	return newDev(NewSPIBus(c, dc), opts)
}

// New creates a new SH1106 device on an already established Bus.
func New(bus Bus, opts *Opts) (*Dev, error) {
	opts, err := withDefaults(opts)
	if err != nil {
		return nil, err
	}
	return newDev(bus, opts)
}

func withDefaults(opts *Opts) (*Opts, error) {
	o := Opts{W: 128, H: 64, Addr: DefaultAddr}
	if opts != nil {
		o = *opts
		if o.W == 0 && o.H == 0 {
			o.W, o.H = 128, 64
		}
		if o.Addr == 0 {
			o.Addr = DefaultAddr
		}
	}
	if o.W <= 0 || o.W > ramColumns {
		return nil, fmt.Errorf("%w: width %d must be between 1 and %d", ErrInvalidArgument, o.W, ramColumns)
	}
	if o.H <= 0 || o.H%8 != 0 || o.H > ramPages*8 {
		return nil, fmt.Errorf("%w: height %d must be a multiple of 8 between 8 and %d", ErrInvalidArgument, o.H, ramPages*8)
	}
	return &o, nil
}

func newDev(bus Bus, opts *Opts) (*Dev, error) {
	d := &Dev{
		bus:          bus,
		rst:          opts.RST,
		rect:         image.Rect(0, 0, opts.W, opts.H),
		columnOffset: (ramColumns - opts.W) / 2,
	}
	if err := d.init(opts); err != nil {
		return nil, err
	}
	return d, nil
}

// initSequence returns the register writes bringing the controller up, up to
// but excluding display on.
func initSequence(opts *Opts) []byte {
	// Segment remap and COM scan direction: the module is mounted mirrored,
	// so the native orientation uses the reversed variants.
	remap, scan := byte(0xA1), byte(0xC8)
	if opts.Rotated {
		remap, scan = 0xA0, 0xC0
	}
	mux := byte(opts.H - 1)
	return []byte{
		0xAE,       // Display OFF
		0xD5, 0x80, // Clock divide ratio and oscillator frequency
		0xA8, mux,  // Multiplex ratio
		0xD3, 0x00, // Display offset
		0x40,       // Start line 0
		0xAD, 0x8B, // DC-DC charge pump ON
		remap,      // Segment remap
		scan,       // COM output scan direction
		0xDA, 0x12, // COM pins hardware configuration
		0x81, 0xFF, // Contrast (max)
		0xD9, 0x1F, // Discharge / pre-charge period
		0xDB, 0x40, // VCOM deselect level
		0x33,       // Pump voltage 9V
		0xA6,       // Normal display mode
		0x20, 0x10, // Page addressing mode
		0xA4,       // Display follows RAM content
	}
}

// init sends the initialization sequence to the display.
func (d *Dev) init(opts *Opts) error {
	// Hardware reset sequence (if RST pin is provided)
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("sh1106: failed to pull RST low: %w", err)
		}
		time.Sleep(10 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("sh1106: failed to pull RST high: %w", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := d.bus.SendCommand(initSequence(opts)...); err != nil {
		return err
	}

	// Clear display RAM, including the columns outside the visible window
	if err := d.clearRAM(); err != nil {
		return err
	}

	time.Sleep(settleDelay)

	// Turn display ON
	return d.bus.SendCommand(0xAF)
}

// clearRAM zeroes every page over the full RAM width.
func (d *Dev) clearRAM() error {
	zeros := make([]byte, ramColumns)
	for p := 0; p < d.rect.Dy()/8; p++ {
		if err := d.writePage(p, 0, zeros); err != nil {
			return err
		}
	}
	return nil
}

// pageAddress returns the commands selecting page and column as the next
// RAM write position.
func pageAddress(page, column int) ([]byte, error) {
	if page < 0 || page >= ramPages {
		return nil, fmt.Errorf("%w: page %d out of range 0-%d", ErrInvalidArgument, page, ramPages-1)
	}
	if column < 0 || column >= ramColumns {
		return nil, fmt.Errorf("%w: column %d out of range 0-%d", ErrInvalidArgument, column, ramColumns-1)
	}
	return []byte{
		0xB0 | byte(page),        // Page address
		0x10 | byte(column>>4),   // Column address, high nibble
		0x00 | byte(column&0x0F), // Column address, low nibble
	}, nil
}

// writePage addresses page at column and streams data to it.
func (d *Dev) writePage(page, column int, data []byte) error {
	cmds, err := pageAddress(page, column)
	if err == nil {
		err = d.bus.SendCommand(cmds...)
	}
	if err == nil {
		err = d.bus.SendData(data)
	}
	if err != nil {
		return &FlushError{Page: page, Err: err}
	}
	return nil
}

// writeFrame writes every page of a framebuffer laid out as d.rect.Dx()
// bytes per page.
func (d *Dev) writeFrame(pix []byte) error {
	w := d.rect.Dx()
	for p := 0; p < d.rect.Dy()/8; p++ {
		if err := d.writePage(p, d.columnOffset, pix[p*w:(p+1)*w]); err != nil {
			return err
		}
	}
	return nil
}

// Flush transfers the framebuffer of c to the display, page by page.
//
// Every page is sent on every call. The first failing transfer aborts the
// flush and is returned as a *FlushError.
func (d *Dev) Flush(c *gfx.Context) error {
	if d.halted {
		return errHalted
	}
	if c.RawWidth() != d.rect.Dx() || c.RawHeight() != d.rect.Dy() {
		return fmt.Errorf("%w: context is %dx%d, display is %dx%d",
			ErrInvalidArgument, c.RawWidth(), c.RawHeight(), d.rect.Dx(), d.rect.Dy())
	}
	return d.writeFrame(c.Bytes())
}

// NewContext returns a blank gfx.Context matching the display geometry.
func (d *Dev) NewContext() *gfx.Context {
	c, err := gfx.New(d.rect.Dx(), d.rect.Dy())
	if err != nil {
		// Opts validation guarantees a geometry gfx accepts.
		panic(err)
	}
	return c
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes raw pixel data to the display in VerticalLSB format.
// The data must be exactly d.rect.Dx() * d.rect.Dy() / 8 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, errHalted
	}
	if len(pixels) != d.rect.Dx()*d.rect.Dy()/8 {
		return 0, errors.New("sh1106: invalid buffer size")
	}
	if err := d.writeFrame(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Draw draws an image onto the display.
// The dst rectangle specifies the destination region on the display.
// The src image is positioned at src point sp within the destination.
//
// Pixels outside dst keep the content of previous Draw calls.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}

	// Clip to display bounds
	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// Fast path: source already in controller layout at full size
	if img, ok := src.(*image1bit.VerticalLSB); ok {
		if dst == d.rect && sp == (image.Point{}) && img.Rect == d.rect {
			return d.writeFrame(img.Pix)
		}
	}

	if d.next == nil {
		d.next = image1bit.NewVerticalLSB(d.rect)
	}
	draw.Draw(d.next, dst, src, sp, draw.Src)
	return d.writeFrame(d.next.Pix)
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if d.halted {
		return errHalted
	}
	return d.bus.SendCommand(0x81, contrast)
}

// Invert inverts the display colors (lit pixels become dark and vice versa).
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errHalted
	}
	mode := byte(0xA6) // Normal display
	if invert {
		mode = 0xA7 // Inverted display
	}
	return d.bus.SendCommand(mode)
}

// Halt powers off the display.
// After calling Halt, the display will not respond to further commands
// until the device is re-initialized.
func (d *Dev) Halt() error {
	d.halted = true
	return d.bus.SendCommand(0xAE) // Display OFF
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("sh1106.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

package sh1106

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// Bus transfers command and data bytes to the controller.
//
// Each call is one complete transfer: it either succeeds as a whole or
// returns an error.
type Bus interface {
	SendCommand(cmd ...byte) error
	SendData(data []byte) error
}

// I²C control bytes preceding a transfer: the D/C# bit (0x40) selects data.
const (
	i2cCommand = 0x00
	i2cData    = 0x40
)

// i2cBus sends each transfer as one I²C write prefixed by a control byte.
type i2cBus struct {
	c   conn.Conn
	buf []byte
}

// NewI2CBus returns a Bus over an I²C connection to the controller, usually
// an *i2c.Dev.
func NewI2CBus(c conn.Conn) Bus {
	return &i2cBus{c: c}
}

func (b *i2cBus) SendCommand(cmd ...byte) error {
	return b.write(i2cCommand, cmd)
}

func (b *i2cBus) SendData(data []byte) error {
	return b.write(i2cData, data)
}

func (b *i2cBus) write(control byte, p []byte) error {
	b.buf = append(b.buf[:0], control)
	b.buf = append(b.buf, p...)
	if err := b.c.Tx(b.buf, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrBusTransfer, err)
	}
	return nil
}

func (b *i2cBus) String() string {
	return b.c.String()
}

// spiBus selects command or data with the D/C pin before each transfer.
type spiBus struct {
	c  conn.Conn
	dc gpio.PinOut
}

// NewSPIBus returns a Bus over a 4-wire SPI connection, dc being the
// Data/Command pin.
func NewSPIBus(c conn.Conn, dc gpio.PinOut) Bus {
	return &spiBus{c: c, dc: dc}
}

// SendCommand sends a slice of command bytes.
func (b *spiBus) SendCommand(cmd ...byte) error {
	return b.tx(gpio.Low, cmd)
}

// SendData sends a slice of data bytes.
func (b *spiBus) SendData(data []byte) error {
	return b.tx(gpio.High, data)
}

func (b *spiBus) tx(dc gpio.Level, p []byte) error {
	if err := b.dc.Out(dc); err != nil {
		return fmt.Errorf("%w: D/C pin: %w", ErrBusTransfer, err)
	}
	if err := b.c.Tx(p, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrBusTransfer, err)
	}
	return nil
}

func (b *spiBus) String() string {
	return b.c.String()
}

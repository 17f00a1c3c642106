// Package sh1106 controls a SH1106 monochrome OLED display via I²C or SPI.
//
// The SH1106 is a 1-bit OLED controller with a 132x64 pixel RAM organized in
// 8 pages of 8 rows. Each RAM byte holds a vertical strip of 8 pixels, least
// significant bit on top. The popular 1.3" 128x64 modules show the middle 128
// columns, so the driver writes every page at column 2.
//
// This driver implements the display.Drawer interface from periph.io and
// flushes frames rendered by the gfx package.
//
// # Hardware Connection
//
// Most modules are wired for I²C:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → I²C clock (SCL)
//	SDA         → I²C data (SDA)
//
// SPI modules additionally need a Data/Command pin and optionally a reset pin:
//
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select (or GND if always selected)
//	RES         → Optional: GPIO for hardware reset
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/i2c/i2creg"
//		"periph.io/x/devices/v3/sh1106"
//		"periph.io/x/devices/v3/sh1106/image1bit"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		bus, _ := i2creg.Open("")
//		defer bus.Close()
//
//		dev, _ := sh1106.NewI2C(bus, nil) // 128x64 at 0x3C
//		defer dev.Halt()
//
//		ctx := dev.NewContext()
//		ctx.DrawRect(0, 0, 128, 64, image1bit.On)
//		ctx.WriteString("Hello", 4, 4)
//
//		dev.Flush(ctx)
//	}
//
// # Flushing
//
// Flush sends every page of a gfx.Context on every call, there is no dirty
// tracking. A failed transfer aborts the flush; the returned *FlushError names
// the page that failed and wraps ErrBusTransfer:
//
//	var fe *sh1106.FlushError
//	if errors.As(err, &fe) {
//		log.Printf("page %d lost", fe.Page)
//	}
//
// Raw frames in page layout can be sent with Write, and any image.Image with
// Draw.
//
// # TinyGo Renderers
//
// Displayer adapts a Context to the tinygo.org/x/drivers Displayer interface,
// so tinyfont and similar libraries can draw into it:
//
//	tinyfont.WriteLine(dev.Displayer(ctx), &tinyfont.Picopixel, 0, 10, "hi", color.RGBA{255, 255, 255, 255})
//
// # Testing
//
// Package sh1106test provides an in-memory controller implementing Bus, so
// code using this driver can be tested without hardware.
//
// # Datasheet
//
// https://www.velleman.eu/downloads/29/infosheets/sh1106_datasheet.pdf
package sh1106

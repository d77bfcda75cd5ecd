/*
Copyright 2024 Tim St. Pierre
Controls a 1602 character LCD display in 4-bit mode, either wired directly
to GPIO pins or through a PCF8574 I2C backpack
Thanks to Dave Cheney for figuring out the registers!
*/
package lcd1602

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
)

const (
	// Commands
	CMD_Clear_Display   = 0x01
	CMD_Return_Home     = 0x02
	CMD_Entry_Mode      = 0x04
	CMD_Display_Control = 0x08
	CMD_Function_Set    = 0x20
	CMD_DDRAM_Set       = 0x80

	// Options
	OPT_Increment      = 0x02 // CMD_Entry_Mode
	OPT_Enable_Display = 0x04 // CMD_Display_Control
	OPT_Enable_Cursor  = 0x02 // CMD_Display_Control
	OPT_Enable_Blink   = 0x01 // CMD_Display_Control
	OPT_2_Lines        = 0x08 // CMD_Function_Set 0 = 1 line

	// Wake-up bytes; each is sent as two nibbles, giving 3, 3, 3 then 2
	// which leaves the controller in 4-bit mode whatever state it was in.
	cmdWake8Bit = 0x33
	cmdWake4Bit = 0x32

	// Clear and return home run for up to 1.52 ms inside the controller.
	slowCommandDelay = 2 * time.Millisecond
)

// nibbleBus moves four bits at a time to the controller and strobes the
// enable line.
type nibbleBus interface {
	writeNibble(n byte, data bool) error
	setBacklight(on bool) error
	String() string
}

type Dev struct {
	bus           nibbleBus
	displayEnable bool
	cursor        bool
	blink         bool
	opts          Opts
}

func (d *Dev) String() string {
	return fmt.Sprintf("lcd1602{%s}", d.bus)
}

// NewI2C returns a new device that communicates over I²C
//
// Use default options if nil is used.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	addr, err := opts.i2cAddr()
	if err != nil {
		return nil, fmt.Errorf("lcd1602 %x: %w", opts.I2CAddr, err)
	}
	return makeDev(&i2cBus{dev: &i2c.Dev{Bus: b, Addr: addr}, backlight: true}, opts)
}

// NewGPIO returns a new device wired directly to six GPIO pins.
//
// Use default options if nil is used.
func NewGPIO(p Pins, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if err := p.check(); err != nil {
		return nil, err
	}
	return makeDev(&gpioBus{pins: p, pulse: opts.PulseDelay}, opts)
}

func makeDev(bus nibbleBus, opts *Opts) (*Dev, error) {
	d := &Dev{
		bus:    bus,
		cursor: opts.Cursor,
		blink:  opts.Blink,
		opts:   *opts,
	}
	if err := d.init(); err != nil {
		return nil, fmt.Errorf("lcd1602: init %s: %w", bus, err)
	}
	log.Infof("lcd1602: initialised %s", bus)
	return d, nil
}

func (d *Dev) init() error {
	if err := d.Command(cmdWake8Bit); err != nil {
		return err
	}
	time.Sleep(5 * time.Millisecond)
	if err := d.Command(cmdWake4Bit); err != nil {
		return err
	}
	if err := d.Command(CMD_Function_Set | OPT_2_Lines); err != nil {
		return err
	}
	// Display, cursor and blink all off while clearing.
	if err := d.Command(CMD_Display_Control); err != nil {
		return err
	}
	if err := d.Clear(); err != nil {
		return err
	}
	if err := d.writeEntryMode(); err != nil {
		return err
	}
	d.displayEnable = true
	return d.writeDisplaySwitch()
}

// Halt clears the screen and leaves the display on with the cursor hidden.
// The backlight is turned off on backpacks.
func (d *Dev) Halt() error {
	if err := d.Clear(); err != nil {
		return err
	}
	d.cursor = false
	d.blink = false
	if err := d.writeDisplaySwitch(); err != nil {
		return err
	}
	return d.SetBacklight(false)
}

func (d *Dev) SetBacklight(on bool) error {
	return d.bus.setBacklight(on)
}

func (d *Dev) Clear() error {
	return d.slowCommand(CMD_Clear_Display)
}

func (d *Dev) Home() error {
	return d.slowCommand(CMD_Return_Home)
}

// slowCommand sends b and waits for the controller to finish it before
// anything else goes out.
func (d *Dev) slowCommand(b byte) error {
	if err := d.Command(b); err != nil {
		return err
	}
	time.Sleep(slowCommandDelay)
	return nil
}

// SetCursor shows or hides the underline cursor and the blinking block.
func (d *Dev) SetCursor(cursor, blink bool) error {
	d.cursor = cursor
	d.blink = blink
	return d.writeDisplaySwitch()
}

// SetPosition moves the cursor to pos (0 based) on line (1 based).
func (d *Dev) SetPosition(line, pos byte) error {
	if line < 1 || line > d.opts.Lines {
		return fmt.Errorf("lcd1602: device does not support line %d", line)
	}
	if pos >= d.opts.Cols {
		return fmt.Errorf("lcd1602: device does not support col %d", pos)
	}
	var address byte
	switch line {
	case 1:
		address = pos
	case 2:
		address = 0x40 + pos
	case 3:
		address = 0x14 + pos
	case 4:
		address = 0x54 + pos
	}
	return d.Command(CMD_DDRAM_Set + address)
}

func (d *Dev) Write(buf []byte) (int, error) {
	for i, c := range buf {
		if err := d.WriteData(c); err != nil {
			return i, err
		}
		time.Sleep(d.opts.CharDelay)
	}
	return len(buf), nil
}

// Command sends an instruction byte (RS low).
func (d *Dev) Command(b byte) error {
	return d.write(b, false)
}

// WriteData sends a character byte (RS high) at the current address.
func (d *Dev) WriteData(b byte) error {
	return d.write(b, true)
}

func (d *Dev) writeDisplaySwitch() error {
	option := byte(CMD_Display_Control)
	if d.displayEnable {
		option = option | OPT_Enable_Display
	}
	if d.cursor {
		option = option | OPT_Enable_Cursor
	}
	if d.blink {
		option = option | OPT_Enable_Blink
	}
	log.Debugf("lcd1602: display switch %#02x", option)
	return d.Command(option)
}

// writeEntryMode sets left-to-right entry without shifting the display, so
// the address counter is the only thing that moves as characters are written.
func (d *Dev) writeEntryMode() error {
	return d.Command(CMD_Entry_Mode | OPT_Increment)
}

func (d *Dev) write(b byte, data bool) error {
	log.Tracef("lcd1602: writing %08b %#02x data=%t", b, b, data)
	if err := d.bus.writeNibble(b>>4, data); err != nil {
		return err
	}
	return d.bus.writeNibble(b&0x0F, data)
}

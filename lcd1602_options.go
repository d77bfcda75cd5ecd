/*
Copyright 2024 Tim St. Pierre
Options for lcd1602 character display
*/
package lcd1602

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

var (
	ErrUnsupportedAddress = errors.New("given address not supported by device")
	ErrPinMissing         = errors.New("gpio pin not found")
)

type Opts struct {
	// The I²C slave address of the PCF8574 backpack
	I2CAddr uint16
	// How many lines does the display have
	Lines     uint8
	Cols      uint8
	CharDelay time.Duration
	// Settle time around each enable pulse on direct GPIO wiring
	PulseDelay time.Duration

	// Pin names for direct 4-bit wiring, resolved through gpioreg.
	RSPin    string
	EPin     string
	DataPins [4]string // D4, D5, D6, D7

	// Cursor underline and blinking block after Init
	Cursor bool
	Blink  bool
}

var DefaultOpts = Opts{
	I2CAddr:    0x27,
	Lines:      2,
	Cols:       16,
	CharDelay:  1 * time.Millisecond,
	PulseDelay: 500 * time.Microsecond,
	RSPin:      "GPIO18",
	EPin:       "GPIO23",
	DataPins:   [4]string{"GPIO12", "GPIO16", "GPIO20", "GPIO21"},
	Cursor:     false,
	Blink:      true,
}

func (o *Opts) i2cAddr() (uint16, error) {
	switch o.I2CAddr {
	case 0:
		// Default address.
		return 0x27, nil
	case 0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27:
		return o.I2CAddr, nil
	default:
		return 0, ErrUnsupportedAddress
	}
}

// Pins looks up the named GPIO pins. host.Init must have been called.
func (o *Opts) Pins() (Pins, error) {
	var p Pins
	var err error
	if p.RS, err = pinByName(o.RSPin); err != nil {
		return p, err
	}
	if p.E, err = pinByName(o.EPin); err != nil {
		return p, err
	}
	for i, name := range o.DataPins {
		if p.Data[i], err = pinByName(name); err != nil {
			return p, err
		}
	}
	return p, nil
}

func pinByName(name string) (gpio.PinOut, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("lcd1602: %q: %w", name, ErrPinMissing)
	}
	return p, nil
}

/*
Copyright 2024 Tim St. Pierre
Direct GPIO wiring of an HD44780 in 4-bit mode
*/
package lcd1602

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Pins is the direct wiring of the display. R/W must be tied to ground.
type Pins struct {
	RS   gpio.PinOut
	E    gpio.PinOut
	Data [4]gpio.PinOut // D4, D5, D6, D7
}

func (p Pins) check() error {
	if p.RS == nil {
		return fmt.Errorf("lcd1602: RS: %w", ErrPinMissing)
	}
	if p.E == nil {
		return fmt.Errorf("lcd1602: E: %w", ErrPinMissing)
	}
	for i, d := range p.Data {
		if d == nil {
			return fmt.Errorf("lcd1602: D%d: %w", i+4, ErrPinMissing)
		}
	}
	return nil
}

type gpioBus struct {
	pins  Pins
	pulse time.Duration
}

func (b *gpioBus) String() string {
	return fmt.Sprintf("gpio rs=%s e=%s", b.pins.RS, b.pins.E)
}

func (b *gpioBus) writeNibble(n byte, data bool) error {
	if err := b.pins.RS.Out(gpio.Level(data)); err != nil {
		return err
	}
	for i, p := range b.pins.Data {
		if err := p.Out(gpio.Level((n>>uint(i))&0x01 == 0x01)); err != nil {
			return err
		}
	}
	return b.pulseEnable()
}

// pulseEnable latches the data lines on the falling edge of E.
func (b *gpioBus) pulseEnable() error {
	time.Sleep(b.pulse)
	if err := b.pins.E.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(b.pulse)
	if err := b.pins.E.Out(gpio.Low); err != nil {
		return err
	}
	time.Sleep(b.pulse)
	return nil
}

// setBacklight is a no-op; the backlight is wired straight to the supply.
func (b *gpioBus) setBacklight(bool) error {
	return nil
}

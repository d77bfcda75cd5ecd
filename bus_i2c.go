/*
Copyright 2024 Tim St. Pierre
PCF8574 I2C backpack wiring of an HD44780
*/
package lcd1602

import (
	"time"

	"periph.io/x/conn/v3/i2c"
)

const (
	// Backpack expander bits
	EN        = 2
	WR        = 1
	RS        = 0
	D4        = 4
	D5        = 5
	D6        = 6
	D7        = 7
	BACKLIGHT = 3

	backpackPulse = 40 * time.Microsecond
)

type i2cBus struct {
	dev       *i2c.Dev
	backlight bool
}

func (b *i2cBus) String() string {
	return b.dev.String()
}

func (b *i2cBus) writeNibble(n byte, data bool) error {
	var i2c_data byte
	i2c_data = pinInterpret(D4, i2c_data, n&0x01 == 0x01)
	i2c_data = pinInterpret(D5, i2c_data, (n>>1)&0x01 == 0x01)
	i2c_data = pinInterpret(D6, i2c_data, (n>>2)&0x01 == 0x01)
	i2c_data = pinInterpret(D7, i2c_data, (n>>3)&0x01 == 0x01)

	// Set the register selector to 1 if this is data
	i2c_data = pinInterpret(RS, i2c_data, data)
	return b.enable(i2c_data)
}

func (b *i2cBus) setBacklight(on bool) error {
	b.backlight = on
	return b.send(pinInterpret(BACKLIGHT, 0x00, on))
}

// enable strobes EN with data on the expander, keeping the backlight bit as
// it is.
func (b *i2cBus) enable(data byte) error {
	data = pinInterpret(BACKLIGHT, data, b.backlight)
	if err := b.send(data); err != nil {
		return err
	}
	time.Sleep(backpackPulse)
	if err := b.send(pinInterpret(EN, data, true)); err != nil {
		return err
	}
	time.Sleep(backpackPulse)
	return b.send(data)
}

// send writes the whole expander port. The PCF8574 has no registers, so the
// byte goes out on its own.
func (b *i2cBus) send(v byte) error {
	_, err := b.dev.Write([]byte{v})
	return err
}

// pinInterpret sets or clears bit pin of data.
func pinInterpret(pin, data byte, value bool) byte {
	mask := byte(0x01) << pin
	if value {
		return data | mask
	}
	return data &^ mask
}

/*
Copyright 2024 Tim St. Pierre
Multiplexed 4-digit common-cathode 7-segment display on GPIO pins

Segment pins are driven high to light a segment; a digit is selected by
pulling its cathode pin low. Only one digit is lit at a time, so the display
has to be refreshed continuously.
*/
package sevenseg

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

const (
	NumDigits   = 4
	NumSegments = 7

	DefaultDwell = 1 * time.Millisecond
)

var (
	ErrDigit      = errors.New("no segment pattern for character")
	ErrPinMissing = errors.New("gpio pin not found")
)

// Segment patterns in the order of Pins.Segments.
var font = map[byte][NumSegments]bool{
	' ': {false, false, false, false, false, false, false},
	'0': {true, true, true, false, true, true, true},
	'1': {false, false, true, false, true, false, false},
	'2': {true, true, false, true, true, false, true},
	'3': {false, true, true, true, true, false, true},
	'4': {false, false, true, true, true, true, false},
	'5': {false, true, true, true, false, true, true},
	'6': {true, true, true, true, false, true, true},
	'7': {false, false, true, false, true, false, true},
	'8': {true, true, true, true, true, true, true},
	'9': {false, false, true, true, true, true, true},
}

type Pins struct {
	Segments [NumSegments]gpio.PinOut
	DP       gpio.PinOut
	Digits   [NumDigits]gpio.PinOut
}

// PinNames names the pins for gpioreg.
type PinNames struct {
	Segments [NumSegments]string
	DP       string
	Digits   [NumDigits]string
}

var DefaultPinNames = PinNames{
	Segments: [NumSegments]string{"GPIO21", "GPIO20", "GPIO12", "GPIO25", "GPIO22", "GPIO13", "GPIO19"},
	DP:       "GPIO16",
	Digits:   [NumDigits]string{"GPIO26", "GPIO6", "GPIO5", "GPIO18"},
}

// Pins resolves the names. host.Init must have been called.
func (n PinNames) Pins() (Pins, error) {
	var p Pins
	var err error
	for i, name := range n.Segments {
		if p.Segments[i], err = byName(name); err != nil {
			return p, err
		}
	}
	if p.DP, err = byName(n.DP); err != nil {
		return p, err
	}
	for i, name := range n.Digits {
		if p.Digits[i], err = byName(name); err != nil {
			return p, err
		}
	}
	return p, nil
}

func byName(name string) (gpio.PinOut, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("sevenseg: %q: %w", name, ErrPinMissing)
	}
	return p, nil
}

// Glyph is one digit position: a character from the font and its decimal
// point.
type Glyph struct {
	Char byte
	Dot  bool
}

type Frame [NumDigits]Glyph

func (f Frame) String() string {
	var b []byte
	for _, g := range f {
		b = append(b, g.Char)
		if g.Dot {
			b = append(b, '.')
		}
	}
	return string(b)
}

// ClockFrame renders t as a 12-hour clock. The point after the second digit
// stands in for the colon and the point after the last digit marks PM.
func ClockFrame(t time.Time) Frame {
	hours := t.Hour()
	pm := hours >= 12
	hours %= 12
	minutes := t.Minute()
	return Frame{
		{Char: byte('0' + hours/10)},
		{Char: byte('0' + hours%10), Dot: true},
		{Char: byte('0' + minutes/10)},
		{Char: byte('0' + minutes%10), Dot: pm},
	}
}

type Display struct {
	pins  Pins
	dwell time.Duration
}

// New takes the pins and turns every digit off. dwell is how long each
// digit stays lit per refresh.
func New(p Pins, dwell time.Duration) (*Display, error) {
	for i, s := range p.Segments {
		if s == nil {
			return nil, fmt.Errorf("sevenseg: segment %d: %w", i, ErrPinMissing)
		}
	}
	if p.DP == nil {
		return nil, fmt.Errorf("sevenseg: decimal point: %w", ErrPinMissing)
	}
	for i, dg := range p.Digits {
		if dg == nil {
			return nil, fmt.Errorf("sevenseg: digit %d: %w", i, ErrPinMissing)
		}
	}
	d := &Display{pins: p, dwell: dwell}
	if err := d.Blank(); err != nil {
		return nil, err
	}
	return d, nil
}

// Blank drives all segments low and all digits high.
func (d *Display) Blank() error {
	for _, s := range d.pins.Segments {
		if err := s.Out(gpio.Low); err != nil {
			return err
		}
	}
	if err := d.pins.DP.Out(gpio.Low); err != nil {
		return err
	}
	for _, dg := range d.pins.Digits {
		if err := dg.Out(gpio.High); err != nil {
			return err
		}
	}
	return nil
}

// Show lights each digit of f once, in order, for the dwell time.
func (d *Display) Show(f Frame) error {
	for i, g := range f {
		pattern, ok := font[g.Char]
		if !ok {
			return fmt.Errorf("sevenseg: %q: %w", g.Char, ErrDigit)
		}
		if err := d.lightDigit(i, pattern, g.Dot); err != nil {
			return fmt.Errorf("sevenseg: digit %d: %w", i, err)
		}
	}
	return nil
}

func (d *Display) lightDigit(i int, pattern [NumSegments]bool, dot bool) error {
	for s, on := range pattern {
		if err := d.pins.Segments[s].Out(gpio.Level(on)); err != nil {
			return err
		}
	}
	if dot {
		if err := d.pins.DP.Out(gpio.High); err != nil {
			return err
		}
	}
	digit := d.pins.Digits[i]
	if err := digit.Out(gpio.Low); err != nil {
		return err
	}
	time.Sleep(d.dwell)
	if err := digit.Out(gpio.High); err != nil {
		return err
	}
	if dot {
		return d.pins.DP.Out(gpio.Low)
	}
	return nil
}

// Run refreshes the display with the time from now until ctx is done, then
// blanks it.
func (d *Display) Run(ctx context.Context, now func() time.Time) error {
	var last Frame
	for ctx.Err() == nil {
		f := ClockFrame(now())
		if f != last {
			log.Debugf("sevenseg: showing %s", f)
			last = f
		}
		if err := d.Show(f); err != nil {
			_ = d.Blank()
			return err
		}
	}
	if err := d.Blank(); err != nil {
		return err
	}
	return ctx.Err()
}

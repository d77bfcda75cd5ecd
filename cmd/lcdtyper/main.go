/*
Copyright 2024 Tim St. Pierre
Command lcdtyper turns a 16x2 character LCD into a small typing surface
driven from the keyboard of the controlling terminal.

Printable keys are written at the cursor; arrows, Home, End, Backspace and
Delete move and erase. Ctrl-C or Ctrl-D clears the display and exits.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	lcd1602 "github.com/tstpierre-tc/lcdtyper"
	"github.com/tstpierre-tc/lcdtyper/internal/cli"
	"github.com/tstpierre-tc/lcdtyper/keys"
	"github.com/tstpierre-tc/lcdtyper/typer"
)

func main() {
	cmd, _, err := newRootCmd()
	if err != nil {
		log.Fatal(err)
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, *viper.Viper, error) {
	cmd := &cobra.Command{
		Use:          "lcdtyper",
		Short:        "Type onto a 16x2 character LCD",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
	}

	def := lcd1602.DefaultOpts
	f := cmd.Flags()
	f.String("bus", "gpio", "display wiring: gpio (direct 4-bit) or i2c (PCF8574 backpack)")
	f.String("i2c-bus", "", "I²C bus name, empty for the first one found")
	f.Uint16("i2c-addr", def.I2CAddr, "backpack I²C address")
	f.String("rs", def.RSPin, "register select pin")
	f.String("e", def.EPin, "enable pin")
	f.String("d4", def.DataPins[0], "data pin D4")
	f.String("d5", def.DataPins[1], "data pin D5")
	f.String("d6", def.DataPins[2], "data pin D6")
	f.String("d7", def.DataPins[3], "data pin D7")
	f.Duration("pulse", def.PulseDelay, "settle time around each enable pulse")
	f.Bool("cursor", def.Cursor, "show the underline cursor")
	f.Bool("blink", def.Blink, "show the blinking block cursor")
	v, err := cli.Bind(cmd, "lcdtyper")
	if err != nil {
		return nil, nil, err
	}

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if err := cli.Load(v); err != nil {
			return err
		}
		return run(cmd.Context(), v)
	}
	return cmd, v, nil
}

// optsFrom builds the display options from flags, environment and config.
func optsFrom(v *viper.Viper) lcd1602.Opts {
	o := lcd1602.DefaultOpts
	o.I2CAddr = v.GetUint16("i2c-addr")
	o.RSPin = v.GetString("rs")
	o.EPin = v.GetString("e")
	o.DataPins = [4]string{v.GetString("d4"), v.GetString("d5"), v.GetString("d6"), v.GetString("d7")}
	o.PulseDelay = v.GetDuration("pulse")
	o.Cursor = v.GetBool("cursor")
	o.Blink = v.GetBool("blink")
	return o
}

func run(ctx context.Context, v *viper.Viper) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph: %w", err)
	}
	opts := optsFrom(v)
	dev, closer, err := openDisplay(v.GetString("bus"), v.GetString("i2c-bus"), &opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := dev.Halt(); err != nil {
			log.WithError(err).Warn("halting display")
		}
		if closer != nil {
			_ = closer.Close()
		}
	}()

	tty, err := keys.OpenTerminal(os.Stdin)
	if err != nil {
		return err
	}
	defer tty.Close()

	log.WithFields(log.Fields{"display": dev.String()}).Info("ready, Ctrl-C or Ctrl-D to quit")
	pos, err := typer.Run(ctx, tty, dev)
	log.WithField("cursor", pos).Info("stopped")
	return err
}

// openDisplay initialises the display on the chosen wiring. The returned
// closer is the I²C bus, nil for direct GPIO.
func openDisplay(bus, i2cBus string, opts *lcd1602.Opts) (*lcd1602.Dev, io.Closer, error) {
	switch bus {
	case "gpio":
		pins, err := opts.Pins()
		if err != nil {
			return nil, nil, err
		}
		dev, err := lcd1602.NewGPIO(pins, opts)
		return dev, nil, err
	case "i2c":
		b, err := i2creg.Open(i2cBus)
		if err != nil {
			return nil, nil, fmt.Errorf("opening I²C bus %q: %w", i2cBus, err)
		}
		dev, err := lcd1602.NewI2C(b, opts)
		if err != nil {
			_ = b.Close()
			return nil, nil, err
		}
		return dev, b, nil
	}
	return nil, nil, fmt.Errorf("unknown bus %q, want gpio or i2c", bus)
}

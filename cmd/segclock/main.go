/*
Copyright 2024 Tim St. Pierre
Command segclock shows the local time on a 4-digit 7-segment display
until interrupted.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"periph.io/x/host/v3"

	"github.com/tstpierre-tc/lcdtyper/internal/cli"
	"github.com/tstpierre-tc/lcdtyper/sevenseg"
)

func main() {
	cmd, _, err := newRootCmd()
	if err != nil {
		log.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, *viper.Viper, error) {
	cmd := &cobra.Command{
		Use:          "segclock",
		Short:        "Show a 12-hour clock on a 4-digit 7-segment display",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
	}

	def := sevenseg.DefaultPinNames
	f := cmd.Flags()
	f.StringSlice("segments", def.Segments[:], "segment pins a..g in display order")
	f.String("dp", def.DP, "decimal point pin")
	f.StringSlice("digits", def.Digits[:], "digit select pins, left to right")
	f.Duration("dwell", sevenseg.DefaultDwell, "time each digit stays lit per refresh")
	v, err := cli.Bind(cmd, "segclock")
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

// pinList reads a list of pin names. Values from the environment or a config
// string arrive whitespace split, so comma separated entries are split again.
func pinList(v *viper.Viper, key string) []string {
	var out []string
	for _, s := range v.GetStringSlice(key) {
		for _, name := range strings.Split(s, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

func pinNamesFrom(v *viper.Viper) (sevenseg.PinNames, error) {
	var n sevenseg.PinNames
	segments := pinList(v, "segments")
	if len(segments) != sevenseg.NumSegments {
		return n, fmt.Errorf("want %d segment pins, got %d", sevenseg.NumSegments, len(segments))
	}
	digits := pinList(v, "digits")
	if len(digits) != sevenseg.NumDigits {
		return n, fmt.Errorf("want %d digit pins, got %d", sevenseg.NumDigits, len(digits))
	}
	copy(n.Segments[:], segments)
	copy(n.Digits[:], digits)
	n.DP = v.GetString("dp")
	return n, nil
}

func run(ctx context.Context, v *viper.Viper) error {
	names, err := pinNamesFrom(v)
	if err != nil {
		return err
	}
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph: %w", err)
	}
	pins, err := names.Pins()
	if err != nil {
		return err
	}
	d, err := sevenseg.New(pins, v.GetDuration("dwell"))
	if err != nil {
		return err
	}

	log.WithField("digits", names.Digits).Info("clock running")
	err = d.Run(ctx, time.Now)
	if errors.Is(err, context.Canceled) {
		log.Info("clock stopped")
		return nil
	}
	return err
}

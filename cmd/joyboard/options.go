//go:build !baremetal

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/aykevl/joyboard"
	"github.com/aykevl/joyboard/control"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

type options struct {
	profile string
	verbose bool
}

func parseOptions(args []string) (options, error) {
	opts := options{profile: control.DefaultProfile}
	flags := pflag.NewFlagSet("joyboard", pflag.ContinueOnError)
	flags.StringVarP(&opts.profile, "profile", "p", opts.profile,
		fmt.Sprintf("behavior profile (%s)", strings.Join(control.ProfileNames(), ", ")))
	flags.BoolVarP(&opts.verbose, "verbose", "v", opts.verbose, "verbose logging")
	flags.StringVar(&joyboard.Simulator.WindowTitle, "title", joyboard.Simulator.WindowTitle, "simulator window title")
	flags.IntVar(&joyboard.Simulator.WindowScale, "scale", joyboard.Simulator.WindowScale, "screen pixels per display pixel")
	flags.DurationVar(&joyboard.Simulator.WindowDrawSpeed, "draw-speed", joyboard.Simulator.WindowDrawSpeed,
		"time to send one pixel to the simulated display, e.g. 2.5us for a 400kHz I2C bus")
	err := flags.Parse(args)
	return opts, err
}

func newLogger(opts options) *slog.Logger {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}

// The loop stops on Ctrl-C. Closing the simulator window exits the process
// directly.
func newContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

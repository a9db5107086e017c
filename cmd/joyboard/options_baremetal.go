//go:build baremetal

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aykevl/joyboard/control"
)

// Profile and log level can be changed at build time, for example:
//
//	tinygo flash -target=pico -ldflags="-X main.profile=classic" ./cmd/joyboard
var (
	profile = control.DefaultProfile
	verbose = "false"
)

type options struct {
	profile string
	verbose bool
}

// There is no command line on the board, args is ignored.
func parseOptions(args []string) (options, error) {
	return options{
		profile: profile,
		verbose: verbose == "true",
	}, nil
}

// Logs go to the serial console (USB CDC on the Pico).
func newLogger(opts options) *slog.Logger {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// Firmware runs until power-off.
func newContext() (context.Context, context.CancelFunc) {
	return context.Background(), func() {}
}

// Command joyboard moves a marker over a small OLED with an analog joystick,
// and lights the RGB LED according to how far the stick is pushed.
//
// Build it for the BitDogLab board with TinyGo:
//
//	tinygo flash -target=pico ./cmd/joyboard
//
// Or run it in the simulator on a desktop:
//
//	go run ./cmd/joyboard --profile=classic
package main

import (
	"os"

	"github.com/aykevl/joyboard"
	"github.com/aykevl/joyboard/control"
	"github.com/aykevl/joyboard/pipeline"
)

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	logger := newLogger(opts)

	cfg, err := control.Lookup(opts.profile)
	if err != nil {
		logger.Error("invalid profile, using the default", "err", err)
		cfg, _ = control.Lookup(control.DefaultProfile)
	}
	logger.Info("starting",
		"board", joyboard.Name,
		"profile", cfg.Name,
		"deadzone", cfg.Deadzone,
		"debounce", cfg.Debounce,
		"action", cfg.Action)

	joyboard.Joystick.Configure()
	joyboard.Buttons.Configure()
	if err := joyboard.LEDs.Configure(); err != nil {
		logger.Warn("could not configure LEDs", "err", err)
	}
	display, err := joyboard.Display.Configure()
	if err != nil {
		logger.Warn("could not configure display", "err", err)
	}
	if display == nil {
		logger.Error("no display available")
		return
	}
	width, height := display.Size()
	logger.Debug("display ready", "width", width, "height", height, "ppi", joyboard.Display.PPI())

	presses := boardPresses{source: joyboard.Buttons}
	p := pipeline.New(&cfg, joyboard.Joystick, presses, joyboard.LEDs, display, logger)

	ctx, cancel := newContext()
	defer cancel()
	p.Run(ctx)
	logger.Info("stopped", "dropped", joyboard.Buttons.Dropped())
}

// Recorded presses, as provided by joyboard.Buttons.
type pressSource interface {
	NextPress() (joyboard.ButtonPress, bool)
}

// Adapter from board button presses to interaction state machine presses.
// Keys without a matching button are skipped.
type boardPresses struct {
	source pressSource
}

func (b boardPresses) NextPress() (pipeline.Press, bool) {
	for {
		p, ok := b.source.NextPress()
		if !ok {
			return pipeline.Press{}, false
		}
		switch p.Key {
		case joyboard.KeyA:
			return pipeline.Press{Button: control.ButtonA, Time: p.Time}, true
		case joyboard.KeyJoystick:
			return pipeline.Press{Button: control.ButtonJoystick, Time: p.Time}, true
		}
	}
}

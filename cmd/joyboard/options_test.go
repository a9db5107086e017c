//go:build !baremetal

package main

import (
	"testing"
	"time"

	"github.com/aykevl/joyboard"
	"github.com/aykevl/joyboard/control"
)

func TestParseOptions(t *testing.T) {
	saved := joyboard.Simulator
	defer func() { joyboard.Simulator = saved }()

	opts, err := parseOptions(nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.profile != control.DefaultProfile || opts.verbose {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if joyboard.Simulator.WindowDrawSpeed != 0 {
		t.Errorf("expected no draw delay by default, got %s", joyboard.Simulator.WindowDrawSpeed)
	}

	opts, err = parseOptions([]string{"-p", "classic", "-v", "--scale=2", "--draw-speed=2.5us", "--title=test"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.profile != "classic" || !opts.verbose {
		t.Errorf("unexpected options: %+v", opts)
	}
	if joyboard.Simulator.WindowDrawSpeed != 2500*time.Nanosecond {
		t.Errorf("expected a draw speed of 2.5µs, got %s", joyboard.Simulator.WindowDrawSpeed)
	}
	if joyboard.Simulator.WindowScale != 2 || joyboard.Simulator.WindowTitle != "test" {
		t.Errorf("unexpected simulator settings: %+v", joyboard.Simulator)
	}

	if _, err := parseOptions([]string{"--no-such-flag"}); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}

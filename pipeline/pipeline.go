// Package pipeline runs the main loop: read button presses and the joystick,
// update the LEDs and draw a frame, every iteration.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/aykevl/joyboard/control"
	"github.com/aykevl/joyboard/render"
)

// DefaultInterval is the time between two loop iterations. It paces both the
// display refresh and the LED updates.
const DefaultInterval = 50 * time.Millisecond

// Joystick reads both axes, in the range 0..control.AxisMax.
type Joystick interface {
	Read() (x, y uint16)
}

// Press is a single recorded button press.
type Press struct {
	Button control.Button
	Time   time.Duration // monotonic, since boot
}

// Presses returns recorded button presses, oldest first. It must not block.
type Presses interface {
	NextPress() (Press, bool)
}

// LEDs drives the two PWM LEDs, the on/off LED and the indicator.
type LEDs interface {
	Set(red, blue uint16)
	SetGreen(on bool)
	SetIndicator(on bool)
}

// Pipeline ties the inputs, the interaction state and the outputs together.
type Pipeline struct {
	Controller *control.Controller
	Joystick   Joystick
	Presses    Presses
	LEDs       LEDs
	Screen     render.Screen
	Interval   time.Duration
	Logger     *slog.Logger
}

// New returns a pipeline for the given profile, starting in the initial
// interaction state.
func New(cfg *control.Config, joystick Joystick, presses Presses, leds LEDs, screen render.Screen, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Controller: control.NewController(cfg),
		Joystick:   joystick,
		Presses:    presses,
		LEDs:       leds,
		Screen:     screen,
		Interval:   DefaultInterval,
		Logger:     logger,
	}
}

// Step runs a single loop iteration. The returned error is the display flush
// error, if any; all outputs have been updated regardless.
func (p *Pipeline) Step() error {
	p.applyPresses()

	x, y := p.Joystick.Read()
	sample := p.Controller.Config.Sample(control.Reading{X: x, Y: y})

	out := p.Controller.Outputs(sample)
	p.LEDs.Set(out.Red, out.Blue)
	p.LEDs.SetGreen(out.Green)
	p.LEDs.SetIndicator(out.Indicator)

	return render.Draw(p.Screen, render.Frame{
		Border:     p.Controller.Border(),
		Marker:     sample.Position,
		MarkerSize: control.MarkerSize,
	})
}

// Apply all presses recorded since the previous iteration, in order.
func (p *Pipeline) applyPresses() {
	for {
		press, ok := p.Presses.NextPress()
		if !ok {
			return
		}
		if !p.Controller.Press(press.Button, press.Time) {
			p.Logger.Debug("press ignored", "button", press.Button, "at", press.Time)
			continue
		}
		s := p.Controller.State
		p.Logger.Info("press",
			"button", press.Button,
			"pwm", s.PWMEnabled,
			"green", s.SecondaryLED,
			"border", p.Controller.Border(),
			"rgbOff", s.RGBOff)
	}
}

// Run the loop until ctx is cancelled. Display errors are logged and don't
// stop the loop.
func (p *Pipeline) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := p.Step(); err != nil {
			p.Logger.Debug("display update failed", "err", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

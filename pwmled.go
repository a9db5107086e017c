package joyboard

import (
	"errors"
	"fmt"
)

// PWM output bound to a single LED pin.
type pwmOutput interface {
	Configure(period uint64) error
	Channel() (uint8, error)
	Set(ch uint8, value uint32)
	Top() uint32
}

var errNoPWM = errors.New("pin has no PWM")

// A single dimmable LED. The zero value is an LED that stays off.
type pwmLED struct {
	out        pwmOutput
	ch         uint8
	configured bool
}

// Configure the PWM output at the given period (in nanoseconds) and switch
// the LED off. On error, the returned LED ignores all levels.
func newPWMLED(name string, out pwmOutput, period uint64) (pwmLED, error) {
	if out == nil {
		return pwmLED{}, fmt.Errorf("%s: %w", name, errNoPWM)
	}
	if err := out.Configure(period); err != nil {
		return pwmLED{}, fmt.Errorf("pwm on %s: %w", name, err)
	}
	ch, err := out.Channel()
	if err != nil {
		return pwmLED{}, fmt.Errorf("pwm channel on %s: %w", name, err)
	}
	out.Set(ch, 0)
	return pwmLED{out: out, ch: ch, configured: true}, nil
}

// Set the brightness, in the range 0..LEDMax, scaled to the hardware top.
func (l pwmLED) set(level uint16) {
	if !l.configured {
		return
	}
	if level > LEDMax {
		level = LEDMax
	}
	l.out.Set(l.ch, uint32(uint64(level)*uint64(l.out.Top())/LEDMax))
}

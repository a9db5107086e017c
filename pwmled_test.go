package joyboard

import (
	"errors"
	"testing"
)

type fakePWM struct {
	configErr  error
	channelErr error
	period     uint64
	top        uint32
	values     map[uint8]uint32
}

func (p *fakePWM) Configure(period uint64) error {
	p.period = period
	return p.configErr
}

func (p *fakePWM) Channel() (uint8, error) {
	return 1, p.channelErr
}

func (p *fakePWM) Set(ch uint8, value uint32) {
	if p.values == nil {
		p.values = map[uint8]uint32{}
	}
	p.values[ch] = value
}

func (p *fakePWM) Top() uint32 {
	return p.top
}

func TestPWMLED(t *testing.T) {
	out := &fakePWM{top: 62499}
	led, err := newPWMLED("pin 11", out, 1000000)
	if err != nil {
		t.Fatal(err)
	}
	if out.period != 1000000 {
		t.Errorf("unexpected period %d", out.period)
	}
	if v, ok := out.values[1]; !ok || v != 0 {
		t.Errorf("expected the LED to start off, got %d (set: %v)", v, ok)
	}

	for _, tc := range []struct {
		level uint16
		value uint32
	}{
		{0, 0},
		{LEDMax, 62499},
		{LEDMax + 100, 62499},
		{2048, 2048 * 62499 / LEDMax},
	} {
		led.set(tc.level)
		if out.values[1] != tc.value {
			t.Errorf("level %d: expected %d, got %d", tc.level, tc.value, out.values[1])
		}
	}
}

func TestPWMLEDErrors(t *testing.T) {
	errConfig := errors.New("period out of range")
	errChannel := errors.New("no channel for pin")
	for _, tc := range []struct {
		name string
		out  pwmOutput
		want error
	}{
		{"no PWM on pin", nil, errNoPWM},
		{"configure fails", &fakePWM{configErr: errConfig}, errConfig},
		{"channel fails", &fakePWM{channelErr: errChannel}, errChannel},
	} {
		t.Run(tc.name, func(t *testing.T) {
			led, err := newPWMLED("pin 13", tc.out, 1000000)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if led.configured {
				t.Error("LED marked as configured after an error")
			}
			led.set(LEDMax) // must not panic
			if fake, ok := tc.out.(*fakePWM); ok && len(fake.values) != 0 {
				t.Errorf("unconfigured LED wrote to the PWM output: %v", fake.values)
			}
		})
	}
}

package control

import "image"

const (
	// AxisMax is the largest value a 12-bit ADC sample can have.
	AxisMax = 4095

	// AxisCenter is the reading of a joystick axis at rest.
	AxisCenter = 2048

	// Wrap is the PWM top value that duty values are expressed against.
	Wrap = 4095
)

// Reading is a single sample of both joystick axes, each in the range
// 0..AxisMax.
type Reading struct {
	X, Y uint16
}

// AxisMap describes how one axis reading is scaled to a screen coordinate.
type AxisMap struct {
	Offset int  // added to the scaled value
	Span   int  // number of pixels the full axis range is scaled to
	Invert bool // count down from Span-1 instead of up from 0
	Min    int  // lowest allowed coordinate
	Max    int  // highest allowed coordinate
}

// Position maps a raw axis reading to a screen coordinate. The result is
// always within [Min, Max].
func (m AxisMap) Position(raw uint16) int {
	v := int(raw) * m.Span / AxisMax
	if m.Invert {
		v = m.Span - 1 - v
	}
	pos := m.Offset + v
	if pos > m.Max {
		pos = m.Max
	}
	if pos < m.Min {
		pos = m.Min
	}
	return pos
}

// fitAxis returns an AxisMap that keeps a marker of the given size fully
// visible on a display dimension, with margin pixels left free on both
// sides.
func fitAxis(dimension, marker, margin int, invert bool) AxisMap {
	lo := margin
	hi := dimension - marker - margin
	return AxisMap{
		Offset: lo,
		Span:   hi - lo + 1,
		Invert: invert,
		Min:    lo,
		Max:    hi,
	}
}

// Sample is everything derived from one Reading.
type Sample struct {
	Position image.Point // top-left corner of the marker
	DutyX    uint16      // LED duty driven by the X axis, 0..Wrap
	DutyY    uint16      // LED duty driven by the Y axis, 0..Wrap
}

// Sample maps a reading to a marker position and two LED duty values.
// The duty values are proportional and do not take the interaction state
// into account, see Controller.Outputs for that.
func (c *Config) Sample(r Reading) Sample {
	return Sample{
		Position: image.Pt(c.X.Position(r.X), c.Y.Position(r.Y)),
		DutyX:    Duty(r.X, c.Deadzone),
		DutyY:    Duty(r.Y, c.Deadzone),
	}
}

// Duty returns twice the deviation of raw from the center, clamped to Wrap.
// Deviations smaller than deadzone result in zero.
func Duty(raw, deadzone uint16) uint16 {
	dev := int(raw) - AxisCenter
	if dev < 0 {
		dev = -dev
	}
	if dev < int(deadzone) {
		return 0
	}
	duty := dev * 2
	if duty > Wrap {
		duty = Wrap
	}
	return uint16(duty)
}

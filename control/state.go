package control

import "time"

// Button identifies one of the two push-buttons.
type Button uint8

const (
	ButtonA Button = iota
	ButtonJoystick

	numButtons
)

func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonJoystick:
		return "joystick"
	default:
		return "unknown"
	}
}

// Debouncer suppresses presses that follow an accepted press too quickly.
// The first press is always accepted.
type Debouncer struct {
	Window time.Duration

	armed bool
	last  time.Duration
}

// Accept reports whether a press at time now (monotonic, since boot) should
// be acted upon. Accepted presses restart the window, rejected ones don't.
func (d *Debouncer) Accept(now time.Duration) bool {
	if d.armed && now-d.last < d.Window {
		return false
	}
	d.armed = true
	d.last = now
	return true
}

// State is the interaction state, changed only by accepted button presses.
type State struct {
	PWMEnabled   bool // LED duties are forced to zero when false
	SecondaryLED bool
	BorderIndex  int  // position in Config.Borders
	RGBOff       bool // set by ActionPowerOff, never cleared
	Indicator    bool // debug indicator LED
}

// NewState returns the state the firmware starts in.
func NewState() State {
	return State{PWMEnabled: true}
}

// Outputs are the LED levels for one loop iteration.
type Outputs struct {
	Red, Blue uint16 // PWM duties, 0..Wrap
	Green     bool
	Indicator bool
}

// Controller applies button presses to a State, according to a Config.
type Controller struct {
	Config *Config
	State  State

	debounce [numButtons]Debouncer
	rejected [numButtons]uint32
}

// NewController returns a controller in the initial state.
func NewController(cfg *Config) *Controller {
	c := &Controller{
		Config: cfg,
		State:  NewState(),
	}
	for i := range c.debounce {
		c.debounce[i].Window = cfg.Debounce
	}
	return c
}

// Press handles a falling edge of the given button at time now. It returns
// whether the press was accepted; a rejected press leaves the state
// untouched.
func (c *Controller) Press(b Button, now time.Duration) bool {
	if b >= numButtons {
		return false
	}
	if !c.debounce[b].Accept(now) {
		c.rejected[b]++
		return false
	}
	s := &c.State
	switch b {
	case ButtonA:
		if !s.RGBOff {
			s.PWMEnabled = !s.PWMEnabled
		}
	case ButtonJoystick:
		switch c.Config.Action {
		case ActionPowerOff:
			s.RGBOff = true
			s.PWMEnabled = false
			s.SecondaryLED = false
			s.Indicator = true
		default:
			s.SecondaryLED = !s.SecondaryLED
			s.BorderIndex = (s.BorderIndex + 1) % max(len(c.Config.Borders), 1)
		}
	}
	return true
}

// Rejected returns how many presses of b were dropped as bounces.
func (c *Controller) Rejected(b Button) uint32 {
	if b >= numButtons {
		return 0
	}
	return c.rejected[b]
}

// Border returns the border style to draw.
func (c *Controller) Border() BorderStyle {
	return c.Config.Border(c.State.BorderIndex)
}

// Outputs returns the LED levels for the given sample.
func (c *Controller) Outputs(s Sample) Outputs {
	out := Outputs{
		Green:     c.State.SecondaryLED,
		Indicator: c.State.Indicator,
	}
	if c.State.PWMEnabled && !c.State.RGBOff {
		out.Red = s.DutyX
		out.Blue = s.DutyY
	}
	return out
}

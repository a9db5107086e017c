package control

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// BorderStyle is the way the border around the display is drawn.
type BorderStyle uint8

const (
	BorderNone BorderStyle = iota
	BorderSolid
	BorderDotted
	BorderDouble // two nested outlines
	BorderFilled // the whole display lit, marker drawn inverted
)

func (s BorderStyle) String() string {
	switch s {
	case BorderNone:
		return "none"
	case BorderSolid:
		return "solid"
	case BorderDotted:
		return "dotted"
	case BorderDouble:
		return "double"
	case BorderFilled:
		return "filled"
	default:
		return fmt.Sprintf("BorderStyle(%d)", uint8(s))
	}
}

// JoystickAction selects what a press of the joystick button does.
type JoystickAction uint8

const (
	// ActionToggle toggles the secondary LED and advances the border style.
	ActionToggle JoystickAction = iota

	// ActionPowerOff switches the RGB LEDs off for good and lights the
	// indicator LED instead.
	ActionPowerOff
)

func (a JoystickAction) String() string {
	switch a {
	case ActionToggle:
		return "toggle"
	case ActionPowerOff:
		return "power-off"
	default:
		return fmt.Sprintf("JoystickAction(%d)", uint8(a))
	}
}

// Display geometry shared by all profiles.
const (
	DisplayWidth  = 128
	DisplayHeight = 64
	MarkerSize    = 8
	margin        = 2
)

// Config is a complete set of parameters for the joystick demo. A Config is
// selected once at startup and never changes afterwards.
type Config struct {
	Name     string
	Deadzone uint16        // minimum deviation from center before the LEDs light up
	Debounce time.Duration // minimum time between two accepted presses of a button
	Borders  []BorderStyle // cycled through by the joystick button
	Action   JoystickAction
	X, Y     AxisMap
}

// Border returns the border style at the given position in the cycle.
func (c *Config) Border(index int) BorderStyle {
	if len(c.Borders) == 0 {
		return BorderNone
	}
	return c.Borders[index%len(c.Borders)]
}

// DefaultProfile is the name of the profile used when none is given.
const DefaultProfile = "deadzone"

// Profiles lists all built-in configurations, by name.
var Profiles = map[string]Config{
	// Marker scaled straight from the readings, no border at all.
	"plain": {
		Name:     "plain",
		Debounce: 200 * time.Millisecond,
		Borders:  []BorderStyle{BorderNone},
		X:        AxisMap{Span: 112, Max: 112},
		Y:        AxisMap{Span: 48, Max: 48},
	},
	// Marker offset by 30 pixels on both axes, border thickness cycled.
	"classic": {
		Name:     "classic",
		Debounce: 200 * time.Millisecond,
		Borders:  []BorderStyle{BorderSolid, BorderDouble, BorderFilled},
		X:        AxisMap{Offset: 30, Span: 128, Invert: true, Min: 63 + MarkerSize, Max: 127 - MarkerSize},
		Y:        AxisMap{Offset: 30, Span: 64, Min: MarkerSize, Max: 127 - MarkerSize},
	},
	"deadzone": {
		Name:     "deadzone",
		Deadzone: 100,
		Debounce: 500 * time.Millisecond,
		Borders:  []BorderStyle{BorderSolid, BorderDotted, BorderNone},
		X:        fitAxis(DisplayWidth, MarkerSize, margin, true),
		Y:        fitAxis(DisplayHeight, MarkerSize, margin, false),
	},
	// The joystick button powers off instead of cycling, so the border
	// never changes.
	"poweroff": {
		Name:     "poweroff",
		Deadzone: 100,
		Debounce: 500 * time.Millisecond,
		Borders:  []BorderStyle{BorderSolid},
		Action:   ActionPowerOff,
		X:        fitAxis(DisplayWidth, MarkerSize, margin, true),
		Y:        fitAxis(DisplayHeight, MarkerSize, margin, false),
	},
}

// Lookup returns a copy of the named profile.
func Lookup(name string) (Config, error) {
	if name == "" {
		name = DefaultProfile
	}
	cfg, ok := Profiles[name]
	if !ok {
		return Config{}, fmt.Errorf("control: unknown profile %q (available: %s)", name, strings.Join(ProfileNames(), ", "))
	}
	cfg.Borders = append([]BorderStyle(nil), cfg.Borders...)
	return cfg, nil
}

// ProfileNames returns the names of all built-in profiles, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package joyboard

import (
	"image/color"
	"time"
)

// Settings for the simulator. These can be modified at any time, but it is
// recommended to modify them before configuring any of the board peripherals.
//
// The defaults match the 128x64 OLED on the BitDogLab board.
var Simulator = struct {
	WindowTitle string

	// Width and height of the simulated display in pixels.
	WindowWidth  int
	WindowHeight int

	// Each display pixel is shown as a square of this many screen pixels.
	// Small OLEDs are unreadable at their real size.
	WindowScale int

	// Time it takes to send a single pixel to the display. The default of
	// zero means there is no delay. At 400kHz, an I2C OLED needs around
	// 2.5µs per pixel.
	WindowDrawSpeed time.Duration
}{
	WindowTitle:  "Joystick simulator",
	WindowWidth:  128,
	WindowHeight: 64,
	WindowScale:  4,
}

// Displayer is the monochrome display shared by all supported boards. It
// keeps a frame buffer that is only sent to the display on Display().
type Displayer interface {
	// The display size in pixels.
	Size() (width, height int16)

	// Set a pixel in the frame buffer. Pixels outside the display are
	// ignored. Any non-black color turns the pixel on.
	SetPixel(x, y int16, c color.RGBA)

	// Clear the frame buffer.
	ClearBuffer()

	// Send the frame buffer to the display.
	Display() error
}

// Key is a single push-button on the board.
type Key uint8

// List of all supported keys.
const (
	NoKey Key = iota

	KeyA        // button A, left of the display
	KeyJoystick // pressing down on the joystick
)

func (k Key) String() string {
	switch k {
	case KeyA:
		return "A"
	case KeyJoystick:
		return "joystick"
	default:
		return "none"
	}
}

// ButtonPress is a single falling edge on one of the buttons. It is recorded
// in the interrupt handler and read later from the main loop.
type ButtonPress struct {
	Key  Key
	Time time.Duration // since boot
}

// Maximum PWM level passed to LEDs.Set. The hardware top value may be
// different, levels are scaled to match it.
const LEDMax = 4095

// Reference point for timestamps. Package initialization happens right after
// reset, which is close enough to boot for debouncing.
var bootTime = time.Now()

func uptime() time.Duration {
	return time.Since(bootTime)
}

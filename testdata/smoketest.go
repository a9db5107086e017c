package main

import (
	"github.com/aykevl/joyboard"
	"github.com/aykevl/joyboard/render"
)

func main() {
	// Verify board name constant.
	var _ string = joyboard.Name

	// Assert that board.Display returns something the renderer can draw on.
	display, _ := joyboard.Display.Configure()
	checkScreen(display)

	// Assert that Display uses the usual interface.
	var _ interface {
		Configure() (joyboard.Displayer, error)
		PPI() int
	} = joyboard.Display

	// Assert that board.Joystick uses the usual interface.
	var _ interface {
		Configure()
		Read() (x, y uint16)
	} = joyboard.Joystick

	// Assert that board.Buttons uses the usual interface.
	var _ interface {
		Configure()
		NextPress() (joyboard.ButtonPress, bool)
		Dropped() uint32
	} = joyboard.Buttons

	// Assert that board.LEDs uses the usual interface.
	var _ interface {
		Configure() error
		Set(red, blue uint16)
		SetGreen(on bool)
		SetIndicator(on bool)
	} = joyboard.LEDs
}

func checkScreen(display render.Screen) {
}

// Package render draws one frame of the joystick demo: an optional border
// around the display and the marker.
package render

import (
	"image"
	"image/color"

	"github.com/aykevl/joyboard/control"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
)

// Screen is a monochrome display with a frame buffer. The ssd1306 driver
// implements it, as does the simulated display.
type Screen interface {
	drivers.Displayer

	// ClearBuffer clears the frame buffer without touching the display.
	ClearBuffer()
}

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// DotSpacing is the distance in pixels between two dots of a dotted border.
const DotSpacing = 4

// Frame is what a single render pass shows.
type Frame struct {
	Border     control.BorderStyle
	Marker     image.Point // top-left corner
	MarkerSize int16
}

// Draw clears the frame buffer, draws the border and the marker and flushes
// the result to the display.
func Draw(screen Screen, f Frame) error {
	screen.ClearBuffer()
	width, height := screen.Size()

	markerColor := white
	switch f.Border {
	case control.BorderSolid:
		tinydraw.Rectangle(screen, 0, 0, width, height, white)
	case control.BorderDouble:
		tinydraw.Rectangle(screen, 0, 0, width, height, white)
		tinydraw.Rectangle(screen, 1, 1, width-2, height-2, white)
	case control.BorderFilled:
		tinydraw.FilledRectangle(screen, 0, 0, width, height, white)
		markerColor = black
	case control.BorderDotted:
		drawDots(screen, width, height)
	}

	size := f.MarkerSize
	if size <= 0 {
		size = control.MarkerSize
	}
	drawMarker(screen, int16(f.Marker.X), int16(f.Marker.Y), size, markerColor)

	return screen.Display()
}

// Draw a ring of single pixels along the edge of the display.
func drawDots(screen Screen, width, height int16) {
	for x := int16(0); x < width; x += DotSpacing {
		screen.SetPixel(x, 0, white)
		screen.SetPixel(x, height-1, white)
	}
	for y := int16(0); y < height; y += DotSpacing {
		screen.SetPixel(0, y, white)
		screen.SetPixel(width-1, y, white)
	}
}

// The marker may be partially outside the display with some profiles, so only
// the visible part is drawn.
func drawMarker(screen Screen, x, y, size int16, c color.RGBA) {
	width, height := screen.Size()
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+size, width), min(y+size, height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	tinydraw.FilledRectangle(screen, x0, y0, x1-x0, y1-y0, c)
}

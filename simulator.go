//go:build !baremetal

package joyboard

// The simulator for the joystick board. It shows the monochrome display, the
// LEDs below it, and turns keyboard and mouse input into joystick movement
// and button presses:
//   * arrow keys or dragging on the display: move the stick
//   * A: button A
//   * Enter or Space: press the joystick down
//
// The board API doesn't use a mainloop of any kind, which would not be
// necessary anyway on embedded systems. But it is necessary on OSes, so to work
// around this the simulator is actually run in a separate process by starting
// the current process again and communicating over pipes (stdin/stdout in the
// simulator process).

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/draw"
)

const runWindowCommand = "run-simulator-window"

func init() {
	if len(os.Args) >= 2 && os.Args[1] == runWindowCommand {
		// This is the simulator process.
		// Run the entire window in an init function, because that's the only
		// way to do this with the API that is exposed by the board package.
		windowMain()
		os.Exit(0)
	}
}

var (
	displayImageLock sync.Mutex
	displayImage     *image.RGBA

	ledsLock   sync.Mutex
	leds       []color.RGBA
	ledsPerRow = 4
)

// The main function for the window process.
func windowMain() {
	// Create a raster image to use as a display buffer.
	displayImage = image.NewRGBA(image.Rect(0, 0, 128, 64))
	display := &displayWidget{}
	display.Generator = func(w, h int) image.Image {
		displayImageLock.Lock()
		defer displayImageLock.Unlock()
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(img, image.Rect(0, 0, w, h), image.NewUniform(color.RGBA{
			R: 32,
			G: 32,
			B: 32,
			A: 255,
		}), image.Pt(0, 0), draw.Over)
		rect := displayImage.Bounds()
		displayRect := fitRect(w, h, rect.Dx(), rect.Dy())
		draw.NearestNeighbor.Scale(img, displayRect, displayImage, rect, draw.Src, nil)
		return img
	}

	// Create LEDs.
	ledsWidget := canvas.NewRaster(func(w, h int) image.Image {
		ledsLock.Lock()
		defer ledsLock.Unlock()
		img := image.NewRGBA(image.Rect(0, 0, w, h))

		// Draw all the LEDs as squares, each 24 pixels in size with an 8 pixel
		// gap.
		rows := (len(leds) + ledsPerRow - 1) / ledsPerRow
		if rows == 0 {
			return img
		}
		scale := float64(h) / float64(rows*32)
		col := 0
		row := 0
		for _, c := range leds {
			x0 := int(float64(8+col*32) * scale)
			x1 := int(float64(8+col*32+24) * scale)
			y0 := int(float64(4+row*32) * scale)
			y1 := int(float64(4+row*32+24) * scale)
			area := image.Rect(x0, y0, x1, y1)
			draw.Draw(img, area, image.NewUniform(c), image.Pt(0, 0), draw.Src)
			col++
			if col >= ledsPerRow {
				col = 0
				row++
			}
		}
		return img
	})
	ledsWidget.Hidden = true

	// Create a window.
	a := app.New()
	w := a.NewWindow("Simulator")
	w.SetPadded(false)
	w.SetFixedSize(true)
	w.SetContent(fyne.NewContainerWithLayout(layout.NewVBoxLayout(), display, ledsWidget))

	// Listen for keyboard events, and translate them to buttons and stick
	// movement.
	stick := &keyboardStick{}
	if deskCanvas, ok := w.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(event *fyne.KeyEvent) {
			if key := decodeFyneKey(event.Name); key != NoKey {
				fmt.Printf("keypress %d\n", key)
				return
			}
			stick.set(event.Name, true)
		})
		deskCanvas.SetOnKeyUp(func(event *fyne.KeyEvent) {
			stick.set(event.Name, false)
		})
	}

	// Listen for events from the parent process (which includes display data).
	go windowReceiveEvents(w, display, ledsWidget)

	// Show the window.
	w.ShowAndRun()
}

// Goroutine that listens for commands from the parent process.
func windowReceiveEvents(w fyne.Window, display *displayWidget, ledsWidget *canvas.Raster) {
	r := bufio.NewReader(os.Stdin)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			// The parent process exited.
			os.Exit(0)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd := fields[0]
		switch cmd {
		case "display":
			var width, height, scale int
			fmt.Sscanf(line, "%s %d %d %d\n", &cmd, &width, &height, &scale)
			if scale <= 0 {
				scale = 1
			}
			newImage := image.NewRGBA(image.Rect(0, 0, width, height))
			draw.Draw(newImage, newImage.Rect, image.NewUniform(color.Black), image.Pt(0, 0), draw.Src)

			displayImageLock.Lock()
			displayImage = newImage
			display.SetMinSize(fyne.NewSize(float32(width*scale), float32(height*scale)))
			displayImageLock.Unlock()
			display.Refresh()
		case "title":
			w.SetTitle(strings.TrimSpace(line[len("title"):]))
		case "draw":
			// Read the image data (which is a single line).
			var startX, startY, width int
			fmt.Sscanf(line, "%s %d %d %d\n", &cmd, &startX, &startY, &width)
			buf := make([]byte, width*3)
			io.ReadFull(r, buf)

			// Draw the image data to the image buffer.
			displayImageLock.Lock()
			for x := 0; x < width; x++ {
				displayImage.SetRGBA(startX+x, startY, color.RGBA{
					R: buf[x*3+0],
					G: buf[x*3+1],
					B: buf[x*3+2],
					A: 255,
				})
			}
			displayImageLock.Unlock()
			display.Refresh()
		case "leds":
			// Read the LED data.
			var numLEDs int
			fmt.Sscanf(line, "%s %d\n", &cmd, &numLEDs)
			buf := make([]byte, numLEDs*3)
			io.ReadFull(r, buf)

			// Update the leds slice.
			ledsLock.Lock()
			if len(leds) != numLEDs {
				// LEDs were configured for the first time (probably).
				// Make sure we prepare for the given number of LEDs.
				leds = make([]color.RGBA, numLEDs)
				cols := min(ledsPerRow, len(leds))
				rows := (len(leds) + ledsPerRow - 1) / ledsPerRow
				ledsWidget.SetMinSize(fyne.NewSize(float32(cols*32+8), float32(rows*32+8)))
				ledsWidget.Show()
			}
			for i := range leds {
				leds[i] = color.RGBA{
					R: gammaEncodeTable[buf[i*3+0]],
					G: gammaEncodeTable[buf[i*3+1]],
					B: gammaEncodeTable[buf[i*3+2]],
					A: 255,
				}
			}
			ledsLock.Unlock()
			ledsWidget.Refresh()
		default:
			fmt.Fprintln(os.Stderr, "unknown command:", cmd)
		}
	}
}

// Return the largest rectangle with an integer scale of (dx, dy) that fits in
// (w, h), centered.
func fitRect(w, h, dx, dy int) image.Rectangle {
	scale := max(1, min(w/dx, h/dy))
	width := dx * scale
	height := dy * scale
	x := (w - width) / 2
	y := (h - height) / 2
	return image.Rect(x, y, x+width, y+height)
}

func decodeFyneKey(key fyne.KeyName) Key {
	switch key {
	case fyne.KeyA:
		return KeyA
	case fyne.KeyReturn, fyne.KeyEnter, fyne.KeySpace:
		return KeyJoystick
	default:
		return NoKey
	}
}

// Joystick position computed from the arrow keys that are held down.
//
// The simulated stick is mounted like the one on the BitDogLab board: moving
// it to the left increases the X reading, moving it down increases Y.
type keyboardStick struct {
	lock                  sync.Mutex
	left, right, up, down bool
}

func (s *keyboardStick) set(key fyne.KeyName, pressed bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	switch key {
	case fyne.KeyLeft:
		s.left = pressed
	case fyne.KeyRight:
		s.right = pressed
	case fyne.KeyUp:
		s.up = pressed
	case fyne.KeyDown:
		s.down = pressed
	default:
		return
	}
	x, y := 2048, 2048
	if s.left && !s.right {
		x = 4095
	} else if s.right && !s.left {
		x = 0
	}
	if s.up && !s.down {
		y = 0
	} else if s.down && !s.up {
		y = 4095
	}
	fmt.Printf("stick %d %d\n", x, y)
}

var _ desktop.Mouseable = (*displayWidget)(nil)
var _ fyne.Draggable = (*displayWidget)(nil)

// Wrapper for canvas.Raster that turns mouse events into stick movement.
type displayWidget struct {
	canvas.Raster
}

func (r *displayWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(&r.Raster)
}

func (r *displayWidget) MouseDown(event *desktop.MouseEvent) {
	if event.Button == desktop.MouseButtonPrimary {
		r.moveStick(event.Position)
	}
}

func (r *displayWidget) MouseUp(event *desktop.MouseEvent) {
	if event.Button == desktop.MouseButtonPrimary {
		// Let go of the stick: it springs back to the center.
		fmt.Printf("stick %d %d\n", 2048, 2048)
	}
}

func (r *displayWidget) Dragged(event *fyne.DragEvent) {
	r.moveStick(event.Position)
}

func (r *displayWidget) DragEnd() {
	// handled in MouseUp
}

// Move the stick so that the marker ends up under the mouse pointer.
func (r *displayWidget) moveStick(pos fyne.Position) {
	size := r.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	fx := clampUnit(pos.X / size.Width)
	fy := clampUnit(pos.Y / size.Height)
	x := int((1 - fx) * 4095) // left increases X, see keyboardStick
	y := int(fy * 4095)
	fmt.Printf("stick %d %d\n", x, y)
}

func clampUnit(f float32) float32 {
	return max(0, min(f, 1))
}

// Gamma brightness lookup table:
// https://victornpb.github.io/gamma-table-generator
// gamma = 0.45 steps = 256 range = 0-255
var gammaEncodeTable = [256]uint8{
	0, 21, 28, 34, 39, 43, 46, 50, 53, 56, 59, 61, 64, 66, 68, 70,
	72, 74, 76, 78, 80, 82, 84, 85, 87, 89, 90, 92, 93, 95, 96, 98,
	99, 101, 102, 103, 105, 106, 107, 109, 110, 111, 112, 114, 115, 116, 117, 118,
	119, 120, 122, 123, 124, 125, 126, 127, 128, 129, 130, 131, 132, 133, 134, 135,
	136, 137, 138, 139, 140, 141, 142, 143, 144, 144, 145, 146, 147, 148, 149, 150,
	151, 151, 152, 153, 154, 155, 156, 156, 157, 158, 159, 160, 160, 161, 162, 163,
	164, 164, 165, 166, 167, 167, 168, 169, 170, 170, 171, 172, 173, 173, 174, 175,
	175, 176, 177, 178, 178, 179, 180, 180, 181, 182, 182, 183, 184, 184, 185, 186,
	186, 187, 188, 188, 189, 190, 190, 191, 192, 192, 193, 194, 194, 195, 195, 196,
	197, 197, 198, 199, 199, 200, 200, 201, 202, 202, 203, 203, 204, 205, 205, 206,
	206, 207, 207, 208, 209, 209, 210, 210, 211, 212, 212, 213, 213, 214, 214, 215,
	215, 216, 217, 217, 218, 218, 219, 219, 220, 220, 221, 221, 222, 223, 223, 224,
	224, 225, 225, 226, 226, 227, 227, 228, 228, 229, 229, 230, 230, 231, 231, 232,
	232, 233, 233, 234, 234, 235, 235, 236, 236, 237, 237, 238, 238, 239, 239, 240,
	240, 241, 241, 242, 242, 243, 243, 244, 244, 245, 245, 246, 246, 247, 247, 248,
	248, 249, 249, 249, 250, 250, 251, 251, 252, 252, 253, 253, 254, 254, 255, 255,
}

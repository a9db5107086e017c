//go:build !baremetal

package joyboard

// The simulated board exists for testing locally without running on real
// hardware. This avoids potentially long edit-flash-test cycles.

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aykevl/tinygl/pixel"
)

const (
	// The board name, as passed to TinyGo in the "-target" flag.
	// This is the special name "simulator" for the simulator.
	Name = "simulator"
)

// List of all devices.
//
// Every board defines the same set of peripherals.
var (
	Joystick = simulatedJoystick{}
	Buttons  = &simulatedButtons{}
	LEDs     = &simulatedLEDs{}
	Display  = mainDisplay{}
)

// Stick position as last reported by the window, packed as x<<16 | y.
var stickPosition atomic.Uint32

func init() {
	stickPosition.Store(2048<<16 | 2048)
}

type simulatedJoystick struct{}

// Configure the simulated joystick. The window must be running to move it.
func (j simulatedJoystick) Configure() {
	startWindow()
}

// Read both axes. The values are in the range 0..4095, with 2048 being the
// resting position.
func (j simulatedJoystick) Read() (x, y uint16) {
	pos := stickPosition.Load()
	// Add some noise, like a real ADC. Programs should be able to deal with
	// that.
	return addNoise(uint16(pos >> 16)), addNoise(uint16(pos))
}

func addNoise(v uint16) uint16 {
	n := int(v) + rand.Intn(9) - 4
	if n < 0 {
		n = 0
	}
	if n > 4095 {
		n = 4095
	}
	return uint16(n)
}

type simulatedButtons struct {
	queue pressQueue
}

func (b *simulatedButtons) Configure() {
	startWindow()
}

// NextPress returns the oldest button press that hasn't been read yet.
func (b *simulatedButtons) NextPress() (ButtonPress, bool) {
	return b.queue.pop()
}

// Dropped returns the number of presses lost because they weren't read in
// time.
func (b *simulatedButtons) Dropped() uint32 {
	return b.queue.dropped.Load()
}

// The LEDs are shown below the display: red, green, blue and the indicator.
type simulatedLEDs struct {
	lock      sync.Mutex
	red, blue uint16
	green     bool
	indicator bool
	data      [4]pixel.RGB888
	sent      [4]pixel.RGB888
}

func (l *simulatedLEDs) Configure() error {
	startWindow()
	l.lock.Lock()
	defer l.lock.Unlock()
	l.update(true)
	return nil
}

// Set the red and blue brightness, in the range 0..LEDMax.
func (l *simulatedLEDs) Set(red, blue uint16) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.red = min(red, LEDMax)
	l.blue = min(blue, LEDMax)
	l.update(false)
}

func (l *simulatedLEDs) SetGreen(on bool) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.green = on
	l.update(false)
}

// SetIndicator controls the small indicator LED.
func (l *simulatedLEDs) SetIndicator(on bool) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.indicator = on
	l.update(false)
}

// Send the LED colors to the window, but only when they changed (or when
// force is set): the main loop sets them on every iteration.
func (l *simulatedLEDs) update(force bool) {
	l.data[0] = pixel.RGB888{R: uint8(uint32(l.red) * 255 / LEDMax)}
	l.data[1] = pixel.RGB888{}
	if l.green {
		l.data[1].G = 255
	}
	l.data[2] = pixel.RGB888{B: uint8(uint32(l.blue) * 255 / LEDMax)}
	l.data[3] = pixel.RGB888{}
	if l.indicator {
		l.data[3] = pixel.RGB888{R: 255, G: 160}
	}
	if !force && l.data == l.sent {
		return
	}
	l.sent = l.data
	cmd := fmt.Sprintf("leds %d", len(l.data))
	windowSendCommand(cmd, pixelsToBytes(l.data[:]))
}

func pixelsToBytes(pixels []pixel.RGB888) []byte {
	buf := make([]byte, 0, len(pixels)*3)
	for _, c := range pixels {
		buf = append(buf, c.R, c.G, c.B)
	}
	return buf
}

type mainDisplay struct{}

// A monochrome frame buffer, sent to the window line by line.
type simulatedScreen struct {
	width  int
	height int
	buf    []bool
	line   []pixel.RGB888
}

// Configure returns a new display ready to draw on.
func (d mainDisplay) Configure() (Displayer, error) {
	startWindow()
	screen := &simulatedScreen{
		width:  Simulator.WindowWidth,
		height: Simulator.WindowHeight,
	}
	if screen.width <= 0 || screen.height <= 0 {
		return nil, errors.New("joyboard: invalid simulator display size")
	}
	screen.buf = make([]bool, screen.width*screen.height)
	screen.line = make([]pixel.RGB888, screen.width)
	windowSendCommand(fmt.Sprintf("display %d %d %d", screen.width, screen.height, Simulator.WindowScale), nil)
	return screen, nil
}

// Pixels per inch for this display.
func (d mainDisplay) PPI() int {
	return 148 // same as the OLED on the BitDogLab board
}

func (s *simulatedScreen) Size() (width, height int16) {
	return int16(s.width), int16(s.height)
}

func (s *simulatedScreen) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || int(x) >= s.width || int(y) >= s.height {
		return
	}
	s.buf[int(y)*s.width+int(x)] = c.R != 0 || c.G != 0 || c.B != 0
}

func (s *simulatedScreen) ClearBuffer() {
	for i := range s.buf {
		s.buf[i] = false
	}
}

// The OLED is white on black.
var (
	pixelOn  = pixel.RGB888{R: 255, G: 255, B: 255}
	pixelOff = pixel.RGB888{}
)

func (s *simulatedScreen) Display() error {
	drawStart := time.Now()
	for y := 0; y < s.height; y++ {
		// Delay drawing a bit, to simulate a slow I2C bus.
		if Simulator.WindowDrawSpeed != 0 {
			expected := drawStart.Add(Simulator.WindowDrawSpeed * time.Duration(y*s.width))
			if delay := time.Until(expected); delay > 0 {
				time.Sleep(delay)
			}
		}

		for x := range s.line {
			if s.buf[y*s.width+x] {
				s.line[x] = pixelOn
			} else {
				s.line[x] = pixelOff
			}
		}
		windowSendCommand(fmt.Sprintf("draw 0 %d %d", y, s.width), pixelsToBytes(s.line))
	}
	return nil
}

var (
	windowStart  sync.Once
	windowLock   sync.Mutex
	windowStdin  io.WriteCloser
	windowStdout io.ReadCloser
)

// Ensure the window is running in a separate process, starting it if necessary.
func startWindow() {
	windowRunning := make(chan struct{})
	windowStart.Do(func() {
		// Start the separate process that manages the window.
		go func() {
			cmd := exec.Command(os.Args[0], runWindowCommand)
			cmd.Stderr = os.Stderr
			windowStdin, _ = cmd.StdinPipe()
			windowStdout, _ = cmd.StdoutPipe()
			err := cmd.Start()
			if err != nil {
				fmt.Fprintln(os.Stderr, "could not start window process:", err)
				os.Exit(1)
			}
			close(windowRunning)
			err = cmd.Wait()
			if err != nil {
				if exitErr, ok := err.(*exec.ExitError); ok {
					os.Exit(exitErr.ExitCode())
				}
				os.Exit(1)
			}
			// The window was closed, so exit.
			os.Exit(0)
		}()
		<-windowRunning

		// Listen for events (keyboard/mouse).
		go windowListenEvents()

		windowSendCommand("title "+Simulator.WindowTitle, nil)
	})
}

// Send a command to the separate process that manages the window.
// The command is a single line (without newline). The data part is optional
// binary data that can be sent with the command. The size of this binary data
// must be part of the textual command.
func windowSendCommand(command string, data []byte) {
	windowLock.Lock()
	defer windowLock.Unlock()

	windowStdin.Write([]byte(command + "\n"))
	windowStdin.Write(data)
}

// Goroutine that listens for window events like button presses and stick
// movement. It is the only producer of button presses.
func windowListenEvents() {
	r := bufio.NewReader(windowStdout)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			fmt.Fprintln(os.Stderr, "failed to read I/O events from child process:", err)
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd := fields[0]
		switch cmd {
		case "keypress":
			var key Key
			fmt.Sscanf(line, "%s %d", &cmd, &key)
			if key == KeyA || key == KeyJoystick {
				Buttons.queue.push(ButtonPress{Key: key, Time: uptime()})
			}
		case "stick":
			var x, y uint16
			fmt.Sscanf(line, "%s %d %d", &cmd, &x, &y)
			stickPosition.Store(uint32(min(x, 4095))<<16 | uint32(min(y, 4095)))
		default:
			fmt.Fprintln(os.Stderr, "unknown command:", cmd)
		}
	}
}

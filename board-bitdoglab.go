//go:build rp2040

package joyboard

import (
	"errors"
	"fmt"
	"machine"
	"time"

	"github.com/sparques/pwm"
	"tinygo.org/x/drivers/ssd1306"
)

const (
	Name = "bitdoglab"
)

var (
	Joystick = joystickConfig{}
	Buttons  = &gpioButtons{}
	LEDs     = &rgbLEDs{}
	Display  = mainDisplay{}
)

type joystickConfig struct{}

var (
	joystickX = machine.ADC{Pin: machine.ADC0} // GPIO26
	joystickY = machine.ADC{Pin: machine.ADC1} // GPIO27
)

// Configure the ADC channels of both joystick axes.
func (j joystickConfig) Configure() {
	machine.InitADC()
	joystickX.Configure(machine.ADCConfig{})
	joystickY.Configure(machine.ADCConfig{})
}

// Read both axes. The values are in the range 0..4095, with 2048 being
// (roughly) the resting position.
func (j joystickConfig) Read() (x, y uint16) {
	// The ADC is 12 bits, but TinyGo scales all readings to 16 bits.
	return joystickX.Get() >> 4, joystickY.Get() >> 4
}

type gpioButtons struct {
	queue pressQueue
}

const (
	buttonAPin        = machine.GPIO5
	buttonJoystickPin = machine.GPIO22
)

func (b *gpioButtons) Configure() {
	// Both buttons pull the pin low when pressed.
	buttonAPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	buttonJoystickPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	buttonAPin.SetInterrupt(machine.PinFalling, b.interruptHandler)
	buttonJoystickPin.SetInterrupt(machine.PinFalling, b.interruptHandler)
}

// Runs in interrupt context: only record the press, everything else happens
// in the main loop.
func (b *gpioButtons) interruptHandler(pin machine.Pin) {
	key := KeyA
	if pin == buttonJoystickPin {
		key = KeyJoystick
	}
	b.queue.push(ButtonPress{Key: key, Time: uptime()})
}

// NextPress returns the oldest button press that hasn't been read yet.
func (b *gpioButtons) NextPress() (ButtonPress, bool) {
	return b.queue.pop()
}

// Dropped returns the number of presses lost because they weren't read in
// time.
func (b *gpioButtons) Dropped() uint32 {
	return b.queue.dropped.Load()
}

const (
	ledRedPin   = machine.GPIO11
	ledGreenPin = machine.GPIO12
	ledBluePin  = machine.GPIO13

	// 1kHz is fast enough to avoid visible flicker.
	ledPeriod = uint64(time.Second / 1000)
)

// PWM group of the RP2040, bound to one of its pins.
type pinPWM struct {
	group pwm.Group
	pin   machine.Pin
}

func (p pinPWM) Configure(period uint64) error {
	return p.group.Configure(machine.PWMConfig{Period: period})
}

func (p pinPWM) Channel() (uint8, error) {
	return p.group.Channel(p.pin)
}

func (p pinPWM) Set(ch uint8, value uint32) {
	p.group.Set(ch, value)
}

func (p pinPWM) Top() uint32 {
	return p.group.Top()
}

func configurePWMLED(pin machine.Pin) (pwmLED, error) {
	pin.Configure(machine.PinConfig{Mode: machine.PinPWM})
	name := fmt.Sprintf("pin %d", pin)
	group := pwm.Get(pin)
	if group == nil {
		return newPWMLED(name, nil, ledPeriod)
	}
	return newPWMLED(name, pinPWM{group: group, pin: pin}, ledPeriod)
}

// The RGB LED: red and blue are PWM controlled, green is only on or off.
type rgbLEDs struct {
	red, blue pwmLED
}

// Configure all LEDs and switch them off. A PWM channel that can't be
// configured stays off; the error is returned but the other LEDs still work.
func (l *rgbLEDs) Configure() error {
	ledGreenPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	ledGreenPin.Low()
	machine.LED.Configure(machine.PinConfig{Mode: machine.PinOutput})
	machine.LED.Low()

	var errRed, errBlue error
	l.red, errRed = configurePWMLED(ledRedPin)
	l.blue, errBlue = configurePWMLED(ledBluePin)
	return errors.Join(errRed, errBlue)
}

// Set the red and blue brightness, in the range 0..LEDMax.
func (l *rgbLEDs) Set(red, blue uint16) {
	l.red.set(red)
	l.blue.set(blue)
}

func (l *rgbLEDs) SetGreen(on bool) {
	ledGreenPin.Set(on)
}

// SetIndicator controls the LED on the Pico module itself.
func (l *rgbLEDs) SetIndicator(on bool) {
	machine.LED.Set(on)
}

type mainDisplay struct{}

const displayAddress = 0x3C

// Configure the SSD1306 OLED on I2C1. The display is returned even if the bus
// couldn't be configured, so that the rest of the program keeps running.
func (d mainDisplay) Configure() (Displayer, error) {
	i2c := machine.I2C1
	err := i2c.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.GPIO14,
		SCL:       machine.GPIO15,
	})
	if err != nil {
		err = fmt.Errorf("i2c: %w", err)
	}

	display := ssd1306.NewI2C(i2c)
	display.Configure(ssd1306.Config{
		Address: displayAddress,
		Width:   128,
		Height:  64,
	})
	display.ClearDisplay()

	return &display, err
}

// Pixels per inch for this display.
func (d mainDisplay) PPI() int {
	return 148 // 128px over a 22mm wide panel
}

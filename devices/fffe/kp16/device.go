// Package kp16 implements the 16 key keypad on top of a GLFW window,
// with an optional gamepad.
package kp16

import (
	"log"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/chip8/devices"
)

// keyboard maps logical keys onto host keyboard keys.
// GLFW key codes for digits and letters equal their upper case ASCII values.
var keyboard [devices.KeyCount]glfw.Key

func init() {
	for row, keys := range devices.KeyboardRows {
		for col, r := range keys {
			keyboard[devices.KeyLayout[row][col]] = glfw.Key(r)
		}
	}
}

// gamepad maps gamepad buttons onto logical keys.
var gamepad = map[glfw.GamepadButton]int{
	glfw.ButtonDpadUp:    0x2,
	glfw.ButtonDpadLeft:  0x4,
	glfw.ButtonDpadRight: 0x6,
	glfw.ButtonDpadDown:  0x8,
	glfw.ButtonA:         0x5,
	glfw.ButtonB:         0x0,
}

// Device defines all internal doodads for the keypad.
type Device struct {
	m           sync.Mutex
	window      *glfw.Window
	joy         glfw.Joystick
	keys        [devices.KeyCount]bool
	closed      bool
	initialized bool // Is a gamepad connected?
}

var (
	_ devices.Device = &Device{}
	_ devices.Keypad = &Device{}
)

// New creates a new device reading keys from the given window.
func New(window *glfw.Window) *Device {
	return &Device{window: window}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.BuiltinID(devices.SerialKeypad)
}

// Startup initializes device resources.
// It detects any connected gamepad.
func (d *Device) Startup() error {
	glfw.SetJoystickCallback(d.configure)

	// Check if we have a connected gamepad.
	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() && joy.IsGamepad() {
			d.configure(joy, glfw.Connected)
			break
		}
	}

	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	glfw.SetJoystickCallback(nil)
	return nil
}

// Update samples keyboard and gamepad state.
// It must be called from the main thread, after polling for events.
func (d *Device) Update() {
	keys := keyboardKeys(func(k glfw.Key) bool {
		return d.window.GetKey(k) == glfw.Press
	})

	if d.initialized {
		if state := d.joy.GetGamepadState(); state != nil {
			pad := gamepadKeys(state.Buttons)
			for key, down := range pad {
				keys[key] = keys[key] || down
			}
		}
	}

	d.m.Lock()
	d.keys = keys
	d.closed = d.window.ShouldClose()
	d.m.Unlock()
}

// Keys returns the key state sampled by the last Update.
func (d *Device) Keys() [devices.KeyCount]bool {
	d.m.Lock()
	defer d.m.Unlock()
	return d.keys
}

// Active returns false once the window has been asked to close.
func (d *Device) Active() bool {
	d.m.Lock()
	defer d.m.Unlock()
	return !d.closed
}

// configure is called whenever a joystick is connected or disconnected from the system.
func (d *Device) configure(joy glfw.Joystick, event glfw.PeripheralEvent) {
	d.initialized = event == glfw.Connected && joy.IsGamepad()
	d.joy = joy

	if d.initialized {
		log.Println(d.ID(), "gamepad connected")
	} else {
		log.Println(d.ID(), "gamepad disconnected")
	}
}

// keyboardKeys returns the logical key state for the host keys
// reported as down by pressed.
func keyboardKeys(pressed func(glfw.Key) bool) [devices.KeyCount]bool {
	var keys [devices.KeyCount]bool
	for key, hk := range keyboard {
		keys[key] = pressed(hk)
	}
	return keys
}

// gamepadKeys returns the logical key state for the given button actions.
func gamepadKeys(buttons [15]glfw.Action) [devices.KeyCount]bool {
	var keys [devices.KeyCount]bool
	for btn, key := range gamepad {
		if buttons[btn] == glfw.Press {
			keys[key] = true
		}
	}
	return keys
}

// Package devicetest provides deterministic in-memory devices for tests.
// None of them block or touch host resources.
package devicetest

import (
	"sync"

	"github.com/hexaflex/chip8/devices"
)

// Display records drawing in a plain bitmap and counts presented frames.
type Display struct {
	devices.Bitmap
	Presents int
}

var _ devices.Display = &Display{}

// Present counts the call.
func (d *Display) Present() {
	d.Presents++
}

// Keypad holds key state that tests set explicitly.
type Keypad struct {
	m      sync.Mutex
	keys   [devices.KeyCount]bool
	closed bool
}

var _ devices.Keypad = &Keypad{}

// SetKey sets the pressed state of the given logical key.
func (k *Keypad) SetKey(key int, pressed bool) {
	k.m.Lock()
	k.keys[key] = pressed
	k.m.Unlock()
}

// Release releases all keys.
func (k *Keypad) Release() {
	k.m.Lock()
	k.keys = [devices.KeyCount]bool{}
	k.m.Unlock()
}

// Close makes Active return false.
func (k *Keypad) Close() {
	k.m.Lock()
	k.closed = true
	k.m.Unlock()
}

// Keys returns the current key state.
func (k *Keypad) Keys() [devices.KeyCount]bool {
	k.m.Lock()
	defer k.m.Unlock()
	return k.keys
}

// Active returns false after Close has been called.
func (k *Keypad) Active() bool {
	k.m.Lock()
	defer k.m.Unlock()
	return !k.closed
}

// Audio records tone requests.
type Audio struct {
	Playing bool
	Starts  int
	Stops   int
}

var _ devices.Audio = &Audio{}

// StartTone marks the tone as playing.
func (a *Audio) StartTone() {
	a.Playing = true
	a.Starts++
}

// StopTone marks the tone as silent.
func (a *Audio) StopTone() {
	a.Playing = false
	a.Stops++
}

// Device is a no-op device with a fixed id which records lifecycle calls.
type Device struct {
	Serial    int
	StartErr  error
	StopErr   error
	Started   bool
	Shutdowns int
}

var _ devices.Device = &Device{}

// ID returns a test manufacturer id with the configured serial.
func (d *Device) ID() devices.ID {
	return devices.NewID(0xc0fe, d.Serial)
}

// Startup records the call and returns StartErr.
func (d *Device) Startup() error {
	d.Started = d.StartErr == nil
	return d.StartErr
}

// Shutdown records the call and returns StopErr.
func (d *Device) Shutdown() error {
	d.Shutdowns++
	d.Started = false
	return d.StopErr
}

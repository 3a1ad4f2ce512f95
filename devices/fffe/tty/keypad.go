package tty

import (
	"sync"
	"time"

	"github.com/nsf/termbox-go"

	"github.com/hexaflex/chip8/devices"
)

// HoldTime is how long a key counts as pressed after its last key event.
// Terminals report key presses and auto repeats, never releases.
const HoldTime = 300 * time.Millisecond

// Keypad reads keys from terminal key events.
// Escape and Ctrl-C deactivate it.
type Keypad struct {
	m       sync.Mutex
	pressed [devices.KeyCount]time.Time // Time of the last event per key.
	now     func() time.Time
	done    chan struct{}
	closed  bool
}

var (
	_ devices.Device = &Keypad{}
	_ devices.Keypad = &Keypad{}
)

// NewKeypad creates a new terminal keypad.
func NewKeypad() *Keypad {
	return &Keypad{now: time.Now}
}

// ID returns the device id.
func (k *Keypad) ID() devices.ID {
	return devices.BuiltinID(devices.SerialTerminalKeypad)
}

// Startup starts polling for key events.
// The terminal must already be initialized by the Screen.
func (k *Keypad) Startup() error {
	k.done = make(chan struct{})
	go k.poll(k.done)
	return nil
}

// Shutdown stops polling for key events.
func (k *Keypad) Shutdown() error {
	if k.done == nil {
		return nil
	}

	termbox.Interrupt()
	<-k.done
	k.done = nil
	return nil
}

// Keys returns the keys which had an event within HoldTime.
func (k *Keypad) Keys() [devices.KeyCount]bool {
	k.m.Lock()
	defer k.m.Unlock()

	var keys [devices.KeyCount]bool
	now := k.now()

	for key, at := range k.pressed {
		keys[key] = !at.IsZero() && now.Sub(at) < HoldTime
	}

	return keys
}

// Active returns false once the user asked to quit.
func (k *Keypad) Active() bool {
	k.m.Lock()
	defer k.m.Unlock()
	return !k.closed
}

// poll runs in a goroutine and feeds terminal events to handleEvent
// until the event stream is interrupted.
func (k *Keypad) poll(done chan struct{}) {
	defer close(done)

	for {
		ev := termbox.PollEvent()
		if ev.Type == termbox.EventInterrupt {
			return
		}
		k.handleEvent(ev)
	}
}

func (k *Keypad) handleEvent(ev termbox.Event) {
	k.m.Lock()
	defer k.m.Unlock()

	switch ev.Type {
	case termbox.EventError:
		k.closed = true

	case termbox.EventKey:
		switch {
		case ev.Key == termbox.KeyEsc, ev.Key == termbox.KeyCtrlC:
			k.closed = true
		case ev.Ch != 0:
			if key, ok := devices.KeyIndex(ev.Ch); ok {
				k.pressed[key] = k.now()
			}
		}
	}
}

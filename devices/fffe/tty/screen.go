// Package tty implements a display and keypad on a text terminal.
package tty

import (
	"os"
	"sync"

	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/hexaflex/chip8/devices"
)

// Terminal cells needed to show the whole display.
// Each cell holds two vertically stacked pixels.
const (
	Columns = devices.DisplayWidth
	Rows    = devices.DisplayHeight / 2
)

// upperHalf is drawn with the top pixel as foreground
// and the bottom pixel as background.
const upperHalf = '▀'

// Screen renders the display with half block characters.
type Screen struct {
	m     sync.Mutex
	back  devices.Bitmap
	front devices.Bitmap
	dirty bool
	open  bool
}

var (
	_ devices.Device  = &Screen{}
	_ devices.Display = &Screen{}
)

// NewScreen creates a new terminal display.
func NewScreen() *Screen {
	return &Screen{}
}

// ID returns the device id.
func (s *Screen) ID() devices.ID {
	return devices.BuiltinID(devices.SerialTerminalDisplay)
}

// Startup switches the terminal into full screen mode.
// Fails if stdout is not a terminal or if it is too small.
func (s *Screen) Startup() error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdout is not a terminal")
	}

	w, h, err := term.GetSize(fd)
	if err != nil {
		return errors.Wrapf(err, "failed to read terminal size")
	}

	if w < Columns || h < Rows {
		return errors.Errorf("terminal is %dx%d; need at least %dx%d", w, h, Columns, Rows)
	}

	if err := termbox.Init(); err != nil {
		return errors.Wrapf(err, "failed to initialize terminal")
	}

	termbox.SetOutputMode(termbox.OutputNormal)
	termbox.HideCursor()

	s.m.Lock()
	s.open = true
	s.dirty = true
	s.m.Unlock()
	return nil
}

// Shutdown restores the terminal.
func (s *Screen) Shutdown() error {
	s.m.Lock()
	defer s.m.Unlock()

	if s.open {
		termbox.Close()
		s.open = false
	}
	return nil
}

// Clear unsets all pixels in the back buffer.
func (s *Screen) Clear() {
	s.back.Clear()
}

// SetPixel sets or unsets a pixel in the back buffer.
func (s *Screen) SetPixel(x, y int, on bool) {
	s.back.SetPixel(x, y, on)
}

// Pixel returns the state of a pixel in the back buffer.
func (s *Screen) Pixel(x, y int) bool {
	return s.back.Pixel(x, y)
}

// Present publishes the back buffer for the next Draw call.
func (s *Screen) Present() {
	s.m.Lock()
	if s.front != s.back {
		s.front = s.back
		s.dirty = true
	}
	s.m.Unlock()
}

// Draw writes the most recently presented frame to the terminal,
// if it changed since the last call.
func (s *Screen) Draw() error {
	s.m.Lock()
	defer s.m.Unlock()

	if !s.open || !s.dirty {
		return nil
	}

	render(&s.front, termbox.SetCell)
	s.dirty = false
	return termbox.Flush()
}

// render emits one cell for every vertical pixel pair in b.
func render(b *devices.Bitmap, set func(x, y int, ch rune, fg, bg termbox.Attribute)) {
	for row := 0; row < Rows; row++ {
		for x := 0; x < Columns; x++ {
			set(x, row, upperHalf, color(b.Pixel(x, row*2)), color(b.Pixel(x, row*2+1)))
		}
	}
}

func color(on bool) termbox.Attribute {
	if on {
		return termbox.ColorWhite
	}
	return termbox.ColorBlack
}

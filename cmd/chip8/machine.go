package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/fffe/beep"
	"github.com/hexaflex/chip8/devices/fffe/cpu"
	"github.com/hexaflex/chip8/rom"
	"github.com/hexaflex/chip8/vm"
)

// audioDevice is a tone output with managed resources.
type audioDevice interface {
	devices.Device
	devices.Audio
}

// newAudio returns the audio device selected by the configuration.
func newAudio(c *Config) audioDevice {
	if c.Mute {
		return beep.Null{}
	}
	return beep.New()
}

// newController creates a CPU wired to the given peripherals and
// a controller to drive it.
func newController(c *Config, display devices.Display, keypad devices.Keypad, audio devices.Audio) *vm.Controller {
	cpu := cpu.New(display, keypad, audio)
	cpu.SetQuirks(c.Quirks)
	return vm.NewController(cpu, keypad, c.Cycle)
}

// loadProgram reads the configured program from disk and restarts the cpu with it.
func loadProgram(ctrl *vm.Controller, path string) error {
	log.Println("loading", path)

	program, err := rom.Load(path)
	if err != nil {
		return err
	}

	if err := ctrl.Load(program); err != nil {
		return errors.Wrapf(err, "%s", path)
	}

	return nil
}

// newTracer returns a trace handler writing one line per instruction to w.
func newTracer(w io.Writer) cpu.TraceFunc {
	return func(i *cpu.Instruction) {
		fmt.Fprintf(w, "%04x  %04x  %s\n", i.IP, i.Word, i)
	}
}

// openTraceFile creates the file receiving trace output while the terminal
// front end owns the screen.
func openTraceFile(dir string) (*os.File, error) {
	path := filepath.Join(dir, AppName+".trace")
	fd, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create trace file")
	}
	return fd, nil
}

// dumpState writes the machine state to stderr.
func dumpState(ctrl *vm.Controller) {
	s := ctrl.State()
	if err := s.Dump(os.Stderr); err != nil {
		log.Println(err)
	}
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}

package main

import (
	"context"
	"io"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/fffe/clock"
	"github.com/hexaflex/chip8/devices/fffe/tty"
)

// runTerminal runs the program in the terminal front end. It returns once
// the user quits or the program faults.
func runTerminal(config *Config) error {
	screen := tty.NewScreen()
	keypad := tty.NewKeypad()
	audio := newAudio(config)

	var dm devices.Map
	dm.Connect(screen)
	dm.Connect(keypad)
	dm.Connect(audio)

	ctrl := newController(config, screen, keypad, audio)
	if err := loadProgram(ctrl, config.Program); err != nil {
		return err
	}

	// Trace output goes to a file since the screen is taken.
	if config.Debug {
		fd, err := openTraceFile(os.TempDir())
		if err != nil {
			return err
		}
		defer fd.Close()

		log.Println("tracing to", fd.Name())
		ctrl.CPU().SetTrace(newTracer(fd))
	}

	if err := dm.Startup(); err != nil {
		dm.Shutdown()
		return err
	}

	// Log output would garble the screen.
	out := log.Writer()
	log.SetOutput(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return ctrl.Run(ctx)
	})

	g.Go(func() error {
		return clock.Every(ctx, clock.TimerInterval, screen.Draw)
	})

	err := g.Wait()
	log.SetOutput(out)

	if serr := dm.Shutdown(); serr != nil {
		log.Println(serr)
	}

	if err != nil && config.Debug {
		dumpState(ctrl)
	}

	return err
}

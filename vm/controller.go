// Package vm drives a CPU in real time. It serialises instruction cycles
// and timer ticks and offers both a single threaded and a concurrent driver.
package vm

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/fffe/clock"
	"github.com/hexaflex/chip8/devices/fffe/cpu"
)

// DefaultCycle is the default time between instruction cycles.
const DefaultCycle = 5 * time.Millisecond

// errInactive ends Run once the keypad reports shutdown.
var errInactive = errors.New("keypad inactive")

// Controller controls the execution of a CPU.
type Controller struct {
	m        sync.Mutex
	cpu      *cpu.CPU
	keypad   devices.Keypad
	schedule *clock.Schedule
	meter    clock.Meter
	now      func() time.Time
	cycle    time.Duration
	running  bool
}

// NewController creates a new controller for the given CPU.
// The keypad decides when Run returns.
func NewController(c *cpu.CPU, k devices.Keypad, cycle time.Duration) *Controller {
	if cycle <= 0 {
		cycle = DefaultCycle
	}

	return &Controller{
		cpu:      c,
		keypad:   k,
		schedule: clock.NewSchedule(cycle, clock.TimerInterval),
		now:      time.Now,
		cycle:    cycle,
	}
}

// CPU returns the controlled CPU. Callers must not use it
// concurrently with a running controller.
func (c *Controller) CPU() *cpu.CPU {
	return c.cpu
}

// Cycle returns the time between instruction cycles.
func (c *Controller) Cycle() time.Duration {
	return c.cycle
}

// Load resets the CPU and loads the given program.
func (c *Controller) Load(program []byte) error {
	c.m.Lock()
	defer c.m.Unlock()

	log.Println(c.cpu.ID(), "load", len(program), "bytes")
	c.cpu.Reset()
	return c.cpu.Load(program)
}

// State returns a snapshot of the CPU state.
func (c *Controller) State() cpu.State {
	c.m.Lock()
	defer c.m.Unlock()
	return c.cpu.State()
}

// Running returns true if the CPU is currently running.
func (c *Controller) Running() bool {
	c.m.Lock()
	defer c.m.Unlock()
	return c.running
}

// Frequency returns the measured instruction rate in herz.
func (c *Controller) Frequency() float64 {
	c.m.Lock()
	defer c.m.Unlock()

	if !c.running {
		return 0
	}
	return c.meter.Rate(c.now())
}

// Start begins execution of the program.
func (c *Controller) Start() {
	c.m.Lock()
	c.setRunning(true)
	c.m.Unlock()
}

// Stop pauses execution of the program.
func (c *Controller) Stop() {
	c.m.Lock()
	c.setRunning(false)
	c.m.Unlock()
}

// Step performs a single execution cycle.
// A fault stops the controller.
func (c *Controller) Step() error {
	c.m.Lock()
	defer c.m.Unlock()
	return c.step()
}

// Tick advances the timers by one tick.
func (c *Controller) Tick() {
	c.m.Lock()
	c.cpu.Tick()
	c.m.Unlock()
}

// Update runs every cycle and timer tick that has come due by the given
// time, in deadline order. It does nothing while the controller is stopped.
func (c *Controller) Update(now time.Time) error {
	c.m.Lock()
	defer c.m.Unlock()

	for c.running {
		ev, ok := c.schedule.Next(now)
		if !ok {
			return nil
		}

		switch ev {
		case clock.Cycle:
			if err := c.step(); err != nil {
				return err
			}
		case clock.Timer:
			c.cpu.Tick()
		}
	}

	return nil
}

// Run executes the program at the configured rate, with cycles and
// timer ticks on their own goroutines. It returns nil once the context
// is cancelled or the keypad becomes inactive, or the first fault.
func (c *Controller) Run(ctx context.Context) error {
	c.Start()
	defer c.Stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return clock.Every(ctx, c.cycle, func() error {
			if !c.keypad.Active() {
				return errInactive
			}
			return c.Step()
		})
	})

	g.Go(func() error {
		return clock.Every(ctx, clock.TimerInterval, func() error {
			c.Tick()
			return nil
		})
	})

	err := g.Wait()
	if err == errInactive {
		return nil
	}
	return err
}

func (c *Controller) step() error {
	err := c.cpu.Step()
	if err != nil {
		c.setRunning(false)
		return err
	}

	c.meter.Add(1)
	return nil
}

// setRunning determines if the CPU is running or is paused.
func (c *Controller) setRunning(v bool) {
	now := c.now()
	c.running = v
	c.meter.Reset(now)
	c.schedule.Reset(now)
}

// Package beep implements the single tone audio device.
package beep

import (
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
)

// Tone properties.
const (
	SampleRate = 44100 // Output sample rate in herz.
	Frequency  = 440   // Tone pitch in herz.
	Volume     = 0.2   // Tone amplitude in the range [0, 1].
)

// Device plays a square wave tone on the host audio output.
type Device struct {
	m       sync.Mutex
	ctx     *oto.Context
	player  *oto.Player
	playing bool
}

var (
	_ devices.Device = &Device{}
	_ devices.Audio  = &Device{}
)

// New creates a new device.
func New() *Device {
	return &Device{}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.BuiltinID(devices.SerialAudio)
}

// Startup opens the host audio output.
func (d *Device) Startup() error {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return errors.Wrapf(err, "failed to open audio output")
	}
	<-ready

	d.m.Lock()
	d.ctx = ctx
	d.player = ctx.NewPlayer(NewTone(Frequency, SampleRate, Volume))
	d.playing = false
	d.m.Unlock()
	return nil
}

// Shutdown releases the audio player.
func (d *Device) Shutdown() error {
	d.m.Lock()
	defer d.m.Unlock()

	if d.player == nil {
		return nil
	}

	err := d.player.Close()
	d.player = nil
	d.playing = false
	return err
}

// StartTone starts playing the tone if it is not already playing.
func (d *Device) StartTone() {
	d.m.Lock()
	defer d.m.Unlock()

	if !d.playing && d.player != nil {
		d.player.Play()
		d.playing = true
	}
}

// StopTone silences the tone.
func (d *Device) StopTone() {
	d.m.Lock()
	defer d.m.Unlock()

	if d.playing && d.player != nil {
		d.player.Pause()
		d.playing = false
	}
}

// Null is a silent audio device.
type Null struct{}

var (
	_ devices.Device = Null{}
	_ devices.Audio  = Null{}
)

func (Null) ID() devices.ID  { return devices.BuiltinID(devices.SerialAudio) }
func (Null) Startup() error  { return nil }
func (Null) Shutdown() error { return nil }
func (Null) StartTone()      {}
func (Null) StopTone()       {}

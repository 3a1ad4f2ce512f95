package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"

	"github.com/hexaflex/chip8/devices/fffe/cpu"
)

func TestParseConfigDefaults(t *testing.T) {
	var buf bytes.Buffer
	c, err := parseConfig([]string{"pong.ch8"}, env(nil), &buf)
	assert.NoError(t, err)

	assert.Equal(t, "pong.ch8", c.Program)
	assert.Equal(t, 5*time.Millisecond, c.Cycle)
	assert.Equal(t, FrontendGL, c.Frontend)
	assert.Equal(t, 12, c.ScaleFactor)
	assert.Equal(t, cpu.COSMAC, c.Quirks)
	assert.Equal(t, false, c.Debug)
	assert.Equal(t, 0, buf.Len())
}

func TestParseConfigFlags(t *testing.T) {
	var buf bytes.Buffer

	c, err := parseConfig([]string{"-f", "maze.ch8", "-cycle", "2"}, env(nil), &buf)
	assert.NoError(t, err)
	assert.Equal(t, "maze.ch8", c.Program)
	assert.Equal(t, 2*time.Millisecond, c.Cycle)

	c, err = parseConfig([]string{"-file", "tetris.ch8"}, env(nil), &buf)
	assert.NoError(t, err)
	assert.Equal(t, "tetris.ch8", c.Program)
}

func TestParseConfigEnv(t *testing.T) {
	var buf bytes.Buffer

	c, err := parseConfig([]string{"pong.ch8"}, env(map[string]string{
		"DEBUG":            "1",
		"CHIP8_FRONTEND":   "TERM",
		"CHIP8_SCALE":      "4",
		"CHIP8_FULLSCREEN": "yes",
		"CHIP8_MUTE":       "1",
		"CHIP8_QUIRKS":     "chip48",
	}), &buf)

	assert.NoError(t, err)
	assert.Equal(t, true, c.Debug)
	assert.Equal(t, FrontendTerm, c.Frontend)
	assert.Equal(t, 4, c.ScaleFactor)
	assert.Equal(t, true, c.Fullscreen)
	assert.Equal(t, true, c.Mute)
	assert.Equal(t, cpu.CHIP48, c.Quirks)
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		args []string
		env  map[string]string
	}{
		{nil, nil},
		{[]string{"a.ch8", "b.ch8"}, nil},
		{[]string{"-cycle", "0", "a.ch8"}, nil},
		{[]string{"-speed", "3", "a.ch8"}, nil},
		{[]string{"a.ch8"}, map[string]string{"CHIP8_FRONTEND": "sdl"}},
		{[]string{"a.ch8"}, map[string]string{"CHIP8_SCALE": "0"}},
		{[]string{"a.ch8"}, map[string]string{"CHIP8_QUIRKS": "schip"}},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if _, err := parseConfig(tt.args, env(tt.env), &buf); err == nil {
			t.Fatalf("args %v, env %v: expected an error", tt.args, tt.env)
		}
		if buf.Len() == 0 {
			t.Fatalf("args %v, env %v: expected usage output", tt.args, tt.env)
		}
	}
}

func env(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

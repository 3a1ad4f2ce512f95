package rom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"

	"github.com/hexaflex/chip8/devices/fffe/cpu"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.ch8")
	want := []byte{0x00, 0xe0, 0xa2, 0x2a}
	assert.NoError(t, os.WriteFile(path, want, 0o644))

	have, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, want, have)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.ch8"))
	if errors.Cause(err) != ErrNotFound {
		t.Fatalf("expected ErrNotFound; have %v", err)
	}
}

func TestLoadTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.ch8")
	assert.NoError(t, os.WriteFile(path, make([]byte, cpu.ProgramCapacity+1), 0o644))

	_, err := Load(path)
	if errors.Cause(err) != cpu.ErrProgramSize {
		t.Fatalf("expected ErrProgramSize; have %v", err)
	}
}

func TestLoadDirectory(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatalf("expected an error for a directory")
	}
}

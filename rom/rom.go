// Package rom reads program images from disk.
package rom

import (
	"os"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/fffe/cpu"
)

// ErrNotFound is returned when the program file does not exist.
var ErrNotFound = errors.New("file not found")

// Load reads the program image at the given path.
func Load(path string) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	if fi.IsDir() {
		return nil, errors.Errorf("%s is a directory", path)
	}

	if fi.Size() > cpu.ProgramCapacity {
		return nil, errors.Wrapf(cpu.ErrProgramSize, "%s is %d bytes", path, fi.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	return data, nil
}

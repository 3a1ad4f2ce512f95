package devices_test

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/devicetest"
)

func TestID(t *testing.T) {
	id := devices.BuiltinID(devices.SerialKeypad)
	assert.Equal(t, devices.Builtin, id.Manufacturer())
	assert.Equal(t, devices.SerialKeypad, id.Serial())
	assert.Equal(t, "fffe:0003", id.String())
}

func TestMapConnect(t *testing.T) {
	var dm devices.Map

	if !dm.Connect(&devicetest.Device{Serial: 1}) {
		t.Fatalf("expected first connect to succeed")
	}

	if dm.Connect(&devicetest.Device{Serial: 1}) {
		t.Fatalf("expected duplicate connect to fail")
	}

	dm.Connect(&devicetest.Device{Serial: 2})
	assert.Equal(t, 2, len(dm))
	assert.Equal(t, 1, dm.Find(devices.NewID(0xc0fe, 2)))
	assert.Equal(t, -1, dm.Find(devices.NewID(0xc0fe, 3)))
}

func TestMapLifecycle(t *testing.T) {
	errBroken := errors.New("broken")
	a := &devicetest.Device{Serial: 1}
	b := &devicetest.Device{Serial: 2, StartErr: errBroken}

	dm := devices.Map{a, b}

	err := dm.Startup()
	if err == nil {
		t.Fatalf("expected startup error")
	}

	if !errors.Is(err, errBroken) {
		t.Fatalf("expected error set to contain the device error; have %v", err)
	}

	if !strings.Contains(err.Error(), "c0fe:0002") {
		t.Fatalf("expected device id in error; have %q", err.Error())
	}

	if !a.Started {
		t.Fatalf("expected healthy device to be started")
	}

	assert.NoError(t, dm.Shutdown())
	assert.Equal(t, 1, a.Shutdowns)
	assert.Equal(t, 1, b.Shutdowns)
}

func TestBitmap(t *testing.T) {
	var b devices.Bitmap

	b.SetPixel(0, 0, true)
	b.SetPixel(63, 31, true)
	b.SetPixel(64, 0, true)
	b.SetPixel(-1, 5, true)
	b.SetPixel(5, 32, true)

	assert.Equal(t, 2, b.Count())
	assert.Equal(t, true, b.Pixel(0, 0))
	assert.Equal(t, true, b.Pixel(63, 31))
	assert.Equal(t, false, b.Pixel(64, 0))
	assert.Equal(t, false, b.Pixel(0, -1))

	b.SetPixel(0, 0, false)
	assert.Equal(t, false, b.Pixel(0, 0))

	b.Clear()
	assert.Equal(t, 0, b.Count())

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	assert.Equal(t, devices.DisplayHeight, len(lines))
	assert.Equal(t, strings.Repeat(".", devices.DisplayWidth), lines[0])
}

func TestKeyIndex(t *testing.T) {
	tests := []struct {
		r   rune
		key int
	}{
		{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xc},
		{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'r', 0xd},
		{'a', 0x7}, {'s', 0x8}, {'d', 0x9}, {'f', 0xe},
		{'z', 0xa}, {'x', 0x0}, {'c', 0xb}, {'v', 0xf},
		{'Q', 0x4}, {'V', 0xf},
	}

	for _, tt := range tests {
		key, ok := devices.KeyIndex(tt.r)
		if !ok {
			t.Fatalf("%q: expected a mapped key", tt.r)
		}
		assert.Equal(t, tt.key, key)
	}

	if _, ok := devices.KeyIndex('p'); ok {
		t.Fatalf("expected 'p' to be unmapped")
	}
}

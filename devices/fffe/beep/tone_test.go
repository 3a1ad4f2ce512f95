package beep

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTone(t *testing.T) {
	tone := NewTone(1000, 8000, 0.5)

	p := make([]byte, 8*4+3)
	n, err := tone.Read(p)
	assert.NoError(t, err)
	assert.Equal(t, 8*4, n)

	want := []float32{0.5, 0.5, 0.5, 0.5, -0.5, -0.5, -0.5, -0.5}
	for i, w := range want {
		v := math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
		assert.Equal(t, w, v)
	}

	// The phase carries over between reads.
	n, err = tone.Read(p[:8])
	assert.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(p)))
}

func TestToneDegenerate(t *testing.T) {
	tone := NewTone(0, 8000, 1)
	assert.Equal(t, 2, tone.period)

	p := make([]byte, 8)
	_, err := tone.Read(p)
	assert.NoError(t, err)
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(p[4:])))
}

func TestNull(t *testing.T) {
	var d Null
	assert.NoError(t, d.Startup())
	d.StartTone()
	d.StopTone()
	assert.NoError(t, d.Shutdown())
}

func TestDeviceWithoutOutput(t *testing.T) {
	d := New()
	d.StartTone()
	assert.Equal(t, false, d.playing)
	d.StopTone()
	assert.NoError(t, d.Shutdown())
}

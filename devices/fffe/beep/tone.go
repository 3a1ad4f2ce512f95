package beep

import (
	"encoding/binary"
	"math"
)

// Tone is an endless square wave, encoded as mono 32-bit
// little endian float samples.
type Tone struct {
	period int // Samples per wave period.
	phase  int // Sample position in the current period.
	high   [4]byte
	low    [4]byte
}

// NewTone creates a square wave of the given frequency and amplitude
// for the given sample rate.
func NewTone(frequency, sampleRate int, amplitude float32) *Tone {
	t := &Tone{period: 2}
	if frequency > 0 && sampleRate/frequency > 2 {
		t.period = sampleRate / frequency
	}

	binary.LittleEndian.PutUint32(t.high[:], math.Float32bits(amplitude))
	binary.LittleEndian.PutUint32(t.low[:], math.Float32bits(-amplitude))
	return t
}

// Read fills p with whole samples. It never fails.
func (t *Tone) Read(p []byte) (int, error) {
	n := len(p) &^ 3

	for i := 0; i < n; i += 4 {
		if t.phase < t.period/2 {
			copy(p[i:], t.high[:])
		} else {
			copy(p[i:], t.low[:])
		}
		t.phase = (t.phase + 1) % t.period
	}

	return n, nil
}

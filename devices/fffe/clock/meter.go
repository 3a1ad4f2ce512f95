package clock

import "time"

// Meter measures how often an event occurs.
type Meter struct {
	start time.Time
	count uint64
}

// Reset clears the count and restarts measuring at the given time.
func (m *Meter) Reset(now time.Time) {
	m.start = now
	m.count = 0
}

// Add records n occurrences.
func (m *Meter) Add(n int) {
	m.count += uint64(n)
}

// Rate returns the number of occurrences per second since the last reset.
func (m *Meter) Rate(now time.Time) float64 {
	elapsed := now.Sub(m.start).Seconds()
	if m.start.IsZero() || elapsed <= 0 {
		return 0
	}
	return float64(m.count) / elapsed
}

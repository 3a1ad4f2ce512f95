// Package clock provides the pacing primitives that drive the interpreter:
// a deterministic two-cadence schedule for single threaded loops and a
// ticker loop for concurrent ones.
package clock

import "time"

// Known event types.
const (
	Cycle Event = iota // Execute one instruction.
	Timer              // Decrement the delay and sound timers.
)

// TimerInterval is the fixed timer cadence of 60Hz.
const TimerInterval = time.Second / 60

// MaxLag is how far a schedule may fall behind before it drops
// the missed events and starts over from the current time.
const MaxLag = 250 * time.Millisecond

// Event identifies a scheduled event type.
type Event int

func (e Event) String() string {
	switch e {
	case Cycle:
		return "cycle"
	case Timer:
		return "timer"
	}
	return "unknown"
}

// Schedule interleaves instruction cycles and timer ticks by their
// deadlines. It does not sleep; the caller feeds it the current time.
type Schedule struct {
	cycle     time.Duration // Time between instruction cycles.
	timer     time.Duration // Time between timer ticks.
	nextCycle time.Time     // Deadline of the next cycle.
	nextTimer time.Time     // Deadline of the next timer tick.
	dropped   int           // Number of resynchronisations.
}

// NewSchedule creates a schedule with the given cadences.
// Non-positive durations are clamped to 1ms.
func NewSchedule(cycle, timer time.Duration) *Schedule {
	if cycle <= 0 {
		cycle = time.Millisecond
	}
	if timer <= 0 {
		timer = time.Millisecond
	}
	return &Schedule{
		cycle: cycle,
		timer: timer,
	}
}

// Reset makes the first events of both types due one period after now.
func (s *Schedule) Reset(now time.Time) {
	s.nextCycle = now.Add(s.cycle)
	s.nextTimer = now.Add(s.timer)
}

// Next returns the earliest event which is due at the given time and
// moves its deadline forward by one period. Returns false if nothing is due.
// On a tie the cycle comes first. If the schedule has fallen more than
// MaxLag behind, the backlog is dropped and nothing is returned.
func (s *Schedule) Next(now time.Time) (Event, bool) {
	due := s.nextCycle
	if s.nextTimer.Before(due) {
		due = s.nextTimer
	}

	if now.Sub(due) > MaxLag {
		s.dropped++
		s.Reset(now)
		return 0, false
	}

	if now.Before(due) {
		return 0, false
	}

	if !s.nextCycle.After(s.nextTimer) {
		s.nextCycle = s.nextCycle.Add(s.cycle)
		return Cycle, true
	}

	s.nextTimer = s.nextTimer.Add(s.timer)
	return Timer, true
}

// Until returns the time left until the next event is due.
func (s *Schedule) Until(now time.Time) time.Duration {
	due := s.nextCycle
	if s.nextTimer.Before(due) {
		due = s.nextTimer
	}
	if d := due.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Dropped returns how often the schedule had to resynchronise.
func (s *Schedule) Dropped() int {
	return s.dropped
}

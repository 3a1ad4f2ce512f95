package clock

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

func TestScheduleOrder(t *testing.T) {
	start := time.Unix(1000, 0)
	s := NewSchedule(5*time.Millisecond, 12*time.Millisecond)
	s.Reset(start)

	var events []Event
	now := start.Add(25 * time.Millisecond)
	for {
		ev, ok := s.Next(now)
		if !ok {
			break
		}
		events = append(events, ev)
	}

	// Cycles at 5, 10, 15, 20, 25 and timers at 12, 24.
	want := []Event{Cycle, Cycle, Timer, Cycle, Cycle, Timer, Cycle}
	assert.Equal(t, want, events)
	assert.Equal(t, 0, s.Dropped())
}

func TestScheduleNothingDue(t *testing.T) {
	start := time.Unix(1000, 0)
	s := NewSchedule(5*time.Millisecond, TimerInterval)
	s.Reset(start)

	if _, ok := s.Next(start.Add(4 * time.Millisecond)); ok {
		t.Fatalf("expected no event before the first deadline")
	}

	assert.Equal(t, time.Millisecond, s.Until(start.Add(4*time.Millisecond)))
}

func TestScheduleResync(t *testing.T) {
	start := time.Unix(1000, 0)
	s := NewSchedule(time.Millisecond, TimerInterval)
	s.Reset(start)

	now := start.Add(time.Second)
	if _, ok := s.Next(now); ok {
		t.Fatalf("expected the backlog to be dropped")
	}
	assert.Equal(t, 1, s.Dropped())

	ev, ok := s.Next(now.Add(time.Millisecond))
	assert.Equal(t, true, ok)
	assert.Equal(t, Cycle, ev)

	if _, ok := s.Next(now.Add(time.Millisecond)); ok {
		t.Fatalf("expected a single event after resync")
	}
}

func TestScheduleClamp(t *testing.T) {
	start := time.Unix(1000, 0)
	s := NewSchedule(0, -1)
	s.Reset(start)

	ev, ok := s.Next(start.Add(time.Millisecond))
	assert.Equal(t, true, ok)
	assert.Equal(t, Cycle, ev)

	ev, ok = s.Next(start.Add(time.Millisecond))
	assert.Equal(t, true, ok)
	assert.Equal(t, Timer, ev)
}

func TestEvery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int
	err := Every(ctx, time.Millisecond, func() error {
		calls++
		if calls == 3 {
			cancel()
		}
		return nil
	})

	assert.NoError(t, err)
	if calls < 3 {
		t.Fatalf("expected at least 3 calls; have %d", calls)
	}
}

func TestEveryError(t *testing.T) {
	errStop := errors.New("stop")

	err := Every(context.Background(), time.Millisecond, func() error {
		return errStop
	})

	if errors.Cause(err) != errStop {
		t.Fatalf("expected errStop; have %v", err)
	}
}

func TestMeter(t *testing.T) {
	var m Meter
	start := time.Unix(1000, 0)

	assert.Equal(t, 0.0, m.Rate(start))

	m.Reset(start)
	m.Add(300)
	m.Add(200)

	assert.Equal(t, 250.0, m.Rate(start.Add(2*time.Second)))
	assert.Equal(t, "timer", Timer.String())
}

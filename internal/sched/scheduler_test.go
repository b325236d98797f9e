package sched

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func newTestScheduler(cycle CycleFunc) *Scheduler {
	s := New(cycle)
	s.tick = 10 * time.Millisecond // "minutes" shrunk for tests
	return s
}

func TestSchedulerRunsCycles(t *testing.T) {
	var runs atomic.Int32
	s := newTestScheduler(func(context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Enable(1)
	defer s.Disable()

	deadline := time.After(2 * time.Second)
	for runs.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("cycles = %d, want at least 2", runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSchedulerDisableStopsFutureWork(t *testing.T) {
	var runs atomic.Int32
	s := newTestScheduler(func(context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Enable(1)
	time.Sleep(35 * time.Millisecond)
	s.Disable()

	after := runs.Load()
	time.Sleep(50 * time.Millisecond)
	if got := runs.Load(); got != after {
		t.Errorf("cycles after Disable() = %d, want frozen at %d", got, after)
	}
	if s.Enabled() {
		t.Error("Enabled() = true after Disable()")
	}
}

func TestSchedulerInvalidIntervalFallsBack(t *testing.T) {
	s := newTestScheduler(func(context.Context) error { return nil })

	for _, bad := range []int{0, -3} {
		s.Enable(bad)
		if got := s.Interval(); got != DefaultIntervalMin*s.tick {
			t.Errorf("Enable(%d) interval = %v, want default %v",
				bad, got, DefaultIntervalMin*s.tick)
		}
		s.Disable()
	}
}

func TestSchedulerSlowCycleDelaysNext(t *testing.T) {
	var stamps []time.Time
	cycleTime := 30 * time.Millisecond

	s := newTestScheduler(func(context.Context) error {
		stamps = append(stamps, time.Now())
		time.Sleep(cycleTime)
		return nil
	})

	s.Enable(1)
	time.Sleep(120 * time.Millisecond)
	s.Disable()

	if len(stamps) < 2 {
		t.Fatalf("cycles = %d, want at least 2", len(stamps))
	}
	// Interval (10ms) + cycle duration (30ms): consecutive starts must
	// be at least a full cycle apart, not fixed-rate.
	if gap := stamps[1].Sub(stamps[0]); gap < cycleTime {
		t.Errorf("gap between cycles = %v, want >= cycle duration %v", gap, cycleTime)
	}
}

func TestSchedulerDisableIsIdempotent(t *testing.T) {
	s := newTestScheduler(func(context.Context) error { return nil })
	s.Disable() // never enabled
	s.Enable(1)
	s.Disable()
	s.Disable()
}

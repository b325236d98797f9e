// Package sched drives the unattended fetch+classify cycle on a
// self-rearming timer.
package sched

import (
	"context"
	"sync"
	"time"
)

// DefaultIntervalMin is the cycle interval applied when Enable is
// given an invalid value.
const DefaultIntervalMin = 5

// CycleFunc runs one unattended fetch+classify cycle. Replies are
// never sent by a cycle; any reply a caller triggers from its results
// carries the "auto" mode tag.
type CycleFunc func(ctx context.Context) error

// Scheduler repeats a cycle at a fixed interval. The timer is one-shot
// and re-armed only after the previous cycle finishes, so a slow cycle
// delays the next one by its own duration and at most one cycle is in
// flight at a time. Disabling cancels the loop's context, so an armed
// timer stops future work instead of firing inertly.
type Scheduler struct {
	cycle CycleFunc

	mu       sync.Mutex
	enabled  bool
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}

	// tick is the unit an interval is expressed in; tests shrink it.
	tick time.Duration
}

// New creates a Scheduler for the given cycle, disabled.
func New(cycle CycleFunc) *Scheduler {
	return &Scheduler{
		cycle: cycle,
		tick:  time.Minute,
	}
}

// Enable validates the interval (minutes, >= 1; anything else falls
// back to the default of 5) and starts the repeating loop. Enabling an
// already enabled scheduler restarts it with the new interval.
func (s *Scheduler) Enable(intervalMin int) {
	if intervalMin < 1 {
		intervalMin = DefaultIntervalMin
	}

	s.Disable()

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	s.enabled = true
	s.interval = time.Duration(intervalMin) * s.tick
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx, s.interval, s.done)
}

// Disable stops the loop and waits for any in-flight cycle to finish.
// Disabling a disabled scheduler is a no-op.
func (s *Scheduler) Disable() {
	s.mu.Lock()
	if !s.enabled {
		s.mu.Unlock()
		return
	}
	s.enabled = false
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()
	<-done
}

// Enabled reports whether the scheduler is currently running.
func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Interval returns the configured cycle interval.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// run arms a one-shot timer, executes the cycle when it fires, then
// re-arms. Cycle errors are deliberately not retried; the next firing
// simply tries again.
func (s *Scheduler) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			_ = s.cycle(ctx)
			timer.Reset(interval)
		}
	}
}

// Package scheduler runs timer callbacks on a single queue. Every scheduled
// function executes on one goroutine, one at a time, so a tick and an answer
// update routed through the same scheduler can never interleave mid-mutation.
package scheduler

import (
	"sync/atomic"
	"time"
)

// Task is a handle to a scheduled callback.
type Task struct {
	cancelled atomic.Bool
	stop      chan struct{}
}

// Cancel stops future fires. It is idempotent, and because the flag is
// checked again on the run queue, a task that was already in flight when
// Cancel was called will not execute.
func (t *Task) Cancel() {
	if t.cancelled.CompareAndSwap(false, true) {
		close(t.stop)
	}
}

// Scheduler owns the run queue.
type Scheduler struct {
	tasks chan func()
	quit  chan struct{}
	done  chan struct{}
}

// New starts a scheduler with a running queue goroutine.
func New() *Scheduler {
	s := &Scheduler{
		tasks: make(chan func(), 16),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Scheduler) run() {
	defer close(s.done)
	for {
		select {
		case fn := <-s.tasks:
			fn()
		case <-s.quit:
			return
		}
	}
}

// Stop shuts the queue down. Scheduled tasks stop firing; Stop does not wait
// for their timer goroutines, which exit on their next timer or stop signal.
func (s *Scheduler) Stop() {
	close(s.quit)
	<-s.done
}

// Every schedules fn to run once per interval until the task is cancelled.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Task {
	t := &Task{stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-s.quit:
				return
			case <-ticker.C:
				s.enqueue(t, fn)
			}
		}
	}()
	return t
}

// After schedules fn to run once after the delay unless cancelled first.
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	t := &Task{stop: make(chan struct{})}
	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-t.stop:
		case <-s.quit:
		case <-timer.C:
			s.enqueue(t, fn)
		}
	}()
	return t
}

// enqueue hands the callback to the queue goroutine. The cancellation flag is
// re-checked right before the callback runs.
func (s *Scheduler) enqueue(t *Task, fn func()) {
	wrapped := func() {
		if t.cancelled.Load() {
			return
		}
		fn()
	}
	select {
	case s.tasks <- wrapped:
	case <-s.quit:
	}
}

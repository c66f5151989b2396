package pad

import (
	"slices"
	"time"
)

// Task is a callback scheduled on a Scheduler.
type Task struct {
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

// Cancel prevents the task from running. Cancelling twice, or after the
// task ran, does nothing.
func (t *Task) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// Scheduler runs callbacks at points on a monotonic timeline advanced by the
// host. It never starts goroutines.
type Scheduler struct {
	tasks  []*Task
	seq    uint64
	closed bool
}

// After schedules fn to run once the timeline passes now+d. After Close it
// returns a task that never runs.
func (s *Scheduler) After(now, d time.Duration, fn func()) *Task {
	s.seq++
	t := &Task{due: now + d, seq: s.seq, fn: fn}
	if s.closed {
		t.cancelled = true
		return t
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance runs every live task due at or before now, earliest first.
// Tasks scheduled by a callback run in the same call if they are due.
func (s *Scheduler) Advance(now time.Duration) {
	for !s.closed {
		var next *Task
		for _, t := range s.tasks {
			if t.cancelled || t.due > now {
				continue
			}
			if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
				next = t
			}
		}
		if next == nil {
			s.prune()
			return
		}
		next.cancelled = true
		next.fn()
	}
}

// Pending returns the number of live tasks.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Close cancels all tasks; later ones are discarded on arrival.
func (s *Scheduler) Close() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	s.tasks = nil
	s.closed = true
}

func (s *Scheduler) prune() {
	s.tasks = slices.DeleteFunc(s.tasks, func(t *Task) bool { return t.cancelled })
}

package clock

import (
	"sort"
	"time"
)

// Task is a one-shot deferred callback owned by a Scheduler.
type Task struct {
	due       time.Time
	seq       int
	fn        func()
	cancelled bool
	done      bool
}

// Cancel prevents the task from running. It returns false if the task already
// ran or was cancelled before.
func (t *Task) Cancel() bool {
	if t == nil || t.cancelled || t.done {
		return false
	}
	t.cancelled = true
	return true
}

// Pending reports whether the task is still waiting to run.
func (t *Task) Pending() bool {
	return t != nil && !t.cancelled && !t.done
}

// Scheduler holds deferred callbacks and runs them when pumped. Callbacks only
// ever execute inside RunDue, on the caller's goroutine, so they never race
// with tick or input processing.
type Scheduler struct {
	clock   Clock
	tasks   []*Task
	seq     int
	stopped bool
}

// NewScheduler creates a scheduler reading time from c.
func NewScheduler(c Clock) *Scheduler {
	return &Scheduler{clock: c}
}

// After schedules fn to run once d has elapsed. A stopped scheduler returns an
// already-cancelled task.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	s.seq++
	t := &Task{due: s.clock.Now().Add(d), seq: s.seq, fn: fn}
	if s.stopped {
		t.cancelled = true
		return t
	}
	s.tasks = append(s.tasks, t)
	return t
}

// RunDue runs every pending task whose due time has passed, earliest first,
// and returns how many ran. Tasks scheduled by a running callback wait for the
// next pump.
func (s *Scheduler) RunDue() int {
	if s.stopped || len(s.tasks) == 0 {
		return 0
	}

	now := s.clock.Now()
	var due, later []*Task
	for _, t := range s.tasks {
		switch {
		case t.cancelled:
		case !t.due.After(now):
			due = append(due, t)
		default:
			later = append(later, t)
		}
	}
	s.tasks = later

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})

	ran := 0
	for _, t := range due {
		if t.cancelled || s.stopped {
			continue
		}
		t.done = true
		t.fn()
		ran++
	}
	return ran
}

// CancelAll cancels every pending task.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.Cancel()
	}
	s.tasks = nil
}

// Stop cancels all pending tasks and refuses new ones.
func (s *Scheduler) Stop() {
	s.CancelAll()
	s.stopped = true
}

// Pending returns the number of tasks still waiting to run.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if t.Pending() {
			n++
		}
	}
	return n
}

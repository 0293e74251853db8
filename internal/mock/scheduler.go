package mock

import (
	"sync"
	"time"

	"github.com/AJMerr/little-moments-client/internal/urlcache"
)

// Scheduler is a mock implementation of the urlcache Scheduler interface.
// It records scheduled tasks so tests can fire or cancel them explicitly.
type Scheduler struct {
	mu    sync.Mutex
	tasks []*Task
}

// Task is one recorded AfterFunc call.
type Task struct {
	Delay    time.Duration
	Fn       func()
	Canceled bool
	Fired    bool
}

// AfterFunc records the task and returns a CancelFunc that marks it
// canceled.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) urlcache.CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &Task{Delay: d, Fn: fn}
	s.tasks = append(s.tasks, t)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.Canceled = true
	}
}

// Tasks returns all recorded tasks in scheduling order.
func (s *Scheduler) Tasks() []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Pending returns the tasks that have neither fired nor been canceled.
func (s *Scheduler) Pending() []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Task
	for _, t := range s.tasks {
		if !t.Canceled && !t.Fired {
			out = append(out, t)
		}
	}
	return out
}

// Fire runs every pending task recorded so far, as the timers would.
func (s *Scheduler) Fire() {
	for _, t := range s.Pending() {
		t.Fired = true
		t.Fn()
	}
}

package core

import "sync"

// Scheduler coalesces component updates and defers post-commit tasks.
//
// SetState does not patch the live tree inline: it marks the instance dirty
// here, and the next Flush runs one reconciliation pass per dirty instance,
// run-to-completion. Mounted notifications are posted as tasks and drained
// after the update phase, so they observe a committed tree.
type Scheduler struct {
	mu       sync.Mutex
	dirty    []Component
	dirtySet map[Component]bool
	tasks    []func()
	flushing bool

	// OnWake is called when work arrives while the scheduler is idle,
	// signalling the host that a flush should be driven.
	OnWake func()
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{dirtySet: make(map[Component]bool)}
}

// ScheduleUpdate marks a component instance as needing an update. Scheduling
// the same instance again before the next flush is a no-op.
func (s *Scheduler) ScheduleUpdate(c Component) {
	if c == nil {
		return
	}
	added := func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.dirtySet == nil {
			s.dirtySet = make(map[Component]bool)
		}
		if s.dirtySet[c] {
			return false
		}
		s.dirtySet[c] = true
		s.dirty = append(s.dirty, c)
		return true
	}()
	if added {
		s.wake()
	}
}

// Post queues a deferred task, run after the next flush's update phase.
func (s *Scheduler) Post(task func()) {
	if task == nil {
		return
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()
	s.wake()
}

// HasWork reports whether a flush would do anything.
func (s *Scheduler) HasWork() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dirty) > 0 || len(s.tasks) > 0
}

// Flush drains the dirty queue, updating each still-live instance, then runs
// deferred tasks, repeating until both queues are empty. Updates scheduled
// while flushing join the current drain.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	if s.flushing {
		s.mu.Unlock()
		return
	}
	s.flushing = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.flushing = false
		s.mu.Unlock()
	}()

	for {
		s.mu.Lock()
		dirty := s.dirty
		s.dirty = nil
		clear(s.dirtySet)
		s.mu.Unlock()

		for _, c := range dirty {
			b := c.base()
			if b.status == statusUnmounted {
				continue
			}
			runComponentUpdate(c, b.props, b.children)
		}

		s.mu.Lock()
		if len(s.dirty) > 0 {
			s.mu.Unlock()
			continue
		}
		tasks := s.tasks
		s.tasks = nil
		s.mu.Unlock()

		if len(tasks) == 0 {
			return
		}
		for _, task := range tasks {
			task()
		}
	}
}

func (s *Scheduler) wake() {
	s.mu.Lock()
	wake := s.OnWake
	flushing := s.flushing
	s.mu.Unlock()
	if wake != nil && !flushing {
		wake()
	}
}

var defaultScheduler = NewScheduler()

// DefaultScheduler returns the scheduler used by [Render].
func DefaultScheduler() *Scheduler {
	return defaultScheduler
}

// Flush drains the default scheduler.
func Flush() {
	defaultScheduler.Flush()
}

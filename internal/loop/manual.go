package loop

import (
	"sort"
	"time"
)

// ManualScheduler fires callbacks synchronously as virtual time advances.
// Callbacks due at the same instant fire in the order they were armed.
// Tests use it to drive countdowns without sleeping.
type ManualScheduler struct {
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	seq       int
	next      time.Time
	interval  time.Duration
	fn        func()
	cancelled bool
}

// NewManualScheduler starts virtual time at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

func (s *ManualScheduler) Now() time.Time {
	return s.now
}

func (s *ManualScheduler) Every(interval time.Duration, fn func()) func() {
	return s.add(interval, interval, fn)
}

func (s *ManualScheduler) After(d time.Duration, fn func()) func() {
	return s.add(d, 0, fn)
}

func (s *ManualScheduler) add(delay, interval time.Duration, fn func()) func() {
	s.seq++
	task := &manualTask{seq: s.seq, next: s.now.Add(delay), interval: interval, fn: fn}
	s.tasks = append(s.tasks, task)
	return func() { task.cancelled = true }
}

// Pending counts armed callbacks.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, firing due callbacks in order.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now.Add(d)
	for {
		task := s.nextDue(target)
		if task == nil {
			break
		}
		s.now = task.next
		if task.interval > 0 {
			task.next = task.next.Add(task.interval)
		} else {
			task.cancelled = true
		}
		task.fn()
	}
	s.now = target
	s.compact()
}

func (s *ManualScheduler) nextDue(target time.Time) *manualTask {
	var due []*manualTask
	for _, t := range s.tasks {
		if !t.cancelled && !t.next.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].next.Equal(due[j].next) {
			return due[i].next.Before(due[j].next)
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (s *ManualScheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	s.tasks = live
}

// Package loop provides the single logical thread every quiz, timer and
// animation callback runs on, plus the schedulers that feed it.
package loop

import (
	"context"
	"sync"
	"time"
)

// Scheduler arms callbacks that must run on the owning thread.
type Scheduler interface {
	// Every runs fn each interval until the returned cancel is called.
	Every(interval time.Duration, fn func()) (cancel func())
	// After runs fn once after d unless cancelled first.
	After(d time.Duration, fn func()) (cancel func())
	// Now returns the scheduler's notion of the current time.
	Now() time.Time
}

// Loop serializes callbacks onto the goroutine running Run.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
	now   func() time.Time
}

// New creates a loop with a task queue of the given capacity.
func New(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
		now:   time.Now,
	}
}

// Run executes posted callbacks until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop ends Run. Safe to call more than once.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}

// Post queues fn. It reports false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

func (l *Loop) Now() time.Time {
	return l.now()
}

// Every starts a ticker goroutine that posts fn to the loop.
func (l *Loop) Every(interval time.Duration, fn func()) func() {
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if !l.Post(fn) {
					return
				}
			case <-stop:
				return
			case <-l.done:
				return
			}
		}
	}()
	return func() { once.Do(func() { close(stop) }) }
}

// After posts fn once after d.
func (l *Loop) After(d time.Duration, fn func()) func() {
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			l.Post(fn)
		case <-stop:
		case <-l.done:
		}
	}()
	return func() { once.Do(func() { close(stop) }) }
}

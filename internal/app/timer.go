package app

import "time"

// LowTimeSeconds is the remaining time at or below which a running countdown is flagged.
const LowTimeSeconds = 5

// Timer is the single countdown of the active question. It owns at most one
// scheduled tick; Start always cancels the previous one first.
type Timer struct {
	sched    Scheduler
	onTick   func(remaining int, low bool)
	onExpire func()

	remaining int
	running   bool
	cancel    func()
	// gen invalidates ticks that were already queued when their countdown was cancelled.
	gen uint64
}

// NewTimer creates a stopped timer. onTick and onExpire run on the scheduler's thread.
func NewTimer(sched Scheduler, onTick func(remaining int, low bool), onExpire func()) *Timer {
	if onTick == nil {
		onTick = func(int, bool) {}
	}
	if onExpire == nil {
		onExpire = func() {}
	}
	return &Timer{sched: sched, onTick: onTick, onExpire: onExpire}
}

// Start (re)arms the countdown at seconds and reports the initial value.
func (t *Timer) Start(seconds int) {
	t.Stop()
	t.remaining = seconds
	t.onTick(t.remaining, lowTime(t.remaining))
	if seconds <= 0 {
		return
	}
	t.running = true
	gen := t.gen
	t.cancel = t.sched.Every(time.Second, func() {
		if gen != t.gen || !t.running {
			return
		}
		t.tick()
	})
}

// Stop cancels the countdown. Idempotent.
func (t *Timer) Stop() {
	t.gen++
	t.running = false
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Timer) tick() {
	t.remaining--
	t.onTick(t.remaining, lowTime(t.remaining))
	if t.remaining <= 0 {
		t.Stop()
		t.onExpire()
	}
}

// Remaining returns the seconds left on the countdown.
func (t *Timer) Remaining() int {
	return t.remaining
}

// Running reports whether a countdown is armed.
func (t *Timer) Running() bool {
	return t.running
}

func lowTime(remaining int) bool {
	return remaining > 0 && remaining <= LowTimeSeconds
}

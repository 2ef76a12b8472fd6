package loop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopRunsPostedCallbacksInOrder(t *testing.T) {
	l := New(8)
	var (
		mu  sync.Mutex
		got []int
	)
	for i := 0; i < 5; i++ {
		i := i
		require.True(t, l.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}))
	}
	require.True(t, l.Post(l.Stop))

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	assert.False(t, l.Post(func() {}), "post after stop must be rejected")
}

func TestLoopEveryStopsAfterCancel(t *testing.T) {
	l := New(8)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ticks := 0
	var stopTicks func()
	stopTicks = l.Every(5*time.Millisecond, func() {
		ticks++
		if ticks == 3 {
			stopTicks()
			l.After(100*time.Millisecond, l.Stop)
		}
	})

	require.NoError(t, l.Run(ctx))
	assert.GreaterOrEqual(t, ticks, 3)
	assert.Less(t, ticks, 10, "ticks must stop once cancelled")
}

func TestManualSchedulerFiresInTimeOrder(t *testing.T) {
	s := NewManualScheduler(time.Unix(0, 0))
	var order []string
	s.After(2*time.Second, func() { order = append(order, "after-2s") })
	cancel := s.Every(time.Second, func() { order = append(order, "tick") })

	s.Advance(2 * time.Second)
	assert.Equal(t, []string{"tick", "after-2s", "tick"}, order)

	cancel()
	s.Advance(5 * time.Second)
	assert.Len(t, order, 3)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, time.Unix(7, 0), s.Now())
}

func TestManualSchedulerTasksArmedDuringFireStartFromFireTime(t *testing.T) {
	s := NewManualScheduler(time.Unix(0, 0))
	var firedAt []time.Time
	s.After(time.Second, func() {
		s.After(time.Second, func() { firedAt = append(firedAt, s.Now()) })
	})

	s.Advance(3 * time.Second)
	require.Len(t, firedAt, 1)
	assert.Equal(t, time.Unix(2, 0), firedAt[0])
}

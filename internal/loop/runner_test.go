package loop

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignPad/internal/anim"
	"SignPad/internal/geometry"
	"SignPad/internal/pad"
)

func newRunner(t *testing.T) *Runner {
	t.Helper()
	timing := anim.DefaultTiming()
	timing.PerUnit = 100 * time.Microsecond
	r := New(pad.NewController(timing), Options{FrameRate: 240})
	t.Cleanup(r.Close)
	return r
}

func drawLine(r *Runner, length float64) {
	r.PointerDown(geometry.Pt(0, 0))
	r.PointerMove(geometry.Pt(length, 0))
	r.PointerUp()
}

func TestRunnerPublishesSnapshots(t *testing.T) {
	r := newRunner(t)
	require.NotNil(t, r.Snapshot())
	assert.False(t, r.Snapshot().HasInk())

	var seen atomic.Int32
	cancel := r.Subscribe(func(s *pad.Snapshot) {
		if s.HasInk() {
			seen.Add(1)
		}
	})
	defer cancel()

	drawLine(r, 100)
	require.NoError(t, r.Do(func(*pad.Controller) {}))
	assert.Equal(t, 100.0, r.Snapshot().TotalLength)
	assert.Len(t, r.Snapshot().Strokes, 1)
	require.Eventually(t, func() bool {
		return seen.Load() > 0
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSubscriberMayCallBackIntoRunner(t *testing.T) {
	r := newRunner(t)
	errs := make(chan error, 1)
	var once atomic.Bool
	cancel := r.Subscribe(func(s *pad.Snapshot) {
		if s.HasInk() && once.CompareAndSwap(false, true) {
			errs <- r.Do(func(c *pad.Controller) { c.Erase() })
		}
	})
	defer cancel()

	drawLine(r, 100)
	select {
	case err := <-errs:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Do from a subscriber never returned")
	}
	require.Eventually(t, func() bool {
		return !r.Snapshot().HasInk()
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRunnerHoldSignsOverTime(t *testing.T) {
	r := newRunner(t)
	drawLine(r, 100) // 10ms fill
	r.HoldPress()

	require.Eventually(t, func() bool {
		return r.Snapshot().Signed
	}, 2*time.Second, 5*time.Millisecond)
	assert.True(t, r.Snapshot().Pressing)

	r.HoldRelease()
	require.NoError(t, r.Do(func(*pad.Controller) {}))
	assert.True(t, r.Snapshot().Signed)
	assert.False(t, r.Snapshot().Pressing)

	r.Erase()
	require.NoError(t, r.Do(func(*pad.Controller) {}))
	assert.False(t, r.Snapshot().Signed)
}

func TestRunnerPlaybackAutoStops(t *testing.T) {
	r := newRunner(t)
	drawLine(r, 1000) // 100ms preview
	r.Play()
	require.NoError(t, r.Do(func(c *pad.Controller) {
		assert.True(t, c.Playing())
	}))
	require.Eventually(t, func() bool {
		return !r.Snapshot().Playing
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1.0, r.Snapshot().Progress)
}

func TestRunnerUnsubscribe(t *testing.T) {
	r := newRunner(t)
	var calls atomic.Int32
	cancel := r.Subscribe(func(*pad.Snapshot) { calls.Add(1) })
	cancel()
	cancel()

	drawLine(r, 10)
	require.NoError(t, r.Do(func(*pad.Controller) {}))
	assert.Zero(t, calls.Load())
}

func TestRunnerClose(t *testing.T) {
	timing := anim.DefaultTiming()
	r := New(pad.NewController(timing), Options{})
	drawLine(r, 1000)
	r.Play()
	r.Close()
	r.Close()

	assert.ErrorIs(t, r.Submit(func(*pad.Controller) {}), ErrClosed)
	assert.ErrorIs(t, r.Do(func(*pad.Controller) {}), ErrClosed)
	// events after teardown are dropped quietly
	r.Play()
	r.Erase()
}

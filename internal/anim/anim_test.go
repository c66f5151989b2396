package anim

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ms = time.Millisecond

func TestCubicBezierEndpointsAndMonotone(t *testing.T) {
	c := CubicBezier(0.4, 0, 0.5, 1)
	assert.Equal(t, float32(0), c(0))
	assert.Equal(t, float32(1), c(1))
	assert.Equal(t, float32(0), c(-3))
	assert.Equal(t, float32(1), c(4))

	prev := float32(0)
	for i := 1; i < 100; i++ {
		v := c(float32(i) / 100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
	// the identity control points give a linear curve
	lin := CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	assert.InDelta(t, 0.3, lin(0.3), 1e-4)
}

func TestCurveByName(t *testing.T) {
	for _, name := range []string{"", "bezier", "ease-out", "Ease-In-Out", "linear", "ease-in"} {
		c, ok := CurveByName(name)
		require.True(t, ok, name)
		assert.NotNil(t, c)
	}
	_, ok := CurveByName("bounce")
	assert.False(t, ok)
}

func TestTiming(t *testing.T) {
	tm := DefaultTiming()
	assert.Equal(t, 200*ms, tm.Full(100))
	assert.Equal(t, time.Duration(0), tm.Full(0))
	assert.Equal(t, 100*ms, tm.Preview(100, 0.5))
	assert.Equal(t, 50*ms, tm.Fill(100, 0.75))
	assert.Equal(t, 20*ms, tm.Spring(100, 0.1))

	tm.FillScale = 2
	tm.DrainScale = 0.5
	assert.Equal(t, 400*ms, tm.Fill(100, 0))
	assert.Equal(t, 100*ms, tm.Spring(100, 1))
	assert.Equal(t, time.Duration(0), tm.Spring(100, -1))
}

func TestRevealRetargetAndComplete(t *testing.T) {
	r := NewReveal()
	require.True(t, r.Resting())
	require.Equal(t, 1.0, r.Progress())

	r.Rewind()
	assert.Equal(t, 0.0, r.Progress())
	assert.False(t, r.Resting())

	calls := 0
	r.Retarget(0, 1, 100*ms, fyne.AnimationLinear, func() { calls++ })
	assert.True(t, r.Animating())
	assert.Equal(t, 1.0, r.Target())

	r.Tick(25 * ms)
	assert.InDelta(t, 0.25, r.Progress(), 1e-6)
	assert.Equal(t, 0, calls)

	r.Tick(100 * ms)
	assert.Equal(t, 1.0, r.Progress())
	assert.Equal(t, 1, calls)
	assert.False(t, r.Animating())

	r.Tick(200 * ms)
	assert.Equal(t, 1, calls)
}

func TestRevealRetargetStartsFromCurrentValue(t *testing.T) {
	r := NewReveal()
	r.Rewind()
	replaced := false
	r.Retarget(0, 1, 100*ms, fyne.AnimationLinear, func() { replaced = true })
	r.Tick(40 * ms)

	// flip direction mid-flight at a time not yet ticked
	r.Retarget(60*ms, 0, 60*ms, fyne.AnimationLinear, nil)
	assert.InDelta(t, 0.6, r.Progress(), 1e-6)

	r.Tick(90 * ms)
	assert.InDelta(t, 0.3, r.Progress(), 1e-6)
	r.Tick(120 * ms)
	assert.Equal(t, 0.0, r.Progress())
	assert.False(t, replaced)
}

func TestRevealZeroDurationFinishesOnNextTick(t *testing.T) {
	r := NewReveal()
	r.Rewind()
	done := false
	r.Retarget(10*ms, 1, 0, nil, func() { done = true })
	assert.False(t, done)
	r.Tick(10 * ms)
	assert.True(t, done)
	assert.Equal(t, 1.0, r.Progress())
}

func TestRevealRestAndCancel(t *testing.T) {
	r := NewReveal()
	r.Rewind()
	fired := false
	r.Retarget(0, 1, 100*ms, fyne.AnimationLinear, func() { fired = true })
	r.Tick(50 * ms)

	r.Cancel()
	assert.InDelta(t, 0.5, r.Progress(), 1e-6)
	r.Tick(500 * ms)
	assert.False(t, fired)
	assert.InDelta(t, 0.5, r.Progress(), 1e-6)

	r.Rest()
	assert.True(t, r.Resting())
	assert.Equal(t, 1.0, r.Progress())
}

func TestStrokeStylesOrder(t *testing.T) {
	lengths := []float64{10, 30, 60}
	offsets := []float64{0, 10, 40}
	total := 100.0

	for step := 0; step <= 1000; step++ {
		p := float64(step) / 1000
		styles := StrokeStyles(p, lengths, offsets, total)
		require.Len(t, styles, 3)
		for i := 0; i+1 < len(styles); i++ {
			if styles[i+1].Reveal > 0 {
				assert.Equal(t, 1.0, styles[i].Reveal, "p=%v stroke %d", p, i)
			}
		}
	}

	hidden := StrokeStyles(0.05, lengths, offsets, total)
	assert.InDelta(t, 0.5, hidden[0].Reveal, 1e-9)
	assert.Equal(t, 1.0, hidden[0].Opacity)
	assert.Equal(t, 0.0, hidden[1].Opacity)
	assert.Equal(t, 0.0, hidden[2].Opacity)
	assert.InDelta(t, 5.0, hidden[0].DashOffset, 1e-9)
	assert.Equal(t, 10.0, hidden[0].DashArray)

	full := StrokeStyles(1, lengths, offsets, total)
	for _, s := range full {
		assert.Equal(t, 1.0, s.Reveal)
		assert.Equal(t, 1.0, s.Opacity)
		assert.Equal(t, 0.0, s.DashOffset)
	}
}

func TestStrokeStylesZeroTotal(t *testing.T) {
	assert.Nil(t, StrokeStyles(0.5, nil, nil, 0))
	assert.Nil(t, StrokeStyles(0.5, []float64{0}, []float64{0}, 0))
}

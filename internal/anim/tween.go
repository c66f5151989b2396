package anim

import (
	"time"

	"fyne.io/fyne/v2"
)

// tween interpolates from one value to another over a time window.
type tween struct {
	from, to float64
	start    time.Duration
	dur      time.Duration
	curve    fyne.AnimationCurve
}

// at returns the interpolated value at now and whether the window has ended.
func (tw *tween) at(now time.Duration) (float64, bool) {
	if tw.dur <= 0 || now >= tw.start+tw.dur {
		return tw.to, true
	}
	if now <= tw.start {
		return tw.from, false
	}
	f := float32(float64(now-tw.start) / float64(tw.dur))
	if tw.curve != nil {
		f = tw.curve(f)
	}
	return tw.from + (tw.to-tw.from)*float64(f), false
}

package anim

import (
	"time"

	"fyne.io/fyne/v2"

	"SignPad/internal/geometry"
)

// Reveal owns the progress value in [0,1] along the concatenated stroke
// timeline. With nothing driving it, progress rests at 1 and the whole
// signature is shown.
type Reveal struct {
	progress  float64
	resting   bool
	animating bool
	tw        tween
	done      func()
}

// NewReveal returns an animator at rest.
func NewReveal() *Reveal {
	return &Reveal{progress: 1, resting: true}
}

// Progress returns the value as of the last Tick or retarget.
func (r *Reveal) Progress() float64 {
	return r.progress
}

// Resting reports whether progress sits at its idle value of 1 with no
// animation behind it.
func (r *Reveal) Resting() bool {
	return r.resting
}

// Animating reports whether an interpolation is in flight.
func (r *Reveal) Animating() bool {
	return r.animating
}

// Target returns where the current interpolation is headed, or the progress
// itself when idle.
func (r *Reveal) Target() float64 {
	if r.animating {
		return r.tw.to
	}
	return r.progress
}

// Retarget interpolates from the value at now toward target over dur.
// An interpolation already in flight is replaced without a jump. done runs
// from Tick once target is reached; a replaced interpolation never calls its
// done.
func (r *Reveal) Retarget(now time.Duration, target float64, dur time.Duration, curve fyne.AnimationCurve, done func()) {
	if r.animating {
		r.progress, _ = r.tw.at(now)
	}
	r.tw = tween{
		from:  r.progress,
		to:    geometry.Clamp01(target),
		start: now,
		dur:   dur,
		curve: curve,
	}
	r.animating = true
	r.resting = false
	r.done = done
}

// Rewind cancels any interpolation and sets progress to 0.
func (r *Reveal) Rewind() {
	r.Cancel()
	r.progress = 0
	r.resting = false
}

// Rest cancels any interpolation and shows everything.
func (r *Reveal) Rest() {
	r.Cancel()
	r.progress = 1
	r.resting = true
}

// Cancel freezes progress at its last computed value and drops the pending
// completion.
func (r *Reveal) Cancel() {
	r.animating = false
	r.done = nil
}

// Tick advances the interpolation to now and fires its completion callback
// when it ends.
func (r *Reveal) Tick(now time.Duration) {
	if !r.animating {
		return
	}
	v, finished := r.tw.at(now)
	r.progress = v
	if !finished {
		return
	}
	r.animating = false
	done := r.done
	r.done = nil
	if done != nil {
		done()
	}
}

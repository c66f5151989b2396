// Package pad orchestrates stroke capture, reveal playback and the
// hold-to-confirm gesture of a signature pad.
package pad

import (
	"time"

	"SignPad/internal/anim"
	"SignPad/internal/geometry"
	"SignPad/internal/gesture"
	"SignPad/internal/logging"
	"SignPad/internal/state"
)

// driver names who currently owns the reveal target.
type driver int

const (
	driverNone driver = iota
	driverPreview
	driverHold
	driverSpring // draining after an abandoned hold
	driverUnwind // draining after a stopped preview
)

// restThreshold is the progress above which a stop skips the drain.
const restThreshold = 0.999

// Controller is the only sanctioned way to mutate a pad. Time is supplied by
// the host through Tick; every other method returns immediately and leaves
// time-driven work to later ticks.
//
// A Controller is not safe for concurrent use. Hosts with several goroutines
// serialize calls through loop.Runner.
type Controller struct {
	history *state.History
	reveal  *anim.Reveal
	confirm gesture.Confirm
	sched   Scheduler
	timing  anim.Timing

	now      time.Duration
	playing  bool
	driver   driver
	autoStop *Task
	closed   bool
	seq      uint64
}

// NewController returns an empty pad using timing. A zero PerUnit selects
// the default timing.
func NewController(timing anim.Timing) *Controller {
	if timing.PerUnit <= 0 {
		timing = anim.DefaultTiming()
	}
	if timing.Reveal == nil {
		timing.Reveal = anim.SignatureCurve
	}
	if timing.Drain == nil {
		timing.Drain = timing.Reveal
	}
	return &Controller{
		history: state.NewHistory(),
		reveal:  anim.NewReveal(),
		timing:  timing,
	}
}

// PointerDown starts a stroke at p.
func (c *Controller) PointerDown(p geometry.Point) {
	if c.closed {
		return
	}
	c.history.BeginStroke(p)
	c.changed()
}

// PointerMove extends the stroke in progress.
func (c *Controller) PointerMove(p geometry.Point) {
	if c.closed || c.history.Current() == nil {
		return
	}
	c.history.ExtendStroke(p)
	c.changed()
}

// PointerUp finishes the stroke in progress. Zero-length strokes are dropped.
func (c *Controller) PointerUp() {
	if c.closed || c.history.Current() == nil {
		return
	}
	if c.history.FinishStroke() {
		c.inkChanged()
	}
	c.changed()
}

// Erase clears every stroke, un-signs and cancels all animation.
func (c *Controller) Erase() {
	if c.closed {
		return
	}
	c.history.Erase()
	c.reset()
	c.changed()
}

// Undo removes the last stroke. Undoing the last one un-signs.
func (c *Controller) Undo() {
	if c.closed {
		return
	}
	if c.history.Undo() {
		c.inkChanged()
		c.changed()
	}
}

// Play previews the signature being drawn in, then stops on its own after
// TotalLength*PerUnit. It does nothing while already playing or without ink.
func (c *Controller) Play() {
	if c.closed || c.playing {
		return
	}
	total := c.history.TotalLength()
	if total <= 0 {
		return
	}
	from := c.fromProgress()
	c.playing = true
	c.driver = driverPreview
	c.startReveal(c.timing.Preview(total, from), nil)
	c.autoStop = c.sched.After(c.now, c.timing.Full(total), c.autoStopFired)
	logging.Logger().Debug("preview started", "total", total)
	c.changed()
}

// Stop cancels the auto-stop timer and the running interpolation, then
// drains the signature back out before showing it whole again. A hold in
// progress is abandoned and springs back. Calling it when nothing plays, or
// while a drain is already under way, changes nothing.
func (c *Controller) Stop() {
	if c.closed {
		return
	}
	holding := c.confirm.State() == gesture.Holding
	if !c.playing && c.autoStop == nil && !holding {
		return
	}
	c.cancelAutoStop()
	next := driverUnwind
	if holding {
		c.confirm.Release()
		next = driverSpring
	}
	c.playing = false
	c.drain(next)
	logging.Logger().Debug("stopped", "progress", c.reveal.Progress())
	c.changed()
}

// HoldPress starts the hold-to-confirm gesture. It is ignored without ink or
// once signed. A running preview is cancelled and the hold redraws the
// signature from nothing; a pad still springing back resumes where it is.
func (c *Controller) HoldPress() {
	if c.closed {
		return
	}
	total := c.history.TotalLength()
	if !c.confirm.Press(total) {
		return
	}
	c.cancelAutoStop()
	from := c.fromProgress()
	c.playing = true
	c.driver = driverHold
	c.startReveal(c.timing.Fill(total, from), c.holdFilled)
	logging.Logger().Debug("hold started", "total", total, "progress", c.reveal.Progress())
	c.changed()
}

// HoldRelease ends the press. An unfinished hold springs back; a signed pad
// stays signed.
func (c *Controller) HoldRelease() {
	if c.closed {
		return
	}
	wasPressing := c.confirm.Pressing()
	if !c.confirm.Release() {
		if wasPressing {
			c.changed()
		}
		return
	}
	c.playing = false
	c.drain(driverSpring)
	logging.Logger().Debug("hold released early", "progress", c.reveal.Progress())
	c.changed()
}

// Tick advances the pad's timeline to now. Times earlier than the last tick
// are ignored.
func (c *Controller) Tick(now time.Duration) {
	if c.closed || now < c.now {
		return
	}
	c.now = now
	if !c.reveal.Animating() && c.sched.Pending() == 0 {
		return
	}
	// the reveal settles first so a timer due at the same instant sees the
	// final progress
	c.reveal.Tick(now)
	c.sched.Advance(now)
	c.changed()
}

// Now returns the time of the last tick.
func (c *Controller) Now() time.Duration {
	return c.now
}

// Animating reports whether later ticks can still change the pad.
func (c *Controller) Animating() bool {
	return !c.closed && (c.reveal.Animating() || c.sched.Pending() > 0)
}

// Close tears the pad down. Pending timers and interpolations are discarded
// and every later call is a no-op.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.cancelAutoStop()
	c.sched.Close()
	c.reveal.Cancel()
	c.playing = false
	c.closed = true
}

// Seq increases on every observable change.
func (c *Controller) Seq() uint64 {
	return c.seq
}

// TotalLength returns the summed length of the finalized strokes.
func (c *Controller) TotalLength() float64 {
	return c.history.TotalLength()
}

// Playing reports whether a preview or hold drives the reveal.
func (c *Controller) Playing() bool {
	return c.playing
}

// Signed reports whether the drawing was confirmed.
func (c *Controller) Signed() bool {
	return c.confirm.Signed()
}

// Pressing reports whether the confirm control is held.
func (c *Controller) Pressing() bool {
	return c.confirm.Pressing()
}

// Progress returns the shared reveal progress.
func (c *Controller) Progress() float64 {
	return c.reveal.Progress()
}

// fromProgress returns the progress a new drive starts from. Only a pad
// springing back from an abandoned hold is picked up where it is; anything
// else starts over from nothing.
func (c *Controller) fromProgress() float64 {
	if c.driver != driverSpring || !c.reveal.Animating() {
		c.reveal.Rewind()
	}
	return c.reveal.Progress()
}

func (c *Controller) startReveal(d time.Duration, done func()) {
	c.reveal.Retarget(c.now, 1, d, c.timing.Reveal, done)
}

func (c *Controller) holdFilled() {
	if !c.confirm.Complete(c.history.TotalLength()) {
		return
	}
	c.playing = false
	c.driver = driverNone
	c.reveal.Rest()
	logging.Logger().Info("signed", "total", c.history.TotalLength())
}

func (c *Controller) autoStopFired() {
	c.autoStop = nil
	if c.driver != driverPreview {
		return
	}
	c.playing = false
	logging.Logger().Debug("preview auto-stopped")
	c.drain(driverUnwind)
}

// drain hands the reveal back to rest, running back through the revealed
// ink under driver d unless it is already complete.
func (c *Controller) drain(d driver) {
	p := c.reveal.Progress()
	if c.confirm.Signed() || p >= restThreshold {
		c.driver = driverNone
		c.reveal.Rest()
		return
	}
	c.driver = d
	dur := c.timing.Spring(c.history.TotalLength(), p)
	c.reveal.Retarget(c.now, 0, dur, c.timing.Drain, c.drained)
}

func (c *Controller) drained() {
	c.driver = driverNone
	c.reveal.Rest()
}

// inkChanged reacts to the finalized stroke list changing shape.
func (c *Controller) inkChanged() {
	total := c.history.TotalLength()
	if total <= 0 {
		c.reset()
		return
	}
	if !c.reveal.Animating() {
		return
	}
	// keep the reveal moving at constant ink speed against the new total
	p := c.reveal.Progress()
	switch c.driver {
	case driverPreview:
		c.startReveal(c.timing.Preview(total, p), nil)
		if c.autoStop != nil {
			c.autoStop.Cancel()
			c.autoStop = c.sched.After(c.now, c.timing.Preview(total, p), c.autoStopFired)
		}
	case driverHold:
		c.startReveal(c.timing.Fill(total, p), c.holdFilled)
	case driverSpring, driverUnwind:
		c.reveal.Retarget(c.now, 0, c.timing.Spring(total, p), c.timing.Drain, c.drained)
	}
}

func (c *Controller) reset() {
	if c.confirm.Signed() {
		logging.Logger().Info("signature cleared")
	}
	c.confirm.Reset()
	c.cancelAutoStop()
	c.playing = false
	c.driver = driverNone
	c.reveal.Rest()
}

func (c *Controller) cancelAutoStop() {
	if c.autoStop != nil {
		c.autoStop.Cancel()
		c.autoStop = nil
	}
}

func (c *Controller) changed() {
	c.seq++
}

// Package loop runs a pad controller on its own goroutine so that any number
// of goroutines can drive and observe it.
package loop

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"SignPad/internal/geometry"
	"SignPad/internal/logging"
	"SignPad/internal/pad"
)

// ErrClosed is returned for work submitted after Close.
var ErrClosed = errors.New("loop: runner closed")

// DefaultFrameRate is the tick rate used when Options leaves it unset.
const DefaultFrameRate = 60

// Options configures a Runner.
type Options struct {
	// FrameRate is the number of animation ticks per second.
	FrameRate int
}

// Runner owns a pad.Controller. All mutations go through one goroutine,
// which also delivers the frame clock; readers get immutable snapshots.
// Subscribers are called from a second goroutine, so they may submit work
// back to the runner.
type Runner struct {
	ctrl  *pad.Controller
	cmds  chan func(*pad.Controller)
	frame time.Duration
	start time.Time

	snap atomic.Pointer[pad.Snapshot]
	wake chan struct{}

	mu     sync.Mutex
	subs   map[int]func(*pad.Snapshot)
	nextID int

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

var _ pad.Surface = (*Runner)(nil)

// New starts a runner for ctrl. The runner takes ownership: ctrl must not be
// used directly afterwards.
func New(ctrl *pad.Controller, opts Options) *Runner {
	rate := opts.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	r := &Runner{
		ctrl:    ctrl,
		cmds:    make(chan func(*pad.Controller), 64),
		frame:   time.Second / time.Duration(rate),
		start:   time.Now(),
		subs:    make(map[int]func(*pad.Snapshot)),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	r.snap.Store(ctrl.Snapshot())
	go r.run()
	go r.dispatch()
	return r
}

// Submit queues fn to run on the loop goroutine.
func (r *Runner) Submit(fn func(*pad.Controller)) error {
	select {
	case <-r.done:
		return ErrClosed
	default:
	}
	select {
	case r.cmds <- fn:
		return nil
	case <-r.done:
		return ErrClosed
	}
}

// Do runs fn on the loop goroutine and waits for it.
func (r *Runner) Do(fn func(*pad.Controller)) error {
	ran := make(chan struct{})
	err := r.Submit(func(c *pad.Controller) {
		defer close(ran)
		fn(c)
	})
	if err != nil {
		return err
	}
	select {
	case <-ran:
		return nil
	case <-r.stopped:
		return ErrClosed
	}
}

// Snapshot returns the most recently published state.
func (r *Runner) Snapshot() *pad.Snapshot {
	return r.snap.Load()
}

// Subscribe calls fn with every published snapshot, in order, on a single
// delivery goroutine separate from the loop. A slow fn skips to the latest
// snapshot instead of queueing stale ones. fn may call Do or Submit.
func (r *Runner) Subscribe(fn func(*pad.Snapshot)) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, id)
			r.mu.Unlock()
		})
	}
}

// Close stops the loop after cancelling any playback. It is safe to call
// more than once.
func (r *Runner) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
	})
	<-r.stopped
}

func (r *Runner) PointerDown(p geometry.Point) { r.post(func(c *pad.Controller) { c.PointerDown(p) }) }
func (r *Runner) PointerMove(p geometry.Point) { r.post(func(c *pad.Controller) { c.PointerMove(p) }) }
func (r *Runner) PointerUp()                   { r.post((*pad.Controller).PointerUp) }
func (r *Runner) HoldPress()                   { r.post((*pad.Controller).HoldPress) }
func (r *Runner) HoldRelease()                 { r.post((*pad.Controller).HoldRelease) }
func (r *Runner) Erase()                       { r.post((*pad.Controller).Erase) }
func (r *Runner) Undo()                        { r.post((*pad.Controller).Undo) }
func (r *Runner) Play()                        { r.post((*pad.Controller).Play) }
func (r *Runner) Stop()                        { r.post((*pad.Controller).Stop) }

func (r *Runner) post(fn func(*pad.Controller)) {
	if err := r.Submit(fn); err != nil {
		logging.Logger().Debug("pad event dropped", "err", err)
	}
}

func (r *Runner) elapsed() time.Duration {
	return time.Since(r.start)
}

func (r *Runner) run() {
	defer close(r.stopped)
	ticker := time.NewTicker(r.frame)
	defer ticker.Stop()

	last := r.ctrl.Seq()
	publish := func() {
		if seq := r.ctrl.Seq(); seq != last {
			last = seq
			r.publish(r.ctrl.Snapshot())
		}
	}

	for {
		select {
		case <-r.done:
			r.ctrl.Stop()
			r.ctrl.Close()
			return
		case fn := <-r.cmds:
			r.ctrl.Tick(r.elapsed())
			fn(r.ctrl)
			publish()
		case <-ticker.C:
			if r.ctrl.Animating() {
				r.ctrl.Tick(r.elapsed())
				publish()
			}
		}
	}
}

func (r *Runner) publish(s *pad.Snapshot) {
	r.snap.Store(s)
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// dispatch hands the latest snapshot to subscribers until the loop stops.
func (r *Runner) dispatch() {
	var last *pad.Snapshot
	for {
		select {
		case <-r.stopped:
			return
		case <-r.wake:
		}
		s := r.snap.Load()
		if s == last {
			continue
		}
		last = s
		for _, fn := range r.subscribers() {
			fn(s)
		}
	}
}

func (r *Runner) subscribers() []func(*pad.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := make([]func(*pad.Snapshot), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	return subs
}

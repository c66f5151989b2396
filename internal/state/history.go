// Package state holds the stroke history of a signature pad.
package state

import (
	"SignPad/internal/geometry"
)

// History is the ordered list of finalized strokes plus at most one stroke in
// progress. It is single-writer and not safe for concurrent use.
type History struct {
	strokes []*Stroke
	current *Stroke
	clock   Clock

	// cached derived values, valid while offsetsRev == clock.Now()
	total      float64
	offsets    []float64
	offsetsRev uint64
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// BeginStroke starts a new stroke at p. It does nothing if a stroke is
// already being captured.
func (h *History) BeginStroke(p geometry.Point) {
	if h.current != nil {
		return
	}
	h.current = &Stroke{ID: newStrokeID()}
	h.current.extend(p)
}

// ExtendStroke appends p to the stroke in progress, if any.
func (h *History) ExtendStroke(p geometry.Point) {
	if h.current == nil {
		return
	}
	h.current.extend(p)
}

// FinishStroke promotes the stroke in progress to the finalized list.
// A stroke of zero length is dropped. It reports whether a stroke was added.
func (h *History) FinishStroke() bool {
	s := h.current
	if s == nil {
		return false
	}
	h.current = nil
	if s.length <= 0 {
		return false
	}
	h.strokes = append(h.strokes, s)
	h.clock.Tick()
	return true
}

// Undo removes the last finalized stroke. It reports whether one was removed.
func (h *History) Undo() bool {
	n := len(h.strokes)
	if n == 0 {
		return false
	}
	h.strokes[n-1] = nil
	h.strokes = h.strokes[:n-1]
	h.clock.Tick()
	return true
}

// Erase drops every stroke, including the one in progress.
func (h *History) Erase() {
	if len(h.strokes) == 0 && h.current == nil {
		return
	}
	h.strokes = nil
	h.current = nil
	h.clock.Tick()
}

// Strokes returns the finalized strokes in drawing order. The slice must not
// be modified by the caller.
func (h *History) Strokes() []*Stroke {
	return h.strokes
}

// Current returns the stroke in progress, or nil.
func (h *History) Current() *Stroke {
	return h.current
}

// Len returns the number of finalized strokes.
func (h *History) Len() int {
	return len(h.strokes)
}

// Revision identifies the current shape of the finalized stroke list.
func (h *History) Revision() uint64 {
	return h.clock.Now()
}

// TotalLength returns the summed length of all finalized strokes.
// It is 0 exactly when there are no finalized strokes.
func (h *History) TotalLength() float64 {
	h.refresh()
	return h.total
}

// Offsets returns the cumulative start offset of each finalized stroke.
// The slice must not be modified by the caller.
func (h *History) Offsets() []float64 {
	h.refresh()
	return h.offsets
}

func (h *History) refresh() {
	if h.offsetsRev == h.clock.Now() && len(h.offsets) == len(h.strokes) {
		return
	}
	lengths := make([]float64, len(h.strokes))
	total := 0.0
	for i, s := range h.strokes {
		lengths[i] = s.length
		total += s.length
	}
	h.offsets = geometry.Offsets(lengths)
	h.total = total
	h.offsetsRev = h.clock.Now()
}

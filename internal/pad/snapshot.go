package pad

import (
	"slices"

	"seehuhn.de/go/geom/path"

	"SignPad/internal/anim"
	"SignPad/internal/geometry"
	"SignPad/internal/gesture"
)

// Confirm control labels.
const (
	LabelHold   = "Hold to confirm"
	LabelSigned = "Signed"
)

// StrokeView is one finalized stroke as handed to a renderer.
type StrokeView struct {
	ID     string
	Points []geometry.Point
	Length float64
	Offset float64
	Style  anim.Style
}

// Revealed returns the drawn prefix of the stroke for renderers that cannot
// apply a dash offset.
func (v StrokeView) Revealed() []geometry.Point {
	if v.Style.Reveal >= 1 {
		return v.Points
	}
	return geometry.Prefix(v.Points, v.Style.Reveal*v.Length)
}

// Path is the whole stroke as a vector path descriptor.
func (v StrokeView) Path() path.Path {
	return geometry.Path(v.Points)
}

// RevealedPath is the drawn part of the stroke as a vector path descriptor.
func (v StrokeView) RevealedPath() path.Path {
	return geometry.Path(v.Revealed())
}

// Snapshot is an immutable copy of everything a renderer needs.
type Snapshot struct {
	// Seq increases with every change to the pad.
	Seq uint64
	// Revision changes whenever the finalized stroke list changes.
	Revision uint64

	Strokes []StrokeView
	Current []geometry.Point

	TotalLength float64
	Progress    float64
	// Fill is how far the confirm control is filled, in [0,1].
	Fill float64

	Pressing bool
	Playing  bool
	Signed   bool

	GhostOpacity float64
}

// HasInk reports whether there is anything to preview, reset or sign.
func (s *Snapshot) HasInk() bool {
	return s.TotalLength > 0
}

// CurrentPath is the stroke being drawn, if any.
func (s *Snapshot) CurrentPath() path.Path {
	return geometry.Path(s.Current)
}

// Label is the text shown on the confirm control.
func (s *Snapshot) Label() string {
	if s.Signed {
		return LabelSigned
	}
	return LabelHold
}

// Snapshot captures the current render state. Finalized stroke points are
// shared, never copied, because they do not change.
func (c *Controller) Snapshot() *Snapshot {
	strokes := c.history.Strokes()
	offsets := c.history.Offsets()
	total := c.history.TotalLength()
	progress := c.reveal.Progress()

	lengths := make([]float64, len(strokes))
	for i, s := range strokes {
		lengths[i] = s.Length()
	}
	styles := anim.StrokeStyles(progress, lengths, offsets, total)

	views := make([]StrokeView, len(strokes))
	for i, s := range strokes {
		views[i] = StrokeView{
			ID:     s.ID,
			Points: s.Points,
			Length: lengths[i],
			Offset: offsets[i],
			Style:  styles[i],
		}
	}

	snap := &Snapshot{
		Seq:          c.seq,
		Revision:     c.history.Revision(),
		Strokes:      views,
		TotalLength:  total,
		Progress:     progress,
		Fill:         c.fill(),
		Pressing:     c.confirm.Pressing(),
		Playing:      c.playing,
		Signed:       c.confirm.Signed(),
		GhostOpacity: anim.GhostOpacity,
	}
	if cur := c.history.Current(); cur != nil {
		snap.Current = slices.Clone(cur.Points)
	}
	return snap
}

func (c *Controller) fill() float64 {
	switch {
	case c.confirm.State() == gesture.Signed:
		return 1
	case c.driver == driverHold, c.driver == driverSpring:
		return geometry.Clamp01(c.reveal.Progress())
	}
	return 0
}

package state

import (
	"github.com/google/uuid"

	"SignPad/internal/geometry"
)

// Stroke is one continuous press-to-release path.
// A finalized stroke is never modified again, so its ID names its shape for
// good: renderers and remote tablets may cache by it.
type Stroke struct {
	ID     string
	Points []geometry.Point
	length float64
}

// Length returns the arc length of the stroke.
func (s *Stroke) Length() float64 {
	return s.length
}

func (s *Stroke) extend(p geometry.Point) {
	if n := len(s.Points); n > 0 {
		s.length += p.Sub(s.Points[n-1]).Length()
	}
	s.Points = append(s.Points, p)
}

func newStrokeID() string {
	return uuid.NewString()
}

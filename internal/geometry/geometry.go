// Package geometry measures freehand strokes and maps positions along them.
package geometry

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Point is a position in canvas-local coordinates.
type Point = vec.Vec2

// Pt is shorthand for building a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Length returns the arc length of the polyline through pts.
// Fewer than two points have length 0.
func Length(pts []Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Sub(pts[i-1]).Length()
	}
	return total
}

// Offsets returns the cumulative start offset of each entry in lengths:
// offsets[i] is the sum of lengths[0..i-1].
func Offsets(lengths []float64) []float64 {
	offsets := make([]float64, len(lengths))
	sum := 0.0
	for i, l := range lengths {
		offsets[i] = sum
		sum += l
	}
	return offsets
}

// PositionAtFraction returns the point at fraction f of the way along pts,
// measured by arc length. f is clamped to [0,1].
func PositionAtFraction(pts []Point, f float64) Point {
	switch len(pts) {
	case 0:
		return Point{}
	case 1:
		return pts[0]
	}
	prefix := Prefix(pts, Clamp01(f)*Length(pts))
	return prefix[len(prefix)-1]
}

// Prefix returns the leading part of pts covering dist units of arc length.
// The final point is interpolated on the segment where dist runs out.
// A non-positive dist yields the first point alone.
func Prefix(pts []Point, dist float64) []Point {
	if len(pts) == 0 {
		return nil
	}
	out := []Point{pts[0]}
	if dist <= 0 {
		return out
	}
	walked := 0.0
	for i := 1; i < len(pts); i++ {
		seg := pts[i].Sub(pts[i-1])
		l := seg.Length()
		if walked+l >= dist {
			if l == 0 {
				out = append(out, pts[i])
				return out
			}
			out = append(out, pts[i-1].Add(seg.Mul((dist-walked)/l)))
			return out
		}
		walked += l
		out = append(out, pts[i])
	}
	return out
}

// Path converts pts into a vector path descriptor for a host graphics API:
// a MoveTo to the first point followed by a LineTo per remaining point.
func Path(pts []Point) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i, p := range pts {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			if !yield(cmd, []vec.Vec2{p}) {
				return
			}
		}
	}
}

// Clamp01 limits v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Remap maps v from the range [a,b] onto [c,d] without clamping.
// An empty source range maps everything at or past a onto d, and the rest onto c.
func Remap(v, a, b, c, d float64) float64 {
	if b == a {
		if v >= a {
			return d
		}
		return c
	}
	return c + (v-a)/(b-a)*(d-c)
}

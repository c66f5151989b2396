package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"SignPad/internal/geometry"
)

type segment struct {
	a, b fyne.Position
}

func toPosition(p geometry.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func toPoint(p fyne.Position) geometry.Point {
	return geometry.Pt(float64(p.X), float64(p.Y))
}

// segments flattens a path into the line pieces fyne can draw. Curves are
// replaced by a straight line to their end point.
func segments(p path.Path) []segment {
	if p == nil {
		return nil
	}
	var out []segment
	var current, start vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			current = pts[0]
			start = current
		case path.CmdLineTo, path.CmdQuadTo, path.CmdCubeTo:
			end := pts[len(pts)-1]
			out = append(out, segment{a: toPosition(current), b: toPosition(end)})
			current = end
		case path.CmdClose:
			if current != start {
				out = append(out, segment{a: toPosition(current), b: toPosition(start)})
			}
			current = start
		}
	}
	return out
}

// withAlpha scales the color's alpha by opacity.
func withAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(float64(c.A)*geometry.Clamp01(opacity) + 0.5)
	return c
}

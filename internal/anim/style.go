package anim

import (
	"SignPad/internal/geometry"
)

// GhostOpacity is the opacity of the faint full-length copy drawn under
// every stroke.
const GhostOpacity = 0.2

// Style is the derived render state of one stroke.
type Style struct {
	// Reveal is the drawn fraction of the stroke, in [0,1].
	Reveal float64
	// Opacity is 0 until progress reaches the stroke's start and 1 after.
	Opacity float64
	// DashArray and DashOffset express Reveal as a single dash the length of
	// the stroke, shifted by the hidden remainder.
	DashArray  float64
	DashOffset float64
}

// StrokeStyles derives the style of each stroke from the shared progress.
// Stroke i covers [offsets[i], offsets[i]+lengths[i]) of total, so strokes
// ink in, and drain, in drawing order. A zero total yields no styles.
func StrokeStyles(progress float64, lengths, offsets []float64, total float64) []Style {
	if total <= 0 || len(lengths) == 0 {
		return nil
	}
	p := geometry.Clamp01(progress)
	styles := make([]Style, len(lengths))
	for i, l := range lengths {
		start := offsets[i] / total
		end := (offsets[i] + l) / total
		reveal := geometry.Clamp01(geometry.Remap(p, start, end, 0, 1))
		if i == len(lengths)-1 && p >= 1 {
			// float sums may leave the last end a hair above 1
			reveal = 1
		}
		opacity := 0.0
		if p >= start {
			opacity = 1
		}
		styles[i] = Style{
			Reveal:     reveal,
			Opacity:    opacity,
			DashArray:  l,
			DashOffset: l * (1 - reveal),
		}
	}
	return styles
}

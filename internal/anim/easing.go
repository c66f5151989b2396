// Package anim drives the normalized reveal timeline of a signature.
package anim

import (
	"math"
	"strings"

	"fyne.io/fyne/v2"
)

// CubicBezier returns an easing curve shaped like the CSS cubic-bezier()
// timing function with control points (x1,y1) and (x2,y2).
func CubicBezier(x1, y1, x2, y2 float64) fyne.AnimationCurve {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	solve := func(x float64) float64 {
		t := x
		for i := 0; i < 8; i++ {
			err := sampleX(t) - x
			if math.Abs(err) < 1e-7 {
				return t
			}
			d := slopeX(t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= err / d
		}
		lo, hi := 0.0, 1.0
		t = x
		for i := 0; i < 40 && lo < hi; i++ {
			v := sampleX(t)
			if math.Abs(v-x) < 1e-7 {
				break
			}
			if v < x {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return t
	}

	return func(x float32) float32 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		return float32(sampleY(solve(float64(x))))
	}
}

// SignatureCurve is the default reveal and drain curve.
var SignatureCurve = CubicBezier(0.4, 0, 0.5, 1)

// CurveByName resolves a configured easing name.
func CurveByName(name string) (fyne.AnimationCurve, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bezier":
		return SignatureCurve, true
	case "ease-out":
		return fyne.AnimationEaseOut, true
	case "ease-in-out":
		return fyne.AnimationEaseInOut, true
	case "ease-in":
		return fyne.AnimationEaseIn, true
	case "linear":
		return fyne.AnimationLinear, true
	}
	return nil, false
}

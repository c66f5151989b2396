package anim

import (
	"time"

	"fyne.io/fyne/v2"
)

// DefaultPerUnit is the reveal time per unit of ink length.
const DefaultPerUnit = 2 * time.Millisecond

// Timing turns ink length into animation durations. Reveal runs at a
// constant PerUnit speed so a longer signature takes proportionally longer.
type Timing struct {
	PerUnit time.Duration

	// FillScale stretches the hold-to-confirm fill.
	FillScale float64
	// DrainScale stretches the spring-back after an early release.
	DrainScale float64

	Reveal fyne.AnimationCurve
	Drain  fyne.AnimationCurve
}

// DefaultTiming returns the stock timing: 2ms per unit, unscaled fill and
// drain, both along SignatureCurve.
func DefaultTiming() Timing {
	return Timing{
		PerUnit:    DefaultPerUnit,
		FillScale:  1,
		DrainScale: 1,
		Reveal:     SignatureCurve,
		Drain:      SignatureCurve,
	}
}

// Full is the time to reveal total units of ink from nothing.
func (t Timing) Full(total float64) time.Duration {
	if total <= 0 {
		return 0
	}
	return time.Duration(total * float64(t.PerUnit))
}

// Preview is the time to reveal the remaining 1-p of the ink.
func (t Timing) Preview(total, p float64) time.Duration {
	return scale(t.Full(total), 1-p)
}

// Fill is the hold-to-confirm time from progress p to 1.
func (t Timing) Fill(total, p float64) time.Duration {
	return scale(t.Full(total), (1-p)*t.FillScale)
}

// Spring is the drain time from progress p back to 0 after an early release:
// short holds spring back quickly.
func (t Timing) Spring(total, p float64) time.Duration {
	return scale(t.Full(total), p*t.DrainScale)
}

func scale(d time.Duration, f float64) time.Duration {
	if !(f > 0) {
		return 0
	}
	return time.Duration(float64(d) * f)
}

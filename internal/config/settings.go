package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"SignPad/internal/anim"
)

// Settings is the resolved configuration after flags and file are merged.
type Settings struct {
	StrokeWidth float64
	StrokeColor string
	MsPerUnit   float64
	FillScale   float64
	DrainScale  float64
	Easing      string
	FrameRate   int

	Listen    int
	Advertise bool
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		StrokeWidth: 3.5,
		StrokeColor: "#404040",
		MsPerUnit:   2,
		FillScale:   1,
		DrainScale:  1,
		Easing:      "bezier",
		FrameRate:   60,
		Advertise:   true,
	}
}

// Validate reports the first out-of-range setting.
func (s Settings) Validate() error {
	if s.StrokeWidth <= 0 {
		return fmt.Errorf("stroke-width must be > 0")
	}
	if _, err := ParseColor(s.StrokeColor); err != nil {
		return err
	}
	if s.perUnit() <= 0 {
		return fmt.Errorf("ms-per-unit must be at least one nanosecond")
	}
	if s.FillScale <= 0 || s.DrainScale <= 0 {
		return fmt.Errorf("fill-scale and drain-scale must be > 0")
	}
	if _, ok := anim.CurveByName(s.Easing); !ok {
		return fmt.Errorf("unknown easing %q", s.Easing)
	}
	if s.FrameRate < 1 || s.FrameRate > 240 {
		return fmt.Errorf("frame-rate must be between 1 and 240")
	}
	if s.Listen < 0 || s.Listen > 65535 {
		return fmt.Errorf("listen must be a port between 0 and 65535")
	}
	return nil
}

// Timing builds the animation timing. Settings must be valid.
func (s Settings) Timing() anim.Timing {
	curve, _ := anim.CurveByName(s.Easing)
	return anim.Timing{
		PerUnit:    s.perUnit(),
		FillScale:  s.FillScale,
		DrainScale: s.DrainScale,
		Reveal:     curve,
		Drain:      curve,
	}
}

func (s Settings) perUnit() time.Duration {
	return time.Duration(s.MsPerUnit * float64(time.Millisecond))
}

// ParseColor reads a #rgb or #rrggbb color.
func ParseColor(v string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", v)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", v, err)
	}
	return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}

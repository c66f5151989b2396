package net

import (
	"SignPad/internal/anim"
	"SignPad/internal/geometry"
	"SignPad/internal/pad"
)

// Message types sent by a remote tablet.
const (
	TypeDown   = "down"
	TypeMove   = "move"
	TypeUp     = "up"
	TypeHold   = "hold"
	TypeUnhold = "unhold"
	TypeErase  = "erase"
	TypeUndo   = "undo"
	TypePlay   = "play"
	TypeStop   = "stop"

	// TypeSnapshot is the only message the host sends.
	TypeSnapshot = "snapshot"
)

// Message is the JSON envelope exchanged over the websocket.
type Message struct {
	Type     string        `json:"type"`
	X        float64       `json:"x,omitempty"`
	Y        float64       `json:"y,omitempty"`
	Snapshot *WireSnapshot `json:"snapshot,omitempty"`
}

type WirePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type WireStroke struct {
	ID         string      `json:"id"`
	Points     []WirePoint `json:"points"`
	Length     float64     `json:"length"`
	Offset     float64     `json:"offset"`
	Reveal     float64     `json:"reveal"`
	Opacity    float64     `json:"opacity"`
	DashArray  float64     `json:"dashArray"`
	DashOffset float64     `json:"dashOffset"`
}

// WireSnapshot mirrors pad.Snapshot on the wire.
type WireSnapshot struct {
	Seq          uint64       `json:"seq"`
	Revision     uint64       `json:"revision"`
	Strokes      []WireStroke `json:"strokes"`
	Current      []WirePoint  `json:"current,omitempty"`
	TotalLength  float64      `json:"totalLength"`
	Progress     float64      `json:"progress"`
	Fill         float64      `json:"fill"`
	Pressing     bool         `json:"pressing"`
	Playing      bool         `json:"playing"`
	Signed       bool         `json:"signed"`
	GhostOpacity float64      `json:"ghostOpacity"`
}

func encodePoints(pts []geometry.Point) []WirePoint {
	if len(pts) == 0 {
		return nil
	}
	out := make([]WirePoint, len(pts))
	for i, p := range pts {
		out[i] = WirePoint{X: p.X, Y: p.Y}
	}
	return out
}

func decodePoints(pts []WirePoint) []geometry.Point {
	if len(pts) == 0 {
		return nil
	}
	out := make([]geometry.Point, len(pts))
	for i, p := range pts {
		out[i] = geometry.Pt(p.X, p.Y)
	}
	return out
}

func encodeSnapshot(s *pad.Snapshot) *WireSnapshot {
	w := &WireSnapshot{
		Seq:          s.Seq,
		Revision:     s.Revision,
		Strokes:      make([]WireStroke, len(s.Strokes)),
		Current:      encodePoints(s.Current),
		TotalLength:  s.TotalLength,
		Progress:     s.Progress,
		Fill:         s.Fill,
		Pressing:     s.Pressing,
		Playing:      s.Playing,
		Signed:       s.Signed,
		GhostOpacity: s.GhostOpacity,
	}
	for i, v := range s.Strokes {
		w.Strokes[i] = WireStroke{
			ID:         v.ID,
			Points:     encodePoints(v.Points),
			Length:     v.Length,
			Offset:     v.Offset,
			Reveal:     v.Style.Reveal,
			Opacity:    v.Style.Opacity,
			DashArray:  v.Style.DashArray,
			DashOffset: v.Style.DashOffset,
		}
	}
	return w
}

func (w *WireSnapshot) decode() *pad.Snapshot {
	s := &pad.Snapshot{
		Seq:          w.Seq,
		Revision:     w.Revision,
		Strokes:      make([]pad.StrokeView, len(w.Strokes)),
		Current:      decodePoints(w.Current),
		TotalLength:  w.TotalLength,
		Progress:     w.Progress,
		Fill:         w.Fill,
		Pressing:     w.Pressing,
		Playing:      w.Playing,
		Signed:       w.Signed,
		GhostOpacity: w.GhostOpacity,
	}
	for i, v := range w.Strokes {
		s.Strokes[i] = pad.StrokeView{
			ID:     v.ID,
			Points: decodePoints(v.Points),
			Length: v.Length,
			Offset: v.Offset,
			Style: anim.Style{
				Reveal:     v.Reveal,
				Opacity:    v.Opacity,
				DashArray:  v.DashArray,
				DashOffset: v.DashOffset,
			},
		}
	}
	return s
}

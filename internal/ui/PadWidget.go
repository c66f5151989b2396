package ui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SignPad/internal/pad"
)

// PadWidget is the drawing surface. It forwards pointer input to the pad
// and renders the latest snapshot: a faint ghost of every stroke, the
// revealed part of each stroke on top, and the stroke being drawn.
type PadWidget struct {
	widget.BaseWidget
	surface pad.Surface

	mu      sync.RWMutex
	snap    *pad.Snapshot
	drawing bool

	StrokeColor color.NRGBA
	StrokeWidth float32
}

var _ fyne.Widget = (*PadWidget)(nil)
var _ fyne.Draggable = (*PadWidget)(nil)
var _ desktop.Mouseable = (*PadWidget)(nil)

func NewPadWidget(surface pad.Surface) *PadWidget {
	p := &PadWidget{
		surface:     surface,
		snap:        surface.Snapshot(),
		StrokeColor: color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff},
		StrokeWidth: 3.5,
	}
	p.ExtendBaseWidget(p)
	return p
}

// SetSnapshot replaces the rendered state. Call it on the fyne goroutine.
func (p *PadWidget) SetSnapshot(s *pad.Snapshot) {
	p.mu.Lock()
	p.snap = s
	p.mu.Unlock()
	p.Refresh()
}

func (p *PadWidget) snapshot() *pad.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

func (p *PadWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p.drawing = true
	p.surface.PointerDown(toPoint(e.Position))
}

func (p *PadWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		p.endStroke()
	}
}

func (p *PadWidget) Dragged(e *fyne.DragEvent) {
	if !p.drawing {
		// touch drivers start a stroke with the first drag
		p.drawing = true
		p.surface.PointerDown(toPoint(e.Position.Subtract(e.Dragged)))
	}
	p.surface.PointerMove(toPoint(e.Position))
}

func (p *PadWidget) DragEnd() {
	p.endStroke()
}

func (p *PadWidget) endStroke() {
	if !p.drawing {
		return
	}
	p.drawing = false
	p.surface.PointerUp()
}

func (p *PadWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &padWidgetRenderer{pad: p}
	r.background = canvas.NewRectangle(color.White)
	r.rebuild()
	return r
}

type padWidgetRenderer struct {
	pad        *PadWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject

	// ghost lines of finalized strokes, by stroke ID
	ghosts     map[string][]fyne.CanvasObject
	ghostColor color.NRGBA
	ghostWidth float32
}

func (r *padWidgetRenderer) lines(c color.Color, segs []segment) []fyne.CanvasObject {
	out := make([]fyne.CanvasObject, 0, len(segs))
	for _, seg := range segs {
		line := canvas.NewLine(c)
		line.StrokeWidth = r.pad.StrokeWidth
		line.Position1 = seg.a
		line.Position2 = seg.b
		out = append(out, line)
	}
	return out
}

func (r *padWidgetRenderer) rebuild() {
	s := r.pad.snapshot()
	objects := []fyne.CanvasObject{r.background}
	ink := r.pad.StrokeColor
	ghost := withAlpha(ink, s.GhostOpacity)

	if ghost != r.ghostColor || r.pad.StrokeWidth != r.ghostWidth {
		r.ghosts = nil
		r.ghostColor = ghost
		r.ghostWidth = r.pad.StrokeWidth
	}
	ghosts := make(map[string][]fyne.CanvasObject, len(s.Strokes))
	for _, v := range s.Strokes {
		lines, ok := r.ghosts[v.ID]
		if !ok || v.ID == "" {
			lines = r.lines(ghost, segments(v.Path()))
		}
		if v.ID != "" {
			ghosts[v.ID] = lines
		}
		objects = append(objects, lines...)
	}
	r.ghosts = ghosts

	for _, v := range s.Strokes {
		if v.Style.Opacity == 0 {
			continue
		}
		objects = append(objects, r.lines(withAlpha(ink, v.Style.Opacity), segments(v.RevealedPath()))...)
	}
	objects = append(objects, r.lines(ink, segments(s.CurrentPath()))...)
	r.objects = objects
}

func (r *padWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *padWidgetRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.pad)
}

func (r *padWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *padWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 200)
}

func (p *PadWidget) MouseIn(*desktop.MouseEvent)    {}
func (p *PadWidget) MouseOut()                      {}
func (p *PadWidget) MouseMoved(*desktop.MouseEvent) {}
func (r *padWidgetRenderer) Destroy()               {}

package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SignPad/internal/pad"
)

// ConfirmButton is the hold-to-confirm control. Mouse and touch presses
// collapse into one hold signal, and the bar fills with the snapshot's Fill.
type ConfirmButton struct {
	widget.BaseWidget
	surface pad.Surface

	pressed bool
	fill    float64
	label   string
	enabled bool
}

var _ desktop.Mouseable = (*ConfirmButton)(nil)
var _ mobile.Touchable = (*ConfirmButton)(nil)

func NewConfirmButton(surface pad.Surface) *ConfirmButton {
	b := &ConfirmButton{surface: surface, label: pad.LabelHold}
	b.ExtendBaseWidget(b)
	return b
}

// SetSnapshot updates fill and label. Call it on the fyne goroutine.
func (b *ConfirmButton) SetSnapshot(s *pad.Snapshot) {
	b.fill = s.Fill
	b.label = s.Label()
	b.enabled = s.HasInk()
	b.Refresh()
}

func (b *ConfirmButton) press() {
	if b.pressed {
		return
	}
	b.pressed = true
	b.surface.HoldPress()
}

func (b *ConfirmButton) release() {
	if !b.pressed {
		return
	}
	b.pressed = false
	b.surface.HoldRelease()
}

func (b *ConfirmButton) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.press()
	}
}

func (b *ConfirmButton) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.release()
	}
}

func (b *ConfirmButton) TouchDown(*mobile.TouchEvent)   { b.press() }
func (b *ConfirmButton) TouchUp(*mobile.TouchEvent)     { b.release() }
func (b *ConfirmButton) TouchCancel(*mobile.TouchEvent) { b.release() }

func (b *ConfirmButton) CreateRenderer() fyne.WidgetRenderer {
	r := &confirmButtonRenderer{
		button:     b,
		background: canvas.NewRectangle(theme.Color(theme.ColorNameButton)),
		bar:        canvas.NewRectangle(theme.Color(theme.ColorNamePrimary)),
		text:       canvas.NewText(b.label, theme.Color(theme.ColorNameForeground)),
	}
	r.background.CornerRadius = theme.InputRadiusSize()
	r.bar.CornerRadius = theme.InputRadiusSize()
	r.text.Alignment = fyne.TextAlignCenter
	r.text.TextStyle = fyne.TextStyle{Bold: true}
	return r
}

type confirmButtonRenderer struct {
	button     *ConfirmButton
	background *canvas.Rectangle
	bar        *canvas.Rectangle
	text       *canvas.Text
}

func (r *confirmButtonRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.bar.Move(fyne.NewPos(0, 0))
	r.bar.Resize(fyne.NewSize(fillWidth(size.Width, r.button.fill), size.Height))
	textSize := r.text.MinSize()
	r.text.Move(fyne.NewPos(0, (size.Height-textSize.Height)/2))
	r.text.Resize(fyne.NewSize(size.Width, textSize.Height))
}

func (r *confirmButtonRenderer) MinSize() fyne.Size {
	t := r.text.MinSize()
	inset := theme.Padding() * 4
	return fyne.NewSize(t.Width+inset*2, t.Height+inset)
}

func (r *confirmButtonRenderer) Refresh() {
	r.text.Text = r.button.label
	if r.button.enabled {
		r.text.Color = theme.Color(theme.ColorNameForeground)
	} else {
		r.text.Color = theme.Color(theme.ColorNameDisabled)
	}
	r.Layout(r.button.Size())
	canvas.Refresh(r.button)
}

func (r *confirmButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.bar, r.text}
}

func (r *confirmButtonRenderer) Destroy() {}

func fillWidth(width float32, fill float64) float32 {
	switch {
	case fill <= 0:
		return 0
	case fill >= 1:
		return width
	}
	return width * float32(fill)
}

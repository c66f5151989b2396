package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SignPad/internal/pad"
)

// header carries the title and the preview and reset controls, which only
// make sense once something has been drawn.
type header struct {
	preview *widget.Button
	reset   *widget.Button
	playing bool
	box     *fyne.Container
}

func newHeader(surface pad.Surface) *header {
	h := &header{}
	h.preview = widget.NewButtonWithIcon("Preview", theme.MediaPlayIcon(), func() {
		if h.playing {
			surface.Stop()
		} else {
			surface.Play()
		}
	})
	h.reset = widget.NewButtonWithIcon("Reset", theme.ContentClearIcon(), surface.Erase)
	title := widget.NewLabelWithStyle("Sign here", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	h.box = container.NewHBox(title, layout.NewSpacer(), h.preview, h.reset)
	return h
}

func (h *header) update(s *pad.Snapshot) {
	setVisible(h.preview, s.HasInk())
	setVisible(h.reset, s.HasInk())
	if s.Playing != h.playing {
		h.playing = s.Playing
		if h.playing {
			h.preview.SetText("Stop")
			h.preview.SetIcon(theme.MediaStopIcon())
		} else {
			h.preview.SetText("Preview")
			h.preview.SetIcon(theme.MediaPlayIcon())
		}
	}
}

// actions holds undo next to the hold-to-confirm control.
type actions struct {
	undo    *widget.Button
	confirm *ConfirmButton
	box     *fyne.Container
}

func newActions(surface pad.Surface) *actions {
	a := &actions{
		undo:    widget.NewButtonWithIcon("", theme.ContentUndoIcon(), surface.Undo),
		confirm: NewConfirmButton(surface),
	}
	a.undo.Disable()
	a.box = container.NewBorder(nil, nil, a.undo, nil, a.confirm)
	return a
}

func (a *actions) update(s *pad.Snapshot) {
	if len(s.Strokes) > 0 {
		a.undo.Enable()
	} else {
		a.undo.Disable()
	}
	a.confirm.SetSnapshot(s)
}

func setVisible(o fyne.CanvasObject, visible bool) {
	if visible == o.Visible() {
		return
	}
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
}

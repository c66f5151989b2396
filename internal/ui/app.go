package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"SignPad/internal/logging"
	"SignPad/internal/pad"
)

// Options configures the window around a pad.
type Options struct {
	Title       string
	StrokeColor color.NRGBA
	StrokeWidth float32
	// ShareLink, when set, is shown with a QR code next to the pad.
	ShareLink string
	// Status lines are shown under the pad as they arrive.
	Status <-chan string
}

// RunApp opens a window for surface and blocks until it is closed.
func RunApp(surface pad.Surface, opts Options) {
	myApp := app.New()
	title := opts.Title
	if title == "" {
		title = "SignPad"
	}
	myWindow := myApp.NewWindow(title)
	myWindow.Resize(fyne.NewSize(720, 480))

	board := NewPadWidget(surface)
	if opts.StrokeColor.A != 0 {
		board.StrokeColor = opts.StrokeColor
	}
	if opts.StrokeWidth > 0 {
		board.StrokeWidth = opts.StrokeWidth
	}
	top := newHeader(surface)
	bottom := newActions(surface)
	status := widget.NewLabel("")
	status.Hide()

	update := func(s *pad.Snapshot) {
		board.SetSnapshot(s)
		top.update(s)
		bottom.update(s)
	}
	update(surface.Snapshot())
	cancel := surface.Subscribe(func(s *pad.Snapshot) {
		fyne.Do(func() { update(s) })
	})
	defer cancel()

	if opts.Status != nil {
		go func() {
			for line := range opts.Status {
				fyne.Do(func() {
					status.SetText(line)
					status.Show()
				})
			}
		}()
	}

	var side fyne.CanvasObject
	if opts.ShareLink != "" {
		panel, err := newSharePanel(opts.ShareLink)
		if err != nil {
			logging.Logger().Warn("share panel unavailable", "err", err)
		} else {
			side = panel
		}
	}

	content := container.NewBorder(top.box, container.NewVBox(bottom.box, status), nil, side, board)
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}

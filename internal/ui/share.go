package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/skip2/go-qrcode"
)

const qrSize = 160

// newSharePanel shows the link a remote tablet can open, as text and as a
// QR code for tablets with a camera.
func newSharePanel(link string) (fyne.CanvasObject, error) {
	qr, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode share link: %w", err)
	}
	qr.DisableBorder = true
	img := canvas.NewImageFromImage(qr.Image(qrSize))
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScalePixels
	img.SetMinSize(fyne.NewSize(qrSize, qrSize))

	entry := widget.NewEntry()
	entry.SetText(link)
	entry.Disable()

	return container.NewVBox(
		widget.NewLabel("Sign from a tablet:"),
		container.NewCenter(img),
		entry,
	), nil
}

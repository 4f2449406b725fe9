// Video preview canvas fed from composited frames.
package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"gocv.io/x/gocv"
)

// VideoCanvas displays the current composited frame.
type VideoCanvas struct {
	view *canvas.Image
	card *widget.Card
}

// NewVideoCanvas creates an empty canvas with a placeholder image.
func NewVideoCanvas() *VideoCanvas {
	view := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	view.FillMode = canvas.ImageFillContain
	view.SetMinSize(fyne.NewSize(640, 360))

	return &VideoCanvas{
		view: view,
		card: widget.NewCard("Preview", "", view),
	}
}

// GetContainer returns the canvas for layout embedding.
func (vc *VideoCanvas) GetContainer() fyne.CanvasObject {
	return vc.card
}

// UpdateFrame converts a BGR frame and refreshes the display. The Mat is
// copied during conversion; the caller keeps ownership. Safe to call from
// any goroutine.
func (vc *VideoCanvas) UpdateFrame(frame gocv.Mat) {
	if frame.Empty() {
		return
	}

	img, err := frame.ToImage()
	if err != nil {
		return
	}

	fyne.Do(func() {
		vc.view.Image = img
		vc.view.Refresh()
	})
}

// Clear resets the canvas to its placeholder.
func (vc *VideoCanvas) Clear() {
	fyne.Do(func() {
		vc.view.Image = image.NewRGBA(image.Rect(0, 0, 1, 1))
		vc.view.Refresh()
	})
}

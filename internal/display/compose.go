package display

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/rook-computer/promptcanvas/internal/display/layout"
	"github.com/rook-computer/promptcanvas/internal/state"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Compose draws the screen for snap onto canvas. The picture area shows the
// result in RESULT and the phase message otherwise; the status band below
// shows the prompt, or the error message in ERROR.
func Compose(canvas *image.RGBA, face font.Face, snap state.State) {
	if face == nil {
		face = basicfont.Face7x13
	}
	bounds := canvas.Bounds()
	draw.Draw(canvas, bounds, &image.Uniform{C: Background}, image.Point{}, draw.Src)

	picture, status := layout.SplitHorizontal(layout.Inset(bounds, paddingPx), statusHeight)

	switch snap.Phase {
	case state.IDLE:
		drawTextCentered(canvas, picture, idleMessage, Foreground, face)
	case state.LOADING:
		drawTextCentered(canvas, picture, loadingMessage, Foreground, face)
		drawTextCentered(canvas, status, snap.Prompt, Foreground, face)
	case state.RESULT:
		if img, ok := snap.Result(); ok && img != nil {
			target := layout.CenterSquare(picture)
			xdraw.NearestNeighbor.Scale(canvas, target, img, img.Bounds(), xdraw.Over, nil)
		}
		drawTextCentered(canvas, status, snap.Prompt, Foreground, face)
	case state.ERROR:
		message, _ := snap.Error()
		drawTextCentered(canvas, status, message, Alert, face)
	}
}

// drawTextCentered centres a single line of text inside rect.
func drawTextCentered(dst draw.Image, rect image.Rectangle, text string, fg color.Color, face font.Face) {
	if text == "" {
		return
	}
	drawer := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: face}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	textWidth := drawer.MeasureString(text).Ceil()
	x := rect.Min.X + (rect.Dx()-textWidth)/2
	if x < rect.Min.X {
		x = rect.Min.X
	}
	baseline := rect.Min.Y + (rect.Dy()+ascent-descent)/2
	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(text)
}

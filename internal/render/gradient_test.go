package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearGradientOffset(t *testing.T) {
	bounds := image.Rect(0, 0, 240, 240)
	vertical := newLinearGradient(Point{}, Point{Y: 240}, SunsetTop, SunsetBottom, bounds)

	assert.InDelta(t, 0.0, vertical.offset(0, 0), 1e-9)
	assert.InDelta(t, 0.5, vertical.offset(17, 120), 1e-9)
	assert.InDelta(t, 1.0, vertical.offset(0, 240), 1e-9)
	assert.InDelta(t, 0.0, vertical.offset(0, -10), 1e-9, "clamped below")
	assert.InDelta(t, 1.0, vertical.offset(0, 500), 1e-9, "clamped above")

	degenerate := newLinearGradient(Point{X: 5, Y: 5}, Point{X: 5, Y: 5}, SunsetTop, SunsetBottom, bounds)
	assert.InDelta(t, 0.0, degenerate.offset(100, 100), 1e-9)
}

func TestLinearGradientColors(t *testing.T) {
	g := newLinearGradient(Point{}, Point{X: 100}, color.RGBA{A: 0xFF}, color.RGBA{R: 200, G: 100, A: 0xFF}, image.Rect(0, 0, 100, 1))

	assert.Equal(t, color.NRGBA{A: 0xFF}, g.colorAt(0))
	assert.Equal(t, color.NRGBA{R: 100, G: 50, A: 0xFF}, g.colorAt(0.5))
	assert.Equal(t, color.NRGBA{R: 200, G: 100, A: 0xFF}, g.colorAt(1))

	// Columns share a colour in a horizontal gradient.
	assert.Equal(t, g.At(10, 0), g.At(10, 7))
}
